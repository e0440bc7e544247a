package contract

import (
	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
	"github.com/btcq-org/qvault/common"
	cw20types "github.com/btcq-org/qvault/x/cw20/types"
	"github.com/btcq-org/qvault/x/vault/types"
)

// deposit handles the notification a token contract sends after moving
// tokens into the vault. info.Sender is the token contract itself; the hook
// payload must agree with it on both token and amount.
func (c *Contract) deposit(info wasmvmtypes.MessageInfo, msg cw20types.Cw20ReceiveMsg) (*wasmvmtypes.Response, error) {
	hook, err := types.UnmarshalHookMsg(msg.Msg)
	if err != nil {
		// an unreadable payload is treated as an unauthorized call, not a parse error
		return nil, types.ErrUnauthorized.Wrapf("deposit hook: %v", err)
	}
	deposit := hook.Deposit

	if !msg.Amount.Equal(deposit.Amount) {
		return nil, types.ErrAmountMismatch.Wrapf("Invalid amount: notified %s, hook %s", msg.Amount, deposit.Amount)
	}

	token, err := c.api.AddrValidate(deposit.Cw20Address)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("cw20_address: %v", err)
	}
	if !token.Equals(common.Address(info.Sender)) {
		return nil, types.ErrAddressMismatch.Wrapf("Invalid amount: notified by %s, hook names %s", info.Sender, token)
	}

	c.logger.Debug("deposit received", "token", token, "depositor", msg.Sender, "amount", msg.Amount)
	return &wasmvmtypes.Response{}, nil
}
