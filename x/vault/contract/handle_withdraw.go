package contract

import (
	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
	cw20types "github.com/btcq-org/qvault/x/cw20/types"
	"github.com/btcq-org/qvault/x/vault/types"
)

// withdraw asks the token contract to transfer amount from the vault's
// custody to the caller. The requested amount is not checked against any
// deposit; the token contract fails the transfer if custody is short, and the
// host then reverts the whole transaction.
func (c *Contract) withdraw(info wasmvmtypes.MessageInfo, msg types.WithdrawMsg) (*wasmvmtypes.Response, error) {
	token, err := c.api.AddrValidate(msg.Cw20Address)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("cw20_address: %v", err)
	}
	if msg.Amount.IsZero() {
		return nil, types.ErrInvalidAmount.Wrap("Invalid zero amount")
	}

	recipient, err := c.api.AddrValidate(info.Sender)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("sender: %v", err)
	}

	transfer, err := cw20types.Cw20Contract{Addr: token.String()}.Transfer(recipient.String(), msg.Amount)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("withdraw requested", "token", token, "recipient", recipient, "amount", msg.Amount)

	resp := &wasmvmtypes.Response{}
	resp.Messages = append(resp.Messages, wasmvmtypes.SubMsg{
		Msg:     transfer,
		ReplyOn: wasmvmtypes.ReplyNever,
	})
	return resp, nil
}
