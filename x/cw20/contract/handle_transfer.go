package contract

import (
	"context"

	"cosmossdk.io/math"
	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
	"github.com/btcq-org/qvault/common"
	"github.com/btcq-org/qvault/x/cw20/types"
)

func (c *Contract) transfer(ctx context.Context, info wasmvmtypes.MessageInfo, msg types.TransferMsg) (*wasmvmtypes.Response, error) {
	if msg.Amount.IsZero() {
		return nil, types.ErrInvalidZeroAmount
	}
	recipient, err := c.api.AddrValidate(msg.Recipient)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("recipient: %v", err)
	}
	if err := c.move(ctx, info.Sender, recipient.String(), msg.Amount); err != nil {
		return nil, err
	}

	return &wasmvmtypes.Response{
		Attributes: []wasmvmtypes.EventAttribute{
			{Key: "action", Value: "transfer"},
			{Key: "from", Value: info.Sender},
			{Key: "to", Value: recipient.String()},
			{Key: "amount", Value: msg.Amount.String()},
		},
	}, nil
}

// send moves tokens to a contract and notifies it with a Cw20ReceiveMsg
// carrying the caller's payload untouched.
func (c *Contract) send(ctx context.Context, info wasmvmtypes.MessageInfo, msg types.SendMsg) (*wasmvmtypes.Response, error) {
	if msg.Amount.IsZero() {
		return nil, types.ErrInvalidZeroAmount
	}
	target, err := c.api.AddrValidate(msg.Contract)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("contract: %v", err)
	}
	if err := c.move(ctx, info.Sender, target.String(), msg.Amount); err != nil {
		return nil, err
	}

	notify, err := types.Cw20ReceiveMsg{
		Sender: info.Sender,
		Amount: msg.Amount,
		Msg:    msg.Msg,
	}.IntoCosmosMsg(target.String())
	if err != nil {
		return nil, err
	}

	return &wasmvmtypes.Response{
		Messages: []wasmvmtypes.SubMsg{{Msg: notify, ReplyOn: wasmvmtypes.ReplyNever}},
		Attributes: []wasmvmtypes.EventAttribute{
			{Key: "action", Value: "send"},
			{Key: "from", Value: info.Sender},
			{Key: "to", Value: target.String()},
			{Key: "amount", Value: msg.Amount.String()},
		},
	}, nil
}

// move debits from and credits to. Sending to yourself is allowed and leaves
// the balance unchanged.
func (c *Contract) move(ctx context.Context, from, to string, amount math.Uint) error {
	fromBalance, err := c.balanceOf(ctx, from)
	if err != nil {
		return err
	}
	if fromBalance.LT(amount) {
		return types.ErrInsufficientFunds.Wrapf("balance %s is less than %s", fromBalance, amount)
	}
	if err := c.Balances.Set(ctx, from, fromBalance.Sub(amount)); err != nil {
		return err
	}

	toBalance, err := c.balanceOf(ctx, to)
	if err != nil {
		return err
	}
	credited, err := common.CheckedAddUint128(toBalance, amount)
	if err != nil {
		return types.ErrOverflow.Wrap(err.Error())
	}
	return c.Balances.Set(ctx, to, credited)
}
