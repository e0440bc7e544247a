package types

import (
	"encoding/json"
	"errors"
	"fmt"

	"cosmossdk.io/math"
	"github.com/btcq-org/qvault/common"
)

// HookMsg is the payload a depositor embeds in a cw20 send to the vault.
type HookMsg struct {
	Deposit *DepositMsg `json:"deposit,omitempty"`
}

type DepositMsg struct {
	Cw20Address string    `json:"cw20_address"`
	Amount      math.Uint `json:"amount"`
}

func (m *DepositMsg) UnmarshalJSON(bz []byte) error {
	var body tokenAmount
	if err := body.decode(bz); err != nil {
		return err
	}
	m.Cw20Address, m.Amount = *body.Cw20Address, body.Amount
	return nil
}

// UnmarshalHookMsg decodes a send payload. The error is deliberately plain;
// the contract maps any failure here to ErrUnauthorized.
func UnmarshalHookMsg(bz []byte) (HookMsg, error) {
	var m HookMsg
	if err := common.UnmarshalEnum(bz, &m); err != nil {
		return m, err
	}
	if m.Deposit == nil {
		return m, errors.New("hook msg has no deposit variant")
	}
	if err := common.ValidateUint128(m.Deposit.Amount); err != nil {
		return m, fmt.Errorf("deposit amount: %w", err)
	}
	return m, nil
}

func (m *HookMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// NewDepositHook encodes the payload that deposits amount of token.
func NewDepositHook(token string, amount math.Uint) ([]byte, error) {
	hook := HookMsg{Deposit: &DepositMsg{Cw20Address: token, Amount: amount}}
	return hook.Marshal()
}
