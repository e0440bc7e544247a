package types

import (
	"encoding/json"
	"errors"

	"cosmossdk.io/math"
	"github.com/btcq-org/qvault/common"
	cw20types "github.com/btcq-org/qvault/x/cw20/types"
)

// InstantiateMsg carries no configuration. Fields sent anyway are ignored.
type InstantiateMsg struct{}

func UnmarshalInstantiateMsg(bz []byte) (InstantiateMsg, error) {
	var m InstantiateMsg
	if err := common.UnmarshalObject(bz, &m); err != nil {
		return m, ErrInvalidRequest.Wrapf("parse instantiate msg: %v", err)
	}
	return m, nil
}

func (m *InstantiateMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// ExecuteMsg routes to exactly one handler.
type ExecuteMsg struct {
	Withdraw *WithdrawMsg              `json:"withdraw,omitempty"`
	Receive  *cw20types.Cw20ReceiveMsg `json:"receive,omitempty"`
}

type WithdrawMsg struct {
	Cw20Address string    `json:"cw20_address"`
	Amount      math.Uint `json:"amount"`
}

func (m *WithdrawMsg) UnmarshalJSON(bz []byte) error {
	var body tokenAmount
	if err := body.decode(bz); err != nil {
		return err
	}
	m.Cw20Address, m.Amount = *body.Cw20Address, body.Amount
	return nil
}

// tokenAmount is the wire body shared by withdraw and deposit. The token
// address is required; an absent or null address is not an empty one.
type tokenAmount struct {
	Cw20Address *string   `json:"cw20_address"`
	Amount      math.Uint `json:"amount"`
}

func (b *tokenAmount) decode(bz []byte) error {
	if err := json.Unmarshal(bz, b); err != nil {
		return err
	}
	if b.Cw20Address == nil {
		return errors.New("missing field cw20_address")
	}
	return nil
}

// UnmarshalExecuteMsg decodes bz and rejects anything that is not exactly
// one known variant with well formed amounts.
func UnmarshalExecuteMsg(bz []byte) (ExecuteMsg, error) {
	var m ExecuteMsg
	if err := common.UnmarshalEnum(bz, &m); err != nil {
		return m, ErrInvalidRequest.Wrapf("parse execute msg: %v", err)
	}
	if n := common.CountVariants(m.Withdraw != nil, m.Receive != nil); n != 1 {
		return m, ErrInvalidRequest.Wrapf("execute msg must set exactly one variant, got %d", n)
	}
	switch {
	case m.Withdraw != nil:
		if err := common.ValidateUint128(m.Withdraw.Amount); err != nil {
			return m, ErrInvalidRequest.Wrapf("withdraw amount: %v", err)
		}
	case m.Receive != nil:
		if err := common.ValidateUint128(m.Receive.Amount); err != nil {
			return m, ErrInvalidRequest.Wrapf("receive amount: %v", err)
		}
	}
	return m, nil
}

func (m *ExecuteMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// QueryMsg has no variants. It exists so callers have a type to name; the
// contract answers every query with ErrUnsupportedQuery.
type QueryMsg struct{}

func (m *QueryMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}
