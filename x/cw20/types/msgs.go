package types

import (
	"encoding/json"
	"regexp"

	"cosmossdk.io/math"
	"github.com/btcq-org/qvault/common"
	"github.com/hashicorp/go-multierror"
)

var symbolRegex = regexp.MustCompile(`^[a-zA-Z\-]{3,12}$`)

// MaxDecimals matches cw20-base.
const MaxDecimals = 18

type InstantiateMsg struct {
	Name            string     `json:"name"`
	Symbol          string     `json:"symbol"`
	Decimals        uint8      `json:"decimals"`
	InitialBalances []Cw20Coin `json:"initial_balances"`
}

type Cw20Coin struct {
	Address string    `json:"address"`
	Amount  math.Uint `json:"amount"`
}

// ValidateBasic checks the token metadata and reports every problem found.
// Balance addresses need the host API and are checked by the contract.
func (m InstantiateMsg) ValidateBasic() error {
	var result error
	if l := len(m.Name); l < 3 || l > 50 {
		result = multierror.Append(result, ErrInvalidRequest.Wrap("name length must be between 3 and 50"))
	}
	if !symbolRegex.MatchString(m.Symbol) {
		result = multierror.Append(result, ErrInvalidRequest.Wrap("ticker symbol must be 3-12 characters of a-z, A-Z or -"))
	}
	if m.Decimals > MaxDecimals {
		result = multierror.Append(result, ErrInvalidRequest.Wrapf("decimals must not exceed %d", MaxDecimals))
	}
	for i, coin := range m.InitialBalances {
		if err := common.ValidateUint128(coin.Amount); err != nil {
			result = multierror.Append(result, ErrInvalidRequest.Wrapf("initial_balances[%d]: %v", i, err))
		}
	}
	return result
}

func (m *InstantiateMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// ExecuteMsg is the subset of the cw20-base execute enum this repository
// speaks. Exactly one field is set.
type ExecuteMsg struct {
	Transfer *TransferMsg `json:"transfer,omitempty"`
	Send     *SendMsg     `json:"send,omitempty"`
}

type TransferMsg struct {
	Recipient string    `json:"recipient"`
	Amount    math.Uint `json:"amount"`
}

type SendMsg struct {
	Contract string    `json:"contract"`
	Amount   math.Uint `json:"amount"`
	Msg      []byte    `json:"msg"`
}

func UnmarshalExecuteMsg(bz []byte) (ExecuteMsg, error) {
	var m ExecuteMsg
	if err := common.UnmarshalEnum(bz, &m); err != nil {
		return m, ErrInvalidRequest.Wrapf("parse execute msg: %v", err)
	}
	if n := common.CountVariants(m.Transfer != nil, m.Send != nil); n != 1 {
		return m, ErrInvalidRequest.Wrapf("execute msg must set exactly one variant, got %d", n)
	}
	switch {
	case m.Transfer != nil:
		if err := common.ValidateUint128(m.Transfer.Amount); err != nil {
			return m, ErrInvalidRequest.Wrapf("transfer amount: %v", err)
		}
	case m.Send != nil:
		if err := common.ValidateUint128(m.Send.Amount); err != nil {
			return m, ErrInvalidRequest.Wrapf("send amount: %v", err)
		}
	}
	return m, nil
}

func (m *ExecuteMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

type QueryMsg struct {
	Balance   *BalanceQuery   `json:"balance,omitempty"`
	TokenInfo *TokenInfoQuery `json:"token_info,omitempty"`
}

type BalanceQuery struct {
	Address string `json:"address"`
}

type TokenInfoQuery struct{}

func UnmarshalQueryMsg(bz []byte) (QueryMsg, error) {
	var m QueryMsg
	if err := common.UnmarshalEnum(bz, &m); err != nil {
		return m, ErrInvalidRequest.Wrapf("parse query msg: %v", err)
	}
	if n := common.CountVariants(m.Balance != nil, m.TokenInfo != nil); n != 1 {
		return m, ErrInvalidRequest.Wrapf("query msg must set exactly one variant, got %d", n)
	}
	return m, nil
}

func (m *QueryMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

type BalanceResponse struct {
	Balance math.Uint `json:"balance"`
}

type TokenInfoResponse struct {
	Name        string    `json:"name"`
	Symbol      string    `json:"symbol"`
	Decimals    uint8     `json:"decimals"`
	TotalSupply math.Uint `json:"total_supply"`
}
