package types

import (
	"encoding/json"

	"cosmossdk.io/math"
	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
)

// Cw20ReceiveMsg is the notification a token contract delivers to a
// contract it has just sent tokens to. Msg is opaque to the token and is
// defined by the receiving contract.
type Cw20ReceiveMsg struct {
	Sender string    `json:"sender"`
	Amount math.Uint `json:"amount"`
	Msg    []byte    `json:"msg"`
}

// ReceiverExecuteMsg wraps Cw20ReceiveMsg the way receiving contracts expect
// it in their execute enum.
type ReceiverExecuteMsg struct {
	Receive *Cw20ReceiveMsg `json:"receive,omitempty"`
}

// IntoCosmosMsg builds the execute call that delivers m to contract.
func (m Cw20ReceiveMsg) IntoCosmosMsg(contract string) (wasmvmtypes.CosmosMsg, error) {
	bz, err := json.Marshal(ReceiverExecuteMsg{Receive: &m})
	if err != nil {
		return wasmvmtypes.CosmosMsg{}, err
	}
	return wasmExecute(contract, bz), nil
}

// Cw20Contract addresses calls to a token contract.
type Cw20Contract struct {
	Addr string
}

// Call builds an execute instruction carrying msg and no funds.
func (c Cw20Contract) Call(msg ExecuteMsg) (wasmvmtypes.CosmosMsg, error) {
	bz, err := msg.Marshal()
	if err != nil {
		return wasmvmtypes.CosmosMsg{}, err
	}
	return wasmExecute(c.Addr, bz), nil
}

// Transfer builds a transfer of amount to recipient.
func (c Cw20Contract) Transfer(recipient string, amount math.Uint) (wasmvmtypes.CosmosMsg, error) {
	return c.Call(ExecuteMsg{Transfer: &TransferMsg{Recipient: recipient, Amount: amount}})
}

func wasmExecute(contract string, msg []byte) wasmvmtypes.CosmosMsg {
	return wasmvmtypes.CosmosMsg{
		Wasm: &wasmvmtypes.WasmMsg{
			Execute: &wasmvmtypes.ExecuteMsg{
				ContractAddr: contract,
				Msg:          msg,
			},
		},
	}
}
