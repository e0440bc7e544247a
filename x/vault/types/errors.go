package types

import errorsmod "cosmossdk.io/errors"

var (
	ErrInvalidRequest   = errorsmod.Register(ModuleName, 2, "invalid request")
	ErrInvalidAmount    = errorsmod.Register(ModuleName, 3, "invalid amount")
	ErrInvalidAddress   = errorsmod.Register(ModuleName, 4, "invalid address")
	ErrAmountMismatch   = errorsmod.Register(ModuleName, 5, "amount mismatch")
	ErrAddressMismatch  = errorsmod.Register(ModuleName, 6, "address mismatch")
	ErrUnauthorized     = errorsmod.Register(ModuleName, 7, "unauthorized")
	ErrUnsupportedQuery = errorsmod.Register(ModuleName, 8, "unsupported query")
)
