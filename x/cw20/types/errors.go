package types

import errorsmod "cosmossdk.io/errors"

var (
	ErrInvalidRequest    = errorsmod.Register(ModuleName, 2, "invalid request")
	ErrInvalidZeroAmount = errorsmod.Register(ModuleName, 3, "invalid zero amount")
	ErrInvalidAddress    = errorsmod.Register(ModuleName, 4, "invalid address")
	ErrInsufficientFunds = errorsmod.Register(ModuleName, 5, "insufficient funds")
	ErrDuplicateAddress  = errorsmod.Register(ModuleName, 6, "duplicate initial balance address")
	ErrOverflow          = errorsmod.Register(ModuleName, 7, "amount overflow")
)
