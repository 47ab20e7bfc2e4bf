package token

import "errors"

var (
	// Construction errors
	ErrFeeRate = errors.New("token: fee rate must be below the fixed-point scale")

	// Transition errors
	ErrInvalidAccount        = errors.New("token: zero address is not a valid account")
	ErrInsufficientBalance   = errors.New("token: insufficient balance")
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")
	ErrUnauthorized          = errors.New("token: caller is not authorized to mint")
	ErrOverflow              = errors.New("token: arithmetic overflow")
)
