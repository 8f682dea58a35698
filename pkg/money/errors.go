package money

import "errors"

var (
	ErrEmpty       = errors.New("money: empty amount")
	ErrNotAnAmount = errors.New("money: not an amount")
)
