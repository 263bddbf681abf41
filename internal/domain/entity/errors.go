package entity

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrWalletNotConnected is returned by every write operation when no wallet address is present.
	ErrWalletNotConnected = errors.New("wallet not connected")
	// ErrInvalidTokenID is returned for negative or unparsable token ids.
	ErrInvalidTokenID = errors.New("invalid token id")
	// ErrInvalidQuantity is returned for claim quantities below one.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrApprovalFailed is returned when setApprovalForAll for the staking contract did not succeed.
	ErrApprovalFailed = errors.New("approval for staking contract failed")
	// ErrTxReverted is returned when a transaction was mined with a failed status.
	ErrTxReverted = errors.New("transaction reverted")
	// ErrSupplyTooLarge is returned when the drop has minted more tokens than an owner scan may cover.
	ErrSupplyTooLarge = errors.New("minted supply exceeds owner scan limit")
	// ErrUnsupportedCurrency is returned for claim conditions priced in an ERC20 currency.
	ErrUnsupportedCurrency = errors.New("claim currency is not supported")
)

// StakeError reports a failed stake. Approved is true when the approval transaction
// went through before the stake call failed, leaving the staking contract approved
// as operator without the token being staked.
type StakeError struct {
	TokenID  *big.Int
	Approved bool
	Err      error
}

func (e *StakeError) Error() string {
	if e.Approved {
		return fmt.Sprintf("stake of token %s failed after approval succeeded: %v", e.TokenID, e.Err)
	}
	return fmt.Sprintf("stake of token %s failed: %v", e.TokenID, e.Err)
}

func (e *StakeError) Unwrap() error {
	return e.Err
}
