package entity

import "math/big"

// OwnerRequestItem represents a single ownerOf lookup in a batch request.
type OwnerRequestItem struct {
	ID       string
	Contract string
	TokenID  *big.Int
}

// OwnerResultItem represents the result of a single ownerOf lookup from a batch.
// Error is set for tokens that do not exist (burned or never minted) as well as for transport failures.
type OwnerResultItem struct {
	RequestID string
	TokenID   *big.Int
	Owner     string
	Error     error
}
