package entity

import "math/big"

// TokenBalance is a live ERC20 balance of the reward token.
type TokenBalance struct {
	TokenAddress string   `json:"tokenAddress"`
	Name         string   `json:"name"`
	Symbol       string   `json:"symbol"`
	Decimals     uint8    `json:"decimals"`
	Value        *big.Int `json:"value"`
	DisplayValue string   `json:"displayValue"`
}
