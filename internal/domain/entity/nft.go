package entity

import "math/big"

// NFTAttribute is one trait from the token's metadata document.
type NFTAttribute struct {
	TraitType   string `json:"trait_type"`
	Value       any    `json:"value"`
	DisplayType string `json:"display_type,omitempty"`
}

// NFTMetadata is the read-only metadata record of a drop token.
type NFTMetadata struct {
	ID          *big.Int       `json:"id"`
	URI         string         `json:"uri"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Image       string         `json:"image,omitempty"`
	Attributes  []NFTAttribute `json:"attributes,omitempty"`
}

// NFT is a token of the drop together with its current owner.
type NFT struct {
	Metadata NFTMetadata `json:"metadata"`
	Owner    string      `json:"owner"`
}

// StakedToken is one entry of the staking contract's per-staker list.
type StakedToken struct {
	Staker  string   `json:"staker"`
	TokenID *big.Int `json:"tokenId"`
}
