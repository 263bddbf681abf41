package entity

// Wallet is a wallet address known to the application.
type Wallet struct {
	Address string `json:"address"`
}

// WalletState is what every view renders first: whether a wallet is connected and which one.
type WalletState struct {
	Connected bool   `json:"connected"`
	Address   string `json:"address,omitempty"`
}
