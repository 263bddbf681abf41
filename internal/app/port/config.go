package port

import "nft_staker/internal/infrastructure/configloader"

// ConfigProvider defines the interface for accessing application configuration.
type ConfigProvider interface {
	GetConfig() *configloader.Config
}
