package entity

// ContractAddresses are the three deployed contracts the application talks to.
type ContractAddresses struct {
	NFTDrop     string `json:"nftDrop" yaml:"nftDrop"`
	RewardToken string `json:"tokenADT" yaml:"rewardToken"`
	NFTStaking  string `json:"nftStaking" yaml:"nftStaking"`
}

// ZeroAddress represents the Ethereum zero address.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// NativeTokenAddress is the sentinel drop contracts use for claims priced in the native currency.
const NativeTokenAddress = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"
