package addressbook

import (
	"fmt"
	"os"
	"strings"

	"nft_staker/internal/domain/entity"
	"nft_staker/internal/infrastructure/configloader"

	"github.com/ethereum/go-ethereum/common"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// addressFile mirrors the front-end style config.json: {"addresses": {"nftDrop": ..., ...}}.
type addressFile struct {
	Addresses entity.ContractAddresses `json:"addresses"`
}

// Loader resolves the contract addresses from the config and the optional addresses file.
type Loader struct {
	cfg        configloader.ContractsConfig
	loggerInfo func(msg string, args ...any)
	loggerWarn func(msg string, args ...any)
}

// NewLoader creates a new Loader.
func NewLoader(cfg configloader.ContractsConfig, loggerInfo func(msg string, args ...any), loggerWarn func(msg string, args ...any)) *Loader {
	return &Loader{cfg: cfg, loggerInfo: loggerInfo, loggerWarn: loggerWarn}
}

// Load reads the addresses file if configured, overlays inline addresses and validates all three.
func (l *Loader) Load() (entity.ContractAddresses, error) {
	var addrs entity.ContractAddresses

	if l.cfg.AddressesFile != "" {
		data, err := os.ReadFile(l.cfg.AddressesFile)
		if err != nil {
			return addrs, fmt.Errorf("failed to read addresses file %s: %w", l.cfg.AddressesFile, err)
		}
		fromFile, err := Parse(data)
		if err != nil {
			return addrs, fmt.Errorf("failed to parse addresses file %s: %w", l.cfg.AddressesFile, err)
		}
		addrs = fromFile
		if l.loggerInfo != nil {
			l.loggerInfo("Contract addresses loaded from file", "path", l.cfg.AddressesFile)
		}
	}

	overlay := func(name string, dst *string, inline string) {
		if inline == "" {
			return
		}
		if *dst != "" && !strings.EqualFold(*dst, inline) && l.loggerWarn != nil {
			l.loggerWarn("Inline contract address overrides addresses file", "contract", name, "file_value", *dst, "inline_value", inline)
		}
		*dst = inline
	}
	overlay("nftDrop", &addrs.NFTDrop, l.cfg.NFTDrop)
	overlay("rewardToken", &addrs.RewardToken, l.cfg.RewardToken)
	overlay("nftStaking", &addrs.NFTStaking, l.cfg.NFTStaking)

	if err := Validate(addrs); err != nil {
		return addrs, err
	}
	return Normalize(addrs), nil
}

// Parse decodes the addresses file payload.
func Parse(data []byte) (entity.ContractAddresses, error) {
	var f addressFile
	if err := json.Unmarshal(data, &f); err != nil {
		return entity.ContractAddresses{}, err
	}
	return f.Addresses, nil
}

// Validate checks that every address is a well-formed, non-zero hex address.
func Validate(addrs entity.ContractAddresses) error {
	for _, c := range []struct{ name, value string }{
		{"nftDrop", addrs.NFTDrop},
		{"tokenADT", addrs.RewardToken},
		{"nftStaking", addrs.NFTStaking},
	} {
		if !common.IsHexAddress(c.value) {
			return fmt.Errorf("contract address %s is missing or malformed: %q", c.name, c.value)
		}
		if common.HexToAddress(c.value) == (common.Address{}) {
			return fmt.Errorf("contract address %s is the zero address", c.name)
		}
	}
	return nil
}

// Normalize converts the addresses to their checksummed form.
func Normalize(addrs entity.ContractAddresses) entity.ContractAddresses {
	return entity.ContractAddresses{
		NFTDrop:     common.HexToAddress(addrs.NFTDrop).Hex(),
		RewardToken: common.HexToAddress(addrs.RewardToken).Hex(),
		NFTStaking:  common.HexToAddress(addrs.NFTStaking).Hex(),
	}
}
