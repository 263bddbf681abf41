package contract

import (
	"context"
	"math/big"

	"nft_staker/internal/app/port"
	"nft_staker/internal/domain/entity"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
)

// ClaimCondition mirrors IClaimCondition.ClaimCondition. Field names follow the ABI components.
type ClaimCondition struct {
	StartTimestamp         *big.Int
	MaxClaimableSupply     *big.Int
	SupplyClaimed          *big.Int
	QuantityLimitPerWallet *big.Int
	MerkleRoot             [32]byte
	PricePerToken          *big.Int
	Currency               common.Address
	Metadata               string
}

// AllowlistProof mirrors IDrop.AllowlistProof.
type AllowlistProof struct {
	Proof                  [][32]byte
	QuantityLimitPerWallet *big.Int
	PricePerToken          *big.Int
	Currency               common.Address
}

// publicAllowlistProof is what a wallet outside any allowlist submits.
func publicAllowlistProof() AllowlistProof {
	return AllowlistProof{
		Proof:                  [][32]byte{},
		QuantityLimitPerWallet: big.NewInt(0),
		PricePerToken:          new(big.Int).Set(math.MaxBig256),
		Currency:               common.Address{},
	}
}

// NFTDrop is a binding for the claimable ERC721 drop.
type NFTDrop struct {
	*boundContract
}

// NewNFTDrop creates a binding for the drop deployed at address.
func NewNFTDrop(address string, b Backends) (*NFTDrop, error) {
	initParsedABIs()
	bc, err := newBoundContract(address, dropABI, b)
	if err != nil {
		return nil, err
	}
	return &NFTDrop{boundContract: bc}, nil
}

// ActiveClaimCondition returns the claim condition currently in force.
func (d *NFTDrop) ActiveClaimCondition(ctx context.Context) (*ClaimCondition, error) {
	out, err := d.call(ctx, "getActiveClaimConditionId")
	if err != nil {
		return nil, err
	}
	conditionID, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.Errorf("unexpected getActiveClaimConditionId result type %T", out[0])
	}

	out, err = d.call(ctx, "getClaimConditionById", conditionID)
	if err != nil {
		return nil, err
	}
	condition := *abi.ConvertType(out[0], new(ClaimCondition)).(*ClaimCondition)
	return &condition, nil
}

// Claim mints quantity tokens to receiver under the active claim condition.
// Only native-currency prices are paid through the transaction value.
func (d *NFTDrop) Claim(ctx context.Context, opts *bind.TransactOpts, receiver string, quantity int64) (*entity.TxResult, error) {
	if quantity < 1 {
		return nil, entity.ErrInvalidQuantity
	}
	if !common.IsHexAddress(receiver) {
		return nil, errors.Errorf("invalid receiver address %q", receiver)
	}
	if opts == nil {
		return nil, entity.ErrWalletNotConnected
	}

	condition, err := d.ActiveClaimCondition(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load active claim condition")
	}

	qty := big.NewInt(quantity)
	price := condition.PricePerToken
	if price == nil {
		price = big.NewInt(0)
	}

	native := condition.Currency == common.HexToAddress(entity.NativeTokenAddress)
	if !native && price.Sign() > 0 {
		// paying in an ERC20 needs an allowance for the drop, which this client never grants
		return nil, errors.Wrapf(entity.ErrUnsupportedCurrency, "drop is priced in ERC20 %s", condition.Currency.Hex())
	}

	txOpts := *opts
	if native {
		txOpts.Value = new(big.Int).Mul(price, qty)
	}

	return d.transact(ctx, &txOpts, "claim",
		common.HexToAddress(receiver),
		qty,
		condition.Currency,
		price,
		publicAllowlistProof(),
		[]byte{},
	)
}

// TokenURI returns the metadata URI of tokenID.
func (d *NFTDrop) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	out, err := d.call(ctx, "tokenURI", tokenID)
	if err != nil {
		return "", err
	}
	uri, ok := out[0].(string)
	if !ok {
		return "", errors.Errorf("unexpected tokenURI result type %T", out[0])
	}
	return uri, nil
}

// OwnerOf returns the checksummed owner of tokenID.
func (d *NFTDrop) OwnerOf(ctx context.Context, tokenID *big.Int) (string, error) {
	out, err := d.call(ctx, "ownerOf", tokenID)
	if err != nil {
		return "", err
	}
	owner, ok := out[0].(common.Address)
	if !ok {
		return "", errors.Errorf("unexpected ownerOf result type %T", out[0])
	}
	return owner.Hex(), nil
}

// NextTokenIDToMint is the exclusive upper bound of minted token ids.
func (d *NFTDrop) NextTokenIDToMint(ctx context.Context) (*big.Int, error) {
	out, err := d.call(ctx, "nextTokenIdToMint")
	if err != nil {
		return nil, err
	}
	next, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.Errorf("unexpected nextTokenIdToMint result type %T", out[0])
	}
	return next, nil
}

// IsApprovedForAll reports whether operator may transfer all of owner's tokens.
func (d *NFTDrop) IsApprovedForAll(ctx context.Context, owner, operator string) (bool, error) {
	out, err := d.call(ctx, "isApprovedForAll", common.HexToAddress(owner), common.HexToAddress(operator))
	if err != nil {
		return false, err
	}
	approved, ok := out[0].(bool)
	if !ok {
		return false, errors.Errorf("unexpected isApprovedForAll result type %T", out[0])
	}
	return approved, nil
}

// SetApprovalForAll grants or revokes operator over all of the sender's tokens.
func (d *NFTDrop) SetApprovalForAll(ctx context.Context, opts *bind.TransactOpts, operator string, approved bool) (*entity.TxResult, error) {
	return d.transact(ctx, opts, "setApprovalForAll", common.HexToAddress(operator), approved)
}

var _ port.NFTDrop = (*NFTDrop)(nil)
