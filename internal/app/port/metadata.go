package port

import (
	"context"
	"math/big"

	"nft_staker/internal/domain/entity"
)

// MetadataFetcher resolves a token URI into its metadata document.
type MetadataFetcher interface {
	Fetch(ctx context.Context, tokenID *big.Int, uri string) (entity.NFTMetadata, error)
}
