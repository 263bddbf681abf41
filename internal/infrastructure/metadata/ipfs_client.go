package metadata

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
	"time"

	"nft_staker/internal/app/port"
	"nft_staker/internal/domain/entity"
	"nft_staker/internal/infrastructure/configloader"
	"nft_staker/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	ipfsScheme       = "ipfs://"
	dataJSONBase64   = "data:application/json;base64,"
	dataJSONPlain    = "data:application/json,"
	sourceCache      = "cache"
	sourceGateway    = "gateway"
	sourceInline     = "inline"
	cleanupInterval  = 10 * time.Minute
	maxLoggedBodyLen = 512
)

// document is the ERC721 metadata JSON schema.
type document struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Image       string                `json:"image"`
	Attributes  []entity.NFTAttribute `json:"attributes"`
}

// ipfsClientImpl implements port.MetadataFetcher over an HTTP IPFS gateway.
type ipfsClientImpl struct {
	client  *fasthttp.Client
	gateway string
	timeout time.Duration
	cache   *cache.Cache
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewIPFSClient creates a metadata fetcher resolving ipfs:// URIs through cfg.IPFSGateway.
func NewIPFSClient(cfg configloader.MetadataConfig, logger *zap.Logger) port.MetadataFetcher {
	gateway := cfg.IPFSGateway
	if !strings.HasSuffix(gateway, "/") {
		gateway += "/"
	}
	return &ipfsClientImpl{
		client:  &fasthttp.Client{},
		gateway: gateway,
		timeout: time.Duration(cfg.RequestTimeoutMillis) * time.Millisecond,
		cache:   cache.New(time.Duration(cfg.CacheTTLMinutes)*time.Minute, cleanupInterval),
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		logger:  logger.Named("IPFSClient"),
	}
}

// ResolveURI turns an ipfs:// URI into a gateway URL. Other URIs are returned unchanged.
func ResolveURI(gateway, uri string) string {
	if !strings.HasPrefix(uri, ipfsScheme) {
		return uri
	}
	path := strings.TrimPrefix(uri, ipfsScheme)
	path = strings.TrimPrefix(path, "ipfs/")
	if !strings.HasSuffix(gateway, "/") {
		gateway += "/"
	}
	return gateway + path
}

// Fetch implements port.MetadataFetcher.
func (c *ipfsClientImpl) Fetch(ctx context.Context, tokenID *big.Int, uri string) (entity.NFTMetadata, error) {
	if uri == "" {
		return entity.NFTMetadata{}, fmt.Errorf("token %s has an empty metadata URI", tokenID)
	}

	if cached, found := c.cache.Get(uri); found {
		metrics.RecordMetadataFetch(sourceCache, nil)
		return c.toMetadata(tokenID, uri, cached.(document)), nil
	}

	var (
		doc    document
		err    error
		source = sourceGateway
	)
	switch {
	case strings.HasPrefix(uri, dataJSONBase64), strings.HasPrefix(uri, dataJSONPlain):
		source = sourceInline
		doc, err = decodeDataURI(uri)
	default:
		doc, err = c.fetchDocument(ctx, ResolveURI(c.gateway, uri))
	}
	metrics.RecordMetadataFetch(source, err)
	if err != nil {
		return entity.NFTMetadata{}, fmt.Errorf("failed to load metadata for token %s: %w", tokenID, err)
	}

	c.cache.Set(uri, doc, cache.DefaultExpiration)
	return c.toMetadata(tokenID, uri, doc), nil
}

func (c *ipfsClientImpl) toMetadata(tokenID *big.Int, uri string, doc document) entity.NFTMetadata {
	return entity.NFTMetadata{
		ID:          tokenID,
		URI:         uri,
		Name:        doc.Name,
		Description: doc.Description,
		Image:       ResolveURI(c.gateway, doc.Image),
		Attributes:  doc.Attributes,
	}
}

func (c *ipfsClientImpl) fetchDocument(ctx context.Context, requestURL string) (document, error) {
	var doc document
	if !strings.HasPrefix(requestURL, "http://") && !strings.HasPrefix(requestURL, "https://") {
		return doc, fmt.Errorf("unsupported metadata URI %q", requestURL)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return doc, fmt.Errorf("rate limiter wait: %w", err)
	}

	c.logger.Debug("Requesting token metadata", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute metadata request", zap.String("url", requestURL), zap.Error(err))
			return doc, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute metadata request (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return doc, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Warn("Metadata request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", truncate(rawBody)),
		)
		return doc, fmt.Errorf("metadata request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	if err := json.Unmarshal(rawBody, &doc); err != nil {
		c.logger.Error("Failed to unmarshal metadata document",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", truncate(rawBody)),
			zap.Error(err),
		)
		return doc, fmt.Errorf("failed to unmarshal metadata from %s: %w", requestURL, err)
	}
	return doc, nil
}

func decodeDataURI(uri string) (document, error) {
	var (
		doc document
		raw []byte
	)
	if strings.HasPrefix(uri, dataJSONBase64) {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, dataJSONBase64))
		if err != nil {
			return doc, fmt.Errorf("invalid base64 data URI: %w", err)
		}
		raw = decoded
	} else {
		raw = []byte(strings.TrimPrefix(uri, dataJSONPlain))
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("invalid inline metadata: %w", err)
	}
	return doc, nil
}

func truncate(b []byte) []byte {
	if len(b) > maxLoggedBodyLen {
		return b[:maxLoggedBodyLen]
	}
	return b
}
