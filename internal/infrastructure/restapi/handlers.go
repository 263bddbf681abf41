package restapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"nft_staker/internal/app/port"
	"nft_staker/internal/domain/entity"
	"nft_staker/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// AlertResponse is the error payload of every failed request.
type AlertResponse struct {
	Alert    string             `json:"alert"`
	Approved bool               `json:"approved,omitempty"`
	Txs      []*entity.TxResult `json:"txs,omitempty"`
}

// ClaimRequest is the body of POST /api/v1/mint/claim. A missing or zero quantity claims one token.
type ClaimRequest struct {
	Quantity int64 `json:"quantity"`
}

// StakeResponse lists the transactions a stake produced, approval first.
type StakeResponse struct {
	TokenID string             `json:"tokenId"`
	Txs     []*entity.TxResult `json:"txs"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string             `json:"status"`
	Network string             `json:"network"`
	ChainID uint64             `json:"chainId"`
	Wallet  entity.WalletState `json:"wallet"`
}

// Handler serves the wallet, mint and staking endpoints.
type Handler struct {
	session  port.WalletSession
	mint     port.MintService
	stake    port.StakeService
	activity port.ActivityService
	netDef   entity.NetworkDefinition
	logger   *zap.Logger
}

// NewHandler creates a new instance of Handler.
func NewHandler(
	session port.WalletSession,
	mint port.MintService,
	stake port.StakeService,
	activity port.ActivityService,
	netDef entity.NetworkDefinition,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		session:  session,
		mint:     mint,
		stake:    stake,
		activity: activity,
		netDef:   netDef,
		logger:   logger.Named("RestAPI"),
	}
}

// Health reports liveness together with the selected network.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Network: h.netDef.Identifier,
		ChainID: h.netDef.ChainID,
		Wallet:  h.session.State(),
	})
}

// GetWallet returns the wallet state.
func (h *Handler) GetWallet(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.State())
}

// ConnectWallet unlocks the configured signer.
func (h *Handler) ConnectWallet(c *gin.Context) {
	state, err := h.session.Connect(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to connect wallet", zap.Error(err))
		c.JSON(http.StatusInternalServerError, AlertResponse{Alert: err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// DisconnectWallet drops the signer.
func (h *Handler) DisconnectWallet(c *gin.Context) {
	h.session.Disconnect()
	c.JSON(http.StatusOK, h.session.State())
}

// GetMint returns the mint view.
func (h *Handler) GetMint(c *gin.Context) {
	c.JSON(http.StatusOK, h.mint.View(c.Request.Context()))
}

// Claim mints drop tokens to the connected wallet.
func (h *Handler) Claim(c *gin.Context) {
	var req ClaimRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, AlertResponse{Alert: "invalid request body: " + err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	res, err := h.mint.Claim(c.Request.Context(), req.Quantity)
	if err != nil {
		h.abortWithAlert(c, "claim", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetStake returns the staking view.
func (h *Handler) GetStake(c *gin.Context) {
	view, err := h.stake.View(c.Request.Context())
	if err != nil {
		h.abortWithAlert(c, "stake view", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Stake approves the staking contract if needed and stakes the token from the path.
func (h *Handler) Stake(c *gin.Context) {
	tokenID, ok := utils.ParseTokenID(c.Param("tokenId"))
	if !ok {
		h.abortWithAlert(c, "stake", entity.ErrInvalidTokenID)
		return
	}

	txs, err := h.stake.Stake(c.Request.Context(), tokenID)
	if err != nil {
		var stakeErr *entity.StakeError
		if errors.As(err, &stakeErr) {
			h.logger.Error("Stake failed", zap.String("tokenId", tokenID.String()), zap.Bool("approved", stakeErr.Approved), zap.Error(err))
			c.JSON(statusFor(err), AlertResponse{Alert: err.Error(), Approved: stakeErr.Approved, Txs: txs})
			return
		}
		h.abortWithAlert(c, "stake", err)
		return
	}
	c.JSON(http.StatusOK, StakeResponse{TokenID: tokenID.String(), Txs: txs})
}

// Withdraw returns a staked token to the wallet.
func (h *Handler) Withdraw(c *gin.Context) {
	tokenID, ok := utils.ParseTokenID(c.Param("tokenId"))
	if !ok {
		h.abortWithAlert(c, "withdraw", entity.ErrInvalidTokenID)
		return
	}

	tx, err := h.stake.Withdraw(c.Request.Context(), tokenID)
	if err != nil {
		h.abortWithAlert(c, "withdraw", err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// ClaimRewards claims the wallet's accrued rewards.
func (h *Handler) ClaimRewards(c *gin.Context) {
	tx, err := h.stake.ClaimRewards(c.Request.Context())
	if err != nil {
		h.abortWithAlert(c, "claim rewards", err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// ListActivity returns the journal of the connected wallet, newest first.
func (h *Handler) ListActivity(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, AlertResponse{Alert: "invalid limit: " + raw})
			return
		}
		limit = n
	}

	records, err := h.activity.List(c.Request.Context(), h.session.State().Address, limit)
	if err != nil {
		h.abortWithAlert(c, "activity", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": records})
}

func (h *Handler) abortWithAlert(c *gin.Context, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("operation", op), zap.Error(err))
	} else {
		h.logger.Warn("Request rejected", zap.String("operation", op), zap.Error(err))
	}
	c.JSON(status, AlertResponse{Alert: err.Error()})
}

// statusFor maps domain errors to HTTP status codes. Anything unrecognised is a failed contract interaction.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrWalletNotConnected):
		return http.StatusConflict
	case errors.Is(err, entity.ErrInvalidTokenID), errors.Is(err, entity.ErrInvalidQuantity):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
