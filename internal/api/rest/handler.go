package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/junior13sam/DynamicGens/internal/api/middleware"
	"github.com/junior13sam/DynamicGens/internal/api/shared/dto"
	"github.com/junior13sam/DynamicGens/internal/engine"
)

const (
	defaultChangesLimit = 50
	maxChangesLimit     = 200
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// GetToken retrieves a single token with its current owner
	// GET /api/v1/tokens/:id
	GetToken(c *gin.Context)

	// ListTokens retrieves an owner's token index
	// GET /api/v1/tokens?owner=<identity>
	ListTokens(c *gin.Context)

	// GetOwner retrieves a token's current owner
	// GET /api/v1/tokens/:id/owner
	GetOwner(c *gin.Context)

	// GetURI retrieves a token's metadata descriptor
	// GET /api/v1/tokens/:id/uri
	GetURI(c *gin.Context)

	// GetHistory retrieves a token's retained evolution heights
	// GET /api/v1/tokens/:id/history
	GetHistory(c *gin.Context)

	// GetCooldown retrieves a token's cooldown eligibility
	// GET /api/v1/tokens/:id/cooldown
	GetCooldown(c *gin.Context)

	// GetStats retrieves the aggregate counters and feature flags
	// GET /api/v1/stats
	GetStats(c *gin.Context)

	// GetChanges retrieves journal rows with anchor-based pagination
	// GET /api/v1/changes?anchor=<id>&limit=<limit>
	GetChanges(c *gin.Context)

	// GetBalance retrieves an identity's spendable balance
	// GET /api/v1/balances/:identity
	GetBalance(c *gin.Context)

	// Mint mints a new token paid for by the caller (requires authentication)
	// POST /api/v1/tokens/mint
	Mint(c *gin.Context)

	// Evolve evolves a token owned by the caller (requires authentication)
	// POST /api/v1/tokens/:id/evolve
	Evolve(c *gin.Context)

	// Breed breeds two tokens into a new one (requires authentication)
	// POST /api/v1/tokens/breed
	Breed(c *gin.Context)

	// Transfer transfers a token to a new owner (requires authentication)
	// POST /api/v1/tokens/:id/transfer
	Transfer(c *gin.Context)

	// TogglePause flips the contract pause flag (administrative identity)
	// POST /api/v1/admin/pause
	TogglePause(c *gin.Context)

	// ToggleEvolution flips the evolution feature flag (administrative identity)
	// POST /api/v1/admin/evolution
	ToggleEvolution(c *gin.Context)

	// ToggleBreeding flips the breeding feature flag (administrative identity)
	// POST /api/v1/admin/breeding
	ToggleBreeding(c *gin.Context)

	// Deposit credits an identity's balance (administrative identity)
	// POST /api/v1/admin/deposit
	Deposit(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	engine *engine.Engine
}

// NewHandler creates a new REST API handler over the lifecycle engine
func NewHandler(e *engine.Engine) Handler {
	return &handler{engine: e}
}

// tokenID parses the :id path parameter; on failure it writes the error
// response and reports false.
func tokenID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondBadRequest(c, "Invalid token ID", c.Param("id"))
		return 0, false
	}
	return id, true
}

// caller returns the authenticated caller identity; on failure it writes the
// error response and reports false. API-key requests carry no identity, so
// state-changing operations reject them.
func caller(c *gin.Context) (string, bool) {
	identity := middleware.Identity(c)
	if identity == "" {
		respondWithError(c, http.StatusForbidden, "forbidden",
			"A caller identity is required; authenticate with a bearer token")
		return "", false
	}
	return identity, true
}

// GetToken retrieves a single token with its current owner
func (h *handler) GetToken(c *gin.Context) {
	id, ok := tokenID(c)
	if !ok {
		return
	}

	token, err := h.engine.Token(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err, "Failed to get token")
		return
	}

	owner, err := h.engine.OwnerOf(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err, "Failed to get token owner")
		return
	}

	response := dto.MapTokenToDTO(token)
	response.Owner = owner
	c.JSON(http.StatusOK, response)
}

// ListTokens retrieves an owner's token index
func (h *handler) ListTokens(c *gin.Context) {
	owner := c.Query("owner")
	if owner == "" {
		respondBadRequest(c, "owner query parameter is required")
		return
	}

	ids, err := h.engine.TokensOf(c.Request.Context(), owner)
	if err != nil {
		respondInternalError(c, err, "Failed to list tokens")
		return
	}

	c.JSON(http.StatusOK, dto.TokenListResponse{Owner: owner, TokenIDs: ids})
}

// GetOwner retrieves a token's current owner
func (h *handler) GetOwner(c *gin.Context) {
	id, ok := tokenID(c)
	if !ok {
		return
	}

	owner, err := h.engine.OwnerOf(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err, "Failed to get token owner")
		return
	}

	c.JSON(http.StatusOK, dto.OwnerResponse{TokenID: id, Owner: owner})
}

// GetURI retrieves a token's metadata descriptor
func (h *handler) GetURI(c *gin.Context) {
	id, ok := tokenID(c)
	if !ok {
		return
	}

	uri, err := h.engine.TokenURI(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err, "Failed to get token URI")
		return
	}

	c.JSON(http.StatusOK, dto.URIResponse{TokenID: id, URI: uri})
}

// GetHistory retrieves a token's retained evolution heights
func (h *handler) GetHistory(c *gin.Context) {
	id, ok := tokenID(c)
	if !ok {
		return
	}

	heights, err := h.engine.History(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err, "Failed to get evolution history")
		return
	}

	c.JSON(http.StatusOK, dto.HistoryResponse{TokenID: id, Heights: heights})
}

// GetCooldown retrieves a token's cooldown eligibility
func (h *handler) GetCooldown(c *gin.Context) {
	id, ok := tokenID(c)
	if !ok {
		return
	}

	eligible, err := h.engine.CooldownEligible(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err, "Failed to get cooldown eligibility")
		return
	}

	c.JSON(http.StatusOK, dto.CooldownResponse{TokenID: id, Eligible: eligible})
}

// GetStats retrieves the aggregate counters and feature flags
func (h *handler) GetStats(c *gin.Context) {
	stats, err := h.engine.Stats(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to get stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetChanges retrieves journal rows with anchor-based pagination
func (h *handler) GetChanges(c *gin.Context) {
	anchor, err := strconv.ParseUint(c.DefaultQuery("anchor", "0"), 10, 64)
	if err != nil {
		respondValidationError(c, "anchor must be a non-negative integer")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultChangesLimit)))
	if err != nil || limit <= 0 {
		respondValidationError(c, "limit must be a positive integer")
		return
	}
	if limit > maxChangesLimit {
		limit = maxChangesLimit
	}

	changes, err := h.engine.Changes(c.Request.Context(), anchor, limit)
	if err != nil {
		respondInternalError(c, err, "Failed to get changes")
		return
	}

	response := dto.ChangeListResponse{Changes: make([]dto.ChangeResponse, 0, len(changes))}
	for i := range changes {
		response.Changes = append(response.Changes, *dto.MapChangeToDTO(&changes[i]))
	}
	if len(changes) == limit {
		next := changes[len(changes)-1].ID
		response.NextAnchor = &next
	}

	c.JSON(http.StatusOK, response)
}

// GetBalance retrieves an identity's spendable balance
func (h *handler) GetBalance(c *gin.Context) {
	identity := c.Param("identity")
	if identity == "" {
		respondBadRequest(c, "Identity is required")
		return
	}

	balance, err := h.engine.BalanceOf(c.Request.Context(), identity)
	if err != nil {
		respondInternalError(c, err, "Failed to get balance")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Identity: identity, Balance: balance})
}

// Mint mints a new token paid for by the caller
func (h *handler) Mint(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	var req dto.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if req.Recipient == "" {
		req.Recipient = identity
	}

	token, err := h.engine.Mint(c.Request.Context(), identity, req.Recipient)
	if err != nil {
		respondDomainError(c, err, "Failed to mint token")
		return
	}

	response := dto.MapTokenToDTO(token)
	response.Owner = req.Recipient
	c.JSON(http.StatusCreated, response)
}

// Evolve evolves a token owned by the caller
func (h *handler) Evolve(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	id, ok := tokenID(c)
	if !ok {
		return
	}

	token, err := h.engine.Evolve(c.Request.Context(), identity, id)
	if err != nil {
		respondDomainError(c, err, "Failed to evolve token")
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenToDTO(token))
}

// Breed breeds two tokens into a new one
func (h *handler) Breed(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	var req dto.BreedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if req.Recipient == "" {
		req.Recipient = identity
	}

	token, err := h.engine.Breed(c.Request.Context(), identity, req.ParentOne, req.ParentTwo, req.Recipient)
	if err != nil {
		respondDomainError(c, err, "Failed to breed tokens")
		return
	}

	response := dto.MapTokenToDTO(token)
	response.Owner = req.Recipient
	c.JSON(http.StatusCreated, response)
}

// Transfer transfers a token to a new owner
func (h *handler) Transfer(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	id, ok := tokenID(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if req.Sender == "" {
		req.Sender = identity
	}

	if err := h.engine.Transfer(c.Request.Context(), identity, id, req.Sender, req.Recipient); err != nil {
		respondDomainError(c, err, "Failed to transfer token")
		return
	}

	c.JSON(http.StatusOK, dto.OwnerResponse{TokenID: id, Owner: req.Recipient})
}

// TogglePause flips the contract pause flag
func (h *handler) TogglePause(c *gin.Context) {
	h.toggle(c, "contract_paused", h.engine.TogglePause)
}

// ToggleEvolution flips the evolution feature flag
func (h *handler) ToggleEvolution(c *gin.Context) {
	h.toggle(c, "evolution_enabled", h.engine.ToggleEvolution)
}

// ToggleBreeding flips the breeding feature flag
func (h *handler) ToggleBreeding(c *gin.Context) {
	h.toggle(c, "breeding_enabled", h.engine.ToggleBreeding)
}

func (h *handler) toggle(c *gin.Context, flag string, fn func(ctx context.Context, identity string) (bool, error)) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	value, err := fn(c.Request.Context(), identity)
	if err != nil {
		respondDomainError(c, err, "Failed to toggle "+flag)
		return
	}

	c.JSON(http.StatusOK, dto.ToggleResponse{Flag: flag, Value: value})
}

// Deposit credits an identity's balance
func (h *handler) Deposit(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.engine.Deposit(c.Request.Context(), identity, req.Identity, req.Amount); err != nil {
		respondDomainError(c, err, "Failed to deposit")
		return
	}

	balance, err := h.engine.BalanceOf(c.Request.Context(), req.Identity)
	if err != nil {
		respondInternalError(c, err, "Failed to get balance")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Identity: req.Identity, Balance: balance})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "dynamicgens-api",
	})
}
