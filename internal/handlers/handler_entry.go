package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	portssvc "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/services"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/dto"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/middleware"
)

// entryHandler handles HTTP requests related to journal entries.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

func newEntryHandler(entryService portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{entryService: entryService}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Creates a balanced draft entry with at least two lines
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   entry body dto.CreateEntryRequest true "Entry header and lines"
// @Success 201 {object} dto.EntryResponse "Created draft"
// @Failure 400 {object} map[string]string "Unbalanced lines or invalid data"
// @Failure 403 {object} map[string]string "Caller lacks the MEMBER role"
// @Failure 409 {object} map[string]string "Target period is closed"
// @Router /organizations/{organizationID}/entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.CreateEntryRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), organizationID, req, creatorUserID)
	if err != nil {
		logger.Warn("Failed to create entry", slog.String("error", err.Error()))
		respondError(c, err, "Failed to create entry")
		return
	}

	logger.Info("Entry created", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags entries
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse "Entry and its lines"
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /organizations/{organizationID}/entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), organizationID, entryID, userID)
	if err != nil {
		logger.Warn("Failed to get entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		respondError(c, err, "Failed to retrieve entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first with token-based pagination
// @Tags entries
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   limit query int false "Page size, defaults to 50"
// @Param   nextToken query string false "Opaque pagination cursor"
// @Param   status query string false "Filter by entry status"
// @Success 200 {object} dto.ListEntriesResponse "Page of entries"
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Router /organizations/{organizationID}/entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	params := dto.ListEntriesParams{}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		params.Limit = limit
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.EntryStatus(statusStr)
		params.Status = &status
	}

	resp, err := h.entryService.ListEntries(c.Request.Context(), organizationID, userID, params)
	if err != nil {
		logger.Warn("Failed to list entries", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		respondError(c, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateEntry godoc
// @Summary Update a draft entry
// @Description Edits a draft; posted entries are immutable
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateEntryRequest true "Fields to update"
// @Success 200 {object} dto.EntryResponse "Updated draft"
// @Failure 409 {object} map[string]string "Entry is no longer a draft"
// @Router /organizations/{organizationID}/entries/{entryID} [put]
func (h *entryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.UpdateEntryRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for UpdateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), organizationID, entryID, req, userID)
	if err != nil {
		logger.Warn("Failed to update entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		respondError(c, err, "Failed to update entry")
		return
	}

	logger.Info("Entry updated", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// postEntry godoc
// @Summary Post a draft entry
// @Description Transitions a balanced draft to POSTED, making it immutable
// @Tags entries
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse "Posted entry"
// @Failure 409 {object} map[string]string "Entry already posted or period closed"
// @Router /organizations/{organizationID}/entries/{entryID}/post [post]
func (h *entryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.PostEntry(c.Request.Context(), organizationID, entryID, userID)
	if err != nil {
		logger.Warn("Failed to post entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		respondError(c, err, "Failed to post entry")
		return
	}

	logger.Info("Entry posted", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted entry
// @Description Creates and posts a mirror-image reversal
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   entryID path string true "Entry ID"
// @Param   reversal body dto.ReverseEntryRequest true "Reversal date and narrative"
// @Success 201 {object} dto.EntryResponse "Posted reversal entry"
// @Failure 409 {object} map[string]string "Entry is not posted or already reversed"
// @Router /organizations/{organizationID}/entries/{entryID}/reverse [post]
func (h *entryHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.ReverseEntryRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for ReverseEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	reversal, err := h.entryService.ReverseEntry(c.Request.Context(), organizationID, entryID, req, userID)
	if err != nil {
		logger.Warn("Failed to reverse entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		respondError(c, err, "Failed to reverse entry")
		return
	}

	logger.Info("Entry reversed", slog.String("entry_id", entryID), slog.String("reversal_entry_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}

// adjustEntry godoc
// @Summary Adjust a posted entry
// @Description Reverses the entry and opens a corrected draft in its place
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   entryID path string true "Entry ID"
// @Param   adjustment body dto.AdjustEntryRequest true "Corrected lines"
// @Success 201 {object} dto.EntryResponse "Replacement draft"
// @Failure 409 {object} map[string]string "Entry is not posted"
// @Router /organizations/{organizationID}/entries/{entryID}/adjust [post]
func (h *entryHandler) adjustEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.AdjustEntryRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for AdjustEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	draft, err := h.entryService.AdjustEntry(c.Request.Context(), organizationID, entryID, req, userID)
	if err != nil {
		logger.Warn("Failed to adjust entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		respondError(c, err, "Failed to adjust entry")
		return
	}

	logger.Info("Entry adjusted", slog.String("entry_id", entryID), slog.String("draft_entry_id", draft.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(draft))
}

// voidEntry godoc
// @Summary Void a posted entry
// @Description Marks a posted entry VOIDED with a mandatory reason
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   entryID path string true "Entry ID"
// @Param   void body dto.VoidEntryRequest true "Void reason"
// @Success 200 {object} dto.EntryResponse "Voided entry"
// @Failure 403 {object} map[string]string "Caller lacks the ADMIN role"
// @Failure 409 {object} map[string]string "Entry is not posted"
// @Router /organizations/{organizationID}/entries/{entryID}/void [post]
func (h *entryHandler) voidEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.VoidEntryRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for VoidEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.entryService.VoidEntry(c.Request.Context(), organizationID, entryID, req, userID)
	if err != nil {
		logger.Warn("Failed to void entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		respondError(c, err, "Failed to void entry")
		return
	}

	logger.Info("Entry voided", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// cancelEntry godoc
// @Summary Cancel a draft entry
// @Description Discards a draft; it never reaches the ledger
// @Tags entries
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   entryID path string true "Entry ID"
// @Success 204 "Draft discarded"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Router /organizations/{organizationID}/entries/{entryID} [delete]
func (h *entryHandler) cancelEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.entryService.CancelEntry(c.Request.Context(), organizationID, entryID, userID); err != nil {
		logger.Warn("Failed to cancel entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		respondError(c, err, "Failed to cancel entry")
		return
	}

	logger.Info("Entry cancelled", slog.String("entry_id", entryID))
	c.Status(http.StatusNoContent)
}

// registerEntryRoutes registers journal entry specific routes
func registerEntryRoutes(group *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	entries := group.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.updateEntry)
		entries.DELETE("/:entryID", h.cancelEntry)
		entries.POST("/:entryID/post", h.postEntry)
		entries.POST("/:entryID/reverse", h.reverseEntry)
		entries.POST("/:entryID/adjust", h.adjustEntry)
		entries.POST("/:entryID/void", h.voidEntry)
	}
}
