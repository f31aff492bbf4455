package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/services"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/dto"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/middleware"
)

// periodHandler handles HTTP requests related to fiscal periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(periodService portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: periodService}
}

// createPeriod godoc
// @Summary Open a fiscal period
// @Description Opens a new fiscal period for a calendar month
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   period body dto.CreatePeriodRequest true "Year and month"
// @Success 201 {object} dto.PeriodResponse "Created period"
// @Failure 403 {object} map[string]string "Caller lacks the ADMIN role"
// @Failure 409 {object} map[string]string "Period already exists for this month"
// @Router /organizations/{organizationID}/periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.CreatePeriodRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreatePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), organizationID, req, creatorUserID)
	if err != nil {
		logger.Warn("Failed to create period", slog.String("error", err.Error()))
		respondError(c, err, "Failed to create period")
		return
	}

	logger.Info("Period created", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// getPeriod godoc
// @Summary Get a fiscal period by ID
// @Tags periods
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse "Period details"
// @Failure 404 {object} map[string]string "Period not found"
// @Router /organizations/{organizationID}/periods/{periodID} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	periodID := c.Param("periodID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.GetPeriodByID(c.Request.Context(), organizationID, periodID, userID)
	if err != nil {
		logger.Warn("Failed to get period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		respondError(c, err, "Failed to retrieve period")
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List fiscal periods
// @Description Lists all periods of the organization, newest first
// @Tags periods
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Success 200 {object} dto.ListPeriodsResponse "Periods"
// @Failure 403 {object} map[string]string "Caller is not a member"
// @Router /organizations/{organizationID}/periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), organizationID, userID)
	if err != nil {
		logger.Warn("Failed to list periods", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		respondError(c, err, "Failed to list periods")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPeriodsResponse(periods))
}

// validateClose godoc
// @Summary Run pre-close checks on a period
// @Description Reports the findings that would block a close, without changing anything
// @Tags periods
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.CloseValidationResponse "Whether the period can close and why not"
// @Failure 404 {object} map[string]string "Period not found"
// @Router /organizations/{organizationID}/periods/{periodID}/close-validation [get]
func (h *periodHandler) validateClose(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	periodID := c.Param("periodID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.periodService.ValidateClose(c.Request.Context(), organizationID, periodID, userID)
	if err != nil {
		logger.Warn("Failed to validate period close", slog.String("error", err.Error()), slog.String("period_id", periodID))
		respondError(c, err, "Failed to validate period close")
		return
	}

	c.JSON(http.StatusOK, dto.ToCloseValidationResponse(report))
}

// closePeriod godoc
// @Summary Close a fiscal period
// @Description Validates and closes an open or reopened period
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   periodID path string true "Period ID"
// @Param   close body dto.ClosePeriodRequest true "Optional close reason"
// @Success 200 {object} dto.PeriodResponse "Closed period"
// @Failure 400 {object} map[string]string "Close validation failed"
// @Failure 403 {object} map[string]string "Caller lacks the ADMIN role"
// @Failure 409 {object} map[string]string "Period is not open"
// @Router /organizations/{organizationID}/periods/{periodID}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	periodID := c.Param("periodID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.ClosePeriodRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for ClosePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	period, err := h.periodService.ClosePeriod(c.Request.Context(), organizationID, periodID, req, userID)
	if err != nil {
		logger.Warn("Failed to close period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		respondError(c, err, "Failed to close period")
		return
	}

	logger.Info("Period closed", slog.String("period_id", periodID))
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// reopenPeriod godoc
// @Summary Reopen a closed period
// @Description Reopens a closed period; a reason is mandatory
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   periodID path string true "Period ID"
// @Param   reopen body dto.ReopenPeriodRequest true "Reopen reason"
// @Success 200 {object} dto.PeriodResponse "Reopened period"
// @Failure 403 {object} map[string]string "Caller lacks the ADMIN role"
// @Failure 409 {object} map[string]string "Period is not closed"
// @Router /organizations/{organizationID}/periods/{periodID}/reopen [post]
func (h *periodHandler) reopenPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	periodID := c.Param("periodID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.ReopenPeriodRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for ReopenPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	period, err := h.periodService.ReopenPeriod(c.Request.Context(), organizationID, periodID, req, userID)
	if err != nil {
		logger.Warn("Failed to reopen period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		respondError(c, err, "Failed to reopen period")
		return
	}

	logger.Info("Period reopened", slog.String("period_id", periodID))
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// registerPeriodRoutes registers fiscal period specific routes
func registerPeriodRoutes(group *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := group.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:periodID", h.getPeriod)
		periods.GET("/:periodID/close-validation", h.validateClose)
		periods.POST("/:periodID/close", h.closePeriod)
		periods.POST("/:periodID/reopen", h.reopenPeriod)
	}
}
