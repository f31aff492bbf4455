package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/services"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/dto"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/middleware"
)

// organizationHandler handles HTTP requests related to organizations.
type organizationHandler struct {
	organizationService portssvc.OrganizationSvcFacade
}

func newOrganizationHandler(organizationService portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{organizationService: organizationService}
}

// createOrganization godoc
// @Summary Create an organization
// @Description Creates an organization with the caller as ADMIN
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization body dto.CreateOrganizationRequest true "Organization data"
// @Success 201 {object} dto.OrganizationResponse "Created organization"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Tax ID already registered"
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.CreateOrganizationRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateOrganization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	organization, err := h.organizationService.CreateOrganization(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Warn("Failed to create organization", slog.String("error", err.Error()))
		respondError(c, err, "Failed to create organization")
		return
	}

	logger.Info("Organization created", slog.String("organization_id", organization.OrganizationID))
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(organization))
}

// listOrganizations godoc
// @Summary List the caller's organizations
// @Tags organizations
// @Produce  json
// @Success 200 {object} dto.ListOrganizationsResponse "Organizations"
// @Router /organizations [get]
func (h *organizationHandler) listOrganizations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	organizations, err := h.organizationService.ListUserOrganizations(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list organizations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list organizations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListOrganizationsResponse(organizations))
}

// getOrganization godoc
// @Summary Get an organization by ID
// @Tags organizations
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse "Organization details"
// @Failure 403 {object} map[string]string "Caller is not a member"
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /organizations/{organizationID} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	organization, err := h.organizationService.GetOrganizationByID(c.Request.Context(), organizationID, userID)
	if err != nil {
		logger.Warn("Failed to get organization", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		respondError(c, err, "Failed to retrieve organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(organization))
}

// updateOrganization godoc
// @Summary Update an organization
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   organization body dto.UpdateOrganizationRequest true "Fields to update"
// @Success 200 {object} dto.OrganizationResponse "Updated organization"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Router /organizations/{organizationID} [put]
func (h *organizationHandler) updateOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.UpdateOrganizationRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for UpdateOrganization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	organization, err := h.organizationService.UpdateOrganization(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		logger.Warn("Failed to update organization", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		respondError(c, err, "Failed to update organization")
		return
	}

	logger.Info("Organization updated", slog.String("organization_id", organizationID))
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(organization))
}

// listOrganizationUsers godoc
// @Summary List an organization's members
// @Tags organizations
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Success 200 {object} dto.ListOrganizationUsersResponse "Memberships"
// @Failure 403 {object} map[string]string "Caller is not a member"
// @Router /organizations/{organizationID}/users [get]
func (h *organizationHandler) listOrganizationUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	memberships, err := h.organizationService.ListOrganizationUsers(c.Request.Context(), organizationID, userID)
	if err != nil {
		logger.Warn("Failed to list organization users", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		respondError(c, err, "Failed to list organization users")
		return
	}

	c.JSON(http.StatusOK, dto.ToListOrganizationUsersResponse(memberships))
}

// addOrganizationUser godoc
// @Summary Add a member to an organization
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   membership body dto.AddUserToOrganizationRequest true "User and role"
// @Success 201 {object} dto.UserOrganizationResponse "Created membership"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 409 {object} map[string]string "User already a member"
// @Router /organizations/{organizationID}/users [post]
func (h *organizationHandler) addOrganizationUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.AddUserToOrganizationRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for AddUserToOrganization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	membership, err := h.organizationService.AddUserToOrganization(c.Request.Context(), organizationID, req, requestingUserID)
	if err != nil {
		logger.Warn("Failed to add user to organization", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		respondError(c, err, "Failed to add user to organization")
		return
	}

	logger.Info("User added to organization", slog.String("organization_id", organizationID), slog.String("user_id", req.UserID))
	c.JSON(http.StatusCreated, dto.ToUserOrganizationResponse(membership))
}

// updateOrganizationUserRole godoc
// @Summary Change a member's role
// @Description Changes a member's role; assigning REMOVED revokes access
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   userID path string true "Target user ID"
// @Param   role body dto.UpdateUserRoleRequest true "New role"
// @Success 200 {object} dto.UserOrganizationResponse "Updated membership"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Router /organizations/{organizationID}/users/{userID}/role [put]
func (h *organizationHandler) updateOrganizationUserRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	targetUserID := c.Param("userID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.UpdateUserRoleRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for UpdateUserRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	membership, err := h.organizationService.UpdateUserRole(c.Request.Context(), organizationID, targetUserID, req, requestingUserID)
	if err != nil {
		logger.Warn("Failed to update member role", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		respondError(c, err, "Failed to update member role")
		return
	}

	logger.Info("Member role updated", slog.String("organization_id", organizationID), slog.String("user_id", targetUserID))
	c.JSON(http.StatusOK, dto.ToUserOrganizationResponse(membership))
}

// registerOrganizationRoutes registers organization specific routes
func registerOrganizationRoutes(group *gin.RouterGroup, organizationService portssvc.OrganizationSvcFacade) {
	h := newOrganizationHandler(organizationService)

	organizations := group.Group("/organizations")
	{
		organizations.POST("", h.createOrganization)
		organizations.GET("", h.listOrganizations)
		organizations.GET("/:organizationID", h.getOrganization)
		organizations.PUT("/:organizationID", h.updateOrganization)
		organizations.GET("/:organizationID/users", h.listOrganizationUsers)
		organizations.POST("/:organizationID/users", h.addOrganizationUser)
		organizations.PUT("/:organizationID/users/:userID/role", h.updateOrganizationUserRole)
	}
}
