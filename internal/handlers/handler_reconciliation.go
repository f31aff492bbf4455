package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/services"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/dto"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/middleware"
)

// reconciliationHandler handles HTTP requests related to bank reconciliation.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(reconciliationService portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: reconciliationService}
}

// createBankAccount godoc
// @Summary Register a bank account
// @Description Links a ledger account to an external bank identity
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   bankAccount body dto.CreateBankAccountRequest true "Bank account data"
// @Success 201 {object} dto.BankAccountResponse "Created bank account"
// @Failure 400 {object} map[string]string "Ledger account missing or inactive"
// @Failure 403 {object} map[string]string "Caller lacks the ADMIN role"
// @Router /organizations/{organizationID}/bank-accounts [post]
func (h *reconciliationHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.CreateBankAccountRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	bankAccount, err := h.reconciliationService.CreateBankAccount(c.Request.Context(), organizationID, req, creatorUserID)
	if err != nil {
		logger.Warn("Failed to create bank account", slog.String("error", err.Error()))
		respondError(c, err, "Failed to create bank account")
		return
	}

	logger.Info("Bank account created", slog.String("bank_account_id", bankAccount.BankAccountID))
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(bankAccount))
}

// getBankAccount godoc
// @Summary Get a bank account by ID
// @Tags reconciliation
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   bankAccountID path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse "Bank account details"
// @Failure 404 {object} map[string]string "Bank account not found"
// @Router /organizations/{organizationID}/bank-accounts/{bankAccountID} [get]
func (h *reconciliationHandler) getBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	bankAccountID := c.Param("bankAccountID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bankAccount, err := h.reconciliationService.GetBankAccountByID(c.Request.Context(), organizationID, bankAccountID, userID)
	if err != nil {
		logger.Warn("Failed to get bank account", slog.String("error", err.Error()), slog.String("bank_account_id", bankAccountID))
		respondError(c, err, "Failed to retrieve bank account")
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponse(bankAccount))
}

// listBankAccounts godoc
// @Summary List the organization's bank accounts
// @Tags reconciliation
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Success 200 {object} dto.ListBankAccountsResponse "Bank accounts"
// @Failure 403 {object} map[string]string "Caller is not a member"
// @Router /organizations/{organizationID}/bank-accounts [get]
func (h *reconciliationHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bankAccounts, err := h.reconciliationService.ListBankAccounts(c.Request.Context(), organizationID, userID)
	if err != nil {
		logger.Warn("Failed to list bank accounts", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		respondError(c, err, "Failed to list bank accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBankAccountsResponse(bankAccounts))
}

// importStatement godoc
// @Summary Import a bank statement
// @Description Persists inline statement rows for one period; an unmatched prior statement is replaced
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   bankAccountID path string true "Bank account ID"
// @Param   statement body dto.ImportStatementRequest true "Statement rows and closing balance"
// @Success 201 {object} dto.StatementResponse "Imported statement"
// @Failure 400 {object} map[string]string "Rows outside the period or no rows"
// @Failure 409 {object} map[string]string "Existing statement has confirmed matches"
// @Router /organizations/{organizationID}/bank-accounts/{bankAccountID}/statements [post]
func (h *reconciliationHandler) importStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	bankAccountID := c.Param("bankAccountID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.ImportStatementRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for ImportStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	statement, err := h.reconciliationService.ImportStatement(c.Request.Context(), organizationID, bankAccountID, req, userID)
	if err != nil {
		logger.Warn("Failed to import statement", slog.String("error", err.Error()), slog.String("bank_account_id", bankAccountID))
		respondError(c, err, "Failed to import statement")
		return
	}

	logger.Info("Statement imported", slog.String("statement_id", statement.StatementID), slog.Int("rows", statement.TransactionCount))
	c.JSON(http.StatusCreated, dto.ToStatementResponse(statement, nil, nil))
}

// importStatementXLSX godoc
// @Summary Import a bank statement from an XLSX upload
// @Description Parses the first sheet of an XLSX workbook and persists its rows
// @Tags reconciliation
// @Accept  mpfd
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   bankAccountID path string true "Bank account ID"
// @Param   periodID formData string true "Period ID"
// @Param   file formData file true "XLSX statement file"
// @Success 201 {object} dto.StatementResponse "Imported statement"
// @Failure 400 {object} map[string]string "Unparseable workbook or rows outside the period"
// @Router /organizations/{organizationID}/bank-accounts/{bankAccountID}/statements/xlsx [post]
func (h *reconciliationHandler) importStatementXLSX(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	bankAccountID := c.Param("bankAccountID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	periodID := c.PostForm("periodID")
	if periodID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "periodID form field is required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Error("Missing XLSX upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "file form field is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open XLSX upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	statement, err := h.reconciliationService.ImportStatementXLSX(c.Request.Context(), organizationID, bankAccountID, periodID, file, userID)
	if err != nil {
		logger.Warn("Failed to import XLSX statement", slog.String("error", err.Error()), slog.String("bank_account_id", bankAccountID))
		respondError(c, err, "Failed to import statement")
		return
	}

	logger.Info("XLSX statement imported", slog.String("statement_id", statement.StatementID), slog.Int("rows", statement.TransactionCount))
	c.JSON(http.StatusCreated, dto.ToStatementResponse(statement, nil, nil))
}

// getStatement godoc
// @Summary Get an imported statement with its rows
// @Tags reconciliation
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   bankAccountID path string true "Bank account ID"
// @Param   statementID path string true "Statement ID"
// @Success 200 {object} dto.StatementResponse "Statement, rows, and match flags"
// @Failure 404 {object} map[string]string "Statement not found"
// @Router /organizations/{organizationID}/bank-accounts/{bankAccountID}/statements/{statementID} [get]
func (h *reconciliationHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	bankAccountID := c.Param("bankAccountID")
	statementID := c.Param("statementID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.reconciliationService.GetStatement(c.Request.Context(), organizationID, bankAccountID, statementID, userID)
	if err != nil {
		logger.Warn("Failed to get statement", slog.String("error", err.Error()), slog.String("statement_id", statementID))
		respondError(c, err, "Failed to retrieve statement")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// suggestMatches godoc
// @Summary Suggest statement-to-ledger matches
// @Description Proposes pairings ranked HIGH, MEDIUM, LOW without persisting anything
// @Tags reconciliation
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   bankAccountID path string true "Bank account ID"
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.ListSuggestionsResponse "Ranked suggestions"
// @Failure 400 {object} map[string]string "No statement imported for this period"
// @Router /organizations/{organizationID}/bank-accounts/{bankAccountID}/periods/{periodID}/suggestions [get]
func (h *reconciliationHandler) suggestMatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	bankAccountID := c.Param("bankAccountID")
	periodID := c.Param("periodID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	suggestions, err := h.reconciliationService.SuggestMatches(c.Request.Context(), organizationID, bankAccountID, periodID, userID)
	if err != nil {
		logger.Warn("Failed to suggest matches", slog.String("error", err.Error()), slog.String("period_id", periodID))
		respondError(c, err, "Failed to suggest matches")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSuggestionsResponse(suggestions))
}

// confirmMatch godoc
// @Summary Confirm a statement-to-ledger match
// @Description Persists a one-to-one pairing of a bank transaction and a posted entry line
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   bankAccountID path string true "Bank account ID"
// @Param   match body dto.CreateMatchRequest true "Transaction and line IDs"
// @Success 201 {object} dto.MatchResponse "Confirmed match"
// @Failure 400 {object} map[string]string "Line not posted or wrong account"
// @Failure 409 {object} map[string]string "Either side is already matched"
// @Router /organizations/{organizationID}/bank-accounts/{bankAccountID}/matches [post]
func (h *reconciliationHandler) confirmMatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	bankAccountID := c.Param("bankAccountID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.CreateMatchRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for ConfirmMatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	match, err := h.reconciliationService.ConfirmMatch(c.Request.Context(), organizationID, bankAccountID, req, userID)
	if err != nil {
		logger.Warn("Failed to confirm match", slog.String("error", err.Error()), slog.String("bank_transaction_id", req.BankTransactionID))
		respondError(c, err, "Failed to confirm match")
		return
	}

	logger.Info("Match confirmed", slog.String("match_id", match.MatchID))
	c.JSON(http.StatusCreated, dto.ToMatchResponse(match))
}

// bulkConfirmMatches godoc
// @Summary Confirm several matches in one call
// @Description Attempts each pairing independently and reports per-pair outcomes
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   bankAccountID path string true "Bank account ID"
// @Param   matches body dto.BulkMatchRequest true "Pairings to confirm"
// @Success 200 {object} dto.BulkMatchResponse "Per-pair results"
// @Failure 403 {object} map[string]string "Caller lacks the MEMBER role"
// @Router /organizations/{organizationID}/bank-accounts/{bankAccountID}/matches/bulk [post]
func (h *reconciliationHandler) bulkConfirmMatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	bankAccountID := c.Param("bankAccountID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.BulkMatchRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for BulkConfirmMatches", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	resp, err := h.reconciliationService.BulkConfirmMatches(c.Request.Context(), organizationID, bankAccountID, req, userID)
	if err != nil {
		logger.Warn("Failed to bulk confirm matches", slog.String("error", err.Error()), slog.String("bank_account_id", bankAccountID))
		respondError(c, err, "Failed to confirm matches")
		return
	}

	logger.Info("Bulk match completed", slog.Int("succeeded", resp.Succeeded), slog.Int("failed", resp.Failed))
	c.JSON(http.StatusOK, resp)
}

// unmatch godoc
// @Summary Remove a confirmed match
// @Description Deletes a pairing; refused once the period's reconciliation is finalized
// @Tags reconciliation
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   bankAccountID path string true "Bank account ID"
// @Param   matchID path string true "Match ID"
// @Success 204 "Match removed"
// @Failure 404 {object} map[string]string "Match not found"
// @Failure 409 {object} map[string]string "Reconciliation already finalized"
// @Router /organizations/{organizationID}/bank-accounts/{bankAccountID}/matches/{matchID} [delete]
func (h *reconciliationHandler) unmatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	bankAccountID := c.Param("bankAccountID")
	matchID := c.Param("matchID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.reconciliationService.UnmatchByID(c.Request.Context(), organizationID, bankAccountID, matchID, userID); err != nil {
		logger.Warn("Failed to unmatch", slog.String("error", err.Error()), slog.String("match_id", matchID))
		respondError(c, err, "Failed to remove match")
		return
	}

	logger.Info("Match removed", slog.String("match_id", matchID))
	c.Status(http.StatusNoContent)
}

// listMatches godoc
// @Summary List the confirmed matches of a period
// @Tags reconciliation
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   bankAccountID path string true "Bank account ID"
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.ListMatchesResponse "Matches"
// @Failure 400 {object} map[string]string "No statement imported for this period"
// @Router /organizations/{organizationID}/bank-accounts/{bankAccountID}/periods/{periodID}/matches [get]
func (h *reconciliationHandler) listMatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	bankAccountID := c.Param("bankAccountID")
	periodID := c.Param("periodID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	matches, err := h.reconciliationService.ListMatches(c.Request.Context(), organizationID, bankAccountID, periodID, userID)
	if err != nil {
		logger.Warn("Failed to list matches", slog.String("error", err.Error()), slog.String("period_id", periodID))
		respondError(c, err, "Failed to list matches")
		return
	}

	c.JSON(http.StatusOK, dto.ToListMatchesResponse(matches))
}

// reconciliationSummary godoc
// @Summary Compute the book versus bank position
// @Description Reports book balance, adjusted bank balance, pending items, and the difference
// @Tags reconciliation
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   bankAccountID path string true "Bank account ID"
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.ReconciliationSummaryResponse "Current position"
// @Failure 400 {object} map[string]string "No statement imported for this period"
// @Router /organizations/{organizationID}/bank-accounts/{bankAccountID}/periods/{periodID}/reconciliation [get]
func (h *reconciliationHandler) reconciliationSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	bankAccountID := c.Param("bankAccountID")
	periodID := c.Param("periodID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.reconciliationService.Summary(c.Request.Context(), organizationID, bankAccountID, periodID, userID)
	if err != nil {
		logger.Warn("Failed to compute reconciliation summary", slog.String("error", err.Error()), slog.String("period_id", periodID))
		respondError(c, err, "Failed to compute reconciliation summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationSummaryResponse(summary))
}

// finalizeReconciliation godoc
// @Summary Finalize a period's reconciliation
// @Description Persists the reconciliation outcome; one finalization per (bank account, period)
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   bankAccountID path string true "Bank account ID"
// @Param   finalize body dto.FinalizeReconciliationRequest true "Period, optional pending amounts and notes"
// @Success 201 {object} dto.ReconciliationResponse "Finalized record"
// @Failure 403 {object} map[string]string "Caller lacks the ADMIN role"
// @Failure 409 {object} map[string]string "Already finalized for this period"
// @Router /organizations/{organizationID}/bank-accounts/{bankAccountID}/reconciliation/finalize [post]
func (h *reconciliationHandler) finalizeReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organizationID")
	bankAccountID := c.Param("bankAccountID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := dto.FinalizeReconciliationRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for FinalizeReconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	recon, err := h.reconciliationService.Finalize(c.Request.Context(), organizationID, bankAccountID, req, userID)
	if err != nil {
		logger.Warn("Failed to finalize reconciliation", slog.String("error", err.Error()), slog.String("period_id", req.PeriodID))
		respondError(c, err, "Failed to finalize reconciliation")
		return
	}

	logger.Info("Reconciliation finalized", slog.String("reconciliation_id", recon.ReconciliationID))
	c.JSON(http.StatusCreated, dto.ToReconciliationResponse(recon))
}

// registerReconciliationRoutes registers bank reconciliation specific routes
func registerReconciliationRoutes(group *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	bankAccounts := group.Group("/bank-accounts")
	{
		bankAccounts.POST("", h.createBankAccount)
		bankAccounts.GET("", h.listBankAccounts)
		bankAccounts.GET("/:bankAccountID", h.getBankAccount)

		bankAccounts.POST("/:bankAccountID/statements", h.importStatement)
		bankAccounts.POST("/:bankAccountID/statements/xlsx", h.importStatementXLSX)
		bankAccounts.GET("/:bankAccountID/statements/:statementID", h.getStatement)

		bankAccounts.GET("/:bankAccountID/periods/:periodID/suggestions", h.suggestMatches)
		bankAccounts.GET("/:bankAccountID/periods/:periodID/matches", h.listMatches)
		bankAccounts.GET("/:bankAccountID/periods/:periodID/reconciliation", h.reconciliationSummary)

		bankAccounts.POST("/:bankAccountID/matches", h.confirmMatch)
		bankAccounts.POST("/:bankAccountID/matches/bulk", h.bulkConfirmMatches)
		bankAccounts.DELETE("/:bankAccountID/matches/:matchID", h.unmatch)

		bankAccounts.POST("/:bankAccountID/reconciliation/finalize", h.finalizeReconciliation)
	}
}
