package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"contaluz/internal/domain"
	"contaluz/internal/export"
	"contaluz/internal/port"
	"contaluz/internal/service"
)

// BillHandler handles the bill pipeline and dashboard endpoints.
type BillHandler struct {
	billService  service.BillService
	authService  service.AuthService
	extractorSet bool
}

// NewBillHandler creates a new BillHandler. extractorConfigured reports
// whether an extraction API key is present; without it processing requests
// are refused up front.
func NewBillHandler(billService service.BillService, authService service.AuthService, extractorConfigured bool) *BillHandler {
	return &BillHandler{
		billService:  billService,
		authService:  authService,
		extractorSet: extractorConfigured,
	}
}

// processRequest is the upload body shared by the legacy and v1 routes.
type processRequest struct {
	Files []port.BillDocument `json:"files"`
}

// BillView is a bill row plus its derived display values, computed fresh on
// every render from the stored fields.
type BillView struct {
	domain.Bill
	ConsumedEnergyValue float64 `json:"consumed_energy_value"`
	DiscountedValue     float64 `json:"discounted_value"`
}

func toViews(bills []domain.Bill) []BillView {
	views := make([]BillView, len(bills))
	for i := range bills {
		views[i] = BillView{
			Bill:                bills[i],
			ConsumedEnergyValue: bills[i].ConsumedEnergyValue(),
			DiscountedValue:     bills[i].DiscountedValue(),
		}
	}
	return views
}

// ProcessLegacy handles POST /api/process-bill with the flat {message}/{error}
// envelope of the original deployment. It resolves the bearer token itself so
// the error shape stays exactly as published; the pipeline underneath is the
// same one the v1 route uses.
func (h *BillHandler) ProcessLegacy(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method Not Allowed"})
		return
	}
	if !h.extractorSet {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "A chave da API do Gemini não está configurada."})
		return
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Acesso não autorizado. Nenhum token fornecido."})
		return
	}
	claims, err := h.authService.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado. Por favor, faça login novamente."})
		return
	}

	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhum arquivo foi enviado."})
		return
	}

	result, err := h.billService.Process(c.Request.Context(), claims.UserID, req.Files)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": result.Message()})
}

// Process handles POST /api/v1/bills/process
// @Summary Process uploaded bill documents
// @Description Extract bills from uploaded files via the AI service and persist them
// @Tags bills
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse "Batch summary"
// @Failure 400 {object} APIResponse "No files uploaded"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 500 {object} APIResponse "Extraction or persistence failure"
// @Security BearerAuth
// @Router /bills/process [post]
func (h *BillHandler) Process(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	if !h.extractorSet {
		RespondError(c, http.StatusInternalServerError, "NOT_CONFIGURED", "extraction API key is not configured")
		return
	}

	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must contain a files array")
		return
	}
	if len(req.Files) == 0 {
		HandleError(c, domain.ErrNoFiles)
		return
	}

	result, err := h.billService.Process(c.Request.Context(), userID, req.Files)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"message":    result.Message(),
		"added":      result.Added,
		"duplicates": result.Duplicates,
		"rejected":   result.Rejected,
	})
}

// List handles GET /api/v1/bills
// @Summary List the caller's bills
// @Description Bills ordered by reference month descending, with derived values
// @Tags bills
// @Produce json
// @Success 200 {object} APIResponse
// @Security BearerAuth
// @Router /bills [get]
func (h *BillHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	bills, err := h.billService.List(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, toViews(bills))
}

// Summary handles GET /api/v1/bills/summary
// @Summary Aggregate dashboard metrics over the caller's bills
// @Tags bills
// @Produce json
// @Success 200 {object} APIResponse
// @Security BearerAuth
// @Router /bills/summary [get]
func (h *BillHandler) Summary(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	summary, err := h.billService.Summary(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}

// TogglePaid handles PATCH /api/v1/bills/:id/paid
// @Summary Toggle a bill's paid status
// @Tags bills
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse "Bill not found"
// @Security BearerAuth
// @Router /bills/{id}/paid [patch]
func (h *BillHandler) TogglePaid(c *gin.Context) {
	h.mutate(c, h.billService.TogglePaid)
}

// ToggleCompensationType handles PATCH /api/v1/bills/:id/compensation-type
// @Summary Toggle a bill's compensated energy type
// @Tags bills
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse "Bill not found"
// @Security BearerAuth
// @Router /bills/{id}/compensation-type [patch]
func (h *BillHandler) ToggleCompensationType(c *gin.Context) {
	h.mutate(c, h.billService.ToggleCompensationType)
}

type discountRequest struct {
	Value float64 `json:"value" binding:"min=0,max=100"`
}

// SetDiscount handles PUT /api/v1/bills/:id/discount
// @Summary Set a bill's contracted discount percentage
// @Tags bills
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse "Invalid discount"
// @Failure 404 {object} APIResponse "Bill not found"
// @Security BearerAuth
// @Router /bills/{id}/discount [put]
func (h *BillHandler) SetDiscount(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := billID(c)
	if !ok {
		return
	}

	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_DISCOUNT", "discount must be between 0 and 100")
		return
	}

	bill, err := h.billService.SetDiscount(c.Request.Context(), userID, id, req.Value)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, toView(bill))
}

// Delete handles DELETE /api/v1/bills/:id
// @Summary Delete a bill
// @Description Returns the deleted row; a delete that affects no rows fails
// @Tags bills
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse "Bill not found or delete rejected"
// @Security BearerAuth
// @Router /bills/{id} [delete]
func (h *BillHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := billID(c)
	if !ok {
		return
	}

	bill, err := h.billService.Delete(c.Request.Context(), userID, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, toView(bill))
}

// Export handles GET /api/v1/bills/export?format=csv|xlsx|pdf
// @Summary Export the caller's bills
// @Tags bills
// @Produce octet-stream
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} file
// @Security BearerAuth
// @Router /bills/export [get]
func (h *BillHandler) Export(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	bills, err := h.billService.List(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	summary := domain.Summarize(bills)

	format := c.DefaultQuery("format", "csv")
	filename := fmt.Sprintf("contas-%s.%s", time.Now().Format("2006-01-02"), format)

	var (
		data        []byte
		contentType string
	)
	switch format {
	case "csv":
		data, err = export.BuildCSV(bills, summary)
		contentType = "text/csv"
	case "xlsx":
		data, err = export.BuildXLSX(bills, summary)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		data, err = export.BuildPDF(bills, summary)
		contentType = "application/pdf"
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv, xlsx or pdf")
		return
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// mutate runs a toggle operation against the bill named in the path and
// responds with the updated row.
func (h *BillHandler) mutate(c *gin.Context, op func(ctx context.Context, userID uuid.UUID, id int64) (*domain.Bill, error)) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := billID(c)
	if !ok {
		return
	}

	bill, err := op(c.Request.Context(), userID, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, toView(bill))
}

func toView(bill *domain.Bill) BillView {
	return BillView{
		Bill:                *bill,
		ConsumedEnergyValue: bill.ConsumedEnergyValue(),
		DiscountedValue:     bill.DiscountedValue(),
	}
}

func billID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "bill id must be a positive integer")
		return 0, false
	}
	return id, true
}
