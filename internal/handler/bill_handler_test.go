package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"contaluz/internal/domain"
	"contaluz/internal/handler"
	"contaluz/internal/middleware"
	"contaluz/internal/service"
	"contaluz/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func processBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"files": []map[string]string{
			{"mimeType": "application/pdf", "data": "aGVsbG8="},
		},
	})
	assert.NoError(t, err)
	return body
}

func authedContext(w *httptest.ResponseRecorder, userID uuid.UUID) (*gin.Context, *gin.Engine) {
	c, r := gin.CreateTestContext(w)
	c.Set(middleware.ContextKeyUserID, userID)
	return c, r
}

func TestBillHandler_ProcessLegacy_MissingToken(t *testing.T) {
	h := handler.NewBillHandler(new(mocks.MockBillService), new(mocks.MockAuthService), true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/process-bill", bytes.NewReader(processBody(t)))

	h.ProcessLegacy(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Acesso não autorizado. Nenhum token fornecido.", resp["error"])
}

func TestBillHandler_ProcessLegacy_InvalidToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	mockAuth.On("ValidateToken", "bad-token").Return(nil, domain.ErrUnauthorized)
	h := handler.NewBillHandler(new(mocks.MockBillService), mockAuth, true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/process-bill", bytes.NewReader(processBody(t)))
	c.Request.Header.Set("Authorization", "Bearer bad-token")

	h.ProcessLegacy(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Token inválido ou expirado. Por favor, faça login novamente.", resp["error"])
}

func TestBillHandler_ProcessLegacy_WrongMethod(t *testing.T) {
	h := handler.NewBillHandler(new(mocks.MockBillService), new(mocks.MockAuthService), true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/process-bill", nil)

	h.ProcessLegacy(c)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestBillHandler_ProcessLegacy_NoFiles(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	mockAuth.On("ValidateToken", "good-token").
		Return(&service.Claims{UserID: uuid.New()}, nil)
	h := handler.NewBillHandler(new(mocks.MockBillService), mockAuth, true)

	body, _ := json.Marshal(map[string]any{"files": []any{}})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/process-bill", bytes.NewReader(body))
	c.Request.Header.Set("Authorization", "Bearer good-token")

	h.ProcessLegacy(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Nenhum arquivo foi enviado.", resp["error"])
}

func TestBillHandler_ProcessLegacy_NotConfigured(t *testing.T) {
	h := handler.NewBillHandler(new(mocks.MockBillService), new(mocks.MockAuthService), false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/process-bill", bytes.NewReader(processBody(t)))

	h.ProcessLegacy(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "A chave da API do Gemini não está configurada.", resp["error"])
}

func TestBillHandler_ProcessLegacy_Success(t *testing.T) {
	userID := uuid.New()
	mockAuth := new(mocks.MockAuthService)
	mockAuth.On("ValidateToken", "good-token").Return(&service.Claims{UserID: userID}, nil)

	mockBills := new(mocks.MockBillService)
	mockBills.On("Process", mock.Anything, userID, mock.Anything).
		Return(&domain.BatchResult{Added: 2, Duplicates: 1}, nil)

	h := handler.NewBillHandler(mockBills, mockAuth, true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/process-bill", bytes.NewReader(processBody(t)))
	c.Request.Header.Set("Authorization", "Bearer good-token")

	h.ProcessLegacy(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2 conta(s) adicionada(s).\n1 conta(s) duplicada(s) ignorada(s).", resp["message"])
	mockBills.AssertExpectations(t)
}

func TestBillHandler_Process_ExtractionFailure(t *testing.T) {
	userID := uuid.New()
	mockBills := new(mocks.MockBillService)
	mockBills.On("Process", mock.Anything, userID, mock.Anything).
		Return(nil, domain.ErrExtraction)

	h := handler.NewBillHandler(mockBills, new(mocks.MockAuthService), true)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, userID)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/bills/process", bytes.NewReader(processBody(t)))

	h.Process(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "EXTRACTION_FAILED", resp.Error.Code)
}

func TestBillHandler_Process_NoAuthContext(t *testing.T) {
	h := handler.NewBillHandler(new(mocks.MockBillService), new(mocks.MockAuthService), true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/bills/process", bytes.NewReader(processBody(t)))

	h.Process(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBillHandler_List_ReturnsDerivedValues(t *testing.T) {
	userID := uuid.New()
	discount := 10.0
	mockBills := new(mocks.MockBillService)
	mockBills.On("List", mock.Anything, userID).Return([]domain.Bill{
		{ID: 1, UserID: userID, Consumption: 100, UnitPrice: 1.0, ContractedDiscount: &discount},
	}, nil)

	h := handler.NewBillHandler(mockBills, new(mocks.MockAuthService), true)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, userID)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/bills", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			ID                  int64   `json:"id"`
			ConsumedEnergyValue float64 `json:"consumed_energy_value"`
			DiscountedValue     float64 `json:"discounted_value"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 1)
	assert.InDelta(t, 100.0, resp.Data[0].ConsumedEnergyValue, 1e-9)
	assert.InDelta(t, 90.0, resp.Data[0].DiscountedValue, 1e-9)
}

func TestBillHandler_TogglePaid_NotFound(t *testing.T) {
	userID := uuid.New()
	mockBills := new(mocks.MockBillService)
	mockBills.On("TogglePaid", mock.Anything, userID, int64(42)).
		Return(nil, domain.ErrBillNotFound)

	h := handler.NewBillHandler(mockBills, new(mocks.MockAuthService), true)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, userID)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/bills/42/paid", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	h.TogglePaid(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBillHandler_TogglePaid_InvalidID(t *testing.T) {
	h := handler.NewBillHandler(new(mocks.MockBillService), new(mocks.MockAuthService), true)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, uuid.New())
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/bills/abc/paid", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.TogglePaid(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBillHandler_SetDiscount_OutOfRange(t *testing.T) {
	h := handler.NewBillHandler(new(mocks.MockBillService), new(mocks.MockAuthService), true)

	body, _ := json.Marshal(map[string]float64{"value": 150})
	w := httptest.NewRecorder()
	c, _ := authedContext(w, uuid.New())
	c.Request, _ = http.NewRequest(http.MethodPut, "/api/v1/bills/1/discount", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	h.SetDiscount(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBillHandler_Delete_Success(t *testing.T) {
	userID := uuid.New()
	mockBills := new(mocks.MockBillService)
	mockBills.On("Delete", mock.Anything, userID, int64(7)).
		Return(&domain.Bill{ID: 7, UserID: userID, Company: "CEMIG"}, nil)

	h := handler.NewBillHandler(mockBills, new(mocks.MockAuthService), true)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, userID)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/bills/7", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID      int64  `json:"id"`
			Company string `json:"company"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.Data.ID)
	assert.Equal(t, "CEMIG", resp.Data.Company)
}

func TestBillHandler_Delete_SilentRejection(t *testing.T) {
	userID := uuid.New()
	mockBills := new(mocks.MockBillService)
	mockBills.On("Delete", mock.Anything, userID, int64(7)).
		Return(nil, domain.ErrBillNotFound)

	h := handler.NewBillHandler(mockBills, new(mocks.MockAuthService), true)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, userID)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/bills/7", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestBillHandler_Summary(t *testing.T) {
	userID := uuid.New()
	mockBills := new(mocks.MockBillService)
	mockBills.On("Summary", mock.Anything, userID).
		Return(&domain.Summary{TotalBills: 3, TotalCost: 450}, nil)

	h := handler.NewBillHandler(mockBills, new(mocks.MockAuthService), true)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, userID)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/bills/summary", nil)

	h.Summary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data domain.Summary `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Data.TotalBills)
}

func TestBillHandler_Export_InvalidFormat(t *testing.T) {
	userID := uuid.New()
	mockBills := new(mocks.MockBillService)
	mockBills.On("List", mock.Anything, userID).Return([]domain.Bill{}, nil)

	h := handler.NewBillHandler(mockBills, new(mocks.MockAuthService), true)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, userID)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/bills/export?format=docx", nil)

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBillHandler_Export_CSV(t *testing.T) {
	userID := uuid.New()
	mockBills := new(mocks.MockBillService)
	mockBills.On("List", mock.Anything, userID).Return([]domain.Bill{
		{ID: 1, UserID: userID, Company: "CEMIG", Date: "2026-01", InstallationNumber: "3001"},
	}, nil)

	h := handler.NewBillHandler(mockBills, new(mocks.MockAuthService), true)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, userID)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/bills/export?format=csv", nil)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "CEMIG")
}
