package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eventgobj/eventgo/config"
	"github.com/eventgobj/eventgo/internal/logger"
	"github.com/eventgobj/eventgo/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	for _, name := range []string{models.RoleParticipant, models.RoleOrganizer, models.RoleAdmin} {
		require.NoError(t, db.Create(&models.Role{Name: name}).Error)
	}

	r := gin.New()
	setupRoutes(r, db, logger.NewSilent())
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

func registerAndLogin(t *testing.T, r *gin.Engine, email, roleName string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/v1/register", "", gin.H{
		"email":      email,
		"password":   "secret123",
		"first_name": "Test",
		"last_name":  "User",
		"role_name":  roleName,
	})
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/v1/login", "", gin.H{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func createEventAndTicket(t *testing.T, r *gin.Engine, organizerToken string, available int) (string, string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/v1/events", organizerToken, gin.H{
		"title":      "FIMA Fashion Night",
		"start_time": time.Now().Add(-30 * time.Minute).Format(time.RFC3339),
		"end_time":   time.Now().Add(4 * time.Hour).Format(time.RFC3339),
		"location":   "Cotonou",
		"category":   models.CategoryArt,
	})
	require.Equal(t, http.StatusCreated, w.Code, "create event failed: %s", w.Body.String())
	var eventResp struct {
		EventID string `json:"event_id"`
	}
	decodeBody(t, w, &eventResp)

	w = doJSON(t, r, http.MethodPost, "/v1/events/"+eventResp.EventID+"/tickets", organizerToken, gin.H{
		"name":               "VIP",
		"price":              "1000",
		"quantity_available": available,
	})
	require.Equal(t, http.StatusCreated, w.Code, "create ticket failed: %s", w.Body.String())
	var ticketResp struct {
		TicketID string `json:"ticket_id"`
	}
	decodeBody(t, w, &ticketResp)

	return eventResp.EventID, ticketResp.TicketID
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/v1/register", "", gin.H{
		"email":      "boss@example.com",
		"password":   "secret123",
		"first_name": "Boss",
		"last_name":  "User",
		"role_name":  models.RoleAdmin,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurchaseRequiresAuth(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/v1/tickets/"+uuid.New().String()+"/purchase", "", gin.H{
		"quantity":       1,
		"payment_method": models.PaymentMobileMoney,
		"phone":          "+22997123456",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPurchaseFlowOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	organizerToken := registerAndLogin(t, r, "organizer@example.com", models.RoleOrganizer)
	buyerToken := registerAndLogin(t, r, "buyer@example.com", models.RoleParticipant)
	_, ticketID := createEventAndTicket(t, r, organizerToken, 3)

	w := doJSON(t, r, http.MethodPost, "/v1/tickets/"+ticketID+"/purchase", buyerToken, gin.H{
		"quantity":       2,
		"payment_method": models.PaymentMobileMoney,
		"phone":          "+22997123456",
	})
	require.Equal(t, http.StatusCreated, w.Code, "purchase failed: %s", w.Body.String())

	var purchase models.Purchase
	decodeBody(t, w, &purchase)
	assert.Equal(t, models.PurchasePaid, purchase.Status)
	assert.True(t, purchase.TotalAmount.Equal(decimal.NewFromInt(2000)),
		"expected total 2000, got %s", purchase.TotalAmount)
	require.NotNil(t, purchase.Credential)

	// Only one unit left now, so a second purchase of two must 409
	// without touching inventory.
	w = doJSON(t, r, http.MethodPost, "/v1/tickets/"+ticketID+"/purchase", buyerToken, gin.H{
		"quantity":       2,
		"payment_method": models.PaymentMobileMoney,
		"phone":          "+22997123456",
	})
	assert.Equal(t, http.StatusConflict, w.Code, "body: %s", w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/v1/tickets/"+ticketID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ticket struct {
		QuantityRemaining int  `json:"quantity_remaining"`
		IsSoldOut         bool `json:"is_sold_out"`
	}
	decodeBody(t, w, &ticket)
	assert.Equal(t, 1, ticket.QuantityRemaining)
	assert.False(t, ticket.IsSoldOut)

	w = doJSON(t, r, http.MethodGet, "/v1/purchases/"+purchase.ID.String()+"/qr", buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())

	w = doJSON(t, r, http.MethodPost, "/v1/validations", organizerToken, gin.H{
		"credential": *purchase.Credential,
		"location":   "main gate",
	})
	require.Equal(t, http.StatusOK, w.Code, "validation failed: %s", w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/v1/validations", organizerToken, gin.H{
		"credential": *purchase.Credential,
		"location":   "main gate",
	})
	assert.Equal(t, http.StatusConflict, w.Code, "a credential admits exactly once")
}

func TestPurchaseScopingOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	organizerToken := registerAndLogin(t, r, "organizer@example.com", models.RoleOrganizer)
	buyerToken := registerAndLogin(t, r, "buyer@example.com", models.RoleParticipant)
	strangerToken := registerAndLogin(t, r, "stranger@example.com", models.RoleParticipant)
	_, ticketID := createEventAndTicket(t, r, organizerToken, 5)

	w := doJSON(t, r, http.MethodPost, "/v1/tickets/"+ticketID+"/purchase", buyerToken, gin.H{
		"quantity":       1,
		"payment_method": models.PaymentMobileMoney,
		"phone":          "+22997123456",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var purchase models.Purchase
	decodeBody(t, w, &purchase)

	w = doJSON(t, r, http.MethodGet, "/v1/purchases/"+purchase.ID.String(), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, "/v1/purchases/"+purchase.ID.String(), organizerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/v1/purchases", strangerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Purchases []models.Purchase `json:"purchases"`
	}
	decodeBody(t, w, &list)
	assert.Empty(t, list.Purchases)
}
