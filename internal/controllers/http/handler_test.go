package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-tracking-service/internal/infra"
	"order-tracking-service/internal/middleware"
	"order-tracking-service/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	source := infra.NewMockSource(0)
	service := services.NewOrderService(source, nil, nil, time.Minute)
	handler := NewHandler(service, nil)

	r := gin.New()
	handler.RegisterRoutes(r, middleware.BuyerAuth("", "demo@buyer.com"))
	return r
}

func doRequest(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMe_ReturnsDemoBuyer(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/auth/me", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "demo@buyer.com", body["buyerId"])
}

func TestListOrders_ReturnsOrdersWithCalculations(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body OrdersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Orders)
	assert.Equal(t, len(body.Orders), body.Total)

	for _, view := range body.Orders {
		assert.NotEmpty(t, view.Bucket, "every order gets a list bucket")
		calc, ok := body.Calculations[view.OrderID]
		require.True(t, ok, "calculation missing for %s", view.OrderID)
		assert.InDelta(t, 100, calc.ProductionWidth+calc.ShippingWidth, 0.01)
	}
}

func TestListOrders_SearchNarrowsResult(t *testing.T) {
	r := newTestRouter(t)

	all := doRequest(r, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, all.Code)
	var allBody OrdersResponse
	require.NoError(t, json.Unmarshal(all.Body.Bytes(), &allBody))

	filtered := doRequest(r, http.MethodGet, "/orders?search=zzz-no-such-order", "")
	require.Equal(t, http.StatusOK, filtered.Code)
	var filteredBody OrdersResponse
	require.NoError(t, json.Unmarshal(filtered.Body.Bytes(), &filteredBody))

	assert.Less(t, filteredBody.Total, allBody.Total)
	assert.Zero(t, filteredBody.Total)
}

func TestCalendar_RejectsBadMonth(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/orders/calendar?year=2024&month=13", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendar_ReturnsBoundedDayPills(t *testing.T) {
	r := newTestRouter(t)

	now := time.Now()
	w := doRequest(r, http.MethodGet,
		"/orders/calendar?year="+now.Format("2006")+"&month="+now.Format("1"), "")
	require.Equal(t, http.StatusOK, w.Code)

	var body CalendarResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	for _, day := range body.Days {
		assert.LessOrEqual(t, len(day.Orders), dayMaxEvents)
		assert.Equal(t, day.Total, len(day.Orders)+day.More)
	}
}

func TestDashboard_ReturnsSummary(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/orders/dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "statusSegments")
	assert.Contains(t, body, "daysBuckets")
	assert.Contains(t, body, "sparkline")
}

func TestContinuePayment_RequiresRedirectURLs(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/orders/ORD-2024-005/continue-payment", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContinuePayment_ReturnsCheckoutSession(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/orders/ORD-2024-005/continue-payment",
		`{"successUrl":"https://shop.example/success","cancelUrl":"https://shop.example/cancel"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body infra.PaymentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Payment.CheckoutSessionID)
	assert.NotEmpty(t, body.Payment.CheckoutURL)
}
