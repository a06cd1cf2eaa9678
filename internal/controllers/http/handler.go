package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"order-tracking-service/internal/infra"
	"order-tracking-service/internal/middleware"
	"order-tracking-service/internal/services"
	"order-tracking-service/internal/timeline"
)

const (
	responseCacheTTL = 10 * time.Second
	dayMaxEvents     = 3
)

type Handler struct {
	service *services.OrderService
	rdb     *redis.Client
}

// NewHandler wires the order service into gin. rdb may be nil; response
// caching is then skipped.
func NewHandler(service *services.OrderService, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	r.GET("/auth/me", auth, h.Me)

	orders := r.Group("/orders", auth)
	orders.GET("", h.ListOrders)
	orders.GET("/calendar", h.Calendar)
	orders.GET("/dashboard", h.Dashboard)
	orders.GET("/:orderId/tracking", h.Tracking)
	orders.POST("/:orderId/continue-payment", h.ContinuePayment)
	orders.POST("/:orderId/approve-price-changes", h.ApprovePriceChanges)
}

func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"buyerId": c.GetString(middleware.ContextBuyerID),
		"role":    "BUYER",
	})
}

func (h *Handler) ListOrders(c *gin.Context) {
	buyerID := c.GetString(middleware.ContextBuyerID)
	token := c.GetString(middleware.ContextToken)

	cacheKey := respKey(buyerID, c)
	if h.respondCached(c, cacheKey) {
		return
	}

	field := timeline.SortField(c.DefaultQuery("sortBy", string(timeline.SortByCreatedAt)))
	if field != timeline.SortByCreatedAt && field != timeline.SortByUpdatedAt {
		field = timeline.SortByCreatedAt
	}
	dir := timeline.SortDirection(c.DefaultQuery("sortDir", string(timeline.SortDesc)))
	if dir != timeline.SortAsc && dir != timeline.SortDesc {
		dir = timeline.SortDesc
	}

	orders, calcs, err := h.service.ListOrders(c.Request.Context(), buyerID, token, c.Query("search"), field, dir)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, OrderView{
			Order:  orders[i],
			Bucket: timeline.BucketOf(&orders[i]),
		})
	}

	payload := OrdersResponse{Orders: views, Calculations: calcs, Total: len(views)}
	h.cacheResponse(c.Request.Context(), cacheKey, payload)
	c.JSON(http.StatusOK, payload)
}

func (h *Handler) Calendar(c *gin.Context) {
	buyerID := c.GetString(middleware.ContextBuyerID)
	token := c.GetString(middleware.ContextToken)

	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil || year < 2000 || year > 2200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}
	maxEvents, err := strconv.Atoi(c.DefaultQuery("dayMaxEvents", strconv.Itoa(dayMaxEvents)))
	if err != nil || maxEvents < 1 {
		maxEvents = dayMaxEvents
	}

	cacheKey := respKey(buyerID, c)
	if h.respondCached(c, cacheKey) {
		return
	}

	occupancy, err := h.service.CalendarMonth(c.Request.Context(), buyerID, token, year, time.Month(month))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	dates := make([]string, 0, len(occupancy))
	for date := range occupancy {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	days := make([]CalendarDay, 0, len(dates))
	for _, date := range dates {
		all := occupancy[date]
		day := CalendarDay{Date: date, Orders: all, Total: len(all)}
		if len(all) > maxEvents {
			day.Orders = all[:maxEvents]
			day.More = len(all) - maxEvents
		}
		days = append(days, day)
	}

	payload := CalendarResponse{Year: year, Month: month, Days: days}
	h.cacheResponse(c.Request.Context(), cacheKey, payload)
	c.JSON(http.StatusOK, payload)
}

func (h *Handler) Dashboard(c *gin.Context) {
	buyerID := c.GetString(middleware.ContextBuyerID)
	token := c.GetString(middleware.ContextToken)

	cacheKey := respKey(buyerID, c)
	if h.respondCached(c, cacheKey) {
		return
	}

	summary, err := h.service.Dashboard(c.Request.Context(), buyerID, token, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	h.cacheResponse(c.Request.Context(), cacheKey, summary)
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) Tracking(c *gin.Context) {
	token := c.GetString(middleware.ContextToken)
	orderID := c.Param("orderId")
	supplierID := c.Query("supplierId")

	info, err := h.service.TrackingInfo(c.Request.Context(), orderID, supplierID, token)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *Handler) ContinuePayment(c *gin.Context) {
	h.paymentAction(c, h.service.ContinuePayment)
}

func (h *Handler) ApprovePriceChanges(c *gin.Context) {
	h.paymentAction(c, h.service.ApprovePriceChanges)
}

type paymentFunc func(ctx context.Context, buyerID, orderID string, req infra.PaymentRequest, token string) (*infra.PaymentResponse, error)

func (h *Handler) paymentAction(c *gin.Context, action paymentFunc) {
	buyerID := c.GetString(middleware.ContextBuyerID)
	token := c.GetString(middleware.ContextToken)
	orderID := c.Param("orderId")

	var req PaymentActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := action(c.Request.Context(), buyerID, orderID, infra.PaymentRequest{
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	}, token)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	// drop the cached unfiltered list so the next reload sees the new
	// payment state right away
	if h.rdb != nil {
		h.rdb.Del(context.Background(), "resp:"+buyerID+":/orders")
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) respondCached(c *gin.Context, key string) bool {
	if h.rdb == nil {
		return false
	}
	data, err := h.rdb.Get(c.Request.Context(), key).Bytes()
	if err != nil {
		return false
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
	return true
}

func (h *Handler) cacheResponse(ctx context.Context, key string, payload any) {
	if h.rdb == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.rdb.Set(ctx, key, data, responseCacheTTL)
}

func respKey(buyerID string, c *gin.Context) string {
	return "resp:" + buyerID + ":" + c.Request.URL.RequestURI()
}
