package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"order-tracking-service/internal/domain"
)

type TrackingInfoResponse struct {
	OrderID         string               `json:"orderId"`
	SupplierID      string               `json:"supplierId"`
	TrackingNumber  string               `json:"trackingNumber,omitempty"`
	Carrier         string               `json:"carrier,omitempty"`
	TrackingURL     string               `json:"trackingUrl,omitempty"`
	TrackingDetails *domain.TrackingInfo `json:"trackingDetails,omitempty"`
	HasTracking     bool                 `json:"hasTracking"`
	Message         string               `json:"message,omitempty"`
}

type PaymentRequest struct {
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

type PaymentResponse struct {
	Payment domain.PaymentSession `json:"payment"`
	Message string                `json:"message"`
	OrderID string                `json:"order_id"`
}

type ordersEnvelope struct {
	Orders []domain.Order `json:"orders"`
}

// OrderClient talks to the upstream order API that owns the order records.
type OrderClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOrderClient(baseURL string, timeout time.Duration) *OrderClient {
	return &OrderClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *OrderClient) GetOrdersByBuyer(ctx context.Context, buyerID, token string) ([]domain.Order, error) {
	endpoint := fmt.Sprintf("%s/orders?buyerId=%s", c.baseURL, url.QueryEscape(buyerID))

	var envelope ordersEnvelope
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, token, &envelope); err != nil {
		return nil, err
	}
	return envelope.Orders, nil
}

func (c *OrderClient) GetTrackingInfo(ctx context.Context, orderID, supplierID, token string) (*TrackingInfoResponse, error) {
	endpoint := fmt.Sprintf("%s/admin/shipments/%s/tracking?supplierId=%s",
		c.baseURL, url.PathEscape(orderID), url.QueryEscape(supplierID))

	var info TrackingInfoResponse
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, token, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *OrderClient) ContinuePayment(ctx context.Context, orderID string, req PaymentRequest, token string) (*PaymentResponse, error) {
	endpoint := fmt.Sprintf("%s/orders/%s/continue-payment", c.baseURL, url.PathEscape(orderID))

	var resp PaymentResponse
	if err := c.doJSON(ctx, http.MethodPost, endpoint, req, token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *OrderClient) ApprovePriceChanges(ctx context.Context, orderID string, req PaymentRequest, token string) (*PaymentResponse, error) {
	endpoint := fmt.Sprintf("%s/orders/%s/approve-price-changes", c.baseURL, url.PathEscape(orderID))

	var resp PaymentResponse
	if err := c.doJSON(ctx, http.MethodPost, endpoint, req, token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *OrderClient) doJSON(ctx context.Context, method, endpoint string, body any, token string, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		if !strings.HasPrefix(token, "Bearer ") {
			token = "Bearer " + token
		}
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("order api returned status %d", resp.StatusCode)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
