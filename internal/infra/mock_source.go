package infra

import (
	"context"
	"fmt"
	"time"

	"order-tracking-service/internal/domain"
)

// MockSource serves a fixed demo portfolio instead of the real order API.
// Dates are generated relative to startup so the timelines always look
// live. A small artificial delay mimics the upstream round trip.
type MockSource struct {
	orders  []domain.Order
	latency time.Duration
}

func NewMockSource(latency time.Duration) *MockSource {
	return &MockSource{
		orders:  demoOrders(time.Now()),
		latency: latency,
	}
}

func (m *MockSource) GetOrdersByBuyer(ctx context.Context, buyerID, token string) ([]domain.Order, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, len(m.orders))
	copy(orders, m.orders)
	for i := range orders {
		orders[i].BuyerID = buyerID
	}
	return orders, nil
}

func (m *MockSource) GetTrackingInfo(ctx context.Context, orderID, supplierID, token string) (*TrackingInfoResponse, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	for i := range m.orders {
		if m.orders[i].OrderID == orderID {
			order := &m.orders[i]
			resp := &TrackingInfoResponse{
				OrderID:         orderID,
				SupplierID:      supplierID,
				TrackingNumber:  order.TrackingNumber,
				Carrier:         order.Carrier,
				TrackingURL:     order.TrackingURL,
				TrackingDetails: order.TrackingDetails,
				HasTracking:     order.TrackingNumber != "",
			}
			if !resp.HasTracking {
				resp.Message = "No tracking information available yet"
			}
			return resp, nil
		}
	}
	return nil, fmt.Errorf("order %s not found", orderID)
}

func (m *MockSource) ContinuePayment(ctx context.Context, orderID string, req PaymentRequest, token string) (*PaymentResponse, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return &PaymentResponse{
		Payment: domain.PaymentSession{
			CheckoutSessionID:  "mock_session_123",
			CheckoutURL:        "#payment-demo",
			AmountCNY:          1000,
			PaymentCurrency:    "GBP",
			SettlementCurrency: "GBP",
		},
		Message: "Payment session created",
		OrderID: orderID,
	}, nil
}

func (m *MockSource) ApprovePriceChanges(ctx context.Context, orderID string, req PaymentRequest, token string) (*PaymentResponse, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return &PaymentResponse{
		Payment: domain.PaymentSession{
			CheckoutSessionID:  "mock_session_456",
			CheckoutURL:        "#payment-demo",
			AmountCNY:          1200,
			PaymentCurrency:    "GBP",
			SettlementCurrency: "GBP",
		},
		Message: "Price changes approved",
		OrderID: orderID,
	}, nil
}

func (m *MockSource) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return nil
	}
	select {
	case <-time.After(m.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func demoOrders(now time.Time) []domain.Order {
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(time.RFC3339)
	}
	started := true
	notStarted := false

	return []domain.Order{
		{
			OrderID:    "ORD-2024-001",
			QuoteID:    "QUO-2024-001",
			SupplierID: "Shenzhen Electronics Co.",
			Status:     domain.StatusProduction,
			OrderType:  domain.TypeMain,
			ProductSpec: map[string]any{
				"product_specifications": map[string]any{"product_name": "Custom Wireless Headphones"},
			},
			Quantity:                 5000,
			TotalPrice:               45000,
			Currency:                 "¥",
			ShippingCost:             3000,
			ServiceCharge:            2250,
			EstimatedShippingDaysMin: 7,
			EstimatedShippingDaysMax: 10,
			PaymentStatus:            domain.PaymentPaid,
			CreatedAt:                day(-4),
			UpdatedAt:                day(-1),
			TimelineData: &domain.TimelineData{
				OrderType:  domain.TypeMain,
				Production: domain.TimelinePhase{Start: day(-3), DurationDays: 45, DurationDaysMin: 40, DurationDaysMax: 50, Note: "Production started on schedule"},
				Shipping:   &domain.TimelinePhase{DurationDays: 8, DurationDaysMin: 7, DurationDaysMax: 10},
				HasStarted: &started,
			},
		},
		{
			OrderID:    "ORD-2024-002",
			QuoteID:    "QUO-2024-002",
			SupplierID: "Guangzhou Manufacturing Ltd.",
			Status:     domain.StatusProductionCompleted,
			OrderType:  domain.TypeMain,
			ProductSpec: map[string]any{
				"product_specifications": map[string]any{"product_name": "Bluetooth Speaker with LED Display"},
			},
			Quantity:       2000,
			TotalPrice:     28000,
			Currency:       "¥",
			PaymentStatus:  domain.PaymentPaid,
			ShipmentStatus: domain.ShipmentInTransit,
			TrackingNumber: "SF1234567890",
			Carrier:        "SF Express",
			TrackingURL:    "https://www.sf-express.com/track/SF1234567890",
			TrackingDetails: &domain.TrackingInfo{
				BillID: "SF1234567890",
				Status: "In transit",
				Items: []domain.TrackingItem{
					{DateTime: day(-2), Location: "Guangzhou", Info: "Departed origin facility"},
					{DateTime: day(-1), Location: "Hong Kong", Info: "Arrived at sorting hub"},
				},
			},
			CreatedAt: day(-30),
			UpdatedAt: day(-1),
			TimelineData: &domain.TimelineData{
				OrderType:  domain.TypeMain,
				Production: domain.TimelinePhase{Start: day(-28), End: day(-4), DurationDays: 24},
				Shipping:   &domain.TimelinePhase{Start: day(-4), DurationDays: 8, DurationDaysMin: 6, DurationDaysMax: 9},
				HasStarted: &started,
			},
		},
		{
			OrderID:    "ORD-2024-003",
			QuoteID:    "QUO-2024-003",
			SupplierID: "Dongguan Textiles Inc.",
			Status:     domain.StatusCreated,
			OrderType:  domain.TypePhysicalSample,
			ProductSpec: map[string]any{
				"productName": "Organic Cotton Tote Bag",
			},
			Quantity:      10,
			TotalPrice:    350,
			Currency:      "¥",
			PaymentStatus: domain.PaymentAuthorized,
			CreatedAt:     day(-1),
			UpdatedAt:     day(-1),
			TimelineData: &domain.TimelineData{
				OrderType:  domain.TypePhysicalSample,
				Production: domain.TimelinePhase{DurationDays: 5, DurationDaysMax: 7},
				Shipping:   &domain.TimelinePhase{DurationDays: 5, DurationDaysMin: 4, DurationDaysMax: 6},
				HasStarted: &notStarted,
			},
		},
		{
			OrderID:    "ORD-2024-004",
			QuoteID:    "QUO-2024-004",
			SupplierID: "Shenzhen Electronics Co.",
			Status:     domain.StatusProduction,
			OrderType:  domain.TypeVideoSample,
			ProductSpec: map[string]any{
				"productName": "Smart Watch Band",
			},
			PaymentStatus: domain.PaymentPaid,
			SampleDetails: map[string]any{"video_lead_time": "3 days"},
			CreatedAt:     day(-1),
			UpdatedAt:     day(-1),
		},
		{
			OrderID:    "ORD-2024-005",
			QuoteID:    "QUO-2024-005",
			SupplierID: "Ningbo Homeware Group",
			Status:     domain.StatusProductionPlanning,
			OrderType:  domain.TypeMain,
			ProductSpec: map[string]any{
				"productName": "Ceramic Dinnerware Set",
			},
			Quantity:                 1200,
			TotalPrice:               18600,
			Currency:                 "¥",
			EstimatedShippingDaysMin: 7,
			EstimatedShippingDaysMax: 10,
			Terms:                    map[string]any{"lead_time": "30 days from deposit"},
			PaymentStatus:            domain.PaymentAdjustmentRequired,
			CreatedAt:                day(-2),
			UpdatedAt:                day(0),
			PriceChanges: &domain.PriceChanges{
				HasSignificantChanges: true,
				Currency:              "¥",
				AdminUpdated:          true,
				ProductPrice:          domain.PriceChange{Old: 18600, New: 19800, Difference: 1200, PercentageChange: 6.45},
				ShippingCost:          domain.PriceChange{Old: 1500, New: 1700, Difference: 200, PercentageChange: 13.33},
				ServiceCharge:         domain.PriceChange{Old: 930, New: 990, Difference: 60, PercentageChange: 6.45},
				EstimatedTotal:        domain.PriceChange{Old: 21030, New: 22490, Difference: 1460, PercentageChange: 6.94},
			},
		},
		{
			OrderID:    "ORD-2024-006",
			QuoteID:    "QUO-2024-006",
			SupplierID: "Guangzhou Manufacturing Ltd.",
			Status:     domain.StatusProductionCompleted,
			OrderType:  domain.TypeMain,
			ProductSpec: map[string]any{
				"productName": "USB-C Charging Cable",
			},
			Quantity:       8000,
			TotalPrice:     9600,
			Currency:       "¥",
			PaymentStatus:  domain.PaymentPaid,
			ShipmentStatus: domain.ShipmentDelivered,
			TrackingNumber: "DHL9988776655",
			Carrier:        "DHL",
			CreatedAt:      day(-60),
			UpdatedAt:      day(-10),
			TimelineData: &domain.TimelineData{
				OrderType:  domain.TypeMain,
				Production: domain.TimelinePhase{Start: day(-58), End: day(-20), DurationDays: 38},
				Shipping:   &domain.TimelinePhase{Start: day(-20), End: day(-12), DurationDays: 8},
				HasStarted: &started,
			},
		},
	}
}
