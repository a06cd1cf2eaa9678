package domain

type OrderStatus string

const (
	StatusCreated             OrderStatus = "CREATED"
	StatusProductionPlanning  OrderStatus = "PRODUCTION_PLANNING"
	StatusInitialProcessing   OrderStatus = "INITIAL_PROCESSING"
	StatusProduction          OrderStatus = "PRODUCTION"
	StatusQualityAssurance    OrderStatus = "QUALITY_ASSURANCE"
	StatusComplianceCheck     OrderStatus = "COMPLIANCE_CHECK"
	StatusProductionCompleted OrderStatus = "PRODUCTION_COMPLETED"
)

type ShipmentStatus string

const (
	ShipmentNotStarted ShipmentStatus = "NOT_STARTED"
	ShipmentExpecting  ShipmentStatus = "EXPECTING"
	ShipmentPickedUp   ShipmentStatus = "PICKED_UP"
	ShipmentInTransit  ShipmentStatus = "IN_TRANSIT"
	ShipmentDelivered  ShipmentStatus = "DELIVERED"
)

type PaymentStatus string

const (
	PaymentPending            PaymentStatus = "PENDING"
	PaymentAuthorized         PaymentStatus = "AUTHORIZED"
	PaymentPaid               PaymentStatus = "PAID"
	PaymentPartiallyRefunded  PaymentStatus = "PARTIALLY_REFUNDED"
	PaymentFailed             PaymentStatus = "FAILED"
	PaymentAdjustmentRequired PaymentStatus = "ADJUSTMENT_REQUIRED"
	PaymentNotRequired        PaymentStatus = "NOT_REQUIRED"
)

type OrderType string

const (
	TypeMain           OrderType = "MAIN"
	TypePhysicalSample OrderType = "PHYSICAL_SAMPLE"
	TypeVideoSample    OrderType = "VIDEO_SAMPLE"
)

type Order struct {
	OrderID                  string         `json:"orderId"`
	QuoteID                  string         `json:"quoteId"`
	SupplierID               string         `json:"supplierId"`
	BuyerID                  string         `json:"buyerId"`
	Status                   OrderStatus    `json:"status"`
	OrderType                OrderType      `json:"orderType"`
	ProductSpec              map[string]any `json:"productSpec,omitempty"`
	Quantity                 int            `json:"quantity,omitempty"`
	TotalPrice               float64        `json:"totalPrice,omitempty"`
	Currency                 string         `json:"currency,omitempty"`
	CreatedAt                string         `json:"createdAt"`
	UpdatedAt                string         `json:"updatedAt"`
	ShipmentStatus           ShipmentStatus `json:"shipmentStatus,omitempty"`
	TrackingNumber           string         `json:"trackingNumber,omitempty"`
	Carrier                  string         `json:"carrier,omitempty"`
	TrackingURL              string         `json:"trackingUrl,omitempty"`
	TrackingDetails          *TrackingInfo  `json:"trackingDetails,omitempty"`
	PaymentStatus            PaymentStatus  `json:"paymentStatus,omitempty"`
	EstimatedTotal           float64        `json:"estimatedTotal,omitempty"`
	ShippingCost             float64        `json:"shippingCost,omitempty"`
	ServiceCharge            float64        `json:"serviceCharge,omitempty"`
	EstimatedShippingDaysMin int            `json:"estimatedShippingDaysMin,omitempty"`
	EstimatedShippingDaysMax int            `json:"estimatedShippingDaysMax,omitempty"`
	Terms                    map[string]any `json:"terms,omitempty"`
	SampleDetails            map[string]any `json:"sampleDetails,omitempty"`
	TimelineData             *TimelineData  `json:"timelineData,omitempty"`
	PriceChanges             *PriceChanges  `json:"priceChanges,omitempty"`
	Updates                  []OrderUpdate  `json:"updates,omitempty"`
}

// ProductName resolves the display name the way the order API nests it:
// productSpec.product_specifications.product_name first, then the flat
// productSpec.productName, then the order id.
func (o *Order) ProductName() string {
	if o.ProductSpec != nil {
		if specs, ok := o.ProductSpec["product_specifications"].(map[string]any); ok {
			if name, ok := specs["product_name"].(string); ok && name != "" {
				return name
			}
		}
		if name, ok := o.ProductSpec["productName"].(string); ok && name != "" {
			return name
		}
	}
	return o.OrderID
}

type OrderUpdate struct {
	UpdateID    string `json:"updateId"`
	OrderID     string `json:"orderId"`
	Type        string `json:"type"`
	Status      string `json:"status,omitempty"`
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
}

type TrackingItem struct {
	DateTime string `json:"dateTime"`
	Location string `json:"location"`
	Info     string `json:"info"`
	Content  string `json:"content,omitempty"`
}

type TrackingInfo struct {
	BillID      string         `json:"billid"`
	CountryCode string         `json:"countryCode,omitempty"`
	Country     string         `json:"country,omitempty"`
	Destination string         `json:"destination,omitempty"`
	DateTime    string         `json:"dateTime,omitempty"`
	Status      string         `json:"status,omitempty"`
	Items       []TrackingItem `json:"items"`
}
