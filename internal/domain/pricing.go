package domain

type PriceChange struct {
	Old              float64 `json:"old"`
	New              float64 `json:"new"`
	Difference       float64 `json:"difference"`
	PercentageChange float64 `json:"percentage_change"`
}

type PriceChanges struct {
	HasSignificantChanges bool        `json:"has_significant_changes"`
	Currency              string      `json:"currency"`
	AdminUpdated          bool        `json:"admin_updated,omitempty"`
	UpdatedBy             string      `json:"updated_by,omitempty"`
	ProductPrice          PriceChange `json:"product_price"`
	ShippingCost          PriceChange `json:"shipping_cost"`
	ServiceCharge         PriceChange `json:"service_charge"`
	EstimatedTotal        PriceChange `json:"estimated_total"`
}

type PaymentSession struct {
	CheckoutSessionID         string  `json:"checkout_session_id"`
	CheckoutURL               string  `json:"checkout_url"`
	AmountCNY                 float64 `json:"amount_cny"`
	PaymentCurrency           string  `json:"payment_currency"`
	SettlementCurrency        string  `json:"settlement_currency"`
	CurrencyConversionEnabled bool    `json:"currency_conversion_enabled"`
}
