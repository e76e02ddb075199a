package domain

type ServiceType string

const (
	ServiceVenue         ServiceType = "venue"
	ServiceCatering      ServiceType = "catering"
	ServicePhotography   ServiceType = "photography"
	ServiceEntertainment ServiceType = "entertainment"
	ServiceDecoration    ServiceType = "decoration"
	ServiceCustom        ServiceType = "custom"
)

type QuoteInput struct {
	ServiceType     ServiceType `json:"serviceType"`
	Hours           int         `json:"hours,omitempty"`
	Guests          int         `json:"guests,omitempty"`
	Premium         bool        `json:"premium,omitempty"`
	AdditionalItems int         `json:"additionalItems,omitempty"`
	CustomBase      float64     `json:"customBase,omitempty"`
	CustomRate      float64     `json:"customRate,omitempty"`
}

type Quote struct {
	ServiceType     ServiceType `json:"serviceType"`
	BasePrice       float64     `json:"basePrice"`
	AdditionalCosts float64     `json:"additionalCosts"`
	TotalPrice      float64     `json:"totalPrice"`
	Details         []string    `json:"details"`
}
