package domain

type Vendor struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"reviewCount"`
	Image       string          `json:"image,omitempty"`
	MinPrice    float64         `json:"minPrice"`
	MaxPrice    float64         `json:"maxPrice"`
	Location    string          `json:"location"`
	Description string          `json:"description,omitempty"`
	Services    []VendorService `json:"services,omitempty"`
}

type VendorService struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration,omitempty"`
}

// VendorFilter mirrors the query parameters of the vendor listing endpoint.
type VendorFilter struct {
	Category string
	Location string
	Search   string
	SortBy   string
}

const (
	SortByPrice     = "price"
	SortByPriceDesc = "price_desc"
	SortByRating    = "rating"
)
