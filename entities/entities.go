package entities

import "time"

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

type Product struct {
	Id          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      *Rating `json:"rating,omitempty"`
}

// Rate returns the rating value, 0 for unrated products.
func (p Product) Rate() float64 {
	if p.Rating == nil {
		return 0
	}
	return p.Rating.Rate
}

// CartLine is one cart row: a product snapshot plus a quantity.
// Price is locked at add-time, later catalog changes do not affect it.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

type PromoCode struct {
	Code         string  `json:"code"`
	Discount     float64 `json:"discount"`
	Description  string  `json:"description"`
	FreeShipping bool    `json:"freeShipping,omitempty"`
}

type Session struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	JoinDate string `json:"joinDate"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
	ZipCode  string `json:"zipCode,omitempty"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type QueryState struct {
	SearchTerm     string     `json:"searchTerm"`
	SortBy         string     `json:"sortBy"`
	FilterCategory string     `json:"filterCategory"`
	PriceRange     PriceRange `json:"priceRange"`
	MinRating      float64    `json:"minRating"`
}

type CartTotals struct {
	Subtotal           float64    `json:"subtotal"`
	PromoDiscount      float64    `json:"promoDiscount"`
	DiscountedSubtotal float64    `json:"discountedSubtotal"`
	Shipping           float64    `json:"shipping"`
	Tax                float64    `json:"tax"`
	Total              float64    `json:"total"`
	AppliedPromo       *PromoCode `json:"appliedPromo,omitempty"`
	// FreeShippingRemaining is how much more the discounted subtotal needs
	// before shipping is waived; 0 once past the threshold.
	FreeShippingRemaining float64 `json:"freeShippingRemaining"`
}

type Order struct {
	Id     string     `json:"id"`
	Date   time.Time  `json:"date"`
	Email  string     `json:"email"`
	Items  []CartLine `json:"items"`
	Totals CartTotals `json:"totals"`
}

type CartResponse struct {
	Items     []CartLine `json:"items"`
	ItemCount int        `json:"itemCount"`
	Subtotal  float64    `json:"subtotal"`
}
