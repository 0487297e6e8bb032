package config

// Business constants shared by the pricing pipeline and the engines.
const (
	FreeShippingThreshold = 50.0
	DefaultShippingCost   = 9.99
	TaxRate               = 0.08
	MaxCartQuantity       = 99
	PasswordMinLength     = 6
	DefaultRelatedLimit   = 4
	DefaultPriceRangeMax  = 1000.0
)

// Storage keys. Each holds an independently serialized JSON value.
const (
	KeyCart     = "shophub_cart"
	KeyWishlist = "shophub_wishlist"
	KeyUser     = "shophub_currentUser"
	KeyTheme    = "shophub_isDarkMode"
)

// Sort keys accepted by the query engine. Name ascending is the fallback.
const (
	SortName      = "name"
	SortNameDesc  = "name-desc"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortRatingLow = "rating-low"
)

const CategoryAll = "all"

type RedisConfig struct {
	URL          string `split_words:"true" default:"redis://localhost:6379/0"`
	ReadTimeout  int    `split_words:"true" default:"3"`
	WriteTimeout int    `split_words:"true" default:"3"`
	DialTimeout  int    `split_words:"true" default:"5"`
}

// AppConfig holds every runtime parameter, sourced from environment
// variables (loaded from .env for local runs).
type AppConfig struct {
	ListenAddr      string `envconfig:"LISTEN_ADDR" default:":8080"`
	CatalogBaseURL  string `envconfig:"CATALOG_BASE_URL" default:"https://fakestoreapi.com"`
	FetchTimeoutSec int    `envconfig:"FETCH_TIMEOUT_SEC" default:"30"`

	// StoreBackend selects the persistent collection store: sqlite or redis.
	StoreBackend string `envconfig:"STORE_BACKEND" default:"sqlite"`
	StorePath    string `envconfig:"STORE_PATH" default:"shophub.db"`
	Redis        RedisConfig
}
