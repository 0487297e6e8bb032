package main

import (
	"context"
	"net/http"
	"time"

	"shopHub/config"
	"shopHub/handlers"
	"shopHub/repository"
	"shopHub/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"

	logx "shopHub/pkg/logger"
)

func main() {
	logx.Init()

	if err := godotenv.Load(".env"); err != nil {
		logx.Warn().Msgf("could not load .env file: %v", err)
	}
	var cfg config.AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Fatal().Msgf("failed to process environment config: %v", err)
	}

	store, err := initStore(cfg)
	if err != nil {
		logx.Fatal().Msgf("failed to open store: %v", err)
	}
	logx.Info().Msgf("store ready (%s)", cfg.StoreBackend)

	catalogRepo, err := repository.NewHTTPCatalogRepository(cfg.CatalogBaseURL, time.Duration(cfg.FetchTimeoutSec)*time.Second)
	if err != nil {
		logx.Fatal().Msgf("failed to build catalog repository: %v", err)
	}

	catS := services.NewCatalogService(catalogRepo)
	sesS := services.NewSessionService(store)
	crtS := services.NewCartService(store, sesS)
	wshS := services.NewWishlistService(store, sesS)
	qryS := services.NewQueryService(catS)
	sesS.RegisterOnLogout(crtS)
	sesS.RegisterOnLogout(wshS)

	// one fetch at startup, no automatic retry
	go func() {
		if err := catS.Load(context.Background()); err != nil {
			logx.Error().Msgf("catalog load failed: %v", err)
		}
	}()

	hp := handlers.HandlerParams{
		CatService: catS,
		SesService: sesS,
		CrtService: crtS,
		WshService: wshS,
		QryService: qryS,
	}
	ha := handlers.NewHandler(hp)
	router := mux.NewRouter()
	router.Use(ha.ErrorHandleMiddleware)
	subAuth := router.NewRoute().Subrouter()
	subAuth.Use(ha.AuthMiddleware)

	router.HandleFunc("/", ha.Welcome)
	router.HandleFunc("/users/login", ha.Login).Methods("POST")
	router.HandleFunc("/users/demo", ha.DemoLogin).Methods("POST")
	subAuth.HandleFunc("/users/logout", ha.Logout).Methods("POST")
	subAuth.HandleFunc("/users/profile", ha.UpdateProfile).Methods("POST")
	router.HandleFunc("/users/me", ha.Me).Methods("GET")

	router.HandleFunc("/products", ha.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}", ha.GetProduct).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}/related", ha.GetRelatedProducts).Methods("GET")
	router.HandleFunc("/categories", ha.GetCategories).Methods("GET")
	router.HandleFunc("/categories/{category}", ha.GetCategoryProducts).Methods("GET")

	router.HandleFunc("/cart", ha.GetCart).Methods("GET")
	router.HandleFunc("/cart", ha.AddToCart).Methods("POST")
	router.HandleFunc("/cart", ha.DeleteFromCart).Methods("DELETE")
	router.HandleFunc("/cart/quantity", ha.UpdateCartQuantity).Methods("POST")
	router.HandleFunc("/cart/clear", ha.ClearCart).Methods("POST")
	router.HandleFunc("/cart/totals", ha.GetCartTotals).Methods("GET")
	router.HandleFunc("/cart/promo", ha.ApplyPromo).Methods("POST")
	router.HandleFunc("/cart/promo", ha.RemovePromo).Methods("DELETE")
	subAuth.HandleFunc("/cart/checkout", ha.Checkout).Methods("POST")

	router.HandleFunc("/wishlist", ha.GetWishlist).Methods("GET")
	router.HandleFunc("/wishlist/toggle", ha.ToggleWishlist).Methods("POST")
	router.HandleFunc("/wishlist/{id:[0-9]+}", ha.HasInWishlist).Methods("GET")

	router.HandleFunc("/theme", ha.GetTheme).Methods("GET")
	router.HandleFunc("/theme", ha.SetTheme).Methods("POST")

	logx.Info().Msgf("starting server on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		logx.Fatal().Msgf("server stopped: %v", err)
	}
}

func initStore(cfg config.AppConfig) (repository.Store, error) {
	if cfg.StoreBackend == "redis" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		opts.ReadTimeout = time.Duration(cfg.Redis.ReadTimeout) * time.Second
		opts.WriteTimeout = time.Duration(cfg.Redis.WriteTimeout) * time.Second
		opts.DialTimeout = time.Duration(cfg.Redis.DialTimeout) * time.Second
		return repository.NewRedisStore(redis.NewClient(opts), context.Background())
	}
	return repository.NewSQLiteStore(cfg.StorePath)
}
