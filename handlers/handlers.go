package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"runtime/debug"
	"strconv"

	"shopHub/config"
	"shopHub/entities"
	"shopHub/models"
	"shopHub/services"

	"github.com/gorilla/mux"

	logx "shopHub/pkg/logger"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Handler struct {
	cats *services.CatalogService
	ses  *services.SessionService
	cs   *services.CartService
	ws   *services.WishlistService
	qs   *services.QueryService
}

type HandlerParams struct {
	CatService *services.CatalogService
	SesService *services.SessionService
	CrtService *services.CartService
	WshService *services.WishlistService
	QryService *services.QueryService
}

func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		cats: params.CatService,
		ses:  params.SesService,
		cs:   params.CrtService,
		ws:   params.WshService,
		qs:   params.QryService,
	}
}

func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	name := "guest"
	if sess, ok := h.ses.Current(); ok {
		name = sess.Name
	}
	w.Write([]byte("Hello, " + name + "!"))
}

// user

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req := models.LoginRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logx.Warn().Msgf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !emailRegexp.MatchString(req.Email) {
		http.Error(w, "email is invalid", http.StatusBadRequest)
		return
	}
	if len(req.Password) < config.PasswordMinLength {
		http.Error(w, "password is too short", http.StatusBadRequest)
		return
	}
	sess, err := h.ses.Login(req.Email, req.Name)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	setSessionCookie(w, sess.Id)
	writeJSON(w, sess)
}

func (h *Handler) DemoLogin(w http.ResponseWriter, r *http.Request) {
	sess, err := h.ses.DemoLogin()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	setSessionCookie(w, sess.Id)
	writeJSON(w, sess)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	err := h.ses.Logout()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	setSessionCookie(w, "")
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.ses.Current()
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, sess)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	req := models.ProfileRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logx.Warn().Msgf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	sess, err := h.ses.UpdateProfile(req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, sess)
}

// products

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	if !h.catalogReady(w) {
		return
	}
	q := r.URL.Query()
	if q.Has("search") {
		h.qs.SetSearchTerm(q.Get("search"))
	}
	if q.Has("sort") {
		h.qs.SetSortBy(q.Get("sort"))
	}
	if q.Has("category") {
		h.qs.SetFilterCategory(q.Get("category"))
	}
	if q.Has("min_price") || q.Has("max_price") {
		state := h.qs.State()
		min, max := state.PriceRange.Min, state.PriceRange.Max
		if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
			min = v
		}
		if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
			max = v
		}
		h.qs.SetPriceRange(min, max)
	}
	if q.Has("min_rating") {
		if v, err := strconv.ParseFloat(q.Get("min_rating"), 64); err == nil {
			h.qs.SetMinRating(v)
		}
	}
	writeJSON(w, h.qs.GetFilteredProducts())
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	if !h.catalogReady(w) {
		return
	}
	vars := mux.Vars(r)
	prod, exists := h.cats.GetProductById(vars["id"])
	if !exists {
		WriteErrorResponse(w, models.ErrNotFoundError)
		return
	}
	writeJSON(w, prod)
}

func (h *Handler) GetRelatedProducts(w http.ResponseWriter, r *http.Request) {
	if !h.catalogReady(w) {
		return
	}
	vars := mux.Vars(r)
	prod, exists := h.cats.GetProductById(vars["id"])
	if !exists {
		WriteErrorResponse(w, models.ErrNotFoundError)
		return
	}
	limit := config.DefaultRelatedLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	writeJSON(w, h.cats.GetRelatedProducts(prod, limit))
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	if !h.catalogReady(w) {
		return
	}
	writeJSON(w, h.cats.Categories())
}

func (h *Handler) GetCategoryProducts(w http.ResponseWriter, r *http.Request) {
	if !h.catalogReady(w) {
		return
	}
	vars := mux.Vars(r)
	limit := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	writeJSON(w, h.cats.GetProductsByCategory(vars["category"], limit))
}

// cart

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	items := h.cs.Items()
	resp := entities.CartResponse{
		Items:     items,
		ItemCount: h.cs.GetItemCount(),
		Subtotal:  h.cs.GetSubtotal(),
	}
	writeJSON(w, resp)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	req := models.CartRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logx.Warn().Msgf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	prod, exists := h.cats.GetProductById(strconv.Itoa(req.ProductId))
	if !exists {
		WriteErrorResponse(w, models.ErrNotFoundError)
		return
	}
	quantity, err := h.cs.AddToCart(prod, req.Quantity)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, map[string]int{"quantity": quantity})
}

func (h *Handler) UpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	req := models.CartRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logx.Warn().Msgf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	err = h.cs.UpdateQuantity(req.ProductId, req.Quantity)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteFromCart(w http.ResponseWriter, r *http.Request) {
	req := models.CartRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logx.Warn().Msgf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	err = h.cs.RemoveFromCart(req.ProductId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	err := h.cs.Clear()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetCartTotals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.cs.Totals())
}

func (h *Handler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	req := models.PromoRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logx.Warn().Msgf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	promo, err := h.cs.ApplyPromo(req.Code)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, promo)
}

func (h *Handler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	h.cs.RemovePromo()
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.cs.Checkout()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, order)
}

// wishlist

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.ws.Items())
}

func (h *Handler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	req := models.CartRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logx.Warn().Msgf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	prod, exists := h.cats.GetProductById(strconv.Itoa(req.ProductId))
	if !exists {
		WriteErrorResponse(w, models.ErrNotFoundError)
		return
	}
	added, err := h.ws.Toggle(prod)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, map[string]bool{"inWishlist": added})
}

func (h *Handler) HasInWishlist(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]bool{"inWishlist": h.ws.Has(id)})
}

// theme

func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, models.ThemeRequest{DarkMode: h.ses.DarkMode()})
}

func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	req := models.ThemeRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logx.Warn().Msgf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	err = h.ses.SetDarkMode(req.DarkMode)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// middleware

func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("sessionId")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		sess, ok := h.ses.Current()
		if !ok || sess.Id != c.Value {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ErrorHandleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logx.Error().Msgf("panic occured: %v \n stacktrace: %v", rec, string(debug.Stack()))
				http.Error(w, "something went wrong, contact with service administration", http.StatusBadGateway)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) catalogReady(w http.ResponseWriter) bool {
	if h.cats.Loading() {
		http.Error(w, "catalog is still loading", http.StatusServiceUnavailable)
		return false
	}
	if err := h.cats.Err(); err != nil {
		WriteErrorResponse(w, err)
		return false
	}
	return true
}

func WriteErrorResponse(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrServerError):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	case errors.Is(err, models.ErrAuthRequired), errors.Is(err, models.ErrNoSession):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrBadRequest), errors.Is(err, models.ErrInvalidQuantity):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrInvalidPromo):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, models.ErrNotFoundError):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrFetch):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logx.Error().Msgf("Marshal err:%v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonData)
}

func setSessionCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:  "sessionId",
		Value: value,
		Path:  "/",
	})
}
