package services

import (
	"sync"

	"shopHub/config"
	"shopHub/entities"
	"shopHub/models"
	"shopHub/repository"

	logx "shopHub/pkg/logger"
)

// WishlistService keeps a set of saved products: a product id appears at
// most once, insertion order is kept for display.
type WishlistService struct {
	store repository.Store
	ss    *SessionService

	mu    sync.RWMutex
	items []entities.Product
}

func NewWishlistService(store repository.Store, sessionService *SessionService) *WishlistService {
	ws := &WishlistService{store: store, ss: sessionService}
	var items []entities.Product
	if found, err := store.Read(config.KeyWishlist, &items); err == nil && found {
		ws.items = items
	}
	return ws
}

// Toggle removes the product when present, adds it otherwise.
func (ws *WishlistService) Toggle(product entities.Product) (added bool, err error) {
	if !ws.ss.IsAuthenticated() {
		logx.Warn().Msg("Toggle: no session")
		err = models.ErrAuthRequired
		return
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	for i := range ws.items {
		if ws.items[i].Id == product.Id {
			ws.items = append(ws.items[:i], ws.items[i+1:]...)
			err = ws.persist()
			return
		}
	}
	ws.items = append(ws.items, product)
	added = true
	err = ws.persist()
	return
}

// Has is a pure membership query, allowed with or without a session.
func (ws *WishlistService) Has(productId int) bool {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	for _, p := range ws.items {
		if p.Id == productId {
			return true
		}
	}
	return false
}

func (ws *WishlistService) Items() []entities.Product {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	out := make([]entities.Product, len(ws.items))
	copy(out, ws.items)
	return out
}

// Clear empties the collection. Not auth-gated: the logout cascade runs it
// after the session is already gone.
func (ws *WishlistService) Clear() (err error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.items = nil
	err = ws.store.Write(config.KeyWishlist, []entities.Product{})
	return
}

func (ws *WishlistService) persist() (err error) {
	items := ws.items
	if items == nil {
		items = []entities.Product{}
	}
	err = ws.store.Write(config.KeyWishlist, items)
	return
}
