package services

import (
	"context"
	"encoding/json"

	"shopHub/entities"
)

// memStore is an in-memory Store for engine tests. It records write order
// so persistence ordering can be asserted.
type memStore struct {
	data   map[string]string
	writes []string
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (m *memStore) Read(key string, dest any) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, nil
	}
	return true, nil
}

func (m *memStore) Write(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = string(raw)
	m.writes = append(m.writes, key)
	return nil
}

func (m *memStore) Delete(key string) error {
	delete(m.data, key)
	return nil
}

type stubCatalogRepo struct {
	prods []entities.Product
	err   error
}

func (s stubCatalogRepo) FetchProducts(ctx context.Context) ([]entities.Product, error) {
	return s.prods, s.err
}

func rated(rate float64) *entities.Rating {
	return &entities.Rating{Rate: rate, Count: 10}
}

func product(id int, title string, price float64, category string, rating *entities.Rating) entities.Product {
	return entities.Product{
		Id:          id,
		Title:       title,
		Price:       price,
		Description: title + " description",
		Category:    category,
		Image:       "https://example.com/img.png",
		Rating:      rating,
	}
}

// loggedIn builds a session service with an active session plus the cart and
// wishlist wired into the logout cascade.
func loggedIn(store *memStore) (*SessionService, *CartService, *WishlistService) {
	ss := NewSessionService(store)
	cs := NewCartService(store, ss)
	ws := NewWishlistService(store, ss)
	ss.RegisterOnLogout(cs)
	ss.RegisterOnLogout(ws)
	_, _ = ss.Login("test@shophub.com", "Test User")
	return ss, cs, ws
}
