package services

import (
	"math"
	"strings"
	"sync"
	"time"

	"shopHub/config"
	"shopHub/entities"
	"shopHub/models"
	"shopHub/repository"

	"github.com/google/uuid"

	logx "shopHub/pkg/logger"
)

// validPromoCodes is the fixed promo registry. Codes match case-insensitively
// and only one may be active at a time.
var validPromoCodes = map[string]entities.PromoCode{
	"WELCOME10": {Code: "WELCOME10", Discount: 0.1, Description: "10% off your order"},
	"SAVE20":    {Code: "SAVE20", Discount: 0.2, Description: "20% off your order"},
	"FREESHIP":  {Code: "FREESHIP", Discount: 0, Description: "Free shipping", FreeShipping: true},
}

type CartService struct {
	store repository.Store
	ss    *SessionService

	mu           sync.RWMutex
	lines        []entities.CartLine
	appliedPromo *entities.PromoCode
}

func NewCartService(store repository.Store, sessionService *SessionService) *CartService {
	cs := &CartService{store: store, ss: sessionService}
	var lines []entities.CartLine
	if found, err := store.Read(config.KeyCart, &lines); err == nil && found {
		cs.lines = lines
	}
	return cs
}

// AddToCart merges into an existing line or appends a new one. The resulting
// quantity is clamped to MaxCartQuantity; the capped value is returned.
func (cs *CartService) AddToCart(product entities.Product, quantity int) (newQuantity int, err error) {
	if !cs.ss.IsAuthenticated() {
		logx.Warn().Msg("AddToCart: no session")
		err = models.ErrAuthRequired
		return
	}
	if quantity < 1 {
		logx.Warn().Msgf("AddToCart: bad quantity %d", quantity)
		err = models.ErrInvalidQuantity
		return
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for i := range cs.lines {
		if cs.lines[i].Id == product.Id {
			newQuantity = clampQuantity(cs.lines[i].Quantity + quantity)
			cs.lines[i].Quantity = newQuantity
			err = cs.persist()
			return
		}
	}
	newQuantity = clampQuantity(quantity)
	cs.lines = append(cs.lines, entities.CartLine{Product: product, Quantity: newQuantity})
	err = cs.persist()
	return
}

// UpdateQuantity sets a line's quantity, clamped to [1, MaxCartQuantity].
// A quantity of zero or less removes the line.
func (cs *CartService) UpdateQuantity(productId int, quantity int) (err error) {
	if !cs.ss.IsAuthenticated() {
		err = models.ErrAuthRequired
		return
	}
	if quantity <= 0 {
		return cs.remove(productId)
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for i := range cs.lines {
		if cs.lines[i].Id == productId {
			cs.lines[i].Quantity = clampQuantity(quantity)
			err = cs.persist()
			return
		}
	}
	return
}

// RemoveFromCart deletes the line if present; absent lines are a no-op.
func (cs *CartService) RemoveFromCart(productId int) (err error) {
	if !cs.ss.IsAuthenticated() {
		err = models.ErrAuthRequired
		return
	}
	return cs.remove(productId)
}

func (cs *CartService) remove(productId int) (err error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for i := range cs.lines {
		if cs.lines[i].Id == productId {
			cs.lines = append(cs.lines[:i], cs.lines[i+1:]...)
			err = cs.persist()
			return
		}
	}
	return
}

// Clear empties the cart and drops any applied promo. Not auth-gated: the
// logout cascade runs it after the session is already gone.
func (cs *CartService) Clear() (err error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.lines = nil
	cs.appliedPromo = nil
	err = cs.persist()
	return
}

func (cs *CartService) Items() []entities.CartLine {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make([]entities.CartLine, len(cs.lines))
	copy(out, cs.lines)
	return out
}

// GetSubtotal sums price x quantity over the snapshot prices.
func (cs *CartService) GetSubtotal() float64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.subtotal()
}

func (cs *CartService) subtotal() (total float64) {
	for _, l := range cs.lines {
		total += l.Price * float64(l.Quantity)
	}
	return
}

// GetItemCount sums quantities, not distinct lines.
func (cs *CartService) GetItemCount() (count int) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	for _, l := range cs.lines {
		count += l.Quantity
	}
	return
}

// ApplyPromo matches the code case-insensitively against the registry.
// Unknown codes leave the applied promo untouched. A new code replaces the
// previous one.
func (cs *CartService) ApplyPromo(code string) (promo entities.PromoCode, err error) {
	if !cs.ss.IsAuthenticated() {
		err = models.ErrAuthRequired
		return
	}
	p, ok := validPromoCodes[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		logx.Warn().Msgf("ApplyPromo: unknown code %q", code)
		err = models.ErrInvalidPromo
		return
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.appliedPromo = &p
	promo = p
	return
}

func (cs *CartService) RemovePromo() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.appliedPromo = nil
}

func (cs *CartService) AppliedPromo() (promo entities.PromoCode, ok bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.appliedPromo == nil {
		return
	}
	return *cs.appliedPromo, true
}

// Totals runs the pricing pipeline: promo discount, then shipping against
// the discounted subtotal, then tax, then total. Figures are rounded to
// cents as they are derived.
func (cs *CartService) Totals() entities.CartTotals {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.totalsLocked()
}

// totalsLocked runs the pricing pipeline; callers hold the lock.
func (cs *CartService) totalsLocked() (t entities.CartTotals) {
	t.Subtotal = round2(cs.subtotal())
	if cs.appliedPromo != nil {
		p := *cs.appliedPromo
		t.AppliedPromo = &p
		t.PromoDiscount = round2(t.Subtotal * p.Discount)
	}
	t.DiscountedSubtotal = round2(t.Subtotal - t.PromoDiscount)
	if t.AppliedPromo != nil && t.AppliedPromo.FreeShipping {
		t.Shipping = 0
	} else if t.DiscountedSubtotal > config.FreeShippingThreshold {
		t.Shipping = 0
	} else {
		t.Shipping = config.DefaultShippingCost
		t.FreeShippingRemaining = round2(config.FreeShippingThreshold - t.DiscountedSubtotal)
	}
	t.Tax = round2(t.DiscountedSubtotal * config.TaxRate)
	t.Total = round2(t.DiscountedSubtotal + t.Shipping + t.Tax)
	return
}

// Checkout turns the current cart into an order and empties it. No payment
// is taken; the order summary is the result.
func (cs *CartService) Checkout() (order entities.Order, err error) {
	sess, ok := cs.ss.Current()
	if !ok {
		err = models.ErrAuthRequired
		return
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if len(cs.lines) == 0 {
		logx.Warn().Msg("Checkout: empty cart")
		err = models.ErrBadRequest
		return
	}
	totals := cs.totalsLocked()
	items := make([]entities.CartLine, len(cs.lines))
	copy(items, cs.lines)
	order = entities.Order{
		Id:     uuid.NewString(),
		Date:   time.Now().UTC(),
		Email:  sess.Email,
		Items:  items,
		Totals: totals,
	}
	cs.lines = nil
	cs.appliedPromo = nil
	err = cs.persist()
	return
}

// persist writes the full line set; callers hold the lock.
func (cs *CartService) persist() (err error) {
	lines := cs.lines
	if lines == nil {
		lines = []entities.CartLine{}
	}
	err = cs.store.Write(config.KeyCart, lines)
	return
}

func clampQuantity(q int) int {
	if q > config.MaxCartQuantity {
		return config.MaxCartQuantity
	}
	if q < 1 {
		return 1
	}
	return q
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
