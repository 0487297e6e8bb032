package services

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"shopHub/entities"
	"shopHub/repository"

	logx "shopHub/pkg/logger"
)

// CatalogService holds the fetched product list. Products are immutable
// after Load; all accessors work on the loaded snapshot.
type CatalogService struct {
	cr repository.CatalogRepository

	mu       sync.RWMutex
	products []entities.Product
	loading  bool
	fetchErr error
}

func NewCatalogService(catalogRepo repository.CatalogRepository) *CatalogService {
	return &CatalogService{
		cr:      catalogRepo,
		loading: true,
	}
}

// Load fetches the full product set. On failure the catalog stays empty and
// the error is kept for callers; there is no automatic retry.
func (cs *CatalogService) Load(ctx context.Context) (err error) {
	cs.mu.Lock()
	cs.loading = true
	cs.fetchErr = nil
	cs.mu.Unlock()

	prods, err := cs.cr.FetchProducts(ctx)

	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.loading = false
	if err != nil {
		cs.fetchErr = err
		cs.products = nil
		return
	}
	cs.products = prods
	logx.Info().Msgf("Load: %d products", len(prods))
	return
}

func (cs *CatalogService) Loading() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.loading
}

func (cs *CatalogService) Err() error {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.fetchErr
}

func (cs *CatalogService) Products() []entities.Product {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make([]entities.Product, len(cs.products))
	copy(out, cs.products)
	return out
}

// GetProductById resolves the integer parse of id against the catalog.
func (cs *CatalogService) GetProductById(id string) (prod entities.Product, exists bool) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return
	}
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	for _, p := range cs.products {
		if p.Id == n {
			return p, true
		}
	}
	return
}

// GetRelatedProducts returns up to limit products sharing the category,
// excluding the product itself, in catalog order.
func (cs *CatalogService) GetRelatedProducts(product entities.Product, limit int) (related []entities.Product) {
	related = []entities.Product{}
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	for _, p := range cs.products {
		if p.Category == product.Category && p.Id != product.Id {
			related = append(related, p)
			if len(related) == limit {
				return
			}
		}
	}
	return
}

// GetProductsByCategory filters by exact category match. A limit of 0 means
// no limit.
func (cs *CatalogService) GetProductsByCategory(category string, limit int) (prods []entities.Product) {
	prods = []entities.Product{}
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	for _, p := range cs.products {
		if p.Category == category {
			prods = append(prods, p)
			if limit > 0 && len(prods) == limit {
				return
			}
		}
	}
	return
}

// Categories lists the distinct categories of the loaded catalog, sorted.
func (cs *CatalogService) Categories() (cats []string) {
	cats = []string{}
	seen := map[string]bool{}
	cs.mu.RLock()
	for _, p := range cs.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	cs.mu.RUnlock()
	sort.Strings(cats)
	return
}
