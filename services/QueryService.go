package services

import (
	"sort"
	"strings"
	"sync"

	"shopHub/config"
	"shopHub/entities"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// QueryService derives the visible product list from the catalog plus the
// current search, filter and sort state. The state is transient: it is not
// persisted across restarts.
type QueryService struct {
	cats *CatalogService

	mu    sync.RWMutex
	state entities.QueryState
}

func NewQueryService(catalogService *CatalogService) *QueryService {
	return &QueryService{
		cats: catalogService,
		state: entities.QueryState{
			SortBy:         config.SortName,
			FilterCategory: config.CategoryAll,
			PriceRange:     entities.PriceRange{Min: 0, Max: config.DefaultPriceRangeMax},
		},
	}
}

func (qs *QueryService) State() entities.QueryState {
	qs.mu.RLock()
	defer qs.mu.RUnlock()
	return qs.state
}

func (qs *QueryService) SetSearchTerm(term string) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	qs.state.SearchTerm = term
}

func (qs *QueryService) SetSortBy(sortBy string) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	qs.state.SortBy = sortBy
}

func (qs *QueryService) SetFilterCategory(category string) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	qs.state.FilterCategory = category
}

func (qs *QueryService) SetPriceRange(min, max float64) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	qs.state.PriceRange = entities.PriceRange{Min: min, Max: max}
}

func (qs *QueryService) SetMinRating(rating float64) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	qs.state.MinRating = rating
}

func (qs *QueryService) Reset() {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	qs.state = entities.QueryState{
		SortBy:         config.SortName,
		FilterCategory: config.CategoryAll,
		PriceRange:     entities.PriceRange{Min: 0, Max: config.DefaultPriceRangeMax},
	}
}

// GetFilteredProducts applies search, category, price range and minimum
// rating in that order, then sorts. The sort is stable: equal keys keep
// catalog relative order.
func (qs *QueryService) GetFilteredProducts() []entities.Product {
	qs.mu.RLock()
	state := qs.state
	qs.mu.RUnlock()

	filtered := []entities.Product{}
	term := strings.ToLower(state.SearchTerm)
	for _, p := range qs.cats.Products() {
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		if state.FilterCategory != config.CategoryAll && p.Category != state.FilterCategory {
			continue
		}
		if p.Price < state.PriceRange.Min || p.Price > state.PriceRange.Max {
			continue
		}
		if p.Rate() < state.MinRating {
			continue
		}
		filtered = append(filtered, p)
	}
	sortProducts(filtered, state.SortBy)
	return filtered
}

func matchesSearch(p entities.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Category), term)
}

func sortProducts(prods []entities.Product, sortBy string) {
	var less func(a, b entities.Product) bool
	switch sortBy {
	case config.SortPriceLow:
		less = func(a, b entities.Product) bool { return a.Price < b.Price }
	case config.SortPriceHigh:
		less = func(a, b entities.Product) bool { return a.Price > b.Price }
	case config.SortRating:
		less = func(a, b entities.Product) bool { return a.Rate() > b.Rate() }
	case config.SortRatingLow:
		less = func(a, b entities.Product) bool { return a.Rate() < b.Rate() }
	case config.SortNameDesc:
		// CompareString mutates collator state, so each sort gets its own
		coll := collate.New(language.AmericanEnglish, collate.IgnoreCase)
		less = func(a, b entities.Product) bool { return coll.CompareString(a.Title, b.Title) > 0 }
	default:
		// name ascending, also the fallback for unknown keys
		coll := collate.New(language.AmericanEnglish, collate.IgnoreCase)
		less = func(a, b entities.Product) bool { return coll.CompareString(a.Title, b.Title) < 0 }
	}
	sort.SliceStable(prods, func(i, j int) bool { return less(prods[i], prods[j]) })
}
