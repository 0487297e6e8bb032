package services

import (
	"context"
	"sync"
	"testing"

	"shopHub/config"
	"shopHub/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogWith(t *testing.T, prods ...entities.Product) *CatalogService {
	t.Helper()
	cs := NewCatalogService(stubCatalogRepo{prods: prods})
	require.NoError(t, cs.Load(context.Background()))
	return cs
}

func titles(prods []entities.Product) []string {
	out := make([]string, len(prods))
	for i, p := range prods {
		out[i] = p.Title
	}
	return out
}

func TestSearchMatchesAnyField(t *testing.T) {
	cats := catalogWith(t,
		product(1, "Blue Shirt", 10, "clothing", nil),
		product(2, "Red Hat", 50, "accessories", nil),
		product(3, "Gold Ring", 120, "jewelery", nil),
	)
	qs := NewQueryService(cats)

	qs.SetSearchTerm("SHIRT")
	assert.Equal(t, []string{"Blue Shirt"}, titles(qs.GetFilteredProducts()))

	// category text matches too
	qs.SetSearchTerm("jewel")
	assert.Equal(t, []string{"Gold Ring"}, titles(qs.GetFilteredProducts()))

	// description field
	qs.SetSearchTerm("red hat description")
	assert.Equal(t, []string{"Red Hat"}, titles(qs.GetFilteredProducts()))
}

func TestCategoryFilterSentinelAll(t *testing.T) {
	cats := catalogWith(t,
		product(1, "Blue Shirt", 10, "clothing", nil),
		product(2, "Red Hat", 50, "accessories", nil),
	)
	qs := NewQueryService(cats)

	qs.SetFilterCategory("clothing")
	assert.Equal(t, []string{"Blue Shirt"}, titles(qs.GetFilteredProducts()))

	qs.SetFilterCategory(config.CategoryAll)
	assert.Len(t, qs.GetFilteredProducts(), 2)
}

func TestPriceRangeInclusiveBounds(t *testing.T) {
	cats := catalogWith(t,
		product(1, "A", 10, "x", nil),
		product(2, "B", 25, "x", nil),
		product(3, "C", 50, "x", nil),
		product(4, "D", 51, "x", nil),
	)
	qs := NewQueryService(cats)

	qs.SetPriceRange(25, 50)
	assert.Equal(t, []string{"B", "C"}, titles(qs.GetFilteredProducts()))
}

func TestMinRatingAndPriceHighSort(t *testing.T) {
	cats := catalogWith(t,
		product(1, "Blue Shirt", 10, "clothing", rated(4)),
		product(2, "Red Hat", 50, "clothing", rated(2)),
	)
	qs := NewQueryService(cats)

	qs.SetMinRating(3)
	qs.SetSortBy(config.SortPriceHigh)
	assert.Equal(t, []string{"Blue Shirt"}, titles(qs.GetFilteredProducts()))
}

func TestUnratedTreatedAsZero(t *testing.T) {
	cats := catalogWith(t,
		product(1, "Rated", 10, "x", rated(4)),
		product(2, "Unrated", 10, "x", nil),
	)
	qs := NewQueryService(cats)

	qs.SetMinRating(1)
	assert.Equal(t, []string{"Rated"}, titles(qs.GetFilteredProducts()))
}

func TestSortKeys(t *testing.T) {
	cats := catalogWith(t,
		product(1, "banana", 30, "x", rated(2)),
		product(2, "Apple", 10, "x", rated(5)),
		product(3, "cherry", 20, "x", rated(4)),
	)
	qs := NewQueryService(cats)

	tests := []struct {
		sortBy string
		want   []string
	}{
		{config.SortName, []string{"Apple", "banana", "cherry"}},
		{config.SortNameDesc, []string{"cherry", "banana", "Apple"}},
		{config.SortPriceLow, []string{"Apple", "cherry", "banana"}},
		{config.SortPriceHigh, []string{"banana", "cherry", "Apple"}},
		{config.SortRating, []string{"Apple", "cherry", "banana"}},
		{config.SortRatingLow, []string{"banana", "cherry", "Apple"}},
		{"bogus", []string{"Apple", "banana", "cherry"}},
	}
	for _, tt := range tests {
		qs.SetSortBy(tt.sortBy)
		assert.Equal(t, tt.want, titles(qs.GetFilteredProducts()), "sortBy=%s", tt.sortBy)
	}
}

func TestSortIsStableForEqualKeys(t *testing.T) {
	cats := catalogWith(t,
		product(1, "Zeta", 10, "x", nil),
		product(2, "Alpha", 10, "x", nil),
		product(3, "Mid", 10, "x", nil),
	)
	qs := NewQueryService(cats)

	// equal prices keep catalog relative order
	qs.SetSortBy(config.SortPriceLow)
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, titles(qs.GetFilteredProducts()))
}

func TestResetRestoresDefaults(t *testing.T) {
	cats := catalogWith(t, product(1, "A", 10, "x", nil))
	qs := NewQueryService(cats)

	qs.SetSearchTerm("something")
	qs.SetFilterCategory("clothing")
	qs.SetMinRating(4)
	qs.Reset()

	state := qs.State()
	assert.Equal(t, config.SortName, state.SortBy)
	assert.Equal(t, config.CategoryAll, state.FilterCategory)
	assert.Equal(t, entities.PriceRange{Min: 0, Max: config.DefaultPriceRangeMax}, state.PriceRange)
	assert.Zero(t, state.SearchTerm)
	assert.Zero(t, state.MinRating)
}

func TestGetFilteredProductsConcurrent(t *testing.T) {
	cats := catalogWith(t,
		product(1, "banana", 20, "x", rated(3)),
		product(2, "Apple", 30, "x", rated(5)),
		product(3, "cherry", 25, "x", rated(4)),
	)
	qs := NewQueryService(cats)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				got := qs.GetFilteredProducts()
				assert.Equal(t, []string{"Apple", "banana", "cherry"}, titles(got))
			}
		}()
	}
	wg.Wait()
}
