package services

import (
	"testing"

	"shopHub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleRequiresSession(t *testing.T) {
	store := newMemStore()
	ss := NewSessionService(store)
	ws := NewWishlistService(store, ss)

	_, err := ws.Toggle(product(1, "Blue Shirt", 10, "clothing", nil))
	assert.ErrorIs(t, err, models.ErrAuthRequired)
	assert.Empty(t, ws.Items())
}

func TestToggleTwiceRestoresMembership(t *testing.T) {
	store := newMemStore()
	_, _, ws := loggedIn(store)
	p := product(1, "Blue Shirt", 10, "clothing", nil)

	added, err := ws.Toggle(p)
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, ws.Has(1))

	added, err = ws.Toggle(p)
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, ws.Has(1))
	assert.Empty(t, ws.Items())
}

func TestWishlistSetSemantics(t *testing.T) {
	store := newMemStore()
	_, _, ws := loggedIn(store)
	a := product(1, "A", 10, "x", nil)
	b := product(2, "B", 20, "x", nil)

	_, _ = ws.Toggle(a)
	_, _ = ws.Toggle(b)
	items := ws.Items()
	require.Len(t, items, 2)
	// insertion order kept for display
	assert.Equal(t, 1, items[0].Id)
	assert.Equal(t, 2, items[1].Id)
}

func TestWishlistHasWithoutSession(t *testing.T) {
	store := newMemStore()
	_, _, ws := loggedIn(store)
	_, _ = ws.Toggle(product(1, "A", 10, "x", nil))

	// membership is a read, allowed regardless of session state
	assert.True(t, ws.Has(1))
	assert.False(t, ws.Has(2))
}

func TestWishlistPersistsAcrossRestart(t *testing.T) {
	store := newMemStore()
	ss, _, ws := loggedIn(store)
	_, err := ws.Toggle(product(1, "A", 10, "x", rated(4)))
	require.NoError(t, err)

	reloaded := NewWishlistService(store, ss)
	require.Len(t, reloaded.Items(), 1)
	assert.True(t, reloaded.Has(1))
}
