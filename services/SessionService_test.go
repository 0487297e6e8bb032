package services

import (
	"testing"

	"shopHub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSetsSession(t *testing.T) {
	store := newMemStore()
	ss := NewSessionService(store)

	sess, err := ss.Login("jane@example.com", "Jane")
	require.NoError(t, err)
	assert.True(t, ss.IsAuthenticated())
	assert.NotEmpty(t, sess.Id)
	assert.Equal(t, "Jane", sess.Name)
	assert.Contains(t, sess.Avatar, "ui-avatars.com")
	assert.NotEmpty(t, sess.JoinDate)
}

func TestLoginDerivesNameFromEmail(t *testing.T) {
	store := newMemStore()
	ss := NewSessionService(store)

	sess, err := ss.Login("jane.doe@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", sess.Name)
}

func TestLoginOverwritesExistingSession(t *testing.T) {
	store := newMemStore()
	ss := NewSessionService(store)

	_, err := ss.Login("first@example.com", "First")
	require.NoError(t, err)
	sess, err := ss.Login("second@example.com", "Second")
	require.NoError(t, err)

	current, ok := ss.Current()
	require.True(t, ok)
	assert.Equal(t, sess.Id, current.Id)
	assert.Equal(t, "second@example.com", current.Email)
}

func TestDemoLogin(t *testing.T) {
	store := newMemStore()
	ss := NewSessionService(store)

	sess, err := ss.DemoLogin()
	require.NoError(t, err)
	assert.Equal(t, "demo@shophub.com", sess.Email)
	assert.Equal(t, "Demo User", sess.Name)
	assert.True(t, ss.IsAuthenticated())
}

func TestLogoutCascadeClearsCartAndWishlist(t *testing.T) {
	store := newMemStore()
	ss, cs, ws := loggedIn(store)
	_, err := cs.AddToCart(product(1, "A", 10, "x", nil), 2)
	require.NoError(t, err)
	_, err = ws.Toggle(product(2, "B", 20, "x", nil))
	require.NoError(t, err)

	require.NoError(t, ss.Logout())

	assert.False(t, ss.IsAuthenticated())
	assert.Empty(t, cs.Items(), "logout must leave an empty cart")
	assert.Empty(t, ws.Items(), "logout must leave an empty wishlist")
}

func TestUpdateProfileMerges(t *testing.T) {
	store := newMemStore()
	ss, _, _ := loggedIn(store)

	phone := "+1 (555) 123-4567"
	city := "Commerce City"
	sess, err := ss.UpdateProfile(models.ProfileRequest{Phone: &phone, City: &city})
	require.NoError(t, err)

	assert.Equal(t, phone, sess.Phone)
	assert.Equal(t, city, sess.City)
	// untouched fields survive the merge
	assert.Equal(t, "test@shophub.com", sess.Email)
	assert.Equal(t, "Test User", sess.Name)
}

func TestUpdateProfileWithoutSession(t *testing.T) {
	store := newMemStore()
	ss := NewSessionService(store)

	name := "Nobody"
	_, err := ss.UpdateProfile(models.ProfileRequest{Name: &name})
	assert.ErrorIs(t, err, models.ErrNoSession)
}

func TestSessionPersistsAcrossRestart(t *testing.T) {
	store := newMemStore()
	ss := NewSessionService(store)
	sess, err := ss.Login("jane@example.com", "Jane")
	require.NoError(t, err)

	reloaded := NewSessionService(store)
	current, ok := reloaded.Current()
	require.True(t, ok)
	assert.Equal(t, sess.Id, current.Id)
}

func TestDarkModePersists(t *testing.T) {
	store := newMemStore()
	ss := NewSessionService(store)
	assert.False(t, ss.DarkMode())

	require.NoError(t, ss.SetDarkMode(true))
	assert.True(t, NewSessionService(store).DarkMode())
}
