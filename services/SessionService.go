package services

import (
	"net/url"
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

const avatarBaseURL = "https://ui-avatars.com/api/"

// Clearer is the hook the session manager runs on logout. The cascade
// session -> cart -> wishlist lives here so no caller can skip it.
type Clearer interface {
	Clear() error
}

type SessionService struct {
	store repository.Store

	mu       sync.RWMutex
	current  *entities.Session
	darkMode bool
	clearers []Clearer
}

func NewSessionService(store repository.Store) *SessionService {
	ss := &SessionService{store: store}
	var sess entities.Session
	if found, err := store.Read(config.KeyUser, &sess); err == nil && found {
		ss.current = &sess
	}
	var dark bool
	if found, err := store.Read(config.KeyTheme, &dark); err == nil && found {
		ss.darkMode = dark
	}
	return ss
}

// RegisterOnLogout adds a dependent collection to the logout cascade.
func (ss *SessionService) RegisterOnLogout(c Clearer) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.clearers = append(ss.clearers, c)
}

// Login overwrites any existing session. Credential checks are the caller's
// job; any identity handed in becomes the session.
func (ss *SessionService) Login(email, name string) (sess entities.Session, err error) {
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	sess = entities.Session{
		Id:       uuid.NewString(),
		Email:    email,
		Name:     name,
		Avatar:   buildAvatarURL(name),
		JoinDate: time.Now().UTC().Format(time.RFC3339),
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	err = ss.setSession(&sess)
	return
}

// DemoLogin mints the fixed demo identity.
func (ss *SessionService) DemoLogin() (sess entities.Session, err error) {
	sess = entities.Session{
		Id:       uuid.NewString(),
		Email:    "demo@shophub.com",
		Name:     "Demo User",
		Avatar:   buildAvatarURL("Demo User"),
		JoinDate: time.Now().UTC().Format(time.RFC3339),
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	err = ss.setSession(&sess)
	return
}

// Logout drops the session and clears every registered dependent collection.
// The state left behind is always: no session, empty cart, empty wishlist.
func (ss *SessionService) Logout() (err error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.current = nil
	if e := ss.store.Delete(config.KeyUser); e != nil {
		err = e
	}
	for _, c := range ss.clearers {
		if e := c.Clear(); e != nil {
			logx.Error().Msgf("Logout: clear cascade: %v", e)
			err = e
		}
	}
	return
}

// UpdateProfile shallow-merges the provided fields over the current session.
func (ss *SessionService) UpdateProfile(partial models.ProfileRequest) (sess entities.Session, err error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.current == nil {
		logx.Warn().Msg("UpdateProfile: no active session")
		err = models.ErrNoSession
		return
	}
	merged := *ss.current
	if partial.Name != nil {
		merged.Name = *partial.Name
	}
	if partial.Email != nil {
		merged.Email = *partial.Email
	}
	if partial.Phone != nil {
		merged.Phone = *partial.Phone
	}
	if partial.Address != nil {
		merged.Address = *partial.Address
	}
	if partial.City != nil {
		merged.City = *partial.City
	}
	if partial.Country != nil {
		merged.Country = *partial.Country
	}
	if partial.ZipCode != nil {
		merged.ZipCode = *partial.ZipCode
	}
	err = ss.setSession(&merged)
	if err != nil {
		return
	}
	sess = merged
	return
}

func (ss *SessionService) IsAuthenticated() bool {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.current != nil
}

func (ss *SessionService) Current() (sess entities.Session, ok bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	if ss.current == nil {
		return
	}
	return *ss.current, true
}

func (ss *SessionService) DarkMode() bool {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.darkMode
}

func (ss *SessionService) SetDarkMode(dark bool) (err error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.darkMode = dark
	err = ss.store.Write(config.KeyTheme, dark)
	return
}

// setSession stores and persists; callers hold the lock.
func (ss *SessionService) setSession(sess *entities.Session) (err error) {
	err = ss.store.Write(config.KeyUser, sess)
	if err != nil {
		return
	}
	ss.current = sess
	return
}

func buildAvatarURL(name string) string {
	return avatarBaseURL + "?name=" + url.QueryEscape(name) + "&background=3B82F6&color=fff"
}
