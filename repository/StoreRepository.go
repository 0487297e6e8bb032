package repository

import (
	"database/sql"
	"encoding/json"
	"errors"

	"shopHub/models"

	_ "github.com/mattn/go-sqlite3"

	logx "shopHub/pkg/logger"
)

// Store is the persistent collection store: one serialized JSON value per
// key, overwritten fully on every write. A value that fails to parse is
// treated as absent so a corrupt store never breaks startup.
type Store interface {
	Read(key string, dest any) (found bool, err error)
	Write(key string, value any) (err error)
	Delete(key string) (err error)
}

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (Store, error) {
	if path == "" {
		return nil, errors.New("path must be non-empty")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		return nil, err
	}
	_, err = db.Exec("CREATE TABLE IF NOT EXISTS kv (Key TEXT PRIMARY KEY, Value TEXT NOT NULL)")
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Read(key string, dest any) (found bool, err error) {
	var raw string
	row := s.db.QueryRow("SELECT Value FROM kv WHERE Key = ?", key)
	err = row.Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
		} else {
			logx.Error().Msgf("Read: %v", err)
			err = models.ErrServerError
		}
		return
	}
	if e := json.Unmarshal([]byte(raw), dest); e != nil {
		// corrupt entry, fall back to the caller's default
		logx.Warn().Msgf("Read: corrupt value for %q: %v", key, e)
		return
	}
	found = true
	return
}

func (s *SQLiteStore) Write(key string, value any) (err error) {
	jsonData, err := json.Marshal(value)
	if err != nil {
		logx.Error().Msgf("Write: marshal: %v", err)
		err = models.ErrServerError
		return
	}
	_, err = s.db.Exec("INSERT INTO kv (Key, Value) VALUES (?, ?) ON CONFLICT(Key) DO UPDATE SET Value = excluded.Value", key, string(jsonData))
	if err != nil {
		logx.Error().Msgf("Write: %v", err)
		err = models.ErrServerError
	}
	return
}

func (s *SQLiteStore) Delete(key string) (err error) {
	_, err = s.db.Exec("DELETE FROM kv WHERE Key = ?", key)
	if err != nil {
		logx.Error().Msgf("Delete: %v", err)
		err = models.ErrServerError
	}
	return
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
