// Package session holds the client's last-known credentials for
// auto-login. It mirrors the mobile keychain contract: set-all, get-all,
// clear-all over the keys username, password, and user_id.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Credentials is the persisted auto-login state. Any field may be empty;
// user_id in particular is only known after the first successful login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	UserID   string `json:"user_id"`
}

type Store interface {
	Save(Credentials) error
	// Load reports whether credentials were present at all.
	Load() (Credentials, bool, error)
	Clear() error
}

// FileStore persists credentials as a JSON file. Created at app start,
// cleared on logout.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(c Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

func (s *FileStore) Load() (Credentials, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, err
	}

	var c Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return Credentials{}, false, err
	}
	return c, true, nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
