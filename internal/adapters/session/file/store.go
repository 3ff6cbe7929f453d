package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"epaw/internal/ports/session"

	"github.com/spf13/viper"
)

const (
	keyToken    = "authtoken"
	keyUserID   = "currentuser.id"
	keyEmail    = "currentuser.email"
	keyName     = "currentuser.name"
	keyRole     = "currentuser.role"
	permissions = 0o600
)

var ErrEmptyToken = errors.New("token is empty")

// Store persiste la sesión en un archivo local (json/yaml según extensión).
type Store struct {
	mu   sync.Mutex
	path string
}

var _ session.Store = (*Store)(nil)

func NewStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("session file path required")
	}
	if filepath.Ext(path) == "" {
		path += ".json"
	}
	return &Store{path: path}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.load()
	v.Set(keyToken, token)
	return s.write(v)
}

// Read trata cualquier falla de lectura como ausencia de sesión.
func (s *Store) Read() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok := strings.TrimSpace(s.load().GetString(keyToken))
	return tok, tok != ""
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) IsActive() bool {
	_, ok := s.Read()
	return ok
}

func (s *Store) SaveIdentity(id session.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.load()
	v.Set(keyUserID, id.UserID)
	v.Set(keyEmail, id.Email)
	v.Set(keyName, id.Name)
	v.Set(keyRole, id.Role)
	return s.write(v)
}

func (s *Store) ReadIdentity() (session.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.load()
	id := session.Identity{
		UserID: v.GetString(keyUserID),
		Email:  v.GetString(keyEmail),
		Name:   v.GetString(keyName),
		Role:   v.GetString(keyRole),
	}
	return id, id.UserID != ""
}

// load devuelve un viper vacío si el archivo no existe o está corrupto.
func (s *Store) load() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigPermissions(permissions)
	_ = v.ReadInConfig()
	return v
}

func (s *Store) write(v *viper.Viper) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
