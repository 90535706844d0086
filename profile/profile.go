// Package profile manages the company profile: the letterhead data printed
// on every quote document. The profile is local configuration, not a
// backend collection; it is read and written through an explicit Store
// port so nothing reaches for ambient global state.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Profile is the document issuer's identity. Logo holds the raw image
// bytes (PNG or JPEG); it serializes as base64 in the JSON store.
type Profile struct {
	Name    string `json:"name" envconfig:"COMPANY_NAME"`
	Address string `json:"address" envconfig:"COMPANY_ADDRESS"`
	SIRET   string `json:"siret" envconfig:"COMPANY_SIRET"`
	Email   string `json:"email" envconfig:"COMPANY_EMAIL"`
	Phone   string `json:"phone" envconfig:"COMPANY_PHONE"`
	Logo    []byte `json:"logo,omitempty" ignored:"true"`
	Footer  string `json:"footer" envconfig:"COMPANY_FOOTER"`
}

// IsZero reports whether no field is set.
func (p Profile) IsZero() bool {
	return p.Name == "" && p.Address == "" && p.SIRET == "" &&
		p.Email == "" && p.Phone == "" && len(p.Logo) == 0 && p.Footer == ""
}

// Store reads and writes the single company profile under a fixed key.
type Store interface {
	Load() (Profile, error)
	Save(Profile) error
}

// storeFileName is the fixed key of the single profile record.
const storeFileName = "company_profile.json"

// FileStore persists the profile as a JSON file in the application data
// directory, surviving restarts without touching the backend schema.
type FileStore struct {
	path string
}

// NewFileStore returns a store rooted in dir (typically the PocketBase
// data dir).
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, storeFileName)}
}

// Load reads the stored profile. A missing file yields a zero profile and
// no error.
func (s *FileStore) Load() (Profile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Profile{}, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("read company profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("decode company profile: %w", err)
	}
	return p, nil
}

// Save writes the profile atomically (write temp file, then rename).
func (s *FileStore) Save(p Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode company profile: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write company profile: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("store company profile: %w", err)
	}
	return nil
}

// DefaultsFromEnv builds a profile from COMPANY_* environment variables,
// used to seed the store on first run.
func DefaultsFromEnv() (Profile, error) {
	var p Profile
	if err := envconfig.Process("", &p); err != nil {
		return Profile{}, fmt.Errorf("read company profile env defaults: %w", err)
	}
	return p, nil
}
