// Package profiles loads named Fritz!Box connection profiles from YAML/JSON files.
package profiles

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samvad-hq/fritzbox-request/pkg/fritzrequest"
	"gopkg.in/yaml.v3"
)

// Profile is a named set of connection options for one router.
type Profile struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	Server           string `json:"server" yaml:"server"`
	Protocol         string `json:"protocol" yaml:"protocol"`
	SID              string `json:"sid" yaml:"sid"`
	RemoveSIDFromURI bool   `json:"remove_sid_from_uri" yaml:"remove_sid_from_uri"`
}

type fileRegistry struct {
	Profiles []Profile `json:"profiles" yaml:"profiles"`
}

// Registry holds the profiles loaded from a file.
type Registry struct {
	mu       sync.RWMutex
	profiles []Profile
	idx      map[string]Profile
}

// LoadRegistry loads the profile registry from file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("profiles file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profiles file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	fileReg, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(fileReg.Profiles) == 0 {
		return nil, errors.New("profiles file contains no profiles entries")
	}

	reg := &Registry{
		profiles: make([]Profile, len(fileReg.Profiles)),
		idx:      make(map[string]Profile, len(fileReg.Profiles)),
	}
	for i := range fileReg.Profiles {
		p := sanitizeProfile(fileReg.Profiles[i])
		if err := validateProfile(p); err != nil {
			return nil, fmt.Errorf("profile[%d]: %w", i, err)
		}
		if _, exists := reg.idx[p.ID]; exists {
			return nil, fmt.Errorf("duplicate profile id %q", p.ID)
		}
		reg.profiles[i] = p
		reg.idx[p.ID] = p
	}

	return reg, nil
}

type unmarshalFn func([]byte, any) error

func parseRegistry(data []byte, ext string) (fileRegistry, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if reg, err := unmarshalRegistry(d.name, data, d.fn); err == nil {
			return reg, nil
		}
	}

	return fileRegistry{}, errors.New("profiles file format not recognized (expected YAML or JSON)")
}

func unmarshalRegistry(name string, data []byte, fn unmarshalFn) (fileRegistry, error) {
	var reg fileRegistry
	if err := fn(data, &reg); err != nil {
		return fileRegistry{}, fmt.Errorf("decode %s profiles: %w", name, err)
	}
	return reg, nil
}

// sanitizeProfile trims fields. The sid is kept verbatim apart from surrounding whitespace.
func sanitizeProfile(p Profile) Profile {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Server = strings.TrimSpace(p.Server)
	p.Protocol = strings.ToLower(strings.TrimSpace(p.Protocol))
	p.SID = strings.TrimSpace(p.SID)
	return p
}

func validateProfile(p Profile) error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	if p.Server == "" {
		return fmt.Errorf("server is required for profile %q", p.ID)
	}
	return nil
}

// ByID returns the profile for the given id, if loaded.
func (r *Registry) ByID(id string) (Profile, bool) {
	if r == nil {
		return Profile{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Profile{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.idx[id]
	return p, ok
}

// All returns a copy of every loaded profile in file order.
func (r *Registry) All() []Profile {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Profile, len(r.profiles))
	copy(out, r.profiles)
	return out
}

// Options converts the profile to dispatcher options.
func (p Profile) Options() fritzrequest.Options {
	return fritzrequest.Options{
		Server:           p.Server,
		Protocol:         p.Protocol,
		SID:              p.SID,
		RemoveSIDFromURI: p.RemoveSIDFromURI,
	}
}
