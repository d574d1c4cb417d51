package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Set is an ordered collection of themes addressed by name.
type Set struct {
	Default string  `yaml:"default" toml:"default"`
	Themes  []Theme `yaml:"themes" toml:"themes" validate:"dive"`
}

// NewSet returns a set of the built-in themes with TEST as the default.
func NewSet() *Set {
	return &Set{Default: Test.Name, Themes: Builtin()}
}

// Lookup finds a theme by case-insensitive name.
func (s *Set) Lookup(name string) (Theme, bool) {
	i := s.index(name)
	if i < 0 {
		return Theme{}, false
	}
	return s.Themes[i], true
}

// DefaultTheme returns the default theme, falling back to the first theme
// and finally to Test.
func (s *Set) DefaultTheme() Theme {
	if t, ok := s.Lookup(s.Default); ok {
		return t
	}
	if len(s.Themes) > 0 {
		return s.Themes[0]
	}
	return Test
}

// Next returns the theme following current in order, wrapping around.
// An unknown current name yields the first theme.
func (s *Set) Next(current string) Theme {
	if len(s.Themes) == 0 {
		return Test
	}
	i := s.index(current)
	return s.Themes[(i+1)%len(s.Themes)]
}

// Names lists the theme names in order.
func (s *Set) Names() []string {
	names := make([]string, len(s.Themes))
	for i, t := range s.Themes {
		names[i] = t.Name
	}
	return names
}

// Merge adds or replaces themes from o. Replaced themes keep their position.
func (s *Set) Merge(o *Set) {
	for _, t := range o.Themes {
		if i := s.index(t.Name); i >= 0 {
			s.Themes[i] = t
			continue
		}
		s.Themes = append(s.Themes, t)
	}
	if o.Default != "" {
		s.Default = o.Default
	}
}

// Validate checks every theme in the set.
func (s *Set) Validate() error {
	seen := make(map[string]bool, len(s.Themes))
	for _, t := range s.Themes {
		key := strings.ToUpper(t.Name)
		if seen[key] {
			return fmt.Errorf("duplicate theme %q", t.Name)
		}
		seen[key] = true
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid theme set: %w", err)
	}
	return nil
}

func (s *Set) index(name string) int {
	for i, t := range s.Themes {
		if strings.EqualFold(t.Name, name) {
			return i
		}
	}
	return -1
}

// LoadFile reads a theme pack. The format is chosen by extension:
// .toml for TOML, .yaml or .yml for YAML.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme pack: %w", err)
	}

	var s Set
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse theme pack: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse theme pack: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported theme pack extension %q", ext)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Resolve returns the built-in themes merged with the pack at path, if any.
func Resolve(path string) (*Set, error) {
	s := NewSet()
	if path == "" {
		return s, nil
	}
	pack, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	s.Merge(pack)
	return s, nil
}
