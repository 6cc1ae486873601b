// Package scenario evaluates many retrofit sites at once: loading a site
// file, estimating every site concurrently, then sorting and summarizing
// the outcomes.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/albedo/internal/catalog"
	"github.com/rshade/albedo/internal/engine"
)

// MaxSites bounds a single site file.
const MaxSites = 10000

// Site validation errors.
var (
	ErrNoSites       = errors.New("site file contains no sites")
	ErrTooManySites  = fmt.Errorf("site file exceeds %d sites", MaxSites)
	ErrMissingName   = errors.New("site name is required")
	ErrDuplicateName = errors.New("duplicate site name")
	ErrRepeatedArea  = errors.New("surface given more than once")
)

// Site is one property to estimate. Unit is kept as text so a bad value can
// be reported against the site that carries it.
type Site struct {
	Name      string            `json:"name"      yaml:"name"`
	Unit      string            `json:"unit"      yaml:"unit"`
	Areas     engine.AreaInputs `json:"areas"     yaml:"areas"`
	Selection engine.Selection  `json:"selection" yaml:"selection"`
}

// Request converts the site into an engine request. An empty unit means ft2.
func (s Site) Request() (engine.Request, error) {
	unit := engine.UnitSqFt
	if strings.TrimSpace(s.Unit) != "" {
		u, err := engine.ParseUnit(s.Unit)
		if err != nil {
			return engine.Request{}, fmt.Errorf("site %q: %w", s.Name, err)
		}
		unit = u
	}
	return engine.Request{Areas: s.Areas, Unit: unit, Selection: s.Selection}, nil
}

// File is the site file document. JSON files parse too, since JSON is a
// subset of YAML. Surface keys under areas and selection accept the
// category aliases (rooftop, facade, greenery, parking).
type File struct {
	Sites []fileSite `yaml:"sites"`
}

type fileSite struct {
	Name      string             `yaml:"name"`
	Unit      string             `yaml:"unit"`
	Areas     map[string]float64 `yaml:"areas"`
	Selection map[string]string  `yaml:"selection"`
}

func (fs fileSite) site(pos int) (Site, error) {
	s := Site{Name: fs.Name, Unit: fs.Unit}
	label := fmt.Sprintf("site %d", pos)
	if strings.TrimSpace(fs.Name) != "" {
		label = fmt.Sprintf("site %q", fs.Name)
	}

	seen := make(map[catalog.Category]string, len(fs.Areas))
	for key, v := range fs.Areas {
		cat, err := surfaceKey(seen, key)
		if err != nil {
			return Site{}, fmt.Errorf("%s areas: %w", label, err)
		}
		s.Areas = s.Areas.With(cat, v)
	}

	seen = make(map[catalog.Category]string, len(fs.Selection))
	for key, id := range fs.Selection {
		cat, err := surfaceKey(seen, key)
		if err != nil {
			return Site{}, fmt.Errorf("%s selection: %w", label, err)
		}
		s.Selection = s.Selection.With(cat, catalog.OptionID(strings.ToLower(strings.TrimSpace(id))))
	}
	return s, nil
}

// surfaceKey resolves a surface key and rejects a second key naming the same
// surface, such as ground and parking together.
func surfaceKey(seen map[catalog.Category]string, key string) (catalog.Category, error) {
	cat, err := catalog.ParseCategory(key)
	if err != nil {
		return "", err
	}
	if prev, dup := seen[cat]; dup {
		return "", fmt.Errorf("%w: %q and %q", ErrRepeatedArea, prev, key)
	}
	seen[cat] = key
	return cat, nil
}

// Load reads and validates a site file.
func Load(path string) ([]Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading site file: %w", err)
	}
	sites, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("site file %s: %w", path, err)
	}
	return sites, nil
}

// Parse decodes and validates a site document. Unknown fields and unknown
// surface keys are errors.
func Parse(data []byte) ([]Site, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoSites
		}
		return nil, fmt.Errorf("decoding sites: %w", err)
	}

	sites := make([]Site, 0, len(f.Sites))
	for i, fs := range f.Sites {
		s, err := fs.site(i + 1)
		if err != nil {
			return nil, err
		}
		sites = append(sites, s)
	}
	if err := Validate(sites); err != nil {
		return nil, err
	}
	return sites, nil
}

// Validate checks the site list: non-empty, bounded, named, unique names,
// parseable units.
func Validate(sites []Site) error {
	if len(sites) == 0 {
		return ErrNoSites
	}
	if len(sites) > MaxSites {
		return fmt.Errorf("%w: got %d", ErrTooManySites, len(sites))
	}
	seen := make(map[string]int, len(sites))
	for i, s := range sites {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("site %d: %w", i+1, ErrMissingName)
		}
		if first, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q (sites %d and %d)", ErrDuplicateName, name, first+1, i+1)
		}
		seen[name] = i
		if _, err := s.Request(); err != nil {
			return err
		}
	}
	return nil
}
