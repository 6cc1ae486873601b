package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/albedo/internal/greenops"
)

// SupportedSchema is the semver constraint catalog files must satisfy.
const SupportedSchema = "^1.0"

// File is the on-disk catalog document.
type File struct {
	SchemaVersion string       `yaml:"schema_version"`
	Options       []fileOption `yaml:"options"`
}

// fileOption extends MaterialOption with an optional unit for the CO2 offset.
// Offsets are stored in kg once loaded.
type fileOption struct {
	MaterialOption `yaml:",inline"`

	CO2OffsetUnit string `yaml:"co2_offset_unit,omitempty"`
}

// LoadFile reads and validates a YAML catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog document, checks its schema version and
// validates the options. Unknown fields are rejected.
func Parse(data []byte) (*Catalog, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidOption)
		}
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	if err := checkSchema(f.SchemaVersion); err != nil {
		return nil, err
	}

	opts := make([]MaterialOption, 0, len(f.Options))
	for _, fo := range f.Options {
		opt := fo.MaterialOption
		if fo.CO2OffsetUnit != "" {
			kg, err := greenops.NormalizeToKg(opt.CO2OffsetKg, fo.CO2OffsetUnit)
			if err != nil {
				return nil, fmt.Errorf("%w: %s/%s co2 offset: %w", ErrInvalidOption, opt.Category, opt.ID, err)
			}
			opt.CO2OffsetKg = kg
		}
		opts = append(opts, opt)
	}
	return New(opts)
}

func checkSchema(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: schema_version is required", ErrUnsupportedSchema)
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, raw, err)
	}
	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedSchema, v, SupportedSchema)
	}
	return nil
}

// Marshal renders a catalog as a version 1.0 YAML document. It is the
// inverse of Parse and is used by "catalog export".
func (c *Catalog) Marshal() ([]byte, error) {
	f := File{SchemaVersion: "1.0"}
	for _, cat := range Categories() {
		for _, opt := range c.options[cat] {
			f.Options = append(f.Options, fileOption{MaterialOption: opt})
		}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	return buf.Bytes(), nil
}
