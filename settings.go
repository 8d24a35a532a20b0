package crumb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Settings is the declarative form of a codec configuration, as found in a
// service's config file:
//
//	format: backward-compatible
//	tuples: array
//	naming: camel
//
// Empty fields take their defaults.
type Settings struct {
	Format Format        `yaml:"format" json:"format"`
	Tuples TupleEncoding `yaml:"tuples" json:"tuples"`
	Naming Naming        `yaml:"naming" json:"naming"`
}

// DefaultSettings returns compact output, array tuples and identity naming.
func DefaultSettings() Settings {
	return Settings{
		Format: FormatCompact,
		Tuples: TupleArray,
		Naming: NamingIdentity,
	}
}

// withDefaults fills empty fields from DefaultSettings.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Format == "" {
		s.Format = d.Format
	}
	if s.Tuples == "" {
		s.Tuples = d.Tuples
	}
	if s.Naming == "" {
		s.Naming = d.Naming
	}
	return s
}

// Validate checks every field names a known value.
func (s Settings) Validate() error {
	s = s.withDefaults()
	if !IsValidFormat(s.Format) {
		return fmt.Errorf("%w: unknown format %q", ErrInvalidSettings, s.Format)
	}
	if !IsValidTupleEncoding(s.Tuples) {
		return fmt.Errorf("%w: unknown tuple encoding %q", ErrInvalidSettings, s.Tuples)
	}
	if !IsValidNaming(s.Naming) {
		return fmt.Errorf("%w: unknown naming %q", ErrInvalidSettings, s.Naming)
	}
	return nil
}

// Options converts the settings into serializer options.
func (s Settings) Options() []SerializerOption {
	s = s.withDefaults()
	return []SerializerOption{
		WithTupleEncoding(s.Tuples),
		WithNaming(s.Naming),
	}
}

// NewCodec builds the codec the settings describe.
func NewCodec(s Settings) (Codec, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s = s.withDefaults()

	switch s.Format {
	case FormatVerbose:
		return NewVerbose(s.Options()...), nil
	case FormatBackwardCompatible:
		return NewBackwardCompatible(s.Options()...), nil
	default:
		return New(s.Options()...), nil
	}
}

// ParseSettingsYAML parses YAML settings.
func ParseSettingsYAML(data []byte) (Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: parsing yaml: %w", ErrInvalidSettings, err)
	}
	s = s.withDefaults()
	return s, s.Validate()
}

// ParseSettingsJSON parses JSON settings. Comments and trailing commas are
// accepted.
func ParseSettingsJSON(data []byte) (Settings, error) {
	stripped := jsonc.ToJSON(data)

	var s Settings
	if err := json.Unmarshal(stripped, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: parsing json: %w", ErrInvalidSettings, err)
	}
	s = s.withDefaults()
	return s, s.Validate()
}

// LoadSettings reads settings from a .yaml, .yml, .json or .jsonc file.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var s Settings
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		s, err = ParseSettingsYAML(data)
	case ".json", ".jsonc":
		s, err = ParseSettingsJSON(data)
	default:
		return Settings{}, fmt.Errorf("%w: unsupported settings file extension %q", ErrInvalidSettings, ext)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
