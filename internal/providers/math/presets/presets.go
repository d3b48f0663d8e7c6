// Package presets holds the catalogue of example expressions and x-ranges.
//
// The built in catalogue is embedded YAML. A deployment may replace it with
// a YAML or TOML file of the same shape, or a glob matching several.
package presets

import (
	_ "embed"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/plotter/internal/providers/math/expression"
	"github.com/GriffinCanCode/plotter/internal/providers/math/plotting"
)

//go:embed presets.yaml
var builtin []byte

// ErrFormat is returned for catalogue files that are neither YAML nor TOML
var ErrFormat = errors.New("presets: unsupported file format")

// Preset is one example expression
type Preset struct {
	Name       string `json:"name" yaml:"name" toml:"name"`
	Title      string `json:"title" yaml:"title" toml:"title"`
	Category   string `json:"category" yaml:"category" toml:"category"`
	Expression string `json:"expression" yaml:"expression" toml:"expression"`
	Start      string `json:"start" yaml:"start" toml:"start"`
	Stop       string `json:"stop" yaml:"stop" toml:"stop"`
	Polar      bool   `json:"polar,omitempty" yaml:"polar" toml:"polar"`
}

// Range is a named x interval
type Range struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Start string `json:"start" yaml:"start" toml:"start"`
	Stop  string `json:"stop" yaml:"stop" toml:"stop"`
}

// Catalog is the full set of presets and ranges
type Catalog struct {
	Presets []Preset `json:"presets" yaml:"presets" toml:"presets"`
	Ranges  []Range  `json:"ranges" yaml:"ranges" toml:"ranges"`
}

// Default returns the embedded catalogue
func Default() (*Catalog, error) {
	return Parse(builtin, "yaml")
}

// Load reads a catalogue file, choosing the decoder by extension. A path
// with glob metacharacters (including **) loads every match in lexical
// order and merges them. An empty path returns the embedded catalogue.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	if strings.ContainsAny(path, "*?[{") {
		return LoadGlob(path)
	}
	return loadFile(path)
}

func loadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("presets: read %s: %w", path, err)
	}
	return Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
}

// LoadGlob merges every catalogue file matching pattern. Names must stay
// unique across files.
func LoadGlob(pattern string) (*Catalog, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("presets: glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("presets: no files match %s", pattern)
	}
	sort.Strings(matches)

	var merged Catalog
	for _, path := range matches {
		c, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		merged.Presets = append(merged.Presets, c.Presets...)
		merged.Ranges = append(merged.Ranges, c.Ranges...)
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Parse decodes data as format ("yaml", "yml" or "toml") and validates it
func Parse(data []byte, format string) (*Catalog, error) {
	var c Catalog
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("presets: YAML parse error: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("presets: TOML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}

	c.sanitize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that every expression compiles, every bound evaluates
// and names are unique
func (c *Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c.Presets))
	for _, p := range c.Presets {
		if p.Name == "" {
			return fmt.Errorf("presets: preset without a name")
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("presets: duplicate preset %q", p.Name)
		}
		seen[p.Name] = struct{}{}

		prog, err := expression.Compile(p.Expression)
		if err != nil {
			return fmt.Errorf("presets: %s: %w", p.Name, err)
		}
		if _, err := plotting.Classify(prog, plotting.Overrides{Polar: p.Polar}); err != nil {
			return fmt.Errorf("presets: %s: %w", p.Name, err)
		}
		if _, _, err := plotting.Bounds(p.Start, p.Stop); err != nil {
			return fmt.Errorf("presets: %s: %w", p.Name, err)
		}
	}

	for _, r := range c.Ranges {
		if _, _, err := plotting.Bounds(r.Start, r.Stop); err != nil {
			return fmt.Errorf("presets: range %s: %w", r.Name, err)
		}
	}
	return nil
}

// sanitize strips markup from preset titles, leaving plain text
func (c *Catalog) sanitize() {
	policy := bluemonday.StrictPolicy()
	for i := range c.Presets {
		title := html.UnescapeString(policy.Sanitize(c.Presets[i].Title))
		c.Presets[i].Title = strings.TrimSpace(title)
	}
}

// Find looks a preset up by name
func (c *Catalog) Find(name string) (Preset, bool) {
	for _, p := range c.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// FindRange looks a range up by name
func (c *Catalog) FindRange(name string) (Range, bool) {
	for _, r := range c.Ranges {
		if r.Name == name {
			return r, true
		}
	}
	return Range{}, false
}

// Request builds a sampling request for the preset
func (p Preset) Request(resolution int) plotting.Request {
	return plotting.Request{
		Expression: p.Expression,
		Start:      p.Start,
		Stop:       p.Stop,
		Resolution: resolution,
		Polar:      p.Polar,
	}
}

// Mode classifies the preset expression
func (p Preset) Mode() (plotting.Mode, error) {
	return plotting.ClassifyText(p.Expression, plotting.Overrides{Polar: p.Polar})
}
