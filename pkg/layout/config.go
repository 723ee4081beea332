package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is returned by [Config.Validate] and [LoadConfig].
var ErrInvalidConfig = errors.New("invalid layout config")

// Default geometry in logical units.
const (
	DefaultNodeWidth     = 150
	DefaultNodeHeight    = 60
	DefaultHorizontalGap = 80
	DefaultVerticalGap   = 100
	DefaultPadding       = 30
)

// Config holds the fixed grid geometry. Every node gets the same
// NodeWidth x NodeHeight footprint; gaps separate adjacent cells and
// Padding expands subgraph boxes on every side.
type Config struct {
	NodeWidth     float64 `toml:"node_width" json:"node_width"`
	NodeHeight    float64 `toml:"node_height" json:"node_height"`
	HorizontalGap float64 `toml:"horizontal_gap" json:"horizontal_gap"`
	VerticalGap   float64 `toml:"vertical_gap" json:"vertical_gap"`
	Padding       float64 `toml:"padding" json:"padding"`
}

// DefaultConfig returns the standard 150x60 grid with 80/100 gaps and
// 30 units of subgraph padding.
func DefaultConfig() Config {
	return Config{
		NodeWidth:     DefaultNodeWidth,
		NodeHeight:    DefaultNodeHeight,
		HorizontalGap: DefaultHorizontalGap,
		VerticalGap:   DefaultVerticalGap,
		Padding:       DefaultPadding,
	}
}

// Validate rejects non-finite values, non-positive node sizes and negative
// gaps or padding.
func (c Config) Validate() error {
	for _, f := range []struct {
		key      string
		v        float64
		positive bool
	}{
		{"node_width", c.NodeWidth, true},
		{"node_height", c.NodeHeight, true},
		{"horizontal_gap", c.HorizontalGap, false},
		{"vertical_gap", c.VerticalGap, false},
		{"padding", c.Padding, false},
	} {
		switch {
		case math.IsNaN(f.v) || math.IsInf(f.v, 0):
			return fmt.Errorf("%w: %s must be finite, got %g", ErrInvalidConfig, f.key, f.v)
		case f.positive && f.v <= 0:
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidConfig, f.key, f.v)
		case !f.positive && f.v < 0:
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidConfig, f.key, f.v)
		}
	}
	return nil
}

// UnmarshalJSON decodes a JSON layout object on top of [DefaultConfig], so
// a partial object like {"node_width":200} only overrides the keys it names.
// Unknown keys are rejected, as in [ParseConfig]. A JSON null leaves c
// unchanged.
func (c *Config) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	type plain Config
	merged := plain(DefaultConfig())
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&merged); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	*c = Config(merged)
	return nil
}

// LoadConfig reads a TOML file. Keys missing from the file keep their
// default values; unknown keys are rejected.
//
//	node_width = 180
//	vertical_gap = 120
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read layout config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML data the same way as [LoadConfig].
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
