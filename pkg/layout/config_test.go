package layout

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.NodeWidth = 0 }},
		{"negative height", func(c *Config) { c.NodeHeight = -1 }},
		{"negative hgap", func(c *Config) { c.HorizontalGap = -5 }},
		{"negative vgap", func(c *Config) { c.VerticalGap = -5 }},
		{"negative padding", func(c *Config) { c.Padding = -1 }},
		{"nan width", func(c *Config) { c.NodeWidth = math.NaN() }},
		{"inf height", func(c *Config) { c.NodeHeight = math.Inf(1) }},
		{"inf hgap", func(c *Config) { c.HorizontalGap = math.Inf(1) }},
		{"nan vgap", func(c *Config) { c.VerticalGap = math.NaN() }},
		{"nan padding", func(c *Config) { c.Padding = math.NaN() }},
		{"negative inf padding", func(c *Config) { c.Padding = math.Inf(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}

	zeroGaps := Config{NodeWidth: 1, NodeHeight: 1}
	if err := zeroGaps.Validate(); err != nil {
		t.Errorf("zero gaps should be valid, got %v", err)
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte("node_width = 180\nvertical_gap = 120.5\n"))
	if err != nil {
		t.Fatalf("ParseConfig() = %v", err)
	}
	want := DefaultConfig()
	want.NodeWidth = 180
	want.VerticalGap = 120.5
	if cfg != want {
		t.Errorf("ParseConfig() = %+v, want %+v", cfg, want)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "node_width = "},
		{"unknown key", "node_widht = 10"},
		{"invalid value", "padding = -3"},
		{"wrong type", `node_width = "wide"`},
		{"nan width", "node_width = nan"},
		{"inf gap", "horizontal_gap = inf"},
		{"nan padding", "padding = nan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(tt.data)); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("ParseConfig(%q) = %v, want ErrInvalidConfig", tt.data, err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.toml")
	if err := os.WriteFile(path, []byte("padding = 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}
	if cfg.Padding != 10 || cfg.NodeWidth != DefaultNodeWidth {
		t.Errorf("LoadConfig() = %+v", cfg)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadConfig(missing) = %v, want os.ErrNotExist", err)
	}
}

func TestConfigUnmarshalJSONMergesDefaults(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Config
	}{
		{"partial", `{"node_width":200}`, func() Config { c := DefaultConfig(); c.NodeWidth = 200; return c }()},
		{"empty object", `{}`, DefaultConfig()},
		{"all keys", `{"node_width":1,"node_height":2,"horizontal_gap":3,"vertical_gap":4,"padding":5}`, Config{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Config
			if err := json.Unmarshal([]byte(tt.data), &got); err != nil {
				t.Fatalf("Unmarshal(%s) = %v", tt.data, err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.data, got, tt.want)
			}
		})
	}
}

func TestConfigUnmarshalJSONErrors(t *testing.T) {
	var got Config
	if err := json.Unmarshal([]byte(`{"node_widht":200}`), &got); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown key: err = %v, want ErrInvalidConfig", err)
	}

	var wrapper struct {
		Layout Config `json:"layout"`
	}
	if err := json.Unmarshal([]byte(`{"layout":null}`), &wrapper); err != nil {
		t.Fatalf("null layout: %v", err)
	}
	if wrapper.Layout != (Config{}) {
		t.Errorf("null layout = %+v, want zero", wrapper.Layout)
	}
}
