package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/svglite"
	"github.com/gogpu/svglite/vglite"
	"github.com/gogpu/svglite/vglite/soft"
)

// Config holds render settings. It is read from a TOML file and then
// overridden by explicitly set flags.
//
// Example file:
//
//	backend = "soft"
//	format = "bgra"
//	clear = 0xffffffff
//	fill_rule = "evenodd"
//	font_dirs = ["/usr/share/fonts"]
type Config struct {
	Backend     string   `toml:"backend"`
	Format      string   `toml:"format"`
	Clear       uint32   `toml:"clear"`
	FillRule    string   `toml:"fill_rule"`
	Quality     string   `toml:"quality"`
	ImagePolicy string   `toml:"image_policy"`
	FontDirs    []string `toml:"font_dirs"`
	BuiltinFont bool     `toml:"builtin_font"`
}

// DefaultConfig returns the settings used when neither a config file nor
// a flag specifies a value.
func DefaultConfig() Config {
	return Config{
		Backend:     soft.Name,
		Format:      "bgra",
		Clear:       0xFFFFFFFF,
		FillRule:    "nonzero",
		Quality:     "high",
		ImagePolicy: "fail",
	}
}

// LoadConfig reads a TOML config file on top of the defaults. Keys absent
// from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("parse config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// format returns the target pixel format named by the config.
func (c Config) format() (vglite.Format, error) {
	switch strings.ToLower(c.Format) {
	case "bgra", "bgra8888":
		return vglite.FormatBGRA8888, nil
	case "rgba", "rgba8888":
		return vglite.FormatRGBA8888, nil
	default:
		return 0, fmt.Errorf("unknown format %q (want bgra or rgba)", c.Format)
	}
}

// options converts the config into render options.
func (c Config) options() ([]svglite.Option, error) {
	opts := []svglite.Option{svglite.WithClearColor(c.Clear)}

	switch strings.ToLower(c.FillRule) {
	case "nonzero":
		opts = append(opts, svglite.WithFillRule(vglite.FillNonZero))
	case "evenodd":
		opts = append(opts, svglite.WithFillRule(vglite.FillEvenOdd))
	default:
		return nil, fmt.Errorf("unknown fill rule %q (want nonzero or evenodd)", c.FillRule)
	}

	switch strings.ToLower(c.Quality) {
	case "high":
		opts = append(opts, svglite.WithQuality(vglite.QualityHigh))
	case "medium":
		opts = append(opts, svglite.WithQuality(vglite.QualityMedium))
	case "low":
		opts = append(opts, svglite.WithQuality(vglite.QualityLow))
	default:
		return nil, fmt.Errorf("unknown quality %q (want high, medium or low)", c.Quality)
	}

	switch strings.ToLower(c.ImagePolicy) {
	case "fail":
		opts = append(opts, svglite.WithImagePolicy(svglite.ImagePolicyFail))
	case "zero-fill", "zerofill":
		opts = append(opts, svglite.WithImagePolicy(svglite.ImagePolicyZeroFill))
	default:
		return nil, fmt.Errorf("unknown image policy %q (want fail or zero-fill)", c.ImagePolicy)
	}
	return opts, nil
}
