// Package config loads and validates the strip topology: which GPIOs are
// wired, how the physical strips hang off them and which chipset timing
// profile they speak. The topology is fixed for the life of the process;
// everything is validated up front so the transmit path can trust it.
package config

import (
	"fmt"
	"strings"

	humane "github.com/sierrasoftworks/humane-errors-go"
	"github.com/spf13/viper"

	"github.com/parkero/bl602-ws2811/ws28xx"
)

type Config struct {
	// Backend selects the hardware driver: "rpi" (memory-mapped
	// registers, needs root) or "gpiodev" (character device).
	Backend string `yaml:"backend" mapstructure:"backend"`
	// Chip is the gpiochip name for the gpiodev backend.
	Chip string `yaml:"chip,omitempty" mapstructure:"chip,omitempty"`
	// Timings names the chipset profile, e.g. "ws2811" or "ws2812".
	Timings string `yaml:"timings" mapstructure:"timings"`
	// Lines lists the output GPIOs by line id (index). A GPIO of -1
	// marks a line id that exists in the addressing scheme but isn't
	// physically connected.
	Lines []LineConfig `yaml:"lines" mapstructure:"lines"`
	// Strips lists the physical strips in logical-buffer order.
	Strips []StripConfig `yaml:"strips" mapstructure:"strips"`
}

type LineConfig struct {
	GPIO int `yaml:"gpio" mapstructure:"gpio"`
}

type StripConfig struct {
	Line     int    `yaml:"line" mapstructure:"line"`
	Count    int    `yaml:"count" mapstructure:"count"`
	Reversed bool   `yaml:"reversed,omitempty" mapstructure:"reversed,omitempty"`
	Order    string `yaml:"order" mapstructure:"order"`
}

// Load reads a YAML config file and validates it.
func Load(path string) (*Config, humane.Error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("backend", "rpi")
	v.SetDefault("timings", "ws2812")
	if err := v.ReadInConfig(); err != nil {
		return nil, humane.Wrap(err, "failed to read config file",
			fmt.Sprintf("ensure %s exists and is readable", path),
		)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, humane.Wrap(err, "failed to parse config file",
			"check the file against ws2811d.example.yaml",
		)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces every invariant the core relies on: a known timing
// profile, a known color order per strip, positive LED counts and line
// ids that resolve to configured lines.
func (c *Config) Validate() humane.Error {
	if _, ok := ws28xx.StringTimings[strings.ToLower(c.Timings)]; !ok {
		return humane.New(fmt.Sprintf("unknown timing profile %q", c.Timings),
			"use one of: ws2811, ws2812",
		)
	}
	if len(c.Strips) == 0 {
		return humane.New("no strips configured",
			"add at least one entry under strips",
		)
	}
	for i, s := range c.Strips {
		if s.Count <= 0 {
			return humane.New(fmt.Sprintf("strip %d has led count %d", i, s.Count),
				"every strip needs a positive count",
			)
		}
		if s.Line < 0 || s.Line >= len(c.Lines) {
			return humane.New(fmt.Sprintf("strip %d references line %d but only %d lines are configured", i, s.Line, len(c.Lines)),
				"strip line ids index into the lines list",
			)
		}
		if _, err := ws28xx.ParseOrder(strings.ToUpper(s.Order)); err != nil {
			return humane.New(fmt.Sprintf("strip %d: %v", i, err),
				"use one of: RGB, RBG, GRB, GBR, BRG, BGR",
			)
		}
	}
	return nil
}

// StripTimings returns the selected chipset profile. Call after Validate.
func (c *Config) StripTimings() ws28xx.StripTimings {
	return ws28xx.StringTimings[strings.ToLower(c.Timings)]
}

// PhysicalStrips converts the validated config into core strip configs.
func (c *Config) PhysicalStrips() []ws28xx.PhysicalStrip {
	t := c.StripTimings()
	strips := make([]ws28xx.PhysicalStrip, len(c.Strips))
	for i, s := range c.Strips {
		order, _ := ws28xx.ParseOrder(strings.ToUpper(s.Order)) // validated above
		strips[i] = ws28xx.PhysicalStrip{
			Line:     uint8(s.Line),
			LedCount: s.Count,
			Reversed: s.Reversed,
			Order:    order,
			Timings:  t,
		}
	}
	return strips
}
