package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/ledmatrix/layout"
)

type SPI struct {
	Port string `yaml:"port"` // e.g. /dev/spidev0.0; empty picks the first
}

type Config struct {
	Driver string `yaml:"driver"` // "spi" | "term" | "sim"

	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Wiring     string  `yaml:"wiring"`      // "row" | "snake"
	ColorOrder string  `yaml:"color_order"` // e.g. "GRB"
	Brightness float64 `yaml:"brightness"`
	FlipH      bool    `yaml:"flip_h"`
	FlipV      bool    `yaml:"flip_v"`
	Rotation   int     `yaml:"rotation"`

	FPS  int    `yaml:"fps"`
	Addr string `yaml:"addr,omitempty"` // ws preview listen address

	SPI SPI `yaml:"spi,omitempty"`
}

// Matrix converts the file representation into a validated layout config.
func (c *Config) Matrix() (layout.Config, error) {
	lc := layout.Config{
		Width:      c.Width,
		Height:     c.Height,
		Wiring:     layout.Wiring(c.Wiring),
		Order:      layout.ColorOrder(c.ColorOrder),
		Brightness: c.Brightness,
		FlipH:      c.FlipH,
		FlipV:      c.FlipV,
		Rotation:   c.Rotation,
	}
	if err := lc.Validate(); err != nil {
		return layout.Config{}, err
	}
	return lc, nil
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
