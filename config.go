package viewscene

import (
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the interaction constants and defaults of a scene.
type Config struct {
	// Wheel zoom factor per tick.
	ZoomStep float32 `yaml:"zoom_step"`
	// Drag zoom factor is exp(dy * ZoomPixelLogStep).
	ZoomPixelLogStep float32 `yaml:"zoom_pixel_log_step"`
	ZoomMin          float32 `yaml:"zoom_min"`
	ZoomMax          float32 `yaml:"zoom_max"`

	// Root camera.
	FOV         float32 `yaml:"fov"`
	Zoom        float32 `yaml:"zoom"`
	Theta       float32 `yaml:"theta"`
	Phi         float32 `yaml:"phi"`
	Interactive bool    `yaml:"interactive"`

	MouseModes [3]MouseMode `yaml:"mouse_modes"`
	WheelMode  WheelMode    `yaml:"wheel_mode"`

	LogPrefix string `yaml:"log_prefix"`
	Debug     bool   `yaml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		ZoomStep:         1.05,
		ZoomPixelLogStep: 0.02,
		ZoomMin:          0.0001,
		ZoomMax:          10000,
		FOV:              30,
		Zoom:             1,
		Phi:              15,
		Interactive:      true,
		MouseModes:       [3]MouseMode{MousePolar, MouseFOV, MouseZoom},
		WheelMode:        WheelNone,
	}
}

// ParseConfig decodes YAML on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.New("decoding config failed").
			WithType(ErrTypeBadConfig).
			Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.New("reading config failed").
			WithType(ErrTypeBadConfig).
			WithTag("path", path).
			Wrap(err)
	}
	return ParseConfig(data)
}

func (c Config) Validate() error {
	switch {
	case c.ZoomStep <= 1:
		return errors.New("zoom step must be greater than 1").
			WithType(ErrTypeBadConfig).
			WithTag("zoom_step", c.ZoomStep)
	case c.ZoomMin <= 0 || c.ZoomMax < c.ZoomMin:
		return errors.New("zoom range is empty").
			WithType(ErrTypeBadConfig).
			WithTag("zoom_min", c.ZoomMin).
			WithTag("zoom_max", c.ZoomMax)
	case c.Zoom < c.ZoomMin || c.Zoom > c.ZoomMax:
		return errors.New("zoom outside of zoom range").
			WithType(ErrTypeBadConfig).
			WithTag("zoom", c.Zoom)
	case c.Phi < -90 || c.Phi > 90:
		return errors.New("elevation outside of [-90, 90]").
			WithType(ErrTypeBadConfig).
			WithTag("phi", c.Phi)
	}
	for i, m := range c.MouseModes {
		if m == MouseUser {
			return errors.New("user mouse mode needs callbacks and cannot be a default").
				WithType(ErrTypeBadConfig).
				WithTag("button", i+1)
		}
	}
	if c.WheelMode == WheelUser {
		return errors.New("user wheel mode needs a callback and cannot be a default").
			WithType(ErrTypeBadConfig)
	}
	return nil
}
