// Package config loads runtime settings from defaults, an optional file and GLOBE_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"geoglobe/globe/graticule"
)

type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
	Hz     int    `mapstructure:"hz"`
}

type GlobeConfig struct {
	Radius        float64 `mapstructure:"radius"`
	Segments      int     `mapstructure:"segments"`
	GraticuleStep float64 `mapstructure:"graticuleStep"`
	Axes          bool    `mapstructure:"axes"`
}

type CameraConfig struct {
	FOV      float64   `mapstructure:"fov"`
	Near     float64   `mapstructure:"near"`
	Far      float64   `mapstructure:"far"`
	Position []float64 `mapstructure:"position"`
}

type OrbitConfig struct {
	MinDistance float64 `mapstructure:"minDistance"`
	MaxDistance float64 `mapstructure:"maxDistance"`
	Damping     float64 `mapstructure:"damping"`
	RotateSpeed float64 `mapstructure:"rotateSpeed"`
	ZoomSpeed   float64 `mapstructure:"zoomSpeed"`
}

type MarkersConfig struct {
	Size           float64  `mapstructure:"size"`
	HitRadius      float64  `mapstructure:"hitRadius"`
	LabelOffset    float64  `mapstructure:"labelOffset"`
	AlwaysVisible  []string `mapstructure:"alwaysVisible"`
	OccludeByGlobe bool     `mapstructure:"occludeByGlobe"`
	Bars           bool     `mapstructure:"bars"`
}

type DataConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Config is the complete runtime configuration.
type Config struct {
	Window  WindowConfig  `mapstructure:"window"`
	Globe   GlobeConfig   `mapstructure:"globe"`
	Camera  CameraConfig  `mapstructure:"camera"`
	Orbit   OrbitConfig   `mapstructure:"orbit"`
	Markers MarkersConfig `mapstructure:"markers"`
	Data    DataConfig    `mapstructure:"data"`
	Log     LogConfig     `mapstructure:"log"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 960)
	v.SetDefault("window.height", 640)
	v.SetDefault("window.title", "Globe")
	v.SetDefault("window.hz", 60)

	v.SetDefault("globe.radius", 100.0)
	v.SetDefault("globe.segments", 36)
	v.SetDefault("globe.graticuleStep", 15.0)
	v.SetDefault("globe.axes", false)

	v.SetDefault("camera.fov", 50.0)
	v.SetDefault("camera.near", 0.1)
	v.SetDefault("camera.far", 2000.0)
	v.SetDefault("camera.position", []float64{0, 180, 300})

	v.SetDefault("orbit.minDistance", 120.0)
	v.SetDefault("orbit.maxDistance", 500.0)
	v.SetDefault("orbit.damping", 0.05)
	v.SetDefault("orbit.rotateSpeed", 0.005)
	v.SetDefault("orbit.zoomSpeed", 10.0)

	v.SetDefault("markers.size", 0.6)
	v.SetDefault("markers.hitRadius", 0.6)
	v.SetDefault("markers.labelOffset", 30.0)
	v.SetDefault("markers.alwaysVisible", []string{})
	v.SetDefault("markers.occludeByGlobe", false)
	v.SetDefault("markers.bars", true)

	v.SetDefault("data.path", "data/points.json")
	v.SetDefault("data.format", "auto")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the configuration. An empty path uses defaults and the environment only;
// the file type follows its extension (yaml, json or toml).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("GLOBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges that the rest of the program relies on.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.Hz > 0, "window.hz %d", c.Window.Hz)
	check(c.Globe.Radius > 0, "globe.radius %v", c.Globe.Radius)
	check(c.Globe.Segments >= 3, "globe.segments %d", c.Globe.Segments)
	check(c.Globe.GraticuleStep >= graticule.MinStep, "globe.graticuleStep %v below %v", c.Globe.GraticuleStep, graticule.MinStep)
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera.fov %v", c.Camera.FOV)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "camera near/far %v/%v", c.Camera.Near, c.Camera.Far)
	check(len(c.Camera.Position) == 3, "camera.position needs 3 components, got %d", len(c.Camera.Position))
	check(c.Orbit.MinDistance >= 0 && (c.Orbit.MaxDistance == 0 || c.Orbit.MaxDistance >= c.Orbit.MinDistance),
		"orbit distance range [%v, %v]", c.Orbit.MinDistance, c.Orbit.MaxDistance)
	check(c.Orbit.Damping >= 0 && c.Orbit.Damping <= 1, "orbit.damping %v", c.Orbit.Damping)
	check(c.Markers.Size > 0, "markers.size %v", c.Markers.Size)
	check(c.Markers.HitRadius > 0, "markers.hitRadius %v", c.Markers.HitRadius)
	return errors.Join(errs...)
}
