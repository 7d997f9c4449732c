// Package config provides the renderer configuration.
// Values start from built-in defaults and may be overridden from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Config holds every tunable of the renderer. It is built once at startup
// and treated as immutable afterwards.
type Config struct {
	// Window and viewport
	Screen ScreenConfig `json:"screen"`

	// Ray casting and projection
	Camera CameraConfig `json:"camera"`

	// Viewer movement
	Movement MovementConfig `json:"movement"`

	// Debug layers drawn by the projector
	Overlay OverlayConfig `json:"overlay"`
}

// ScreenConfig defines the window. The left half shows the map overlay and
// the right half the projected view.
type ScreenConfig struct {
	Width  int    `json:"width"`  // Window width in pixels (usually 2 * Height)
	Height int    `json:"height"` // Window height in pixels, also the map extent
	Title  string `json:"title"`
	TPS    int    `json:"tps"` // Target frames per second
}

// CameraConfig defines the ray fan and the projection constants.
type CameraConfig struct {
	FOV              float64 `json:"fov"`                // Field of view in radians
	Rays             int     `json:"rays"`               // Number of rays (screen columns)
	MaxDistanceTiles float64 `json:"max_distance_tiles"` // Trace limit as a multiple of tile size
	HeightScale      float64 `json:"height_scale"`       // K in height = K / depth
	Epsilon          float64 `json:"epsilon"`            // Added to depth before dividing
	ShadeMax         float64 `json:"shade_max"`          // Gray level of a wall at distance 0
	Fog              float64 `json:"fog"`                // Quadratic distance attenuation factor
	Strategy         string  `json:"strategy"`           // "march", "dda" or "segment"
	Workers          int     `json:"workers"`            // Ray tracing goroutines, <= 1 means serial
}

// MovementConfig defines how input moves the viewer.
type MovementConfig struct {
	Speed        float64 `json:"speed"`         // World units per frame
	StrafeOffset float64 `json:"strafe_offset"` // Angle subtracted from heading for strafing
	Sensitivity  float64 `json:"sensitivity"`   // Pointer pixels per radian of turn
	Collide      bool    `json:"collide"`       // Block movement into wall cells
}

// OverlayConfig toggles the debug layers.
type OverlayConfig struct {
	Map     bool `json:"map"`
	Rays    bool `json:"rays"`
	HUD     bool `json:"hud"`
	Outline bool `json:"outline"` // Trace wall faces on the map
}

// Strategy names accepted by CameraConfig.Strategy.
const (
	StrategyMarch   = "march"
	StrategyDDA     = "dda"
	StrategySegment = "segment"
)

// DefaultConfig returns the classic 1000x500 setup.
func DefaultConfig() *Config {
	return &Config{
		Screen: ScreenConfig{
			Width:  1000,
			Height: 500,
			Title:  "Corridor",
			TPS:    60,
		},
		Camera: CameraConfig{
			FOV:              math.Pi / 3,
			Rays:             250,
			MaxDistanceTiles: 10,
			HeightScale:      21000,
			Epsilon:          0.0001,
			ShadeMax:         150,
			Fog:              0.0001,
			Strategy:         StrategyMarch,
			Workers:          1,
		},
		Movement: MovementConfig{
			Speed:        3,
			StrafeOffset: 3 * math.Pi / 2,
			Sensitivity:  200,
			Collide:      false,
		},
		Overlay: OverlayConfig{
			Map:     true,
			Rays:    true,
			HUD:     false,
			Outline: false,
		},
	}
}

// LoadConfig loads the configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// Validate checks that the configuration can drive a renderer.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("invalid screen size: %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.TPS <= 0 {
		return fmt.Errorf("invalid tps: %d", c.Screen.TPS)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 2*math.Pi {
		return fmt.Errorf("fov must be in (0, 2π): %f", c.Camera.FOV)
	}
	if c.Camera.Rays <= 0 {
		return fmt.Errorf("invalid ray count: %d", c.Camera.Rays)
	}
	if c.Camera.MaxDistanceTiles <= 0 {
		return fmt.Errorf("invalid max distance: %f tiles", c.Camera.MaxDistanceTiles)
	}
	if c.Camera.HeightScale <= 0 {
		return fmt.Errorf("invalid height scale: %f", c.Camera.HeightScale)
	}
	if c.Camera.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive: %f", c.Camera.Epsilon)
	}
	if c.Camera.ShadeMax < 0 || c.Camera.ShadeMax > 255 {
		return fmt.Errorf("shade max out of range [0, 255]: %f", c.Camera.ShadeMax)
	}
	if c.Camera.Fog < 0 {
		return fmt.Errorf("fog must not be negative: %f", c.Camera.Fog)
	}
	switch c.Camera.Strategy {
	case StrategyMarch, StrategyDDA, StrategySegment:
	default:
		return fmt.Errorf("unknown strategy %q", c.Camera.Strategy)
	}
	if c.Movement.Sensitivity == 0 {
		return fmt.Errorf("sensitivity must not be zero")
	}
	return nil
}

// AngleStep is the angular distance between neighbouring rays.
func (c *Config) AngleStep() float64 {
	return c.Camera.FOV / float64(c.Camera.Rays)
}

// ColumnScale is the pixel width of one wall slice. Rays * ColumnScale
// equals the screen height, the width reserved for the 3D view.
func (c *Config) ColumnScale() float64 {
	return float64(c.Screen.Height) / float64(c.Camera.Rays)
}
