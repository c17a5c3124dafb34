// package config holds the JSON settings for the offline terrain preview.
// Defaults mirror the constants the renderer was tuned with; a settings file
// overrides only the fields it names.
package config

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.Config{
	EscapeHTML:    false,
	SortMapKeys:   true,
	CaseSensitive: true,
	TagKey:        "json",
	IndentionStep: 2,
}.Froze()

// TerrainConfig configures the height field bake.
type TerrainConfig struct {
	// TexSize is the height field side length in texels.
	TexSize uint32 `json:"tex_size"`

	// Resolution is the source-space step between adjacent texels.
	Resolution float32 `json:"resolution"`

	// Seed seeds the noise source.
	Seed int64 `json:"seed"`

	// HeightScale scales sampled height into world units.
	HeightScale float32 `json:"height_scale"`

	// Source selects the noise source: "cosine" or "perlin".
	Source string `json:"source"`
}

// MeshConfig configures the terrain footprint.
type MeshConfig struct {
	// Size is the footprint side length in grid units.
	Size uint32 `json:"size"`

	// Density is the inner point density relative to the grid resolution.
	Density float32 `json:"density"`
}

// CameraConfig configures the preview camera.
type CameraConfig struct {
	// Eye is the camera position in world space.
	Eye [3]float32 `json:"eye"`

	// Yaw and Pitch are the view angles in radians.
	Yaw   float32 `json:"yaw"`
	Pitch float32 `json:"pitch"`

	// Fov is the vertical field of view in degrees.
	Fov float32 `json:"fov"`
}

// OutputConfig configures the rendered image.
type OutputConfig struct {
	// Width and Height are the framebuffer dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Path is the PNG file the preview writes.
	Path string `json:"path"`
}

// Config is the full preview configuration.
type Config struct {
	Terrain TerrainConfig `json:"terrain"`
	Mesh    MeshConfig    `json:"mesh"`
	Camera  CameraConfig  `json:"camera"`
	Output  OutputConfig  `json:"output"`
}

// Default returns the configuration the preview renders with when no file is
// supplied: a 512-texel field at resolution 0.1, a 100-unit footprint at full
// density, and the camera at (0, 1, 0) with a 45 degree field of view.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Terrain: TerrainConfig{
			TexSize:     512,
			Resolution:  0.1,
			Seed:        0,
			HeightScale: 1.0,
			Source:      "cosine",
		},
		Mesh: MeshConfig{
			Size:    100,
			Density: 1.0,
		},
		Camera: CameraConfig{
			Eye: [3]float32{0, 1, 0},
			Fov: 45,
		},
		Output: OutputConfig{
			Width:  800,
			Height: 600,
			Path:   "out.png",
		},
	}
}

// Load reads a JSON settings file over the defaults. Fields absent from the
// file keep their default values.
//
// Parameters:
//   - path: the settings file to read
//
// Returns:
//   - Config: the merged configuration
//   - error: non-nil when the file cannot be read or parsed
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as indented JSON.
//
// Parameters:
//   - cfg: the configuration to write
//   - path: the destination file
//
// Returns:
//   - error: non-nil when the file cannot be written
func Save(cfg Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
