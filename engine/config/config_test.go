package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Terrain.TexSize != 512 {
		t.Errorf("default tex_size = %d, want 512", cfg.Terrain.TexSize)
	}
	if cfg.Terrain.Resolution != 0.1 {
		t.Errorf("default resolution = %v, want 0.1", cfg.Terrain.Resolution)
	}
	if cfg.Mesh.Size != 100 || cfg.Mesh.Density != 1.0 {
		t.Errorf("default mesh = %+v, want size 100 density 1", cfg.Mesh)
	}
	if cfg.Camera.Eye != [3]float32{0, 1, 0} || cfg.Camera.Fov != 45 {
		t.Errorf("default camera = %+v", cfg.Camera)
	}
}

func TestLoadOverridesOnlyNamedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	body := `{"terrain": {"tex_size": 64, "source": "perlin"}, "output": {"path": "render.png"}}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Terrain.TexSize != 64 {
		t.Errorf("tex_size = %d, want 64", cfg.Terrain.TexSize)
	}
	if cfg.Terrain.Source != "perlin" {
		t.Errorf("source = %q, want perlin", cfg.Terrain.Source)
	}
	if cfg.Output.Path != "render.png" {
		t.Errorf("path = %q, want render.png", cfg.Output.Path)
	}

	// Unnamed fields keep their defaults.
	if cfg.Terrain.Resolution != 0.1 {
		t.Errorf("resolution = %v, want the default 0.1", cfg.Terrain.Resolution)
	}
	if cfg.Mesh.Size != 100 {
		t.Errorf("mesh size = %d, want the default 100", cfg.Mesh.Size)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	want := Default()
	want.Terrain.Seed = 42
	want.Camera.Yaw = 1.5

	if err := Save(want, path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}
