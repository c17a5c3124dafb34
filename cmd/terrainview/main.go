// Command terrainview renders an offline preview of the heightmap terrain:
// it bakes a noise field, triangulates the footprint, and pushes both through
// the terrain shader pair on the software rasterizer.
//
// Usage:
//
//	terrainview [options]
//
// Examples:
//
//	terrainview                          # render with defaults to out.png
//	terrainview -config settings.json    # render from a settings file
//	terrainview -noise -out field.png    # write the baked field as grayscale
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"runtime/pprof"

	"terrainview/common"
	"terrainview/engine/camera"
	"terrainview/engine/config"
	"terrainview/engine/heightmap"
	"terrainview/engine/mesh"
	"terrainview/engine/noise"
	"terrainview/engine/profiler"
	"terrainview/engine/raster"
	"terrainview/engine/shading"
)

var (
	configPath = flag.String("config", "", "settings file (JSON); defaults apply when empty")
	outPath    = flag.String("out", "", "output PNG path (overrides the settings file)")
	texSize    = flag.Uint("size", 0, "height field texel size (overrides the settings file)")
	seed       = flag.Int64("seed", 0, "noise seed (overrides the settings file)")
	noiseOnly  = flag.Bool("noise", false, "write the baked height field as grayscale instead of rendering")
	cpuProfile = flag.String("cpuprofile", "", "write cpu profile to `file`")
)

func main() {
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.Output.Path = common.Coalesce(*outPath, cfg.Output.Path)
	cfg.Terrain.TexSize = common.Coalesce(uint32(*texSize), cfg.Terrain.TexSize)
	cfg.Terrain.Seed = common.Coalesce(*seed, cfg.Terrain.Seed)

	src, err := noiseSource(cfg.Terrain)
	if err != nil {
		return err
	}

	prof := profiler.NewProfiler()

	bakeDone := prof.Pass("bake")
	field := heightmap.Bake(src, cfg.Terrain.TexSize,
		heightmap.WithResolution(cfg.Terrain.Resolution),
		heightmap.WithSeed(uint32(cfg.Terrain.Seed)),
	)
	bakeDone()

	if *noiseOnly {
		return writePNG(cfg.Output.Path, field.Image())
	}

	meshDone := prof.Pass("mesh")
	grid, err := mesh.GenerateGrid(cfg.Mesh.Size, cfg.Mesh.Density)
	if err != nil {
		return err
	}
	meshDone()
	log.Printf("Generated %d vertices and %d indices", len(grid.Vertices), len(grid.Indices))

	cam := camera.NewCamera(
		camera.WithEye(cfg.Camera.Eye[0], cfg.Camera.Eye[1], cfg.Camera.Eye[2]),
		camera.WithYaw(cfg.Camera.Yaw),
		camera.WithPitch(cfg.Camera.Pitch),
		camera.WithFov(common.Radians(cfg.Camera.Fov)),
		camera.WithAspect(float32(cfg.Output.Width)/float32(cfg.Output.Height)),
	)

	program := shading.NewProgram(field,
		shading.WithViewProj(cam.ViewProjectionMatrix()),
		shading.WithHeightScale(cfg.Terrain.HeightScale),
	)

	r := raster.NewRasterizer(raster.WithSize(cfg.Output.Width, cfg.Output.Height))

	drawDone := prof.Pass("draw")
	if err := r.Draw(program, grid); err != nil {
		return err
	}
	drawDone()

	return writePNG(cfg.Output.Path, r.Image())
}

func noiseSource(terrain config.TerrainConfig) (noise.Source, error) {
	switch terrain.Source {
	case "", "cosine":
		return noise.Cosine{}, nil
	case "perlin":
		return noise.NewPerlin(terrain.Seed), nil
	default:
		return nil, fmt.Errorf("unknown noise source %q", terrain.Source)
	}
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return err
	}
	log.Printf("Wrote %s", path)
	return nil
}
