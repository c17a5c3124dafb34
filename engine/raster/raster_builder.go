package raster

type RasterizerBuilderOption func(*rasterizerImpl)

// WithSize sets the framebuffer dimensions in pixels.
//
// Parameters:
//   - width, height: framebuffer dimensions (values < 1 are ignored)
//
// Returns:
//   - RasterizerBuilderOption: a function that sets the dimensions
func WithSize(width, height int) RasterizerBuilderOption {
	return func(r *rasterizerImpl) {
		if width >= 1 && height >= 1 {
			r.width = width
			r.height = height
		}
	}
}

// WithClearColor sets the color the framebuffer clears to before each draw.
//
// Parameters:
//   - red, green, blue, alpha: clear color components in [0, 1]
//
// Returns:
//   - RasterizerBuilderOption: a function that sets the clear color
func WithClearColor(red, green, blue, alpha float32) RasterizerBuilderOption {
	return func(r *rasterizerImpl) {
		r.clearColor = [4]float32{red, green, blue, alpha}
	}
}

// WithWorkers sets the number of pool workers used for the fragment pass.
//
// Parameters:
//   - workers: worker count (values < 1 are ignored)
//
// Returns:
//   - RasterizerBuilderOption: a function that sets the worker count
func WithWorkers(workers int) RasterizerBuilderOption {
	return func(r *rasterizerImpl) {
		if workers >= 1 {
			r.workers = workers
		}
	}
}
