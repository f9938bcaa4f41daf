package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode is an option builder that sets the surface present mode. Defaults to VSync.
//
// Parameters:
//   - mode: the present mode
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithMSAA is an option builder that sets the sample count of the render targets. Defaults to MSAAOff.
//
// Parameters:
//   - count: the sample count
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		if count == 0 {
			count = MSAAOff
		}
		r.msaa = count
	}
}

// WithForceSoftwareRenderer is an option builder that requests the fallback (software) adapter.
//
// Parameters:
//   - force: whether to force the fallback adapter
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
