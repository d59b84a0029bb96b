package softmask

// Fallback selects what happens when a base material's shader has no
// registered soft-maskable counterpart.
type Fallback uint8

const (
	// FallbackDefault uses the built-in generic soft-maskable shader.
	FallbackDefault Fallback = iota

	// FallbackNone refuses to build a variant; the drawable keeps its
	// unmasked base material.
	FallbackNone
)

// String returns a human-readable name for the fallback behavior.
func (f Fallback) String() string {
	switch f {
	case FallbackDefault:
		return "Default"
	case FallbackNone:
		return "None"
	default:
		return "Unknown"
	}
}

// Settings holds the project-wide soft masking configuration queried by
// maskable nodes on every material resolution.
//
// Settings is not safe for concurrent mutation. It is read and written on
// the thread that drives the render pass.
type Settings struct {
	enabled              bool
	stereo               bool
	stencilOutsideScreen bool
	preview              bool
	fallback             Fallback
}

// Option configures Settings during creation.
//
// Example:
//
//	// Defaults: masking on, mono rendering, default fallback
//	s := softmask.NewSettings()
//
//	// VR project that keeps stencil clipping off-screen
//	s := softmask.NewSettings(softmask.WithStereo(true), softmask.WithStencilOutsideScreen(true))
type Option func(*Settings)

// defaultSettings returns the default settings values.
func defaultSettings() Settings {
	return Settings{
		enabled:  true,
		fallback: FallbackDefault,
	}
}

// NewSettings creates settings from the defaults and the given options.
func NewSettings(opts ...Option) *Settings {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return &s
}

// WithSoftMaskingEnabled turns soft masking on or off globally.
// When off, every drawable renders with its base material.
func WithSoftMaskingEnabled(on bool) Option {
	return func(s *Settings) {
		s.enabled = on
	}
}

// WithStereo enables stereo-aware variants for canvases rendered by a
// stereo camera.
func WithStereo(on bool) Option {
	return func(s *Settings) {
		s.stereo = on
	}
}

// WithStencilOutsideScreen keeps stencil clipping active for regions
// outside the on-screen bounds of a soft mask.
func WithStencilOutsideScreen(on bool) Option {
	return func(s *Settings) {
		s.stencilOutsideScreen = on
	}
}

// WithFallback sets the behavior used when no soft-maskable shader is
// registered for a base material.
func WithFallback(f Fallback) Option {
	return func(s *Settings) {
		s.fallback = f
	}
}

// WithPreview enables preview mode. In preview mode the alpha-clip
// threshold and subtract flag of the governing mask become part of the
// material variant key and are bound on the variant.
func WithPreview(on bool) Option {
	return func(s *Settings) {
		s.preview = on
	}
}

// SoftMaskingEnabled reports whether soft masking is globally enabled.
func (s *Settings) SoftMaskingEnabled() bool { return s.enabled }

// SetSoftMaskingEnabled turns soft masking on or off globally.
func (s *Settings) SetSoftMaskingEnabled(on bool) { s.enabled = on }

// StereoEnabled reports whether stereo rendering is enabled.
func (s *Settings) StereoEnabled() bool { return s.stereo }

// SetStereoEnabled enables or disables stereo rendering.
func (s *Settings) SetStereoEnabled(on bool) { s.stereo = on }

// StencilOutsideScreen reports whether stencil clipping is kept outside
// the screen bounds.
func (s *Settings) StencilOutsideScreen() bool { return s.stencilOutsideScreen }

// SetStencilOutsideScreen changes the stencil-outside-screen setting.
func (s *Settings) SetStencilOutsideScreen(on bool) { s.stencilOutsideScreen = on }

// Fallback returns the configured fallback behavior.
func (s *Settings) Fallback() Fallback { return s.fallback }

// Preview reports whether preview mode is active.
func (s *Settings) Preview() bool { return s.preview }

// SetPreview enables or disables preview mode.
func (s *Settings) SetPreview(on bool) { s.preview = on }
