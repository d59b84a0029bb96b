package softmask

import "testing"

func TestNewSettingsDefaults(t *testing.T) {
	s := NewSettings()
	if !s.SoftMaskingEnabled() {
		t.Error("soft masking should be enabled by default")
	}
	if s.StereoEnabled() || s.StencilOutsideScreen() || s.Preview() {
		t.Error("stereo, stencil-outside-screen and preview should be off by default")
	}
	if s.Fallback() != FallbackDefault {
		t.Errorf("Fallback() = %v, want Default", s.Fallback())
	}
}

func TestSettingsOptions(t *testing.T) {
	s := NewSettings(
		WithSoftMaskingEnabled(false),
		WithStereo(true),
		WithStencilOutsideScreen(true),
		WithFallback(FallbackNone),
		WithPreview(true),
	)
	if s.SoftMaskingEnabled() {
		t.Error("WithSoftMaskingEnabled(false) ignored")
	}
	if !s.StereoEnabled() {
		t.Error("WithStereo(true) ignored")
	}
	if !s.StencilOutsideScreen() {
		t.Error("WithStencilOutsideScreen(true) ignored")
	}
	if s.Fallback() != FallbackNone {
		t.Errorf("Fallback() = %v, want None", s.Fallback())
	}
	if !s.Preview() {
		t.Error("WithPreview(true) ignored")
	}
}

func TestSettingsSetters(t *testing.T) {
	s := NewSettings()
	s.SetSoftMaskingEnabled(false)
	s.SetStereoEnabled(true)
	s.SetStencilOutsideScreen(true)
	s.SetPreview(true)
	if s.SoftMaskingEnabled() || !s.StereoEnabled() || !s.StencilOutsideScreen() || !s.Preview() {
		t.Errorf("setters not applied: %+v", *s)
	}
}

func TestFallbackString(t *testing.T) {
	tests := []struct {
		f    Fallback
		want string
	}{
		{FallbackDefault, "Default"},
		{FallbackNone, "None"},
		{Fallback(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("Fallback(%d).String() = %q, want %q", tt.f, got, tt.want)
		}
	}
}
