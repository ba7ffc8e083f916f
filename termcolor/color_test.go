package termcolor

import "testing"

func TestIsDefault(t *testing.T) {
	if !DefaultForeground.IsDefault() {
		t.Errorf("DefaultForeground.IsDefault() = false")
	}
	if RGB(1, 2, 3).IsDefault() {
		t.Errorf("RGB(...).IsDefault() = true")
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := RGB(0, 0, 0)
	b := RGB(255, 255, 255)

	got := a.Blend(b, 0)
	if got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("Blend(t=0) = %+v, want a", got)
	}

	got = a.Blend(b, 1)
	if got.R != 255 || got.G != 255 || got.B != 255 {
		t.Errorf("Blend(t=1) = %+v, want b", got)
	}
}

func TestBlendIsTrueColor(t *testing.T) {
	got := DefaultForeground.Blend(DefaultBackground, 0.5)
	if got.Kind != KindTrueColor {
		t.Errorf("Blend result Kind = %v, want KindTrueColor", got.Kind)
	}
}
