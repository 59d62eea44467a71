package utils

import "testing"

func TestPixelRatioFromGeometry(t *testing.T) {
	tests := []struct {
		name     string
		px, mm   float64
		want     float64
		wantsErr bool
	}{
		{"96 dpi", 1920, 508, 1, false},
		{"192 dpi", 3840, 508, 2, false},
		{"low dpi clamps to one", 800, 508, 1, false},
		{"144 dpi", 2880, 508, 1.5, false},
		{"no physical size", 1920, 0, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PixelRatioFromGeometry(tt.px, tt.mm)
			if (err != nil) != tt.wantsErr {
				t.Fatalf("err = %v, wantsErr %v", err, tt.wantsErr)
			}
			if got != tt.want {
				t.Errorf("ratio = %v, want %v", got, tt.want)
			}
		})
	}
}
