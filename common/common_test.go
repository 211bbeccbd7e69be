package common

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float32
		want      float32
	}{
		{"inside", 0.5, 0, 1, 0.5},
		{"below", -2, 0, 1, 0},
		{"above", 3, 0, 1, 1},
		{"negative range", 0, -1, -0.5, -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestSRGBToLinear(t *testing.T) {
	if got := SRGBToLinear(0); got != 0 {
		t.Errorf("SRGBToLinear(0) = %v, want 0", got)
	}
	if got := SRGBToLinear(1); math.Abs(float64(got-1)) > 1e-6 {
		t.Errorf("SRGBToLinear(1) = %v, want 1", got)
	}
	// Linear segment below the knee.
	if got, want := SRGBToLinear(0.04), float32(0.04/12.92); got != want {
		t.Errorf("SRGBToLinear(0.04) = %v, want %v", got, want)
	}
	// Mid grey lands near 0.214.
	if got := SRGBToLinear(0.5); math.Abs(float64(got)-0.2140) > 1e-3 {
		t.Errorf("SRGBToLinear(0.5) = %v, want ~0.214", got)
	}
}

func TestPutFloat32s(t *testing.T) {
	buf := make([]byte, 12)
	end := PutFloat32s(buf, 0, 1, -2, 0.5)
	if end != 12 {
		t.Fatalf("end offset = %d, want 12", end)
	}
	want := []float32{1, -2, 0.5}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != w {
			t.Errorf("word %d = %v, want %v", i, got, w)
		}
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "", "b", "c"); got != "b" {
		t.Errorf("Coalesce = %q, want %q", got, "b")
	}
	if got := Coalesce[float32](0, 0); got != 0 {
		t.Errorf("Coalesce of zeros = %v, want 0", got)
	}
}
