package wgpuback

import (
	"bytes"
	"testing"

	"github.com/gogpu/meshsync"
)

func TestFloatBytes(t *testing.T) {
	got := floatBytes([]float32{1, -2})
	want := []byte{
		0x00, 0x00, 0x80, 0x3F, // 1.0 little-endian
		0x00, 0x00, 0x00, 0xC0, // -2.0 little-endian
	}
	if !bytes.Equal(got, want) {
		t.Errorf("floatBytes() = % X, want % X", got, want)
	}
}

func TestUniformBytes(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		wantLen int
	}{
		{"mat4", meshsync.IdentityMat4(), 64},
		{"vec3", meshsync.Vec3{1, 2, 3}, 12},
		{"slice", []float32{1, 2}, 8},
		{"array2", [2]float32{1, 2}, 8},
		{"array3", [3]float32{1, 2, 3}, 12},
		{"array4", [4]float32{1, 2, 3, 4}, 16},
		{"scalar", float32(0.5), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uniformBytes(tt.in)
			if err != nil {
				t.Fatalf("uniformBytes() failed: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestUniformBytesRejects(t *testing.T) {
	if _, err := uniformBytes("not a uniform"); err == nil {
		t.Error("uniformBytes() should reject non-numeric payloads")
	}
	if _, err := uniformBytes([]float32{}); err == nil {
		t.Error("uniformBytes() should reject empty slices")
	}
}

func TestBackendUnboundBegin(t *testing.T) {
	var b Backend
	if err := b.Begin(); err == nil {
		t.Error("Begin() on an unbound backend should fail")
	}
}
