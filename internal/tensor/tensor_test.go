package tensor

import (
	"testing"
)

func assertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", msg, err)
	}
}

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Float32, 4},
		{Float64, 8},
	}
	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
	}
}

func TestShapeStrides(t *testing.T) {
	tests := []struct {
		shape   Shape
		strides []int
	}{
		{Shape{4}, []int{1}},
		{Shape{4, 2}, []int{2, 1}},
		{Shape{4, 2, 3}, []int{6, 3, 1}},
	}
	for _, tt := range tests {
		got := tt.shape.ComputeStrides()
		if len(got) != len(tt.strides) {
			t.Fatalf("strides %v, want %v", got, tt.strides)
		}
		for i := range got {
			if got[i] != tt.strides[i] {
				t.Errorf("shape %v: strides %v, want %v", tt.shape, got, tt.strides)
				break
			}
		}
	}
}

func TestShapeString(t *testing.T) {
	if got := (Shape{4, 2, 3}).String(); got != "[4 x 2 x 3]" {
		t.Errorf("String() = %q, want %q", got, "[4 x 2 x 3]")
	}
	if got := (Shape{}).String(); got != "[]" {
		t.Errorf("String() = %q, want %q", got, "[]")
	}
}

func TestShapeGeometry(t *testing.T) {
	s := Shape{4, 2, 3}
	if s.TimeSteps() != 4 || s.Samples() != 2 || s.SampleSize() != 3 {
		t.Errorf("geometry of %v = (%d, %d, %d), want (4, 2, 3)",
			s, s.TimeSteps(), s.Samples(), s.SampleSize())
	}
	v := Shape{5}
	if v.TimeSteps() != 5 || v.Samples() != 1 || v.SampleSize() != 1 {
		t.Errorf("geometry of %v = (%d, %d, %d), want (5, 1, 1)",
			v, v.TimeSteps(), v.Samples(), v.SampleSize())
	}
}

func TestFromSlice(t *testing.T) {
	raw, err := FromSlice(Shape{2, 1, 3}, []float32{1, 2, 3, 4, 5, 6})
	assertNoError(t, err, "FromSlice")
	data := raw.AsFloat32()
	for i, want := range []float32{1, 2, 3, 4, 5, 6} {
		if data[i] != want {
			t.Errorf("element %d = %v, want %v", i, data[i], want)
		}
	}

	if _, err := FromSlice(Shape{2, 2}, []float32{1}); err == nil {
		t.Error("expected error for mismatched value count")
	}
	if _, err := NewRaw(Shape{0}, Float32); err == nil {
		t.Error("expected error for zero dimension")
	}
}

func TestViewSlicing(t *testing.T) {
	// [T=3, N=2, D=2], values 0..11
	values := make([]float64, 12)
	for i := range values {
		values[i] = float64(i)
	}
	raw, err := FromSlice(Shape{3, 2, 2}, values)
	assertNoError(t, err, "FromSlice")

	v, err := NewView(raw, 1, 2)
	assertNoError(t, err, "NewView")
	if v.TimeSteps() != 1 || v.NumElements() != 4 {
		t.Fatalf("view covers %d steps, %d elements; want 1, 4", v.TimeSteps(), v.NumElements())
	}
	// time step 1 holds elements 4..7
	got := v.Float64()
	for i, want := range []float64{4, 5, 6, 7} {
		if got[i] != want {
			t.Errorf("view element %d = %v, want %v", i, got[i], want)
		}
	}
	if v.At(0, 1, 0) != 6 {
		t.Errorf("At(0,1,0) = %v, want 6", v.At(0, 1, 0))
	}

	if _, err := NewView(raw, 2, 2); err == nil {
		t.Error("expected error for empty range")
	}
	if _, err := NewView(raw, 0, 4); err == nil {
		t.Error("expected error for out-of-range view")
	}
}

func TestViewCopyAdd(t *testing.T) {
	src, err := FromSlice(Shape{2, 1, 2}, []float32{1, 2, 3, 4})
	assertNoError(t, err, "FromSlice src")
	dst, err := NewRaw(Shape{2, 1, 2}, Float32)
	assertNoError(t, err, "NewRaw dst")

	sv, _ := NewView(src, 0, 2)
	dv, _ := NewView(dst, 0, 2)

	assertNoError(t, dv.CopyFrom(sv), "CopyFrom")
	assertNoError(t, dv.AddFrom(sv), "AddFrom")
	got := dst.AsFloat32()
	for i, want := range []float32{2, 4, 6, 8} {
		if got[i] != want {
			t.Errorf("element %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestViewCopyMismatch(t *testing.T) {
	a, _ := NewRaw(Shape{2, 1, 2}, Float32)
	b, _ := NewRaw(Shape{2, 1, 3}, Float32)
	c, _ := NewRaw(Shape{2, 1, 2}, Float64)

	av, _ := NewView(a, 0, 2)
	bv, _ := NewView(b, 0, 2)
	cv, _ := NewView(c, 0, 2)

	if err := av.CopyFrom(bv); err == nil {
		t.Error("expected error for element count mismatch")
	}
	if err := av.AddFrom(cv); err == nil {
		t.Error("expected error for dtype mismatch")
	}
}

func TestViewSet(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2, 1}, Float32)
	v, _ := NewView(raw, 0, 2)
	v.Set(1, 1, 0, 7.5)
	if got := v.At(1, 1, 0); got != 7.5 {
		t.Errorf("At after Set = %v, want 7.5", got)
	}
	if raw.AsFloat32()[3] != 7.5 {
		t.Errorf("backing buffer element 3 = %v, want 7.5", raw.AsFloat32()[3])
	}
}

func TestClone(t *testing.T) {
	raw, _ := FromSlice(Shape{2}, []float32{1, 2})
	clone := raw.Clone()
	clone.AsFloat32()[0] = 9
	if raw.AsFloat32()[0] != 1 {
		t.Error("clone shares storage with original")
	}
}
