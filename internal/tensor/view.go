package tensor

import "fmt"

// View is a window over a RawTensor covering the time steps [Begin, End) of
// the leading axis. The node owns the view object; the underlying buffer
// belongs to the tensor. External operators receive a *View and may mutate
// the addressed elements in place.
type View struct {
	raw   *RawTensor
	begin int // first time step (inclusive)
	end   int // last time step (exclusive)
}

// NewView creates a view over time steps [begin, end) of raw's leading axis.
func NewView(raw *RawTensor, begin, end int) (*View, error) {
	steps := raw.Shape().TimeSteps()
	if begin < 0 || end > steps || begin >= end {
		return nil, fmt.Errorf("view range [%d, %d) out of bounds for %d time steps", begin, end, steps)
	}
	return &View{raw: raw, begin: begin, end: end}, nil
}

// Raw returns the viewed tensor.
func (v *View) Raw() *RawTensor {
	return v.raw
}

// Begin returns the first addressed time step.
func (v *View) Begin() int {
	return v.begin
}

// End returns one past the last addressed time step.
func (v *View) End() int {
	return v.end
}

// TimeSteps returns the number of addressed time steps.
func (v *View) TimeSteps() int {
	return v.end - v.begin
}

// Samples returns the number of parallel sequences addressed per time step.
func (v *View) Samples() int {
	return v.raw.Shape().Samples()
}

// SampleSize returns the number of elements per (time step, sample) pair.
func (v *View) SampleSize() int {
	return v.raw.Shape().SampleSize()
}

// NumElements returns the total number of addressed elements.
func (v *View) NumElements() int {
	return v.TimeSteps() * v.Samples() * v.SampleSize()
}

// DType returns the element type of the viewed tensor.
func (v *View) DType() DataType {
	return v.raw.DType()
}

// stepSize returns the number of elements per time step.
func (v *View) stepSize() int {
	return v.Samples() * v.SampleSize()
}

// offset returns the flat element index of the view's first element.
func (v *View) offset() int {
	return v.begin * v.stepSize()
}

// Float32 returns the addressed elements as a float32 slice.
func (v *View) Float32() []float32 {
	all := v.raw.AsFloat32()
	return all[v.offset() : v.offset()+v.NumElements()]
}

// Float64 returns the addressed elements as a float64 slice.
func (v *View) Float64() []float64 {
	all := v.raw.AsFloat64()
	return all[v.offset() : v.offset()+v.NumElements()]
}

// At returns the element at (t, n, d) within the view as a float64,
// converting from the underlying element type. t is relative to the view's
// begin, n indexes the sample, d the element within the sample.
func (v *View) At(t, n, d int) float64 {
	idx := v.offset() + t*v.stepSize() + n*v.SampleSize() + d
	switch v.raw.DType() {
	case Float32:
		return float64(v.raw.AsFloat32()[idx])
	case Float64:
		return v.raw.AsFloat64()[idx]
	default:
		panic("unknown data type")
	}
}

// Set stores value at (t, n, d) within the view, converting to the
// underlying element type.
func (v *View) Set(t, n, d int, value float64) {
	idx := v.offset() + t*v.stepSize() + n*v.SampleSize() + d
	switch v.raw.DType() {
	case Float32:
		v.raw.AsFloat32()[idx] = float32(value)
	case Float64:
		v.raw.AsFloat64()[idx] = value
	default:
		panic("unknown data type")
	}
}

// checkCompatible verifies that src addresses the same number of elements
// with the same dtype.
func (v *View) checkCompatible(src *View) error {
	if v.raw.DType() != src.raw.DType() {
		return fmt.Errorf("dtype mismatch: %s vs %s", v.raw.DType(), src.raw.DType())
	}
	if v.NumElements() != src.NumElements() {
		return fmt.Errorf("element count mismatch: %d vs %d", v.NumElements(), src.NumElements())
	}
	return nil
}

// CopyFrom assigns the elements of src into this view.
func (v *View) CopyFrom(src *View) error {
	if err := v.checkCompatible(src); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	switch v.raw.DType() {
	case Float32:
		copy(v.Float32(), src.Float32())
	case Float64:
		copy(v.Float64(), src.Float64())
	}
	return nil
}

// AddFrom accumulates the elements of src into this view.
func (v *View) AddFrom(src *View) error {
	if err := v.checkCompatible(src); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	switch v.raw.DType() {
	case Float32:
		dst, s := v.Float32(), src.Float32()
		for i := range dst {
			dst[i] += s[i]
		}
	case Float64:
		dst, s := v.Float64(), src.Float64()
		for i := range dst {
			dst[i] += s[i]
		}
	}
	return nil
}
