package serialization

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer emits checkpoint state to an underlying stream. Each field write
// reports failures with the field's name.
type Writer struct {
	w io.Writer
}

// NewWriter creates a Writer and emits the format header (magic bytes and
// the current model version).
func NewWriter(w io.Writer) (*Writer, error) {
	sw := &Writer{w: w}
	if _, err := io.WriteString(w, MagicBytes); err != nil {
		return nil, fmt.Errorf("write magic bytes: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(CurrentModelVersion)); err != nil {
		return nil, fmt.Errorf("write model version: %w", err)
	}
	return sw, nil
}

// WriteString writes a length-prefixed UTF-8 string field.
func (sw *Writer) WriteString(field, value string) error {
	if err := binary.Write(sw.w, binary.LittleEndian, uint32(len(value))); err != nil {
		return &FieldError{Field: field, Op: "write", Err: err}
	}
	if _, err := io.WriteString(sw.w, value); err != nil {
		return &FieldError{Field: field, Op: "write", Err: err}
	}
	return nil
}

// WriteInt writes a 64-bit signed integer field.
func (sw *Writer) WriteInt(field string, value int64) error {
	if err := binary.Write(sw.w, binary.LittleEndian, value); err != nil {
		return &FieldError{Field: field, Op: "write", Err: err}
	}
	return nil
}

// WriteFloat writes a 64-bit float field.
func (sw *Writer) WriteFloat(field string, value float64) error {
	if err := binary.Write(sw.w, binary.LittleEndian, value); err != nil {
		return &FieldError{Field: field, Op: "write", Err: err}
	}
	return nil
}

// WriteBool writes a boolean field as a single byte.
func (sw *Writer) WriteBool(field string, value bool) error {
	var b byte
	if value {
		b = 1
	}
	if err := binary.Write(sw.w, binary.LittleEndian, b); err != nil {
		return &FieldError{Field: field, Op: "write", Err: err}
	}
	return nil
}
