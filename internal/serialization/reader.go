package serialization

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Reader consumes checkpoint state from an underlying stream, validating
// the header on construction. The model version the file was written with
// is exposed so loaders can gate fields added in later layouts.
type Reader struct {
	r       io.Reader
	version uint32
}

// NewReader creates a Reader and validates the format header. A wrong
// magic or an out-of-range model version fails the whole load.
func NewReader(r io.Reader) (*Reader, error) {
	magic := make([]byte, len(MagicBytes))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("read magic bytes: %w", err)
	}
	if string(magic) != MagicBytes {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidMagic, magic)
	}
	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("read model version: %w", err)
	}
	if version < MinModelVersion || version > CurrentModelVersion {
		return nil, fmt.Errorf("%w: got %d, support %d..%d",
			ErrUnsupportedVersion, version, MinModelVersion, CurrentModelVersion)
	}
	return &Reader{r: r, version: version}, nil
}

// Version returns the model version the stream was written with.
func (sr *Reader) Version() uint32 {
	return sr.version
}

// ReadString reads a length-prefixed UTF-8 string field.
func (sr *Reader) ReadString(field string) (string, error) {
	var n uint32
	if err := binary.Read(sr.r, binary.LittleEndian, &n); err != nil {
		return "", &FieldError{Field: field, Op: "read", Err: err}
	}
	if n > MaxStringLen {
		return "", &FieldError{Field: field, Op: "read", Err: ErrStringTooLong}
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(sr.r, buf); err != nil {
		return "", &FieldError{Field: field, Op: "read", Err: err}
	}
	return string(buf), nil
}

// ReadInt reads a 64-bit signed integer field.
func (sr *Reader) ReadInt(field string) (int64, error) {
	var v int64
	if err := binary.Read(sr.r, binary.LittleEndian, &v); err != nil {
		return 0, &FieldError{Field: field, Op: "read", Err: err}
	}
	return v, nil
}

// ReadFloat reads a 64-bit float field.
func (sr *Reader) ReadFloat(field string) (float64, error) {
	var v float64
	if err := binary.Read(sr.r, binary.LittleEndian, &v); err != nil {
		return 0, &FieldError{Field: field, Op: "read", Err: err}
	}
	return v, nil
}

// ReadBool reads a boolean field.
func (sr *Reader) ReadBool(field string) (bool, error) {
	var b byte
	if err := binary.Read(sr.r, binary.LittleEndian, &b); err != nil {
		return false, &FieldError{Field: field, Op: "read", Err: err}
	}
	return b != 0, nil
}
