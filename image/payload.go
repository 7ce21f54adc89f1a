// Package image holds the pixel-payload contract consumed from image file
// readers and writers: an element kind out of a small fixed set of numeric
// kinds, a flat pixel array, and two dimension extents. File I/O itself
// lives with the collaborator; this package only owns the in-memory payload.
package image

import (
	"errors"
	"fmt"

	"github.com/sarchlab/hmem/buf"
)

// Kind tags the numeric element type of a pixel payload. The set mirrors
// the bit-depth codes that astronomical image files carry.
type Kind int

const (
	// Uint8 is an 8-bit unsigned pixel (bit depth 8).
	Uint8 Kind = iota
	// Int32 is a 32-bit signed integer pixel (bit depth 32).
	Int32
	// Float32 is a 32-bit floating point pixel (bit depth -32).
	Float32
	// Float64 is a 64-bit floating point pixel (bit depth -64).
	Float64
)

func (k Kind) String() string {
	switch k {
	case Uint8:
		return "Uint8"
	case Int32:
		return "Int32"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	default:
		return "Unknown"
	}
}

// ErrUnsupportedKind marks a pixel element-type tag outside the recognized
// set. It is raised at the point an image is turned into a payload.
var ErrUnsupportedKind = errors.New("unsupported pixel kind")

func (k Kind) valid() bool {
	return k == Uint8 || k == Int32 || k == Float32 || k == Float64
}

// ElemSize returns the pixel size in bytes.
func (k Kind) ElemSize() int {
	switch k {
	case Uint8:
		return 1
	case Int32, Float32:
		return 4
	case Float64:
		return 8
	default:
		return 0
	}
}

// BitDepth returns the bit-depth code for the kind, negative for the
// floating point kinds as image headers record them.
func (k Kind) BitDepth() int {
	switch k {
	case Uint8:
		return 8
	case Int32:
		return 32
	case Float32:
		return -32
	case Float64:
		return -64
	default:
		return 0
	}
}

// KindFromBitDepth maps a bit-depth code back to a Kind. Codes outside the
// recognized set fail with ErrUnsupportedKind.
func KindFromBitDepth(bitDepth int) (Kind, error) {
	switch bitDepth {
	case 8:
		return Uint8, nil
	case 32:
		return Int32, nil
	case -32:
		return Float32, nil
	case -64:
		return Float64, nil
	default:
		return 0, fmt.Errorf("bit depth %d: %w", bitDepth, ErrUnsupportedKind)
	}
}

// A Payload is a flat 2-D pixel array: an element kind, the raw pixel bytes
// held in a pageable buffer, and two dimension extents.
type Payload struct {
	kind Kind
	xDim int
	yDim int
	pix  *buf.Buffer[byte]
}

// NewPayload adopts pixel into a payload, taking ownership of the slice.
// The kind must belong to the recognized set and the slice must hold
// exactly xDim*yDim pixels of that kind.
func NewPayload(kind Kind, pixel []byte, xDim, yDim int) (*Payload, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("pixel kind %d: %w", kind, ErrUnsupportedKind)
	}

	if xDim <= 0 || yDim <= 0 {
		return nil, fmt.Errorf(
			"payload: dimensions must be positive, got %dx%d: %w",
			xDim, yDim, buf.ErrInvalidArgument)
	}

	want := xDim * yDim * kind.ElemSize()
	if len(pixel) != want {
		return nil, fmt.Errorf(
			"payload: %dx%d %s needs %d bytes, got %d: %w",
			xDim, yDim, kind, want, len(pixel), buf.ErrInvalidArgument)
	}

	b, err := buf.Adopt(pixel)
	if err != nil {
		return nil, err
	}

	return &Payload{kind: kind, xDim: xDim, yDim: yDim, pix: b}, nil
}

// Kind returns the pixel element kind.
func (p *Payload) Kind() Kind {
	return p.kind
}

// Dims returns the two dimension extents.
func (p *Payload) Dims() (xDim, yDim int) {
	return p.xDim, p.yDim
}

// NumPixels returns the flat pixel count.
func (p *Payload) NumPixels() int {
	return p.xDim * p.yDim
}

// Data returns the flat pixel bytes without copying. The payload keeps
// ownership.
func (p *Payload) Data() []byte {
	return p.pix.Slice()
}

// Buffer exposes the pageable buffer holding the pixels, so the payload can
// be handed to buffer-level tooling such as transfers or dumps.
func (p *Payload) Buffer() *buf.Buffer[byte] {
	return p.pix
}
