package buf

import (
	"fmt"
	"os"
	"unsafe"
)

// Dump writes the buffer contents to path as Len*sizeof(T) raw bytes in
// native byte order, truncating any existing file. The format is the
// low-level interchange contract: no header, no element-type tag, no length
// prefix, and no cross-platform byte-order guarantee. A device-resident
// buffer is first pulled back into pageable host memory, mutating the
// receiver's space.
func (b *Buffer[T]) Dump(path string) error {
	if err := b.ToHost(Pageable); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	var data []byte
	if b.ptr != nil {
		data = unsafe.Slice((*byte)(b.ptr), b.NumBytes())
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("dump: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	return nil
}

// Load reads a raw dump back into a fresh pageable buffer. The element count
// is the file size divided by the element size; remainder bytes beyond a
// whole number of elements are ignored. Nothing in the file identifies the
// element type, so the caller must load with the type that was dumped.
func Load[T Element](path string) (*Buffer[T], error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	n := len(raw) / elemSize[T]()
	if n == 0 {
		return nil, fmt.Errorf(
			"load: %s holds no complete element: %w", path, ErrInvalidArgument)
	}

	b := New[T]()
	if err := b.Allocate(n, Pageable); err != nil {
		return nil, err
	}

	copy(unsafe.Slice((*byte)(b.ptr), b.NumBytes()), raw)

	return b, nil
}
