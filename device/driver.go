// Package device provides the raw allocation and copy primitives for the
// non-pageable memory spaces. Whether a real accelerator backend is compiled
// in is decided at build time; builds without one get a stub driver that
// rejects every device primitive instead of degrading to pageable memory.
package device

import (
	"errors"
	"unsafe"
)

// Direction selects the copy primitive Memcpy uses.
type Direction int

const (
	// HostToDevice copies from host-accessible memory into device memory.
	HostToDevice Direction = iota
	// DeviceToHost copies from device memory into host-accessible memory.
	DeviceToHost
	// DeviceToDevice copies between two device-side allocations.
	DeviceToDevice
)

func (d Direction) String() string {
	switch d {
	case HostToDevice:
		return "HostToDevice"
	case DeviceToHost:
		return "DeviceToHost"
	case DeviceToDevice:
		return "DeviceToDevice"
	default:
		return "Unknown"
	}
}

// ErrNotAvailable is returned when a device primitive is requested from a
// build without device memory support.
var ErrNotAvailable = errors.New("device memory support is not available")

// A Driver serves the allocation, deallocation, and transfer primitives that
// pinned, device, and managed memory need. Pageable memory is owned by the
// Go runtime and never goes through a Driver.
type Driver interface {
	// Available reports whether the driver can serve allocations.
	Available() bool

	// Name returns a human-readable backend name.
	Name() string

	// AllocPinned allocates page-locked host memory.
	AllocPinned(numBytes int) (unsafe.Pointer, error)

	// AllocDevice allocates device-resident memory.
	AllocDevice(numBytes int) (unsafe.Pointer, error)

	// AllocManaged allocates memory that the runtime migrates between the
	// host and the device on demand.
	AllocManaged(numBytes int) (unsafe.Pointer, error)

	// FreePinned releases a block obtained from AllocPinned.
	FreePinned(ptr unsafe.Pointer) error

	// FreeDevice releases a block obtained from AllocDevice or AllocManaged.
	FreeDevice(ptr unsafe.Pointer) error

	// Memcpy copies numBytes between the two pointers. The direction picks
	// the transfer primitive; host-to-host copies never involve the driver.
	Memcpy(dst, src unsafe.Pointer, numBytes int, dir Direction) error
}

// Default returns the driver selected at build time.
func Default() Driver {
	return defaultDriver
}
