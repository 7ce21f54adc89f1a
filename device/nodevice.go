//go:build !cuda

package device

import "unsafe"

var defaultDriver Driver = stubDriver{}

// stubDriver serves builds compiled without an accelerator backend. Every
// request for a device primitive fails outright so that no caller can end up
// holding a silently downgraded allocation.
type stubDriver struct{}

func (stubDriver) Available() bool { return false }

func (stubDriver) Name() string { return "none" }

func (stubDriver) AllocPinned(numBytes int) (unsafe.Pointer, error) {
	return nil, ErrNotAvailable
}

func (stubDriver) AllocDevice(numBytes int) (unsafe.Pointer, error) {
	return nil, ErrNotAvailable
}

func (stubDriver) AllocManaged(numBytes int) (unsafe.Pointer, error) {
	return nil, ErrNotAvailable
}

func (stubDriver) FreePinned(ptr unsafe.Pointer) error {
	return ErrNotAvailable
}

func (stubDriver) FreeDevice(ptr unsafe.Pointer) error {
	return ErrNotAvailable
}

func (stubDriver) Memcpy(dst, src unsafe.Pointer, numBytes int, dir Direction) error {
	return ErrNotAvailable
}
