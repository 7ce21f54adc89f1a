// Package buf implements a heterogeneous memory buffer: a single handle type
// that owns a contiguous array of elements in one of four memory spaces and
// knows how to move its contents between them, duplicate itself without
// violating single ownership, and persist itself as a flat binary dump.
package buf

import (
	"fmt"
	"log"
	"unsafe"

	"github.com/sarchlab/hmem/device"
)

// Element enumerates the fixed-size numeric types a Buffer can hold.
type Element interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 |
		~int64 | ~uint64 | ~float32 | ~float64
}

// A Buffer owns zero or one allocation of Len elements of type T, tagged
// with the memory space the allocation lives in. A buffer has exactly one
// owner at a time: Take transfers ownership and nulls the source, Clone
// creates an independent allocation. The type provides no internal locking;
// concurrent use of one buffer needs external synchronization.
type Buffer[T Element] struct {
	HookableBase

	drv   device.Driver
	host  []T            // pageable backing; nil for driver-owned blocks
	ptr   unsafe.Pointer // non-nil iff an allocation is owned
	n     int
	space Space
}

// New creates a null buffer that can be allocated later. It uses the driver
// selected at build time for the non-pageable spaces.
func New[T Element]() *Buffer[T] {
	return &Buffer[T]{}
}

// NewWithDriver creates a null buffer that serves non-pageable requests
// through drv instead of the build-selected driver.
func NewWithDriver[T Element](drv device.Driver) *Buffer[T] {
	return &Buffer[T]{drv: drv}
}

// Alloc creates a buffer and immediately allocates n elements in the given
// space.
func Alloc[T Element](n int, space Space) (*Buffer[T], error) {
	b := New[T]()
	if err := b.Allocate(n, space); err != nil {
		return nil, err
	}

	return b, nil
}

// Adopt takes ownership of a host slice as a pageable buffer. The caller
// must not keep using the slice through any other reference afterward.
func Adopt[T Element](s []T) (*Buffer[T], error) {
	if len(s) == 0 {
		return nil, fmt.Errorf(
			"adopt: element count must be positive: %w", ErrInvalidArgument)
	}

	return &Buffer[T]{
		host:  s,
		ptr:   unsafe.Pointer(&s[0]),
		n:     len(s),
		space: Pageable,
	}, nil
}

// AdoptRaw takes ownership of a pre-existing raw allocation of n elements in
// the given space. A nil drv means the build-selected driver. This is an
// ownership transfer, not a copy: the caller must not touch the original
// pointer through any other channel afterward.
func AdoptRaw[T Element](
	ptr unsafe.Pointer,
	n int,
	space Space,
	drv device.Driver,
) (*Buffer[T], error) {
	if drv == nil {
		drv = device.Default()
	}

	if space != Pageable && !drv.Available() {
		return nil, fmt.Errorf(
			"adopt: cannot use %s memory without device support: %w",
			space, ErrInvalidArgument)
	}

	if n <= 0 {
		return nil, fmt.Errorf(
			"adopt: element count must be positive, got %d: %w",
			n, ErrInvalidArgument)
	}

	if ptr == nil {
		return nil, fmt.Errorf(
			"adopt: won't accept a nil pointer: %w", ErrInvalidArgument)
	}

	b := &Buffer[T]{drv: drv, ptr: ptr, n: n, space: space}
	if space == Pageable {
		b.host = unsafe.Slice((*T)(ptr), n)
	}

	return b, nil
}

func (b *Buffer[T]) driver() device.Driver {
	if b.drv == nil {
		return device.Default()
	}

	return b.drv
}

func elemSize[T Element]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Allocate requests ownership of storage for n elements in the given space.
// An existing allocation is released through its own deallocator once the
// new one is confirmed, so a failed call leaves the buffer exactly as it
// was. Zero counts and, in builds without device support, non-pageable
// spaces fail with ErrInvalidArgument.
func (b *Buffer[T]) Allocate(n int, space Space) error {
	if n <= 0 {
		return fmt.Errorf(
			"allocate: element count must be positive, got %d: %w",
			n, ErrInvalidArgument)
	}

	drv := b.driver()
	if space != Pageable && !drv.Available() {
		return fmt.Errorf(
			"allocate: cannot use %s memory without device support: %w",
			space, ErrInvalidArgument)
	}

	host, ptr, err := acquire[T](drv, n, space)
	if err != nil {
		return err
	}

	b.release()
	b.host, b.ptr, b.n, b.space = host, ptr, n, space

	if b.NumHooks() > 0 {
		b.InvokeHook(HookCtx{
			Domain: b,
			Pos:    HookPosAllocate,
			Detail: AllocDetail{Space: space, Count: n, NumBytes: b.NumBytes()},
		})
	}

	return nil
}

// acquire obtains a fresh block for n elements in the given space without
// touching any buffer state.
func acquire[T Element](
	drv device.Driver,
	n int,
	space Space,
) ([]T, unsafe.Pointer, error) {
	if space == Pageable {
		host := make([]T, n)
		return host, unsafe.Pointer(&host[0]), nil
	}

	numBytes := n * elemSize[T]()

	var ptr unsafe.Pointer
	var err error
	switch space {
	case Pinned:
		ptr, err = drv.AllocPinned(numBytes)
	case Device:
		ptr, err = drv.AllocDevice(numBytes)
	case Managed:
		ptr, err = drv.AllocManaged(numBytes)
	default:
		err = fmt.Errorf("allocate: unknown space %d: %w",
			space, ErrInvalidArgument)
	}

	if err != nil {
		return nil, nil, err
	}

	return nil, ptr, nil
}

// discard returns a block obtained from acquire that never made it into a
// buffer. Errors on this unwind path are ignored; the prior buffer state is
// what matters.
func discard[T Element](drv device.Driver, ptr unsafe.Pointer, space Space) {
	switch space {
	case Pinned:
		_ = drv.FreePinned(ptr)
	case Device, Managed:
		_ = drv.FreeDevice(ptr)
	}
}

// release hands the current allocation back to the deallocator matching its
// space. The dispatch is exhaustive over Space so that adding a space is a
// compile-visible change. Counters are left to the caller.
func (b *Buffer[T]) release() {
	if b.ptr == nil {
		return
	}

	switch b.space {
	case Pageable:
		// The Go runtime reclaims pageable blocks once the last
		// reference drops.
	case Pinned:
		mustFree(b.driver().FreePinned(b.ptr))
	case Device, Managed:
		mustFree(b.driver().FreeDevice(b.ptr))
	default:
		log.Panicf("buffer owns an allocation in unknown space %d", b.space)
	}

	b.host = nil
	b.ptr = nil
}

func mustFree(err error) {
	if err != nil {
		log.Panic(err)
	}
}

// Free releases the owned allocation, if any, through the deallocator
// matching the buffer's space and returns the buffer to the null state.
// Freeing an unallocated buffer is a no-op.
func (b *Buffer[T]) Free() {
	if b.ptr == nil {
		return
	}

	if b.NumHooks() > 0 {
		b.InvokeHook(HookCtx{
			Domain: b,
			Pos:    HookPosFree,
			Detail: AllocDetail{
				Space:    b.space,
				Count:    b.n,
				NumBytes: b.NumBytes(),
			},
		})
	}

	b.release()
	b.n = 0
}

// Take moves the allocation out of src: b's previous contents are released,
// src's state transfers to b, and src is left in the null state, safe to
// free or reallocate. Taking from itself changes nothing.
func (b *Buffer[T]) Take(src *Buffer[T]) {
	if b == src {
		return
	}

	b.Free()

	b.drv = src.drv
	b.host, b.ptr, b.n, b.space = src.host, src.ptr, src.n, src.space
	src.host, src.ptr, src.n = nil, nil, 0
}

// Clone produces an independent allocation in the same space as b,
// duplicated with the copy primitive that space supports: a plain memory
// copy for the host-accessible spaces, a device-to-device copy for device
// memory. Cloning a null buffer yields a null buffer.
func (b *Buffer[T]) Clone() (*Buffer[T], error) {
	c := &Buffer[T]{drv: b.drv}
	if b.ptr == nil {
		return c, nil
	}

	drv := b.driver()

	host, ptr, err := acquire[T](drv, b.n, b.space)
	if err != nil {
		return nil, err
	}

	if b.space == Device {
		err = drv.Memcpy(ptr, b.ptr, b.NumBytes(), device.DeviceToDevice)
		if err != nil {
			discard[T](drv, ptr, b.space)
			return nil, err
		}
	} else {
		copy(unsafe.Slice((*T)(ptr), b.n), b.Slice())
	}

	c.host, c.ptr, c.n, c.space = host, ptr, b.n, b.space

	return c, nil
}

// ToHost moves a device-resident buffer into host memory of the requested
// kind, which must be Pageable or Pinned. Buffers that are already
// host-accessible keep their space unchanged. Unallocated buffers are left
// alone. The device block is released once the copy lands.
func (b *Buffer[T]) ToHost(target Space) error {
	if target != Pageable && target != Pinned {
		return fmt.Errorf(
			"to host: target space must be Pageable or Pinned, got %s: %w",
			target, ErrInvalidArgument)
	}

	if b.ptr == nil || b.space != Device {
		return nil
	}

	drv := b.driver()

	host, ptr, err := acquire[T](drv, b.n, target)
	if err != nil {
		return err
	}

	if err := drv.Memcpy(ptr, b.ptr, b.NumBytes(), device.DeviceToHost); err != nil {
		discard[T](drv, ptr, target)
		return err
	}

	from := b.space
	b.release()
	b.host, b.ptr, b.space = host, ptr, target

	if b.NumHooks() > 0 {
		b.InvokeHook(HookCtx{
			Domain: b,
			Pos:    HookPosTransfer,
			Detail: TransferDetail{From: from, To: target, NumBytes: b.NumBytes()},
		})
	}

	return nil
}

// ToDevice moves the buffer into device memory: a host-to-device copy for
// pageable and pinned sources, a device-internal copy for managed blocks.
// The prior allocation is released through the deallocator of its prior
// space. Device-resident and unallocated buffers are left alone. In a build
// without device support this is a no-op, never an error, because there is
// only one space to live in.
func (b *Buffer[T]) ToDevice() error {
	if b.ptr == nil || b.space == Device {
		return nil
	}

	drv := b.driver()
	if !drv.Available() {
		return nil
	}

	ptr, err := drv.AllocDevice(b.NumBytes())
	if err != nil {
		return err
	}

	dir := device.HostToDevice
	if b.space == Managed {
		dir = device.DeviceToDevice
	}

	if err := drv.Memcpy(ptr, b.ptr, b.NumBytes(), dir); err != nil {
		discard[T](drv, ptr, Device)
		return err
	}

	from := b.space
	b.release()
	b.ptr = ptr
	b.space = Device

	if b.NumHooks() > 0 {
		b.InvokeHook(HookCtx{
			Domain: b,
			Pos:    HookPosTransfer,
			Detail: TransferDetail{From: from, To: Device, NumBytes: b.NumBytes()},
		})
	}

	return nil
}

// Raw returns the owned pointer as-is: no space check, no copy.
// Dereferencing a device-resident pointer from host code is illegal and the
// buffer does not police it.
func (b *Buffer[T]) Raw() unsafe.Pointer {
	return b.ptr
}

// Slice views the allocation as a []T with no copy. The view is only
// meaningful for host-accessible spaces. A null buffer yields a nil slice.
func (b *Buffer[T]) Slice() []T {
	if b.ptr == nil {
		return nil
	}

	return unsafe.Slice((*T)(b.ptr), b.n)
}

// Len returns the number of elements currently owned.
func (b *Buffer[T]) Len() int {
	return b.n
}

// NumBytes returns the total allocation size in bytes.
func (b *Buffer[T]) NumBytes() int {
	return b.n * elemSize[T]()
}

// Space returns the memory space the allocation lives in. It is only
// meaningful while the buffer is allocated.
func (b *Buffer[T]) Space() Space {
	return b.space
}

// OnDevice reports whether the memory resides on the device.
func (b *Buffer[T]) OnDevice() bool {
	return b.ptr != nil && b.space == Device
}

// Pinned reports whether the memory is allocated as pinned.
func (b *Buffer[T]) Pinned() bool {
	return b.ptr != nil && b.space == Pinned
}

// Allocated reports whether the buffer currently owns an allocation. It
// serves as the "has this been allocated yet" test.
func (b *Buffer[T]) Allocated() bool {
	return b.ptr != nil
}
