package device

import (
	"fmt"
	"sync"
	"unsafe"
)

type blockClass int

const (
	pinnedBlock blockClass = iota
	deviceBlock
	managedBlock
)

func (c blockClass) String() string {
	switch c {
	case pinnedBlock:
		return "pinned"
	case deviceBlock:
		return "device"
	case managedBlock:
		return "managed"
	default:
		return "unknown"
	}
}

type emuBlock struct {
	data  []byte
	class blockClass
}

// An emuDriver backs every memory space with ordinary host memory while
// still enforcing the driver contract: blocks are tagged with the allocator
// that produced them and a mismatched free is an error. It lets transfer and
// copy paths run on machines without an accelerator.
type emuDriver struct {
	mu     sync.Mutex
	blocks map[unsafe.Pointer]*emuBlock
}

// Emulator creates a driver that emulates device memory in host memory.
// It is only ever used when explicitly injected; Default never returns it.
func Emulator() Driver {
	return &emuDriver{blocks: make(map[unsafe.Pointer]*emuBlock)}
}

func (d *emuDriver) Available() bool { return true }

func (d *emuDriver) Name() string { return "emulator" }

func (d *emuDriver) AllocPinned(numBytes int) (unsafe.Pointer, error) {
	return d.alloc(numBytes, pinnedBlock)
}

func (d *emuDriver) AllocDevice(numBytes int) (unsafe.Pointer, error) {
	return d.alloc(numBytes, deviceBlock)
}

func (d *emuDriver) AllocManaged(numBytes int) (unsafe.Pointer, error) {
	return d.alloc(numBytes, managedBlock)
}

func (d *emuDriver) alloc(numBytes int, class blockClass) (unsafe.Pointer, error) {
	if numBytes <= 0 {
		return nil, fmt.Errorf("emulator: allocation size must be positive, got %d", numBytes)
	}

	data := make([]byte, numBytes)
	ptr := unsafe.Pointer(&data[0])

	d.mu.Lock()
	d.blocks[ptr] = &emuBlock{data: data, class: class}
	d.mu.Unlock()

	return ptr, nil
}

func (d *emuDriver) FreePinned(ptr unsafe.Pointer) error {
	return d.free(ptr, pinnedBlock, pinnedBlock)
}

func (d *emuDriver) FreeDevice(ptr unsafe.Pointer) error {
	return d.free(ptr, deviceBlock, managedBlock)
}

func (d *emuDriver) free(ptr unsafe.Pointer, classA, classB blockClass) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	block, ok := d.blocks[ptr]
	if !ok {
		return fmt.Errorf("emulator: free of unknown pointer %p", ptr)
	}

	if block.class != classA && block.class != classB {
		return fmt.Errorf("emulator: %s block freed with the %s deallocator",
			block.class, classA)
	}

	delete(d.blocks, ptr)

	return nil
}

func (d *emuDriver) Memcpy(
	dst, src unsafe.Pointer,
	numBytes int,
	dir Direction,
) error {
	if dst == nil || src == nil {
		return fmt.Errorf("emulator: memcpy with nil pointer")
	}

	copy(
		unsafe.Slice((*byte)(dst), numBytes),
		unsafe.Slice((*byte)(src), numBytes),
	)

	return nil
}

// NumLiveBlocks returns the number of blocks allocated and not yet freed.
func (d *emuDriver) NumLiveBlocks() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.blocks)
}
