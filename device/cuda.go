//go:build cuda

package device

/*
#cgo CFLAGS: -I/opt/cuda/include -I/usr/local/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -L/usr/local/cuda/lib64 -lcudart

#include <cuda_runtime.h>

static const char* hmemCudaErrString(cudaError_t err) {
	return cudaGetErrorString(err);
}
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"
)

// Creating more than one CUDA context per process wastes device memory, so
// the driver is a singleton created on first use.
var (
	cudaOnce     sync.Once
	cudaInstance *cudaDriver
	cudaInitErr  error
)

var defaultDriver Driver = lazyCUDA{}

// lazyCUDA defers CUDA initialization until the first primitive is needed,
// so that importing the package on a machine without a GPU stays harmless.
type lazyCUDA struct{}

func (lazyCUDA) driver() (*cudaDriver, error) {
	cudaOnce.Do(func() {
		cudaInstance, cudaInitErr = initCUDA()
	})

	return cudaInstance, cudaInitErr
}

func (l lazyCUDA) Available() bool {
	d, err := l.driver()
	return err == nil && d != nil
}

func (l lazyCUDA) Name() string {
	d, err := l.driver()
	if err != nil {
		return "cuda (unavailable)"
	}

	return d.name
}

func (l lazyCUDA) AllocPinned(numBytes int) (unsafe.Pointer, error) {
	d, err := l.driver()
	if err != nil {
		return nil, err
	}

	return d.allocPinned(numBytes)
}

func (l lazyCUDA) AllocDevice(numBytes int) (unsafe.Pointer, error) {
	d, err := l.driver()
	if err != nil {
		return nil, err
	}

	return d.allocDevice(numBytes)
}

func (l lazyCUDA) AllocManaged(numBytes int) (unsafe.Pointer, error) {
	d, err := l.driver()
	if err != nil {
		return nil, err
	}

	return d.allocManaged(numBytes)
}

func (l lazyCUDA) FreePinned(ptr unsafe.Pointer) error {
	d, err := l.driver()
	if err != nil {
		return err
	}

	return d.check(C.cudaFreeHost(ptr), "cudaFreeHost")
}

func (l lazyCUDA) FreeDevice(ptr unsafe.Pointer) error {
	d, err := l.driver()
	if err != nil {
		return err
	}

	return d.check(C.cudaFree(ptr), "cudaFree")
}

func (l lazyCUDA) Memcpy(
	dst, src unsafe.Pointer,
	numBytes int,
	dir Direction,
) error {
	d, err := l.driver()
	if err != nil {
		return err
	}

	return d.memcpy(dst, src, numBytes, dir)
}

type cudaDriver struct {
	deviceID int
	name     string
}

func initCUDA() (*cudaDriver, error) {
	var count C.int
	if rc := C.cudaGetDeviceCount(&count); rc != C.cudaSuccess {
		return nil, fmt.Errorf("cuda not available: %s",
			C.GoString(C.hmemCudaErrString(rc)))
	}

	if count == 0 {
		return nil, fmt.Errorf("no cuda device found")
	}

	d := &cudaDriver{deviceID: 0}
	if rc := C.cudaSetDevice(C.int(d.deviceID)); rc != C.cudaSuccess {
		return nil, fmt.Errorf("cudaSetDevice: %s",
			C.GoString(C.hmemCudaErrString(rc)))
	}

	var props C.struct_cudaDeviceProp
	if rc := C.cudaGetDeviceProperties(&props, C.int(d.deviceID)); rc != C.cudaSuccess {
		return nil, fmt.Errorf("cudaGetDeviceProperties: %s",
			C.GoString(C.hmemCudaErrString(rc)))
	}

	d.name = C.GoString(&props.name[0])

	return d, nil
}

func (d *cudaDriver) check(rc C.cudaError_t, what string) error {
	if rc != C.cudaSuccess {
		return fmt.Errorf("%s: %s", what, C.GoString(C.hmemCudaErrString(rc)))
	}

	return nil
}

func (d *cudaDriver) allocPinned(numBytes int) (unsafe.Pointer, error) {
	var ptr unsafe.Pointer
	if err := d.check(
		C.cudaHostAlloc(&ptr, C.size_t(numBytes), C.cudaHostAllocDefault),
		"cudaHostAlloc",
	); err != nil {
		return nil, err
	}

	return ptr, nil
}

func (d *cudaDriver) allocDevice(numBytes int) (unsafe.Pointer, error) {
	var ptr unsafe.Pointer
	if err := d.check(
		C.cudaMalloc(&ptr, C.size_t(numBytes)),
		"cudaMalloc",
	); err != nil {
		return nil, err
	}

	return ptr, nil
}

func (d *cudaDriver) allocManaged(numBytes int) (unsafe.Pointer, error) {
	var ptr unsafe.Pointer
	if err := d.check(
		C.cudaMallocManaged(&ptr, C.size_t(numBytes), C.cudaMemAttachGlobal),
		"cudaMallocManaged",
	); err != nil {
		return nil, err
	}

	return ptr, nil
}

func (d *cudaDriver) memcpy(
	dst, src unsafe.Pointer,
	numBytes int,
	dir Direction,
) error {
	var kind C.enum_cudaMemcpyKind
	switch dir {
	case HostToDevice:
		kind = C.cudaMemcpyHostToDevice
	case DeviceToHost:
		kind = C.cudaMemcpyDeviceToHost
	case DeviceToDevice:
		kind = C.cudaMemcpyDeviceToDevice
	default:
		return fmt.Errorf("unknown copy direction %d", dir)
	}

	return d.check(
		C.cudaMemcpy(dst, src, C.size_t(numBytes), kind),
		"cudaMemcpy",
	)
}
