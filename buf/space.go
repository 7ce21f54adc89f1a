package buf

// Space classifies the memory space an allocation lives in. The space decides
// which allocator/deallocator pair and which copy primitives apply to the
// block.
type Space int

const (
	// Pageable is ordinary host memory that the operating system may page
	// out. It is slow to transfer to a device.
	Pageable Space = iota

	// Pinned is host memory locked against paging, enabling fast
	// host-device transfers.
	Pinned

	// Device is accelerator-resident memory, not addressable from host
	// code.
	Device

	// Managed is memory that the device runtime migrates between host and
	// device as needed.
	Managed
)

func (s Space) String() string {
	switch s {
	case Pageable:
		return "Pageable"
	case Pinned:
		return "Pinned"
	case Device:
		return "Device"
	case Managed:
		return "Managed"
	default:
		return "Unknown"
	}
}

// HostAccessible reports whether host code may dereference pointers into the
// space.
func (s Space) HostAccessible() bool {
	return s != Device
}
