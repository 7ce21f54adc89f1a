package buf

// A Handle is the type-erased, read-only view of a buffer that monitoring
// and recording code can hold without knowing the element type.
type Handle interface {
	Allocated() bool
	Len() int
	NumBytes() int
	Space() Space
	OnDevice() bool
	Pinned() bool
}
