package buf

// HookPos defines the enum of possible hooking positions.
type HookPos struct {
	Name string
}

// HookPosAllocate marks when a buffer acquires a new allocation.
var HookPosAllocate = &HookPos{Name: "Allocate"}

// HookPosFree marks when a buffer releases its allocation.
var HookPosFree = &HookPos{Name: "Free"}

// HookPosTransfer marks when a buffer moves between memory spaces.
var HookPosTransfer = &HookPos{Name: "Transfer"}

// HookCtx is the context that holds all the information about the site that
// a hook is triggered.
type HookCtx struct {
	Domain interface{}
	Pos    *HookPos
	Detail interface{}
}

// AllocDetail describes an allocation or release observed by a hook.
type AllocDetail struct {
	Space    Space
	Count    int
	NumBytes int
}

// TransferDetail describes a space-to-space move observed by a hook.
type TransferDetail struct {
	From     Space
	To       Space
	NumBytes int
}

// Hookable defines an object that accepts Hooks.
type Hookable interface {
	// AcceptHook registers a hook.
	AcceptHook(hook Hook)
}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other types that
// implement the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.Hooks)
}

// InvokeHook triggers the registered Hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
