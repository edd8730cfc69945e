package module

import "sync"

// Process-wide port registry. Mount publishes each module's ports here so
// siblings can look them up by module name (the scrutiny module reaching
// the shared engine, for example) without main threading every pair
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register publishes ports under name; a second Register for the same
// name replaces the first
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs looks up name and asserts its ports to T. The second return is
// false when the module is unregistered or its ports are some other type
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}

// Reset empties the registry between test mounts
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
