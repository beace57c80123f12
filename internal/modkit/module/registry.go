package module

import "sync"

// process wide port registry filled during bootstrap so hosts can hand one
// module's ports to another by name
var registry = struct {
	sync.RWMutex
	ports map[string]any
}{ports: map[string]any{}}

// Register stores the port bundle published under a module name
func Register(name string, ports any) {
	registry.Lock()
	defer registry.Unlock()
	registry.ports[name] = ports
}

// PortsAs looks up a registered bundle and asserts it to T
func PortsAs[T any](name string) (T, bool) {
	registry.RLock()
	v, found := registry.ports[name]
	registry.RUnlock()
	if !found {
		var zero T
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}

// Reset empties the registry between tests
func Reset() {
	registry.Lock()
	defer registry.Unlock()
	registry.ports = map[string]any{}
}
