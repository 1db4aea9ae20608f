package core

import (
	"sort"
	"sync"

	"github.com/keshon/commandkit"
)

// commandkit registries are not safe for concurrent use.
var (
	registryMu sync.RWMutex
	registry   = commandkit.DefaultRegistry
)

// Register wraps h in mws, the first one innermost, and registers the result
// under h.Name().
func Register(h Handler, mws ...commandkit.Middleware) {
	c := commandkit.Apply(&Adapter{Cmd: h}, mws...)

	registryMu.Lock()
	defer registryMu.Unlock()
	registry.Register(c)
}

// GetCommand returns the command with the given name
func GetCommand(name string) (commandkit.Command, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c := registry.Get(name)
	return c, c != nil
}

// AllCommands returns all registered commands sorted by name
func AllCommands() []commandkit.Command {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry.GetAll()
}

// Groups returns the distinct command groups in alphabetical order.
func Groups() []string {
	seen := map[string]bool{}
	var groups []string
	for _, c := range AllCommands() {
		meta, ok := MetaOf(c)
		if !ok {
			continue
		}
		g := meta.Group()
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// ResetRegistry drops every registered command.
func ResetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = commandkit.NewRegistry()
}
