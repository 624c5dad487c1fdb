package sqldb

import (
	"fmt"
	"sort"
	"sync"
)

// ClientFactory is a callback that constructs a Client from Conf.
// It is registered with RegisterFactory and called by sqldb.New.
type ClientFactory func(conf *Conf) (Client, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]ClientFactory{}
)

func RegisterFactory(dbType string, factory ClientFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[dbType] = factory
}

// New builds a Client for conf.Type. The Client still needs Init.
func New(conf *Conf) (Client, error) {
	registryMu.RLock()
	factory, ok := registry[conf.Type]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, conf.Type)
	}
	if err := conf.SetDefaults(); err != nil {
		return nil, fmt.Errorf("failed to set conf defaults: %w", err)
	}
	return factory(conf)
}

// RegisteredTypes lists the registered database types, sorted
func RegisteredTypes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	types := make([]string, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
