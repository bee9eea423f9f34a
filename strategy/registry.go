package strategy

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry is a concurrency-safe name-to-strategy table. Each registry is
// independent; registering into one never affects another.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy)}
}

func (r *Registry) Register(s Strategy) error {
	if s == nil {
		return fmt.Errorf("strategy: strategy is nil")
	}
	name := strings.TrimSpace(s.Name())
	if name == "" {
		return fmt.Errorf("strategy: strategy name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.strategies[name]; exists {
		return fmt.Errorf("strategy: strategy already registered: %s", name)
	}
	r.strategies[name] = s
	return nil
}

func (r *Registry) Get(name string) (Strategy, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("strategy: strategy name is required")
	}
	r.mu.RLock()
	s, ok := r.strategies[trimmed]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("strategy: strategy not registered: %s", trimmed)
	}
	return s, nil
}

func (r *Registry) List() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
