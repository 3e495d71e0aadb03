package acts

import (
	"fmt"
	"strings"
	"sync"

	"github.com/de-tools/pulse-atlas/pkg/models/domain"
)

// Registry manages the narrative acts available for selection
type Registry interface {
	// Register adds a new act; names are unique and case-insensitive
	Register(act Act) error
	// Get returns the act registered under name
	Get(name string) (Act, error)
	// List returns the registered acts in registration order
	List() []domain.ActInfo
}

type registry struct {
	mu    sync.RWMutex
	order []string
	acts  map[string]Act
}

// NewRegistry creates a registry holding the given acts
func NewRegistry(acts ...Act) (Registry, error) {
	r := &registry{acts: make(map[string]Act)}
	for _, act := range acts {
		if err := r.Register(act); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *registry) Register(act Act) error {
	if act.Name == "" {
		return fmt.Errorf("act name cannot be empty")
	}
	if len(act.Panels) == 0 {
		return fmt.Errorf("act %q has no panels", act.Name)
	}

	key := strings.ToLower(act.Name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.acts[key]; exists {
		return fmt.Errorf("act %q is already registered", act.Name)
	}

	r.acts[key] = act
	r.order = append(r.order, key)
	return nil
}

func (r *registry) Get(name string) (Act, error) {
	r.mu.RLock()
	act, exists := r.acts[strings.ToLower(name)]
	r.mu.RUnlock()

	if !exists {
		return Act{}, fmt.Errorf("%w: %q", domain.ErrUnknownAct, name)
	}
	return act, nil
}

func (r *registry) List() []domain.ActInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]domain.ActInfo, 0, len(r.order))
	for _, key := range r.order {
		act := r.acts[key]
		infos = append(infos, domain.ActInfo{Name: act.Name, Title: act.Title})
	}
	return infos
}
