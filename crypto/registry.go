package crypto

import (
	"fmt"
	"slices"
	"sync"
)

// Registry maps algorithm identifiers to plugins. Populate it at start up, then read
// it from as many goroutines as needed.
type Registry struct {
	mtx  sync.RWMutex
	algs map[string]Algorithm
}

func NewRegistry(algs ...Algorithm) *Registry {
	r := &Registry{algs: make(map[string]Algorithm, len(algs))}
	for _, a := range algs {
		r.Register(a)
	}
	return r
}

// Register panics if the identifier is empty or already taken
func (r *Registry) Register(a Algorithm) {
	id := a.ID()
	if id == "" {
		panic("algorithm identifier is empty")
	}
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.algs == nil {
		r.algs = make(map[string]Algorithm)
	}
	if _, ok := r.algs[id]; ok {
		panic(fmt.Sprintf("algorithm identifier is already in use: %s", id))
	}
	r.algs[id] = a
}

func (r *Registry) Get(id string) (Algorithm, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if a, ok := r.algs[id]; ok {
		return a, nil
	}
	return nil, &UnsupportedAlgorithmError{ID: id}
}

func (r *Registry) IDs() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	ids := make([]string, 0, len(r.algs))
	for id := range r.algs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
