package codec

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry maps codec names and IDs to codecs. Registering a codec whose
// name or ID is already taken replaces the earlier entry.
type Registry struct {
	mu     sync.RWMutex
	codecs []Codec
	index  map[string]int
}

var defaultRegistry = NewRegistry()

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds codec to the process-wide registry
func Register(codec Codec) {
	defaultRegistry.Register(codec)
}

// Get looks a codec up in the process-wide registry
func Get(nameOrID string) (Codec, error) {
	return defaultRegistry.Get(nameOrID)
}

// List returns the codecs of the process-wide registry sorted by name
func List() []Codec {
	return defaultRegistry.List()
}

// Register adds codec under both its name and its ID
func (r *Registry) Register(codec Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot := len(r.codecs)
	for _, key := range []string{codec.Name(), codec.ID()} {
		if i, ok := r.index[key]; ok {
			slot = i
		}
	}
	if slot == len(r.codecs) {
		r.codecs = append(r.codecs, codec)
	} else {
		old := r.codecs[slot]
		delete(r.index, old.Name())
		delete(r.index, old.ID())
		r.codecs[slot] = codec
	}
	r.index[codec.Name()] = slot
	r.index[codec.ID()] = slot
}

// Get returns the codec registered under nameOrID
func (r *Registry) Get(nameOrID string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[nameOrID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCodecNotFound, nameOrID)
	}
	return r.codecs[i], nil
}

// List returns every registered codec once, sorted by name
func (r *Registry) List() []Codec {
	r.mu.RLock()
	codecs := slices.Clone(r.codecs)
	r.mu.RUnlock()

	slices.SortFunc(codecs, func(a, b Codec) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return codecs
}
