package property

import (
	"sync"

	"github.com/hilite/hilite-go/lib/models/annotation"
	"github.com/hilite/hilite-go/lib/utils"
	"github.com/google/uuid"
)

// Source hands out the {id, label, color} tuples used as property refs at
// create and update time.
type Source struct {
	mu         sync.RWMutex
	properties map[string]annotation.PropertyRef
	order      []string
}

func NewSource() *Source {
	return &Source{
		properties: make(map[string]annotation.PropertyRef),
	}
}

// NewSeededSource registers the given labels with palette colors.
func NewSeededSource(labels ...string) *Source {
	s := NewSource()
	for i, label := range labels {
		s.Add(label, utils.PaletteColor(i))
	}
	return s
}

func (s *Source) Add(label string, color string) annotation.PropertyRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	if color == "" {
		color = utils.PaletteColor(len(s.order))
	}
	ref := annotation.PropertyRef{
		Id:    uuid.New().String(),
		Label: label,
		Color: color,
	}
	s.properties[ref.Id] = ref
	s.order = append(s.order, ref.Id)
	return ref
}

func (s *Source) Get(id string) (annotation.PropertyRef, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ref, ok := s.properties[id]
	return ref, ok
}

func (s *Source) All() []annotation.PropertyRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]annotation.PropertyRef, 0, len(s.order))
	for _, id := range s.order {
		all = append(all, s.properties[id])
	}
	return all
}
