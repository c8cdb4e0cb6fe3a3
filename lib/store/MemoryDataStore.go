package store

import (
	"errors"
	"sync"

	"github.com/hilite/hilite-go/lib/models/db"
)

type MemoryDataStore struct {
	mu              sync.RWMutex
	annotationStore map[string]db.AnnotationDB
}

func NewMemoryDataStore() *MemoryDataStore {
	return &MemoryDataStore{
		annotationStore: make(map[string]db.AnnotationDB),
	}
}

func (m *MemoryDataStore) SaveAnnotation(row *db.AnnotationDB) error {
	if row == nil {
		return errors.New("nil annotation row")
	}
	m.mu.Lock()
	m.annotationStore[row.Id] = *row
	m.mu.Unlock()
	return nil
}

func (m *MemoryDataStore) GetAnnotation(id string) (*db.AnnotationDB, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	row, ok := m.annotationStore[id]
	if !ok {
		return nil, errors.New(AnnotationDoesNotExistError)
	}
	return &row, nil
}

func (m *MemoryDataStore) ListAnnotations() ([]db.AnnotationDB, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var annotations []db.AnnotationDB
	for _, row := range m.annotationStore {
		annotations = append(annotations, row)
	}
	return annotations, nil
}

func (m *MemoryDataStore) ListAnnotationsByTab(tabId string) ([]db.AnnotationDB, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var annotations []db.AnnotationDB
	for _, row := range m.annotationStore {
		if row.TabId == tabId {
			annotations = append(annotations, row)
		}
	}
	return annotations, nil
}

func (m *MemoryDataStore) RemoveAnnotation(id string) error {
	m.mu.Lock()
	delete(m.annotationStore, id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryDataStore) Close() error {
	return nil
}
