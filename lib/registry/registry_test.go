package registry

import (
	"strconv"
	"sync"
	"testing"

	"github.com/hilite/hilite-go/lib/models/annotation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, tabId string) *annotation.Record {
	return &annotation.Record{
		Id:   id,
		Type: annotation.TypeText,
		Tab:  annotation.TabContext{TabId: tabId},
	}
}

func TestRegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	reg.Register(record("a1", "tab1"))

	require.NotNil(t, reg.Get("a1"))
	assert.Nil(t, reg.Get("missing"))
	assert.Equal(t, 1, reg.Len())
}

func TestRegisterOverwritesSameId(t *testing.T) {
	reg := NewRegistry()
	reg.Register(record("a1", "tab1"))
	reg.Register(record("a1", "tab2"))

	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, "tab2", reg.Get("a1").Tab.TabId)
}

func TestRegisterIgnoresInvalid(t *testing.T) {
	reg := NewRegistry()
	reg.Register(nil)
	reg.Register(&annotation.Record{})
	assert.Equal(t, 0, reg.Len())
}

func TestUnregister(t *testing.T) {
	reg := NewRegistry()
	reg.Register(record("a1", "tab1"))
	reg.Unregister("a1")
	assert.Nil(t, reg.Get("a1"))

	// unknown id is a no-op
	reg.Unregister("a1")
	assert.Equal(t, 0, reg.Len())
}

func TestAllAndGetByTab(t *testing.T) {
	reg := NewRegistry()
	reg.Register(record("a1", "tab1"))
	reg.Register(record("a2", "tab1"))
	reg.Register(record("a3", "tab2"))

	assert.Len(t, reg.All(), 3)
	assert.Len(t, reg.GetByTab("tab1"), 2)
	assert.Len(t, reg.GetByTab("tab2"), 1)
	assert.Empty(t, reg.GetByTab("tab3"))
}

func TestConcurrentAccess(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := "a" + strconv.Itoa(i)
			reg.Register(record(id, "tab1"))
			reg.Get(id)
			reg.All()
			reg.Unregister(id)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 0, reg.Len())
}
