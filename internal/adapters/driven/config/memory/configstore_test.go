package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("key1", "original"))
	require.NoError(t, store.Set("key1", "updated"))

	val, ok := store.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "updated", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("str", "hello")
	_ = store.Set("int", 7)
	_ = store.Set("int64", int64(8))
	_ = store.Set("float", float64(9))
	_ = store.Set("bool", true)
	_ = store.Set("slice", []any{"a", 1, "b"})

	assert.Equal(t, "hello", store.GetString("str"))
	assert.Empty(t, store.GetString("int"))
	assert.Equal(t, 7, store.GetInt("int"))
	assert.Equal(t, 8, store.GetInt("int64"))
	assert.Equal(t, 9, store.GetInt("float"))
	assert.Zero(t, store.GetInt("str"))
	assert.True(t, store.GetBool("bool"))
	assert.False(t, store.GetBool("str"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("slice"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_GetStringMap(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("aliases.canton.CRNEL. MARCELINO MARIDUENA", "CORONEL MARCELINO MARIDUENA")
	_ = store.Set("aliases.canton.X", 1)
	_ = store.Set("aliases.cantons", "not under prefix")
	_ = store.Set("aliases.canton.", "empty remainder")

	assert.Equal(t, map[string]string{
		"CRNEL. MARCELINO MARIDUENA": "CORONEL MARCELINO MARIDUENA",
	}, store.GetStringMap("aliases.canton"))
}

func TestConfigStore_SaveAndLoadAreNoOps(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("k", "v")

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())
	assert.Equal(t, "v", store.GetString("k"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "section.k" + string(rune('a'+id))
			_ = store.Set(key, "v")
			_ = store.GetString(key)
			_ = store.GetStringMap("section")
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.GetStringMap("section"), 20)
}
