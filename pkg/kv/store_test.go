package kv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_GetSet(t *testing.T) {
	s := New[string, int]()

	s.Set("foo", 42)
	val, ok := s.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 42, val)

	_, ok = s.Get("bar")
	assert.False(t, ok)
}

func TestStore_InsertionOrder(t *testing.T) {
	s := New[string, int]()
	s.Set("c", 1)
	s.Set("a", 2)
	s.Set("b", 3)

	// overwrite keeps the original position
	s.Set("c", 10)

	assert.Equal(t, []string{"c", "a", "b"}, s.Keys())
	assert.Equal(t, []int{10, 2, 3}, s.Values())
}

func TestStore_Delete(t *testing.T) {
	s := New[string, string]()
	s.Set("a", "1")
	s.Set("b", "2")
	s.Set("c", "3")

	assert.True(t, s.Delete("b"))
	assert.False(t, s.Delete("b"))

	_, ok := s.Get("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "c"}, s.Keys())

	s.Set("b", "4")
	assert.Equal(t, []string{"a", "c", "b"}, s.Keys(), "re-added keys go to the end")
}

func TestStore_FromSlice(t *testing.T) {
	type item struct {
		id   string
		name string
	}

	s := FromSlice([]item{{"x", "one"}, {"y", "two"}, {"x", "three"}}, func(it item) string { return it.id })

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []item{{"x", "three"}, {"y", "two"}}, s.Values())
}

func TestStore_Clear(t *testing.T) {
	s := New[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Keys())
	assert.Empty(t, s.Values())
}

func TestStore_SnapshotsAreIndependent(t *testing.T) {
	s := New[string, int]()
	s.Set("a", 1)

	keys := s.Keys()
	keys[0] = "mutated"

	assert.Equal(t, []string{"a"}, s.Keys())
}

func TestStore_Concurrent(t *testing.T) {
	s := New[int, int]()
	var wg sync.WaitGroup

	for i := range 100 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Set(n, n*2)
			s.Get(n)
			s.Values()
		}(i)
	}

	wg.Wait()
	assert.Equal(t, 100, s.Len())
	assert.Len(t, s.Keys(), 100)
}
