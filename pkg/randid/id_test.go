package randid

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9]*$`)

	for _, n := range []int{-1, 0, 1, 6, 16} {
		got := Generate(n)
		assert.Len(t, got, max(n, 0))
		assert.Regexp(t, pattern, got)
	}
}

func TestKey(t *testing.T) {
	seen := make(map[string]struct{})
	for range 200 {
		k := Key()
		assert.True(t, IsKey(k), "Key() = %q", k)
		assert.NotContains(t, k, "O")
		assert.NotContains(t, k, "0")
		seen[k] = struct{}{}
	}
	// 32^8 keys; a handful of collisions in 200 draws means the source is broken
	assert.GreaterOrEqual(t, len(seen), 195)
}

func TestIsKey(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ABCD2345", true},
		{"ABCD234", false},
		{"abcd2345", false},
		{"ABCD0345", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsKey(tt.in), tt.in)
	}
}
