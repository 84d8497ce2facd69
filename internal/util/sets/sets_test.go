package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetBasics(t *testing.T) {
	s := New("b", "a")
	assert.True(t, s.Has("a"))
	assert.True(t, s.Add("c"))
	assert.False(t, s.Add("c"))

	clone := s.Clone()
	s.Delete("a")
	assert.False(t, s.Has("a"))
	assert.True(t, clone.Has("a"))

	assert.Equal(t, []string{"a", "b", "c"}, Sorted(clone))
}
