package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessEqual(t *testing.T) {
	cases := []struct {
		name     string
		u, v     Version
		expected bool
	}{
		{`equal`, New(1, 2), New(1, 2), true},
		{`strictly less`, New(0, 1), New(1, 2), true},
		{`incomparable`, New(1, 0), New(0, 1), false},
		{`strictly greater`, New(2, 2), New(1, 2), false},
		{`zero arity`, New(), New(), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, LessEqual(c.u, c.v))
		})
	}
}

func TestLessThan(t *testing.T) {
	assert.True(t, LessThan(New(0, 1), New(1, 1)))
	assert.False(t, LessThan(New(1, 1), New(1, 1)))
	assert.False(t, LessThan(New(1, 0), New(0, 1)))
}

func TestJoinMeet(t *testing.T) {
	assert.Equal(t, New(3, 2), Join(New(1, 2), New(3, 0)))
	assert.Equal(t, New(1, 0), MeetVersion(New(1, 2), New(3, 0)))

	// join is the least version >= both inputs
	u, v := New(1, 5), New(4, 2)
	j := Join(u, v)
	require.True(t, LessEqual(u, j))
	require.True(t, LessEqual(v, j))
}

func TestExtendTruncate(t *testing.T) {
	v := New(3, 4)
	ext := Extend(v)
	assert.Equal(t, New(3, 4, 0), ext)
	assert.Equal(t, v, Truncate(ext))

	assert.Panics(t, func() { Truncate(New()) })
}

func TestIncrementLast(t *testing.T) {
	assert.Equal(t, New(0, 5), IncrementLast(New(0, 4)))
	assert.Panics(t, func() { IncrementLast(New()) })
}

func TestMismatchedArityPanics(t *testing.T) {
	assert.Panics(t, func() { LessEqual(New(1), New(1, 2)) })
	assert.Panics(t, func() { Join(New(1), New(1, 2)) })
	assert.Panics(t, func() { MeetVersion(New(1), New(1, 2)) })
}

func TestCloneIndependence(t *testing.T) {
	v := New(1, 2)
	c := Clone(v)
	c[0] = 99
	assert.Equal(t, New(1, 2), v)
}
