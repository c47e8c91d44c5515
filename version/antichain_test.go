package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAntichainMinimization(t *testing.T) {
	// inserting a dominated element is a no-op; inserting a dominating
	// element drops the elements it dominates.
	a := NewAntichain(New(1, 1), New(2, 0))
	assert.ElementsMatch(t, []Version{New(1, 1), New(2, 0)}, a.Elements())

	a.Insert(New(0, 1)) // dominates (1,1)
	assert.ElementsMatch(t, []Version{New(0, 1), New(2, 0)}, a.Elements())

	changed := a.Insert(New(0, 0)) // dominated by nothing, dominates both
	assert.True(t, changed)
	assert.ElementsMatch(t, []Version{New(0, 0)}, a.Elements())

	changed = a.Insert(New(0, 0))
	assert.False(t, changed)
}

func TestAntichainNormalizesOnConstruction(t *testing.T) {
	// a non-minimal input set is normalized, never rejected
	a := NewAntichain(New(0, 0), New(1, 1), New(0, 5))
	assert.ElementsMatch(t, []Version{New(0, 0)}, a.Elements())
}

func TestAntichainLessEqualVersion(t *testing.T) {
	a := NewAntichain(New(1, 0), New(0, 1))
	assert.True(t, a.LessEqualVersion(New(1, 0)))
	assert.True(t, a.LessEqualVersion(New(2, 2)))
	assert.False(t, a.LessEqualVersion(New(0, 0)))
}

func TestAntichainLessEqualAndEqual(t *testing.T) {
	empty := Antichain{}
	a := NewAntichain(New(1, 1))
	b := NewAntichain(New(0, 0))

	assert.True(t, a.LessEqual(empty)) // empty is "most advanced" frontier
	assert.False(t, empty.LessEqual(a))

	assert.True(t, b.LessEqual(a)) // b's frontier (everything) contains a's
	assert.False(t, a.LessEqual(b))

	assert.True(t, a.Equal(NewAntichain(New(1, 1))))
}

func TestMeetOfAntichains(t *testing.T) {
	a := NewAntichain(New(2, 0))
	b := NewAntichain(New(0, 2))
	m := Meet(a, b)
	assert.ElementsMatch(t, []Version{New(2, 0), New(0, 2)}, m.Elements())
}

func TestJoinVersionsOfAntichains(t *testing.T) {
	a := NewAntichain(New(1, 0), New(0, 1))
	b := NewAntichain(New(0, 0))
	j := JoinVersions(a, b)
	assert.ElementsMatch(t, []Version{New(1, 0), New(0, 1)}, j.Elements())

	// empty input antichain yields empty result (no element to join against)
	assert.True(t, JoinVersions(a, Antichain{}).IsEmpty())
}

func TestExtendTruncateAntichain(t *testing.T) {
	a := NewAntichain(New(1, 2))
	ext := a.Extend()
	assert.ElementsMatch(t, []Version{New(1, 2, 0)}, ext.Elements())
	assert.ElementsMatch(t, []Version{New(1, 2)}, ext.Truncate().Elements())
}

func TestEmptyAntichainIsTerminal(t *testing.T) {
	var a Antichain
	assert.True(t, a.IsEmpty())
	assert.False(t, a.LessEqualVersion(New(0, 0))) // empty frontier dominates nothing
}
