package thermal

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestLatch_EdgesAreConsumedOnce(t *testing.T) {
	// GIVEN
	latch := Latch{}

	// WHEN
	latch.Set(true)

	// THEN
	assert.True(t, latch.Is())
	assert.True(t, latch.WentTrue())
	assert.False(t, latch.WentTrue())
	assert.False(t, latch.WentFalse())
}

func TestLatch_SettingSameValueHasNoEdge(t *testing.T) {
	// GIVEN
	latch := Latch{}
	latch.Set(true)
	latch.WentTrue()

	// WHEN
	latch.Set(true)

	// THEN
	assert.False(t, latch.WentTrue())
	assert.True(t, latch.Is())
}

func TestLatch_WentFalse(t *testing.T) {
	// GIVEN
	latch := Latch{}
	latch.Set(true)
	latch.WentTrue()

	// WHEN
	latch.Set(false)

	// THEN
	assert.False(t, latch.Is())
	assert.True(t, latch.WentFalse())
	assert.False(t, latch.WentFalse())
}
