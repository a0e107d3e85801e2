package galaxy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTime_Advance(t *testing.T) {
	start := time.Unix(50, 0)
	clock := &Time{Time: start, start: start}

	clock.advance(start.Add(16 * time.Millisecond))
	clock.advance(start.Add(40 * time.Millisecond))

	assert.Equal(t, 24*time.Millisecond, clock.Dt)
	assert.Equal(t, 40*time.Millisecond, clock.Elapsed)
	assert.Equal(t, uint64(2), clock.Frame)
}
