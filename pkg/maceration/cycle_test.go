package maceration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMixCycleMixing(t *testing.T) {
	cycle := MixCycle{On: 30 * time.Second, Off: 570 * time.Second}

	assert.True(t, cycle.Mixing(0))
	assert.True(t, cycle.Mixing(29*time.Second))
	assert.False(t, cycle.Mixing(30*time.Second))
	assert.False(t, cycle.Mixing(599*time.Second))
	assert.True(t, cycle.Mixing(600*time.Second))
	assert.True(t, cycle.Mixing(-time.Second))
}

func TestMixCycleUntilToggle(t *testing.T) {
	cycle := MixCycle{On: 30 * time.Second, Off: 570 * time.Second}

	assert.Equal(t, 30*time.Second, cycle.UntilToggle(0))
	assert.Equal(t, time.Second, cycle.UntilToggle(29*time.Second))
	assert.Equal(t, 570*time.Second, cycle.UntilToggle(30*time.Second))
	assert.Equal(t, 35*time.Second, cycle.UntilToggle(10*time.Minute+565*time.Second))
}

func TestMixCycleOnTimePerWindow(t *testing.T) {
	cycle := MixCycle{On: 2 * time.Minute, Off: 58 * time.Minute}
	step := time.Second

	// Any window of one period, whatever its offset, holds exactly On of mixing.
	for _, offset := range []time.Duration{0, 17 * time.Second, 90 * time.Second, 59 * time.Minute} {
		var on time.Duration
		for elapsed := offset; elapsed < offset+cycle.Period(); elapsed += step {
			if cycle.Mixing(elapsed) {
				on += step
			}
		}
		assert.Equal(t, cycle.On, on, "offset %s", offset)
	}
}
