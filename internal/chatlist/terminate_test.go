package chatlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectorRepeatEndsList(t *testing.T) {
	var d Detector
	var got []Step
	for _, id := range []Identity{"a", "b", "c", "c"} {
		got = append(got, d.Observe(id))
	}
	assert.Equal(t, []Step{Continue, Continue, Continue, Terminal}, got)
}

func TestDetectorFirstStepAlwaysContinues(t *testing.T) {
	var d Detector
	assert.Equal(t, Continue, d.Observe(""), "zero identity on the first step is not a repeat")
	assert.Equal(t, Terminal, d.Observe(""))
}

func TestDetectorOnlyComparesNeighbours(t *testing.T) {
	var d Detector
	for _, id := range []Identity{"a", "b", "a", "b"} {
		assert.Equal(t, Continue, d.Observe(id))
	}
}
