package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Record(1, 1)
	assert.Zero(t, r.Len())
	_, _, _, ok := r.VerticalSpan()
	assert.False(t, ok)

	require.True(t, r.Toggle())
	r.Record(0, 100)
	r.Record(5, 60)
	r.Record(10, 80)
	assert.Equal(t, []cp.Vector{{X: 0, Y: 100}, {X: 5, Y: 60}, {X: 10, Y: 80}}, r.Samples())

	minY, maxY, height, ok := r.VerticalSpan()
	require.True(t, ok)
	assert.Equal(t, 60.0, minY)
	assert.Equal(t, 100.0, maxY)
	assert.Equal(t, 40.0, height)

	require.False(t, r.Toggle())
	r.Record(0, 0)
	assert.Equal(t, 3, r.Len())

	r.Start()
	assert.Zero(t, r.Len(), "start clears old samples")
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.False(t, r.Active())
	r.Record(1, 2)
	assert.Zero(t, r.Len())
	assert.Nil(t, r.Samples())
}
