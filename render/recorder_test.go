package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_FrameLifecycle(t *testing.T) {
	rec := NewRecorder(100, 50)
	surf, err := rec.Acquire()
	require.NoError(t, err)

	surf.StrokeLine(0, 0, 1, 1, Paint{Alpha: 0.2}, 0.5)
	surf.FillCircle(2, 2, 1, Paint{Alpha: 0.5})
	assert.Len(t, rec.Lines(), 1)
	assert.Len(t, rec.Circles(), 1)

	surf.Clear()
	assert.Empty(t, rec.Lines())
	assert.Empty(t, rec.Circles())

	require.NoError(t, rec.Present())
	acquires, clears, presents := rec.Counts()
	assert.Equal(t, 1, acquires)
	assert.Equal(t, 1, clears)
	assert.Equal(t, 1, presents)
}

func TestRecorder_Unavailable(t *testing.T) {
	rec := NewRecorder(100, 50)
	rec.SetUnavailable(true)
	_, err := rec.Acquire()
	assert.True(t, errors.Is(err, ErrSurfaceUnavailable))

	rec.SetUnavailable(false)
	rec.SetSize(0, 50)
	_, err = rec.Acquire()
	assert.True(t, errors.Is(err, ErrSurfaceUnavailable))
}
