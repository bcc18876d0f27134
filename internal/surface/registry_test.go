package surface

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frudas24/touchwave/gesture"
)

// quietLog returns a logger that swallows output.
func quietLog() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// driveSwipe feeds a fast horizontal movement into the surface recognizer.
func driveSwipe(s *Surface) {
	r := s.Recognizer()
	r.OnContactBegin([]gesture.ContactPoint{{X: 0, Y: 0, Timestamp: 0}})
	r.OnContactMove([]gesture.ContactPoint{{X: 100, Y: 0, Timestamp: 100}})
	r.OnContactEnd()
}

func TestRegistryCreateAndGet(t *testing.T) {
	reg, err := NewRegistry(4, quietLog())
	require.NoError(t, err)

	s := reg.Create("default", gesture.Config{})
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, "default", s.Profile())

	got, ok := reg.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryEvictsAndTearsDownLRU(t *testing.T) {
	reg, err := NewRegistry(2, quietLog())
	require.NoError(t, err)

	oldest := reg.Create("default", gesture.Config{})
	var fired int
	oldest.Recognizer().Subscribe(gesture.KindSwipe, func(gesture.Event) { fired++ })

	reg.Create("default", gesture.Config{})
	reg.Create("default", gesture.Config{})

	_, ok := reg.Get(oldest.ID())
	assert.False(t, ok, "oldest surface should be evicted")
	assert.Equal(t, 2, reg.Len())

	// The eviction tore the recognizer down, so the handler is gone.
	driveSwipe(oldest)
	assert.Zero(t, fired)
}

func TestRegistryGetRefreshesRecency(t *testing.T) {
	reg, err := NewRegistry(2, quietLog())
	require.NoError(t, err)

	a := reg.Create("default", gesture.Config{})
	b := reg.Create("default", gesture.Config{})

	_, ok := reg.Get(a.ID())
	require.True(t, ok)
	reg.Create("default", gesture.Config{})

	_, ok = reg.Get(a.ID())
	assert.True(t, ok, "recently used surface should survive")
	_, ok = reg.Get(b.ID())
	assert.False(t, ok, "stale surface should be evicted")
}

func TestRegistryRemoveTearsDown(t *testing.T) {
	reg, err := NewRegistry(4, quietLog())
	require.NoError(t, err)

	s := reg.Create("default", gesture.Config{})
	var fired int
	s.Recognizer().Subscribe(gesture.KindSwipe, func(gesture.Event) { fired++ })

	reg.Remove(s.ID())
	assert.Equal(t, 0, reg.Len())

	driveSwipe(s)
	assert.Zero(t, fired)
}

func TestRegistryClosePurgesAll(t *testing.T) {
	reg, err := NewRegistry(4, quietLog())
	require.NoError(t, err)
	reg.Create("default", gesture.Config{})
	reg.Create("default", gesture.Config{})

	reg.Close()
	assert.Equal(t, 0, reg.Len())
}

func TestSurfaceSnapshotCounters(t *testing.T) {
	reg, err := NewRegistry(4, quietLog())
	require.NoError(t, err)

	s := reg.Create("pager", gesture.Config{})
	s.SetDimensions(800, 600)
	s.NoteFrame()
	s.NoteFrame()
	driveSwipe(s)

	info := s.Snapshot()
	assert.Equal(t, s.ID(), info.ID)
	assert.Equal(t, "pager", info.Profile)
	assert.Equal(t, 800.0, info.Width)
	assert.Equal(t, 600.0, info.Height)
	assert.Equal(t, int64(2), info.Frames)
	assert.Equal(t, int64(1), info.Gestures)
	assert.False(t, info.LastSeen.IsZero())
}

func TestRegistrySnapshotOldestFirst(t *testing.T) {
	reg, err := NewRegistry(4, quietLog())
	require.NoError(t, err)

	first := reg.Create("default", gesture.Config{})
	second := reg.Create("default", gesture.Config{})

	infos := reg.Snapshot()
	require.Len(t, infos, 2)
	assert.Equal(t, first.ID(), infos[0].ID)
	assert.Equal(t, second.ID(), infos[1].ID)
}
