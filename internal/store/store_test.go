package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fh2207/waveview/internal/events"
	"github.com/fh2207/waveview/internal/point"
)

// recorder collects every event published on the bus.
type recorder struct {
	events []*point.Event
}

func newRecorder(t *testing.T, bus *events.Bus) *recorder {
	t.Helper()
	r := &recorder{}
	require.NoError(t, bus.Subscribe("recorder", events.Filter{}, func(e *point.Event) {
		r.events = append(r.events, e)
	}))
	return r
}

func (r *recorder) types() []point.EventType {
	out := make([]point.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func TestAddPublishesEvent(t *testing.T) {
	bus := events.NewBus()
	rec := newRecorder(t, bus)
	st := New(bus)

	a := point.New(1, true)
	b := point.New(5, false)
	require.NoError(t, st.Add(a, b))
	require.Equal(t, 2, st.Len())

	require.Equal(t, []point.EventType{point.EventPointsAdd}, rec.types())
	require.Equal(t, SourceName, rec.events[0].Source)
	require.Equal(t, []*point.Point{a, b}, rec.events[0].Points)
}

func TestAddRejectsDuplicates(t *testing.T) {
	bus := events.NewBus()
	st := New(bus)

	a := point.New(1, true)
	require.NoError(t, st.Add(a))

	rec := newRecorder(t, bus)
	dup := &point.Point{ID: a.ID, Time: 2}
	err := st.Add(point.New(3, true), dup)
	require.ErrorIs(t, err, ErrDuplicatePoint)

	// The whole batch is rejected; nothing was added or published.
	require.Equal(t, 1, st.Len())
	require.Empty(t, rec.events)
}

func TestAddRejectsInvalidPoints(t *testing.T) {
	bus := events.NewBus()
	st := New(bus)

	require.Error(t, st.Add(&point.Point{ID: "", Time: 1}))
	require.Error(t, st.Add(&point.Point{ID: "p1", Time: -2}))
	require.Equal(t, 0, st.Len())
}

func TestUpdate(t *testing.T) {
	bus := events.NewBus()
	st := New(bus)

	p := point.New(1, true)
	require.NoError(t, st.Add(p))

	rec := newRecorder(t, bus)
	newTime := 4.5
	label := "verse"
	require.NoError(t, st.Update(p.ID, UpdateOptions{Time: &newTime, LabelText: &label}))

	got := st.Get(p.ID)
	require.Equal(t, 4.5, got.Time)
	require.Equal(t, "verse", got.LabelText)
	require.True(t, got.Editable)

	require.Equal(t, []point.EventType{point.EventPointsUpdate}, rec.types())
	require.Same(t, p, rec.events[0].Point)

	require.ErrorIs(t, st.Update("missing", UpdateOptions{}), ErrPointNotFound)
}

func TestUpdateClampsNegativeTime(t *testing.T) {
	bus := events.NewBus()
	st := New(bus)

	p := point.New(3, true)
	require.NoError(t, st.Add(p))

	bad := -1.0
	require.NoError(t, st.Update(p.ID, UpdateOptions{Time: &bad}))
	require.Equal(t, 0.0, st.Get(p.ID).Time)
}

func TestRemoveSkipsUnknownIDs(t *testing.T) {
	bus := events.NewBus()
	st := New(bus)

	a := point.New(1, true)
	require.NoError(t, st.Add(a))

	rec := newRecorder(t, bus)
	st.Remove("missing")
	require.Empty(t, rec.events)

	st.Remove(a.ID, "missing")
	require.Equal(t, []point.EventType{point.EventPointsRemove}, rec.types())
	require.Equal(t, []*point.Point{a}, rec.events[0].Points)
	require.Equal(t, 0, st.Len())
}

func TestRemoveAll(t *testing.T) {
	bus := events.NewBus()
	st := New(bus)
	require.NoError(t, st.Add(point.New(1, true), point.New(2, true)))

	rec := newRecorder(t, bus)
	st.RemoveAll()

	require.Equal(t, 0, st.Len())
	require.Equal(t, []point.EventType{point.EventPointsRemoveAll}, rec.types())
	require.Nil(t, rec.events[0].Points)
}

func TestFindUsesHalfOpenWindow(t *testing.T) {
	bus := events.NewBus()
	st := New(bus)

	at := func(tm float64) *point.Point {
		p := point.New(tm, true)
		require.NoError(t, st.Add(p))
		return p
	}
	p0, p5 := at(0), at(5)
	at(6)
	at(9)

	found := st.Find(0, 6)
	require.Len(t, found, 2)
	require.ElementsMatch(t, []*point.Point{p0, p5}, found)

	require.Empty(t, st.Find(2, 2))
}

func TestAllSortedByTime(t *testing.T) {
	bus := events.NewBus()
	st := New(bus)

	c := point.New(9, true)
	a := point.New(1, true)
	b := point.New(4, true)
	require.NoError(t, st.Add(c, a, b))

	require.Equal(t, []*point.Point{a, b, c}, st.All())
}
