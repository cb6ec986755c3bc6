package session

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testProfile(t *testing.T) Profile {
	dir := t.TempDir()
	return Profile{
		Type:    DBTypeSQLite,
		Path:    filepath.Join(dir, uuid.New().String()+".db"),
		CoderID: 1,
	}
}

func TestBus_SubscribeAndUnsubscribe(t *testing.T) {
	bus := NewBus()

	var got []Event
	id := bus.Subscribe(func(e Event) { got = append(got, e) })

	bus.Publish(Event{Kind: CoderChanged, CoderID: 2})
	assert.Len(t, got, 1)
	assert.Equal(t, CoderChanged, got[0].Kind)
	assert.Equal(t, int64(2), got[0].CoderID)

	bus.Unsubscribe(id)
	bus.Publish(Event{Kind: CoderChanged, CoderID: 3})
	assert.Len(t, got, 1)
}

func TestSession_ConnectPublishesAndSwaps(t *testing.T) {
	s := New()
	assert.Nil(t, s.Store())

	var events []Event
	s.Bus().Subscribe(func(e Event) { events = append(events, e) })

	profile := testProfile(t)
	assert.NoError(t, s.Connect(profile))
	defer s.Close()

	assert.NotNil(t, s.Store())
	assert.Equal(t, profile.Path, s.Profile().Path)
	assert.Equal(t, int64(1), s.CoderID())
	assert.Len(t, events, 1)
	assert.Equal(t, ConnectionChanged, events[0].Kind)

	// reconnecting swaps the data source and notifies again
	second := testProfile(t)
	second.CoderID = 4
	assert.NoError(t, s.Connect(second))
	assert.Equal(t, second.Path, s.Profile().Path)
	assert.Equal(t, int64(4), s.CoderID())
	assert.Len(t, events, 2)
}

func TestSession_ConnectFailureKeepsCurrent(t *testing.T) {
	s := New()

	profile := testProfile(t)
	assert.NoError(t, s.Connect(profile))
	defer s.Close()

	bad := Profile{Type: "oracle"}
	assert.Error(t, s.Connect(bad))
	assert.Equal(t, profile.Path, s.Profile().Path)
	assert.NotNil(t, s.Store())
}

func TestSession_SetCoder(t *testing.T) {
	s := New()

	var events []Event
	s.Bus().Subscribe(func(e Event) { events = append(events, e) })

	s.SetCoder(7)
	assert.Equal(t, int64(7), s.CoderID())
	assert.Len(t, events, 1)
	assert.Equal(t, CoderChanged, events[0].Kind)
	assert.Equal(t, int64(7), events[0].CoderID)
}

func TestSession_Close(t *testing.T) {
	s := New()
	assert.NoError(t, s.Connect(testProfile(t)))
	assert.NoError(t, s.Close())
	assert.Nil(t, s.Store())
}
