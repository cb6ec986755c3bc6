package jobs

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openqda/qda/internal/model"
	"github.com/openqda/qda/internal/session"
	"github.com/openqda/qda/internal/tester"
)

func TestMain(m *testing.M) {
	code := m.Run()
	tester.RemoveDBFile()
	os.Exit(code)
}

func TestCoderRefresh_PublishesOnChange(t *testing.T) {
	tester.Setup()
	bus := session.NewBus()

	var events []session.Event
	bus.Subscribe(func(e session.Event) { events = append(events, e) })

	refresh := NewCoderRefresh(tester.Provider(), bus, 20*time.Second)
	assert.Equal(t, "@every 20s", refresh.Schedule())

	// first run only records the baseline
	refresh.Run()
	assert.Empty(t, events)

	refresh.Run()
	assert.Empty(t, events)

	err := tester.TestStore().CreateCoder(context.TODO(), &model.Coder{Name: "Bob", Red: 0, Green: 0, Blue: 255})
	assert.NoError(t, err)

	refresh.Run()
	assert.Len(t, events, 1)
	assert.Equal(t, session.CoderChanged, events[0].Kind)

	// stable set, no further events
	refresh.Run()
	assert.Len(t, events, 1)
}

func TestCoderRefresh_SkipsWhenDisconnected(t *testing.T) {
	bus := session.NewBus()

	var events []session.Event
	bus.Subscribe(func(e session.Event) { events = append(events, e) })

	// a fresh session has no store yet
	refresh := NewCoderRefresh(session.New(), bus, time.Second)
	refresh.Run()
	assert.Empty(t, events)
}
