package jobs

import (
	"context"
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"github.com/openqda/qda/internal/session"
	"github.com/openqda/qda/internal/store"
)

var _ CronJob = (*CoderRefresh)(nil)

// CoderRefresh polls the coder table at the connection profile's refresh
// interval and fires a coder-changed event whenever another client added,
// removed or recolored a coder.
type CoderRefresh struct {
	provider store.Provider
	bus      *session.Bus
	interval time.Duration

	seen mapset.Set[string]
}

func NewCoderRefresh(provider store.Provider, bus *session.Bus, interval time.Duration) *CoderRefresh {
	return &CoderRefresh{
		provider: provider,
		bus:      bus,
		interval: interval,
		seen:     mapset.NewSet[string](),
	}
}

func (c *CoderRefresh) Schedule() string {
	return fmt.Sprintf("@every %s", c.interval)
}

func (c *CoderRefresh) Run() {
	st := c.provider.Store()
	if st == nil {
		return
	}

	coders, err := st.ListCoders(context.Background())
	if err != nil {
		logrus.Warnf("coder refresh failed: %v", err)
		return
	}

	current := mapset.NewSet[string]()
	for _, coder := range coders {
		current.Add(fmt.Sprintf("%d:%s:%d:%d:%d", coder.ID, coder.Name, coder.Red, coder.Green, coder.Blue))
	}

	if c.seen.Cardinality() > 0 && !current.Equal(c.seen) {
		c.bus.Publish(session.Event{Kind: session.CoderChanged})
	}
	c.seen = current
}
