package store

// Provider resolves the active store. The session implements it, so a
// connection swap is picked up by every service on its next call.
type Provider interface {
	Store() Store
}

// StaticProvider wraps a fixed store, used by tests and one-shot commands.
type StaticProvider struct {
	S Store
}

func (p StaticProvider) Store() Store {
	return p.S
}
