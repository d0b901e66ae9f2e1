package internal

// View is a screen of the client
type View int

const (
	ViewLogin View = iota
	ViewSelectContext
	ViewChat
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewSelectContext:
		return "select-context"
	case ViewChat:
		return "chat"
	default:
		return "unknown"
	}
}

// State is the lifecycle position derived from the session store
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
	StateInConversation
	// StateTerminated is transient: finish clears the session, which reads
	// back as StateUnauthenticated.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	case StateInConversation:
		return "in-conversation"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Guard decides which view may be shown. It consults the store on every call
// instead of caching, so a reload within the same tab sees the same answer.
type Guard struct {
	store SessionStore
}

// NewGuard creates a guard over the given store
func NewGuard(store SessionStore) *Guard {
	return &Guard{store: store}
}

// State derives the current lifecycle state
func (g *Guard) State() State {
	sess, ok := g.store.Get()
	switch {
	case !ok:
		return StateUnauthenticated
	case sess.HasContext():
		return StateInConversation
	default:
		return StateAuthenticated
	}
}

// Enter returns the view actually shown when the user asks for want
func (g *Guard) Enter(want View) View {
	got := g.resolve(want)
	if got != want {
		LogDebug("Redirecting %s -> %s (state %s)", want, got, g.State())
	}
	return got
}

// Allows reports whether want can be entered without a redirect
func (g *Guard) Allows(want View) bool {
	return g.resolve(want) == want
}

func (g *Guard) resolve(want View) View {
	switch want {
	case ViewSelectContext:
		if g.State() == StateUnauthenticated {
			return ViewLogin
		}
		return ViewSelectContext
	case ViewChat:
		switch g.State() {
		case StateUnauthenticated:
			return ViewLogin
		case StateAuthenticated:
			return ViewSelectContext
		}
		return ViewChat
	default:
		return ViewLogin
	}
}
