package actor

import "context"

// SystemName labels actions initiated without an authenticated user, such as the
// first record written during a multi-step signup.
const SystemName = "Sistema"

// Actor captures contextual information about the authenticated user that
// initiated a request. A missing actor is legal and means the action is
// system-initiated.
type Actor struct {
	ID    string
	Name  string
	Email string
}

type actorContextKey struct{}

// WithActor injects actor metadata into the supplied context, returning a derived
// context that callers pass down into service layers for audit logging.
func WithActor(ctx context.Context, act Actor) context.Context {
	if ctx == nil {
		return context.WithValue(context.Background(), actorContextKey{}, act)
	}
	return context.WithValue(ctx, actorContextKey{}, act)
}

// FromContext extracts previously stored actor metadata from the context.
func FromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	act, ok := ctx.Value(actorContextKey{}).(Actor)
	return act, ok
}

// Attribution resolves the performed-by pair for an audit entry: a nil id and
// "Sistema" when no actor is present in the context.
func Attribution(ctx context.Context) (*string, string) {
	act, ok := FromContext(ctx)
	if !ok || act.ID == "" {
		return nil, SystemName
	}
	name := act.Name
	if name == "" {
		name = act.Email
	}
	id := act.ID
	return &id, name
}
