package auth

import "context"

// Viewer is the capability threaded through every catalog query. Anonymous
// viewers get the visibility filter; admin viewers bypass it entirely. It is
// an explicit parameter on usecase calls, never a global toggle.
type Viewer struct {
	UserID  string
	IsAdmin bool
}

func Anonymous() Viewer {
	return Viewer{}
}

type ctxKey struct{}

// WithViewer returns a context carrying the viewer; the auth middleware is
// the only writer.
func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, ctxKey{}, v)
}

// FromContext returns the viewer attached to ctx, anonymous if none.
func FromContext(ctx context.Context) Viewer {
	if v, ok := ctx.Value(ctxKey{}).(Viewer); ok {
		return v
	}
	return Anonymous()
}
