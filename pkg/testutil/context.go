package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	id "bloodhound/pkg/domain"
	"bloodhound/pkg/requestcontext"
)

// AuthenticatedContext builds a context carrying a full authenticated identity,
// the way the middleware chain would after JWT validation.
func AuthenticatedContext(t *testing.T, role requestcontext.UserRole) context.Context {
	t.Helper()
	ctx := context.Background()
	ctx = requestcontext.WithUserID(ctx, id.UserID(uuid.New()))
	ctx = requestcontext.WithEntityID(ctx, id.EntityID(uuid.New()))
	ctx = requestcontext.WithRole(ctx, role)
	ctx = requestcontext.WithRequestID(ctx, uuid.NewString())
	return ctx
}

// ContextWithIdentity builds a context for a specific user and entity.
func ContextWithIdentity(userID id.UserID, entityID id.EntityID, role requestcontext.UserRole) context.Context {
	ctx := context.Background()
	ctx = requestcontext.WithUserID(ctx, userID)
	ctx = requestcontext.WithEntityID(ctx, entityID)
	ctx = requestcontext.WithRole(ctx, role)
	return ctx
}

// ContextWithTime freezes the request clock for deterministic assertions.
func ContextWithTime(ctx context.Context, at time.Time) context.Context {
	return requestcontext.WithTime(ctx, at)
}
