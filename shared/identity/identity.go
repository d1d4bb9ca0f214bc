package identity

import (
	"context"
	"slices"

	"hotel/shared/constant"
)

// Identity is the authenticated principal of a request.
type Identity struct {
	UserID  string
	Email   string
	Role    string
	TokenID string
}

func (i Identity) IsAuthenticated() bool {
	return i.UserID != constant.Empty
}

// Actor is the value written to created_by / modified_by columns.
func (i Identity) Actor() string {
	if !i.IsAuthenticated() {
		return constant.ContextGuest
	}

	return i.UserID
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, constant.ContextKeyIdentity, id)
}

func FromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(constant.ContextKeyIdentity).(Identity)

	return id
}

// HasAnyRole reports whether role is one of roles.
func HasAnyRole(role string, roles ...string) bool {
	return slices.Contains(roles, role)
}
