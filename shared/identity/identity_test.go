package identity_test

import (
	"context"
	"testing"

	"hotel/shared/constant"
	"hotel/shared/identity"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	t.Run("missing identity yields guest", func(t *testing.T) {
		id := identity.FromContext(context.Background())

		assert.False(t, id.IsAuthenticated())
		assert.Equal(t, constant.ContextGuest, id.Actor())
	})

	t.Run("stored identity is returned", func(t *testing.T) {
		ctx := identity.WithIdentity(context.Background(), identity.Identity{
			UserID: "user-1",
			Email:  "guest@example.com",
			Role:   constant.RoleClient,
		})

		id := identity.FromContext(ctx)

		assert.True(t, id.IsAuthenticated())
		assert.Equal(t, "user-1", id.Actor())
		assert.True(t, identity.HasAnyRole(id.Role, constant.RoleAdmin, constant.RoleClient))
		assert.False(t, identity.HasAnyRole(id.Role, constant.RoleAdmin, constant.RoleManager))
	})
}
