package ports

import "context"

// RoleCache is an optional read-through cache in front of the per-request
// role lookup. Implementations must treat cache failures as misses.
type RoleCache interface {
	// GetRoles returns the cached roles string and whether it was present.
	GetRoles(ctx context.Context, userID uint) (string, bool)
	SetRoles(ctx context.Context, userID uint, roles string)
}
