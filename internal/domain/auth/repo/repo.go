package repo

import (
	"context"
	"time"

	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/auth/model"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u model.User) (int64, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByID(ctx context.Context, id int64) (model.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// Blocklist records revoked token identifiers. Entries expire on their own
// once ttl elapses.
type Blocklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	IsRevoked(ctx context.Context, jti string) (bool, error)
}
