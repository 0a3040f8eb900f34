package access

import (
	"context"
	"errors"

	"igia-backend/internal/domain/user"

	"gorm.io/gorm"
)

// NotFound maps gorm.ErrRecordNotFound to the domain sentinel and passes other errors through.
func NotFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// Actor loads the calling account by public id and rejects deactivated ones.
func Actor(ctx context.Context, users user.Repository, userID string) (*user.User, error) {
	u, err := users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, NotFound(err, user.ErrNotFound)
	}
	if !u.IsActive {
		return nil, user.ErrInactive
	}
	return u, nil
}

// ActorWith is Actor plus a capability check.
func ActorWith(ctx context.Context, users user.Repository, userID string, c user.Capability) (*user.User, error) {
	u, err := Actor(ctx, users, userID)
	if err != nil {
		return nil, err
	}
	if !u.Can(c) {
		return nil, user.ErrForbidden
	}
	return u, nil
}

// RequireSubscription lets intermediaire features through only once the subscription is paid.
func RequireSubscription(ctx context.Context, profiles user.ProfileRepository, u *user.User) error {
	if u.Role != user.RoleIntermediaire {
		return nil
	}
	p, err := profiles.GetIntermediaire(ctx, u.ID)
	if err != nil {
		return NotFound(err, user.ErrSubscriptionRequired)
	}
	if !p.SubscriptionPaid {
		return user.ErrSubscriptionRequired
	}
	return nil
}
