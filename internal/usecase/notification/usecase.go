package notification

import (
	"context"
	"time"

	domain "igia-backend/internal/domain/notification"
	"igia-backend/internal/domain/user"
	"igia-backend/internal/usecase/access"
	"igia-backend/pkg/id"
)

const defaultListLimit = 50

// Send stores one notification; every fan-out in the app goes through here.
func Send(ctx context.Context, repo domain.Repository, recipientID uint64, typ domain.Type, title, message string, opts ...domain.Option) error {
	n := domain.New(recipientID, typ, title, message, opts...)
	n.NotificationID = id.NewID32()
	return repo.Create(ctx, n)
}

type Usecase struct {
	users user.Repository
	repo  domain.Repository
	now   func() time.Time
}

func NewUsecase(users user.Repository, repo domain.Repository) *Usecase {
	return &Usecase{users: users, repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) List(ctx context.Context, actorID string, limit int) (*ListDTO, error) {
	actor, err := access.Actor(ctx, u.users, actorID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	list, err := u.repo.ListByRecipient(ctx, actor.ID, limit)
	if err != nil {
		return nil, err
	}
	unread, err := u.repo.CountUnread(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	out := &ListDTO{Items: make([]NotificationDTO, 0, len(list)), Unread: unread}
	for i := range list {
		out.Items = append(out.Items, toDTO(&list[i]))
	}
	return out, nil
}

func (u *Usecase) UnreadCount(ctx context.Context, actorID string) (int64, error) {
	actor, err := access.Actor(ctx, u.users, actorID)
	if err != nil {
		return 0, err
	}
	return u.repo.CountUnread(ctx, actor.ID)
}

func (u *Usecase) MarkRead(ctx context.Context, actorID, notificationID string) (*NotificationDTO, error) {
	n, err := u.owned(ctx, actorID, notificationID)
	if err != nil {
		return nil, err
	}
	if n.MarkRead(u.now()) {
		if err := u.repo.Save(ctx, n); err != nil {
			return nil, err
		}
	}
	dto := toDTO(n)
	return &dto, nil
}

func (u *Usecase) MarkAllRead(ctx context.Context, actorID string) (int64, error) {
	actor, err := access.Actor(ctx, u.users, actorID)
	if err != nil {
		return 0, err
	}
	return u.repo.MarkAllRead(ctx, actor.ID, u.now())
}

func (u *Usecase) Delete(ctx context.Context, actorID, notificationID string) error {
	n, err := u.owned(ctx, actorID, notificationID)
	if err != nil {
		return err
	}
	return u.repo.Delete(ctx, n.ID)
}

// owned hides other users' notifications behind ErrNotFound.
func (u *Usecase) owned(ctx context.Context, actorID, notificationID string) (*domain.Notification, error) {
	actor, err := access.Actor(ctx, u.users, actorID)
	if err != nil {
		return nil, err
	}
	n, err := u.repo.GetByNotificationID(ctx, notificationID)
	if err != nil {
		return nil, access.NotFound(err, domain.ErrNotFound)
	}
	if n.RecipientID != actor.ID {
		return nil, domain.ErrNotFound
	}
	return n, nil
}

func toDTO(n *domain.Notification) NotificationDTO {
	return NotificationDTO{
		NotificationID: n.NotificationID,
		Type:           string(n.Type),
		Title:          n.Title,
		Message:        n.Message,
		ShortMessage:   n.ShortMessage,
		Icon:           n.Icon,
		BgColor:        n.BgColor,
		IsRead:         n.IsRead,
		IsImportant:    n.IsImportant,
		CreatedAt:      n.CreatedAt,
		ReadAt:         n.ReadAt,
	}
}
