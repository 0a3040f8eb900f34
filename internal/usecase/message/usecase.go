package message

import (
	"context"

	domain "igia-backend/internal/domain/message"
	domainNotification "igia-backend/internal/domain/notification"
	"igia-backend/internal/domain/project"
	"igia-backend/internal/domain/uow"
	"igia-backend/internal/domain/user"
	"igia-backend/internal/usecase/access"
	"igia-backend/internal/usecase/notification"
	"igia-backend/pkg/id"
)

type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

// Send writes to the platform team, i.e. the oldest staff account.
func (u *Usecase) Send(ctx context.Context, actorID string, in SendInput) (*MessageDTO, error) {
	var out *MessageDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.Actor(ctx, r.Users, actorID)
		if err != nil {
			return err
		}
		staff, err := r.Users.FirstStaff(ctx)
		if err != nil {
			return access.NotFound(err, domain.ErrNoRecipient)
		}
		m := &domain.Message{
			MessageID:   id.NewID32(),
			SenderID:    actor.ID,
			RecipientID: staff.ID,
			Subject:     in.Subject,
			Body:        in.Body,
			Type:        domain.Type(in.Type),
		}
		if m.Type == "" {
			m.Type = domain.TypeMessage
		}
		var p *project.Project
		if in.ProjectID != "" {
			if p, err = r.Projects.GetByProjectID(ctx, in.ProjectID); err != nil {
				return access.NotFound(err, project.ErrNotFound)
			}
			m.ProjectID = &p.ID
		}
		m.PreviewText = m.Preview()
		if err := r.Messages.Create(ctx, m); err != nil {
			return err
		}
		dto := toDTO(m, actor, staff, p)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reply answers a received message; the original sender gets the reply and a notification.
func (u *Usecase) Reply(ctx context.Context, actorID, messageID, body string) (*MessageDTO, error) {
	var out *MessageDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.Actor(ctx, r.Users, actorID)
		if err != nil {
			return err
		}
		orig, err := r.Messages.GetByMessageID(ctx, messageID)
		if err != nil {
			return access.NotFound(err, domain.ErrNotFound)
		}
		if orig.RecipientID != actor.ID {
			return domain.ErrNotRecipient
		}
		to, err := r.Users.GetByID(ctx, orig.SenderID)
		if err != nil {
			return access.NotFound(err, user.ErrNotFound)
		}

		reply := orig.Reply(body)
		reply.MessageID = id.NewID32()
		reply.PreviewText = reply.Preview()
		if err := r.Messages.Create(ctx, reply); err != nil {
			return err
		}
		if !orig.IsRead {
			orig.IsRead = true
			if err := r.Messages.Save(ctx, orig); err != nil {
				return err
			}
		}

		opts := []domainNotification.Option{domainNotification.WithSender(actor.ID), domainNotification.WithIcon("fa-envelope", "bg-primary")}
		if reply.ProjectID != nil {
			opts = append(opts, domainNotification.WithProject(*reply.ProjectID))
		}
		if err := notification.Send(ctx, r.Notifications, to.ID, domainNotification.TypeAdminMessage, reply.Subject, reply.Preview(), opts...); err != nil {
			return err
		}

		var p *project.Project
		if reply.ProjectID != nil {
			if p, err = r.Projects.GetByID(ctx, *reply.ProjectID); err != nil {
				return access.NotFound(err, project.ErrNotFound)
			}
		}
		dto := toDTO(reply, actor, to, p)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Inbox(ctx context.Context, actorID string) (*InboxDTO, error) {
	var out *InboxDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.Actor(ctx, r.Users, actorID)
		if err != nil {
			return err
		}
		list, err := r.Messages.ListInbox(ctx, actor.ID)
		if err != nil {
			return err
		}
		unread, err := r.Messages.CountUnread(ctx, actor.ID)
		if err != nil {
			return err
		}
		items, err := toList(ctx, r, list)
		if err != nil {
			return err
		}
		out = &InboxDTO{Items: items, Unread: unread}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Sent(ctx context.Context, actorID string) ([]MessageDTO, error) {
	var out []MessageDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.Actor(ctx, r.Users, actorID)
		if err != nil {
			return err
		}
		list, err := r.Messages.ListSent(ctx, actor.ID)
		if err != nil {
			return err
		}
		out, err = toList(ctx, r, list)
		return err
	})
	return out, err
}

// Detail opens a message and marks it read when the recipient looks at it.
func (u *Usecase) Detail(ctx context.Context, actorID, messageID string) (*MessageDTO, error) {
	var out *MessageDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		m, actor, err := participant(ctx, r, actorID, messageID)
		if err != nil {
			return err
		}
		if m.RecipientID == actor.ID && !m.IsRead {
			m.IsRead = true
			if err := r.Messages.Save(ctx, m); err != nil {
				return err
			}
		}
		items, err := toList(ctx, r, []domain.Message{*m})
		if err != nil {
			return err
		}
		out = &items[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Archive hides a message from the recipient's inbox.
func (u *Usecase) Archive(ctx context.Context, actorID, messageID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		m, actor, err := participant(ctx, r, actorID, messageID)
		if err != nil {
			return err
		}
		if m.RecipientID != actor.ID {
			return domain.ErrNotRecipient
		}
		m.Archived = true
		return r.Messages.Save(ctx, m)
	})
}

func (u *Usecase) Delete(ctx context.Context, actorID, messageID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		m, _, err := participant(ctx, r, actorID, messageID)
		if err != nil {
			return err
		}
		return r.Messages.Delete(ctx, m.ID)
	})
}

// participant loads a message the actor sent or received; anything else reads as not found.
func participant(ctx context.Context, r uow.Repos, actorID, messageID string) (*domain.Message, *user.User, error) {
	actor, err := access.Actor(ctx, r.Users, actorID)
	if err != nil {
		return nil, nil, err
	}
	m, err := r.Messages.GetByMessageID(ctx, messageID)
	if err != nil {
		return nil, nil, access.NotFound(err, domain.ErrNotFound)
	}
	if m.SenderID != actor.ID && m.RecipientID != actor.ID {
		return nil, nil, domain.ErrNotFound
	}
	return m, actor, nil
}

func toList(ctx context.Context, r uow.Repos, list []domain.Message) ([]MessageDTO, error) {
	users := map[uint64]*user.User{}
	projects := map[uint64]*project.Project{}
	lookupUser := func(id uint64) (*user.User, error) {
		if u, ok := users[id]; ok {
			return u, nil
		}
		u, err := r.Users.GetByID(ctx, id)
		if err != nil {
			return nil, access.NotFound(err, user.ErrNotFound)
		}
		users[id] = u
		return u, nil
	}

	out := make([]MessageDTO, 0, len(list))
	for i := range list {
		m := &list[i]
		from, err := lookupUser(m.SenderID)
		if err != nil {
			return nil, err
		}
		to, err := lookupUser(m.RecipientID)
		if err != nil {
			return nil, err
		}
		var p *project.Project
		if m.ProjectID != nil {
			if p = projects[*m.ProjectID]; p == nil {
				if p, err = r.Projects.GetByID(ctx, *m.ProjectID); err != nil {
					return nil, access.NotFound(err, project.ErrNotFound)
				}
				projects[p.ID] = p
			}
		}
		out = append(out, toDTO(m, from, to, p))
	}
	return out, nil
}

func toDTO(m *domain.Message, from, to *user.User, p *project.Project) MessageDTO {
	dto := MessageDTO{
		MessageID: m.MessageID,
		From:      from.DisplayName(),
		To:        to.DisplayName(),
		Subject:   m.Subject,
		Body:      m.Body,
		Preview:   m.Preview(),
		Type:      string(m.Type),
		IsRead:    m.IsRead,
		Archived:  m.Archived,
		CreatedAt: m.CreatedAt,
	}
	if p != nil {
		dto.ProjectID = p.ProjectID
	}
	return dto
}
