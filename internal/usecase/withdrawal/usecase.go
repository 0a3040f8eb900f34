package withdrawal

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainNotification "igia-backend/internal/domain/notification"
	"igia-backend/internal/domain/project"
	"igia-backend/internal/domain/uow"
	"igia-backend/internal/domain/user"
	domain "igia-backend/internal/domain/withdrawal"
	"igia-backend/internal/usecase/access"
	"igia-backend/internal/usecase/notification"
	"igia-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	uow uow.UnitOfWork
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

// Request asks to withdraw part of a project's collected funds.
// One pending request per project at a time.
func (u *Usecase) Request(ctx context.Context, actorID string, in RequestInput) (*RequestDTO, error) {
	var out *RequestDTO
	err := u.uow.WithinProjectTx(ctx, in.ProjectID, func(r uow.Repos, p *project.Project) error {
		actor, err := access.ActorWith(ctx, r.Users, actorID, user.CapRequestWithdrawal)
		if err != nil {
			return err
		}
		if p.EntrepreneurID != actor.ID {
			return project.ErrNotOwner
		}
		if err := domain.CheckAmount(in.Amount, p.CollectedAmount); err != nil {
			return err
		}
		pending, err := r.Withdrawals.GetPendingByProject(ctx, p.ID)
		switch {
		case err == nil && pending != nil:
			return domain.ErrPendingExists
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		req := &domain.Request{
			RequestID:      id.NewID32(),
			EntrepreneurID: actor.ID,
			ProjectID:      p.ID,
			Amount:         in.Amount,
			Reason:         in.Reason,
			Status:         domain.StatusPending,
		}
		if err := r.Withdrawals.Create(ctx, req); err != nil {
			return err
		}
		dto := toDTO(req, p.ProjectID)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, access.NotFound(err, project.ErrNotFound)
	}
	return out, nil
}

func (u *Usecase) Approve(ctx context.Context, actorID, requestID string) (*RequestDTO, error) {
	return u.process(ctx, actorID, requestID, domain.StatusApproved)
}

func (u *Usecase) Reject(ctx context.Context, actorID, requestID string) (*RequestDTO, error) {
	return u.process(ctx, actorID, requestID, domain.StatusRejected)
}

func (u *Usecase) MarkPaid(ctx context.Context, actorID, requestID string) (*RequestDTO, error) {
	return u.process(ctx, actorID, requestID, domain.StatusPaid)
}

func (u *Usecase) process(ctx context.Context, actorID, requestID string, to domain.Status) (*RequestDTO, error) {
	var out *RequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.ActorWith(ctx, r.Users, actorID, user.CapModerate)
		if err != nil {
			return err
		}
		req, err := r.Withdrawals.GetByRequestIDForUpdate(ctx, requestID)
		if err != nil {
			return access.NotFound(err, domain.ErrNotFound)
		}
		if !domain.CanTransition(req.Status, to) {
			return fmt.Errorf("%s -> %s: %w", req.Status, to, domain.ErrInvalidTransition)
		}
		at := u.now()
		req.Status = to
		req.ProcessedAt = &at
		if err := r.Withdrawals.Save(ctx, req); err != nil {
			return err
		}

		p, err := r.Projects.GetByID(ctx, req.ProjectID)
		if err != nil {
			return access.NotFound(err, project.ErrNotFound)
		}
		title, label, icon := "Retrait approuvé", "approuvée", domainNotification.WithIcon("fa-check-circle", "bg-success")
		switch to {
		case domain.StatusRejected:
			title, label, icon = "Retrait refusé", "refusée", domainNotification.WithIcon("fa-times-circle", "bg-danger")
		case domain.StatusPaid:
			title, label, icon = "Retrait payé", "payée", domainNotification.WithIcon("fa-money-bill", "bg-success")
		}
		msg := fmt.Sprintf("Votre demande de retrait de %s pour « %s » a été %s.", req.Amount.StringFixed(2), p.Title, label)
		if err := notification.Send(ctx, r.Notifications, req.EntrepreneurID, domainNotification.TypeWithdrawalProcessed, title, msg,
			domainNotification.WithSender(actor.ID), domainNotification.WithProject(p.ID), icon); err != nil {
			return err
		}
		dto := toDTO(req, p.ProjectID)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) ListMine(ctx context.Context, actorID string) ([]RequestDTO, error) {
	var out []RequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.ActorWith(ctx, r.Users, actorID, user.CapRequestWithdrawal)
		if err != nil {
			return err
		}
		list, err := r.Withdrawals.ListByEntrepreneur(ctx, actor.ID)
		if err != nil {
			return err
		}
		out, err = toList(ctx, r, list)
		return err
	})
	return out, err
}

func (u *Usecase) ListPending(ctx context.Context, actorID string) ([]RequestDTO, error) {
	var out []RequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := access.ActorWith(ctx, r.Users, actorID, user.CapModerate); err != nil {
			return err
		}
		list, err := r.Withdrawals.ListByStatus(ctx, domain.StatusPending)
		if err != nil {
			return err
		}
		out, err = toList(ctx, r, list)
		return err
	})
	return out, err
}

func toList(ctx context.Context, r uow.Repos, list []domain.Request) ([]RequestDTO, error) {
	publicIDs := map[uint64]string{}
	out := make([]RequestDTO, 0, len(list))
	for i := range list {
		pid, ok := publicIDs[list[i].ProjectID]
		if !ok {
			p, err := r.Projects.GetByID(ctx, list[i].ProjectID)
			if err != nil {
				return nil, access.NotFound(err, project.ErrNotFound)
			}
			pid = p.ProjectID
			publicIDs[p.ID] = pid
		}
		out = append(out, toDTO(&list[i], pid))
	}
	return out, nil
}

func toDTO(req *domain.Request, projectID string) RequestDTO {
	return RequestDTO{
		RequestID:   req.RequestID,
		ProjectID:   projectID,
		Amount:      req.Amount,
		Reason:      req.Reason,
		Status:      string(req.Status),
		CreatedAt:   req.CreatedAt,
		ProcessedAt: req.ProcessedAt,
	}
}
