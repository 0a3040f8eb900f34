package project

import (
	"context"
	"fmt"
	"time"

	"igia-backend/internal/domain/funding"
	domainNotification "igia-backend/internal/domain/notification"
	"igia-backend/internal/domain/payment"
	domain "igia-backend/internal/domain/project"
	"igia-backend/internal/domain/uow"
	"igia-backend/internal/domain/user"
	"igia-backend/internal/usecase/access"
	"igia-backend/internal/usecase/notification"
	"igia-backend/pkg/id"

	"github.com/shopspring/decimal"
)

type Usecase struct {
	uow uow.UnitOfWork
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

// Submit creates a project awaiting its submission fee, plus the matching unpaid Payment.
func (u *Usecase) Submit(ctx context.Context, actorID string, in SubmitInput) (*SubmitDTO, error) {
	if !in.TargetAmount.IsPositive() {
		return nil, domain.ErrInvalidTarget
	}
	var out *SubmitDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.Actor(ctx, r.Users, actorID)
		if err != nil {
			return err
		}

		owner := actor
		var submittedBy *uint64
		switch {
		case actor.Can(user.CapSubmitProject):
		case actor.Can(user.CapSubmitOnBehalf):
			if err := access.RequireSubscription(ctx, r.Profiles, actor); err != nil {
				return err
			}
			ent, err := r.Users.GetByUserID(ctx, in.EntrepreneurID)
			if err != nil {
				return access.NotFound(err, user.ErrNotFound)
			}
			ok, err := r.Profiles.IsRepresented(ctx, actor.ID, ent.ID)
			if err != nil {
				return err
			}
			if !ok {
				return user.ErrNotRepresented
			}
			owner, submittedBy = ent, &actor.ID
		default:
			return user.ErrForbidden
		}

		if actor.CountryID == nil {
			return domain.ErrCountryRequired
		}
		country, err := r.Reference.GetCountryByID(ctx, *actor.CountryID)
		if err != nil {
			return access.NotFound(err, domain.ErrCountryRequired)
		}

		p := &domain.Project{
			ProjectID:        id.NewID32(),
			EntrepreneurID:   owner.ID,
			SubmittedByID:    submittedBy,
			CountryID:        &country.ID,
			Title:            in.Title,
			ShortDescription: in.ShortDescription,
			Description:      in.Description,
			TargetAmount:     in.TargetAmount,
			CollectedAmount:  decimal.Zero,
			Status:           domain.StatusPendingPayment,
			Deadline:         in.Deadline,
		}
		if err := r.Projects.Create(ctx, p); err != nil {
			return err
		}

		pay := &payment.Payment{
			PaymentID:  id.NewID32(),
			UserID:     actor.ID,
			ProjectID:  &p.ID,
			Amount:     country.ProjectSubmissionFee,
			CurrencyID: &country.CurrencyID,
			CountryID:  &country.ID,
			Type:       payment.TypeProjectSubmission,
		}
		if err := r.Payments.Create(ctx, pay); err != nil {
			return err
		}

		if submittedBy != nil {
			msg := fmt.Sprintf("%s a soumis le projet « %s » en votre nom.", actor.DisplayName(), p.Title)
			if err := notification.Send(ctx, r.Notifications, owner.ID, domainNotification.TypeIntermediarySubmit, "Projet soumis par un intermédiaire", msg,
				domainNotification.WithSender(actor.ID), domainNotification.WithProject(p.ID)); err != nil {
				return err
			}
		}

		out = &SubmitDTO{
			Project: toDTO(p, p.CollectedAmount),
			Payment: PaymentDTO{PaymentID: pay.PaymentID, Amount: pay.Amount, Type: string(pay.Type)},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the project with its total derived from the campaigns, not the cached column.
// Projects under review are only visible to their entrepreneur, submitter and staff.
func (u *Usecase) Get(ctx context.Context, actorID, projectID string) (*ProjectDTO, error) {
	var out *ProjectDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.Actor(ctx, r.Users, actorID)
		if err != nil {
			return err
		}
		p, err := r.Projects.GetByProjectID(ctx, projectID)
		if err != nil {
			return access.NotFound(err, domain.ErrNotFound)
		}
		public := p.Status == domain.StatusApproved || p.Status == domain.StatusCompleted
		if !public && !involved(actor, p) && !actor.Can(user.CapModerate) {
			return domain.ErrNotFound
		}
		total, err := derivedTotal(ctx, r, p.ID)
		if err != nil {
			return err
		}
		dto := toDTO(p, total)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListMine lists an entrepreneur's own projects, or those an intermediaire submitted.
func (u *Usecase) ListMine(ctx context.Context, actorID string) ([]ProjectDTO, error) {
	var out []ProjectDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.Actor(ctx, r.Users, actorID)
		if err != nil {
			return err
		}
		var list []domain.Project
		switch {
		case actor.Can(user.CapSubmitProject):
			list, err = r.Projects.ListByEntrepreneur(ctx, actor.ID)
		case actor.Can(user.CapSubmitOnBehalf):
			list, err = r.Projects.ListBySubmitter(ctx, actor.ID)
		default:
			return user.ErrForbidden
		}
		if err != nil {
			return err
		}
		out = toList(list)
		return nil
	})
	return out, err
}

// ListByStatus is open to everyone for approved and completed projects, staff only otherwise.
func (u *Usecase) ListByStatus(ctx context.Context, actorID, status string) ([]ProjectDTO, error) {
	var out []ProjectDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.Actor(ctx, r.Users, actorID)
		if err != nil {
			return err
		}
		s := domain.Status(status)
		if s != domain.StatusApproved && s != domain.StatusCompleted && !actor.Can(user.CapModerate) {
			return user.ErrForbidden
		}
		list, err := r.Projects.ListByStatus(ctx, s)
		if err != nil {
			return err
		}
		out = toList(list)
		return nil
	})
	return out, err
}

func (u *Usecase) Approve(ctx context.Context, actorID, projectID string) (*ProjectDTO, error) {
	return u.moderate(ctx, actorID, projectID, domain.StatusApproved, "")
}

func (u *Usecase) Reject(ctx context.Context, actorID, projectID, reason string) (*ProjectDTO, error) {
	return u.moderate(ctx, actorID, projectID, domain.StatusRejected, reason)
}

func (u *Usecase) moderate(ctx context.Context, actorID, projectID string, to domain.Status, reason string) (*ProjectDTO, error) {
	var out *ProjectDTO
	err := u.uow.WithinProjectTx(ctx, projectID, func(r uow.Repos, p *domain.Project) error {
		actor, err := access.ActorWith(ctx, r.Users, actorID, user.CapModerate)
		if err != nil {
			return err
		}
		if err := transition(p, to); err != nil {
			return err
		}
		if err := r.Projects.Save(ctx, p); err != nil {
			return err
		}

		typ, title := domainNotification.TypeProjectValidated, "Projet validé"
		msg := fmt.Sprintf("Votre projet « %s » a été validé.", p.Title)
		icon := domainNotification.WithIcon("fa-check-circle", "bg-success")
		if to == domain.StatusRejected {
			typ, title = domainNotification.TypeProjectRejected, "Projet rejeté"
			msg = fmt.Sprintf("Votre projet « %s » a été rejeté.", p.Title)
			if reason != "" {
				msg += " Motif : " + reason
			}
			icon = domainNotification.WithIcon("fa-times-circle", "bg-danger")
		}
		if err := notification.Send(ctx, r.Notifications, p.EntrepreneurID, typ, title, msg,
			domainNotification.WithSender(actor.ID), domainNotification.WithProject(p.ID), icon, domainNotification.Important()); err != nil {
			return err
		}
		dto := toDTO(p, p.CollectedAmount)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, access.NotFound(err, domain.ErrNotFound)
	}
	return out, nil
}

// Complete closes an approved project; staff or the intermediaire who submitted it.
func (u *Usecase) Complete(ctx context.Context, actorID, projectID string) (*ProjectDTO, error) {
	var out *ProjectDTO
	err := u.uow.WithinProjectTx(ctx, projectID, func(r uow.Repos, p *domain.Project) error {
		actor, err := access.Actor(ctx, r.Users, actorID)
		if err != nil {
			return err
		}
		submitter := p.SubmittedByID != nil && *p.SubmittedByID == actor.ID
		if !submitter && !actor.Can(user.CapModerate) {
			return user.ErrForbidden
		}
		if err := transition(p, domain.StatusCompleted); err != nil {
			return err
		}
		if err := r.Projects.Save(ctx, p); err != nil {
			return err
		}
		dto := toDTO(p, p.CollectedAmount)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, access.NotFound(err, domain.ErrNotFound)
	}
	return out, nil
}

// Update edits a project still under review and tells its entrepreneur.
func (u *Usecase) Update(ctx context.Context, actorID, projectID string, in UpdateInput) (*ProjectDTO, error) {
	var out *ProjectDTO
	err := u.uow.WithinProjectTx(ctx, projectID, func(r uow.Repos, p *domain.Project) error {
		actor, err := access.Actor(ctx, r.Users, actorID)
		if err != nil {
			return err
		}
		if !involved(actor, p) && !actor.Can(user.CapModerate) {
			return domain.ErrNotOwner
		}
		if !p.Editable() {
			return domain.ErrNotEditable
		}
		if in.Title != nil {
			p.Title = *in.Title
		}
		if in.ShortDescription != nil {
			p.ShortDescription = *in.ShortDescription
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.TargetAmount != nil {
			if !in.TargetAmount.IsPositive() {
				return domain.ErrInvalidTarget
			}
			p.TargetAmount = *in.TargetAmount
		}
		if in.Deadline != nil {
			p.Deadline = in.Deadline
		}
		if err := r.Projects.Save(ctx, p); err != nil {
			return err
		}
		msg := fmt.Sprintf("Le projet « %s » a été mis à jour.", p.Title)
		if err := notification.Send(ctx, r.Notifications, p.EntrepreneurID, domainNotification.TypeProjectUpdate, "Projet mis à jour", msg,
			domainNotification.WithSender(actor.ID), domainNotification.WithProject(p.ID)); err != nil {
			return err
		}
		dto := toDTO(p, p.CollectedAmount)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, access.NotFound(err, domain.ErrNotFound)
	}
	return out, nil
}

// Delete removes a project under review, with its campaigns and their contributions;
// staff may delete at any stage.
func (u *Usecase) Delete(ctx context.Context, actorID, projectID string) error {
	err := u.uow.WithinProjectTx(ctx, projectID, func(r uow.Repos, p *domain.Project) error {
		actor, err := access.Actor(ctx, r.Users, actorID)
		if err != nil {
			return err
		}
		staff := actor.Can(user.CapModerate)
		if !involved(actor, p) && !staff {
			return domain.ErrNotOwner
		}
		if !p.Editable() && !staff {
			return domain.ErrNotEditable
		}
		if err := r.Projects.Delete(ctx, p.ID); err != nil {
			return err
		}
		msg := fmt.Sprintf("Le projet « %s » a été supprimé.", p.Title)
		return notification.Send(ctx, r.Notifications, p.EntrepreneurID, domainNotification.TypeProjectDeleted, "Projet supprimé", msg,
			domainNotification.WithSender(actor.ID), domainNotification.WithIcon("fa-trash", "bg-danger"))
	})
	return access.NotFound(err, domain.ErrNotFound)
}

// Stats summarises the entrepreneur's dashboard.
func (u *Usecase) Stats(ctx context.Context, actorID string) (*domain.Stats, error) {
	var out *domain.Stats
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.ActorWith(ctx, r.Users, actorID, user.CapSubmitProject)
		if err != nil {
			return err
		}
		list, err := r.Projects.ListByEntrepreneur(ctx, actor.ID)
		if err != nil {
			return err
		}
		s := &domain.Stats{}
		for i := range list {
			s.Add(&list[i])
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func transition(p *domain.Project, to domain.Status) error {
	if !domain.CanTransition(p.Status, to) {
		return fmt.Errorf("%s -> %s: %w", p.Status, to, domain.ErrInvalidTransition)
	}
	p.Status = to
	return nil
}

func involved(actor *user.User, p *domain.Project) bool {
	return p.EntrepreneurID == actor.ID || (p.SubmittedByID != nil && *p.SubmittedByID == actor.ID)
}

func derivedTotal(ctx context.Context, r uow.Repos, projectID uint64) (decimal.Decimal, error) {
	donations, err := r.Campaigns.SumCollectedByProject(ctx, projectID)
	if err != nil {
		return decimal.Zero, err
	}
	loans, err := r.LoanCampaigns.SumCollectedByProject(ctx, projectID)
	if err != nil {
		return decimal.Zero, err
	}
	return donations.Add(loans), nil
}

func toList(list []domain.Project) []ProjectDTO {
	out := make([]ProjectDTO, 0, len(list))
	for i := range list {
		out = append(out, toDTO(&list[i], list[i].CollectedAmount))
	}
	return out
}

func toDTO(p *domain.Project, collected decimal.Decimal) ProjectDTO {
	return ProjectDTO{
		ProjectID:        p.ProjectID,
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		TargetAmount:     p.TargetAmount,
		CollectedAmount:  collected,
		Progress:         funding.Progress(collected, p.TargetAmount),
		Status:           string(p.Status),
		Editable:         p.Editable(),
		Deadline:         p.Deadline,
		CreatedAt:        p.CreatedAt,
	}
}
