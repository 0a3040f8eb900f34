package payment

import (
	"context"
	"fmt"
	"time"

	domainNotification "igia-backend/internal/domain/notification"
	domain "igia-backend/internal/domain/payment"
	"igia-backend/internal/domain/project"
	"igia-backend/internal/domain/uow"
	"igia-backend/internal/domain/user"
	"igia-backend/internal/usecase/access"
	"igia-backend/internal/usecase/notification"
	"igia-backend/pkg/id"
)

type Usecase struct {
	uow uow.UnitOfWork
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

// SubmitProof attaches the transfer proof to the project's submission fee payment.
func (u *Usecase) SubmitProof(ctx context.Context, actorID, projectID string, in ProofInput) (*PaymentDTO, error) {
	var out *PaymentDTO
	err := u.uow.WithinProjectTx(ctx, projectID, func(r uow.Repos, p *project.Project) error {
		actor, err := access.Actor(ctx, r.Users, actorID)
		if err != nil {
			return err
		}
		if p.EntrepreneurID != actor.ID && (p.SubmittedByID == nil || *p.SubmittedByID != actor.ID) {
			return project.ErrNotOwner
		}
		if p.Status != project.StatusPendingPayment {
			return fmt.Errorf("proof on %s project: %w", p.Status, project.ErrInvalidTransition)
		}
		pay, err := r.Payments.GetLatestByProject(ctx, p.ID, domain.TypeProjectSubmission)
		if err != nil {
			return access.NotFound(err, domain.ErrNotFound)
		}
		if pay.IsSuccessful {
			return domain.ErrAlreadyValidated
		}
		if err := applyProof(pay, in); err != nil {
			return err
		}
		if err := r.Payments.Save(ctx, pay); err != nil {
			return err
		}
		dto := toDTO(pay, p.ProjectID)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, access.NotFound(err, project.ErrNotFound)
	}
	return out, nil
}

// Validate confirms a submission payment; the project then enters review.
func (u *Usecase) Validate(ctx context.Context, actorID, paymentID string) (*PaymentDTO, error) {
	var out *PaymentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.ActorWith(ctx, r.Users, actorID, user.CapModerate)
		if err != nil {
			return err
		}
		pay, err := r.Payments.GetByPaymentID(ctx, paymentID)
		if err != nil {
			return access.NotFound(err, domain.ErrNotFound)
		}
		// project row before the payment row
		var p *project.Project
		if pay.ProjectID != nil {
			if p, err = r.Projects.GetByIDForUpdate(ctx, *pay.ProjectID); err != nil {
				return access.NotFound(err, project.ErrNotFound)
			}
		}
		if pay, err = r.Payments.GetByPaymentIDForUpdate(ctx, paymentID); err != nil {
			return access.NotFound(err, domain.ErrNotFound)
		}
		if pay.IsSuccessful {
			return domain.ErrAlreadyValidated
		}
		if pay.ProofURL == "" {
			return domain.ErrProofRequired
		}
		pay.IsSuccessful = true
		if err := r.Payments.Save(ctx, pay); err != nil {
			return err
		}

		opts := []domainNotification.Option{domainNotification.WithSender(actor.ID), domainNotification.WithIcon("fa-check-circle", "bg-success")}
		msg := fmt.Sprintf("Votre paiement de %s a été validé.", pay.Amount.StringFixed(2))
		var publicID string
		if p != nil {
			if p.Status == project.StatusPendingPayment {
				p.Status = project.StatusPending
				if err := r.Projects.Save(ctx, p); err != nil {
					return err
				}
			}
			publicID = p.ProjectID
			msg = fmt.Sprintf("Le paiement de votre projet « %s » a été validé. Il est maintenant en cours d'examen.", p.Title)
			opts = append(opts, domainNotification.WithProject(p.ID))
		}
		if err := notification.Send(ctx, r.Notifications, pay.UserID, domainNotification.TypePaymentValidated, "Paiement validé", msg, opts...); err != nil {
			return err
		}
		dto := toDTO(pay, publicID)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reject refuses the proof and clears it so a new one can be sent.
func (u *Usecase) Reject(ctx context.Context, actorID, paymentID, reason string) (*PaymentDTO, error) {
	var out *PaymentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.ActorWith(ctx, r.Users, actorID, user.CapModerate)
		if err != nil {
			return err
		}
		pay, err := r.Payments.GetByPaymentIDForUpdate(ctx, paymentID)
		if err != nil {
			return access.NotFound(err, domain.ErrNotFound)
		}
		if pay.IsSuccessful {
			return domain.ErrAlreadyValidated
		}
		pay.ProofURL, pay.TransactionCode = "", ""
		if err := r.Payments.Save(ctx, pay); err != nil {
			return err
		}

		msg := "Votre preuve de paiement a été refusée. Merci d'en soumettre une nouvelle."
		if reason != "" {
			msg += " Motif : " + reason
		}
		opts := []domainNotification.Option{domainNotification.WithSender(actor.ID), domainNotification.WithIcon("fa-times-circle", "bg-danger"), domainNotification.Important()}
		var publicID string
		if pay.ProjectID != nil {
			p, err := r.Projects.GetByID(ctx, *pay.ProjectID)
			if err != nil {
				return access.NotFound(err, project.ErrNotFound)
			}
			publicID = p.ProjectID
			opts = append(opts, domainNotification.WithProject(p.ID))
		}
		if err := notification.Send(ctx, r.Notifications, pay.UserID, domainNotification.TypePaymentFailed, "Paiement refusé", msg, opts...); err != nil {
			return err
		}
		dto := toDTO(pay, publicID)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) ListAwaiting(ctx context.Context, actorID string) ([]PaymentDTO, error) {
	var out []PaymentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := access.ActorWith(ctx, r.Users, actorID, user.CapModerate); err != nil {
			return err
		}
		list, err := r.Payments.ListAwaitingValidation(ctx)
		if err != nil {
			return err
		}
		out = make([]PaymentDTO, 0, len(list))
		for i := range list {
			var publicID string
			if list[i].ProjectID != nil {
				p, err := r.Projects.GetByID(ctx, *list[i].ProjectID)
				if err != nil {
					return access.NotFound(err, project.ErrNotFound)
				}
				publicID = p.ProjectID
			}
			out = append(out, toDTO(&list[i], publicID))
		}
		return nil
	})
	return out, err
}

// SubmitSubscription records an intermediaire's subscription proof at their country's fee.
func (u *Usecase) SubmitSubscription(ctx context.Context, actorID string, in ProofInput) (*SubscriptionDTO, error) {
	var out *SubscriptionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.ActorWith(ctx, r.Users, actorID, user.CapRepresent)
		if err != nil {
			return err
		}
		if in.ProofURL == "" {
			return domain.ErrProofRequired
		}
		if actor.CountryID == nil {
			return domain.ErrCountryRequired
		}
		country, err := r.Reference.GetCountryByID(ctx, *actor.CountryID)
		if err != nil {
			return access.NotFound(err, domain.ErrCountryRequired)
		}
		sub := &domain.IntermediairePayment{
			PaymentID:       id.NewID32(),
			IntermediaireID: actor.ID,
			Amount:          country.IntermediaireFee,
			CurrencyID:      &country.CurrencyID,
			ProofURL:        in.ProofURL,
			Status:          domain.SubscriptionPending,
		}
		if err := r.Subscriptions.Create(ctx, sub); err != nil {
			return err
		}
		dto := toSubscriptionDTO(sub)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateSubscription marks the intermediaire's profile as paid.
func (u *Usecase) ValidateSubscription(ctx context.Context, actorID, paymentID string) (*SubscriptionDTO, error) {
	var out *SubscriptionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.ActorWith(ctx, r.Users, actorID, user.CapModerate)
		if err != nil {
			return err
		}
		sub, err := r.Subscriptions.GetByPaymentIDForUpdate(ctx, paymentID)
		if err != nil {
			return access.NotFound(err, domain.ErrNotFound)
		}
		if sub.Status == domain.SubscriptionValidated {
			return domain.ErrAlreadyValidated
		}
		sub.Status = domain.SubscriptionValidated
		if err := r.Subscriptions.Save(ctx, sub); err != nil {
			return err
		}

		profile, err := r.Profiles.GetIntermediaire(ctx, sub.IntermediaireID)
		if err != nil {
			return access.NotFound(err, user.ErrNotFound)
		}
		paidAt := u.now()
		profile.SubscriptionPaid = true
		profile.SubscriptionDate = &paidAt
		if err := r.Profiles.SaveIntermediaire(ctx, profile); err != nil {
			return err
		}

		if err := notification.Send(ctx, r.Notifications, sub.IntermediaireID, domainNotification.TypePaymentValidated,
			"Abonnement validé", "Votre abonnement intermédiaire est actif.",
			domainNotification.WithSender(actor.ID), domainNotification.WithIcon("fa-check-circle", "bg-success")); err != nil {
			return err
		}
		dto := toSubscriptionDTO(sub)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) ListPendingSubscriptions(ctx context.Context, actorID string) ([]SubscriptionDTO, error) {
	var out []SubscriptionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := access.ActorWith(ctx, r.Users, actorID, user.CapModerate); err != nil {
			return err
		}
		list, err := r.Subscriptions.ListPending(ctx)
		if err != nil {
			return err
		}
		out = make([]SubscriptionDTO, 0, len(list))
		for i := range list {
			out = append(out, toSubscriptionDTO(&list[i]))
		}
		return nil
	})
	return out, err
}

func applyProof(pay *domain.Payment, in ProofInput) error {
	m := domain.Method(in.Method)
	if !m.Valid() {
		return domain.ErrInvalidMethod
	}
	if in.ProofURL == "" {
		return domain.ErrProofRequired
	}
	pay.Method = m
	pay.TransactionCode = in.TransactionCode
	pay.ProofURL = in.ProofURL
	return nil
}

func toDTO(p *domain.Payment, projectID string) PaymentDTO {
	return PaymentDTO{
		PaymentID:       p.PaymentID,
		ProjectID:       projectID,
		Amount:          p.Amount,
		Type:            string(p.Type),
		Method:          string(p.Method),
		TransactionCode: p.TransactionCode,
		ProofURL:        p.ProofURL,
		IsSuccessful:    p.IsSuccessful,
		CreatedAt:       p.CreatedAt,
	}
}

func toSubscriptionDTO(p *domain.IntermediairePayment) SubscriptionDTO {
	return SubscriptionDTO{
		PaymentID: p.PaymentID,
		Amount:    p.Amount,
		ProofURL:  p.ProofURL,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}
