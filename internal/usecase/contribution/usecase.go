package contribution

import (
	"context"
	"fmt"
	"time"

	"igia-backend/internal/domain/campaign"
	domain "igia-backend/internal/domain/contribution"
	"igia-backend/internal/domain/funding"
	domainNotification "igia-backend/internal/domain/notification"
	"igia-backend/internal/domain/project"
	"igia-backend/internal/domain/uow"
	"igia-backend/internal/domain/user"
	"igia-backend/internal/usecase/access"
	fundingUsecase "igia-backend/internal/usecase/funding"
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

// target is the campaign or loan campaign a contribution points at.
type target struct {
	campaign *campaign.Campaign
	loan     *campaign.LoanCampaign
}

func (t target) projectID() uint64 {
	if t.loan != nil {
		return t.loan.ProjectID
	}
	return t.campaign.ProjectID
}

func (t target) title() string {
	if t.loan != nil {
		return t.loan.Title
	}
	return t.campaign.Title
}

func (t target) active(now time.Time) bool {
	if t.loan != nil {
		return t.loan.IsActive(now)
	}
	return t.campaign.IsActive(now)
}

// Create records a pledge. Non-staff pledges always start pending; a completed one
// (staff entry) refreshes the campaign and project totals in the same tx.
func (u *Usecase) Create(ctx context.Context, actorID string, in CreateInput) (*ResultDTO, error) {
	var out *ResultDTO
	now := u.now()
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.ActorWith(ctx, r.Users, actorID, user.CapContribute)
		if err != nil {
			return err
		}

		t, err := resolveTarget(ctx, r, in.CampaignID, in.LoanCampaignID)
		if err != nil {
			return err
		}

		c := &domain.Contribution{
			ContributionID:   id.NewID32(),
			InvestorID:       &actor.ID,
			ContributorName:  in.ContributorName,
			ContributorEmail: in.ContributorEmail,
			Amount:           in.Amount,
			Type:             domain.Type(in.Type),
			PaymentMethod:    domain.PaymentMethod(in.PaymentMethod),
			TransactionID:    in.TransactionID,
			PaymentStatus:    domain.PaymentStatus(in.PaymentStatus),
		}
		if t.campaign != nil {
			c.CampaignID = &t.campaign.ID
		}
		if t.loan != nil {
			c.LoanCampaignID = &t.loan.ID
		}
		if c.Type == "" {
			c.Type = domain.TypeFor(c.LoanCampaignID != nil)
		}
		if c.PaymentStatus == "" {
			c.PaymentStatus = domain.StatusPending
		}
		if c.ContributorName == "" {
			c.ContributorName = actor.DisplayName()
		}
		if c.ContributorEmail == "" {
			c.ContributorEmail = actor.Email
		}
		if err := c.Validate(); err != nil {
			return err
		}
		switch c.PaymentStatus {
		case domain.StatusPending, domain.StatusCompleted, domain.StatusFailed:
		default:
			return fmt.Errorf("payment status %q: %w", c.PaymentStatus, domain.ErrInvalidTransition)
		}
		// only staff record a settled payment; other pledges wait for UpdateStatus
		if !actor.Can(user.CapModerate) {
			c.PaymentStatus = domain.StatusPending
		}
		if !t.active(now) {
			return domain.ErrCampaignInactive
		}

		// project row before any campaign or contribution row
		p, err := r.Projects.GetByIDForUpdate(ctx, t.projectID())
		if err != nil {
			return access.NotFound(err, project.ErrNotFound)
		}
		if err := r.Contributions.Create(ctx, c); err != nil {
			return err
		}

		res := &ResultDTO{}
		if c.IsPaid() {
			totals, err := fundingUsecase.Recompute(ctx, r, c, now)
			if err != nil {
				return err
			}
			res.Totals = totalsDTO(totals)
		}

		if err := notifyContribution(ctx, r, actor, p, c, t); err != nil {
			return err
		}
		res.Contribution = toDTO(c, t, p)
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus moves a pending contribution to completed or failed (staff only).
func (u *Usecase) UpdateStatus(ctx context.Context, actorID, contributionID, status string) (*ResultDTO, error) {
	var out *ResultDTO
	now := u.now()
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := access.ActorWith(ctx, r.Users, actorID, user.CapModerate); err != nil {
			return err
		}
		c, err := r.Contributions.GetByContributionID(ctx, contributionID)
		if err != nil {
			return access.NotFound(err, domain.ErrNotFound)
		}
		t, err := loadTarget(ctx, r, c)
		if err != nil {
			return err
		}
		p, err := r.Projects.GetByIDForUpdate(ctx, t.projectID())
		if err != nil {
			return access.NotFound(err, project.ErrNotFound)
		}
		if c, err = r.Contributions.GetByContributionIDForUpdate(ctx, contributionID); err != nil {
			return access.NotFound(err, domain.ErrNotFound)
		}

		to := domain.PaymentStatus(status)
		if !domain.CanTransition(c.PaymentStatus, to) {
			return fmt.Errorf("%s -> %s: %w", c.PaymentStatus, to, domain.ErrInvalidTransition)
		}
		c.PaymentStatus = to
		if err := r.Contributions.Save(ctx, c); err != nil {
			return err
		}

		res := &ResultDTO{}
		if c.IsPaid() {
			totals, err := fundingUsecase.Recompute(ctx, r, c, now)
			if err != nil {
				return err
			}
			res.Totals = totalsDTO(totals)
		}
		res.Contribution = toDTO(c, t, p)
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a contribution (staff only). Cached totals are left as they are.
func (u *Usecase) Delete(ctx context.Context, actorID, contributionID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := access.ActorWith(ctx, r.Users, actorID, user.CapModerate); err != nil {
			return err
		}
		c, err := r.Contributions.GetByContributionIDForUpdate(ctx, contributionID)
		if err != nil {
			return access.NotFound(err, domain.ErrNotFound)
		}
		return r.Contributions.Delete(ctx, c.ID)
	})
}

// Get is visible to the investor who made it, the project's entrepreneur and staff.
func (u *Usecase) Get(ctx context.Context, actorID, contributionID string) (*ContributionDTO, error) {
	var out *ContributionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.Actor(ctx, r.Users, actorID)
		if err != nil {
			return err
		}
		c, err := r.Contributions.GetByContributionID(ctx, contributionID)
		if err != nil {
			return access.NotFound(err, domain.ErrNotFound)
		}
		t, err := loadTarget(ctx, r, c)
		if err != nil {
			return err
		}
		p, err := r.Projects.GetByID(ctx, t.projectID())
		if err != nil {
			return access.NotFound(err, project.ErrNotFound)
		}
		owner := c.InvestorID != nil && *c.InvestorID == actor.ID
		if !owner && p.EntrepreneurID != actor.ID && !actor.Can(user.CapModerate) {
			return domain.ErrNotFound
		}
		dto := toDTO(c, t, p)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListMine returns the investor's contributions with their totals.
func (u *Usecase) ListMine(ctx context.Context, actorID string) (*ListDTO, error) {
	var out *ListDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.ActorWith(ctx, r.Users, actorID, user.CapContribute)
		if err != nil {
			return err
		}
		list, err := r.Contributions.ListByInvestor(ctx, actor.ID)
		if err != nil {
			return err
		}
		items, stats, err := toList(ctx, r, list)
		if err != nil {
			return err
		}
		out = &ListDTO{Items: items, Stats: stats}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListForCampaign lists a campaign's (or loan campaign's) contributions for its entrepreneur or staff.
func (u *Usecase) ListForCampaign(ctx context.Context, actorID, campaignID string, loan bool) (*ListDTO, error) {
	var out *ListDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.Actor(ctx, r.Users, actorID)
		if err != nil {
			return err
		}
		var t target
		if loan {
			t, err = resolveTarget(ctx, r, "", campaignID)
		} else {
			t, err = resolveTarget(ctx, r, campaignID, "")
		}
		if err != nil {
			return err
		}
		p, err := r.Projects.GetByID(ctx, t.projectID())
		if err != nil {
			return access.NotFound(err, project.ErrNotFound)
		}
		if p.EntrepreneurID != actor.ID && !actor.Can(user.CapModerate) {
			return user.ErrForbidden
		}

		var list []domain.Contribution
		if loan {
			list, err = r.Contributions.ListByLoanCampaign(ctx, t.loan.ID)
		} else {
			list, err = r.Contributions.ListByCampaign(ctx, t.campaign.ID)
		}
		if err != nil {
			return err
		}
		out = &ListDTO{Items: make([]ContributionDTO, 0, len(list))}
		for i := range list {
			out.Items = append(out.Items, toDTO(&list[i], t, p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func resolveTarget(ctx context.Context, r uow.Repos, campaignID, loanCampaignID string) (target, error) {
	switch {
	case campaignID != "" && loanCampaignID != "":
		return target{}, domain.ErrBothCampaigns
	case campaignID == "" && loanCampaignID == "":
		return target{}, domain.ErrNoCampaign
	case campaignID != "":
		k, err := r.Campaigns.GetByCampaignID(ctx, campaignID)
		if err != nil {
			return target{}, access.NotFound(err, campaign.ErrNotFound)
		}
		return target{campaign: k}, nil
	default:
		l, err := r.LoanCampaigns.GetByLoanCampaignID(ctx, loanCampaignID)
		if err != nil {
			return target{}, access.NotFound(err, campaign.ErrNotFound)
		}
		return target{loan: l}, nil
	}
}

func loadTarget(ctx context.Context, r uow.Repos, c *domain.Contribution) (target, error) {
	switch {
	case c.CampaignID != nil:
		k, err := r.Campaigns.GetByID(ctx, *c.CampaignID)
		if err != nil {
			return target{}, access.NotFound(err, campaign.ErrNotFound)
		}
		return target{campaign: k}, nil
	case c.LoanCampaignID != nil:
		l, err := r.LoanCampaigns.GetByID(ctx, *c.LoanCampaignID)
		if err != nil {
			return target{}, access.NotFound(err, campaign.ErrNotFound)
		}
		return target{loan: l}, nil
	}
	return target{}, domain.ErrNoCampaign
}

// toList resolves each contribution's campaign and project once and tallies investor stats.
func toList(ctx context.Context, r uow.Repos, list []domain.Contribution) ([]ContributionDTO, *domain.InvestorStats, error) {
	targets := map[string]target{}
	projects := map[uint64]*project.Project{}
	stats := &domain.InvestorStats{}
	items := make([]ContributionDTO, 0, len(list))
	for i := range list {
		c := &list[i]
		key := targetKey(c)
		t, ok := targets[key]
		if !ok {
			var err error
			if t, err = loadTarget(ctx, r, c); err != nil {
				return nil, nil, err
			}
			targets[key] = t
		}
		p, ok := projects[t.projectID()]
		if !ok {
			var err error
			if p, err = r.Projects.GetByID(ctx, t.projectID()); err != nil {
				return nil, nil, access.NotFound(err, project.ErrNotFound)
			}
			projects[p.ID] = p
		}
		stats.Add(c)
		items = append(items, toDTO(c, t, p))
	}
	return items, stats, nil
}

func targetKey(c *domain.Contribution) string {
	if c.LoanCampaignID != nil {
		return fmt.Sprintf("l%d", *c.LoanCampaignID)
	}
	if c.CampaignID != nil {
		return fmt.Sprintf("c%d", *c.CampaignID)
	}
	return ""
}

func notifyContribution(ctx context.Context, r uow.Repos, actor *user.User, p *project.Project, c *domain.Contribution, t target) error {
	opts := []domainNotification.Option{
		domainNotification.WithSender(actor.ID),
		domainNotification.WithProject(p.ID),
		domainNotification.WithContribution(c.ID),
	}
	typ, title := domainNotification.TypeCampaignContribution, "Nouvelle contribution"
	if t.loan != nil {
		typ, title = domainNotification.TypeLoanContribution, "Nouveau prêt"
		opts = append(opts, domainNotification.WithLoan(t.loan.ID), domainNotification.WithIcon("fa-hand-holding-usd", "bg-info"))
	} else {
		opts = append(opts, domainNotification.WithCampaign(t.campaign.ID), domainNotification.WithIcon("fa-donate", "bg-success"))
	}
	msg := fmt.Sprintf("%s a contribué %s à « %s ».", c.ContributorName, c.Amount.StringFixed(2), t.title())
	return notification.Send(ctx, r.Notifications, p.EntrepreneurID, typ, title, msg, opts...)
}

func totalsDTO(res *fundingUsecase.Result) *CampaignTotalsDTO {
	return &CampaignTotalsDTO{
		CollectedAmount:  res.Collected,
		Progress:         funding.Progress(res.Collected, res.Goal),
		ProjectCollected: res.ProjectCollected,
		GoalReached:      res.GoalReached,
	}
}

func toDTO(c *domain.Contribution, t target, p *project.Project) ContributionDTO {
	dto := ContributionDTO{
		ContributionID:   c.ContributionID,
		ContributorName:  c.ContributorName,
		ContributorEmail: c.ContributorEmail,
		Amount:           c.Amount,
		Type:             string(c.Type),
		PaymentMethod:    string(c.PaymentMethod),
		TransactionID:    c.TransactionID,
		PaymentStatus:    string(c.PaymentStatus),
		ProjectShare:     funding.Progress(c.Amount, p.TargetAmount),
		CreatedAt:        c.CreatedAt,
	}
	if t.campaign != nil {
		dto.CampaignID = t.campaign.CampaignID
	}
	if t.loan != nil {
		dto.LoanCampaignID = t.loan.LoanCampaignID
	}
	return dto
}
