package funding

import (
	"context"
	"fmt"
	"time"

	"igia-backend/internal/domain/contribution"
	domainFunding "igia-backend/internal/domain/funding"
	domainNotification "igia-backend/internal/domain/notification"
	"igia-backend/internal/domain/uow"
	"igia-backend/internal/usecase/notification"

	"github.com/shopspring/decimal"
)

// Result reports the totals written by Recompute.
type Result struct {
	Collected        decimal.Decimal
	Goal             decimal.Decimal
	ProjectCollected decimal.Decimal
	ProjectID        uint64
	GoalReached      bool // true only the first time the goal is crossed
}

// Recompute refreshes the cached total of the campaign c belongs to, then its project's.
// It must run inside a unit of work. Locks are taken project row first, then the campaign row,
// the same order as every WithinProjectTx path.
func Recompute(ctx context.Context, r uow.Repos, c *contribution.Contribution, now time.Time) (*Result, error) {
	projectID, err := ownerOf(ctx, r, c)
	if err != nil {
		return nil, err
	}
	p, err := r.Projects.GetByIDForUpdate(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("lock project %d: %w", projectID, err)
	}

	var (
		res   *Result
		title string
	)
	if c.CampaignID != nil {
		res, title, err = recomputeCampaign(ctx, r, *c.CampaignID, now)
	} else {
		res, title, err = recomputeLoanCampaign(ctx, r, *c.LoanCampaignID, now)
	}
	if err != nil {
		return nil, err
	}

	donations, err := r.Campaigns.SumCollectedByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	loans, err := r.LoanCampaigns.SumCollectedByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	res.ProjectCollected = donations.Add(loans)
	if err := r.Projects.UpdateCollected(ctx, p.ID, res.ProjectCollected); err != nil {
		return nil, err
	}
	p.CollectedAmount = res.ProjectCollected

	if res.GoalReached {
		opts := []domainNotification.Option{
			domainNotification.WithProject(p.ID),
			domainNotification.WithIcon("fa-trophy", "bg-success"),
			domainNotification.Important(),
		}
		if c.CampaignID != nil {
			opts = append(opts, domainNotification.WithCampaign(*c.CampaignID))
		} else {
			opts = append(opts, domainNotification.WithLoan(*c.LoanCampaignID))
		}
		msg := fmt.Sprintf("La campagne « %s » a atteint son objectif de %s.", title, res.Goal.StringFixed(2))
		if err := notification.Send(ctx, r.Notifications, p.EntrepreneurID, domainNotification.TypeCampaignGoalReached, "Objectif atteint", msg, opts...); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// ownerOf reads the campaign without locking it; project_id never changes once set.
func ownerOf(ctx context.Context, r uow.Repos, c *contribution.Contribution) (uint64, error) {
	switch {
	case c.CampaignID != nil:
		k, err := r.Campaigns.GetByID(ctx, *c.CampaignID)
		if err != nil {
			return 0, fmt.Errorf("campaign %d: %w", *c.CampaignID, err)
		}
		return k.ProjectID, nil
	case c.LoanCampaignID != nil:
		l, err := r.LoanCampaigns.GetByID(ctx, *c.LoanCampaignID)
		if err != nil {
			return 0, fmt.Errorf("loan campaign %d: %w", *c.LoanCampaignID, err)
		}
		return l.ProjectID, nil
	}
	return 0, contribution.ErrNoCampaign
}

func recomputeCampaign(ctx context.Context, r uow.Repos, id uint64, now time.Time) (*Result, string, error) {
	k, err := r.Campaigns.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("lock campaign %d: %w", id, err)
	}
	total, err := r.Contributions.SumCompletedByCampaign(ctx, k.ID)
	if err != nil {
		return nil, "", err
	}
	k.CollectedAmount = total
	reached := k.GoalReachedAt == nil && domainFunding.GoalReached(total, k.GoalAmount)
	if reached {
		t := now.UTC()
		k.GoalReachedAt = &t
	}
	if err := r.Campaigns.Save(ctx, k); err != nil {
		return nil, "", err
	}
	return &Result{Collected: total, Goal: k.GoalAmount, ProjectID: k.ProjectID, GoalReached: reached}, k.Title, nil
}

func recomputeLoanCampaign(ctx context.Context, r uow.Repos, id uint64, now time.Time) (*Result, string, error) {
	k, err := r.LoanCampaigns.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("lock loan campaign %d: %w", id, err)
	}
	total, err := r.Contributions.SumCompletedByLoanCampaign(ctx, k.ID)
	if err != nil {
		return nil, "", err
	}
	k.CollectedAmount = total
	reached := k.GoalReachedAt == nil && domainFunding.GoalReached(total, k.GoalAmount)
	if reached {
		t := now.UTC()
		k.GoalReachedAt = &t
	}
	if err := r.LoanCampaigns.Save(ctx, k); err != nil {
		return nil, "", err
	}
	return &Result{Collected: total, Goal: k.GoalAmount, ProjectID: k.ProjectID, GoalReached: reached}, k.Title, nil
}
