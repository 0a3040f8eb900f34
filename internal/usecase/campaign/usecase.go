package campaign

import (
	"context"
	"fmt"
	"time"

	domain "igia-backend/internal/domain/campaign"
	"igia-backend/internal/domain/project"
	"igia-backend/internal/domain/uow"
	"igia-backend/internal/domain/user"
	"igia-backend/internal/usecase/access"
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

func (u *Usecase) Create(ctx context.Context, actorID string, in CreateInput) (*CampaignDTO, error) {
	var out *CampaignDTO
	now := u.now()
	err := u.uow.WithinProjectTx(ctx, in.ProjectID, func(r uow.Repos, p *project.Project) error {
		actor, err := canManage(ctx, r, actorID, p)
		if err != nil {
			return err
		}
		start, err := checkInput(in, p, now)
		if err != nil {
			return err
		}
		c := &domain.Campaign{
			CampaignID:      id.NewID32(),
			ProjectID:       p.ID,
			CreatedByID:     &actor.ID,
			Title:           in.Title,
			Description:     in.Description,
			GoalAmount:      in.GoalAmount,
			CollectedAmount: decimal.Zero,
			Status:          initialStatus(in.Activate),
			StartDate:       start,
			EndDate:         in.EndDate,
		}
		if err := r.Campaigns.Create(ctx, c); err != nil {
			return err
		}
		dto := toDTO(c, p, now)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, access.NotFound(err, project.ErrNotFound)
	}
	return out, nil
}

func (u *Usecase) CreateLoan(ctx context.Context, actorID string, in CreateLoanInput) (*LoanCampaignDTO, error) {
	if in.InterestRate.IsNegative() || in.RepaymentDuration == 0 {
		return nil, domain.ErrInvalidLoanTerms
	}
	var out *LoanCampaignDTO
	now := u.now()
	err := u.uow.WithinProjectTx(ctx, in.ProjectID, func(r uow.Repos, p *project.Project) error {
		actor, err := canManage(ctx, r, actorID, p)
		if err != nil {
			return err
		}
		start, err := checkInput(in.CreateInput, p, now)
		if err != nil {
			return err
		}
		l := &domain.LoanCampaign{
			LoanCampaignID:    id.NewID32(),
			ProjectID:         p.ID,
			CreatedByID:       &actor.ID,
			Title:             in.Title,
			Description:       in.Description,
			GoalAmount:        in.GoalAmount,
			CollectedAmount:   decimal.Zero,
			InterestRate:      in.InterestRate,
			RepaymentDuration: in.RepaymentDuration,
			Status:            initialStatus(in.Activate),
			StartDate:         start,
			EndDate:           in.EndDate,
		}
		if err := r.LoanCampaigns.Create(ctx, l); err != nil {
			return err
		}
		dto := toLoanDTO(l, p, now)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, access.NotFound(err, project.ErrNotFound)
	}
	return out, nil
}

// ChangeStatus drives draft -> active <-> paused -> completed|failed.
func (u *Usecase) ChangeStatus(ctx context.Context, actorID, campaignID, status string) (*CampaignDTO, error) {
	var out *CampaignDTO
	now := u.now()
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Campaigns.GetByCampaignIDForUpdate(ctx, campaignID)
		if err != nil {
			return access.NotFound(err, domain.ErrNotFound)
		}
		p, err := r.Projects.GetByID(ctx, c.ProjectID)
		if err != nil {
			return access.NotFound(err, project.ErrNotFound)
		}
		if _, err := canManage(ctx, r, actorID, p); err != nil {
			return err
		}
		to := domain.Status(status)
		if !domain.CanTransition(c.Status, to) {
			return fmt.Errorf("%s -> %s: %w", c.Status, to, domain.ErrInvalidTransition)
		}
		c.Status = to
		if err := r.Campaigns.Save(ctx, c); err != nil {
			return err
		}
		dto := toDTO(c, p, now)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) ChangeLoanStatus(ctx context.Context, actorID, loanCampaignID, status string) (*LoanCampaignDTO, error) {
	var out *LoanCampaignDTO
	now := u.now()
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.LoanCampaigns.GetByLoanCampaignIDForUpdate(ctx, loanCampaignID)
		if err != nil {
			return access.NotFound(err, domain.ErrNotFound)
		}
		p, err := r.Projects.GetByID(ctx, l.ProjectID)
		if err != nil {
			return access.NotFound(err, project.ErrNotFound)
		}
		if _, err := canManage(ctx, r, actorID, p); err != nil {
			return err
		}
		to := domain.Status(status)
		if !domain.CanTransition(l.Status, to) {
			return fmt.Errorf("%s -> %s: %w", l.Status, to, domain.ErrInvalidTransition)
		}
		l.Status = to
		if err := r.LoanCampaigns.Save(ctx, l); err != nil {
			return err
		}
		dto := toLoanDTO(l, p, now)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, campaignID string) (*CampaignDTO, error) {
	var out *CampaignDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Campaigns.GetByCampaignID(ctx, campaignID)
		if err != nil {
			return access.NotFound(err, domain.ErrNotFound)
		}
		p, err := r.Projects.GetByID(ctx, c.ProjectID)
		if err != nil {
			return access.NotFound(err, project.ErrNotFound)
		}
		dto := toDTO(c, p, u.now())
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) GetLoan(ctx context.Context, loanCampaignID string) (*LoanCampaignDTO, error) {
	var out *LoanCampaignDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.LoanCampaigns.GetByLoanCampaignID(ctx, loanCampaignID)
		if err != nil {
			return access.NotFound(err, domain.ErrNotFound)
		}
		p, err := r.Projects.GetByID(ctx, l.ProjectID)
		if err != nil {
			return access.NotFound(err, project.ErrNotFound)
		}
		dto := toLoanDTO(l, p, u.now())
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListActive returns campaigns open for contributions right now.
func (u *Usecase) ListActive(ctx context.Context) ([]CampaignDTO, error) {
	var out []CampaignDTO
	now := u.now()
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		list, err := r.Campaigns.ListActive(ctx, now)
		if err != nil {
			return err
		}
		projects := newProjectCache(r)
		out = make([]CampaignDTO, 0, len(list))
		for i := range list {
			p, err := projects.get(ctx, list[i].ProjectID)
			if err != nil {
				return err
			}
			out = append(out, toDTO(&list[i], p, now))
		}
		return nil
	})
	return out, err
}

func (u *Usecase) ListActiveLoans(ctx context.Context) ([]LoanCampaignDTO, error) {
	var out []LoanCampaignDTO
	now := u.now()
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		list, err := r.LoanCampaigns.ListActive(ctx, now)
		if err != nil {
			return err
		}
		projects := newProjectCache(r)
		out = make([]LoanCampaignDTO, 0, len(list))
		for i := range list {
			p, err := projects.get(ctx, list[i].ProjectID)
			if err != nil {
				return err
			}
			out = append(out, toLoanDTO(&list[i], p, now))
		}
		return nil
	})
	return out, err
}

// ListForProject returns both campaign kinds of one project.
func (u *Usecase) ListForProject(ctx context.Context, projectID string) (*ProjectCampaignsDTO, error) {
	var out *ProjectCampaignsDTO
	now := u.now()
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Projects.GetByProjectID(ctx, projectID)
		if err != nil {
			return access.NotFound(err, project.ErrNotFound)
		}
		cs, err := r.Campaigns.ListByProject(ctx, p.ID)
		if err != nil {
			return err
		}
		ls, err := r.LoanCampaigns.ListByProject(ctx, p.ID)
		if err != nil {
			return err
		}
		res := &ProjectCampaignsDTO{
			Campaigns:     make([]CampaignDTO, 0, len(cs)),
			LoanCampaigns: make([]LoanCampaignDTO, 0, len(ls)),
		}
		for i := range cs {
			res.Campaigns = append(res.Campaigns, toDTO(&cs[i], p, now))
		}
		for i := range ls {
			res.LoanCampaigns = append(res.LoanCampaigns, toLoanDTO(&ls[i], p, now))
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// canManage admits staff and the project's entrepreneur.
func canManage(ctx context.Context, r uow.Repos, actorID string, p *project.Project) (*user.User, error) {
	actor, err := access.Actor(ctx, r.Users, actorID)
	if err != nil {
		return nil, err
	}
	if p.EntrepreneurID != actor.ID && !actor.Can(user.CapModerate) {
		return nil, user.ErrForbidden
	}
	return actor, nil
}

func checkInput(in CreateInput, p *project.Project, now time.Time) (time.Time, error) {
	if p.Status != project.StatusApproved {
		return time.Time{}, domain.ErrProjectNotOpen
	}
	if !in.GoalAmount.IsPositive() {
		return time.Time{}, domain.ErrInvalidGoal
	}
	start := now
	if in.StartDate != nil {
		start = in.StartDate.UTC()
	}
	if !domain.ValidDates(start, in.EndDate) {
		return time.Time{}, domain.ErrInvalidDates
	}
	return start, nil
}

func initialStatus(activate bool) domain.Status {
	if activate {
		return domain.StatusActive
	}
	return domain.StatusDraft
}

type projectCache struct {
	r    uow.Repos
	byID map[uint64]*project.Project
}

func newProjectCache(r uow.Repos) *projectCache {
	return &projectCache{r: r, byID: map[uint64]*project.Project{}}
}

func (c *projectCache) get(ctx context.Context, id uint64) (*project.Project, error) {
	if p, ok := c.byID[id]; ok {
		return p, nil
	}
	p, err := c.r.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, access.NotFound(err, project.ErrNotFound)
	}
	c.byID[id] = p
	return p, nil
}

func toDTO(c *domain.Campaign, p *project.Project, now time.Time) CampaignDTO {
	return CampaignDTO{
		CampaignID:      c.CampaignID,
		ProjectID:       p.ProjectID,
		Title:           c.Title,
		Description:     c.Description,
		GoalAmount:      c.GoalAmount,
		CollectedAmount: c.CollectedAmount,
		Progress:        c.Progress(),
		Status:          string(c.Status),
		IsActive:        c.IsActive(now),
		RemainingDays:   c.RemainingDays(now),
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		GoalReachedAt:   c.GoalReachedAt,
	}
}

func toLoanDTO(l *domain.LoanCampaign, p *project.Project, now time.Time) LoanCampaignDTO {
	return LoanCampaignDTO{
		LoanCampaignID:    l.LoanCampaignID,
		ProjectID:         p.ProjectID,
		Title:             l.Title,
		Description:       l.Description,
		GoalAmount:        l.GoalAmount,
		CollectedAmount:   l.CollectedAmount,
		Progress:          l.Progress(),
		InterestRate:      l.InterestRate,
		RepaymentDuration: l.RepaymentDuration,
		TotalInterest:     l.TotalInterest(),
		Status:            string(l.Status),
		IsActive:          l.IsActive(now),
		RemainingDays:     l.RemainingDays(now),
		StartDate:         l.StartDate,
		EndDate:           l.EndDate,
		GoalReachedAt:     l.GoalReachedAt,
	}
}
