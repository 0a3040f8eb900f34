package withdrawal

import "context"

type Repository interface {
	Create(ctx context.Context, r *Request) error
	Save(ctx context.Context, r *Request) error
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*Request, error)
	GetPendingByProject(ctx context.Context, projectID uint64) (*Request, error)
	ListByEntrepreneur(ctx context.Context, entrepreneurID uint64) ([]Request, error)
	ListByStatus(ctx context.Context, status Status) ([]Request, error)
}
