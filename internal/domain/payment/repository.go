package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	Save(ctx context.Context, p *Payment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*Payment, error)
	GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*Payment, error)
	// GetLatestByProject returns the newest payment of the given type for a project.
	GetLatestByProject(ctx context.Context, projectID uint64, typ Type) (*Payment, error)
	// ListAwaitingValidation returns unsuccessful payments that carry a proof.
	ListAwaitingValidation(ctx context.Context) ([]Payment, error)
}

type SubscriptionRepository interface {
	Create(ctx context.Context, p *IntermediairePayment) error
	Save(ctx context.Context, p *IntermediairePayment) error
	GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*IntermediairePayment, error)
	ListPending(ctx context.Context) ([]IntermediairePayment, error)
}
