package http

import "github.com/labstack/echo/v4"

// Handlers bundles every route handler the API serves.
type Handlers struct {
	Health        *Handler
	Accounts      *AccountHandler
	Projects      *ProjectHandler
	Campaigns     *CampaignHandler
	Contributions *ContributionHandler
	Notifications *NotificationHandler
	Messages      *MessageHandler
	Payments      *PaymentHandler
	Withdrawals   *WithdrawalHandler
}

// RegisterRoutes mounts /health and /api/v1. private runs, in order, on every
// route that needs an authenticated caller.
func RegisterRoutes(e *echo.Echo, h Handlers, private ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	v1 := e.Group("/api/v1")

	// public
	v1.POST("/auth/register", h.Accounts.Register)
	v1.POST("/auth/login", h.Accounts.Login)
	v1.GET("/countries", h.Accounts.Countries)
	v1.GET("/campaigns", h.Campaigns.ListActive)
	v1.GET("/campaigns/:campaign_id", h.Campaigns.Get)
	v1.GET("/loan-campaigns", h.Campaigns.ListActiveLoans)
	v1.GET("/loan-campaigns/:loan_campaign_id", h.Campaigns.GetLoan)
	v1.GET("/projects/:project_id/campaigns", h.Campaigns.ListForProject)

	api := v1.Group("", private...)

	api.GET("/auth/me", h.Accounts.Me)
	api.DELETE("/users/:user_id", h.Accounts.Deactivate)

	api.GET("/intermediaire/entrepreneurs", h.Accounts.ListRepresented)
	api.POST("/intermediaire/entrepreneurs", h.Accounts.CreateRepresented)
	api.POST("/intermediaire/entrepreneurs/:user_id", h.Accounts.Represent)
	api.DELETE("/intermediaire/entrepreneurs/:user_id", h.Accounts.Unrepresent)
	api.POST("/intermediaire/subscription", h.Payments.SubmitSubscription)

	api.POST("/projects", h.Projects.Submit)
	api.GET("/projects", h.Projects.List)
	api.GET("/projects/stats", h.Projects.Stats)
	api.GET("/projects/:project_id", h.Projects.Get)
	api.PATCH("/projects/:project_id", h.Projects.Update)
	api.DELETE("/projects/:project_id", h.Projects.Delete)
	api.POST("/projects/:project_id/approve", h.Projects.Approve)
	api.POST("/projects/:project_id/reject", h.Projects.Reject)
	api.POST("/projects/:project_id/complete", h.Projects.Complete)
	api.POST("/projects/:project_id/payment", h.Payments.SubmitProof)

	api.POST("/campaigns", h.Campaigns.Create)
	api.PATCH("/campaigns/:campaign_id/status", h.Campaigns.ChangeStatus)
	api.GET("/campaigns/:campaign_id/contributions", h.Contributions.ListForCampaign)
	api.POST("/loan-campaigns", h.Campaigns.CreateLoan)
	api.PATCH("/loan-campaigns/:loan_campaign_id/status", h.Campaigns.ChangeLoanStatus)
	api.GET("/loan-campaigns/:loan_campaign_id/contributions", h.Contributions.ListForLoanCampaign)

	api.POST("/contributions", h.Contributions.Create)
	api.GET("/contributions", h.Contributions.ListMine)
	api.GET("/contributions/:contribution_id", h.Contributions.Get)
	api.PATCH("/contributions/:contribution_id/status", h.Contributions.UpdateStatus)
	api.DELETE("/contributions/:contribution_id", h.Contributions.Delete)

	api.GET("/notifications", h.Notifications.List)
	api.GET("/notifications/unread-count", h.Notifications.UnreadCount)
	api.POST("/notifications/read-all", h.Notifications.MarkAllRead)
	api.POST("/notifications/:notification_id/read", h.Notifications.MarkRead)
	api.DELETE("/notifications/:notification_id", h.Notifications.Delete)

	api.POST("/messages", h.Messages.Send)
	api.GET("/messages", h.Messages.Inbox)
	api.GET("/messages/sent", h.Messages.Sent)
	api.GET("/messages/:message_id", h.Messages.Detail)
	api.POST("/messages/:message_id/reply", h.Messages.Reply)
	api.POST("/messages/:message_id/archive", h.Messages.Archive)
	api.DELETE("/messages/:message_id", h.Messages.Delete)

	// staff
	api.POST("/intermediaires/:user_id/verify", h.Accounts.VerifyIntermediaire)
	api.GET("/payments/awaiting", h.Payments.ListAwaiting)
	api.POST("/payments/:payment_id/validate", h.Payments.Validate)
	api.POST("/payments/:payment_id/reject", h.Payments.Reject)
	api.GET("/payments/subscriptions", h.Payments.ListPendingSubscriptions)
	api.POST("/payments/subscriptions/:payment_id/validate", h.Payments.ValidateSubscription)

	api.POST("/withdrawals", h.Withdrawals.Request)
	api.GET("/withdrawals", h.Withdrawals.ListMine)
	api.GET("/withdrawals/pending", h.Withdrawals.ListPending)
	api.POST("/withdrawals/:request_id/approve", h.Withdrawals.Approve)
	api.POST("/withdrawals/:request_id/reject", h.Withdrawals.Reject)
	api.POST("/withdrawals/:request_id/paid", h.Withdrawals.MarkPaid)
}
