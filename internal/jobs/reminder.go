package jobs

import (
	"context"
	"errors"

	"igia-backend/internal/domain/user"
	"igia-backend/internal/infrastructure/mail"

	"go.uber.org/zap"
)

const (
	inactiveSubject = "Votre compte est désactivé"
	inactiveBody    = "Bonjour, votre compte a été désactivé pour inactivité prolongée."
)

// InactiveReminder mails every deactivated entrepreneur account.
type InactiveReminder struct {
	users  user.Repository
	sender mail.Sender
	log    *zap.Logger
}

func NewInactiveReminder(users user.Repository, sender mail.Sender, log *zap.Logger) *InactiveReminder {
	return &InactiveReminder{users: users, sender: sender, log: log}
}

// Run returns how many mails were queued. A failed send does not stop the batch.
func (j *InactiveReminder) Run(ctx context.Context) (int, error) {
	list, err := j.users.ListInactiveEntrepreneurs(ctx)
	if err != nil {
		return 0, err
	}
	var (
		sent int
		errs []error
	)
	for i := range list {
		u := &list[i]
		if u.Email == "" {
			continue
		}
		m := mail.Mail{To: []string{u.Email}, Subject: inactiveSubject, Body: inactiveBody}
		if err := j.sender.Send(ctx, m); err != nil {
			j.log.Warn("inactive reminder not queued", zap.String("user_id", u.UserID), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		sent++
	}
	j.log.Info("inactive reminders queued", zap.Int("sent", sent), zap.Int("candidates", len(list)))
	return sent, errors.Join(errs...)
}

// Job adapts Run to the scheduler signature.
func (j *InactiveReminder) Job(ctx context.Context) error {
	_, err := j.Run(ctx)
	return err
}
