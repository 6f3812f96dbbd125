package service

import (
	"context"
	"time"

	"amigowallet/internal/registration/models"
)

// UserStore persists registered users.
// Error Contract: Save returns an error wrapping sentinel.ErrAlreadyUsed when
// the email or mobile number is taken (user.ErrDuplicateMobile for the latter).
type UserStore interface {
	Save(ctx context.Context, reg *models.Registration) (int, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByMobile(ctx context.Context, mobile string) (bool, error)
}

// QuestionStore serves the security question catalogue ordered by id.
type QuestionStore interface {
	ListAll(ctx context.Context) ([]models.SecurityQuestion, error)
	Exists(ctx context.Context, questionID int) (bool, error)
}

// OTPStore keeps the pending code for each email.
// Error Contract: Find returns sentinel.ErrNotFound when no code is pending or it expired.
// RecordFailure returns the number of wrong codes submitted since the last Save.
type OTPStore interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	Find(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
	RecordFailure(ctx context.Context, email string) (int, error)
}

// Notifier hands registration events to the delivery channel.
type Notifier interface {
	Publish(ctx context.Context, event models.Event) error
}
