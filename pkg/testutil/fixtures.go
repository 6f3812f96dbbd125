package testutil

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"amigowallet/internal/registration/models"
)

// RegistrationBuilder provides a fluent interface for building persisted
// registrations. Hashes are placeholder bytes; stores never inspect them.
type RegistrationBuilder struct {
	reg *models.Registration
}

// NewRegistrationBuilder creates a builder with a unique email and mobile
// number so parallel tests do not collide on unique constraints.
func NewRegistrationBuilder() *RegistrationBuilder {
	suffix := uuid.New()
	return &RegistrationBuilder{
		reg: &models.Registration{
			Name:               "Test User",
			EmailID:            fmt.Sprintf("user-%s@example.com", suffix.String()[:8]),
			MobileNumber:       fmt.Sprintf("9%09d", suffix.ID()%1_000_000_000),
			PasswordHash:       []byte("$2a$04$password-hash"),
			SecurityQuestionID: 1,
			SecurityAnswerHash: []byte("$2a$04$answer-hash"),
			CreatedAt:          time.Now().UTC().Truncate(time.Microsecond),
		},
	}
}

func (b *RegistrationBuilder) WithEmail(email string) *RegistrationBuilder {
	b.reg.EmailID = email
	return b
}

func (b *RegistrationBuilder) WithMobile(mobile string) *RegistrationBuilder {
	b.reg.MobileNumber = mobile
	return b
}

func (b *RegistrationBuilder) WithQuestion(questionID int) *RegistrationBuilder {
	b.reg.SecurityQuestionID = questionID
	return b
}

func (b *RegistrationBuilder) Build() *models.Registration {
	out := *b.reg
	return &out
}
