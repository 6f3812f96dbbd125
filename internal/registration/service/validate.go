package service

import (
	"context"
	"strings"

	"amigowallet/internal/platform/tracing"
	"amigowallet/internal/registration/models"
	dErrors "amigowallet/pkg/domain-errors"
	"amigowallet/pkg/validation"
)

// candidate carries the field rules applied before any store is consulted.
// Field order is the order rules are reported in.
type candidate struct {
	Name         string `validate:"required,max=50,personname"`
	EmailID      string `validate:"required,max=255,email"`
	MobileNumber string `validate:"required,mobile"`
	Password     string `validate:"required,min=8,max=20,strongpassword"`
}

// ValidateUser checks a registration candidate and issues an OTP to the
// candidate's email. It backs the validation step; any pending code for the
// email is replaced.
//
// Errors: CodeValidation with a UserValidator.* key for field rule failures,
// CodeConflict when the email or mobile number is taken, CodeInternal when
// stores or OTP dispatch fail.
func (s *Service) ValidateUser(ctx context.Context, user *models.User) error {
	return s.validate(ctx, user, true)
}

// RevalidateUser applies the same field rules and uniqueness checks as
// ValidateUser but never issues an OTP. The register step calls it so the
// code the user already received stays pending.
func (s *Service) RevalidateUser(ctx context.Context, user *models.User) error {
	return s.validate(ctx, user, false)
}

func (s *Service) validate(ctx context.Context, user *models.User, issue bool) (err error) {
	ctx, span := s.tracer.Start(ctx, spanValidate, tracing.Bool("otp.issue", issue))
	defer func() { span.End(err) }()
	defer func() {
		if err != nil {
			s.incrementValidation("rejected")
		} else {
			s.incrementValidation("accepted")
		}
	}()

	if err := s.checkCandidate(ctx, span, user); err != nil {
		return err
	}
	if !issue {
		return nil
	}
	return s.issueOTP(ctx, user)
}

// checkCandidate runs the field rules, then the uniqueness checks.
func (s *Service) checkCandidate(ctx context.Context, span tracing.Span, user *models.User) error {
	if user == nil {
		return s.reject(ctx, dErrors.CodeValidation, models.KeyInvalidName, nil)
	}

	if v := validation.FirstViolation(candidate{
		Name:         user.Name,
		EmailID:      user.EmailID,
		MobileNumber: user.MobileNumber,
		Password:     user.Password,
	}); v != nil {
		key, ok := fieldKeys[v.Field]
		if !ok {
			key = models.KeyInvalidName
		}
		span.SetAttributes(tracing.String("rejected.field", v.Field), tracing.String("rejected.rule", v.Tag))
		return s.reject(ctx, dErrors.CodeValidation, key, nil)
	}
	span.SetAttributes(tracing.String("email.domain", emailDomain(user.EmailID)))

	taken, err := s.users.ExistsByEmail(ctx, user.EmailID)
	if err != nil {
		return s.reject(ctx, dErrors.CodeInternal, models.KeyRegistrationFailed, err)
	}
	if taken {
		return s.reject(ctx, dErrors.CodeConflict, models.KeyEmailAlreadyRegistered, nil)
	}

	taken, err = s.users.ExistsByMobile(ctx, user.MobileNumber)
	if err != nil {
		return s.reject(ctx, dErrors.CodeInternal, models.KeyRegistrationFailed, err)
	}
	if taken {
		return s.reject(ctx, dErrors.CodeConflict, models.KeyMobileAlreadyRegistered, nil)
	}
	return nil
}

func emailDomain(email string) string {
	if at := strings.LastIndexByte(email, '@'); at >= 0 {
		return email[at+1:]
	}
	return ""
}
