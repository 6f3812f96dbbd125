package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"amigowallet/internal/platform/tracing"
	"amigowallet/internal/registration/models"
	dErrors "amigowallet/pkg/domain-errors"
	"amigowallet/pkg/platform/sentinel"
	"amigowallet/pkg/validation"
)

// securityAnswer is checked at register time, after the question exists.
type securityAnswer struct {
	SecurityAnswer string `validate:"notblank"`
}

// RegisterUser confirms the pending OTP for the user's email, stores the
// user with hashed secrets and returns the new registration id. Callers run
// RevalidateUser first; field rules are not repeated here.
//
// Errors: CodeValidation for an unknown security question or blank answer,
// CodeConflict for a missing, expired or wrong OTP and for duplicates found
// at insert time, CodeInternal for store and hashing failures.
func (s *Service) RegisterUser(ctx context.Context, user *models.User) (id int, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, spanRegister)
	defer func() { span.End(err) }()
	defer s.observeRegisterDuration(start)

	if user == nil {
		return 0, s.reject(ctx, dErrors.CodeValidation, models.KeyInvalidName, nil)
	}

	known, err := s.questions.Exists(ctx, user.SecurityQuestionID)
	if err != nil {
		return 0, s.reject(ctx, dErrors.CodeInternal, models.KeyRegistrationFailed, err)
	}
	if !known {
		return 0, s.reject(ctx, dErrors.CodeValidation, models.KeyInvalidSecurityQuestion, nil)
	}
	if v := validation.FirstViolation(securityAnswer{SecurityAnswer: user.SecurityAnswer}); v != nil {
		return 0, s.reject(ctx, dErrors.CodeValidation, fieldKeys[v.Field], nil)
	}
	answer := normalizeAnswer(user.SecurityAnswer)

	if err := s.confirmOTP(ctx, user); err != nil {
		return 0, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
	if err != nil {
		return 0, s.reject(ctx, dErrors.CodeInternal, models.KeyRegistrationFailed, err)
	}
	answerHash, err := bcrypt.GenerateFromPassword([]byte(answer), s.bcryptCost)
	if err != nil {
		return 0, s.reject(ctx, dErrors.CodeInternal, models.KeyRegistrationFailed, err)
	}

	now := s.now()
	id, err = s.users.Save(ctx, &models.Registration{
		Name:               user.Name,
		EmailID:            user.EmailID,
		MobileNumber:       user.MobileNumber,
		PasswordHash:       passwordHash,
		SecurityQuestionID: user.SecurityQuestionID,
		SecurityAnswerHash: answerHash,
		CreatedAt:          now,
	})
	if err != nil {
		return 0, s.translateSaveError(ctx, err)
	}
	span.SetAttributes(tracing.Int("registration.id", id))

	if err := s.otps.Delete(ctx, user.EmailID); err != nil {
		s.logger.WarnContext(ctx, "failed to consume otp", "error", err)
	}

	if err := s.notifier.Publish(ctx, models.Event{
		Type:           models.EventUserRegistered,
		Name:           user.Name,
		EmailID:        user.EmailID,
		RegistrationID: id,
		OccurredAt:     now,
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish registration event", "error", err, "registration_id", id)
	}

	s.incrementRegistrations()
	s.logAudit(ctx, "user_registered", "email", user.EmailID, "registration_id", id)
	return id, nil
}

// confirmOTP compares the submitted code with the pending one in constant
// time. A blank code is wrong without consulting the store. After
// maxOTPMiss wrong codes the pending one is consumed.
func (s *Service) confirmOTP(ctx context.Context, user *models.User) error {
	submitted := strings.TrimSpace(user.OTP)
	if submitted == "" {
		return s.reject(ctx, dErrors.CodeConflict, models.KeyIncorrectOTP, nil)
	}

	pending, err := s.otps.Find(ctx, user.EmailID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return s.reject(ctx, dErrors.CodeConflict, models.KeyOTPExpired, nil)
		}
		return s.reject(ctx, dErrors.CodeInternal, models.KeyRegistrationFailed, err)
	}

	if subtle.ConstantTimeCompare([]byte(pending), []byte(submitted)) != 1 {
		s.recordOTPMiss(ctx, user.EmailID)
		return s.reject(ctx, dErrors.CodeConflict, models.KeyIncorrectOTP, nil)
	}
	return nil
}

// recordOTPMiss counts a wrong code. Store failures are logged; the caller
// rejects the attempt either way.
func (s *Service) recordOTPMiss(ctx context.Context, email string) {
	misses, err := s.otps.RecordFailure(ctx, email)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to record otp attempt", "error", err)
		return
	}
	if misses < s.maxOTPMiss {
		return
	}
	if err := s.otps.Delete(ctx, email); err != nil {
		s.logger.WarnContext(ctx, "failed to consume locked otp", "error", err)
		return
	}
	s.logAudit(ctx, "otp_attempts_exhausted", "email", email, "attempts", misses)
}

// normalizeAnswer makes answers comparable regardless of case and spacing.
func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.Join(strings.Fields(answer), " "))
}
