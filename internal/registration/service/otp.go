package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"amigowallet/internal/platform/tracing"
	"amigowallet/internal/registration/models"
	dErrors "amigowallet/pkg/domain-errors"
)

var ten = big.NewInt(10)

// generateOTP returns length uniformly random decimal digits read from r.
func generateOTP(r io.Reader, length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(r, ten)
		if err != nil {
			return "", fmt.Errorf("generate otp: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// issueOTP stores a fresh code for the candidate's email and dispatches it.
// The stored code is withdrawn again when dispatch fails.
func (s *Service) issueOTP(ctx context.Context, user *models.User) (err error) {
	ctx, span := s.tracer.Start(ctx, spanIssueOTP, tracing.Int("otp.length", s.otpLength))
	defer func() { span.End(err) }()

	code, err := generateOTP(s.random, s.otpLength)
	if err != nil {
		return s.reject(ctx, dErrors.CodeInternal, models.KeyOTPDispatchFailed, err)
	}

	now := s.now()
	if err := s.otps.Save(ctx, user.EmailID, code, s.otpTTL); err != nil {
		return s.reject(ctx, dErrors.CodeInternal, models.KeyOTPDispatchFailed, err)
	}

	err = s.notifier.Publish(ctx, models.Event{
		Type:       models.EventOTPIssued,
		Name:       user.Name,
		EmailID:    user.EmailID,
		OTP:        code,
		ExpiresAt:  now.Add(s.otpTTL),
		OccurredAt: now,
	})
	if err != nil {
		if delErr := s.otps.Delete(ctx, user.EmailID); delErr != nil {
			s.logger.ErrorContext(ctx, "failed to withdraw undelivered otp", "error", delErr)
		}
		return s.reject(ctx, dErrors.CodeInternal, models.KeyOTPDispatchFailed, err)
	}

	s.incrementOTPIssued()
	span.AddEvent("otp.issued", tracing.Duration("otp.ttl_ms", s.otpTTL))
	s.logAudit(ctx, "otp_issued", "email", user.EmailID, "expires_at", now.Add(s.otpTTL))
	return nil
}
