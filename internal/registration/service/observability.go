package service

import (
	"context"
	"time"

	request "amigowallet/pkg/platform/middleware/request"
)

const (
	spanValidate  = "registration.validate"
	spanRegister  = "registration.register"
	spanQuestions = "registration.questions"
	spanIssueOTP  = "registration.otp.issue"
)

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if requestID := request.GetRequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
}

func (s *Service) incrementValidation(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementValidation(outcome)
	}
}

func (s *Service) incrementRejection(key string) {
	if s.metrics != nil {
		s.metrics.IncrementRejection(key)
	}
}

func (s *Service) incrementRegistrations() {
	if s.metrics != nil {
		s.metrics.IncrementRegistrations()
	}
}

func (s *Service) incrementOTPIssued() {
	if s.metrics != nil {
		s.metrics.IncrementOTPIssued()
	}
}

func (s *Service) observeRegisterDuration(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveRegisterDuration(time.Since(start).Seconds())
	}
}
