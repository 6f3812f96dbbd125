package service

import (
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"amigowallet/internal/platform/tracing"
	"amigowallet/internal/registration/metrics"
)

const (
	defaultOTPTTL    = 10 * time.Minute
	defaultOTPLength = 6
	minOTPLength     = 4
	maxOTPLength     = 10

	defaultMaxOTPAttempts = 5
)

// Service validates registration candidates, issues one-time passwords and
// persists users once the OTP is confirmed.
type Service struct {
	users     UserStore
	questions QuestionStore
	otps      OTPStore
	notifier  Notifier

	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     tracing.Tracer
	otpTTL     time.Duration
	otpLength  int
	maxOTPMiss int
	bcryptCost int
	random     io.Reader
	now        func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracing.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithOTPTTL sets how long an issued OTP stays valid. Non-positive values keep the default.
func WithOTPTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.otpTTL = ttl
		}
	}
}

// WithOTPLength sets the number of digits in an issued OTP.
// Values outside 4..10 keep the default of 6.
func WithOTPLength(n int) Option {
	return func(s *Service) {
		if n >= minOTPLength && n <= maxOTPLength {
			s.otpLength = n
		}
	}
}

// WithMaxOTPAttempts sets how many wrong codes consume the pending OTP.
// Non-positive values keep the default.
func WithMaxOTPAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxOTPMiss = n
		}
	}
}

// WithBcryptCost overrides the cost used for password and answer hashes.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

// WithRandom replaces the entropy source used for OTP digits.
func WithRandom(r io.Reader) Option {
	return func(s *Service) {
		if r != nil {
			s.random = r
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New wires the registration service. All four collaborators are required.
func New(users UserStore, questions QuestionStore, otps OTPStore, notifier Notifier, opts ...Option) (*Service, error) {
	if users == nil || questions == nil || otps == nil || notifier == nil {
		return nil, fmt.Errorf("registration service requires user, question and otp stores plus a notifier")
	}
	svc := &Service{
		users:      users,
		questions:  questions,
		otps:       otps,
		notifier:   notifier,
		otpTTL:     defaultOTPTTL,
		otpLength:  defaultOTPLength,
		maxOTPMiss: defaultMaxOTPAttempts,
		bcryptCost: bcrypt.DefaultCost,
		random:     rand.Reader,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.tracer == nil {
		svc.tracer = tracing.NewNoop()
	}
	return svc, nil
}
