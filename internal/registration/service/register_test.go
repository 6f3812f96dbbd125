package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"amigowallet/internal/registration/models"
	userstore "amigowallet/internal/registration/store/user"
	dErrors "amigowallet/pkg/domain-errors"
	"amigowallet/pkg/platform/sentinel"
)

func registeringUser() *models.User {
	user := validUser()
	user.OTP = "482913"
	return user
}

func (s *ServiceSuite) TestRegisterUser() {
	ctx := context.Background()
	user := registeringUser()

	s.mockQuestions.EXPECT().Exists(gomock.Any(), 1).Return(true, nil)
	s.mockOTPs.EXPECT().Find(gomock.Any(), user.EmailID).Return("482913", nil)
	s.mockUsers.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, reg *models.Registration) (int, error) {
			s.Equal(user.Name, reg.Name)
			s.Equal(user.EmailID, reg.EmailID)
			s.Equal(user.MobileNumber, reg.MobileNumber)
			s.Equal(fixedNow, reg.CreatedAt)
			s.NoError(bcrypt.CompareHashAndPassword(reg.PasswordHash, []byte(user.Password)))
			s.NoError(bcrypt.CompareHashAndPassword(reg.SecurityAnswerHash, []byte("greenwood high")))
			return 1000, nil
		})
	s.mockOTPs.EXPECT().Delete(gomock.Any(), user.EmailID).Return(nil)
	s.mockNotifier.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev models.Event) error {
			s.Equal(models.EventUserRegistered, ev.Type)
			s.Equal(1000, ev.RegistrationID)
			s.Empty(ev.OTP)
			return nil
		})

	id, err := s.service.RegisterUser(ctx, user)

	s.Require().NoError(err)
	s.Equal(1000, id)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Registrations))
}

func (s *ServiceSuite) TestRegisterUserSecurityQuestion() {
	ctx := context.Background()

	s.Run("unknown question", func() {
		user := registeringUser()
		user.SecurityQuestionID = 99
		s.mockQuestions.EXPECT().Exists(gomock.Any(), 99).Return(false, nil)

		_, err := s.service.RegisterUser(ctx, user)

		s.assertKeyedError(err, dErrors.CodeValidation, models.KeyInvalidSecurityQuestion)
	})

	s.Run("blank answer", func() {
		user := registeringUser()
		user.SecurityAnswer = "  \t "
		s.mockQuestions.EXPECT().Exists(gomock.Any(), 1).Return(true, nil)

		_, err := s.service.RegisterUser(ctx, user)

		s.assertKeyedError(err, dErrors.CodeValidation, models.KeyInvalidSecurityAnswer)
	})

	s.Run("question store failure", func() {
		s.mockQuestions.EXPECT().Exists(gomock.Any(), 1).Return(false, errors.New("db down"))

		_, err := s.service.RegisterUser(ctx, registeringUser())

		s.assertKeyedError(err, dErrors.CodeInternal, models.KeyRegistrationFailed)
	})
}

func (s *ServiceSuite) TestRegisterUserOTP() {
	ctx := context.Background()

	s.Run("no pending otp", func() {
		user := registeringUser()
		s.mockQuestions.EXPECT().Exists(gomock.Any(), 1).Return(true, nil)
		s.mockOTPs.EXPECT().Find(gomock.Any(), user.EmailID).
			Return("", fmt.Errorf("otp for %s: %w", user.EmailID, sentinel.ErrNotFound))

		_, err := s.service.RegisterUser(ctx, user)

		s.assertKeyedError(err, dErrors.CodeConflict, models.KeyOTPExpired)
	})

	s.Run("wrong otp", func() {
		user := registeringUser()
		s.mockQuestions.EXPECT().Exists(gomock.Any(), 1).Return(true, nil)
		s.mockOTPs.EXPECT().Find(gomock.Any(), user.EmailID).Return("111111", nil)
		s.mockOTPs.EXPECT().RecordFailure(gomock.Any(), user.EmailID).Return(1, nil)

		_, err := s.service.RegisterUser(ctx, user)

		s.assertKeyedError(err, dErrors.CodeConflict, models.KeyIncorrectOTP)
	})

	s.Run("blank otp is incorrect without a store lookup", func() {
		for _, otp := range []string{"", "   "} {
			user := registeringUser()
			user.OTP = otp
			s.mockQuestions.EXPECT().Exists(gomock.Any(), 1).Return(true, nil)

			_, err := s.service.RegisterUser(ctx, user)

			s.assertKeyedError(err, dErrors.CodeConflict, models.KeyIncorrectOTP)
		}
	})

	s.Run("last allowed miss consumes the code", func() {
		user := registeringUser()
		s.mockQuestions.EXPECT().Exists(gomock.Any(), 1).Return(true, nil)
		s.mockOTPs.EXPECT().Find(gomock.Any(), user.EmailID).Return("111111", nil)
		s.mockOTPs.EXPECT().RecordFailure(gomock.Any(), user.EmailID).Return(defaultMaxOTPAttempts, nil)
		s.mockOTPs.EXPECT().Delete(gomock.Any(), user.EmailID).Return(nil)

		_, err := s.service.RegisterUser(ctx, user)

		s.assertKeyedError(err, dErrors.CodeConflict, models.KeyIncorrectOTP)
	})

	s.Run("attempt counter failure still rejects", func() {
		user := registeringUser()
		s.mockQuestions.EXPECT().Exists(gomock.Any(), 1).Return(true, nil)
		s.mockOTPs.EXPECT().Find(gomock.Any(), user.EmailID).Return("111111", nil)
		s.mockOTPs.EXPECT().RecordFailure(gomock.Any(), user.EmailID).Return(0, errors.New("redis down"))

		_, err := s.service.RegisterUser(ctx, user)

		s.assertKeyedError(err, dErrors.CodeConflict, models.KeyIncorrectOTP)
	})

	s.Run("otp store failure", func() {
		user := registeringUser()
		s.mockQuestions.EXPECT().Exists(gomock.Any(), 1).Return(true, nil)
		s.mockOTPs.EXPECT().Find(gomock.Any(), user.EmailID).Return("", errors.New("redis down"))

		_, err := s.service.RegisterUser(ctx, user)

		s.assertKeyedError(err, dErrors.CodeInternal, models.KeyRegistrationFailed)
	})
}

func (s *ServiceSuite) TestRegisterUserSaveFailures() {
	ctx := context.Background()
	tests := []struct {
		name     string
		storeErr error
		code     dErrors.Code
		key      string
	}{
		{"duplicate email", userstore.ErrDuplicateEmail, dErrors.CodeConflict, models.KeyEmailAlreadyRegistered},
		{"duplicate mobile", userstore.ErrDuplicateMobile, dErrors.CodeConflict, models.KeyMobileAlreadyRegistered},
		{"unnamed unique violation", fmt.Errorf("save user: %w", sentinel.ErrAlreadyUsed), dErrors.CodeConflict, models.KeyEmailAlreadyRegistered},
		{"database failure", errors.New("connection reset"), dErrors.CodeInternal, models.KeyRegistrationFailed},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			user := registeringUser()
			s.mockQuestions.EXPECT().Exists(gomock.Any(), 1).Return(true, nil)
			s.mockOTPs.EXPECT().Find(gomock.Any(), user.EmailID).Return(user.OTP, nil)
			s.mockUsers.EXPECT().Save(gomock.Any(), gomock.Any()).Return(0, tt.storeErr)

			_, err := s.service.RegisterUser(ctx, user)

			s.assertKeyedError(err, tt.code, tt.key)
			s.ErrorIs(err, tt.storeErr)
		})
	}
}

func (s *ServiceSuite) TestRegisterUserNotifierFailureIsBestEffort() {
	user := registeringUser()
	s.mockQuestions.EXPECT().Exists(gomock.Any(), 1).Return(true, nil)
	s.mockOTPs.EXPECT().Find(gomock.Any(), user.EmailID).Return(user.OTP, nil)
	s.mockUsers.EXPECT().Save(gomock.Any(), gomock.Any()).Return(1001, nil)
	s.mockOTPs.EXPECT().Delete(gomock.Any(), user.EmailID).Return(errors.New("redis down"))
	s.mockNotifier.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	id, err := s.service.RegisterUser(context.Background(), user)

	s.Require().NoError(err)
	s.Equal(1001, id)
}

func (s *ServiceSuite) TestRegisterUserAttemptLimitOption() {
	svc, err := New(s.mockUsers, s.mockQuestions, s.mockOTPs, s.mockNotifier,
		WithMaxOTPAttempts(2),
		WithBcryptCost(bcrypt.MinCost),
	)
	s.Require().NoError(err)
	user := registeringUser()

	s.mockQuestions.EXPECT().Exists(gomock.Any(), 1).Return(true, nil).Times(2)
	s.mockOTPs.EXPECT().Find(gomock.Any(), user.EmailID).Return("111111", nil).Times(2)
	gomock.InOrder(
		s.mockOTPs.EXPECT().RecordFailure(gomock.Any(), user.EmailID).Return(1, nil),
		s.mockOTPs.EXPECT().RecordFailure(gomock.Any(), user.EmailID).Return(2, nil),
		s.mockOTPs.EXPECT().Delete(gomock.Any(), user.EmailID).Return(nil),
	)

	for range 2 {
		_, err := svc.RegisterUser(context.Background(), user)
		s.assertKeyedError(err, dErrors.CodeConflict, models.KeyIncorrectOTP)
	}
}
