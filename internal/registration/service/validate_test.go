package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"

	"amigowallet/internal/registration/models"
	dErrors "amigowallet/pkg/domain-errors"
)

func (s *ServiceSuite) assertKeyedError(err error, code dErrors.Code, key string) {
	s.T().Helper()
	s.Require().Error(err)
	de, ok := dErrors.As(err)
	s.Require().True(ok, "expected domain error, got %T", err)
	s.Equal(code, de.Code)
	s.Equal(key, de.Message)
}

func (s *ServiceSuite) TestValidateUser() {
	ctx := context.Background()

	s.Run("issues otp for a valid candidate", func() {
		user := validUser()
		var saved string
		s.mockUsers.EXPECT().ExistsByEmail(gomock.Any(), user.EmailID).Return(false, nil)
		s.mockUsers.EXPECT().ExistsByMobile(gomock.Any(), user.MobileNumber).Return(false, nil)
		s.mockOTPs.EXPECT().Save(gomock.Any(), user.EmailID, gomock.Any(), defaultOTPTTL).
			DoAndReturn(func(_ context.Context, _, code string, _ time.Duration) error {
				saved = code
				return nil
			})
		s.mockNotifier.EXPECT().Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev models.Event) error {
				s.Equal(models.EventOTPIssued, ev.Type)
				s.Equal(user.EmailID, ev.EmailID)
				s.Equal(saved, ev.OTP)
				s.Equal(fixedNow.Add(defaultOTPTTL), ev.ExpiresAt)
				return nil
			})

		s.Require().NoError(s.service.ValidateUser(ctx, user))
		s.Len(saved, defaultOTPLength)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.OTPIssued))
	})

	s.Run("issues otp even when the record carries one", func() {
		user := validUser()
		user.OTP = "123456"
		s.mockUsers.EXPECT().ExistsByEmail(gomock.Any(), user.EmailID).Return(false, nil)
		s.mockUsers.EXPECT().ExistsByMobile(gomock.Any(), user.MobileNumber).Return(false, nil)
		s.mockOTPs.EXPECT().Save(gomock.Any(), user.EmailID, gomock.Any(), defaultOTPTTL).Return(nil)
		s.mockNotifier.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		s.NoError(s.service.ValidateUser(ctx, user))
	})
}

func (s *ServiceSuite) TestRevalidateUser() {
	ctx := context.Background()

	s.Run("never issues an otp", func() {
		for _, otp := range []string{"", "482913"} {
			user := validUser()
			user.OTP = otp
			s.mockUsers.EXPECT().ExistsByEmail(gomock.Any(), user.EmailID).Return(false, nil)
			s.mockUsers.EXPECT().ExistsByMobile(gomock.Any(), user.MobileNumber).Return(false, nil)

			s.NoError(s.service.RevalidateUser(ctx, user))
		}
		s.Equal(0.0, testutil.ToFloat64(s.metrics.OTPIssued))
		s.Equal(2.0, testutil.ToFloat64(s.metrics.Validations.WithLabelValues("accepted")))
	})

	s.Run("applies the same rules", func() {
		user := validUser()
		user.MobileNumber = "5876543210"

		err := s.service.RevalidateUser(ctx, user)

		s.assertKeyedError(err, dErrors.CodeValidation, models.KeyInvalidMobileNumber)
	})

	s.Run("reports conflicts", func() {
		user := validUser()
		s.mockUsers.EXPECT().ExistsByEmail(gomock.Any(), user.EmailID).Return(true, nil)

		err := s.service.RevalidateUser(ctx, user)

		s.assertKeyedError(err, dErrors.CodeConflict, models.KeyEmailAlreadyRegistered)
	})
}

func (s *ServiceSuite) TestValidateUserFieldRules() {
	ctx := context.Background()
	tests := []struct {
		name   string
		mutate func(*models.User)
		key    string
	}{
		{"blank name", func(u *models.User) { u.Name = "   " }, models.KeyInvalidName},
		{"name with digits", func(u *models.User) { u.Name = "Asha 2" }, models.KeyInvalidName},
		{"name too long", func(u *models.User) { u.Name = strings.Repeat("a", 51) }, models.KeyInvalidName},
		{"malformed email", func(u *models.User) { u.EmailID = "asha.example.com" }, models.KeyInvalidEmail},
		{"short mobile", func(u *models.User) { u.MobileNumber = "98765" }, models.KeyInvalidMobileNumber},
		{"mobile starting with 5", func(u *models.User) { u.MobileNumber = "5876543210" }, models.KeyInvalidMobileNumber},
		{"weak password", func(u *models.User) { u.Password = "password" }, models.KeyInvalidPassword},
		{"long password", func(u *models.User) { u.Password = "Secur3!" + strings.Repeat("x", 20) }, models.KeyInvalidPassword},
		{"name reported before email", func(u *models.User) { u.Name = ""; u.EmailID = "" }, models.KeyInvalidName},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			user := validUser()
			tt.mutate(user)

			err := s.service.ValidateUser(ctx, user)

			s.assertKeyedError(err, dErrors.CodeValidation, tt.key)
		})
	}
	s.Equal(float64(len(tests)), testutil.ToFloat64(s.metrics.Validations.WithLabelValues("rejected")))
}

func (s *ServiceSuite) TestValidateUserConflicts() {
	ctx := context.Background()

	s.Run("email taken", func() {
		user := validUser()
		s.mockUsers.EXPECT().ExistsByEmail(gomock.Any(), user.EmailID).Return(true, nil)

		err := s.service.ValidateUser(ctx, user)

		s.assertKeyedError(err, dErrors.CodeConflict, models.KeyEmailAlreadyRegistered)
	})

	s.Run("mobile taken", func() {
		user := validUser()
		s.mockUsers.EXPECT().ExistsByEmail(gomock.Any(), user.EmailID).Return(false, nil)
		s.mockUsers.EXPECT().ExistsByMobile(gomock.Any(), user.MobileNumber).Return(true, nil)

		err := s.service.ValidateUser(ctx, user)

		s.assertKeyedError(err, dErrors.CodeConflict, models.KeyMobileAlreadyRegistered)
	})

	s.Run("store failure", func() {
		user := validUser()
		s.mockUsers.EXPECT().ExistsByEmail(gomock.Any(), user.EmailID).Return(false, errors.New("db down"))

		err := s.service.ValidateUser(ctx, user)

		s.assertKeyedError(err, dErrors.CodeInternal, models.KeyRegistrationFailed)
	})
}

func (s *ServiceSuite) TestValidateUserDispatchFailures() {
	ctx := context.Background()

	s.Run("otp store failure", func() {
		user := validUser()
		s.mockUsers.EXPECT().ExistsByEmail(gomock.Any(), gomock.Any()).Return(false, nil)
		s.mockUsers.EXPECT().ExistsByMobile(gomock.Any(), gomock.Any()).Return(false, nil)
		s.mockOTPs.EXPECT().Save(gomock.Any(), user.EmailID, gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		err := s.service.ValidateUser(ctx, user)

		s.assertKeyedError(err, dErrors.CodeInternal, models.KeyOTPDispatchFailed)
	})

	s.Run("notifier failure withdraws the code", func() {
		user := validUser()
		s.mockUsers.EXPECT().ExistsByEmail(gomock.Any(), gomock.Any()).Return(false, nil)
		s.mockUsers.EXPECT().ExistsByMobile(gomock.Any(), gomock.Any()).Return(false, nil)
		s.mockOTPs.EXPECT().Save(gomock.Any(), user.EmailID, gomock.Any(), gomock.Any()).Return(nil)
		s.mockNotifier.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
		s.mockOTPs.EXPECT().Delete(gomock.Any(), user.EmailID).Return(nil)

		err := s.service.ValidateUser(ctx, user)

		s.assertKeyedError(err, dErrors.CodeInternal, models.KeyOTPDispatchFailed)
	})
}

func (s *ServiceSuite) TestValidateUserNil() {
	err := s.service.ValidateUser(context.Background(), nil)
	s.assertKeyedError(err, dErrors.CodeValidation, models.KeyInvalidName)
}
