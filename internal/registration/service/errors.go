package service

import (
	"context"
	"errors"

	"amigowallet/internal/registration/models"
	userstore "amigowallet/internal/registration/store/user"
	dErrors "amigowallet/pkg/domain-errors"
	"amigowallet/pkg/platform/sentinel"
)

// Registration errors carry a message key in Message. The transport layer
// resolves the key; Code decides the response status.

// fieldKeys maps validated candidate fields to their rejection keys.
var fieldKeys = map[string]string{
	"Name":         models.KeyInvalidName,
	"EmailID":      models.KeyInvalidEmail,
	"MobileNumber": models.KeyInvalidMobileNumber,
	"Password":     models.KeyInvalidPassword,

	"SecurityAnswer": models.KeyInvalidSecurityAnswer,
}

// reject builds a keyed domain error and counts the rejection.
func (s *Service) reject(ctx context.Context, code dErrors.Code, key string, cause error) error {
	s.incrementRejection(key)
	if cause != nil {
		s.logger.WarnContext(ctx, "registration rejected", "key", key, "error", cause)
		return &dErrors.Error{Code: code, Message: key, Err: cause}
	}
	return dErrors.New(code, key)
}

// translateSaveError maps user store failures at insert time. Duplicates
// that slipped past the existence checks become conflicts.
func (s *Service) translateSaveError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, userstore.ErrDuplicateMobile):
		return s.reject(ctx, dErrors.CodeConflict, models.KeyMobileAlreadyRegistered, err)
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return s.reject(ctx, dErrors.CodeConflict, models.KeyEmailAlreadyRegistered, err)
	default:
		return s.reject(ctx, dErrors.CodeInternal, models.KeyRegistrationFailed, err)
	}
}
