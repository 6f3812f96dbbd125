package handler

import (
	"net/http"
	"strings"

	dErrors "amigowallet/pkg/domain-errors"
)

type errorKind int

const (
	kindUnclassified errorKind = iota
	kindValidationRejected
	kindRegistrationConflict
)

// legacyValidatorMarker identifies validation keys from services that do
// not tag their errors with a code.
const legacyValidatorMarker = "Validator"

// classify picks the response kind for a service error and returns its
// message key. Typed codes win; other keyed errors fall back to the key
// convention. Errors without a key are unclassified.
func classify(err error) (errorKind, string) {
	de, ok := dErrors.As(err)
	if !ok || de.Message == "" {
		return kindUnclassified, ""
	}
	switch de.Code {
	case dErrors.CodeValidation:
		return kindValidationRejected, de.Message
	case dErrors.CodeConflict:
		return kindRegistrationConflict, de.Message
	}
	if strings.Contains(de.Message, legacyValidatorMarker) {
		return kindValidationRejected, de.Message
	}
	return kindRegistrationConflict, de.Message
}

func (k errorKind) status() (int, string) {
	switch k {
	case kindValidationRejected:
		return http.StatusNotAcceptable, "not_acceptable"
	case kindRegistrationConflict:
		return http.StatusConflict, "conflict"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func (k errorKind) String() string {
	switch k {
	case kindValidationRejected:
		return "validation_rejected"
	case kindRegistrationConflict:
		return "registration_conflict"
	default:
		return "unclassified"
	}
}
