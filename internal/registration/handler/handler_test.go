package handler

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks ValidationRegistrar,MessageResolver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"amigowallet/internal/platform/messages"
	"amigowallet/internal/registration/handler/mocks"
	"amigowallet/internal/registration/models"
	dErrors "amigowallet/pkg/domain-errors"
)

const (
	validatedText  = "Details validated. An OTP has been sent to your email."
	registeredText = "Registered with id: "
	emailTakenText = "This email id is already registered."
)

type HandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockValidationRegistrar
	router      http.Handler
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = mocks.NewMockValidationRegistrar(s.ctrl)
	resolver := messages.FromMap(map[string]string{
		models.KeySuccessfullyValidated:  validatedText,
		models.KeySuccessfulRegistration: registeredText,
		models.KeyEmailAlreadyRegistered: emailTakenText,
		models.KeyInvalidEmail:           "Please enter a valid email id.",
		"Validator.emailInvalid":         "Email id is invalid.",
		"Database.connectionLost":        "Please try again later.",
	})
	s.router = s.newRouter(resolver)
}

func (s *HandlerSuite) newRouter(resolver MessageResolver) http.Handler {
	h := New(s.mockService, resolver, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func candidateBody() string {
	return `{
		"name": " Asha Rao ",
		"emailId": " Asha@Example.com ",
		"mobileNumber": "9876543210",
		"password": "Secur3!pass",
		"securityQuestionId": 2,
		"securityAnswer": "Greenwood High",
		"otp": "482913"
	}`
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (s *HandlerSuite) TestValidateForRegistration() {
	s.Run("accepted with success message", func() {
		s.mockService.EXPECT().ValidateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *models.User) error {
				s.Equal("Asha Rao", u.Name)
				s.Equal("asha@example.com", u.EmailID)
				s.Equal("Secur3!pass", u.Password)
				s.Equal(2, u.SecurityQuestionID)
				return nil
			})

		rec := s.do(http.MethodPost, "/RegistrationAPI/validateForRegistration", candidateBody())

		s.Require().Equal(http.StatusAccepted, rec.Code)
		var body map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal(validatedText, body["successMessage"])
		s.Nil(body["errorMessage"])
		s.Equal("asha@example.com", body["emailId"])
		s.NotContains(body, "password")
		s.NotContains(body, "securityAnswer")
		s.NotContains(body, "otp")
	})

	s.Run("unresolved success message is null", func() {
		resolver := mocks.NewMockMessageResolver(s.ctrl)
		router := s.newRouter(resolver)
		s.mockService.EXPECT().ValidateUser(gomock.Any(), gomock.Any()).Return(nil)
		resolver.EXPECT().Resolve(models.KeySuccessfullyValidated).Return("", false)

		req := httptest.NewRequest(http.MethodPost, "/RegistrationAPI/validateForRegistration", bytes.NewBufferString(candidateBody()))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		s.Require().Equal(http.StatusAccepted, rec.Code)
		s.Contains(rec.Body.String(), `"successMessage":null`)
	})
}

func (s *HandlerSuite) TestErrorClassification() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantMsg    *string
	}{
		{
			name:       "legacy Validator key is not acceptable",
			err:        dErrors.New(dErrors.CodeInternal, "Validator.emailInvalid"),
			wantStatus: http.StatusNotAcceptable,
			wantError:  "not_acceptable",
			wantMsg:    ptr("Email id is invalid."),
		},
		{
			name:       "legacy non-Validator key is a conflict",
			err:        dErrors.New(dErrors.CodeInternal, "Database.connectionLost"),
			wantStatus: http.StatusConflict,
			wantError:  "conflict",
			wantMsg:    ptr("Please try again later."),
		},
		{
			name:       "typed validation code",
			err:        dErrors.New(dErrors.CodeValidation, models.KeyInvalidEmail),
			wantStatus: http.StatusNotAcceptable,
			wantError:  "not_acceptable",
			wantMsg:    ptr("Please enter a valid email id."),
		},
		{
			name:       "typed conflict code wins over key text",
			err:        dErrors.New(dErrors.CodeConflict, "Validator.emailInvalid"),
			wantStatus: http.StatusConflict,
			wantError:  "conflict",
			wantMsg:    ptr("Email id is invalid."),
		},
		{
			name:       "unresolvable key yields null message",
			err:        dErrors.New(dErrors.CodeConflict, "RegistrationService.UNKNOWN"),
			wantStatus: http.StatusConflict,
			wantError:  "conflict",
		},
		{
			name:       "plain error is unclassified",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal_error",
		},
		{
			name:       "empty key is unclassified",
			err:        dErrors.New(dErrors.CodeValidation, ""),
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal_error",
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.mockService.EXPECT().ValidateUser(gomock.Any(), gomock.Any()).Return(tt.err)

			rec := s.do(http.MethodPost, "/RegistrationAPI/validateForRegistration", candidateBody())

			s.Equal(tt.wantStatus, rec.Code)
			body := decodeError(s.T(), rec)
			s.Equal(tt.wantError, body.Error)
			s.Equal(tt.wantMsg, body.Message)
			s.Contains(rec.Body.String(), `"message"`)
		})
	}
}

func (s *HandlerSuite) TestErrorResolvesExactKey() {
	resolver := mocks.NewMockMessageResolver(s.ctrl)
	router := s.newRouter(resolver)
	s.mockService.EXPECT().RevalidateUser(gomock.Any(), gomock.Any()).
		Return(dErrors.New(dErrors.CodeInternal, "Validator.emailInvalid"))
	resolver.EXPECT().Resolve("Validator.emailInvalid").Return("resolved text", true)

	req := httptest.NewRequest(http.MethodPost, "/RegistrationAPI/register", bytes.NewBufferString(candidateBody()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	s.Equal(http.StatusNotAcceptable, rec.Code)
	s.JSONEq(`{"error":"not_acceptable","message":"resolved text"}`, rec.Body.String())
}

func (s *HandlerSuite) TestMalformedJSON() {
	for _, path := range []string{"/RegistrationAPI/validateForRegistration", "/RegistrationAPI/register"} {
		s.Run(path, func() {
			rec := s.do(http.MethodPost, path, "{not json")

			s.Equal(http.StatusBadRequest, rec.Code)
			s.Contains(rec.Body.String(), "bad_request")
		})
	}
}

func (s *HandlerSuite) TestGetAllQuestions() {
	s.Run("returns the catalogue", func() {
		s.mockService.EXPECT().GetAllSecurityQuestions(gomock.Any()).Return([]models.SecurityQuestion{
			{QuestionID: 1, Question: "What is the name of your first school?"},
			{QuestionID: 2, Question: "What is your mother's maiden name?"},
		}, nil)

		rec := s.do(http.MethodGet, "/RegistrationAPI/getAllQuestions", "")

		s.Require().Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[
			{"questionId":1,"question":"What is the name of your first school?"},
			{"questionId":2,"question":"What is your mother's maiden name?"}
		]`, rec.Body.String())
	})

	s.Run("empty catalogue is an empty array", func() {
		s.mockService.EXPECT().GetAllSecurityQuestions(gomock.Any()).Return(nil, nil)

		rec := s.do(http.MethodGet, "/RegistrationAPI/getAllQuestions", "")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[]`, rec.Body.String())
	})

	s.Run("service failure is a generic 500", func() {
		s.mockService.EXPECT().GetAllSecurityQuestions(gomock.Any()).
			Return(nil, dErrors.Wrap(errors.New("db down"), dErrors.CodeInternal, "failed to list security questions"))

		rec := s.do(http.MethodGet, "/RegistrationAPI/getAllQuestions", "")

		s.Equal(http.StatusInternalServerError, rec.Code)
		s.NotContains(rec.Body.String(), "db down")
		s.NotContains(rec.Body.String(), "failed to list")
	})
}

func (s *HandlerSuite) TestRegister() {
	s.Run("created with message and id", func() {
		gomock.InOrder(
			s.mockService.EXPECT().RevalidateUser(gomock.Any(), gomock.Any()).Return(nil),
			s.mockService.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, u *models.User) (int, error) {
					s.Equal("482913", u.OTP)
					s.Equal("asha@example.com", u.EmailID)
					return 42, nil
				}),
		)

		rec := s.do(http.MethodPost, "/RegistrationAPI/register", candidateBody())

		s.Equal(http.StatusCreated, rec.Code)
		s.Equal("text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
		s.Equal("Registered with id: 42", rec.Body.String())
	})

	s.Run("validation failure skips registration", func() {
		s.mockService.EXPECT().RevalidateUser(gomock.Any(), gomock.Any()).
			Return(dErrors.New(dErrors.CodeValidation, models.KeyInvalidEmail))

		rec := s.do(http.MethodPost, "/RegistrationAPI/register", candidateBody())

		s.Equal(http.StatusNotAcceptable, rec.Code)
	})

	s.Run("duplicate email is a conflict", func() {
		s.mockService.EXPECT().RevalidateUser(gomock.Any(), gomock.Any()).Return(nil)
		s.mockService.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).
			Return(0, dErrors.New(dErrors.CodeConflict, models.KeyEmailAlreadyRegistered))

		rec := s.do(http.MethodPost, "/RegistrationAPI/register", candidateBody())

		s.Equal(http.StatusConflict, rec.Code)
		s.JSONEq(`{"error":"conflict","message":"`+emailTakenText+`"}`, rec.Body.String())
	})

	s.Run("unresolved template yields the bare id", func() {
		resolver := mocks.NewMockMessageResolver(s.ctrl)
		router := s.newRouter(resolver)
		s.mockService.EXPECT().RevalidateUser(gomock.Any(), gomock.Any()).Return(nil)
		s.mockService.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(7, nil)
		resolver.EXPECT().Resolve(models.KeySuccessfulRegistration).Return("", false)

		req := httptest.NewRequest(http.MethodPost, "/RegistrationAPI/register", bytes.NewBufferString(candidateBody()))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		s.Equal(http.StatusCreated, rec.Code)
		s.Equal("7", rec.Body.String())
	})
}

func TestClassify(t *testing.T) {
	kind, key := classify(dErrors.New(dErrors.CodeNotFound, "UserValidator.INVALID_NAME"))
	assert.Equal(t, kindValidationRejected, kind)
	assert.Equal(t, "UserValidator.INVALID_NAME", key)

	wrapped := dErrors.Wrap(errors.New("cause"), dErrors.CodeConflict, models.KeyIncorrectOTP)
	kind, key = classify(wrapped)
	assert.Equal(t, kindRegistrationConflict, kind)
	assert.Equal(t, models.KeyIncorrectOTP, key)

	kind, _ = classify(nil)
	assert.Equal(t, kindUnclassified, kind)
}

func ptr(s string) *string { return &s }
