package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"amigowallet/internal/registration/models"
	"amigowallet/pkg/platform/httputil"
	request "amigowallet/pkg/platform/middleware/request"
)

// ValidationRegistrar is the registration service as seen by the endpoint.
type ValidationRegistrar interface {
	ValidateUser(ctx context.Context, user *models.User) error
	RevalidateUser(ctx context.Context, user *models.User) error
	RegisterUser(ctx context.Context, user *models.User) (int, error)
	GetAllSecurityQuestions(ctx context.Context) ([]models.SecurityQuestion, error)
}

// MessageResolver turns message keys into user-facing text.
type MessageResolver interface {
	Resolve(key string) (string, bool)
}

// Handler serves the RegistrationAPI routes. It holds no per-request state.
type Handler struct {
	service  ValidationRegistrar
	messages MessageResolver
	logger   *slog.Logger
}

func New(service ValidationRegistrar, messages MessageResolver, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		messages: messages,
		logger:   logger,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/RegistrationAPI", func(r chi.Router) {
		r.Post("/validateForRegistration", h.HandleValidateForRegistration)
		r.Get("/getAllQuestions", h.HandleGetAllQuestions)
		r.Post("/register", h.HandleRegister)
	})
}

// HandleValidateForRegistration validates a candidate and triggers OTP
// issuance. Responds 202 with the record and the configured success message.
func (h *Handler) HandleValidateForRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndNormalize[UserRecord](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	h.logger.InfoContext(ctx, "user trying to register, validating details",
		"name", req.Name,
		"email", req.EmailID,
		"request_id", requestID,
	)

	if err := h.service.ValidateUser(ctx, req.ToModel()); err != nil {
		h.writeRegistrationError(ctx, w, err, requestID)
		return
	}

	httputil.WriteJSON(w, http.StatusAccepted,
		toUserRecordResponse(req, h.resolve(models.KeySuccessfullyValidated)))
}

// HandleGetAllQuestions lists the security questions. Failures are not
// classified and surface as a generic 500.
func (h *Handler) HandleGetAllQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	h.logger.InfoContext(ctx, "getting all the security questions", "request_id", requestID)

	questions, err := h.service.GetAllSecurityQuestions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list security questions",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	if questions == nil {
		questions = []models.SecurityQuestion{}
	}

	httputil.WriteJSON(w, http.StatusOK, questions)
}

// HandleRegister re-validates the candidate without issuing an OTP,
// registers it and responds 201 with the configured message followed by
// the registration id.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndNormalize[UserRecord](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	user := req.ToModel()
	if err := h.service.RevalidateUser(ctx, user); err != nil {
		h.writeRegistrationError(ctx, w, err, requestID)
		return
	}

	registrationID, err := h.service.RegisterUser(ctx, user)
	if err != nil {
		h.writeRegistrationError(ctx, w, err, requestID)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		"email", req.EmailID,
		"registration_id", registrationID,
		"request_id", requestID,
	)

	template, _ := h.messages.Resolve(models.KeySuccessfulRegistration)
	httputil.WriteText(w, http.StatusCreated, template+strconv.Itoa(registrationID))
}

func (h *Handler) writeRegistrationError(ctx context.Context, w http.ResponseWriter, err error, requestID string) {
	kind, key := classify(err)
	status, code := kind.status()

	if kind == kindUnclassified {
		h.logger.ErrorContext(ctx, "unclassified registration failure",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteJSON(w, status, ErrorResponse{Error: code})
		return
	}

	h.logger.InfoContext(ctx, "registration request rejected",
		"kind", kind.String(),
		"key", key,
		"request_id", requestID,
	)
	httputil.WriteJSON(w, status, ErrorResponse{Error: code, Message: h.resolve(key)})
}

// resolve returns nil when key has no configured text.
func (h *Handler) resolve(key string) *string {
	msg, ok := h.messages.Resolve(key)
	if !ok {
		return nil
	}
	return &msg
}
