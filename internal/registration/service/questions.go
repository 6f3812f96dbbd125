package service

import (
	"context"

	"amigowallet/internal/platform/tracing"
	"amigowallet/internal/registration/models"
	dErrors "amigowallet/pkg/domain-errors"
)

// GetAllSecurityQuestions returns the catalogue ordered by id. An empty
// catalogue is an empty slice, never nil.
func (s *Service) GetAllSecurityQuestions(ctx context.Context) (questions []models.SecurityQuestion, err error) {
	ctx, span := s.tracer.Start(ctx, spanQuestions)
	defer func() { span.End(err) }()

	questions, err = s.questions.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list security questions")
	}
	if questions == nil {
		questions = []models.SecurityQuestion{}
	}
	span.SetAttributes(tracing.Int("questions.count", len(questions)))
	return questions, nil
}
