package service

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"

	"amigowallet/internal/registration/models"
	dErrors "amigowallet/pkg/domain-errors"
)

func (s *ServiceSuite) TestGetAllSecurityQuestions() {
	ctx := context.Background()

	s.Run("returns the catalogue", func() {
		want := []models.SecurityQuestion{{QuestionID: 1, Question: "First school?"}}
		s.mockQuestions.EXPECT().ListAll(gomock.Any()).Return(want, nil)

		got, err := s.service.GetAllSecurityQuestions(ctx)

		s.Require().NoError(err)
		s.Equal(want, got)
	})

	s.Run("nil catalogue becomes empty", func() {
		s.mockQuestions.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

		got, err := s.service.GetAllSecurityQuestions(ctx)

		s.Require().NoError(err)
		s.NotNil(got)
		s.Empty(got)
	})

	s.Run("store failure is internal", func() {
		s.mockQuestions.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("db down"))

		_, err := s.service.GetAllSecurityQuestions(ctx)

		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
