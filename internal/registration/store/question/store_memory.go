package question

import (
	"context"
	"slices"
	"sync"

	"amigowallet/internal/registration/models"
)

// DefaultQuestions is the catalogue served when no database is configured.
// It mirrors the rows seeded by the initial migration.
var DefaultQuestions = []models.SecurityQuestion{
	{QuestionID: 1, Question: "What is the name of your first school?"},
	{QuestionID: 2, Question: "What is your mother's maiden name?"},
	{QuestionID: 3, Question: "What was the name of your first pet?"},
	{QuestionID: 4, Question: "In which city were you born?"},
	{QuestionID: 5, Question: "What is your favourite book?"},
}

// InMemoryQuestionStore serves a fixed question catalogue.
type InMemoryQuestionStore struct {
	mu        sync.RWMutex
	questions []models.SecurityQuestion
}

// New constructs a store holding the given questions, ordered by id.
func New(questions []models.SecurityQuestion) *InMemoryQuestionStore {
	qs := slices.Clone(questions)
	slices.SortFunc(qs, func(a, b models.SecurityQuestion) int { return a.QuestionID - b.QuestionID })
	return &InMemoryQuestionStore{questions: qs}
}

// NewDefault constructs a store seeded with DefaultQuestions.
func NewDefault() *InMemoryQuestionStore {
	return New(DefaultQuestions)
}

func (s *InMemoryQuestionStore) ListAll(_ context.Context) ([]models.SecurityQuestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.questions), nil
}

func (s *InMemoryQuestionStore) Exists(_ context.Context, questionID int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.ContainsFunc(s.questions, func(q models.SecurityQuestion) bool {
		return q.QuestionID == questionID
	}), nil
}
