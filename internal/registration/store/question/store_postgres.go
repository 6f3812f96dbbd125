package question

import (
	"context"
	"database/sql"
	"fmt"

	"amigowallet/internal/registration/models"
)

// PostgresStore reads the security question catalogue from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]models.SecurityQuestion, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT question_id, question FROM security_questions ORDER BY question_id`)
	if err != nil {
		return nil, fmt.Errorf("list security questions: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	questions := make([]models.SecurityQuestion, 0)
	for rows.Next() {
		var q models.SecurityQuestion
		if err := rows.Scan(&q.QuestionID, &q.Question); err != nil {
			return nil, fmt.Errorf("scan security question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate security questions: %w", err)
	}
	return questions, nil
}

func (s *PostgresStore) Exists(ctx context.Context, questionID int) (bool, error) {
	var found bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM security_questions WHERE question_id = $1)`, questionID).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("check security question: %w", err)
	}
	return found, nil
}
