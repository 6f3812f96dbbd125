package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"amigowallet/internal/registration/models"
	"amigowallet/pkg/platform/sentinel"
)

const (
	uniqueViolation      = "23505"
	emailConstraintName  = "users_email_id_key"
	mobileConstraintName = "users_mobile_number_key"
)

// PostgresStore persists registrations in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, reg *models.Registration) (int, error) {
	if reg == nil {
		return 0, fmt.Errorf("registration is required")
	}

	var id int
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email_id, mobile_number, password_hash, security_question_id, security_answer_hash)
		VALUES ($1, LOWER($2), $3, $4, $5, $6)
		RETURNING id
	`, reg.Name, reg.EmailID, reg.MobileNumber, reg.PasswordHash, reg.SecurityQuestionID, reg.SecurityAnswerHash).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case mobileConstraintName:
				return 0, ErrDuplicateMobile
			case emailConstraintName:
				return 0, ErrDuplicateEmail
			default:
				return 0, fmt.Errorf("save user: %w", sentinel.ErrAlreadyUsed)
			}
		}
		return 0, fmt.Errorf("save user: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email_id = LOWER($1))`, email)
}

func (s *PostgresStore) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE mobile_number = $1)`, mobile)
}

func (s *PostgresStore) exists(ctx context.Context, query, arg string) (bool, error) {
	var found bool
	if err := s.db.QueryRowContext(ctx, query, arg).Scan(&found); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return found, nil
}

// FindByID loads a stored registration. The service never reads users back;
// tests use it to inspect what Save persisted.
func (s *PostgresStore) FindByID(ctx context.Context, id int) (*models.Registration, error) {
	reg := &models.Registration{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email_id, mobile_number, password_hash, security_question_id, security_answer_hash, created_at
		FROM users WHERE id = $1
	`, id).Scan(&reg.ID, &reg.Name, &reg.EmailID, &reg.MobileNumber, &reg.PasswordHash,
		&reg.SecurityQuestionID, &reg.SecurityAnswerHash, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("registration %d: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return reg, nil
}
