package user

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"amigowallet/internal/registration/models"
	"amigowallet/pkg/platform/sentinel"
)

// Duplicate errors wrap sentinel.ErrAlreadyUsed so callers can match either.
var (
	ErrDuplicateEmail  = fmt.Errorf("email already registered: %w", sentinel.ErrAlreadyUsed)
	ErrDuplicateMobile = fmt.Errorf("mobile number already registered: %w", sentinel.ErrAlreadyUsed)
)

// FirstRegistrationID is the id handed to the first registered user.
const FirstRegistrationID = 1000

// InMemoryUserStore keeps registrations in memory. Uniqueness of email and
// mobile number is enforced under the same lock that assigns ids.
type InMemoryUserStore struct {
	mu       sync.RWMutex
	nextID   int
	byID     map[int]*models.Registration
	byEmail  map[string]int
	byMobile map[string]int
}

// New constructs an empty in-memory user store.
func New() *InMemoryUserStore {
	return &InMemoryUserStore{
		nextID:   FirstRegistrationID,
		byID:     make(map[int]*models.Registration),
		byEmail:  make(map[string]int),
		byMobile: make(map[string]int),
	}
}

func (s *InMemoryUserStore) Save(_ context.Context, reg *models.Registration) (int, error) {
	if reg == nil {
		return 0, fmt.Errorf("registration is required")
	}
	email := strings.ToLower(reg.EmailID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[email]; ok {
		return 0, ErrDuplicateEmail
	}
	if _, ok := s.byMobile[reg.MobileNumber]; ok {
		return 0, ErrDuplicateMobile
	}

	stored := *reg
	stored.ID = s.nextID
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.nextID++

	s.byID[stored.ID] = &stored
	s.byEmail[email] = stored.ID
	s.byMobile[stored.MobileNumber] = stored.ID
	return stored.ID, nil
}

func (s *InMemoryUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[strings.ToLower(email)]
	return ok, nil
}

func (s *InMemoryUserStore) ExistsByMobile(_ context.Context, mobile string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byMobile[mobile]
	return ok, nil
}

// FindByID loads a stored registration. The service never reads users back;
// tests use it to inspect what Save persisted.
func (s *InMemoryUserStore) FindByID(_ context.Context, id int) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if reg, ok := s.byID[id]; ok {
		out := *reg
		return &out, nil
	}
	return nil, fmt.Errorf("registration %d: %w", id, sentinel.ErrNotFound)
}
