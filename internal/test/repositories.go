package test

import (
	"context"
	"strconv"
	"sync"

	domainErrors "github.com/raidergo/checkout/internal/domain/errors"
	"github.com/raidergo/checkout/internal/domain/model"
)

// PurchaseRepositoryStub is an in-memory PurchaseRepository honouring the
// same uniqueness keys as the real storage.
type PurchaseRepositoryStub struct {
	CreateFn func(context.Context, model.Purchase) (*model.Purchase, bool, error)

	mu   sync.Mutex
	rows []model.Purchase
	seq  int
}

// Create inserts idempotently, resolving duplicates to the existing row.
func (s *PurchaseRepositoryStub) Create(ctx context.Context, p model.Purchase) (*model.Purchase, bool, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, p)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.ProviderRef == p.ProviderRef || (row.BuyerID == p.BuyerID && row.CourseID == p.CourseID) {
			existing := row
			return &existing, false, nil
		}
	}
	s.seq++
	p.ID = "purchase-" + strconv.Itoa(s.seq)
	s.rows = append(s.rows, p)
	stored := p
	return &stored, true, nil
}

// GetByProviderRef finds a stored row by provider reference.
func (s *PurchaseRepositoryStub) GetByProviderRef(ctx context.Context, providerRef string) (*model.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.ProviderRef == providerRef {
			existing := row
			return &existing, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByBuyerAndCourse finds a stored row by the business uniqueness key.
func (s *PurchaseRepositoryStub) GetByBuyerAndCourse(ctx context.Context, buyerID, courseID string) (*model.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.BuyerID == buyerID && row.CourseID == courseID {
			existing := row
			return &existing, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByBuyer returns all rows for the buyer.
func (s *PurchaseRepositoryStub) ListByBuyer(ctx context.Context, buyerID string) ([]model.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Purchase
	for _, row := range s.rows {
		if row.BuyerID == buyerID {
			result = append(result, row)
		}
	}
	return result, nil
}

// Rows returns a copy of all stored purchases.
func (s *PurchaseRepositoryStub) Rows() []model.Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Purchase, len(s.rows))
	copy(out, s.rows)
	return out
}

// BuyerRepositoryStub is an in-memory BuyerRepository.
type BuyerRepositoryStub struct {
	mu     sync.Mutex
	buyers map[string]model.Buyer
	seq    int
}

// Create stores a buyer keyed by email.
func (s *BuyerRepositoryStub) Create(ctx context.Context, email, passwordHash string) (*model.Buyer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buyers == nil {
		s.buyers = make(map[string]model.Buyer)
	}
	if _, ok := s.buyers[email]; ok {
		return nil, domainErrors.ErrAlreadyExists
	}
	s.seq++
	b := model.Buyer{ID: "buyer-" + strconv.Itoa(s.seq), Email: email, PasswordHash: passwordHash}
	s.buyers[email] = b
	return &b, nil
}

// GetByEmail returns the stored buyer or ErrNotFound.
func (s *BuyerRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.Buyer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.buyers[email]; ok {
		return &b, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID returns the stored buyer or ErrNotFound.
func (s *BuyerRepositoryStub) GetByID(ctx context.Context, id string) (*model.Buyer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.buyers {
		if b.ID == id {
			buyer := b
			return &buyer, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// CourseRepositoryStub is an in-memory CourseRepository.
type CourseRepositoryStub struct {
	CoursesByID map[string]model.Course
	ListErr     error
	ListCalls   int
	mu          sync.Mutex
}

// GetByID returns the configured course or ErrNotFound.
func (s *CourseRepositoryStub) GetByID(ctx context.Context, id string) (*model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.CoursesByID[id]; ok {
		course := c
		return &course, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListActive returns all configured active courses.
func (s *CourseRepositoryStub) ListActive(ctx context.Context) ([]model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ListCalls++
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	var result []model.Course
	for _, c := range s.CoursesByID {
		if c.Active {
			result = append(result, c)
		}
	}
	return result, nil
}
