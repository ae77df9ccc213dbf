package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/raidergo/checkout/internal/domain/errors"
	"github.com/raidergo/checkout/internal/domain/model"
	"github.com/raidergo/checkout/internal/domain/repository"
)

const pgUniqueViolation = "23505"

// pgxPool is the subset of pgxpool.Pool used by the storage. Keeping it as
// an interface lets tests substitute a pgxmock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type buyerRepository struct {
	storage *Storage
}

type courseRepository struct {
	storage *Storage
}

type purchaseRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Buyers() repository.BuyerRepository {
	return &buyerRepository{storage: s}
}

func (s *Storage) Courses() repository.CourseRepository {
	return &courseRepository{storage: s}
}

func (s *Storage) Purchases() repository.PurchaseRepository {
	return &purchaseRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS buyers (
            id UUID PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS courses (
            id UUID PRIMARY KEY,
            title TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL,
            currency TEXT NOT NULL DEFAULT 'USD',
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS purchases (
            id UUID PRIMARY KEY,
            buyer_id UUID NOT NULL REFERENCES buyers(id),
            course_id UUID NOT NULL REFERENCES courses(id),
            amount DOUBLE PRECISION NOT NULL,
            currency TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            provider TEXT NOT NULL,
            provider_ref TEXT UNIQUE NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (buyer_id, course_id)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_buyer ON purchases(buyer_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- BuyerRepository implementation ---

func (r *buyerRepository) Create(ctx context.Context, email, passwordHash string) (*model.Buyer, error) {
	const query = `INSERT INTO buyers (id, email, password_hash) VALUES ($1, $2, $3) RETURNING created_at`
	b := model.Buyer{ID: uuid.NewString(), Email: email, PasswordHash: passwordHash}
	err := r.storage.pool.QueryRow(ctx, query, b.ID, email, passwordHash).Scan(&b.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &b, nil
}

func (r *buyerRepository) GetByEmail(ctx context.Context, email string) (*model.Buyer, error) {
	const query = `SELECT id, email, password_hash, created_at FROM buyers WHERE email=$1`
	var b model.Buyer
	err := r.storage.pool.QueryRow(ctx, query, email).Scan(&b.ID, &b.Email, &b.PasswordHash, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *buyerRepository) GetByID(ctx context.Context, id string) (*model.Buyer, error) {
	const query = `SELECT id, email, password_hash, created_at FROM buyers WHERE id=$1`
	var b model.Buyer
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&b.ID, &b.Email, &b.PasswordHash, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// --- CourseRepository implementation ---

func (r *courseRepository) GetByID(ctx context.Context, id string) (*model.Course, error) {
	const query = `SELECT id, title, price, currency, active, created_at FROM courses WHERE id=$1`
	var c model.Course
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Title, &c.Price, &c.Currency, &c.Active, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *courseRepository) ListActive(ctx context.Context) ([]model.Course, error) {
	const query = `SELECT id, title, price, currency, active, created_at
                   FROM courses WHERE active ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Price, &c.Currency, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- PurchaseRepository implementation ---

// Create inserts the purchase, treating uniqueness conflicts as idempotent
// duplicates: the existing row is returned with created=false. Providers
// retry webhook delivery and browsers re-invoke capture on reload, so the
// race between concurrent identical inserts resolves at the constraint.
func (r *purchaseRepository) Create(ctx context.Context, p model.Purchase) (*model.Purchase, bool, error) {
	const query = `INSERT INTO purchases (id, buyer_id, course_id, amount, currency, payment_status, provider, provider_ref)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   ON CONFLICT DO NOTHING
                   RETURNING created_at`
	p.ID = uuid.NewString()
	err := r.storage.pool.QueryRow(ctx, query,
		p.ID, p.BuyerID, p.CourseID, p.Amount, p.Currency, p.Status, p.Provider, p.ProviderRef,
	).Scan(&p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.GetByProviderRef(ctx, p.ProviderRef)
			if err == nil {
				return existing, false, nil
			}
			if !errors.Is(err, domainErrors.ErrNotFound) {
				return nil, false, err
			}
			// Conflict on (buyer_id, course_id) with a different provider ref.
			existing, err = r.GetByBuyerAndCourse(ctx, p.BuyerID, p.CourseID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return &p, true, nil
}

func (r *purchaseRepository) GetByProviderRef(ctx context.Context, providerRef string) (*model.Purchase, error) {
	const query = `SELECT id, buyer_id, course_id, amount, currency, payment_status, provider, provider_ref, created_at
                   FROM purchases WHERE provider_ref=$1`
	return r.scanOne(r.storage.pool.QueryRow(ctx, query, providerRef))
}

func (r *purchaseRepository) GetByBuyerAndCourse(ctx context.Context, buyerID, courseID string) (*model.Purchase, error) {
	const query = `SELECT id, buyer_id, course_id, amount, currency, payment_status, provider, provider_ref, created_at
                   FROM purchases WHERE buyer_id=$1 AND course_id=$2`
	return r.scanOne(r.storage.pool.QueryRow(ctx, query, buyerID, courseID))
}

func (r *purchaseRepository) scanOne(row pgx.Row) (*model.Purchase, error) {
	var p model.Purchase
	err := row.Scan(&p.ID, &p.BuyerID, &p.CourseID, &p.Amount, &p.Currency, &p.Status, &p.Provider, &p.ProviderRef, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *purchaseRepository) ListByBuyer(ctx context.Context, buyerID string) ([]model.Purchase, error) {
	const query = `SELECT id, buyer_id, course_id, amount, currency, payment_status, provider, provider_ref, created_at
                   FROM purchases WHERE buyer_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Purchase
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.BuyerID, &p.CourseID, &p.Amount, &p.Currency, &p.Status, &p.Provider, &p.ProviderRef, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
