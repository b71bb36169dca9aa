// Package testfixture seeds a PostgreSQL test database with a known baseline and
// scopes every test to a transaction that is rolled back afterwards.
//
// Typical use from a package's tests:
//
//	h := testfixture.New(db.DB, testfixture.WithWorkFactor(cfg.Security.BcryptWorkFactor))
//	seed, err := h.BeforeAll(ctx)   // once per package
//	tx := h.BeforeEach(t)           // per test, rolled back on cleanup
//	defer h.AfterAll()              // once, from TestMain
//
// A Harness is not reentrant: tests sharing one must not run in parallel.
package testfixture

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"jobly/internal/entity"
	"jobly/migrations"
	"jobly/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// EnvDatabaseURL names the environment variable holding the test database URL.
	EnvDatabaseURL = "JOBLY_TEST_DATABASE_URL"
	// EnvConfigPath names the environment variable overriding the test configuration file.
	EnvConfigPath = "JOBLY_TEST_CONFIG"
)

// Seed holds the generated IDs of the seeded jobs.
type Seed struct {
	JobID1 int64
	JobID2 int64
}

// Harness owns the test database connection.
type Harness struct {
	db         *gorm.DB
	workFactor int
	logger     *logger.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithWorkFactor sets the bcrypt cost used for seeded user passwords.
func WithWorkFactor(cost int) Option {
	return func(h *Harness) { h.workFactor = cost }
}

// WithLogger sets the logger used to report fixture progress.
func WithLogger(l *logger.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// New creates a harness over db.
func New(db *gorm.DB, opts ...Option) *Harness {
	h := &Harness{
		db:         db,
		workFactor: bcrypt.MinCost,
		logger:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Migrate applies the embedded schema migrations.
func (h *Harness) Migrate(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	// A dedicated connection keeps m.Close from closing the shared pool.
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	driver, err := migratepg.WithConnection(ctx, conn, &migratepg.Config{})
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("migration instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// BeforeAll empties the tables and inserts three companies, two users and two jobs.
func (h *Harness) BeforeAll(ctx context.Context) (*Seed, error) {
	db := h.db.WithContext(ctx)

	// jobs reference companies, so they go first.
	all := db.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []interface{}{&entity.Job{}, &entity.User{}, &entity.Company{}} {
		if err := all.Delete(model).Error; err != nil {
			return nil, fmt.Errorf("reset %T: %w", model, err)
		}
	}

	companies := []entity.Company{
		{Handle: "c1", Name: "C1", NumEmployees: ptr(1), Description: "Desc1", LogoURL: ptr("http://c1.img")},
		{Handle: "c2", Name: "C2", NumEmployees: ptr(2), Description: "Desc2", LogoURL: ptr("http://c2.img")},
		{Handle: "c3", Name: "C3", NumEmployees: ptr(3), Description: "Desc3", LogoURL: ptr("http://c3.img")},
	}
	if err := db.Create(&companies).Error; err != nil {
		return nil, fmt.Errorf("seed companies: %w", err)
	}

	users := make([]entity.User, 0, 2)
	for _, u := range []struct{ name, password string }{{"u1", "password1"}, {"u2", "password2"}} {
		hash, err := h.hashPassword(u.password)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", u.name, err)
		}
		users = append(users, entity.User{
			Username:  u.name,
			Password:  hash,
			FirstName: strings.ToUpper(u.name) + "F",
			LastName:  strings.ToUpper(u.name) + "L",
			Email:     u.name + "@email.com",
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}

	job1 := entity.Job{Title: "Job1", Salary: ptr(100000), Equity: ptr(0.1), CompanyHandle: "c1"}
	if err := db.Create(&job1).Error; err != nil {
		return nil, fmt.Errorf("seed job1: %w", err)
	}
	job2 := entity.Job{Title: "Job2", Salary: ptr(150000), Equity: ptr(0.2), CompanyHandle: "c2"}
	if err := db.Create(&job2).Error; err != nil {
		return nil, fmt.Errorf("seed job2: %w", err)
	}

	h.logger.Debug("Seeded test database", logger.Field("job_id_1", job1.ID), logger.Field("job_id_2", job2.ID))
	return &Seed{JobID1: job1.ID, JobID2: job2.ID}, nil
}

// hashPassword hashes password at the harness work factor.
func (h *Harness) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.workFactor)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// BeforeEach starts a transaction and rolls it back when t finishes.
func (h *Harness) BeforeEach(t testing.TB) *gorm.DB {
	t.Helper()

	tx := h.db.Begin()
	if tx.Error != nil {
		t.Fatalf("begin transaction: %v", tx.Error)
	}
	t.Cleanup(func() {
		if err := h.AfterEach(tx); err != nil {
			t.Errorf("rollback transaction: %v", err)
		}
	})
	return tx
}

// AfterEach discards everything done inside tx.
func (h *Harness) AfterEach(tx *gorm.DB) error {
	return tx.Rollback().Error
}

// AfterAll closes the connection pool.
func (h *Harness) AfterAll() error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ptr[T any](v T) *T {
	return &v
}
