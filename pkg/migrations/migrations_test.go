package migrations

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
)

type testLogger struct {
	infos []string
	warns []string
}

func (l *testLogger) Info(msg string, _ ...any)  { l.infos = append(l.infos, msg) }
func (l *testLogger) Warn(msg string, _ ...any)  { l.warns = append(l.warns, msg) }
func (l *testLogger) Error(msg string, _ ...any) {}

func (l *testLogger) sawInfo(msg string) bool {
	for _, m := range l.infos {
		if m == msg {
			return true
		}
	}
	return false
}

type fakeMigrator struct {
	upErr   error
	downErr error
	ups     int
	downs   int
}

func (m *fakeMigrator) Up() error   { m.ups++; return m.upErr }
func (m *fakeMigrator) Down() error { m.downs++; return m.downErr }
func (m *fakeMigrator) Close() (error, error) {
	return nil, nil
}

type blockingMigrator struct {
	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
}

func newBlockingMigrator() *blockingMigrator {
	return &blockingMigrator{closeCh: make(chan struct{})}
}

func (m *blockingMigrator) Up() error {
	<-m.closeCh
	return nil
}

func (m *blockingMigrator) Down() error {
	<-m.closeCh
	return nil
}

func (m *blockingMigrator) Close() (error, error) {
	m.closeOnce.Do(func() {
		m.closed.Store(true)
		close(m.closeCh)
	})
	return nil, nil
}

// stubFactories swaps the driver/migrator factories for the duration of the test.
func stubFactories(t *testing.T, m migrator, onSource func(string)) {
	t.Helper()

	origDriverFactory := driverFactory
	origMigratorFactory := migratorFactory
	t.Cleanup(func() {
		driverFactory = origDriverFactory
		migratorFactory = origMigratorFactory
	})

	driverFactory = func(_ *sql.DB, cfg Config) (database.Driver, error) {
		if cfg.MigrationsTable == "" {
			t.Fatalf("expected migrations table to be defaulted")
		}
		return nil, nil
	}
	migratorFactory = func(sourceURL string, _ database.Driver) (migrator, error) {
		if onSource != nil {
			onSource(sourceURL)
		}
		return m, nil
	}
}

func TestUp_NilDB(t *testing.T) {
	if err := Up(context.Background(), nil, Config{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestUp_ContextAlreadyCancelled_ReturnsCtxErr(t *testing.T) {
	called := atomic.Bool{}
	origDriverFactory := driverFactory
	t.Cleanup(func() { driverFactory = origDriverFactory })
	driverFactory = func(_ *sql.DB, _ Config) (database.Driver, error) {
		called.Store(true)
		return nil, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Up(ctx, &sql.DB{}, Config{Dir: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if called.Load() {
		t.Fatalf("expected no driver creation when ctx already cancelled")
	}
}

func TestUp_ContextDeadlineExceeded_ReturnsCtxErr_AndCloses(t *testing.T) {
	block := newBlockingMigrator()
	stubFactories(t, block, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := Up(ctx, &sql.DB{}, Config{Dir: t.TempDir()})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if !block.closed.Load() {
		t.Fatalf("expected migrator.Close to be attempted on ctx cancellation")
	}
}

func TestUp_ErrNoChange_ReturnsNil(t *testing.T) {
	stubFactories(t, &fakeMigrator{upErr: migrate.ErrNoChange}, nil)
	logger := &testLogger{}

	if err := Up(context.Background(), &sql.DB{}, Config{Dir: t.TempDir(), Logger: logger}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !logger.sawInfo("No migrations to apply") {
		t.Fatalf("expected 'No migrations to apply' log")
	}
}

func TestUp_Success_LogsApplied(t *testing.T) {
	m := &fakeMigrator{}
	stubFactories(t, m, nil)
	logger := &testLogger{}

	if err := Up(context.Background(), &sql.DB{}, Config{Dir: t.TempDir(), Logger: logger}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if m.ups != 1 || m.downs != 0 {
		t.Fatalf("expected exactly one Up call, got ups=%d downs=%d", m.ups, m.downs)
	}
	if !logger.sawInfo("Migrations applied successfully") {
		t.Fatalf("expected 'Migrations applied successfully' log")
	}
}

func TestDown_RunsDownAndWrapsErrors(t *testing.T) {
	m := &fakeMigrator{downErr: errors.New("boom")}
	stubFactories(t, m, nil)

	err := Down(context.Background(), &sql.DB{}, Config{Dir: t.TempDir()})
	if err == nil || !strings.Contains(err.Error(), "migrations: down") {
		t.Fatalf("expected wrapped down error, got %v", err)
	}
	if m.downs != 1 || m.ups != 0 {
		t.Fatalf("expected exactly one Down call, got ups=%d downs=%d", m.ups, m.downs)
	}
}

func TestUp_BuildsFileSourceURL(t *testing.T) {
	tmp := t.TempDir()
	var gotSourceURL string
	stubFactories(t, &fakeMigrator{upErr: migrate.ErrNoChange}, func(s string) { gotSourceURL = s })

	if err := Up(context.Background(), &sql.DB{}, Config{Dir: tmp}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	abs, _ := filepath.Abs(tmp)
	expected := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	if gotSourceURL != expected {
		t.Fatalf("expected sourceURL %q, got %q", expected, gotSourceURL)
	}
}

func TestUp_MigratorInitError(t *testing.T) {
	origDriverFactory := driverFactory
	origMigratorFactory := migratorFactory
	t.Cleanup(func() {
		driverFactory = origDriverFactory
		migratorFactory = origMigratorFactory
	})

	driverFactory = func(_ *sql.DB, _ Config) (database.Driver, error) { return nil, nil }
	migratorFactory = func(_ string, _ database.Driver) (migrator, error) {
		return nil, errors.New("boom")
	}

	err := Up(context.Background(), &sql.DB{}, Config{Dir: t.TempDir()})
	if err == nil || !strings.Contains(err.Error(), "migrations: init") {
		t.Fatalf("expected wrapped init error, got %v", err)
	}
}

func TestUp_HandlesPathsWithSpaces(t *testing.T) {
	dirWithSpaces := filepath.Join(t.TempDir(), "waitlist migrations")
	if err := os.MkdirAll(dirWithSpaces, 0o755); err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}

	var gotSourceURL string
	stubFactories(t, &fakeMigrator{upErr: migrate.ErrNoChange}, func(s string) { gotSourceURL = s })

	if err := Up(context.Background(), &sql.DB{}, Config{Dir: dirWithSpaces}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	parsedURL, err := url.Parse(gotSourceURL)
	if err != nil {
		t.Fatalf("sourceURL is not a valid URL: %v", err)
	}
	if parsedURL.Scheme != "file" {
		t.Fatalf("expected scheme 'file', got %q", parsedURL.Scheme)
	}

	abs, _ := filepath.Abs(dirWithSpaces)
	if parsedURL.Path != filepath.ToSlash(abs) {
		t.Fatalf("expected path %q, got %q", filepath.ToSlash(abs), parsedURL.Path)
	}
}
