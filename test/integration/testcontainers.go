package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arxivtools/paperbot/pkg/bot"
	"github.com/arxivtools/paperbot/pkg/config"
	"github.com/arxivtools/paperbot/pkg/server"
	"github.com/arxivtools/paperbot/pkg/server/endpoints"
	gormstore "github.com/arxivtools/paperbot/pkg/server/store/gorm"
)

// APISecret signs the bearer tokens used by authenticated scenarios. The
// server under test is started with the same secret.
const APISecret = "integration-secret"

// serverPort is fixed so scenario URLs stay stable across runs.
const serverPort = "18080"

// TestContext owns the postgres container, a GORM handle for direct
// assertions, and the server under test. The server runs either as a
// built paperbotctl binary (PAPERBOT_BINARY) or in-process
// (PAPERBOT_INLINE=1).
type TestContext struct {
	DB         *gorm.DB
	ServerURL  string
	HTTPClient *http.Client

	rawDB       *sql.DB
	container   testcontainers.Container
	databaseURL string
	configDir   string
	serverCmd   *exec.Cmd
	cancelCmd   context.CancelFunc
	inlineSrv   *server.Server
}

func NewTestContext(ctx context.Context) (*TestContext, error) {
	binary := os.Getenv("PAPERBOT_BINARY")
	inline := os.Getenv("PAPERBOT_INLINE") == "1"
	if !inline {
		if binary == "" {
			return nil, fmt.Errorf("set PAPERBOT_BINARY to a built paperbotctl, or PAPERBOT_INLINE=1 to run the server in-process")
		}
		if _, err := os.Stat(binary); err != nil {
			return nil, fmt.Errorf("PAPERBOT_BINARY: %w", err)
		}
	}

	tc := &TestContext{ServerURL: "http://127.0.0.1:" + serverPort}
	ok := false
	defer func() {
		if !ok {
			tc.Close(ctx)
		}
	}()

	if err := tc.startPostgres(ctx); err != nil {
		return nil, err
	}
	if err := tc.applyMigrations(); err != nil {
		return nil, err
	}

	// Scenario keyword writes land in a throwaway config dir
	configDir, err := os.MkdirTemp("", "paperbot-integration")
	if err != nil {
		return nil, err
	}
	tc.configDir = configDir

	if inline {
		err = tc.startInline()
	} else {
		err = tc.startBinary(binary)
	}
	if err != nil {
		return nil, err
	}

	if err := waitForStatus(tc.ServerURL+"/status", 30*time.Second); err != nil {
		return nil, err
	}

	// Form posts assert on the 302 itself, so don't follow redirects
	tc.HTTPClient = &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	ok = true
	return tc, nil
}

// startPostgres brings up postgres:16 and connects GORM to it.
func (tc *TestContext) startPostgres(ctx context.Context) error {
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("paperbot_test"),
		tcpostgres.WithUsername("paperbot"),
		tcpostgres.WithPassword("paperbot"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return fmt.Errorf("start postgres container: %w", err)
	}
	tc.container = container

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fmt.Errorf("container connection string: %w", err)
	}
	tc.databaseURL = url

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN:                  url,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("connect to test database: %w", err)
	}
	tc.DB = db

	tc.rawDB, err = db.DB()
	return err
}

// applyMigrations runs every up migration in timestamp order.
func (tc *TestContext) applyMigrations() error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(root, "db", "migrations", "*.up.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		contents, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		if _, err := tc.rawDB.Exec(string(contents)); err != nil {
			return fmt.Errorf("migration %s: %w", filepath.Base(file), err)
		}
	}
	return nil
}

// startInline runs the server inside the test process.
func (tc *TestContext) startInline() error {
	// The server reads these at construction time
	_ = os.Setenv("PAPERBOT_API_SECRET", APISecret)
	_ = os.Setenv("PAPERBOT_CONFIG_PATH", tc.configDir)
	_ = os.Setenv("PAPERBOT_ACTIVITY_ENABLED", "false")
	if err := config.Reload(); err != nil {
		return err
	}

	// No arXiv client, scenarios never run a real fetch
	b := bot.New(gormstore.NewPapersStore(tc.DB), gormstore.NewRunsStore(tc.DB), nil)

	s := server.NewServer(tc.DB, b, "127.0.0.1", serverPort)
	endpoints.RegisterAll(s)
	go func() { _ = s.Start() }()

	tc.inlineSrv = s
	return nil
}

// startBinary runs the built paperbotctl under test.
func (tc *TestContext) startBinary(binary string) error {
	ctx, cancel := context.WithCancel(context.Background())
	tc.cancelCmd = cancel

	// Migrations already ran above, and --no-poll keeps the background
	// loop from hitting the real arXiv API mid-scenario.
	cmd := exec.CommandContext(ctx, binary, "server", "--no-migrate", "--no-poll", "-b", "127.0.0.1", "-p", serverPort)
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+tc.databaseURL,
		"PAPERBOT_API_SECRET="+APISecret,
		"PAPERBOT_CONFIG_PATH="+tc.configDir,
		"PAPERBOT_ACTIVITY_ENABLED=false",
		"PAPERBOT_KEYWORDS=",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", binary, err)
	}
	tc.serverCmd = cmd
	return nil
}

// waitForStatus polls the status endpoint until it answers 200. A 503
// means the server is up but its database check is failing, keep waiting.
func waitForStatus(url string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("no healthy answer from %s within %s", url, timeout)
}

// Close tears down whatever NewTestContext managed to start. Safe to
// call on a partially built context.
func (tc *TestContext) Close(ctx context.Context) {
	if tc.inlineSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		_ = tc.inlineSrv.Shutdown(shutdownCtx)
		cancel()
	}
	if tc.cancelCmd != nil {
		tc.cancelCmd()
	}
	if tc.serverCmd != nil && tc.serverCmd.Process != nil {
		_ = tc.serverCmd.Process.Kill()
		_ = tc.serverCmd.Wait()
	}
	if tc.rawDB != nil {
		_ = tc.rawDB.Close()
	}
	if tc.container != nil {
		_ = tc.container.Terminate(ctx)
	}
	if tc.configDir != "" {
		_ = os.RemoveAll(tc.configDir)
	}
}

// repoRoot walks up from the working directory until it finds go.mod.
func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod above the working directory")
		}
		dir = parent
	}
}
