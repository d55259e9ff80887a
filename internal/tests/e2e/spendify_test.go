//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/spendify/apiserver/config"
	"github.com/spendify/apiserver/internal/server"
)

const (
	serverPort = 18082
)

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	root, err := repoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to locate repo root: %v\n", err)
		os.Exit(1)
	}

	if err := dockerCompose(ctx, root, "up", "-d"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start docker compose: %v\n", err)
		os.Exit(1)
	}

	if err := waitForPostgres(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "postgres not ready: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	if err := runMigrations(root); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	srv, err := startServer(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	if err := waitForHealth(ctx, baseURL+"/healthz"); err != nil {
		fmt.Fprintf(os.Stderr, "server not healthy: %v\n", err)
		_ = srv.Shutdown()
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	code := m.Run()

	_ = srv.Shutdown()
	_ = dockerCompose(context.Background(), root, "down")
	os.Exit(code)
}

type envelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type loginResponse struct {
	Error    bool   `json:"error"`
	Realname string `json:"realname"`
}

type historyEntry struct {
	Username    string `json:"username"`
	Date        string `json:"date"`
	Amount      int64  `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func TestSpendingLifecycle(t *testing.T) {
	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	username := fmt.Sprintf("alice_%d", time.Now().UnixNano())

	register := map[string]any{
		"username":      username,
		"password":      "pw1",
		"realname":      "Alice Smith",
		"address":       "1 Main St",
		"accountNumber": 12345678,
		"routingNumber": 87654321,
		"bankUsername":  "alice-bank",
		"bankPassword":  "bank-pw",
	}

	status, body := postJSON(t, baseURL+"/registerUser", register)
	if status != http.StatusOK {
		t.Fatalf("register status %d: %s", status, body)
	}
	var env envelope
	mustDecode(t, body, &env)
	if env.Error || env.Message != "Registered user." {
		t.Fatalf("unexpected register envelope: %+v", env)
	}

	status, body = postJSON(t, baseURL+"/registerUser", register)
	if status != http.StatusConflict {
		t.Fatalf("duplicate register status %d: %s", status, body)
	}
	mustDecode(t, body, &env)
	if !env.Error || !strings.Contains(env.Message, username) {
		t.Fatalf("unexpected duplicate envelope: %+v", env)
	}

	status, body = postJSON(t, baseURL+"/loginUser", map[string]any{"username": username, "password": "pw1"})
	if status != http.StatusOK {
		t.Fatalf("login status %d: %s", status, body)
	}
	var login loginResponse
	mustDecode(t, body, &login)
	if login.Error || login.Realname != "Alice Smith" {
		t.Fatalf("unexpected login response: %+v", login)
	}

	status, body = postJSON(t, baseURL+"/loginUser", map[string]any{"username": username, "password": "wrong"})
	if status != http.StatusUnauthorized {
		t.Fatalf("bad login status %d: %s", status, body)
	}

	status, body = postJSON(t, baseURL+"/addEntry", map[string]any{
		"username":    username,
		"date":        "2024-01-01",
		"amount":      10,
		"category":    "food",
		"description": "lunch",
	})
	if status != http.StatusOK {
		t.Fatalf("add entry status %d: %s", status, body)
	}

	// Read-after-write: the next request's snapshot must contain the entry,
	// and the substring filter "foo" must match category "food".
	status, body = postJSON(t, baseURL+"/historyEntries", map[string]any{"username": username, "category": "foo"})
	if status != http.StatusOK {
		t.Fatalf("history status %d: %s", status, body)
	}
	var entries []historyEntry
	mustDecode(t, body, &entries)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d: %s", len(entries), body)
	}
	if entries[0].Category != "food" || entries[0].Amount != 10 {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestStaticAssets(t *testing.T) {
	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)

	resp, err := http.Get(baseURL + "/index.html")
	if err != nil {
		t.Fatalf("get index: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("index status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/html" {
		t.Fatalf("unexpected content type %q", ct)
	}

	resp404, err := http.Get(baseURL + "/no-such-file.html")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	defer resp404.Body.Close()
	if resp404.StatusCode != http.StatusNotFound {
		t.Fatalf("missing file status %d", resp404.StatusCode)
	}
}

func postJSON(t *testing.T, url string, payload any) (int, []byte) {
	t.Helper()

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, body
}

func mustDecode(t *testing.T, data []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
}

func waitForPostgres(ctx context.Context) error {
	cfg := testConfig("")
	db, err := sql.Open("postgres", cfg.Database.PostgresURL())
	if err != nil {
		return err
	}
	defer db.Close()

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("postgres ping timeout: %w", err)
		case <-ticker.C:
		}
	}
}

func waitForHealth(ctx context.Context, url string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			return fmt.Errorf("health check failed with status")
		case <-ticker.C:
		}
	}
}

func runMigrations(root string) error {
	cfg := testConfig("")
	migrationsPath := filepath.Join(root, "internal", "db", "migrations")
	migrationsURL := "file://" + migrationsPath

	migrator, err := migrate.New(migrationsURL, cfg.Database.PostgresURL())
	if err != nil {
		return err
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := migrator.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func startServer(root string) (*server.Server, error) {
	staticDir, err := os.MkdirTemp("", "spendify-client")
	if err != nil {
		return nil, err
	}
	index := filepath.Join(staticDir, "index.html")
	if err := os.WriteFile(index, []byte("<html><body>Spendify</body></html>"), 0o644); err != nil {
		return nil, err
	}

	cfg := testConfig(staticDir)
	srv, err := server.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	go func() {
		_ = srv.Start()
	}()

	return srv, nil
}

func testConfig(staticDir string) config.Config {
	return config.Config{
		ServerPort: serverPort,
		StaticDir:  staticDir,
		Database: config.DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "spendify",
			Password: "spendify",
			DBName:   "spendify",
		},
	}
}

func dockerCompose(ctx context.Context, root string, args ...string) error {
	composeFile := filepath.Join(root, "development", "docker-compose.yml")
	baseArgs := append([]string{"compose", "-f", composeFile}, args...)
	cmd := exec.CommandContext(ctx, "docker", baseArgs...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

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
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}
