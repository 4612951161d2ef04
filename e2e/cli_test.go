package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickergate/tickergate/internal/api"
	"github.com/tickergate/tickergate/internal/factory"
	"github.com/tickergate/tickergate/internal/web"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "tickergate-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/tickergate")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Stub the upstream price feed so tests never leave localhost
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ethereum":{"usd":2000,"inr":166000}}`))
	}))

	// Create application
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{
		PriceFeedURL: feed.URL,
		Logger:       logger,
	})
	require.NoError(t, err)

	projectRoot := findProjectRoot(t)

	// Create routers
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		SessionGate: app.SessionGate,
		Ticker:      app.Ticker,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		SessionGate: app.SessionGate,
		Ticker:      app.Ticker,
		Hub:         app.Hub,
		StaticDir:   filepath.Join(projectRoot, "internal/web/static"),
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			_ = app.Close()
			feed.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type sessionResponse struct {
	Email         string `json:"email"`
	EstablishedAt int64  `json:"established_at"`
}

type priceResponse struct {
	USD       float64 `json:"usd"`
	INR       float64 `json:"inr"`
	Countdown int     `json:"countdown"`
	Live      bool    `json:"live"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_AccountLifecycle(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Signup
	output, err := cli.run("auth", "signup", "--email", "Alice@Example.com", "--password", "hunter2")
	require.NoError(t, err, "output: %s", output)

	var signup sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &signup))
	assert.Equal(t, "alice@example.com", signup.Email)
	assert.NotZero(t, signup.EstablishedAt)

	// Session reflects the signup
	output, err = cli.run("auth", "session")
	require.NoError(t, err, "output: %s", output)

	var session sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.Equal(t, "alice@example.com", session.Email)

	// Logout
	output, err = cli.run("auth", "logout")
	require.NoError(t, err, "output: %s", output)

	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Equal(t, "Signed out", msg.Message)

	// Session is gone
	output, err = cli.run("auth", "session")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "no active session")

	// Login again
	output, err = cli.run("auth", "login", "--email", "alice@example.com", "--password", "hunter2")
	require.NoError(t, err, "output: %s", output)

	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.Equal(t, "alice@example.com", session.Email)
}

func TestCLI_Price(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("auth", "signup", "--email", "a@b.com", "--password", "abcdef")
	require.NoError(t, err, "output: %s", output)

	// The first fetch happens right after the gate opens; poll until it lands
	var price priceResponse
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		output, err = cli.run("price")
		require.NoError(t, err, "output: %s", output)
		require.NoError(t, json.Unmarshal([]byte(output), &price))
		if price.Live {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	assert.True(t, price.Live)
	assert.Equal(t, 2000.0, price.USD)
	assert.Equal(t, 166000.0, price.INR)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Price without a session
	output, err := cli.run("price")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "authentication required")

	// Login with an unknown account
	output, err = cli.run("auth", "login", "--email", "nobody@example.com", "--password", "abcdef")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "no account found")

	// Signup with a short password
	output, err = cli.run("auth", "signup", "--email", "a@b.com", "--password", "abc")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "at least 6 characters")
}
