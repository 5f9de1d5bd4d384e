package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakemesh/wagerd/internal/api"
	"github.com/stakemesh/wagerd/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "wagerctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/wagerctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
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
	server   *http.Server
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

	// Create application
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:              logger,
		AuthService:         app.AuthService,
		Ledger:              app.Ledger,
		SessionController:   app.SessionController,
		AdmissionController: app.AdmissionController,
		SettlementEngine:    app.SettlementEngine,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
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
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
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
type authResponse struct {
	Account string `json:"account"`
	Token   string `json:"token"`
}

type balanceResponse struct {
	Account string `json:"account"`
	Balance uint64 `json:"balance"`
}

type slotResponse struct {
	Player string `json:"player"`
	Team   int    `json:"team"`
	Spawns uint16 `json:"spawns"`
	Kills  uint16 `json:"kills"`
}

type sessionResponse struct {
	ID           string         `json:"id"`
	Authority    string         `json:"authority"`
	BetAmount    uint64         `json:"bet_amount"`
	Mode         string         `json:"mode"`
	State        string         `json:"state"`
	VaultBalance uint64         `json:"vault_balance"`
	Slots        []slotResponse `json:"slots"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// register creates an identity and returns its token
func register(t *testing.T, cli *cliRunner, account string) string {
	t.Helper()

	output, err := cli.run("identity", "register", "--account", account, "--pass", account+"-secret")
	require.NoError(t, err, "output: %s", output)

	var resp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, account, resp.Account)
	require.NotEmpty(t, resp.Token)
	return resp.Token
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

func TestCLI_IdentityCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register saves the token to the token file
	output, err := cli.run("identity", "register", "--account", "alice", "--pass", "hunter2")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "alice", authResp.Account)
	assert.NotEmpty(t, authResp.Token)

	// Balance works with the saved token
	output, err = cli.run("account", "balance")
	require.NoError(t, err, "output: %s", output)

	var balResp balanceResponse
	require.NoError(t, json.Unmarshal([]byte(output), &balResp))
	assert.Equal(t, "alice", balResp.Account)
	assert.Equal(t, uint64(0), balResp.Balance)

	// Login issues a fresh token
	output, err = cli.run("identity", "login", "--account", "alice", "--pass", "hunter2")
	require.NoError(t, err, "output: %s", output)

	var loginResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &loginResp))
	assert.Equal(t, "alice", loginResp.Account)
	assert.NotEqual(t, authResp.Token, loginResp.Token)

	// Deposit with the fresh token
	output, err = cli.run("account", "deposit", "--amount", "150")
	require.NoError(t, err, "output: %s", output)

	require.NoError(t, json.Unmarshal([]byte(output), &balResp))
	assert.Equal(t, uint64(150), balResp.Balance)
}

func TestCLI_FullWagerFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	adminToken := register(t, cli, "admin")
	aliceToken := register(t, cli, "alice")
	bobToken := register(t, cli, "bob")

	// Fund the players
	output, err := cli.runWithToken(aliceToken, "account", "deposit", "--amount", "100")
	require.NoError(t, err, "output: %s", output)
	output, err = cli.runWithToken(bobToken, "account", "deposit", "--amount", "100")
	require.NoError(t, err, "output: %s", output)

	// Admin creates a winner-takes-all session
	output, err = cli.runWithToken(adminToken, "session", "create", "GAME1", "--bet", "100", "--mode", "wta-1v1")
	require.NoError(t, err, "output: %s", output)

	var session sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.Equal(t, "GAME1", session.ID)
	assert.Equal(t, "admin", session.Authority)
	assert.Equal(t, "created", session.State)

	// Players join opposing teams
	output, err = cli.runWithToken(aliceToken, "session", "join", "GAME1", "--team", "0")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.Equal(t, "created", session.State)
	assert.Equal(t, uint64(100), session.VaultBalance)

	output, err = cli.runWithToken(bobToken, "session", "join", "GAME1", "--team", "1")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.Equal(t, "active", session.State)
	assert.Equal(t, uint64(200), session.VaultBalance)
	assert.Len(t, session.Slots, 2)

	// Only the authority may settle
	output, err = cli.runWithToken(bobToken, "session", "settle", "GAME1", "--team", "0", "--recipients", "alice")
	assert.Error(t, err, "non-authority should not be able to settle")
	assert.Contains(t, strings.ToLower(output), "not permitted")

	// Admin settles team 0 as the winner
	output, err = cli.runWithToken(adminToken, "session", "settle", "GAME1", "--team", "0", "--recipients", "alice")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.Equal(t, "completed", session.State)
	assert.Equal(t, uint64(0), session.VaultBalance)

	// Alice took the whole pot
	output, err = cli.runWithToken(aliceToken, "account", "balance")
	require.NoError(t, err, "output: %s", output)

	var balResp balanceResponse
	require.NoError(t, json.Unmarshal([]byte(output), &balResp))
	assert.Equal(t, uint64(200), balResp.Balance)

	// Close the settled session
	output, err = cli.runWithToken(adminToken, "session", "close", "GAME1")
	require.NoError(t, err, "output: %s", output)

	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Contains(t, msgResp.Message, "closed")

	// The session record is gone
	output, err = cli.runWithToken(adminToken, "session", "get", "GAME1")
	assert.Error(t, err, "should not find session after close")
	assert.Contains(t, strings.ToLower(output), "not found")
}

func TestCLI_PayToSpawnFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	adminToken := register(t, cli, "admin")
	aliceToken := register(t, cli, "alice")
	bobToken := register(t, cli, "bob")

	// Alice gets enough for the stake plus one spawn purchase
	output, err := cli.runWithToken(aliceToken, "account", "deposit", "--amount", "200")
	require.NoError(t, err, "output: %s", output)
	output, err = cli.runWithToken(bobToken, "account", "deposit", "--amount", "100")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.runWithToken(adminToken, "session", "create", "DUEL1", "--bet", "100", "--mode", "pts-1v1")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.runWithToken(aliceToken, "session", "join", "DUEL1", "--team", "0")
	require.NoError(t, err, "output: %s", output)
	output, err = cli.runWithToken(bobToken, "session", "join", "DUEL1", "--team", "1")
	require.NoError(t, err, "output: %s", output)

	// Alice buys an extra spawn allowance
	output, err = cli.runWithToken(aliceToken, "session", "spawn", "DUEL1")
	require.NoError(t, err, "output: %s", output)

	var session sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.Equal(t, uint64(300), session.VaultBalance)
	require.Len(t, session.Slots, 2)
	assert.Equal(t, uint16(20), session.Slots[0].Spawns)

	// Admin records a few kills for alice
	for i := 0; i < 5; i++ {
		output, err = cli.runWithToken(adminToken, "session", "kill", "DUEL1",
			"--killer", "alice", "--killer-team", "0",
			"--victim", "bob", "--victim-team", "1")
		require.NoError(t, err, "output: %s", output)
	}

	// Players may not record kills
	output, err = cli.runWithToken(aliceToken, "session", "kill", "DUEL1",
		"--killer", "alice", "--killer-team", "0",
		"--victim", "bob", "--victim-team", "1")
	assert.Error(t, err, "non-authority should not be able to record kills")

	// Earnings are proportional to kills plus remaining spawns
	output, err = cli.runWithToken(adminToken, "session", "settle-spawns", "DUEL1", "--recipients", "alice,bob")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.Equal(t, "completed", session.State)

	output, err = cli.runWithToken(aliceToken, "account", "balance")
	require.NoError(t, err, "output: %s", output)

	var balResp balanceResponse
	require.NoError(t, json.Unmarshal([]byte(output), &balResp))
	assert.Equal(t, uint64(250), balResp.Balance)
}

func TestCLI_RefundFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	adminToken := register(t, cli, "admin")
	carolToken := register(t, cli, "carol")

	output, err := cli.runWithToken(carolToken, "account", "deposit", "--amount", "50")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.runWithToken(adminToken, "session", "create", "GAME2", "--bet", "50", "--mode", "wta-1v1")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.runWithToken(carolToken, "session", "join", "GAME2", "--team", "0")
	require.NoError(t, err, "output: %s", output)

	// Refund returns the stake
	output, err = cli.runWithToken(adminToken, "session", "refund", "GAME2")
	require.NoError(t, err, "output: %s", output)

	var session sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.Equal(t, "refunded", session.State)
	assert.Equal(t, uint64(0), session.VaultBalance)

	output, err = cli.runWithToken(carolToken, "account", "balance")
	require.NoError(t, err, "output: %s", output)

	var balResp balanceResponse
	require.NoError(t, json.Unmarshal([]byte(output), &balResp))
	assert.Equal(t, uint64(50), balResp.Balance)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Balance without auth
	output, err := cli.run("account", "balance")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "authentication")

	// Get non-existent session
	token := register(t, cli, "alice")

	output, err = cli.runWithToken(token, "session", "get", "MISSING")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}
