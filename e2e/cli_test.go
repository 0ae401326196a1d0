package e2e_test

import (
	"context"
	"encoding/json"
	"io"
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

	"github.com/showquiz/tvtrivia/internal/api"
	"github.com/showquiz/tvtrivia/internal/factory"
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
	binaryPath := filepath.Join(projectRoot, "bin", "tvtrivia-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/tvtrivia")
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

	// Create application with the deterministic question provider
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	app, err := factory.New(factory.Config{
		Logger:   logger,
		Provider: factory.NewFakeProvider(),
	})
	require.NoError(t, err)

	handler := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		AuthService:       app.AuthService,
		SessionController: app.SessionController,
		RosterService:     app.RosterService,
		ShowService:       app.ShowService,
		BankService:       app.BankService,
		HubManager:        app.HubManager,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
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
	Username string `json:"username"`
	Token    string `json:"token"`
}

type questionResponse struct {
	ID         string `json:"id"`
	ShowTitle  string `json:"show_title"`
	Difficulty string `json:"difficulty"`
	Prompt     string `json:"prompt"`
	Answer     string `json:"answer,omitempty"`
}

type sessionResponse struct {
	ID                 string            `json:"id"`
	Decade             string            `json:"decade"`
	Phase              string            `json:"phase"`
	RoundNumber        int               `json:"round_number"`
	TurnNumber         int               `json:"turn_number"`
	CurrentPlayerIndex int               `json:"current_player_index"`
	SelectedShow       string            `json:"selected_show"`
	ActiveQuestion     *questionResponse `json:"active_question"`
	AnswerRevealed     bool              `json:"answer_revealed"`
}

type rosterResponse struct {
	Players []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Score int    `json:"score"`
	} `json:"players"`
}

type bankResponse struct {
	ID            string   `json:"id"`
	Decade        string   `json:"decade"`
	Shows         []string `json:"shows"`
	QuestionCount int      `json:"question_count"`
}

type showsResponse struct {
	Decade string   `json:"decade"`
	Shows  []string `json:"shows"`
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

func TestCLI_AuthCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register
	output, err := cli.run("auth", "register", "--user", "alice", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	var registerResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &registerResp))
	assert.Equal(t, "alice", registerResp.Username)
	assert.NotEmpty(t, registerResp.Token)

	// Login with the same credentials
	output, err = cli.run("auth", "login", "--user", "alice", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	var loginResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &loginResp))
	assert.Equal(t, "alice", loginResp.Username)

	// Me uses the saved token
	output, err = cli.run("auth", "me")
	require.NoError(t, err, "output: %s", output)

	var meResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &meResp))
	assert.Equal(t, "alice", meResp.Username)

	// Logout clears the token file
	output, err = cli.run("auth", "logout")
	require.NoError(t, err, "output: %s", output)

	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Equal(t, "Logged out", msgResp.Message)
}

func TestCLI_BankCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// List decades
	output, err := cli.run("bank", "decades")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "1990s")

	// Preset shows for a decade
	output, err = cli.run("bank", "presets", "1990s")
	require.NoError(t, err, "output: %s", output)

	var presets showsResponse
	require.NoError(t, json.Unmarshal([]byte(output), &presets))
	assert.Equal(t, "1990s", presets.Decade)
	assert.NotEmpty(t, presets.Shows)

	// Seeding requires a host token
	output, err = cli.run("bank", "seed", "1990s", "--show", "Seinfeld", "--show", "Friends")
	assert.Error(t, err, "seeding without auth should fail")

	// Register, which saves the token to the token file
	output, err = cli.run("auth", "register", "--user", "host", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	// Seed a bank
	output, err = cli.run("bank", "seed", "1990s", "--show", "Seinfeld", "--show", "Friends", "--per-show", "3")
	require.NoError(t, err, "output: %s", output)

	var bank bankResponse
	require.NoError(t, json.Unmarshal([]byte(output), &bank))
	assert.Equal(t, "1990s", bank.Decade)
	assert.Equal(t, 6, bank.QuestionCount)

	// Fetch the bank back
	output, err = cli.run("bank", "get", "1990s")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &bank))
	assert.Len(t, bank.Shows, 2)

	// Status against a matching selection
	output, err = cli.run("bank", "status", "1990s", "--show", "Seinfeld", "--show", "Friends")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, `"has_bank": true`)
}

func TestCLI_FullGameFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register a host and seed a bank
	output, err := cli.run("auth", "register", "--user", "host", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("bank", "seed", "1990s", "--show", "Seinfeld", "--show", "Friends")
	require.NoError(t, err, "output: %s", output)

	// Create a session
	output, err = cli.run("session", "create", "--decade", "1990s")
	require.NoError(t, err, "output: %s", output)

	var sess sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &sess))
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, "awaiting_show_selection", sess.Phase)
	sessionID := sess.ID
	t.Logf("Created session: %s", sessionID)

	// Toggle shows for the decade
	output, err = cli.run("session", "shows", sessionID, "--decade", "1990s", "--toggle", "Seinfeld")
	require.NoError(t, err, "output: %s", output)

	var selections showsResponse
	require.NoError(t, json.Unmarshal([]byte(output), &selections))
	assert.Equal(t, []string{"Seinfeld"}, selections.Shows)

	// Select a show for the turn
	output, err = cli.run("session", "select", sessionID, "--show", "Seinfeld")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &sess))
	assert.Equal(t, "show_selected", sess.Phase)
	assert.Equal(t, "Seinfeld", sess.SelectedShow)

	// Draw a question; the answer must stay hidden
	output, err = cli.run("session", "draw", sessionID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &sess))
	assert.Equal(t, "question_drawn", sess.Phase)
	require.NotNil(t, sess.ActiveQuestion)
	assert.Equal(t, "Seinfeld", sess.ActiveQuestion.ShowTitle)
	assert.Empty(t, sess.ActiveQuestion.Answer)

	// Reveal the answer
	output, err = cli.run("session", "reveal", sessionID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &sess))
	assert.True(t, sess.AnswerRevealed)
	require.NotNil(t, sess.ActiveQuestion)
	assert.NotEmpty(t, sess.ActiveQuestion.Answer)

	// Resolve correct and advance the turn
	output, err = cli.run("session", "resolve", sessionID, "--correct")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &sess))
	assert.Equal(t, "awaiting_show_selection", sess.Phase)
	assert.Equal(t, 1, sess.TurnNumber)

	// The first player scored
	output, err = cli.run("roster", "get", sessionID)
	require.NoError(t, err, "output: %s", output)

	var roster rosterResponse
	require.NoError(t, json.Unmarshal([]byte(output), &roster))
	require.Len(t, roster.Players, 2)
	assert.Greater(t, roster.Players[0].Score, 0)
	assert.Equal(t, 0, roster.Players[1].Score)
}

func TestCLI_RosterCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("session", "create", "--decade", "1990s")
	require.NoError(t, err, "output: %s", output)

	var sess sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &sess))
	sessionID := sess.ID

	// Add a player
	output, err = cli.run("roster", "add", sessionID)
	require.NoError(t, err, "output: %s", output)

	var roster rosterResponse
	require.NoError(t, json.Unmarshal([]byte(output), &roster))
	require.Len(t, roster.Players, 3)
	assert.Equal(t, "Player 3", roster.Players[2].Name)

	// Rename the first player
	output, err = cli.run("roster", "rename", sessionID, roster.Players[0].ID, "--name", "Team Kramer")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &roster))
	assert.Equal(t, "Team Kramer", roster.Players[0].Name)

	// Manual score adjustment
	output, err = cli.run("roster", "score", sessionID, roster.Players[0].ID, "--delta", "150")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &roster))
	assert.Equal(t, 150, roster.Players[0].Score)

	// Remove the added player
	output, err = cli.run("roster", "remove", sessionID, roster.Players[2].ID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &roster))
	assert.Len(t, roster.Players, 2)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Unknown session
	output, err := cli.run("session", "get", "UNKNOWN")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")

	// Bad decade
	output, err = cli.run("session", "create", "--decade", "nineties")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "decade")
}
