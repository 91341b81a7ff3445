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

	"github.com/palcut/palcut-go/internal/api"
	"github.com/palcut/palcut-go/internal/factory"
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
	binaryPath := filepath.Join(projectRoot, "bin", "palcut-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/palcut")
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
		Logger:            logger,
		AuthService:       app.AuthService,
		RoomController:    app.RoomController,
		HistoryController: app.HistoryController,
		ReportService:     app.ReportService,
		HubManager:        app.HubManager,
		Broadcaster:       app.Broadcaster,
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
type sessionResponse struct {
	SessionToken string `json:"session_token"`
}

type playerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	IsOut     bool   `json:"is_out"`
	TotalPaid int    `json:"total_paid"`
}

type roomResponse struct {
	Code         string           `json:"code"`
	Players      []playerResponse `json:"players"`
	GameStarted  bool             `json:"game_started"`
	RoundsPlayed int              `json:"rounds_played"`
	BuyIn        int              `json:"buy_in"`
	Pot          int              `json:"pot"`
}

type recordResponse struct {
	ID        string `json:"id"`
	Winner    string `json:"winner"`
	Pot       int    `json:"pot"`
	DirectWin bool   `json:"direct_win"`
}

type roundResponse struct {
	Room   roomResponse    `json:"room"`
	Record *recordResponse `json:"record"`
}

type finishResponse struct {
	Room   roomResponse   `json:"room"`
	Record recordResponse `json:"record"`
}

type historyResponse struct {
	Games  []recordResponse `json:"games"`
	Totals []struct {
		Name string `json:"name"`
		Wins int    `json:"wins"`
		Net  int    `json:"net"`
	} `json:"totals"`
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

func TestCLI_SessionCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create session
	output, err := cli.run("session", "create")
	require.NoError(t, err, "output: %s", output)

	var sessResp sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &sessResp))
	assert.NotEmpty(t, sessResp.SessionToken)

	// Session info (token should be saved in token file)
	output, err = cli.run("session", "me")
	require.NoError(t, err, "output: %s", output)

	var meResp struct {
		Rooms []string `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &meResp))
	assert.Empty(t, meResp.Rooms)
}

func TestCLI_RoomCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("session", "create")
	require.NoError(t, err, "output: %s", output)
	var sessResp sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &sessResp))
	token := sessResp.SessionToken

	// Create room
	output, err = cli.runWithToken(token, "room", "create", "--buy-in", "150")
	require.NoError(t, err, "output: %s", output)

	var room roomResponse
	require.NoError(t, json.Unmarshal([]byte(output), &room))
	assert.Len(t, room.Code, 6)
	assert.Equal(t, 150, room.BuyIn)
	code := room.Code

	// Add players
	output, err = cli.runWithToken(token, "room", "add-player", code, "Alice")
	require.NoError(t, err, "output: %s", output)
	output, err = cli.runWithToken(token, "room", "add-player", code, "Bob")
	require.NoError(t, err, "output: %s", output)

	require.NoError(t, json.Unmarshal([]byte(output), &room))
	assert.Len(t, room.Players, 2)

	// Change buy-in
	output, err = cli.runWithToken(token, "room", "buy-in", code, "--amount", "200")
	require.NoError(t, err, "output: %s", output)

	require.NoError(t, json.Unmarshal([]byte(output), &room))
	assert.Equal(t, 200, room.BuyIn)

	// Remove a player
	output, err = cli.runWithToken(token, "room", "remove-player", code, room.Players[1].ID)
	require.NoError(t, err, "output: %s", output)

	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Contains(t, msgResp.Message, "Removed player")
}

func TestCLI_FullGameFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("session", "create")
	require.NoError(t, err, "output: %s", output)
	var sessResp sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &sessResp))
	token := sessResp.SessionToken

	// Create room with three players
	output, err = cli.runWithToken(token, "room", "create", "--buy-in", "100")
	require.NoError(t, err, "output: %s", output)
	var room roomResponse
	require.NoError(t, json.Unmarshal([]byte(output), &room))
	code := room.Code
	t.Logf("Created room: %s", code)

	for _, name := range []string{"Alice", "Bob", "Cara"} {
		output, err = cli.runWithToken(token, "room", "add-player", code, name)
		require.NoError(t, err, "output: %s", output)
	}
	require.NoError(t, json.Unmarshal([]byte(output), &room))
	require.Len(t, room.Players, 3)
	alice := room.Players[0].ID
	bob := room.Players[1].ID
	cara := room.Players[2].ID

	// Start the game
	output, err = cli.runWithToken(token, "game", "start", code)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &room))
	assert.True(t, room.GameStarted)

	// Round 1: Alice wins with a double round
	output, err = cli.runWithToken(token, "game", "round", code,
		"--winner", alice,
		"--score", bob+"=30",
		"--score", cara+"=20",
		"--multiplier", "double")
	require.NoError(t, err, "output: %s", output)

	var round roundResponse
	require.NoError(t, json.Unmarshal([]byte(output), &round))
	assert.Nil(t, round.Record)
	assert.Equal(t, 1, round.Room.RoundsPlayed)
	t.Logf("Round 1 submitted")

	// Undo and resubmit
	output, err = cli.runWithToken(token, "game", "undo", code)
	require.NoError(t, err, "output: %s", output)

	output, err = cli.runWithToken(token, "game", "round", code,
		"--winner", alice,
		"--score", bob+"=30",
		"--score", cara+"=20",
		"--multiplier", "double")
	require.NoError(t, err, "output: %s", output)

	// Round 2: Cara is eliminated
	output, err = cli.runWithToken(token, "game", "round", code,
		"--winner", bob,
		"--score", alice+"=10",
		"--score", cara+"=60")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &round))

	for _, p := range round.Room.Players {
		if p.ID == cara {
			assert.True(t, p.IsOut)
		}
	}
	t.Logf("Cara eliminated")

	// Cara rejoins
	output, err = cli.runWithToken(token, "game", "rejoin", code, cara)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &room))
	assert.Equal(t, 400, room.Pot)

	// Finish the game
	output, err = cli.runWithToken(token, "game", "finish", code)
	require.NoError(t, err, "output: %s", output)

	var finish finishResponse
	require.NoError(t, json.Unmarshal([]byte(output), &finish))
	assert.Equal(t, 400, finish.Record.Pot)
	assert.False(t, finish.Room.GameStarted)
	t.Logf("Game finished, winner: %s", finish.Record.Winner)

	// History shows the game
	output, err = cli.runWithToken(token, "history", "list", code)
	require.NoError(t, err, "output: %s", output)

	var history historyResponse
	require.NoError(t, json.Unmarshal([]byte(output), &history))
	require.Len(t, history.Games, 1)
	assert.Len(t, history.Totals, 3)
}

func TestCLI_DirectWin(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("session", "create")
	require.NoError(t, err)
	var sessResp sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &sessResp))
	token := sessResp.SessionToken

	output, err = cli.runWithToken(token, "room", "create")
	require.NoError(t, err, "output: %s", output)
	var room roomResponse
	require.NoError(t, json.Unmarshal([]byte(output), &room))
	code := room.Code

	output, err = cli.runWithToken(token, "room", "add-player", code, "Alice")
	require.NoError(t, err)
	output, err = cli.runWithToken(token, "room", "add-player", code, "Bob")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(output), &room))
	alice := room.Players[0].ID
	bob := room.Players[1].ID

	_, err = cli.runWithToken(token, "game", "start", code)
	require.NoError(t, err)

	// Bob enters nothing: direct win for Alice
	output, err = cli.runWithToken(token, "game", "round", code,
		"--winner", alice,
		"--score", bob+"=")
	require.NoError(t, err, "output: %s", output)

	var round roundResponse
	require.NoError(t, json.Unmarshal([]byte(output), &round))
	require.NotNil(t, round.Record)
	assert.True(t, round.Record.DirectWin)
	assert.Equal(t, "Alice", round.Record.Winner)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Session info without a session
	output, err := cli.run("session", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "unauthorized")

	// Room the session never joined
	output, err = cli.run("session", "create")
	require.NoError(t, err)
	var sessResp sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &sessResp))

	output, err = cli.runWithToken(sessResp.SessionToken, "room", "get", "ZZZZZZ")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "join the room")
}
