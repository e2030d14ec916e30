package driver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/droverhq/drover/internal/logging"
)

// fakeDriverEnv selects the dialect the re-executed test binary speaks:
// "w3c", "legacy", or "plain" (listens but never answers JSON).
const fakeDriverEnv = "DROVER_FAKE_DRIVER"

func TestMain(m *testing.M) {
	if mode := os.Getenv(fakeDriverEnv); mode != "" {
		runFakeDriver(mode)
		return
	}
	logging.Disable()
	os.Exit(m.Run())
}

// runFakeDriver turns the test binary into a stand-in driver process. It
// reads --port= from the raw arguments before the testing framework would
// choke on them, serves the session endpoint in the requested dialect, and
// exits cleanly on interrupt.
func runFakeDriver(mode string) {
	port := 0
	for _, arg := range os.Args[1:] {
		if p, ok := strings.CutPrefix(arg, "--port="); ok {
			port, _ = strconv.Atoi(p)
		}
	}
	if port == 0 {
		fmt.Fprintln(os.Stderr, "fake driver: no --port argument")
		os.Exit(2)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/session/", func(w http.ResponseWriter, r *http.Request) {
		switch mode {
		case "legacy":
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"status":6,"value":{"message":"no such session"}}`)
		case "plain":
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, "<html>not a driver</html>")
		default:
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			fmt.Fprint(w, `{"value":{"error":"invalid session id","message":"no such session"}}`)
		}
	})

	srv := &http.Server{Addr: fmt.Sprintf("127.0.0.1:%d", port), Handler: mux}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		srv.Close()
	}()

	_ = srv.ListenAndServe()
}

func fakeDriverConfig(t *testing.T, mode string) Config {
	t.Helper()
	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("os.Executable: %v", err)
	}
	return Config{
		ExecutablePath:  exe,
		ExecutableName:  "fakedriver",
		DownloadURL:     "https://example.com/get-fakedriver",
		Env:             []string{fakeDriverEnv + "=" + mode},
		StartupTimeout:  10 * time.Second,
		ShutdownTimeout: 3 * time.Second,
	}
}

func TestStartStop(t *testing.T) {
	svc := New(fakeDriverConfig(t, "w3c"))

	if got := svc.State(); got != StateStopped {
		t.Fatalf("initial state = %q, want %q", got, StateStopped)
	}

	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer svc.Stop()

	if got := svc.State(); got != StateRunning {
		t.Fatalf("state after Start = %q, want %q", got, StateRunning)
	}
	if svc.URL() == "" {
		t.Fatal("URL is empty after Start")
	}
	if svc.Pid() == 0 {
		t.Fatal("Pid is 0 after Start")
	}

	if !CheckReady(context.Background(), http.DefaultClient, svc.URL()) {
		t.Fatal("running driver does not answer the readiness probe")
	}

	if err := svc.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if got := svc.State(); got != StateStopped {
		t.Fatalf("state after Stop = %q, want %q", got, StateStopped)
	}
	if svc.Pid() != 0 {
		t.Fatalf("Pid = %d after Stop, want 0", svc.Pid())
	}
}

func TestStopIdempotent(t *testing.T) {
	svc := New(fakeDriverConfig(t, "w3c"))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := svc.Stop(); err != nil {
		t.Fatalf("first Stop: %v", err)
	}
	if err := svc.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	if got := svc.State(); got != StateStopped {
		t.Fatalf("state = %q, want %q", got, StateStopped)
	}
}

func TestStartLegacyDialect(t *testing.T) {
	// A legacy driver reports the probed session as a 500 with a JSON body;
	// the readiness classifier must accept that as "up".
	svc := New(fakeDriverConfig(t, "legacy"))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start against legacy driver: %v", err)
	}
	defer svc.Stop()

	if got := svc.State(); got != StateRunning {
		t.Fatalf("state = %q, want %q", got, StateRunning)
	}
}

func TestStartTimeout(t *testing.T) {
	// The plain driver listens but never answers JSON, so the probe never
	// classifies it ready and Start must fail hard and kill the process.
	cfg := fakeDriverConfig(t, "plain")
	cfg.StartupTimeout = 1200 * time.Millisecond
	svc := New(cfg)

	errCh := make(chan error, 1)
	go func() { errCh <- svc.Start(context.Background()) }()

	var pid int
	for i := 0; i < 100 && pid == 0; i++ {
		pid = svc.Pid()
		time.Sleep(20 * time.Millisecond)
	}

	err := <-errCh
	if !errors.Is(err, ErrStartTimeout) {
		t.Fatalf("Start error = %v, want ErrStartTimeout", err)
	}
	if !strings.Contains(err.Error(), "https://example.com/get-fakedriver") {
		t.Errorf("error %q does not carry the download URL", err)
	}
	if got := svc.State(); got != StateFaulted {
		t.Fatalf("state = %q, want %q", got, StateFaulted)
	}

	if pid != 0 && runtime.GOOS != "windows" {
		// Signal 0 probes liveness; the spawned process must be gone.
		proc, _ := os.FindProcess(pid)
		if err := proc.Signal(syscall.Signal(0)); err == nil {
			t.Errorf("driver process %d still alive after StartTimeout", pid)
		}
	}
}

func TestStartSpawnFailed(t *testing.T) {
	cfg := fakeDriverConfig(t, "w3c")
	cfg.ExecutablePath = "/nonexistent/fakedriver"
	svc := New(cfg)

	err := svc.Start(context.Background())
	if !errors.Is(err, ErrSpawnFailed) {
		t.Fatalf("Start error = %v, want ErrSpawnFailed", err)
	}
	if !strings.Contains(err.Error(), "https://example.com/get-fakedriver") {
		t.Errorf("error %q does not carry the download URL", err)
	}
	if got := svc.State(); got != StateFaulted {
		t.Fatalf("state = %q, want %q", got, StateFaulted)
	}
}

func TestStartRejectsNonStoppedState(t *testing.T) {
	svc := New(fakeDriverConfig(t, "w3c"))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer svc.Stop()

	if err := svc.Start(context.Background()); err == nil {
		t.Fatal("second Start on a running service succeeded, want error")
	}
}

func TestAutoPortsAreDistinct(t *testing.T) {
	a := New(fakeDriverConfig(t, "w3c"))
	b := New(fakeDriverConfig(t, "w3c"))

	if err := a.Start(context.Background()); err != nil {
		t.Fatalf("Start a: %v", err)
	}
	defer a.Stop()
	if err := b.Start(context.Background()); err != nil {
		t.Fatalf("Start b: %v", err)
	}
	defer b.Stop()

	if a.Port() == b.Port() {
		t.Fatalf("both services got port %d", a.Port())
	}
	if a.URL() == b.URL() {
		t.Fatalf("both services share base URL %s", a.URL())
	}
}

func TestCommandArgs(t *testing.T) {
	cfg := Config{Port: 4444}
	got := cfg.commandArgs()
	want := []string{"--port=4444"}
	if len(got) != len(want) || got[0] != want[0] {
		t.Fatalf("commandArgs = %v, want %v", got, want)
	}

	cfg = Config{
		Port:       4444,
		CommPort:   2828,
		BinaryPath: "/opt/browser bin/browser",
		ExtraArgs:  []string{"--log=trace"},
	}
	got = cfg.commandArgs()
	if len(got) != 4 {
		t.Fatalf("commandArgs = %v, want 4 arguments", got)
	}
	if got[1] != "--marionette-port=2828" {
		t.Errorf("comm port argument = %q", got[1])
	}
	if got[2] != `--binary="/opt/browser bin/browser"` {
		t.Errorf("binary argument = %q, want quoted path", got[2])
	}
	if got[3] != "--log=trace" {
		t.Errorf("extra argument = %q", got[3])
	}

	// Zero comm port and empty binary path emit nothing.
	cfg = Config{Port: 4444, CommPort: 0, BinaryPath: ""}
	if got := cfg.commandArgs(); len(got) != 1 {
		t.Fatalf("commandArgs = %v, want only the port argument", got)
	}
}
