// Package driver manages the lifecycle of one locally spawned
// browser-automation driver process: spawn it on a TCP port, poll it until
// it answers HTTP, and tear it down with a kill escalation when it will not
// exit on its own.
package driver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/droverhq/drover/internal/logging"
)

// State is the lifecycle state of a Service.
type State string

const (
	StateStopped  State = "stopped"
	StateStarting State = "starting"
	StateRunning  State = "running"
	StateStopping State = "stopping"

	// StateFaulted is terminal: the driver spawned but never became ready,
	// or could not spawn at all. A faulted service must be discarded.
	StateFaulted State = "faulted"
)

// Service owns exactly one driver process and the port it listens on.
// Start and Stop guard the state with a mutex but are not meant to be
// called concurrently; the caller sequences them.
type Service struct {
	mu      sync.Mutex
	cfg     Config
	state   State
	cmd     *exec.Cmd
	baseURL string
	client  *http.Client
}

// New creates a stopped service for the given config. Defaults are applied
// here; the config is not read again after construction except for the Port
// rewrite on auto-allocation.
func New(cfg Config) *Service {
	return &Service{
		cfg:    cfg.withDefaults(),
		state:  StateStopped,
		client: &http.Client{},
	}
}

// State returns the current lifecycle state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// URL returns the driver's base URL, empty until Start has spawned it.
func (s *Service) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseURL
}

// Pid returns the driver's process id, 0 when no process is attached.
func (s *Service) Pid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil || s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// Port returns the resolved listening port, 0 until allocation.
func (s *Service) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateStopped && s.cfg.Port == 0 {
		return 0
	}
	return s.cfg.Port
}

// Start spawns the driver and blocks until it answers the readiness probe
// or the startup timeout passes. On success the service is Running and URL
// returns the resolved base URL. On failure the service is Faulted, any
// spawned process is killed, and the error wraps ErrSpawnFailed or
// ErrStartTimeout with the configured download guidance.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateStopped {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("cannot start driver service from state %q", state)
	}

	if s.cfg.Port == 0 {
		port, err := freePort()
		if err != nil {
			s.state = StateFaulted
			s.mu.Unlock()
			return startError(ErrSpawnFailed, s.cfg, err)
		}
		s.cfg.Port = port
	}
	cfg := s.cfg

	args := cfg.commandArgs()
	cmd := exec.Command(cfg.ExecutablePath, args...)
	if len(cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), cfg.Env...)
	}

	logging.Debugf("spawning %s %s", cfg.ExecutablePath, strings.Join(args, " "))
	if err := cmd.Start(); err != nil {
		s.state = StateFaulted
		s.mu.Unlock()
		return startError(ErrSpawnFailed, cfg, err)
	}

	s.cmd = cmd
	s.baseURL = fmt.Sprintf("http://127.0.0.1:%d", cfg.Port)
	s.state = StateStarting
	baseURL := s.baseURL
	client := s.client
	s.mu.Unlock()

	logging.Infof("driver %s starting on %s (pid %d)", cfg.ExecutableName, baseURL, cmd.Process.Pid)

	if waitReady(ctx, client, baseURL, cfg.StartupTimeout) {
		s.mu.Lock()
		s.state = StateRunning
		s.mu.Unlock()
		logging.Infof("driver %s ready on %s", cfg.ExecutableName, baseURL)
		return nil
	}

	// Never became ready; kill what we spawned before reporting.
	_ = cmd.Process.Kill()
	_ = cmd.Wait()

	s.mu.Lock()
	s.cmd = nil
	s.state = StateFaulted
	s.mu.Unlock()

	return startError(ErrStartTimeout, cfg, ctx.Err())
}

// Stop shuts the driver down: a best-effort interrupt, a bounded wait for
// natural exit, then a kill. It always leaves the service Stopped and never
// returns an error; a forced kill is informational, not a failure. Calling
// Stop on an already stopped service is a no-op. A faulted service stays
// faulted: its process is already gone and the handle is dead.
func (s *Service) Stop() error {
	s.mu.Lock()
	if s.state == StateStopped || s.state == StateFaulted {
		s.mu.Unlock()
		return nil
	}
	s.state = StateStopping
	cmd := s.cmd
	s.cmd = nil
	timeout := s.cfg.ShutdownTimeout
	name := s.cfg.ExecutableName
	s.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		// This class of driver has no shutdown command on the wire, so the
		// graceful path is an interrupt, which may be a no-op on some
		// platforms.
		_ = cmd.Process.Signal(os.Interrupt)

		done := make(chan error, 1)
		go func() { done <- cmd.Wait() }()

		select {
		case <-done:
			logging.Infof("driver %s exited", name)
		case <-time.After(timeout):
			logging.Warnf("driver %s still alive after %v, killing pid %d", name, timeout, cmd.Process.Pid)
			_ = cmd.Process.Kill()
			// The kill is the guarantee; observing the exit is not. Callers
			// that need proof of death poll liveness themselves.
			select {
			case <-done:
			case <-time.After(time.Second):
			}
		}
	}

	s.mu.Lock()
	s.state = StateStopped
	s.mu.Unlock()
	return nil
}

// freePort allocates an ephemeral port by binding and releasing it. The
// window between release and the driver binding it is a real race; losing
// it surfaces as a spawn or readiness failure, never silently.
func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
