package driver

import (
	"fmt"
	"strconv"
	"time"
)

// Defaults for a managed driver service.
const (
	// DefaultStartupTimeout bounds how long Start waits for the driver to
	// answer the readiness probe.
	DefaultStartupTimeout = 20 * time.Second

	// DefaultShutdownTimeout bounds how long Stop waits for a natural exit
	// before escalating to a kill.
	DefaultShutdownTimeout = 5 * time.Second

	// probeInterval is the fixed backoff between readiness probes.
	probeInterval = 200 * time.Millisecond

	// probeTimeout bounds a single readiness probe request.
	probeTimeout = 500 * time.Millisecond
)

// Config holds the launch parameters for one driver process. It is copied
// into the Service at construction and never mutated afterwards; the only
// rewrite is Port when it starts at 0 and gets a concrete free port during
// Start.
type Config struct {
	// ExecutablePath locates the driver binary.
	ExecutablePath string `json:"executablePath" yaml:"executablePath"`

	// ExecutableName is the binary's file name, used only in diagnostics.
	ExecutableName string `json:"executableName,omitempty" yaml:"executableName,omitempty"`

	// Port is the TCP port the driver should listen on. 0 means allocate a
	// free ephemeral port at start.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// CommPort is an extra browser-communication port some drivers take.
	// The argument is emitted only when positive.
	CommPort int `json:"commPort,omitempty" yaml:"commPort,omitempty"`

	// BinaryPath overrides the browser binary the driver launches. The
	// argument is emitted only when non-empty, quoted to tolerate spaces.
	BinaryPath string `json:"binaryPath,omitempty" yaml:"binaryPath,omitempty"`

	// ExtraArgs are appended verbatim after the generated arguments.
	ExtraArgs []string `json:"extraArgs,omitempty" yaml:"extraArgs,omitempty"`

	// Env is extra environment for the driver process, in os.Environ form.
	Env []string `json:"env,omitempty" yaml:"env,omitempty"`

	// DownloadURL points at the driver's download page. Used only to build
	// actionable error messages, never fetched.
	DownloadURL string `json:"downloadUrl,omitempty" yaml:"downloadUrl,omitempty"`

	// StartupTimeout and ShutdownTimeout are hard deadlines, not hints.
	StartupTimeout  time.Duration `json:"startupTimeout,omitempty" yaml:"startupTimeout,omitempty"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout,omitempty" yaml:"shutdownTimeout,omitempty"`
}

// withDefaults fills the zero-valued knobs.
func (c Config) withDefaults() Config {
	if c.StartupTimeout <= 0 {
		c.StartupTimeout = DefaultStartupTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.ExecutableName == "" {
		c.ExecutableName = c.ExecutablePath
	}
	return c
}

// commandArgs assembles the driver's argument list. Optional arguments are
// appended only when their backing value is set.
func (c Config) commandArgs() []string {
	args := []string{"--port=" + strconv.Itoa(c.Port)}
	if c.CommPort > 0 {
		args = append(args, "--marionette-port="+strconv.Itoa(c.CommPort))
	}
	if c.BinaryPath != "" {
		args = append(args, fmt.Sprintf("--binary=%q", c.BinaryPath))
	}
	return append(args, c.ExtraArgs...)
}
