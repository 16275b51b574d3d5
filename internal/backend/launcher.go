package backend

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zapio"

	"title-reader/config"
)

type State string

const (
	StateUnchecked         State = "unchecked"
	StateStarting          State = "starting"
	StateExternallyManaged State = "externally_managed"
	StateLaunched          State = "launched"
	StateFailed            State = "failed"
)

// BinaryProvisioner yields a runnable backend binary path.
type BinaryProvisioner interface {
	EnsureBinary(ctx context.Context) (string, error)
}

// Process is a backend this app spawned. It is never stopped by the app.
type Process struct {
	PID       int
	Binary    string
	StartedAt time.Time
}

// Snapshot is a point-in-time view of the launcher for status reporting.
type Snapshot struct {
	State     State     `json:"state"`
	PID       int       `json:"pid,omitempty"`
	Binary    string    `json:"binary,omitempty"`
	StartedAt time.Time `json:"started_at,omitzero"`
	Exited    bool      `json:"exited"`
	Error     string    `json:"error,omitempty"`
}

// Launcher starts the backend at most once for the life of the process.
// The first EnsureRunning call decides the outcome; later calls get the same
// handle or error back without probing, provisioning or spawning again.
type Launcher struct {
	endpoint     Endpoint
	provisioner  BinaryProvisioner
	logger       *zap.SugaredLogger
	probeTimeout time.Duration

	probe       func(ctx context.Context, ep Endpoint, timeout time.Duration) bool
	execCommand func(name string, args ...string) *exec.Cmd
	output      io.Writer

	// initMu serializes the first evaluation. mu guards the fields below and
	// is never held across probing, provisioning or spawning.
	initMu sync.Mutex

	mu     sync.Mutex
	state  State
	proc   *Process
	err    error
	exited bool
}

func NewLauncher(cfg *config.Config, ep Endpoint, provisioner *Provisioner, logger *zap.SugaredLogger) *Launcher {
	return &Launcher{
		endpoint:     ep,
		provisioner:  provisioner,
		logger:       logger,
		probeTimeout: cfg.Browser.ProbeTimeout,
		probe:        IsListening,
		execCommand:  exec.Command,
		state:        StateUnchecked,
	}
}

func (l *Launcher) Endpoint() Endpoint { return l.endpoint }

// SetOutput sends the child's stdout and stderr to w instead of the debug
// log. Pass an *os.File when the backend must outlive this process.
func (l *Launcher) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// EnsureRunning returns the spawned process, or nil when a backend was already
// listening. Failures are cached like successes, except when ctx itself ended
// before the first evaluation finished.
func (l *Launcher) EnsureRunning(ctx context.Context) (*Process, error) {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	l.mu.Lock()
	if l.state != StateUnchecked {
		proc, err := l.proc, l.err
		l.mu.Unlock()
		return proc, err
	}
	l.state = StateStarting
	output := l.output
	l.mu.Unlock()

	proc, state, err := l.start(ctx, output)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil && ctx.Err() != nil {
		l.state = StateUnchecked
		return nil, err
	}
	l.proc, l.state, l.err = proc, state, err
	return proc, err
}

func (l *Launcher) start(ctx context.Context, output io.Writer) (*Process, State, error) {
	if l.probe(ctx, l.endpoint, l.probeTimeout) {
		l.logger.Infow("browser_already_listening", "addr", l.endpoint.Addr())
		return nil, StateExternallyManaged, nil
	}

	bin, err := l.provisioner.EnsureBinary(ctx)
	if err != nil {
		l.logger.Errorw("browser_provision_failed", "err", err)
		return nil, StateFailed, err
	}

	cmd := l.execCommand(bin, "serve", "--host", l.endpoint.Host, "--port", strconv.Itoa(l.endpoint.Port))
	out := l.logger.Desugar().With(zap.String("component", "browser"))
	stdout := &zapio.Writer{Log: out, Level: zapcore.DebugLevel}
	stderr := &zapio.Writer{Log: out, Level: zapcore.DebugLevel}
	if output != nil {
		cmd.Stdout = output
		cmd.Stderr = output
	} else {
		cmd.Stdout = stdout
		cmd.Stderr = stderr
	}

	if err := cmd.Start(); err != nil {
		l.logger.Errorw("browser_launch_failed", "binary", bin, "err", err)
		return nil, StateFailed, fmt.Errorf("%w: start %s: %w", ErrLaunch, bin, err)
	}

	proc := &Process{
		PID:       cmd.Process.Pid,
		Binary:    bin,
		StartedAt: time.Now(),
	}
	l.logger.Infow("browser_launched", "pid", proc.PID, "binary", bin, "addr", l.endpoint.Addr())

	go func() {
		err := cmd.Wait()
		_ = stdout.Close()
		_ = stderr.Close()
		l.mu.Lock()
		l.exited = true
		l.mu.Unlock()
		l.logger.Warnw("browser_exited", "pid", proc.PID, "err", err)
	}()

	return proc, StateLaunched, nil
}

// IsListening probes the endpoint with the configured timeout.
func (l *Launcher) IsListening(ctx context.Context) bool {
	return l.probe(ctx, l.endpoint, l.probeTimeout)
}

// WaitListening polls the endpoint until it accepts connections or ctx ends.
func (l *Launcher) WaitListening(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if l.probe(ctx, l.endpoint, l.probeTimeout) {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %s did not start listening: %w", ErrLaunch, l.endpoint.Addr(), ctx.Err())
		case <-ticker.C:
		}
	}
}

// Snapshot never waits on a first evaluation in progress; it reports
// StateStarting instead.
func (l *Launcher) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := Snapshot{State: l.state, Exited: l.exited}
	if l.proc != nil {
		s.PID = l.proc.PID
		s.Binary = l.proc.Binary
		s.StartedAt = l.proc.StartedAt
	}
	if l.err != nil {
		s.Error = l.err.Error()
	}
	return s
}
