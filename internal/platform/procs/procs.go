//go:build unix

// Package procs implements platform.ProcessManager on top of os/exec for
// OS backends. Launched applications get their own process group so that
// closing one also stops any helpers it spawned.
package procs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-mcp/internal/platform"
)

// pollInterval is how often Close checks an untracked process for exit.
const pollInterval = 20 * time.Millisecond

type child struct {
	proc platform.Process
	done chan struct{}
}

// Manager launches and terminates processes. It is safe for concurrent use.
type Manager struct {
	logger *zap.Logger

	mu       sync.Mutex
	children map[int]*child
}

var _ platform.ProcessManager = (*Manager)(nil)

// New returns a Manager. A nil logger disables logging.
func New(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{logger: logger.Named("procs"), children: map[int]*child{}}
}

// Launch starts path with args. The child is not tied to ctx: it keeps
// running after the request that launched it completes.
func (m *Manager) Launch(ctx context.Context, path string, args []string) (platform.Process, error) {
	if err := ctx.Err(); err != nil {
		return platform.Process{}, err
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return platform.Process{}, fmt.Errorf("executable not found: %s: %w", path, err)
	}

	cmd := exec.Command(resolved, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return platform.Process{}, fmt.Errorf("failed to start %s: %w", path, err)
	}

	c := &child{
		proc: platform.Process{PID: cmd.Process.Pid, Name: exeName(resolved), Path: resolved},
		done: make(chan struct{}),
	}
	m.mu.Lock()
	m.children[c.proc.PID] = c
	m.mu.Unlock()

	go func() {
		err := cmd.Wait()
		m.logger.Debug("process exited", zap.Int("pid", c.proc.PID), zap.Error(err))
		close(c.done)
		m.mu.Lock()
		delete(m.children, c.proc.PID)
		m.mu.Unlock()
	}()

	m.logger.Info("launched", zap.String("path", resolved), zap.Int("pid", c.proc.PID))
	return c.proc, nil
}

// Processes lists the running processes started by this manager.
func (m *Manager) Processes() ([]platform.Process, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]platform.Process, 0, len(m.children))
	for _, c := range m.children {
		out = append(out, c.proc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out, nil
}

// ProcessName returns the executable name of pid. Processes not started by
// this manager are looked up in /proc where it exists.
func (m *Manager) ProcessName(pid int) (string, error) {
	if c := m.child(pid); c != nil {
		return c.proc.Name, nil
	}
	comm, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "comm"))
	if err != nil {
		return "", fmt.Errorf("no process with pid %d: %w", pid, err)
	}
	return strings.TrimSpace(string(comm)), nil
}

// IsRunning reports whether pid is alive.
func (m *Manager) IsRunning(pid int) bool {
	if c := m.child(pid); c != nil {
		select {
		case <-c.done:
			return false
		default:
			return true
		}
	}
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}

// Close sends SIGTERM to the process group of pid and SIGKILL once grace
// has passed without it exiting. Closing a process that is not running is
// not an error.
func (m *Manager) Close(ctx context.Context, pid int, grace time.Duration) error {
	if !m.IsRunning(pid) {
		return nil
	}
	if err := m.signal(pid, syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to stop pid %d: %w", pid, err)
	}
	if m.waitExit(ctx, pid, grace) {
		m.logger.Info("closed", zap.Int("pid", pid))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.logger.Warn("process ignored SIGTERM, killing", zap.Int("pid", pid), zap.Duration("grace", grace))
	if err := m.signal(pid, syscall.SIGKILL); err != nil {
		return fmt.Errorf("failed to kill pid %d: %w", pid, err)
	}
	if !m.waitExit(ctx, pid, grace) {
		return fmt.Errorf("pid %d still running after SIGKILL", pid)
	}
	return nil
}

func (m *Manager) child(pid int) *child {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.children[pid]
}

// signal targets the child's process group when it has one.
func (m *Manager) signal(pid int, sig syscall.Signal) error {
	target := pid
	if m.child(pid) != nil {
		target = -pid
	}
	err := syscall.Kill(target, sig)
	if errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return err
}

func (m *Manager) waitExit(ctx context.Context, pid int, timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	if c := m.child(pid); c != nil {
		select {
		case <-c.done:
			return true
		case <-timer.C:
			return false
		case <-ctx.Done():
			return false
		}
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for m.IsRunning(pid) {
		select {
		case <-ticker.C:
		case <-timer.C:
			return !m.IsRunning(pid)
		case <-ctx.Done():
			return false
		}
	}
	return true
}

func exeName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
