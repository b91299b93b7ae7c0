//go:build !unix

package procs

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-mcp/internal/platform"
)

var errUnsupported = errors.New("process management is only implemented for unix")

// Manager reports every operation as unsupported on this platform.
type Manager struct{}

var _ platform.ProcessManager = (*Manager)(nil)

// New returns a Manager.
func New(*zap.Logger) *Manager { return &Manager{} }

func (m *Manager) Launch(context.Context, string, []string) (platform.Process, error) {
	return platform.Process{}, errUnsupported
}

func (m *Manager) Processes() ([]platform.Process, error) { return nil, errUnsupported }

func (m *Manager) ProcessName(int) (string, error) { return "", errUnsupported }

func (m *Manager) IsRunning(int) bool { return false }

func (m *Manager) Close(context.Context, int, time.Duration) error { return errUnsupported }
