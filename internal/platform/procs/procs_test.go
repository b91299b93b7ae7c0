//go:build unix

package procs

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLaunchAndClose(t *testing.T) {
	m := New(nil)
	ctx := context.Background()

	p, err := m.Launch(ctx, "sleep", []string{"30"})
	require.NoError(t, err)
	assert.Equal(t, "sleep", p.Name)
	assert.True(t, m.IsRunning(p.PID))

	name, err := m.ProcessName(p.PID)
	require.NoError(t, err)
	assert.Equal(t, "sleep", name)

	list, err := m.Processes()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.PID, list[0].PID)

	require.NoError(t, m.Close(ctx, p.PID, 2*time.Second))
	assert.False(t, m.IsRunning(p.PID))

	// Closing again is a no-op.
	require.NoError(t, m.Close(ctx, p.PID, time.Second))
}

func TestClose_KillsAfterGrace(t *testing.T) {
	m := New(nil)
	ctx := context.Background()

	p, err := m.Launch(ctx, "sh", []string{"-c", `trap "" TERM; while :; do sleep 1; done`})
	require.NoError(t, err)
	// Give the shell time to install its trap.
	time.Sleep(100 * time.Millisecond)

	start := time.Now()
	require.NoError(t, m.Close(ctx, p.PID, 200*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
	assert.False(t, m.IsRunning(p.PID))
}

func TestLaunch_Errors(t *testing.T) {
	m := New(nil)

	_, err := m.Launch(context.Background(), "/definitely/not/here", nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Launch(ctx, "sleep", []string{"1"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRunning_Untracked(t *testing.T) {
	m := New(nil)
	assert.True(t, m.IsRunning(os.Getpid()))
	assert.False(t, m.IsRunning(0))
	assert.False(t, m.IsRunning(-1))
}

func TestExeName(t *testing.T) {
	tests := map[string]string{
		"/usr/bin/gedit":          "gedit",
		"C:/Apps/notepad.exe":     "notepad",
		"calc":                    "calc",
		"/opt/app/orders.bin.exe": "orders.bin",
	}
	for in, want := range tests {
		assert.Equal(t, want, exeName(in), in)
	}
}
