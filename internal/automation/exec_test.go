//go:build unix

package automation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-mcp/internal/platform/procs"
	"github.com/mj1618/desktop-mcp/internal/platform/virtual"
)

func TestLaunchClose_OSProcess(t *testing.T) {
	d, err := virtual.LoadFile(loginFixture)
	require.NoError(t, err)
	p := d.Provider()
	p.Processes = procs.New(nil)
	e, err := New(p, testOptions())
	require.NoError(t, err)
	ctx := context.Background()

	launched := e.Launch(ctx, LaunchRequest{Path: "sleep", Args: []string{"30"}})
	require.True(t, launched.OK, launched.Message)
	require.NotNil(t, launched.Session)
	assert.Equal(t, "sleep", launched.Session.Name)
	// sleep has no window.
	assert.NotEmpty(t, launched.Warning)
	pid := launched.Session.PID
	assert.True(t, p.Processes.IsRunning(pid))

	closed := e.Close(ctx)
	require.True(t, closed.OK, closed.Message)
	assert.False(t, p.Processes.IsRunning(pid))
	assert.Nil(t, e.Session())

	failed := e.Launch(ctx, LaunchRequest{Path: "/no/such/binary"})
	assert.Equal(t, KindProcessLaunchFailure, failed.Kind)
}
