package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-mcp/internal/platform/procs"
	"github.com/mj1618/desktop-mcp/internal/platform/virtual"
)

func providerCmd(fixture string, useExec bool) *cobra.Command {
	c := &cobra.Command{}
	c.Flags().String("fixture", fixture, "")
	c.Flags().Bool("exec", useExec, "")
	return c
}

func TestNewProvider_Fixture(t *testing.T) {
	p, err := newProvider(providerCmd(loginFixture, false), zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &virtual.Desktop{}, p.Desktop)
	assert.IsType(t, &virtual.Desktop{}, p.Processes)
}

func TestNewProvider_ExecProcesses(t *testing.T) {
	p, err := newProvider(providerCmd(loginFixture, true), zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &virtual.Desktop{}, p.Desktop)
	assert.IsType(t, &procs.Manager{}, p.Processes)
	assert.NoError(t, p.Validate())
}

func TestNewProvider_NoBackend(t *testing.T) {
	_, err := newProvider(providerCmd("", false), zap.NewNop())
	assert.Error(t, err)
}
