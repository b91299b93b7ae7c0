package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Desktop       Desktop
	Inputter      Inputter
	WindowManager WindowManager
	Processes     ProcessManager
}

// Validate reports the first missing backend.
func (p *Provider) Validate() error {
	switch {
	case p == nil:
		return fmt.Errorf("no platform provider")
	case p.Desktop == nil:
		return fmt.Errorf("platform provider has no accessibility desktop")
	case p.Inputter == nil:
		return fmt.Errorf("platform provider has no input injector")
	case p.WindowManager == nil:
		return fmt.Errorf("platform provider has no window manager")
	case p.Processes == nil:
		return fmt.Errorf("platform provider has no process manager")
	}
	return nil
}

// ErrUnsupported is returned when no accessibility backend is registered for
// this platform.
var ErrUnsupported = fmt.Errorf("desktop-mcp has no accessibility backend for %s/%s; use --fixture to run against a virtual desktop", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	p, err := NewProviderFunc()
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
