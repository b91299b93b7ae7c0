package platform

import (
	"errors"
	"testing"
)

func TestNewProvider_UnsupportedPlatform(t *testing.T) {
	orig := NewProviderFunc
	NewProviderFunc = nil
	defer func() { NewProviderFunc = orig }()

	_, err := NewProvider()
	if err == nil {
		t.Fatal("expected error on unsupported platform")
	}
	if err != ErrUnsupported {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
}

func TestNewProvider_RejectsIncompleteProvider(t *testing.T) {
	orig := NewProviderFunc
	NewProviderFunc = func() (*Provider, error) { return &Provider{}, nil }
	defer func() { NewProviderFunc = orig }()

	if _, err := NewProvider(); err == nil {
		t.Fatal("expected error for provider without backends")
	}
}

func TestNewProvider_PropagatesError(t *testing.T) {
	orig := NewProviderFunc
	boom := errors.New("boom")
	NewProviderFunc = func() (*Provider, error) { return nil, boom }
	defer func() { NewProviderFunc = orig }()

	if _, err := NewProvider(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
