package platform

import (
	"errors"
	"testing"
)

func TestNewProvider_NoBackendRegistered(t *testing.T) {
	saved := NewProviderFunc
	NewProviderFunc = nil
	defer func() { NewProviderFunc = saved }()

	_, err := NewProvider()
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
