package domain_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/dupes/internal/core/domain"
)

func TestDefaultRegistryCachePath(t *testing.T) {
	require.Equal(t, filepath.Join(".dupes", "cache"), domain.DefaultRegistryCachePath())
}

func TestDefaultSettings(t *testing.T) {
	settings := domain.DefaultSettings()

	require.Equal(t, "https://crates.io", settings.Registry)
	require.Equal(t, 30*time.Second, settings.Timeout)
	require.Equal(t, 8, settings.Concurrency)
	require.False(t, settings.Offline)
}
