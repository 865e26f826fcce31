//go:build integration

package rod_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjarosz/clipdown/rod"
)

func TestBrowserManager_RecyclesAtThreshold(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(2))
	require.NoError(t, err)
	defer manager.Close()

	require.NotNil(t, manager.Browser())
	firstPID := manager.LauncherPID()
	require.NotZero(t, firstPID)

	for i := 0; i < 2; i++ {
		manager.IncrementPageCount()
	}

	// Crossing the threshold replaces the Chrome process itself.
	require.NotNil(t, manager.Browser())
	assert.NotEqual(t, firstPID, manager.LauncherPID())
}

func TestBrowserManager_KeepsBrowserBelowThreshold(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(10))
	require.NoError(t, err)
	defer manager.Close()

	first := manager.Browser()
	firstPID := manager.LauncherPID()
	manager.IncrementPageCount()

	assert.Same(t, first, manager.Browser())
	assert.Equal(t, firstPID, manager.LauncherPID())
}

func TestBrowserManager_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)

	require.NoError(t, manager.Close())
	assert.NoError(t, manager.Close())
	assert.Zero(t, manager.LauncherPID())
}
