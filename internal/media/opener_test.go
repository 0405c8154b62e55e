package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orhun/manga-tui/internal/config"
)

func TestNewViewerRegistry(t *testing.T) {
	registry, err := NewViewerRegistry()
	require.NoError(t, err)

	def, ok := registry.Lookup("xdg-open")
	require.True(t, ok)
	assert.Contains(t, def.Platforms, "linux")

	_, ok = registry.Lookup("no-such-viewer")
	assert.False(t, ok)
	assert.Empty(t, registry.Flags("no-such-viewer"))
}

func TestNewOpener_AlwaysHasViewer(t *testing.T) {
	opener := NewOpener(config.TestConfig())
	assert.NotEmpty(t, opener.imageViewer)
}

func TestOpenCover_RejectsEmptyData(t *testing.T) {
	opener := NewOpener(config.TestConfig())
	assert.Error(t, opener.OpenCover(nil, "cover.jpg"))
}

func TestFindCommand(t *testing.T) {
	// "go" may not be on PATH in every environment, but "sh" or nothing
	// exercises both branches.
	assert.Equal(t, "", findCommand("definitely-not-a-real-command-xyz"))
}
