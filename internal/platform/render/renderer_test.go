package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabled(t *testing.T) {
	t.Parallel()

	var r Renderer = Disabled{}
	assert.False(t, r.Enabled())
	_, err := r.Render(context.Background(), "https://example.com")
	require.ErrorIs(t, err, ErrRenderDisabled)
}

func TestChromeRenderer_CanceledContextSkipsBrowser(t *testing.T) {
	t.Parallel()

	r := NewChromeRenderer(ChromeConfig{})
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, "https://example.com")
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, r.allocCtx)
}
