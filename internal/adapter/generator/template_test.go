package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-manager/internal/core/domain"
)

func TestGenerate(t *testing.T) {
	g := NewTemplate()
	out, err := g.Generate(context.Background(), "Eco running shoes for city runners",
		domain.ContentSettings{Tone: domain.ToneCasual, BrandVoice: "Stay green."})
	require.NoError(t, err)

	require.Len(t, out.Headlines, 2)
	assert.Equal(t, "Say hi to Eco running shoes for city runners", out.Headlines[0])
	require.Len(t, out.Descriptions, 1)
	assert.Equal(t, []string{"#running", "#shoes", "#city", "#runners"}, out.Hashtags)
	assert.True(t, strings.HasSuffix(out.Copy, "Stay green."))
	assert.NoError(t, domain.Validate(out))
}

func TestGenerateFallbacks(t *testing.T) {
	g := NewTemplate()
	out, err := g.Generate(context.Background(), "Go", domain.ContentSettings{Tone: "unknown"})
	require.NoError(t, err)
	assert.Equal(t, "Introducing Go", out.Headlines[0])
	assert.Equal(t, []string{"#campaign"}, out.Hashtags)

	out, err = g.Generate(context.Background(), "one two three four five six seven eight nine", domain.ContentSettings{})
	require.NoError(t, err)
	assert.Len(t, out.Hashtags, 5)
}

func TestGenerateErrors(t *testing.T) {
	g := NewTemplate()
	_, err := g.Generate(context.Background(), "   ", domain.ContentSettings{})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Generate(ctx, "prompt", domain.ContentSettings{})
	assert.ErrorIs(t, err, context.Canceled)
}
