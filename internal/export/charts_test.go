package export

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/xau-dashboard/internal/dataset"
	"github.com/rovshanmuradov/xau-dashboard/internal/performance"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/style"
	"github.com/rovshanmuradov/xau-dashboard/internal/view"
)

func TestChartRendererEveryView(t *testing.T) {
	renderer := view.NewRenderer(dataset.Default(), performance.FixedFactor(0.5))

	for _, theme := range style.Themes() {
		c := NewChartRenderer(zap.NewNop(), theme).WithSize(640, 320)
		for _, opt := range view.Options() {
			var buf bytes.Buffer
			require.NoError(t, c.Render(renderer.Render(opt.ID), &buf), "%s/%s", theme.Name, opt.ID)

			img, err := png.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, 640, img.Bounds().Dx())
		}
	}
}

func TestChartRendererPlaceholder(t *testing.T) {
	renderer := view.NewRenderer(dataset.Default(), performance.FixedFactor(0.5))
	c := NewChartRenderer(zap.NewNop(), style.GoldTheme)

	var buf bytes.Buffer
	assert.Error(t, c.Render(renderer.Render(view.ID("bogus")), &buf))
}

func TestExportCharts(t *testing.T) {
	renderer := view.NewRenderer(dataset.Default(), performance.NewSeededFactors(7))
	c := NewChartRenderer(zap.NewNop(), style.NavyTheme).WithSize(480, 240)

	paths, err := c.ExportCharts(renderer, t.TempDir())
	require.NoError(t, err)
	assert.Len(t, paths, 5)
}
