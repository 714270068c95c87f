package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.StageFinished("content_pages", ResultSuccess, 150*time.Millisecond)
	pr.StageFinished("index_page", ResultCanceled, 0)
	pr.BuildFinished(OutcomeSuccess, 500*time.Millisecond)
	pr.ContentLoaded(7, 1)
	pr.PagesWritten("content", 2)
	pr.PagesWritten("content", 0)
	pr.ItemFailed("category_pages")
	pr.AssetsCopied("static", 4)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)

	require.InDelta(t, 2.0, testutil.ToFloat64(pr.pages.WithLabelValues("content")), 0.0001)
	require.InDelta(t, 7.0, testutil.ToFloat64(pr.items), 0.0001)
	require.InDelta(t, 1.0, testutil.ToFloat64(pr.skipped), 0.0001)
	require.InDelta(t, 1.0, testutil.ToFloat64(pr.builds.WithLabelValues(string(OutcomeSuccess))), 0.0001)
	require.InDelta(t, 1.0, testutil.ToFloat64(pr.stages.WithLabelValues("index_page", string(ResultCanceled))), 0.0001)
	require.Equal(t, 1, testutil.CollectAndCount(pr.stageSeconds))
}

func TestPrometheusRecorderNilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.BuildFinished(OutcomeFailed, time.Second)
	pr.ContentLoaded(1, 0)
	require.NoError(t, pr.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.BuildFinished(OutcomeWarning, time.Second)

	path := filepath.Join(t.TempDir(), "sitegen.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `sitegen_builds_total{outcome="warning"} 1`)
}
