package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mockautomation/storefront-e2e/internal/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(id string, status models.ResultStatus, d time.Duration) *models.Result {
	return &models.Result{ScenarioID: id, Status: status, Duration: d}
}

func TestScenarios_Observe(t *testing.T) {
	// GIVEN
	m := NewScenarios()

	// WHEN
	m.Observe(result("TC001", models.ResultPassed, time.Second))
	m.Observe(result("TC001", models.ResultPassed, 2*time.Second))
	m.Observe(result("TC008", models.ResultFailed, 3*time.Second))
	m.Observe(result("TC009", models.ResultSkipped, 0))

	// THEN
	assert.Equal(t, 2.0, testutil.ToFloat64(m.total.WithLabelValues("TC001", "passed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.total.WithLabelValues("TC008", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.total.WithLabelValues("TC009", "skipped")))
	// skipped scenarios have no duration sample
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestScenarios_WriteTextfile(t *testing.T) {
	m := NewScenarios()
	m.Observe(result("TC003", models.ResultSetupFailed, 500*time.Millisecond))

	path := filepath.Join(t.TempDir(), "storefront_e2e.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, `storefront_e2e_scenarios_total{scenario="TC003",status="setup_failed"} 1`), out)
	assert.Contains(t, out, "storefront_e2e_scenario_duration_seconds_count")
}

func TestScenarios_WriteTextfileBadPath(t *testing.T) {
	m := NewScenarios()
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	assert.Error(t, err)
}
