package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/infrastructure/metrics"
)

func TestSaleMetrics_CuentaPorRamaYResultado(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewSaleMetrics("catalog", reg)
	require.NoError(t, err)

	m.RecordSaleOperation("startNow", "ok", 10*time.Millisecond)
	m.RecordSaleOperation("startNow", "ok", 20*time.Millisecond)
	m.RecordSaleOperation("endNow", "invalid", time.Millisecond)

	expected := `
# HELP catalog_sale_transitions_total Operaciones update-sale por rama ejecutada y resultado.
# TYPE catalog_sale_transitions_total counter
catalog_sale_transitions_total{action="endNow",outcome="invalid"} 1
catalog_sale_transitions_total{action="startNow",outcome="ok"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "catalog_sale_transitions_total"))

	n, err := testutil.GatherAndCount(reg, "catalog_sale_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "una serie de latencia por rama")
}

func TestSaleMetrics_RegistroRepetidoReutiliza(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := metrics.NewSaleMetrics("catalog", reg)
	require.NoError(t, err)
	second, err := metrics.NewSaleMetrics("catalog", reg)
	require.NoError(t, err)

	first.RecordSaleOperation("cancelSale", "ok", time.Millisecond)
	second.RecordSaleOperation("cancelSale", "ok", time.Millisecond)

	n, err := testutil.GatherAndCount(reg, "catalog_sale_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "ambas instancias comparten la misma serie")
}

func TestSaleMetrics_NilNoFalla(t *testing.T) {
	var m *metrics.SaleMetrics
	assert.NotPanics(t, func() { m.RecordSaleOperation("startNow", "ok", time.Second) })
}
