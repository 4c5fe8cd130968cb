package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/graphql", "200"))

	RecordHTTPRequest("POST", "/graphql", "200", 15*time.Millisecond, 120, 512)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/graphql", "200"))
	assert.Equal(t, before+1, after)
	assert.Positive(t, testutil.CollectAndCount(HTTPRequestDuration))
}

func TestRecordGraphQLOperation(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		label     string
		code      string
	}{
		{"root field", "articlesPage", "articlesPage", "OK"},
		{"empty", "", "other", "OK"},
		{"not found", "article", "article", "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := GraphQLOperationsTotal.WithLabelValues(tt.label, tt.code)
			before := testutil.ToFloat64(counter)

			RecordGraphQLOperation(tt.operation, tt.code, 3*time.Millisecond)

			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestGauges(t *testing.T) {
	UpdateArticlesTotal(42)
	assert.Equal(t, 42.0, testutil.ToFloat64(ArticlesTotal))

	UpdateDBConnectionStats(3, 7)
	assert.Equal(t, 3.0, testutil.ToFloat64(DBConnectionsInUse))
	assert.Equal(t, 7.0, testutil.ToFloat64(DBConnectionsIdle))

	SetStoreCircuitOpen(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(StoreCircuitOpen))
	SetStoreCircuitOpen(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(StoreCircuitOpen))
}

func TestRecordImport(t *testing.T) {
	imported := ArticlesImportedTotal.WithLabelValues("imported")
	failed := ArticlesImportedTotal.WithLabelValues("failed")
	b1, b2 := testutil.ToFloat64(imported), testutil.ToFloat64(failed)

	RecordImport(5, 0, 2)

	assert.Equal(t, b1+5, testutil.ToFloat64(imported))
	assert.Equal(t, b2+2, testutil.ToFloat64(failed))
}
