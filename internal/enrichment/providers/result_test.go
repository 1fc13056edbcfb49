package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"enricher/internal/enrichment/models"
)

func TestResult(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		partial := &models.Person{FirstName: "Ada"}
		res := Found("surfe", CapabilityEnrichPerson, partial, time.Second)

		assert.True(t, res.Success())
		assert.Equal(t, OutcomeSuccess, res.Outcome())
		assert.Empty(t, res.Reason())
		assert.Same(t, partial, res.Partial)
	})

	t.Run("failed", func(t *testing.T) {
		err := NewProviderError(ErrorProviderOutage, "hunter", "GET /v2?api_key=s3cr3t: HTTP 503", nil)
		res := Failed[models.Person]("hunter", CapabilityEnrichPerson, err, time.Second)

		assert.False(t, res.Success())
		assert.Equal(t, ErrorProviderOutage, res.Category)
		assert.Equal(t, string(ErrorProviderOutage), res.Outcome())
		assert.NotContains(t, res.Reason(), "s3cr3t")
		assert.Nil(t, res.Partial)
	})
}
