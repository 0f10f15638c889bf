package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurationResult_Valid(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  bool
	}{
		{name: "mid-range score", score: 5, want: true},
		{name: "lower bound", score: 0, want: true},
		{name: "upper bound", score: 10, want: true},
		{name: "negative score", score: -1, want: false},
		{name: "above range", score: 10.5, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CurationResult{Score: tt.score}
			assert.Equal(t, tt.want, c.Valid())
		})
	}
}

func TestCurationResult_Normalize(t *testing.T) {
	c := CurationResult{Score: 7}
	c.Normalize()

	assert.Equal(t, "No reason provided", c.Reason)
	assert.Equal(t, CategoryOther, c.Category)
	assert.Equal(t, UrgencyMedium, c.Urgency)
	assert.NotNil(t, c.Topics)
	assert.Empty(t, c.Topics)

	// populated fields survive normalization
	c2 := CurationResult{Score: 9, Reason: "rate hike", Category: CategoryMonetary, Urgency: UrgencyHigh, Topics: []string{"rates"}}
	c2.Normalize()
	assert.Equal(t, "rate hike", c2.Reason)
	assert.Equal(t, CategoryMonetary, c2.Category)
	assert.Equal(t, UrgencyHigh, c2.Urgency)
	assert.Equal(t, []string{"rates"}, c2.Topics)
}

func TestDefaultCuration(t *testing.T) {
	c := DefaultCuration("analysis failed")
	assert.InDelta(t, 5.0, c.Score, 0.001)
	assert.Equal(t, "analysis failed", c.Reason)
	assert.Equal(t, CategoryOther, c.Category)
	assert.Equal(t, UrgencyMedium, c.Urgency)
	assert.Empty(t, c.Topics)
	assert.True(t, c.Valid())
}

func TestCurationResult_Apply(t *testing.T) {
	a := Article{Title: "기준금리 인상", Description: "한국은행 발표"}
	c := CurationResult{Score: 9.5, Reason: "market moving", Category: CategoryMonetary, Urgency: UrgencyBreaking, Topics: []string{"interest_rates"}}
	c.Apply(&a)

	assert.InDelta(t, 9.5, a.ImportanceScore, 0.001)
	assert.Equal(t, "market moving", a.ImportanceReason)
	assert.Equal(t, CategoryMonetary, a.Category)
	assert.Equal(t, UrgencyBreaking, a.Urgency)
	assert.Equal(t, []string{"interest_rates"}, a.Topics)
}

func TestArticle_SemanticKey(t *testing.T) {
	a := Article{Title: "환율 급등", Description: "원달러 환율이 상승했다"}
	assert.Equal(t, "환율 급등 원달러 환율이 상승했다", a.SemanticKey())
}
