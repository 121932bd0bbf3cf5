package categorize

import (
	"testing"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordScorer_WeightsByLength(t *testing.T) {
	s := NewKeywordScorer([]string{"aws", "aws marketplace"})
	assert.Equal(t, 3, s.Score("AWS invoice 42"))
	assert.Equal(t, 3+15, s.Score("AWS Marketplace subscription"))
	assert.Equal(t, 0, s.Score("office rent"))
}

func TestKeywordScorer_IgnoresBlankKeywords(t *testing.T) {
	s := NewKeywordScorer([]string{"", "  ", "rent"})
	assert.Equal(t, 4, s.Score("monthly RENT payment"))
}

func TestSuggest_PicksBestScore(t *testing.T) {
	cats := []domain.Category{
		{Name: "Software", Type: domain.TypeSoftware, Active: true, Keywords: []string{"aws", "github"}},
		{Name: "Cloud Infra", Type: domain.TypeSoftware, Active: true, Keywords: []string{"aws marketplace"}},
		{Name: "Rent", Type: domain.TypeRent, Active: true, Keywords: []string{"rent"}},
	}

	m := Suggest(cats, "AWS Marketplace charge")
	require.NotNil(t, m)
	assert.Equal(t, "Cloud Infra", m.Category.Name)
}

func TestSuggest_SkipsInactiveAndNoMatch(t *testing.T) {
	cats := []domain.Category{
		{Name: "Software", Type: domain.TypeSoftware, Active: false, Keywords: []string{"aws"}},
	}
	assert.Nil(t, Suggest(cats, "aws invoice"))
	assert.Nil(t, Suggest(nil, "anything"))
}

func TestSuggest_TieBreaksOnName(t *testing.T) {
	cats := []domain.Category{
		{Name: "Zeta", Type: domain.TypeSoftware, Active: true, Keywords: []string{"saas"}},
		{Name: "Alpha", Type: domain.TypeSoftware, Active: true, Keywords: []string{"saas"}},
	}
	m := Suggest(cats, "saas subscription")
	require.NotNil(t, m)
	assert.Equal(t, "Alpha", m.Category.Name)
}
