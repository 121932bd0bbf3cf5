package allocation

import (
	"testing"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_StoredAllocationsReturnedVerbatim(t *testing.T) {
	projID := uuid.New()
	tx := domain.Transaction{ID: uuid.New(), Amount: dec("1000.00"), ProjectID: &projID}
	allocs := []domain.Allocation{
		{TransactionID: tx.ID, ProjectID: &projID, Percentage: dec("60"), AmountAllocated: dec("600.00")},
		{TransactionID: tx.ID, ClientName: "Acme", Percentage: dec("40"), AmountAllocated: dec("400.00")},
	}

	out := Resolve(tx, allocs, nil)
	require.Len(t, out, 2)
	assert.True(t, out[0].Fraction.Equal(dec("0.6")))
	assert.True(t, out[0].Amount.Equal(dec("600.00")))
	assert.Equal(t, "Acme", out[1].ClientName)
}

func TestResolve_FallbackToDirectProject(t *testing.T) {
	proj := domain.Project{ID: uuid.New(), Code: "PRJ", ClientName: "Acme"}
	tx := domain.Transaction{ID: uuid.New(), Amount: dec("750.00"), ProjectID: &proj.ID}

	out := Resolve(tx, nil, map[uuid.UUID]domain.Project{proj.ID: proj})
	require.Len(t, out, 1)
	assert.Equal(t, &proj.ID, out[0].ProjectID)
	assert.Equal(t, "Acme", out[0].ClientName)
	assert.True(t, out[0].Fraction.Equal(dec("1")))
	assert.True(t, out[0].Amount.Equal(dec("750.00")))
}

func TestResolve_NoProjectNoAllocations(t *testing.T) {
	tx := domain.Transaction{ID: uuid.New(), Amount: dec("100.00")}
	assert.Empty(t, Resolve(tx, nil, nil))
}

func TestResolve_AllocationsSuppressFallback(t *testing.T) {
	directProj := uuid.New()
	otherProj := uuid.New()
	tx := domain.Transaction{ID: uuid.New(), Amount: dec("1000.00"), ProjectID: &directProj}
	allocs := []domain.Allocation{
		{TransactionID: tx.ID, ProjectID: &otherProj, Percentage: dec("100"), AmountAllocated: dec("1000.00")},
	}

	out := Resolve(tx, allocs, map[uuid.UUID]domain.Project{
		directProj: {ID: directProj},
		otherProj:  {ID: otherProj},
	})
	require.Len(t, out, 1)
	assert.Equal(t, &otherProj, out[0].ProjectID, "direct project must not contribute once allocations exist")
}
