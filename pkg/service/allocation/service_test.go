package allocation

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/finsighthq/finsight/internal/fixtures"
	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/finsighthq/finsight/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newTestService(store *fixtures.Store) *Service {
	return New(store.UoW(), slog.Default())
}

func seedTransaction(store *fixtures.Store, amount string) domain.Transaction {
	return store.AddTransaction(domain.Transaction{
		Amount:   dec(amount),
		Side:     domain.Debit,
		Currency: "EUR",
		Date:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Label:    "supplier invoice",
	})
}

func TestWriteAllocations_SplitByPercentage(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)
	tx := seedTransaction(store, "1000.00")
	projA := store.AddProject(domain.Project{Code: "PRJ-A", Name: "Alpha"})
	projB := store.AddProject(domain.Project{Code: "PRJ-B", Name: "Beta"})

	out, err := svc.WriteAllocations(context.Background(), tx.ID, []dto.AllocationInput{
		{ProjectID: &projA.ID, Percentage: decp("60")},
		{ProjectID: &projB.ID, Percentage: decp("40")},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].AmountAllocated.Equal(dec("600.00")), "got %s", out[0].AmountAllocated)
	assert.True(t, out[1].AmountAllocated.Equal(dec("400.00")), "got %s", out[1].AmountAllocated)
	assert.Equal(t, "PRJ-A", out[0].ProjectCode)
	assert.Equal(t, "Alpha", out[0].ProjectName)
}

func TestWriteAllocations_SingleClientShorthand(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)
	tx := seedTransaction(store, "500.00")

	out, err := svc.WriteAllocations(context.Background(), tx.ID, []dto.AllocationInput{
		{ClientName: "Acme"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Percentage.Equal(dec("100")))
	assert.True(t, out[0].AmountAllocated.Equal(dec("500.00")))
	assert.Equal(t, "Acme", out[0].ClientName)
}

func TestWriteAllocations_SumBelowHundredRejected(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)
	tx := seedTransaction(store, "200.00")
	proj := store.AddProject(domain.Project{Code: "PRJ", Name: "P"})

	_, err := svc.WriteAllocations(context.Background(), tx.ID, []dto.AllocationInput{
		{ProjectID: &proj.ID, Percentage: decp("60")},
		{ClientName: "Acme", Percentage: decp("39")},
	})
	require.ErrorIs(t, err, domain.ErrAllocationPercentageSum)
	assert.Contains(t, err.Error(), "99%")
	allocs, _ := store.UoW().Allocations().ListForTransaction(context.Background(), tx.ID)
	assert.Empty(t, allocs, "rejected write must not store anything")
}

func TestWriteAllocations_AmountOnlyDerivesPercentage(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)
	tx := seedTransaction(store, "750.00")
	proj := store.AddProject(domain.Project{Code: "PRJ", Name: "P"})

	out, err := svc.WriteAllocations(context.Background(), tx.ID, []dto.AllocationInput{
		{ProjectID: &proj.ID, Amount: decp("250.00")},
		{ClientName: "Acme", Amount: decp("500.00")},
	})
	require.NoError(t, err)
	assert.True(t, out[0].Percentage.Equal(dec("33.3333")), "got %s", out[0].Percentage)
	assert.True(t, out[1].Percentage.Equal(dec("66.6667")), "got %s", out[1].Percentage)
}

func TestWriteAllocations_InconsistentPairRejected(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)
	tx := seedTransaction(store, "1000.00")
	proj := store.AddProject(domain.Project{Code: "PRJ", Name: "P"})

	_, err := svc.WriteAllocations(context.Background(), tx.ID, []dto.AllocationInput{
		{ProjectID: &proj.ID, Percentage: decp("60"), Amount: decp("500.00")},
	})
	require.ErrorIs(t, err, domain.ErrAllocationInconsistent)
	assert.Contains(t, err.Error(), "60")
	assert.Contains(t, err.Error(), "500")
}

func TestWriteAllocations_MissingTargetRejected(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)
	tx := seedTransaction(store, "100.00")

	_, err := svc.WriteAllocations(context.Background(), tx.ID, []dto.AllocationInput{
		{Percentage: decp("100")},
	})
	require.ErrorIs(t, err, domain.ErrAllocationTarget)
}

func TestWriteAllocations_UnknownTransaction(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)

	_, err := svc.WriteAllocations(context.Background(), uuid.New(), []dto.AllocationInput{
		{ClientName: "Acme"},
	})
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestWriteAllocations_UnknownTransactionWinsOverBadEntries(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)

	// Even a targetless entry must not mask the missing transaction.
	_, err := svc.WriteAllocations(context.Background(), uuid.New(), []dto.AllocationInput{
		{Percentage: decp("100")},
	})
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)

	_, err = svc.WriteAllocations(context.Background(), uuid.New(), nil)
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestWriteAllocations_UnknownProject(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)
	tx := seedTransaction(store, "100.00")
	missing := uuid.New()

	_, err := svc.WriteAllocations(context.Background(), tx.ID, []dto.AllocationInput{
		{ProjectID: &missing},
	})
	require.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.Contains(t, err.Error(), missing.String())
}

func TestWriteAllocations_ReplacesPreviousSet(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)
	tx := seedTransaction(store, "100.00")
	proj := store.AddProject(domain.Project{Code: "PRJ", Name: "P"})
	ctx := context.Background()

	_, err := svc.WriteAllocations(ctx, tx.ID, []dto.AllocationInput{
		{ProjectID: &proj.ID, Percentage: decp("50")},
		{ClientName: "Acme", Percentage: decp("50")},
	})
	require.NoError(t, err)

	out, err := svc.WriteAllocations(ctx, tx.ID, []dto.AllocationInput{
		{ClientName: "Acme"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)

	stored, err := svc.GetAllocations(ctx, tx.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Percentage.Equal(dec("100")))
}

func TestWriteAllocations_Idempotent(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)
	tx := seedTransaction(store, "1000.00")
	proj := store.AddProject(domain.Project{Code: "PRJ", Name: "P"})
	ctx := context.Background()
	inputs := []dto.AllocationInput{
		{ProjectID: &proj.ID, Percentage: decp("60")},
		{ClientName: "Acme", Percentage: decp("40")},
	}

	first, err := svc.WriteAllocations(ctx, tx.ID, inputs)
	require.NoError(t, err)
	second, err := svc.WriteAllocations(ctx, tx.ID, inputs)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].Percentage.Equal(second[i].Percentage))
		assert.True(t, first[i].AmountAllocated.Equal(second[i].AmountAllocated))
	}
}

func TestWriteAllocations_FailedWriteKeepsPreviousSet(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)
	tx := seedTransaction(store, "100.00")
	ctx := context.Background()

	_, err := svc.WriteAllocations(ctx, tx.ID, []dto.AllocationInput{{ClientName: "Acme"}})
	require.NoError(t, err)

	_, err = svc.WriteAllocations(ctx, tx.ID, []dto.AllocationInput{
		{ClientName: "Acme", Percentage: decp("60")},
	})
	require.ErrorIs(t, err, domain.ErrAllocationPercentageSum)

	stored, err := svc.GetAllocations(ctx, tx.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Percentage.Equal(dec("100")))
}

func TestWriteAllocations_SumPropertyHolds(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)
	tx := seedTransaction(store, "333.33")
	proj := store.AddProject(domain.Project{Code: "PRJ", Name: "P"})
	ctx := context.Background()

	out, err := svc.WriteAllocations(ctx, tx.ID, []dto.AllocationInput{
		{ProjectID: &proj.ID, Percentage: decp("33.3333")},
		{ClientName: "Acme", Percentage: decp("33.3333")},
		{ClientName: "Globex", Percentage: decp("33.3334")},
	})
	require.NoError(t, err)

	sum := decimal.Zero
	for _, a := range out {
		sum = sum.Add(a.AmountAllocated)
	}
	diff := sum.Sub(tx.Amount).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.01")), "sum %s drifts from %s", sum, tx.Amount)
}

func TestDeleteAllocations(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)
	tx := seedTransaction(store, "100.00")
	ctx := context.Background()

	_, err := svc.WriteAllocations(ctx, tx.ID, []dto.AllocationInput{
		{ClientName: "Acme", Percentage: decp("50")},
		{ClientName: "Globex", Percentage: decp("50")},
	})
	require.NoError(t, err)

	count, err := svc.DeleteAllocations(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	stored, err := svc.GetAllocations(ctx, tx.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestDeleteAllocations_UnknownTransaction(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)

	_, err := svc.DeleteAllocations(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}
