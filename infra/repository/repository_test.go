package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/finsighthq/finsight/pkg/domain"
	repo "github.com/finsighthq/finsight/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestAllocationRepository_ReplaceSwapsInsideOneTransaction(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)

	txID := uuid.New()
	allocations := []domain.Allocation{{
		ID:              uuid.New(),
		TransactionID:   txID,
		ClientName:      "Acme",
		Percentage:      decimal.RequireFromString("100"),
		AmountAllocated: decimal.RequireFromString("500.00"),
	}}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "allocations" SET "deleted_at"=(.+)`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`INSERT INTO "allocations" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(allocations[0].ID))
	mock.ExpectCommit()

	uow := NewUoW(db)
	err := uow.Do(context.Background(), func(uow repo.UnitOfWork) error {
		return uow.Allocations().Replace(context.Background(), txID, allocations)
	})
	require.NoError(err)
	require.NoError(mock.ExpectationsWereMet())
}

func TestAllocationRepository_ReplaceRollsBackOnInsertFailure(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)

	txID := uuid.New()
	allocations := []domain.Allocation{{
		ID:              uuid.New(),
		TransactionID:   txID,
		Percentage:      decimal.RequireFromString("100"),
		AmountAllocated: decimal.RequireFromString("500.00"),
	}}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "allocations" SET "deleted_at"=(.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "allocations" (.+)`).
		WillReturnError(errors.New("insert error"))
	mock.ExpectRollback()

	uow := NewUoW(db)
	err := uow.Do(context.Background(), func(uow repo.UnitOfWork) error {
		return uow.Allocations().Replace(context.Background(), txID, allocations)
	})
	require.Error(err)
	require.NoError(mock.ExpectationsWereMet())
}

func TestTransactionRepository_GetNotFound(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "transactions" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	r := NewTransactionRepository(db)
	_, err := r.Get(context.Background(), uuid.New())
	require.ErrorIs(err, domain.ErrTransactionNotFound)
}
