package student

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/farai/schoolledger/pkg/domain"
	"github.com/farai/schoolledger/pkg/dto"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })

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

func TestStudentRepository_Create(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := repository{db: db}

	mock.ExpectExec(`INSERT INTO "students" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), dto.StudentCreate{
		ID:        uuid.New(),
		FirstName: "Tariro",
		LastName:  "Moyo",
		Status:    "active",
		TotalFees: decimal.NewFromInt(1000),
	})
	require.NoError(err)
	require.NoError(mock.ExpectationsWereMet())
}

func TestStudentRepository_ApplyPaymentDelta(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := repository{db: db}
	id := uuid.New()

	// Paid amount and outstanding balance move in one statement.
	mock.ExpectExec(`UPDATE "students" SET (.*)"outstanding_balance"=GREATEST\(total_fees - \(paid_amount \+ (.+)\), 0\),"paid_amount"=paid_amount \+ (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ApplyPaymentDelta(context.Background(), id, decimal.NewFromInt(300))
	require.NoError(err)
	require.NoError(mock.ExpectationsWereMet())
}

func TestStudentRepository_ApplyPaymentDeltaMissingStudent(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := repository{db: db}

	mock.ExpectExec(`UPDATE "students" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ApplyPaymentDelta(context.Background(), uuid.New(), decimal.NewFromInt(300))
	require.ErrorIs(err, domain.ErrStudentNotFound)
}

func TestStudentRepository_ReversePaymentDelta(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := repository{db: db}

	// The reversal floors paid_amount at zero in SQL.
	mock.ExpectExec(`UPDATE "students" SET (.+)GREATEST\(paid_amount - (.+), 0\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ReversePaymentDelta(context.Background(), uuid.New(), decimal.NewFromInt(250))
	require.NoError(err)
	require.NoError(mock.ExpectationsWereMet())
}

func TestStudentRepository_UpdateError(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := repository{db: db}

	status := "inactive"
	mock.ExpectExec(`UPDATE "students" SET (.+)`).
		WillReturnError(errors.New("update error"))

	err := repo.Update(context.Background(), uuid.New(), dto.StudentUpdate{Status: &status})
	require.Error(err)
}
