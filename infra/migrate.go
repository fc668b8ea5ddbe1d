package infra

import (
	"gorm.io/gorm"

	expensemodel "github.com/farai/schoolledger/infra/repository/expense"
	paymentmodel "github.com/farai/schoolledger/infra/repository/payment"
	studentmodel "github.com/farai/schoolledger/infra/repository/student"
)

// AutoMigrate creates or updates the ledger tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&studentmodel.Student{},
		&paymentmodel.Payment{},
		&paymentmodel.Allocation{},
		&expensemodel.Expense{},
	)
}
