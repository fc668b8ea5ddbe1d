package expense

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farai/schoolledger/pkg/domain"
	"github.com/farai/schoolledger/pkg/dto"
	repo "github.com/farai/schoolledger/pkg/repository/expense"
)

type repository struct {
	db *gorm.DB
}

// New creates a CQRS-style expense repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements expense.Repository.
func (r *repository) Create(ctx context.Context, create dto.ExpenseCreate) error {
	e := mapCreateDTOToModel(create)
	return r.db.WithContext(ctx).Create(&e).Error
}

// Update implements expense.Repository.
func (r *repository) Update(ctx context.Context, id uuid.UUID, update dto.ExpenseUpdate) error {
	updates := mapUpdateDTOToModel(update)
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&Expense{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// Get implements expense.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.ExpenseRead, error) {
	var e Expense
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return mapModelToDTO(&e), nil
}

// List implements expense.Repository.
func (r *repository) List(ctx context.Context) ([]*dto.ExpenseRead, error) {
	var expenses []Expense
	if err := r.db.WithContext(ctx).Order("date DESC, created_at DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.ExpenseRead, 0, len(expenses))
	for i := range expenses {
		result = append(result, mapModelToDTO(&expenses[i]))
	}
	return result, nil
}

// Delete implements expense.Repository.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Expense{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// mapCreateDTOToModel maps ExpenseCreate DTO to GORM model.
func mapCreateDTOToModel(create dto.ExpenseCreate) Expense {
	return Expense{
		ID:                 create.ID,
		Description:        create.Description,
		Amount:             create.Amount,
		Currency:           create.Currency,
		Category:           create.Category,
		Date:               create.Date,
		PaymentMethod:      create.PaymentMethod,
		AccountID:          create.AccountID,
		AllocationCategory: create.AllocationCategory,
	}
}

// mapUpdateDTOToModel maps ExpenseUpdate DTO to a map for GORM Updates.
func mapUpdateDTOToModel(update dto.ExpenseUpdate) map[string]any {
	updates := make(map[string]any)
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.Currency != nil {
		updates["currency"] = *update.Currency
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.Date != nil {
		updates["date"] = *update.Date
	}
	if update.PaymentMethod != nil {
		updates["payment_method"] = *update.PaymentMethod
	}
	if update.AccountID != nil {
		updates["account_id"] = *update.AccountID
	}
	if update.AllocationCategory != nil {
		updates["allocation_category"] = *update.AllocationCategory
	}
	return updates
}

// mapModelToDTO maps a GORM model to a read-optimized DTO.
func mapModelToDTO(e *Expense) *dto.ExpenseRead {
	return &dto.ExpenseRead{
		ID:                 e.ID,
		Description:        e.Description,
		Amount:             e.Amount,
		Currency:           e.Currency,
		Category:           e.Category,
		Date:               e.Date,
		PaymentMethod:      e.PaymentMethod,
		AccountID:          e.AccountID,
		AllocationCategory: e.AllocationCategory,
		CreatedAt:          e.CreatedAt,
	}
}
