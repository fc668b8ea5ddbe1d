package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farai/schoolledger/pkg/domain"
	"github.com/farai/schoolledger/pkg/dto"
	repo "github.com/farai/schoolledger/pkg/repository/payment"
)

type repository struct {
	db *gorm.DB
}

// New creates a CQRS-style payment repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements payment.Repository. The allocation rows are inserted in
// the same statement through the association.
func (r *repository) Create(ctx context.Context, create dto.PaymentCreate) error {
	p := mapCreateDTOToModel(create)
	return r.db.WithContext(ctx).Create(&p).Error
}

// Update implements payment.Repository. A non-nil allocation slice replaces
// the payment_allocations rows wholesale so the snapshot keeps summing to the
// edited amount.
func (r *repository) Update(ctx context.Context, id uuid.UUID, update dto.PaymentUpdate) error {
	updates := mapUpdateDTOToModel(update)
	if len(updates) == 0 && update.Allocations == nil {
		return nil
	}
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&Payment{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrPaymentNotFound
		}
	}
	if update.Allocations != nil {
		if err := r.db.WithContext(ctx).Delete(&Allocation{}, "payment_id = ?", id).Error; err != nil {
			return err
		}
		rows := make([]Allocation, 0, len(update.Allocations))
		for _, a := range update.Allocations {
			rows = append(rows, Allocation{
				PaymentID:  id,
				Category:   a.Category,
				Percentage: a.Percentage,
				Amount:     a.Amount,
			})
		}
		if len(rows) > 0 {
			if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// Get implements payment.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.PaymentRead, error) {
	var p Payment
	if err := r.db.WithContext(ctx).Preload("Allocations").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return mapModelToDTO(&p), nil
}

// List implements payment.Repository.
func (r *repository) List(ctx context.Context) ([]*dto.PaymentRead, error) {
	var payments []Payment
	if err := r.db.WithContext(ctx).Preload("Allocations").
		Order("payment_date DESC, created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.PaymentRead, 0, len(payments))
	for i := range payments {
		result = append(result, mapModelToDTO(&payments[i]))
	}
	return result, nil
}

// ListByStudent implements payment.Repository.
func (r *repository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*dto.PaymentRead, error) {
	var payments []Payment
	if err := r.db.WithContext(ctx).Preload("Allocations").
		Where("student_id = ?", studentID).
		Order("payment_date DESC, created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.PaymentRead, 0, len(payments))
	for i := range payments {
		result = append(result, mapModelToDTO(&payments[i]))
	}
	return result, nil
}

// Delete implements payment.Repository. Allocation rows go with the payment.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&Allocation{}, "payment_id = ?", id).Error; err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Delete(&Payment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

// mapCreateDTOToModel maps PaymentCreate DTO to GORM model.
func mapCreateDTOToModel(create dto.PaymentCreate) Payment {
	p := Payment{
		ID:            create.ID,
		StudentName:   create.StudentName,
		Amount:        create.Amount,
		Currency:      create.Currency,
		PaymentMethod: create.PaymentMethod,
		PaymentDate:   create.PaymentDate,
		Description:   create.Description,
		InvoiceNumber: create.InvoiceNumber,
		Status:        create.Status,
		AccountID:     create.AccountID,
	}
	if create.StudentID != uuid.Nil {
		id := create.StudentID
		p.StudentID = &id
	}
	for _, a := range create.Allocations {
		p.Allocations = append(p.Allocations, Allocation{
			PaymentID:  create.ID,
			Category:   a.Category,
			Percentage: a.Percentage,
			Amount:     a.Amount,
		})
	}
	return p
}

// mapUpdateDTOToModel maps PaymentUpdate DTO to a map for GORM Updates.
func mapUpdateDTOToModel(update dto.PaymentUpdate) map[string]any {
	updates := make(map[string]any)
	if update.StudentID != nil {
		updates["student_id"] = *update.StudentID
	}
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.Currency != nil {
		updates["currency"] = *update.Currency
	}
	if update.PaymentMethod != nil {
		updates["payment_method"] = *update.PaymentMethod
	}
	if update.PaymentDate != nil {
		updates["payment_date"] = *update.PaymentDate
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Status != nil {
		updates["status"] = *update.Status
	}
	if update.AccountID != nil {
		updates["account_id"] = *update.AccountID
	}
	return updates
}

// mapModelToDTO maps a GORM model to a read-optimized DTO.
func mapModelToDTO(p *Payment) *dto.PaymentRead {
	read := &dto.PaymentRead{
		ID:            p.ID,
		StudentName:   p.StudentName,
		Amount:        p.Amount,
		Currency:      p.Currency,
		PaymentMethod: p.PaymentMethod,
		PaymentDate:   p.PaymentDate,
		Description:   p.Description,
		InvoiceNumber: p.InvoiceNumber,
		Status:        p.Status,
		AccountID:     p.AccountID,
		CreatedAt:     p.CreatedAt,
	}
	if p.StudentID != nil {
		read.StudentID = *p.StudentID
	}
	for _, a := range p.Allocations {
		read.Allocations = append(read.Allocations, dto.AllocationRead{
			Category:   a.Category,
			Percentage: a.Percentage,
			Amount:     a.Amount,
		})
	}
	return read
}
