package student

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/farai/schoolledger/pkg/domain"
	"github.com/farai/schoolledger/pkg/dto"
	repo "github.com/farai/schoolledger/pkg/repository/student"
)

type repository struct {
	db *gorm.DB
}

// New creates a CQRS-style student repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements student.Repository.
func (r *repository) Create(ctx context.Context, create dto.StudentCreate) error {
	s := mapCreateDTOToModel(create)
	return r.db.WithContext(ctx).Create(&s).Error
}

// Update implements student.Repository.
func (r *repository) Update(ctx context.Context, id uuid.UUID, update dto.StudentUpdate) error {
	updates := mapUpdateDTOToModel(update)
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&Student{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStudentNotFound
	}
	// A fee edit moves the outstanding balance; the paid amount stays put.
	if _, ok := updates["total_fees"]; ok {
		return r.db.WithContext(ctx).Model(&Student{}).Where("id = ?", id).
			Update("outstanding_balance", gorm.Expr("GREATEST(total_fees - paid_amount, 0)")).Error
	}
	return nil
}

// Get implements student.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.StudentRead, error) {
	var s Student
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}
	return mapModelToDTO(&s), nil
}

// List implements student.Repository.
func (r *repository) List(ctx context.Context) ([]*dto.StudentRead, error) {
	var students []Student
	if err := r.db.WithContext(ctx).Order("last_name, first_name").Find(&students).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.StudentRead, 0, len(students))
	for i := range students {
		result = append(result, mapModelToDTO(&students[i]))
	}
	return result, nil
}

// Delete implements student.Repository.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Student{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

// ApplyPaymentDelta implements student.Repository. The paid amount and the
// outstanding balance move in one UPDATE so concurrent payment writes cannot
// interleave a read-modify-write and break the balance invariant.
func (r *repository) ApplyPaymentDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&Student{}).Where("id = ?", id).Updates(map[string]any{
		"paid_amount":         gorm.Expr("paid_amount + ?", delta),
		"outstanding_balance": gorm.Expr("GREATEST(total_fees - (paid_amount + ?), 0)", delta),
		"updated_at":          time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

// ReversePaymentDelta implements student.Repository. The paid amount floors
// at zero when the reversal exceeds what is on record.
func (r *repository) ReversePaymentDelta(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&Student{}).Where("id = ?", id).Updates(map[string]any{
		"paid_amount":         gorm.Expr("GREATEST(paid_amount - ?, 0)", amount),
		"outstanding_balance": gorm.Expr("GREATEST(total_fees - GREATEST(paid_amount - ?, 0), 0)", amount),
		"updated_at":          time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

// mapCreateDTOToModel maps StudentCreate DTO to GORM model.
func mapCreateDTOToModel(create dto.StudentCreate) Student {
	return Student{
		ID:                 create.ID,
		FirstName:          create.FirstName,
		LastName:           create.LastName,
		Class:              create.Class,
		Status:             create.Status,
		EnrollmentDate:     create.EnrollmentDate,
		TotalFees:          create.TotalFees,
		PaidAmount:         decimal.Zero,
		OutstandingBalance: create.TotalFees,
	}
}

// mapUpdateDTOToModel maps StudentUpdate DTO to a map for GORM Updates.
func mapUpdateDTOToModel(update dto.StudentUpdate) map[string]any {
	updates := make(map[string]any)
	if update.FirstName != nil {
		updates["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		updates["last_name"] = *update.LastName
	}
	if update.Class != nil {
		updates["class"] = *update.Class
	}
	if update.Status != nil {
		updates["status"] = *update.Status
	}
	if update.TotalFees != nil {
		updates["total_fees"] = *update.TotalFees
	}
	return updates
}

// mapModelToDTO maps a GORM model to a read-optimized DTO.
func mapModelToDTO(s *Student) *dto.StudentRead {
	return &dto.StudentRead{
		ID:                 s.ID,
		FirstName:          s.FirstName,
		LastName:           s.LastName,
		Class:              s.Class,
		Status:             s.Status,
		EnrollmentDate:     s.EnrollmentDate,
		TotalFees:          s.TotalFees,
		PaidAmount:         s.PaidAmount,
		OutstandingBalance: s.OutstandingBalance,
		CreatedAt:          s.CreatedAt,
	}
}
