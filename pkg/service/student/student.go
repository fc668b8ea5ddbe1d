// Package student provides the student CRUD service.
package student

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/farai/schoolledger/pkg/dto"
	studentrepo "github.com/farai/schoolledger/pkg/repository/student"
)

// Service wraps student data access with enrollment defaults.
type Service struct {
	students studentrepo.Repository
	logger   *slog.Logger
}

// NewService creates a student service.
func NewService(students studentrepo.Repository, logger *slog.Logger) *Service {
	return &Service{students: students, logger: logger}
}

// EnrollStudent registers a new student. The billing snapshot starts with
// nothing paid and the outstanding balance equal to the total fees.
func (s *Service) EnrollStudent(ctx context.Context, create dto.StudentCreate) (*dto.StudentRead, error) {
	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	if create.Status == "" {
		create.Status = "active"
	}
	if create.EnrollmentDate.IsZero() {
		create.EnrollmentDate = time.Now()
	}
	if err := s.students.Create(ctx, create); err != nil {
		return nil, err
	}
	s.logger.Info("student enrolled", "student_id", create.ID, "class", create.Class)
	return s.students.Get(ctx, create.ID)
}

// UpdateStudent edits identity or fee fields. Paid and outstanding figures
// move only through the payment path; a fee edit re-derives the outstanding
// balance in storage.
func (s *Service) UpdateStudent(ctx context.Context, id uuid.UUID, update dto.StudentUpdate) (*dto.StudentRead, error) {
	if err := s.students.Update(ctx, id, update); err != nil {
		return nil, err
	}
	return s.students.Get(ctx, id)
}

// GetStudent returns one student.
func (s *Service) GetStudent(ctx context.Context, id uuid.UUID) (*dto.StudentRead, error) {
	return s.students.Get(ctx, id)
}

// ListStudents returns all students ordered by name.
func (s *Service) ListStudents(ctx context.Context) ([]*dto.StudentRead, error) {
	return s.students.List(ctx)
}

// DeleteStudent removes a student record. Their payments remain on the books
// as receipts.
func (s *Service) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	return s.students.Delete(ctx, id)
}
