// Package student exposes the student HTTP endpoints.
package student

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/farai/schoolledger/pkg/dto"
	studentsvc "github.com/farai/schoolledger/pkg/service/student"
	"github.com/farai/schoolledger/webapi/common"
)

// Routes registers HTTP routes for student operations.
func Routes(app *fiber.App, svc *studentsvc.Service) {
	group := app.Group("/api/students")
	group.Get("/", List(svc))
	group.Post("/", Enroll(svc))
	group.Get("/:id", Get(svc))
	group.Put("/:id", Update(svc))
	group.Delete("/:id", Delete(svc))
}

// List returns all students.
func List(svc *studentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		students, err := svc.ListStudents(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list students", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Students fetched successfully", students)
	}
}

// Enroll registers a new student.
func Enroll(svc *studentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := common.BindAndValidate[EnrollRequest](c)
		if req == nil {
			return err
		}
		create := dto.StudentCreate{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Class:     req.Class,
			Status:    req.Status,
			TotalFees: req.TotalFees,
		}
		if req.EnrollmentDate != nil {
			create.EnrollmentDate = *req.EnrollmentDate
		}
		created, err := svc.EnrollStudent(c.Context(), create)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to enroll student", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Student enrolled successfully", created)
	}
}

// Get returns one student.
func Get(svc *studentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid student id", err, fiber.StatusBadRequest)
		}
		s, err := svc.GetStudent(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Student not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Student fetched successfully", s)
	}
}

// Update edits a student.
func Update(svc *studentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid student id", err, fiber.StatusBadRequest)
		}
		req, err := common.BindAndValidate[UpdateRequest](c)
		if req == nil {
			return err
		}
		updated, err := svc.UpdateStudent(c.Context(), id, dto.StudentUpdate{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Class:     req.Class,
			Status:    req.Status,
			TotalFees: req.TotalFees,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update student", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Student updated successfully", updated)
	}
}

// Delete removes a student record.
func Delete(svc *studentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid student id", err, fiber.StatusBadRequest)
		}
		if err := svc.DeleteStudent(c.Context(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete student", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Student deleted successfully", nil)
	}
}
