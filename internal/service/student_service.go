package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ssis-api/internal/models"
)

type studentRepository interface {
	resourceRepository[models.Student]
	UpdateImage(ctx context.Context, studentID string, url *string) (*models.Student, error)
}

// StudentService handles student use-cases.
type StudentService struct {
	*ResourceService[models.Student]
	students studentRepository
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	return &StudentService{
		ResourceService: NewResourceService[models.Student](repo, StudentResource, validate, logger),
		students:        repo,
	}
}

// UpdateImage sets the student's image URL, or clears it when url is nil.
func (s *StudentService) UpdateImage(ctx context.Context, studentID string, url *string) (*models.Student, error) {
	student, err := s.students.UpdateImage(ctx, studentID, url)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.notFound()
		}
		return nil, s.internal(err, "update image of")
	}

	s.logger.Info("student image updated", zap.String("student_id", studentID), zap.Bool("cleared", url == nil))
	return student, nil
}
