package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/query"
	"github.com/noah-isme/ssis-api/pkg/dberrors"
	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
)

type resourceRepository[T any] interface {
	List(ctx context.Context, params query.Params) ([]T, int, error)
	FindByKey(ctx context.Context, key string) (*T, error)
	Exists(ctx context.Context, key string) (bool, error)
	Create(ctx context.Context, row *T) (*T, error)
	Update(ctx context.Context, currentKey string, row *T) (*T, error)
	Delete(ctx context.Context, key string) (*T, error)
}

// ResourceService runs the checked CRUD flow shared by students, programs and colleges.
type ResourceService[T models.Record] struct {
	repo      resourceRepository[T]
	resource  Resource
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResourceService constructs a ResourceService for one resource.
func NewResourceService[T models.Record](repo resourceRepository[T], resource Resource, validate *validator.Validate, logger *zap.Logger) *ResourceService[T] {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceService[T]{repo: repo, resource: resource, validator: validate, logger: logger}
}

// NewProgramService constructs the program service.
func NewProgramService(repo resourceRepository[models.Program], validate *validator.Validate, logger *zap.Logger) *ResourceService[models.Program] {
	return NewResourceService[models.Program](repo, ProgramResource, validate, logger)
}

// NewCollegeService constructs the college service.
func NewCollegeService(repo resourceRepository[models.College], validate *validator.Validate, logger *zap.Logger) *ResourceService[models.College] {
	return NewResourceService[models.College](repo, CollegeResource, validate, logger)
}

// Resource describes the resource served.
func (s *ResourceService[T]) Resource() Resource {
	return s.resource
}

// List returns one page of rows with pagination metadata. Data is never nil.
func (s *ResourceService[T]) List(ctx context.Context, params query.Params) (*models.Page[T], error) {
	params.Page, params.Limit = query.Normalize(params.Page, params.Limit)

	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, s.internal(err, "list")
	}
	if rows == nil {
		rows = []T{}
	}

	return &models.Page[T]{
		Data: rows,
		Pagination: models.Pagination{
			TotalRecords: total,
			TotalPages:   query.TotalPages(total, params.Limit),
			CurrentPage:  params.Page,
			Limit:        params.Limit,
		},
	}, nil
}

// Get returns the row stored under key.
func (s *ResourceService[T]) Get(ctx context.Context, key string) (*T, error) {
	row, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.notFound()
		}
		return nil, s.internal(err, "load")
	}
	return row, nil
}

// Create validates row, rejects a taken natural key and inserts it.
func (s *ResourceService[T]) Create(ctx context.Context, row T) (*T, error) {
	if err := s.validator.Struct(row); err != nil {
		return nil, validationError(err)
	}

	exists, err := s.repo.Exists(ctx, row.NaturalKey())
	if err != nil {
		return nil, s.internal(err, "check")
	}
	if exists {
		return nil, s.conflict(nil)
	}

	created, err := s.repo.Create(ctx, &row)
	if err != nil {
		return nil, s.storeError(err, "create")
	}

	s.logger.Info("resource created", zap.String("resource", s.resource.Key), zap.String("key", row.NaturalKey()))
	return created, nil
}

// Update rewrites the row under currentKey. The natural key may change as long as the new one is free.
func (s *ResourceService[T]) Update(ctx context.Context, currentKey string, row T) (*T, error) {
	if err := s.validator.Struct(row); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.Get(ctx, currentKey); err != nil {
		return nil, err
	}

	if newKey := row.NaturalKey(); newKey != currentKey {
		exists, err := s.repo.Exists(ctx, newKey)
		if err != nil {
			return nil, s.internal(err, "check")
		}
		if exists {
			return nil, s.conflict(nil)
		}
	}

	updated, err := s.repo.Update(ctx, currentKey, &row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.notFound()
		}
		return nil, s.storeError(err, "update")
	}

	s.logger.Info("resource updated",
		zap.String("resource", s.resource.Key),
		zap.String("key", currentKey),
		zap.String("new_key", row.NaturalKey()),
	)
	return updated, nil
}

// Delete removes the row under key and returns it.
func (s *ResourceService[T]) Delete(ctx context.Context, key string) (*T, error) {
	deleted, err := s.repo.Delete(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.notFound()
		}
		return nil, s.storeError(err, "delete")
	}

	s.logger.Info("resource deleted", zap.String("resource", s.resource.Key), zap.String("key", key))
	return deleted, nil
}

// storeError maps constraint violations raised by a mutation; anything else is internal.
func (s *ResourceService[T]) storeError(err error, action string) error {
	if constraint := dberrors.Constraint(err); constraint != "" {
		s.logger.Warn("resource constraint violated",
			zap.String("resource", s.resource.Key),
			zap.String("action", action),
			zap.String("constraint", constraint),
		)
	}

	switch {
	case dberrors.IsUniqueViolation(err):
		return s.conflict(err)
	case dberrors.IsForeignKeyViolation(err) && action == "delete":
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, s.resource.InUseMessage())
	case dberrors.IsForeignKeyViolation(err):
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, s.resource.MissingReferenceMessage())
	}
	return s.internal(err, action)
}

func (s *ResourceService[T]) notFound() error {
	return appErrors.Clone(appErrors.ErrNotFound, s.resource.NotFoundMessage())
}

func (s *ResourceService[T]) conflict(cause error) error {
	return appErrors.Wrap(cause, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, s.resource.ConflictMessage())
}

func (s *ResourceService[T]) internal(err error, action string) error {
	s.logger.Error("resource store failure",
		zap.String("resource", s.resource.Key),
		zap.String("action", action),
		zap.Error(err),
	)
	return appErrors.Internal(err, "failed to "+action+" "+strings.ToLower(s.resource.Name))
}
