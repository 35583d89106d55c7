package service

import (
	"context"
	"errors"
	"strings"

	"gedapi/internal/model"
	"gedapi/internal/repository"
)

var (
	ErrNameRequired  = errors.New("category name is required")
	ErrDuplicateName = errors.New("category name already exists")
	ErrCategoryInUse = errors.New("category still has associated documents")
)

// CategoryService defines the use cases for managing document categories.
type CategoryService interface {
	// Create persists a new category with a trimmed, non-empty, unique name.
	Create(ctx context.Context, name string) (*model.Category, error)

	// List returns all categories ordered by name ascending.
	List(ctx context.Context) ([]model.Category, error)

	// Delete removes a category. The delete is refused with ErrCategoryInUse
	// while documents reference it; callers get an actionable condition
	// instead of a generic store failure.
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService constructs a new CategoryService.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	cat, err := s.repo.Create(ctx, &model.Category{Name: name})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return cat, nil
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}

	err := s.repo.Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrForeignKeyViolation):
		// The row remains present; the caller should delete or reclassify
		// the referencing documents first.
		return ErrCategoryInUse
	default:
		return err
	}
}
