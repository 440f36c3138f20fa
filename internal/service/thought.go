package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cirocosta/offmychest/internal/model"
	"github.com/cirocosta/offmychest/internal/repository"
)

// ThoughtService handles business logic for thought operations
type ThoughtService struct {
	repo     repository.ThoughtRepository
	validate *validator.Validate
	now      func() time.Time
}

// NewThoughtService creates a new thought service with the given repository
func NewThoughtService(repo repository.ThoughtRepository) *ThoughtService {
	return &ThoughtService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

// ListThoughts returns all thoughts
func (s *ThoughtService) ListThoughts(ctx context.Context) ([]model.Thought, error) {
	return s.repo.FindAll(ctx)
}

// CreateThought validates the DTO and persists the thought it describes
func (s *ThoughtService) CreateThought(ctx context.Context, req model.ThoughtDTO) (model.Thought, error) {
	if err := s.validateDTO(req); err != nil {
		return model.Thought{}, err
	}

	return s.repo.Create(ctx, req.ToModel(s.now()))
}

func (s *ThoughtService) validateDTO(req model.ThoughtDTO) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate thought: %w", err)
	}

	// report the first broken rule, text before id
	for _, fe := range fieldErrs {
		if fe.Field() == "Text" {
			return &ValidationError{Field: "text", Message: ThoughtTextRequired}
		}
	}

	fe := fieldErrs[0]
	return &ValidationError{
		Field:   "id",
		Message: fmt.Sprintf("%q is not a valid UUID", fe.Value()),
	}
}
