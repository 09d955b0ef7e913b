package query

import (
	"context"
	"errors"

	"github.com/mateus-ssouza/sevencc-bank/internal/apperr"
	"github.com/mateus-ssouza/sevencc-bank/internal/cqrs"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
	"github.com/mateus-ssouza/sevencc-bank/internal/repository"
)

type BranchQueryService struct {
	branches repository.BranchRepository
}

func NewBranchQueryService(branches repository.BranchRepository) *BranchQueryService {
	return &BranchQueryService{branches: branches}
}

func (s *BranchQueryService) GetBranch(ctx context.Context, q cqrs.GetBranchQuery) (*models.Branch, error) {
	branch, err := s.branches.GetByID(ctx, q.BranchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "branch not found")
		}
		return nil, apperr.Wrap("failed to get branch", err)
	}
	return branch, nil
}

func (s *BranchQueryService) ListBranches(ctx context.Context) ([]models.Branch, error) {
	branches, err := s.branches.List(ctx)
	if err != nil {
		return nil, apperr.Wrap("failed to list branches", err)
	}
	return branches, nil
}
