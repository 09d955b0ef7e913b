package command

import (
	"context"
	"errors"

	"github.com/mateus-ssouza/sevencc-bank/internal/apperr"
	"github.com/mateus-ssouza/sevencc-bank/internal/cqrs"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
	"github.com/mateus-ssouza/sevencc-bank/internal/repository"
)

// BranchCommandService manages branch records (back-office, admin only).
type BranchCommandService struct {
	store Store
}

func NewBranchCommandService(store Store) *BranchCommandService {
	return &BranchCommandService{store: store}
}

// CreateBranch registers a branch; the public branch number must be unique.
func (s *BranchCommandService) CreateBranch(ctx context.Context, cmd cqrs.CreateBranchCommand) (*models.Branch, error) {
	var branch *models.Branch
	err := s.store.InTx(ctx, func(r repository.Repos) error {
		if _, err := r.Branches().GetByNumber(ctx, cmd.Number); err == nil {
			return apperr.New(apperr.Conflict, "branch number already in use")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		branch = &models.Branch{
			Name:   cmd.Name,
			Number: cmd.Number,
			Phone:  cmd.Phone,
			City:   cmd.City,
			State:  cmd.State,
		}
		return r.Branches().Create(ctx, branch)
	})
	if err != nil {
		return nil, classify(err, "failed to create branch")
	}
	return branch, nil
}

// UpdateBranch changes a branch's contact data. The public number is immutable.
func (s *BranchCommandService) UpdateBranch(ctx context.Context, cmd cqrs.UpdateBranchCommand) (*models.Branch, error) {
	var branch *models.Branch
	err := s.store.InTx(ctx, func(r repository.Repos) error {
		existing, err := r.Branches().GetByID(ctx, cmd.BranchID)
		if err != nil {
			return notFound(err, "branch not found")
		}

		existing.Name = cmd.Name
		existing.Phone = cmd.Phone
		existing.City = cmd.City
		existing.State = cmd.State
		if err := r.Branches().Update(ctx, existing); err != nil {
			return err
		}
		branch = existing
		return nil
	})
	if err != nil {
		return nil, classify(err, "failed to update branch")
	}
	return branch, nil
}

// DeleteBranch removes a branch with no accounts attached to it.
func (s *BranchCommandService) DeleteBranch(ctx context.Context, cmd cqrs.DeleteBranchCommand) error {
	err := s.store.InTx(ctx, func(r repository.Repos) error {
		branch, err := r.Branches().GetByID(ctx, cmd.BranchID)
		if err != nil {
			return notFound(err, "branch not found")
		}

		hasAccounts, err := r.Accounts().ExistsByBranchID(ctx, branch.ID)
		if err != nil {
			return err
		}
		if hasAccounts {
			return apperr.New(apperr.Conflict, "branch still has accounts")
		}
		return r.Branches().Delete(ctx, branch.ID)
	})
	if err != nil {
		return classify(err, "failed to delete branch")
	}
	return nil
}
