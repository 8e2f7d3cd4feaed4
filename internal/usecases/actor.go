package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"collex.backend/internal/domain/entities"
	domainerrors "collex.backend/internal/domain/errors"
	"collex.backend/internal/domain/repositories"
)

// requireActor loads the acting user and enforces role and activity
// gates before any mutation runs.
func requireActor(ctx context.Context, userRepo repositories.UserRepository, actorID uuid.UUID, role entities.UserRole) (*entities.User, error) {
	actor, err := userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}
	if actor.Role != role {
		return nil, domainerrors.Forbidden("action requires role " + string(role))
	}
	if !actor.IsActive {
		return nil, domainerrors.Forbidden("account is deactivated")
	}
	return actor, nil
}
