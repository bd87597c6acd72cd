package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/squares-backend/internal/apperror"
	"github.com/rocketscienceinc/squares-backend/internal/entity"
)

type UserUseCase interface {
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
}

type userService interface {
	SaveUser(ctx context.Context, user *entity.User) error
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
}

type userUseCase struct {
	userService userService
}

func NewUserUseCase(userService userService) UserUseCase {
	return &userUseCase{
		userService: userService,
	}
}

// Update - registers a participant on first login; later logins are reads.
func (that *userUseCase) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	found, err := that.userService.GetUserByEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			if err = that.userService.SaveUser(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to save user into storage: %w", err)
			}
			return user, nil
		}
		return nil, fmt.Errorf("failed to find user in storage: %w", err)
	}

	return found, nil
}
