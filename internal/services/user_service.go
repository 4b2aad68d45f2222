package services

import (
	"context"
	"errors"
	"local_delivery/internal/models"
	"local_delivery/internal/repository"
	"strings"
)

type UserService interface {
	// Provision returns the user with the email, creating it with the given
	// role on first sight. The role of an existing user never changes.
	Provision(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	Me(ctx context.Context, actor *models.Actor) (*models.User, error)
	UpdateProfile(ctx context.Context, actor *models.Actor, req ProfileUpdateRequest) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Provision(ctx context.Context, user *models.User) (*models.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" {
		return nil, validation("Email is required")
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if !user.Role.Valid() {
		return nil, validation("Invalid role")
	}

	existing, err := s.userRepo.GetByEmail(ctx, user.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, storage("failed to look up user", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// provisioned concurrently
			existing, err := s.userRepo.GetByEmail(ctx, user.Email)
			if err != nil {
				return nil, storage("failed to look up user", err)
			}
			return existing, nil
		}
		return nil, storage("failed to create user", err)
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "User not found", "failed to get user")
	}
	return user, nil
}

func (s *userService) Me(ctx context.Context, actor *models.Actor) (*models.User, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	return s.GetUserByID(ctx, actor.ID)
}

// UpdateProfile changes contact and location fields only; empty fields are left as they are.
func (s *userService) UpdateProfile(ctx context.Context, actor *models.Actor, req ProfileUpdateRequest) (*models.User, error) {
	user, err := s.Me(ctx, actor)
	if err != nil {
		return nil, err
	}

	if phone := strings.TrimSpace(req.Phone); phone != "" {
		user.Phone = phone
	}
	if address := strings.TrimSpace(req.Address); address != "" {
		user.Address = address
	}
	if req.Location != nil {
		if req.Location.Lat == nil || req.Location.Lng == nil {
			return nil, validation("Location must have lat and lng")
		}
		user.Location = req.Location.toModel()
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, storage("failed to update profile", err)
	}
	return user, nil
}
