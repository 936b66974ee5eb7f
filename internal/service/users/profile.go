package profileService

import (
	"context"

	"github.com/lribeiro/taskboard/internal/logger"
	"github.com/lribeiro/taskboard/internal/models"
	"github.com/lribeiro/taskboard/internal/store"
	"github.com/lribeiro/taskboard/pkg/utils"
)

// Service exposes the authenticated user's own profile.
type Service struct {
	users store.UserStore
	log   *logger.Logger
}

func NewService(users store.UserStore, log *logger.Logger) *Service {
	return &Service{users: users, log: log}
}

func (s *Service) Get(ctx context.Context, userID int64) (models.User, error) {
	return s.users.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	ContactNumber *string `json:"contact_number"`
	Password      *string `json:"password"`
}

// Update changes the caller's name, contact number or password. A new
// password is re-hashed before it is stored.
func (s *Service) Update(ctx context.Context, userID int64, in UpdateProfileInput) (models.User, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return models.User{}, err
	}

	patch := store.UserPatch{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		ContactNumber: in.ContactNumber,
	}
	if in.Password != nil {
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return models.User{}, err
		}
		patch.PasswordHash = &hash
	}

	if err := s.users.Update(ctx, userID, patch); err != nil {
		return models.User{}, err
	}

	s.log.WithContext(ctx).Info("Profile updated", "user_id", userID)
	return s.users.GetByID(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID int64) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.WithContext(ctx).Audit("Account deleted", "user_id", userID)
	return nil
}
