package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/domain"
	portsrepo "github.com/SscSPs/komunity_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/SscSPs/komunity_app/internal/dto"
)

type profileService struct {
	BaseService
	profileRepo portsrepo.ProfileRepositoryFacade
}

func NewProfileService(profileRepo portsrepo.ProfileRepositoryFacade) portssvc.ProfileSvcFacade {
	return &profileService{profileRepo: profileRepo}
}

var _ portssvc.ProfileSvcFacade = (*profileService)(nil)

func (s *profileService) GetMyProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile of user %d: %w", userID, err)
	}
	profile.Complete = profile.HasRequiredFields()
	return profile, nil
}

// UpdateProfile applies the fields present in req. Only the owner may edit a profile.
func (s *profileService) UpdateProfile(ctx context.Context, profileID int64, req dto.UpdateProfileRequest, requestingUserID int64) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindProfileByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %d: %w", profileID, err)
	}
	if profile.UserID != requestingUserID {
		s.LogWarn(ctx, "Attempt to edit another user's profile",
			slog.Int64("profile_id", profileID), slog.Int64("requesting_user_id", requestingUserID))
		return nil, apperrors.WithDetail(apperrors.ErrForbidden, "You do not have permission to perform this action.")
	}

	if req.FirstName != nil {
		profile.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.Surname != nil {
		profile.Surname = strings.TrimSpace(*req.Surname)
	}
	if req.Phone != nil {
		profile.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Bio != nil {
		profile.Bio = strings.TrimSpace(*req.Bio)
	}
	profile.Complete = profile.HasRequiredFields()
	profile.LastUpdatedAt = time.Now().UTC()

	if err := s.profileRepo.UpdateProfile(ctx, *profile); err != nil {
		s.LogError(ctx, err, "Failed to update profile", slog.Int64("profile_id", profileID))
		return nil, fmt.Errorf("failed to update profile %d: %w", profileID, err)
	}
	return profile, nil
}
