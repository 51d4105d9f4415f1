package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/domain"
	portsrepo "github.com/SscSPs/komunity_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
)

type communityService struct {
	BaseService
	communityRepo portsrepo.CommunityRepositoryFacade
}

func NewCommunityService(communityRepo portsrepo.CommunityRepositoryFacade) portssvc.CommunitySvcFacade {
	return &communityService{communityRepo: communityRepo}
}

var _ portssvc.CommunitySvcFacade = (*communityService)(nil)

// requireActiveMember fails with ErrForbidden unless userID is an active member of groupID.
func (s *communityService) requireActiveMember(ctx context.Context, groupID, userID int64) error {
	membership, err := s.communityRepo.FindMembership(ctx, groupID, userID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check membership in group %d: %w", groupID, err)
	}
	if membership == nil || membership.Status != domain.MembershipActive {
		return apperrors.WithDetail(apperrors.ErrForbidden, "You are not a member of this group.")
	}
	return nil
}

// GetGroup is visible to any signed-in user so groups can be discovered and shared.
func (s *communityService) GetGroup(ctx context.Context, groupID, requestingUserID int64) (*domain.Group, error) {
	group, err := s.communityRepo.FindGroupByID(ctx, groupID, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group %d: %w", groupID, err)
	}
	return group, nil
}

func (s *communityService) ListMyGroups(ctx context.Context, userID int64) ([]domain.Group, error) {
	groups, err := s.communityRepo.FindGroupsByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups of user %d: %w", userID, err)
	}
	return groups, nil
}

func (s *communityService) ListGroupMembers(ctx context.Context, groupID, requestingUserID int64) ([]domain.Membership, error) {
	if err := s.requireActiveMember(ctx, groupID, requestingUserID); err != nil {
		return nil, err
	}
	members, err := s.communityRepo.FindMemberships(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of group %d: %w", groupID, err)
	}
	return members, nil
}

func (s *communityService) GetPost(ctx context.Context, postID, requestingUserID int64) (*domain.Post, error) {
	post, err := s.communityRepo.FindPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", postID, err)
	}
	if err := s.requireActiveMember(ctx, post.GroupID, requestingUserID); err != nil {
		return nil, err
	}
	return post, nil
}
