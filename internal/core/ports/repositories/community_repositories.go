package repositories

import (
	"context"

	"github.com/SscSPs/komunity_app/internal/core/domain"
)

// GroupReader defines read operations for groups and memberships
type GroupReader interface {
	// FindGroupByID retrieves a group. IsAdmin is set relative to viewerUserID.
	FindGroupByID(ctx context.Context, groupID, viewerUserID int64) (*domain.Group, error)

	// FindGroupsByMember lists the groups userID is an active member of.
	FindGroupsByMember(ctx context.Context, userID int64) ([]domain.Group, error)

	// FindMemberships lists the memberships of a group.
	FindMemberships(ctx context.Context, groupID int64) ([]domain.Membership, error)

	// FindMembership retrieves the membership of userID in groupID.
	FindMembership(ctx context.Context, groupID, userID int64) (*domain.Membership, error)
}

// PostReader defines read operations for posts
type PostReader interface {
	FindPostByID(ctx context.Context, postID int64) (*domain.Post, error)
}

// CommunityRepositoryFacade combines group and post access.
type CommunityRepositoryFacade interface {
	GroupReader
	PostReader
}
