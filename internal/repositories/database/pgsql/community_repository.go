package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/domain"
	portsrepo "github.com/SscSPs/komunity_app/internal/core/ports/repositories"
	"github.com/SscSPs/komunity_app/internal/models"
	"github.com/SscSPs/komunity_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCommunityRepository struct {
	BaseRepository
}

func newPgxCommunityRepository(pool *pgxpool.Pool) portsrepo.CommunityRepositoryFacade {
	return &PgxCommunityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CommunityRepositoryFacade = (*PgxCommunityRepository)(nil)

// groupSelect computes member count and the admin flag of the viewer ($1).
const groupSelect = `
	SELECT g.group_id, g.name, g.description, g.is_active, g.requires_approval, g.balance, g.created_by,
		(SELECT COUNT(*) FROM group_memberships c WHERE c.group_id = g.group_id AND c.status = 'active') AS total_members,
		COALESCE((SELECT v.is_admin FROM group_memberships v WHERE v.group_id = g.group_id AND v.user_id = $1), FALSE) AS is_admin,
		g.created_at, g.last_updated_at
	FROM groups g
`

func scanGroup(row pgx.Row) (models.Group, error) {
	var m models.Group
	err := row.Scan(
		&m.GroupID,
		&m.Name,
		&m.Description,
		&m.IsActive,
		&m.RequiresApproval,
		&m.Balance,
		&m.CreatedBy,
		&m.TotalMembers,
		&m.IsAdmin,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxCommunityRepository) FindGroupByID(ctx context.Context, groupID, viewerUserID int64) (*domain.Group, error) {
	query := groupSelect + ` WHERE g.group_id = $2;`
	modelGroup, err := scanGroup(r.Pool.QueryRow(ctx, query, viewerUserID, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find group %d: %w", groupID, err)
	}
	domainGroup := mapping.ToDomainGroup(modelGroup)
	return &domainGroup, nil
}

func (r *PgxCommunityRepository) FindGroupsByMember(ctx context.Context, userID int64) ([]domain.Group, error) {
	query := groupSelect + `
		JOIN group_memberships m ON m.group_id = g.group_id
		WHERE m.user_id = $1 AND m.status = 'active'
		ORDER BY g.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups of user %d: %w", userID, err)
	}
	defer rows.Close()

	groups := []domain.Group{}
	for rows.Next() {
		modelGroup, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		groups = append(groups, mapping.ToDomainGroup(modelGroup))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", err)
	}
	return groups, nil
}

const membershipSelect = `
	SELECT m.membership_id, m.group_id, m.user_id, p.profile_id, p.first_name, p.surname,
		m.is_admin, m.status, p.is_deceased, m.date_joined
	FROM group_memberships m
	JOIN profiles p ON p.user_id = m.user_id
`

func scanMembership(row pgx.Row) (models.Membership, error) {
	var m models.Membership
	err := row.Scan(
		&m.MembershipID,
		&m.GroupID,
		&m.UserID,
		&m.ProfileID,
		&m.FirstName,
		&m.Surname,
		&m.IsAdmin,
		&m.Status,
		&m.IsDeceased,
		&m.DateJoined,
	)
	return m, err
}

func (r *PgxCommunityRepository) FindMemberships(ctx context.Context, groupID int64) ([]domain.Membership, error) {
	query := membershipSelect + ` WHERE m.group_id = $1 ORDER BY p.first_name, p.surname;`
	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members of group %d: %w", groupID, err)
	}
	defer rows.Close()

	memberships := []domain.Membership{}
	for rows.Next() {
		modelMembership, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		memberships = append(memberships, mapping.ToDomainMembership(modelMembership))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", err)
	}
	return memberships, nil
}

func (r *PgxCommunityRepository) FindMembership(ctx context.Context, groupID, userID int64) (*domain.Membership, error) {
	query := membershipSelect + ` WHERE m.group_id = $1 AND m.user_id = $2;`
	modelMembership, err := scanMembership(r.Pool.QueryRow(ctx, query, groupID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership of user %d in group %d: %w", userID, groupID, err)
	}
	domainMembership := mapping.ToDomainMembership(modelMembership)
	return &domainMembership, nil
}

func (r *PgxCommunityRepository) FindPostByID(ctx context.Context, postID int64) (*domain.Post, error) {
	query := `
		SELECT po.post_id, po.group_id, po.author_user_id, p.profile_id, p.first_name, p.surname,
			po.content, po.comment_count, po.likes_count, po.created_at
		FROM posts po
		JOIN profiles p ON p.user_id = po.author_user_id
		WHERE po.post_id = $1;
	`
	var m models.Post
	err := r.Pool.QueryRow(ctx, query, postID).Scan(
		&m.PostID,
		&m.GroupID,
		&m.AuthorUserID,
		&m.AuthorProfileID,
		&m.AuthorFirstName,
		&m.AuthorSurname,
		&m.Content,
		&m.CommentCount,
		&m.LikesCount,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find post %d: %w", postID, err)
	}
	domainPost := mapping.ToDomainPost(m)
	return &domainPost, nil
}
