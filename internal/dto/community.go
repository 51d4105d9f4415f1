package dto

import (
	"time"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GroupResponse is the wire shape of a group.
type GroupResponse struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	IsActive         bool            `json:"is_active"`
	Description      string          `json:"description"`
	TotalMembers     int             `json:"total_members"`
	RequiresApproval bool            `json:"requires_approval"`
	CreatedAt        time.Time       `json:"created_at"`
	IsAdmin          bool            `json:"is_admin"`
	Balance          decimal.Decimal `json:"balance"`
}

// MembershipResponse is the wire shape of a group membership.
type MembershipResponse struct {
	ID           int64           `json:"id"`
	Member       int64           `json:"member"`
	MemberDetail ProfileResponse `json:"member_detail"`
	Group        int64           `json:"group"`
	IsAdmin      bool            `json:"is_admin"`
	Status       string          `json:"status"`
	IsDeceased   bool            `json:"is_deceased"`
	DateJoined   time.Time       `json:"date_joined"`
}

// PostResponse is the wire shape of a post.
type PostResponse struct {
	ID           int64           `json:"id"`
	Author       int64           `json:"author"`
	AuthorDetail ProfileResponse `json:"author_detail"`
	Group        int64           `json:"group"`
	Content      string          `json:"content"`
	CreatedAt    time.Time       `json:"created_at"`
	CommentCount int             `json:"comment_count"`
	LikesCount   int             `json:"likes_count"`
}

// ToGroupResponse converts a domain.Group to its wire shape.
func ToGroupResponse(g domain.Group) GroupResponse {
	return GroupResponse{
		ID:               g.GroupID,
		Name:             g.Name,
		IsActive:         g.IsActive,
		Description:      g.Description,
		TotalMembers:     g.TotalMembers,
		RequiresApproval: g.RequiresApproval,
		CreatedAt:        g.CreatedAt,
		IsAdmin:          g.IsAdmin,
		Balance:          g.Balance,
	}
}

// ToListGroupResponse converts a slice of domain.Group.
func ToListGroupResponse(groups []domain.Group) []GroupResponse {
	res := make([]GroupResponse, len(groups))
	for i, g := range groups {
		res[i] = ToGroupResponse(g)
	}
	return res
}

// ToDomain converts the wire shape back into a domain.Group.
func (r GroupResponse) ToDomain() domain.Group {
	g := domain.Group{
		GroupID:          r.ID,
		Name:             r.Name,
		Description:      r.Description,
		IsActive:         r.IsActive,
		RequiresApproval: r.RequiresApproval,
		IsAdmin:          r.IsAdmin,
		Balance:          r.Balance,
		TotalMembers:     r.TotalMembers,
	}
	g.CreatedAt = r.CreatedAt
	return g
}

// ToMembershipResponse converts a domain.Membership.
func ToMembershipResponse(m domain.Membership) MembershipResponse {
	return MembershipResponse{
		ID:           m.MembershipID,
		Member:       m.Member.ProfileID,
		MemberDetail: profileFromRef(m.Member),
		Group:        m.GroupID,
		IsAdmin:      m.IsAdmin,
		Status:       string(m.Status),
		IsDeceased:   m.IsDeceased,
		DateJoined:   m.DateJoined,
	}
}

// ToDomain converts the wire shape back into a domain.Membership.
func (r MembershipResponse) ToDomain() domain.Membership {
	return domain.Membership{
		MembershipID: r.ID,
		GroupID:      r.Group,
		Member:       r.MemberDetail.MemberRef(),
		IsAdmin:      r.IsAdmin,
		Status:       domain.MembershipStatus(r.Status),
		IsDeceased:   r.IsDeceased,
		DateJoined:   r.DateJoined,
	}
}

// ToListMembershipResponse converts a slice of domain.Membership.
func ToListMembershipResponse(memberships []domain.Membership) []MembershipResponse {
	res := make([]MembershipResponse, len(memberships))
	for i, m := range memberships {
		res[i] = ToMembershipResponse(m)
	}
	return res
}

// ToPostResponse converts a domain.Post.
func ToPostResponse(p domain.Post) PostResponse {
	return PostResponse{
		ID:           p.PostID,
		Author:       p.Author.ProfileID,
		AuthorDetail: profileFromRef(p.Author),
		Group:        p.GroupID,
		Content:      p.Content,
		CreatedAt:    p.CreatedAt,
		CommentCount: p.CommentCount,
		LikesCount:   p.LikesCount,
	}
}

// ToDomain converts the wire shape back into a domain.Post.
func (r PostResponse) ToDomain() domain.Post {
	return domain.Post{
		PostID:       r.ID,
		GroupID:      r.Group,
		Author:       r.AuthorDetail.MemberRef(),
		Content:      r.Content,
		CommentCount: r.CommentCount,
		LikesCount:   r.LikesCount,
		CreatedAt:    r.CreatedAt,
	}
}
