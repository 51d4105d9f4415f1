package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Group is a row of the groups table.
type Group struct {
	GroupID          int64           `db:"group_id"`
	Name             string          `db:"name"`
	Description      string          `db:"description"`
	IsActive         bool            `db:"is_active"`
	RequiresApproval bool            `db:"requires_approval"`
	Balance          decimal.Decimal `db:"balance"`
	CreatedBy        int64           `db:"created_by"`
	TotalMembers     int             `db:"total_members"` // Computed
	IsAdmin          bool            `db:"is_admin"`      // Computed for the viewer
	AuditFields
}

// Membership is a row of group_memberships joined with the member's profile.
type Membership struct {
	MembershipID int64     `db:"membership_id"`
	GroupID      int64     `db:"group_id"`
	UserID       int64     `db:"user_id"`
	ProfileID    int64     `db:"profile_id"`
	FirstName    string    `db:"first_name"`
	Surname      string    `db:"surname"`
	IsAdmin      bool      `db:"is_admin"`
	Status       string    `db:"status"`
	IsDeceased   bool      `db:"is_deceased"`
	DateJoined   time.Time `db:"date_joined"`
}

// Post is a row of the posts table joined with the author's profile.
type Post struct {
	PostID          int64     `db:"post_id"`
	GroupID         int64     `db:"group_id"`
	AuthorUserID    int64     `db:"author_user_id"`
	AuthorProfileID int64     `db:"author_profile_id"`
	AuthorFirstName string    `db:"author_first_name"`
	AuthorSurname   string    `db:"author_surname"`
	Content         string    `db:"content"`
	CommentCount    int       `db:"comment_count"`
	LikesCount      int       `db:"likes_count"`
	CreatedAt       time.Time `db:"created_at"`
}
