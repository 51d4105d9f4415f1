package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MemberRef identifies a person by profile and user.
type MemberRef struct {
	ProfileID int64  `json:"profileID"`
	UserID    int64  `json:"userID"`
	FullName  string `json:"fullName"`
}

// Group is a community the user can belong to.
type Group struct {
	GroupID          int64           `json:"groupID"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	IsActive         bool            `json:"isActive"`
	RequiresApproval bool            `json:"requiresApproval"`
	IsAdmin          bool            `json:"isAdmin"` // Relative to the requesting user
	Balance          decimal.Decimal `json:"balance"`
	TotalMembers     int             `json:"totalMembers"`
	CreatedBy        int64           `json:"createdBy"`
	AuditFields
}

// MembershipStatus is the lifecycle state of a group membership.
type MembershipStatus string

const (
	MembershipPending  MembershipStatus = "pending"
	MembershipActive   MembershipStatus = "active"
	MembershipInactive MembershipStatus = "inactive"
	MembershipBanned   MembershipStatus = "banned"
)

// Membership links a member to a group.
type Membership struct {
	MembershipID int64            `json:"membershipID"`
	GroupID      int64            `json:"groupID"`
	Member       MemberRef        `json:"member"`
	IsAdmin      bool             `json:"isAdmin"`
	Status       MembershipStatus `json:"status"`
	IsDeceased   bool             `json:"isDeceased"`
	DateJoined   time.Time        `json:"dateJoined"`
}

// Post is an entry in a group feed.
type Post struct {
	PostID       int64     `json:"postID"`
	GroupID      int64     `json:"groupID"`
	Author       MemberRef `json:"author"`
	Content      string    `json:"content"`
	CommentCount int       `json:"commentCount"`
	LikesCount   int       `json:"likesCount"`
	CreatedAt    time.Time `json:"createdAt"`
}
