package mapping

import (
	"strings"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/SscSPs/komunity_app/internal/models"
)

func fullName(first, surname string) string {
	return strings.TrimSpace(first + " " + surname)
}

// ToDomainGroup converts a model Group to a domain Group
func ToDomainGroup(m models.Group) domain.Group {
	return domain.Group{
		GroupID:          m.GroupID,
		Name:             m.Name,
		Description:      m.Description,
		IsActive:         m.IsActive,
		RequiresApproval: m.RequiresApproval,
		IsAdmin:          m.IsAdmin,
		Balance:          m.Balance,
		TotalMembers:     m.TotalMembers,
		CreatedBy:        m.CreatedBy,
		AuditFields:      auditFieldsToDomain(m.AuditFields),
	}
}

// ToDomainMembership converts a model Membership to a domain Membership
func ToDomainMembership(m models.Membership) domain.Membership {
	return domain.Membership{
		MembershipID: m.MembershipID,
		GroupID:      m.GroupID,
		Member: domain.MemberRef{
			ProfileID: m.ProfileID,
			UserID:    m.UserID,
			FullName:  fullName(m.FirstName, m.Surname),
		},
		IsAdmin:    m.IsAdmin,
		Status:     domain.MembershipStatus(m.Status),
		IsDeceased: m.IsDeceased,
		DateJoined: m.DateJoined,
	}
}

// ToDomainPost converts a model Post to a domain Post
func ToDomainPost(m models.Post) domain.Post {
	return domain.Post{
		PostID:  m.PostID,
		GroupID: m.GroupID,
		Author: domain.MemberRef{
			ProfileID: m.AuthorProfileID,
			UserID:    m.AuthorUserID,
			FullName:  fullName(m.AuthorFirstName, m.AuthorSurname),
		},
		Content:      m.Content,
		CommentCount: m.CommentCount,
		LikesCount:   m.LikesCount,
		CreatedAt:    m.CreatedAt,
	}
}
