package mapping

import (
	"database/sql"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/SscSPs/komunity_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		DateJoined:   d.DateJoined,
		DeletedAt:    d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		DateJoined:   m.DateJoined,
		DeletedAt:    m.DeletedAt,
	}
}

// ToModelProfile converts a domain Profile to a model Profile
func ToModelProfile(d domain.Profile) models.Profile {
	return models.Profile{
		ProfileID:      d.ProfileID,
		UserID:         d.UserID,
		FirstName:      d.FirstName,
		Surname:        d.Surname,
		Phone:          d.Phone,
		Bio:            d.Bio,
		ProfilePicture: sql.NullString{String: d.ProfilePicture, Valid: d.ProfilePicture != ""},
		IsDeceased:     d.IsDeceased,
		IsComplete:     d.Complete,
		AuditFields:    auditFieldsToModel(d.AuditFields),
	}
}

// ToDomainProfile converts a model Profile to a domain Profile
func ToDomainProfile(m models.Profile) domain.Profile {
	return domain.Profile{
		ProfileID:      m.ProfileID,
		UserID:         m.UserID,
		FirstName:      m.FirstName,
		Surname:        m.Surname,
		Phone:          m.Phone,
		Bio:            m.Bio,
		ProfilePicture: m.ProfilePicture.String,
		IsDeceased:     m.IsDeceased,
		Complete:       m.IsComplete,
		AuditFields:    auditFieldsToDomain(m.AuditFields),
	}
}

func auditFieldsToModel(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{CreatedAt: d.CreatedAt, LastUpdatedAt: d.LastUpdatedAt}
}

func auditFieldsToDomain(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{CreatedAt: m.CreatedAt, LastUpdatedAt: m.LastUpdatedAt}
}
