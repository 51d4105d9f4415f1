package dto

import (
	"time"

	"github.com/SscSPs/komunity_app/internal/core/domain"
)

// ProfileResponse is the wire shape of a profile.
type ProfileResponse struct {
	ID             int64     `json:"id"`
	User           int64     `json:"user"`
	FirstName      string    `json:"first_name"`
	Surname        string    `json:"surname"`
	FullName       string    `json:"full_name"`
	Phone          string    `json:"phone"`
	Bio            string    `json:"bio"`
	ProfilePicture *string   `json:"profile_picture"`
	IsComplete     bool      `json:"is_complete"`
	IsDeceased     bool      `json:"is_deceased"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UpdateProfileRequest is the body of PATCH profiles/{id}/.
// Pointers distinguish omitted fields from empty ones.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,max=100"`
	Surname   *string `json:"surname,omitempty" binding:"omitempty,max=100"`
	Phone     *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Bio       *string `json:"bio,omitempty" binding:"omitempty,max=500"`
}

// ProfileForm is what the user enters on the profile setup screen.
type ProfileForm struct {
	FirstName string `validate:"required,max=100"`
	Surname   string `validate:"required,max=100"`
	Phone     string `validate:"omitempty,max=20"`
	Bio       string `validate:"omitempty,max=500"`
}

// ToUpdateRequest sends every field of the form.
func (f ProfileForm) ToUpdateRequest() UpdateProfileRequest {
	return UpdateProfileRequest{
		FirstName: &f.FirstName,
		Surname:   &f.Surname,
		Phone:     &f.Phone,
		Bio:       &f.Bio,
	}
}

// ToProfileResponse converts a domain.Profile to its wire shape.
func ToProfileResponse(p domain.Profile) ProfileResponse {
	var picture *string
	if p.ProfilePicture != "" {
		picture = &p.ProfilePicture
	}
	return ProfileResponse{
		ID:             p.ProfileID,
		User:           p.UserID,
		FirstName:      p.FirstName,
		Surname:        p.Surname,
		FullName:       p.FullName(),
		Phone:          p.Phone,
		Bio:            p.Bio,
		ProfilePicture: picture,
		IsComplete:     p.HasRequiredFields(),
		IsDeceased:     p.IsDeceased,
		UpdatedAt:      p.LastUpdatedAt,
	}
}

// ToDomain converts the wire shape back into a domain.Profile.
func (r ProfileResponse) ToDomain() domain.Profile {
	p := domain.Profile{
		ProfileID:  r.ID,
		UserID:     r.User,
		FirstName:  r.FirstName,
		Surname:    r.Surname,
		Phone:      r.Phone,
		Bio:        r.Bio,
		IsDeceased: r.IsDeceased,
		Complete:   r.IsComplete,
	}
	if r.ProfilePicture != nil {
		p.ProfilePicture = *r.ProfilePicture
	}
	p.LastUpdatedAt = r.UpdatedAt
	return p
}

// MemberRef reduces the profile to a reference.
func (r ProfileResponse) MemberRef() domain.MemberRef {
	name := r.FullName
	if name == "" {
		name = r.ToDomain().FullName()
	}
	return domain.MemberRef{ProfileID: r.ID, UserID: r.User, FullName: name}
}

func profileFromRef(ref domain.MemberRef) ProfileResponse {
	return ProfileResponse{ID: ref.ProfileID, User: ref.UserID, FullName: ref.FullName}
}
