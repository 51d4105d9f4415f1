package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type profileHandler struct {
	profileService portssvc.ProfileSvcFacade
}

func registerProfileRoutes(rg *gin.RouterGroup, profileService portssvc.ProfileSvcFacade) {
	h := &profileHandler{profileService: profileService}

	profiles := rg.Group("/profiles")
	{
		profiles.GET("/me/", h.getMyProfile)
		profiles.PATCH("/:id/", h.updateProfile)
	}
}

func (h *profileHandler) getMyProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(*profile))
}

// updateProfile applies a partial update. Only the owner may edit a profile.
func (h *profileHandler) updateProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	profileID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), profileID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(*profile))
}
