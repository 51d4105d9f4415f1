package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type communityHandler struct {
	communityService portssvc.CommunitySvcFacade
}

func registerCommunityRoutes(rg *gin.RouterGroup, communityService portssvc.CommunitySvcFacade) {
	h := &communityHandler{communityService: communityService}

	groups := rg.Group("/groups")
	{
		groups.GET("/mine/", h.listMyGroups)
		groups.GET("/:id/", h.getGroup)
		groups.GET("/:id/members/", h.listMembers)
	}
	rg.GET("/posts/:id/", h.getPost)
}

func (h *communityHandler) listMyGroups(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	groups, err := h.communityService.ListMyGroups(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list groups")
		return
	}
	c.JSON(http.StatusOK, dto.ToListGroupResponse(groups))
}

func (h *communityHandler) getGroup(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	groupID, ok := idParam(c, "id")
	if !ok {
		return
	}

	group, err := h.communityService.GetGroup(c.Request.Context(), groupID, userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve group")
		return
	}
	c.JSON(http.StatusOK, dto.ToGroupResponse(*group))
}

func (h *communityHandler) listMembers(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	groupID, ok := idParam(c, "id")
	if !ok {
		return
	}

	members, err := h.communityService.ListGroupMembers(c.Request.Context(), groupID, userID)
	if err != nil {
		respondError(c, err, "Failed to list members")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMembershipResponse(members))
}

func (h *communityHandler) getPost(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	postID, ok := idParam(c, "id")
	if !ok {
		return
	}

	post, err := h.communityService.GetPost(c.Request.Context(), postID, userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve post")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(*post))
}
