package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/littlelemon/restaurant-api/internal/core/ports"
)

// GroupHandler manages the Manager and Delivery Crew groups.
type GroupHandler struct {
	service ports.GroupService
}

func NewGroupHandler(service ports.GroupService) *GroupHandler {
	return &GroupHandler{service: service}
}

type groupMemberRequest struct {
	Username string `json:"username" form:"username"`
}

// ListMembers handles GET /api/groups/:group/users.
//
// @Summary      List group members
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        group  path      string  true  "manager or delivery-crew"
// @Success      200    {array}   userResponse
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /api/groups/{group}/users [get]
func (h *GroupHandler) ListMembers(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListMembers(c.Request().Context(), actor, c.Param("group"))
	if err != nil {
		return err
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, resp)
}

// AddMember handles POST /api/groups/:group/users.
//
// @Summary      Add a user to a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        group  path      string              true  "manager or delivery-crew"
// @Param        body   body      groupMemberRequest  true  "User to add"
// @Success      201    {object}  messageResponse
// @Failure      400    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /api/groups/{group}/users [post]
func (h *GroupHandler) AddMember(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req groupMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.AddMember(c.Request().Context(), actor, c.Param("group"), req.Username); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "user added to group"})
}

// RemoveMember handles DELETE /api/groups/:group/users/:username.
//
// @Summary      Remove a user from a group
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        group     path      string  true  "manager or delivery-crew"
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  messageResponse
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/groups/{group}/users/{username} [delete]
func (h *GroupHandler) RemoveMember(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.RemoveMember(c.Request().Context(), actor, c.Param("group"), c.Param("username")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "user removed from group"})
}
