package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ramez23/Movies-System/internal/service"
)

// UserHandler exposes the authenticated user's own account.
type UserHandler struct {
	Identity *service.IdentityService
}

func NewUserHandler(identity *service.IdentityService) *UserHandler {
	return &UserHandler{Identity: identity}
}

type updateUserReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Me returns the caller's account.
func (h *UserHandler) Me(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Identity.GetUser(ctx, currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// UpdateMe applies a partial update to the caller's account. Blank
// fields keep their stored values.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Identity.UpdateUser(ctx, currentUserID(c), req.Name, req.Email, req.Phone)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// DeleteMe removes the caller's account along with its sessions and
// reservations.
func (h *UserHandler) DeleteMe(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Identity.DeleteUser(ctx, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Get returns any account by id. Admin only.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Identity.GetUser(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// Update applies a partial update to any account by id. Admin only.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Identity.UpdateUser(ctx, id, req.Name, req.Email, req.Phone)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// Delete removes any account by id. Admin only.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Identity.DeleteUser(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
