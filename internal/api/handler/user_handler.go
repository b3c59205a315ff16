package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stargazers/stargazing-api/internal/core/domain"
	"github.com/stargazers/stargazing-api/internal/core/ports"
)

// UserHandler serves account administration and self-service updates.
type UserHandler struct {
	users   ports.UserService
	auth    ports.AuthService
	cookies *SessionCookies
}

func NewUserHandler(users ports.UserService, auth ports.AuthService, cookies *SessionCookies) *UserHandler {
	return &UserHandler{users: users, auth: auth, cookies: cookies}
}

// List handles GET /users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /users/:email.
//
// @Summary      Get a user by email
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        email  path      string  true  "Email"
// @Success      200    {object}  domain.User
// @Failure      404    {object}  errorResponse
// @Router       /users/{email} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create handles POST /users. Admins may assign any role.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createUserRequest  true  "User"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.Create(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Update handles PUT /users/:email. A caller updating their own record gets a
// fresh session cookie so the token follows a changed email or username.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        email  path      string             true  "Email"
// @Param        body   body      updateUserRequest  true  "Fields to change"
// @Success      200    {object}  domain.User
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /users/{email} [put]
func (h *UserHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	email := c.Param("email")
	if !identity.IsAdmin() && identity.Email != email {
		return domain.ErrForbidden
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.Update(c.Request().Context(), identity, email, ports.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	if identity.Email == email {
		token, err := h.auth.Refresh(user)
		if err != nil {
			return err
		}
		h.cookies.Set(c, token)
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/:email.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        email  path      string  true  "Email"
// @Success      200    {object}  deletedUserResponse
// @Failure      404    {object}  errorResponse
// @Router       /users/{email} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	user, err := h.users.Delete(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedUserResponse{Message: "User deleted successfully", User: user})
}
