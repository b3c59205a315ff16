package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stargazers/stargazing-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	cookies     *SessionCookies
}

func NewAuthHandler(authService ports.AuthService, cookies *SessionCookies) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// Signup creates a user account and starts a session.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Router       /users/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sess, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	h.cookies.Set(c, sess.Token)
	return c.JSON(http.StatusCreated, sessionResponse{Message: "User created successfully", User: sess.User})
}

// Login authenticates with a username or email and starts a session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /users/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sess, err := h.authService.Login(c.Request().Context(), req.identifier(), req.Password)
	if err != nil {
		return err
	}

	h.cookies.Set(c, sess.Token)
	return c.JSON(http.StatusOK, sessionResponse{Message: "Login successful", User: sess.User})
}

// Logout clears the session cookie.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /users/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookies.Clear(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// Me returns the caller's own record.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	user, err := h.authService.Me(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
