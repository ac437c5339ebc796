package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/bookstore/internal/service"
	"github.com/Skotchmaster/bookstore/internal/transport"
	"github.com/Skotchmaster/bookstore/pkg/logging"
	"github.com/labstack/echo/v4"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "register", "Invalid request body", err)
	}

	res, err := h.Svc.Register(ctx, req)
	if err != nil {
		return fromService(l, "register", err, "Error during registration")
	}

	l.Info("register_success", "user_id", res.User.ID)
	return c.JSON(http.StatusCreated, envelope(map[string]any{
		"message": "User registered successfully",
		"user":    res.User,
		"token":   res.Token,
	}))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "login", "Invalid request body", err)
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return fromService(l, "login", err, "Error during login")
	}

	l.Info("login_success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, envelope(map[string]any{
		"message": "Login successful",
		"user":    res.User,
		"token":   res.Token,
	}))
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.me")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.Me(ctx, userID)
	if err != nil {
		return fromService(l, "me", err, "Error retrieving user data")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"user": user}))
}
