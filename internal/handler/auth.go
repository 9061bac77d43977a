package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/iliyamo/hotel-reservation/internal/utils"
)

// AuthHandler bundles dependencies for staff authentication endpoints.
// Accounts lock after a configured number of consecutive failed
// logins and stay locked until an administrator unblocks them.
type AuthHandler struct {
	Cfg   config.Config
	Staff *repository.StaffRepo
}

func NewAuthHandler(cfg config.Config, s *repository.StaffRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Staff: s}
}

// ----- DTOs -----

type registerStaffReq struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	Login      string  `json:"login"`
	Password   string  `json:"password"`
	PositionID *uint64 `json:"position_id"`
}

type loginReq struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type changePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type staffPart struct {
	ID    uint64 `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Register creates a staff account. Intended for administrative use.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerStaffReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "login/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := &model.Staff{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Login:      req.Login,
		PositionID: req.PositionID,
	}
	if err := h.Staff.Create(ctx, s, req.Password, h.Cfg.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrLoginExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "login already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create staff failed"})
	}
	return c.JSON(http.StatusCreated, staffPart{
		ID:    s.ID,
		Login: s.Login,
		Name:  strings.TrimSpace(s.FirstName + " " + s.LastName),
	})
}

// Login verifies credentials and returns an access token. Each wrong
// password increments the account's failure counter; reaching the
// configured limit blocks the account. A successful login resets the
// counter.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "login/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Staff.GetByLogin(ctx, req.Login)
	if err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return dbError(c)
	}
	if s.Blocked {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account is blocked"})
	}
	if !utils.VerifyPassword(s.PasswordHash, req.Password) {
		blocked, err := h.Staff.RecordFailure(ctx, s.ID, int32(h.Cfg.LoginAttempts))
		if err != nil {
			return dbError(c)
		}
		if blocked {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "account is blocked"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if s.FailedAttempts > 0 {
		if err := h.Staff.ResetFailures(ctx, s.ID); err != nil {
			return dbError(c)
		}
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, s.ID, s.Login, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"staff": staffPart{
			ID:    s.ID,
			Login: s.Login,
			Name:  strings.TrimSpace(s.FirstName + " " + s.LastName),
		},
		"access": tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// ChangePassword lets an authenticated staff member rotate their own
// password after proving they know the current one.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	staffID, err := getStaffID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "new_password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "staff not found"})
		}
		return dbError(c)
	}
	if !utils.VerifyPassword(s.PasswordHash, req.OldPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if err := h.Staff.UpdatePassword(ctx, staffID, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update password failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// SetBlocked handles PUT /v1/staff/:id/blocked, blocking or unblocking
// an account. Unblocking clears the failure counter.
func (h *AuthHandler) SetBlocked(c echo.Context) error {
	if _, err := getStaffID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid staff id"})
	}
	var req struct {
		Blocked bool `json:"blocked"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Staff.SetBlocked(ctx, id, req.Blocked); err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "staff not found"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "blocked": req.Blocked})
}
