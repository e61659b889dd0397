package handlers

import (
	"log/slog"
	"net/http"

	"prism/internal/middleware"
	"prism/internal/models"

	"github.com/gin-gonic/gin"
)

// Index - GET /
// Greets the session user when logged in and drains queued flash
// messages.
func (h *Handlers) Index(c *gin.Context) {
	payload := gin.H{
		"messages": middleware.TakeFlashes(c),
	}

	if userID := currentUserID(c); userID != 0 {
		user, err := h.services.Identity.GetProfile(c.Request.Context(), userID)
		if err == nil {
			payload["user_full_name"] = user.FullName
		}
	}

	c.JSON(http.StatusOK, payload)
}

// RegisterPage - GET /register
func (h *Handlers) RegisterPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"messages": middleware.TakeFlashes(c),
	})
}

// Register - POST /register
func (h *Handlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithFlash(c, "Please fill in all fields with a valid email and password.", "/register")
		return
	}

	if _, err := h.services.Identity.Register(c.Request.Context(), &req); err != nil {
		slog.Error("Failed to register user", "error", err, "email", req.Email)
		redirectWithFlash(c, flashMessage(err), "/register")
		return
	}

	redirectWithFlash(c, "Account created successfully! Please log in.", "/login")
}

// LoginPage - GET /login
func (h *Handlers) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"messages": middleware.TakeFlashes(c),
	})
}

// Login - POST /login
// Establishes the session carrying {userID, isStaff}. The "next" query
// parameter, when present, overrides the index redirect.
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithFlash(c, "Please provide both email and password.", "/login")
		return
	}

	user, err := h.services.Identity.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		redirectWithFlash(c, flashMessage(err), "/login")
		return
	}

	if err := middleware.SetSessionUser(c, user.ID, user.IsStaff); err != nil {
		slog.Error("Failed to save session", "error", err, "user_id", user.ID)
		redirectWithFlash(c, "Something went wrong. Please try again.", "/login")
		return
	}

	target := "/"
	if next := c.Query("next"); next != "" {
		target = next
	}
	redirectWithFlash(c, "You are now logged in.", target)
}

// Logout - POST /logout
// Destroys all session state unconditionally.
func (h *Handlers) Logout(c *gin.Context) {
	if err := middleware.ClearSession(c); err != nil {
		slog.Error("Failed to clear session", "error", err)
	}
	redirectWithFlash(c, "You have been successfully logged out.", "/login")
}

// UpdateProfile - POST /update-profile
// Mutates the caller's name and email; an optional password change
// requires a matching confirmation.
func (h *Handlers) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithFlash(c, "Please provide a full name and a valid email.", "/dashboard")
		return
	}

	userID := currentUserID(c)
	if err := h.services.Identity.UpdateProfile(c.Request.Context(), userID, &req); err != nil {
		slog.Error("Failed to update profile", "error", err, "user_id", userID)
		redirectWithFlash(c, flashMessage(err), "/dashboard")
		return
	}

	redirectWithFlash(c, "Your profile has been updated successfully.", "/")
}

// About - GET /about
func (h *Handlers) About(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "Prism",
		"description": "Browse venues and events, star your favorites, and book your place.",
	})
}
