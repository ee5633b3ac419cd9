package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"user-manager/internal/authz"
	"user-manager/internal/domain"
	"user-manager/internal/repository"
	"user-manager/internal/service"
	"user-manager/internal/token"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	sessions *token.SessionIssuer
}

func NewHandler(users service.UserService, sessions *token.SessionIssuer) *Handler {
	return &Handler{
		users:    users,
		sessions: sessions,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	auth := router.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/reset_password", authMiddleware(h.sessions), h.resetPassword)
		auth.POST("/forget_password", h.forgetPassword)
		auth.POST("/reset_password/:token", h.resetPasswordWithToken)
	}

	user := router.Group("/user", authMiddleware(h.sessions))
	{
		user.PUT("/:id", h.updateUser)
		user.DELETE("/:id", h.deleteUser)
	}

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusAccepted, gin.H{"ok": "ok"})
		})
	}
}

type registerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type resetPasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type forgetPasswordRequest struct {
	Email string `json:"email"`
}

type newPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

type updateUserRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
	Active    *bool   `json:"active"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Missing username or password"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"msg":  "User created successfully",
		"user": userToResponse(user),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Bad username or password"})
		return
	}

	signed, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": signed})
}

func (h *Handler) resetPassword(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Missing or invalid token"})
		return
	}

	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid payload"})
		return
	}

	if err := h.users.ChangePassword(c.Request.Context(), caller.Username, req.OldPassword, req.NewPassword); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Password updated successfully"})
}

func (h *Handler) forgetPassword(c *gin.Context) {
	var req forgetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = forgetPasswordRequest{}
	}

	signed, err := h.users.ForgetPassword(c.Request.Context(), req.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":        "Password reset link generated",
		"reset_link": "/auth/reset_password/" + signed,
	})
}

func (h *Handler) resetPasswordWithToken(c *gin.Context) {
	var req newPasswordRequest
	// token expiry is checked before payload shape, matching the reset flow order
	if err := c.ShouldBindJSON(&req); err != nil {
		req = newPasswordRequest{}
	}

	if err := h.users.ResetPasswordWithToken(c.Request.Context(), c.Param("token"), req.NewPassword); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Password updated successfully"})
}

func (h *Handler) updateUser(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Missing or invalid token"})
		return
	}

	id, err := parseUserID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid payload"})
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), caller, id, service.UserUpdate{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Active:    req.Active,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":  "User updated successfully",
		"user": userToResponse(user),
	})
}

func (h *Handler) deleteUser(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Missing or invalid token"})
		return
	}

	id, err := parseUserID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), caller, id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User deleted successfully"})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUsernameRequired),
		errors.Is(err, service.ErrPasswordRequired):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Missing username or password"})
	case errors.Is(err, service.ErrNewPasswordRequired):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Missing new_password"})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "User already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Bad username or password"})
	case errors.Is(err, service.ErrInvalidOldPassword):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid password"})
	case errors.Is(err, service.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid role"})
	case errors.Is(err, token.ErrResetExpired):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "link has expired"})
	case errors.Is(err, token.ErrResetInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "link is invalid"})
	case errors.Is(err, authz.ErrNotAuthorized),
		errors.Is(err, authz.ErrCannotModifyAdmin):
		c.JSON(http.StatusForbidden, gin.H{"msg": "Not authorized to modify this user"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseUserID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid user id")
	}
	return id, nil
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		Active:    user.Active,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}
