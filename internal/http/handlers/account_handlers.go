package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dilshan221/bakery-management/domain"
)

// AccountHandlers handles account management HTTP requests
type AccountHandlers struct {
	accountSvc  domain.AccountService
	accountRepo domain.AccountRepository
	passwordSvc domain.PasswordService
}

// NewAccountHandlers creates new account handlers
func NewAccountHandlers(accountSvc domain.AccountService, accountRepo domain.AccountRepository, passwordSvc domain.PasswordService) *AccountHandlers {
	return &AccountHandlers{
		accountSvc:  accountSvc,
		accountRepo: accountRepo,
		passwordSvc: passwordSvc,
	}
}

// RegisterRequest represents a registration payload
type RegisterRequest struct {
	Firstname  string `json:"firstname" binding:"required"`
	Lastname   string `json:"lastname" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Birthday   string `json:"birthday"`
	Newsletter bool   `json:"newsletter"`
}

// LoginRequest represents a login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateAccountRequest represents an account update payload
type UpdateAccountRequest struct {
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Birthday   string `json:"birthday"`
	Newsletter *bool  `json:"newsletter"`
	Role       string `json:"role"`
	IsActive   *bool  `json:"is_active"`
}

func accountID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid account id"})
		return 0, false
	}
	return uint(id), true
}

func parseBirthday(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return &parsed
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return &parsed
	}
	return nil
}

// Register handles account registration
func (h *AccountHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	account := &domain.Account{
		Firstname:  req.Firstname,
		Lastname:   req.Lastname,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Birthday:   parseBirthday(req.Birthday),
		Newsletter: req.Newsletter,
	}

	created, err := h.accountSvc.Register(c.Request.Context(), account, req.Password)
	if err != nil {
		if err == domain.ErrEmailTaken {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register account"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Login handles account login
func (h *AccountHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	result, err := h.accountSvc.Login(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		case domain.ErrAccountInactive:
			c.JSON(http.StatusForbidden, gin.H{"message": "Account is inactive"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":         result.AccessToken,
		"refresh_token": result.RefreshToken,
		"token_type":    "Bearer",
		"expires_in":    result.ExpiresIn,
		"user": gin.H{
			"id":         result.Account.ID,
			"firstname":  result.Account.Firstname,
			"lastname":   result.Account.Lastname,
			"email":      result.Account.Email,
			"role":       result.Account.Role,
			"newsletter": result.Account.Newsletter,
		},
	})
}

// Refresh handles token refresh
func (h *AccountHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	result, err := h.accountSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch err {
		case domain.ErrTokenInvalid, domain.ErrTokenExpired:
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired refresh token"})
		case domain.ErrSessionNotFound, domain.ErrSessionExpired:
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Session expired"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Token refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      result.AccessToken,
		"token_type": "Bearer",
		"expires_in": result.ExpiresIn,
	})
}

// Me handles getting the authenticated account's profile
func (h *AccountHandlers) Me(c *gin.Context) {
	idStr, exists := c.Get("account_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Account ID not found in context"})
		return
	}

	id, err := strconv.ParseUint(idStr.(string), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid account id"})
		return
	}

	account, err := h.accountSvc.GetProfile(c.Request.Context(), uint(id))
	if err != nil {
		if err == domain.ErrAccountNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, account)
}

// Logout handles account logout
func (h *AccountHandlers) Logout(c *gin.Context) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Session ID not found"})
		return
	}

	if err := h.accountSvc.Logout(c.Request.Context(), sessionID.(string)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// List handles listing all accounts; password hashes are never serialized
func (h *AccountHandlers) List(c *gin.Context) {
	accounts, err := h.accountRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list accounts"})
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// GetByID handles fetching a single account
func (h *AccountHandlers) GetByID(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	account, err := h.accountRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch account"})
		return
	}

	c.JSON(http.StatusOK, account)
}

// Update handles account updates; a supplied password is re-hashed
func (h *AccountHandlers) Update(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	account, err := h.accountRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update account"})
		return
	}

	if nextEmail := strings.ToLower(strings.TrimSpace(req.Email)); nextEmail != "" && nextEmail != account.Email {
		if _, err := h.accountRepo.FindByEmail(c.Request.Context(), nextEmail); err == nil {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already in use"})
			return
		}
		account.Email = nextEmail
	}
	if req.Firstname != "" {
		account.Firstname = req.Firstname
	}
	if req.Lastname != "" {
		account.Lastname = req.Lastname
	}
	if b := parseBirthday(req.Birthday); b != nil {
		account.Birthday = b
	}
	if req.Newsletter != nil {
		account.Newsletter = *req.Newsletter
	}
	if req.Role != "" {
		account.Role = req.Role
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.Password != "" {
		hashed, err := h.passwordSvc.Hash(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update account"})
			return
		}
		account.PasswordHash = hashed
	}

	if err := h.accountRepo.Update(c.Request.Context(), account); err != nil {
		if err == domain.ErrEmailTaken {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update account"})
		return
	}

	c.JSON(http.StatusOK, account)
}

// Delete handles account deletion
func (h *AccountHandlers) Delete(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	if err := h.accountRepo.Delete(c.Request.Context(), id); err != nil {
		if err == domain.ErrAccountNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
