package controllers

import (
	"net/http"
	"time"

	"github.com/a7med3yad/Cartify-Frontend/auth"
	"github.com/a7med3yad/Cartify-Frontend/services"
	"github.com/gin-gonic/gin"
)

// SessionController exposes sign in, sign up and the current identity.
type SessionController struct {
	account *services.AccountService
}

func NewSessionController(account *services.AccountService) *SessionController {
	return &SessionController{account: account}
}

// sessionView is the session without its bearer token.
type sessionView struct {
	Authenticated bool       `json:"authenticated"`
	UserID        string     `json:"userId,omitempty"`
	Email         string     `json:"email,omitempty"`
	Roles         []string   `json:"roles"`
	Expiry        *time.Time `json:"expiry,omitempty"`
	Expired       bool       `json:"expired"`
}

func viewOf(s *auth.Session) sessionView {
	if s == nil {
		return sessionView{Roles: []string{}}
	}
	return sessionView{
		Authenticated: true,
		UserID:        s.UserID,
		Email:         s.Email,
		Roles:         s.Roles,
		Expiry:        s.Expiry,
		Expired:       s.Expired(time.Now()),
	}
}

// Get handles GET /session.
func (sc *SessionController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, viewOf(sc.account.Session(c.Request.Context())))
}

// Login handles POST /session/login.
func (sc *SessionController) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, err := sc.account.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(session))
}

// Register handles POST /session/register.
func (sc *SessionController) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := sc.account.Register(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Account created. Please log in."})
}

// Logout handles POST /session/logout.
func (sc *SessionController) Logout(c *gin.Context) {
	if err := sc.account.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(nil))
}

// CreateMerchantProfile handles POST /session/merchant-profile.
func (sc *SessionController) CreateMerchantProfile(c *gin.Context) {
	var req struct {
		StoreName string `json:"storeName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, err := sc.account.CreateMerchantProfile(c.Request.Context(), req.StoreName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(session))
}
