package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/a7med3yad/Cartify-Frontend/apperrors"
	"github.com/a7med3yad/Cartify-Frontend/auth"
	"github.com/a7med3yad/Cartify-Frontend/clients"
	"github.com/a7med3yad/Cartify-Frontend/logger"
	"go.uber.org/zap"
)

// Sessions is the token store as the account flows use it.
type Sessions interface {
	SetSession(ctx context.Context, resp auth.AuthResponse) (*auth.Session, error)
	Session(ctx context.Context) *auth.Session
	ClearSession(ctx context.Context) error
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	UserName        string `json:"userName"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email" binding:"required"`
	PhoneNumber     string `json:"phoneNumber"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AccountService covers sign in, sign up and sign out.
type AccountService struct {
	gateway  Gateway
	sessions Sessions
	log      *zap.Logger
}

func NewAccountService(gateway Gateway, sessions Sessions, log *zap.Logger) *AccountService {
	return &AccountService{gateway: gateway, sessions: sessions, log: logger.OrNop(log)}
}

// Login posts the credentials as a form and stores the returned session.
func (s *AccountService) Login(ctx context.Context, req LoginRequest) (*auth.Session, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apperrors.InvalidInput("email and password are required")
	}
	form := clients.NewMultipart().
		Field("Email", strings.TrimSpace(req.Email)).
		Field("Password", req.Password)

	var resp auth.AuthResponse
	if err := s.gateway.DoJSON(ctx, pathLogin, clients.RequestOptions{
		Method:    http.MethodPost,
		Body:      form,
		Anonymous: true,
	}, &resp); err != nil {
		return nil, err
	}

	session, err := s.sessions.SetSession(ctx, resp)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx, s.log).Info("logged in", zap.String("user_id", session.UserID), zap.Strings("roles", session.Roles))
	return session, nil
}

// Register creates an account. It does not sign the user in.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) error {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.InvalidInput("email and password are required")
	}
	if req.ConfirmPassword == "" {
		req.ConfirmPassword = req.Password
	}

	form := clients.NewMultipart()
	for _, f := range []struct{ name, value string }{
		{"UserName", req.UserName},
		{"FirstName", req.FirstName},
		{"LastName", req.LastName},
		{"Email", strings.TrimSpace(req.Email)},
		{"PhoneNumber", req.PhoneNumber},
		{"Password", req.Password},
		{"ConfirmPassword", req.ConfirmPassword},
	} {
		if f.value != "" {
			form.Field(f.name, f.value)
		}
	}

	_, err := s.gateway.Do(ctx, pathRegister, clients.RequestOptions{
		Method:    http.MethodPost,
		Body:      form,
		Anonymous: true,
	})
	return err
}

// Logout drops the local session.
func (s *AccountService) Logout(ctx context.Context) error {
	return s.sessions.ClearSession(ctx)
}

// Session returns the current session or nil.
func (s *AccountService) Session(ctx context.Context) *auth.Session {
	return s.sessions.Session(ctx)
}

// CreateMerchantProfile opens a store for the signed-in user. The API answers
// with a refreshed token that carries the merchant role, which replaces the
// current session.
func (s *AccountService) CreateMerchantProfile(ctx context.Context, storeName string) (*auth.Session, error) {
	storeName = strings.TrimSpace(storeName)
	if storeName == "" {
		return nil, apperrors.InvalidInput("store name is required")
	}

	var resp auth.AuthResponse
	if err := s.gateway.DoJSON(ctx, pathCreateMerchantProfile, clients.RequestOptions{
		Method: http.MethodPost,
		Body:   map[string]string{"storeName": storeName},
	}, &resp); err != nil {
		return nil, err
	}
	return s.sessions.SetSession(ctx, resp)
}
