package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/session"
	"anoa.com/livestockhub/internal/modules/user/dto"
	"anoa.com/livestockhub/internal/modules/user/repository"
	"anoa.com/livestockhub/pkg/apperror"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid credentials", apperror.ErrUnauthorized)
	ErrEmailTaken         = apperror.Conflict("email already registered")
	ErrNotAdmin           = apperror.Forbidden("admin access required")
	ErrDemoDisabled       = apperror.Forbidden("demo login is disabled in production")
	ErrGoogleDisabled     = apperror.New(http.StatusNotImplemented, "google sign-in is not configured", nil)
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type AuthService interface {
	SignUp(ctx context.Context, input dto.SignUpInput) (*dto.AuthResponse, error)
	SignIn(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	AdminLogin(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	DemoLogin(ctx context.Context, input dto.DemoLoginInput) (*dto.AuthResponse, error)
	GoogleLogin(state string) (string, error)
	GoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error)
	SignOut(ctx context.Context, sess *session.Session) error
	Session(ctx context.Context, sess *session.Session) (*dto.SessionResponse, error)
	IssueFor(ctx context.Context, userID uuid.UUID, impersonator *uuid.UUID) (*dto.AuthResponse, error)
}

type Options struct {
	DefaultRole        entity.Role
	Production         bool
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type authService struct {
	repo         repository.UserRepository
	issuer       *session.TokenIssuer
	store        *session.Store
	log          *zap.Logger
	defaultRole  entity.Role
	production   bool
	googleConfig *oauth2.Config
}

func NewAuthService(repo repository.UserRepository, issuer *session.TokenIssuer, store *session.Store, log *zap.Logger, opts Options) AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	defaultRole := opts.DefaultRole
	if !defaultRole.Valid() {
		defaultRole = entity.RoleFarmer
	}

	var googleConfig *oauth2.Config
	if opts.GoogleClientID != "" {
		googleConfig = &oauth2.Config{
			ClientID:     opts.GoogleClientID,
			ClientSecret: opts.GoogleClientSecret,
			RedirectURL:  opts.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		}
	}

	return &authService{
		repo:         repo,
		issuer:       issuer,
		store:        store,
		log:          log,
		defaultRole:  defaultRole,
		production:   opts.Production,
		googleConfig: googleConfig,
	}
}

func (s *authService) SignUp(ctx context.Context, input dto.SignUpInput) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Email: email, PasswordHash: string(hashed)}
	profile := &entity.Profile{FullName: strings.TrimSpace(input.FullName), PreferredLanguage: "en"}
	if err := s.repo.Create(ctx, user, profile, []entity.Role{s.defaultRole}); err != nil {
		return nil, err
	}

	s.log.Info("user signed up", zap.String("user_id", user.ID.String()), zap.String("role", string(s.defaultRole)))
	return s.buildAuthResponse(user, nil)
}

func (s *authService) authenticate(ctx context.Context, input dto.LoginInput) (*entity.User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) SignIn(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.authenticate(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.buildAuthResponse(user, nil)
}

func (s *authService) AdminLogin(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.authenticate(ctx, input)
	if err != nil {
		return nil, err
	}
	for _, r := range user.RoleNames() {
		if r == entity.RoleAdmin {
			return s.buildAuthResponse(user, nil)
		}
	}
	return nil, ErrNotAdmin
}

// DemoEmail is the address of the demo account for role.
func DemoEmail(role entity.Role) string {
	return fmt.Sprintf("demo.%s@livestockhub.local", strings.ReplaceAll(string(role), "_", "-"))
}

// DemoLogin signs in as the demo account of the requested role, creating it
// on first use.
func (s *authService) DemoLogin(ctx context.Context, input dto.DemoLoginInput) (*dto.AuthResponse, error) {
	if s.production {
		return nil, ErrDemoDisabled
	}

	email := DemoEmail(input.Role)
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = s.createDemoUser(ctx, input.Role)
	}
	if err != nil {
		return nil, err
	}
	return s.buildAuthResponse(user, nil)
}

// NewDemoAccount builds the onboarded demo user and profile for role. The
// password is random, so the account is reachable through demo login only.
func NewDemoAccount(role entity.Role) (*entity.User, *entity.Profile, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Email: DemoEmail(role), PasswordHash: string(hashed)}
	profile := &entity.Profile{
		FullName:            "Demo " + strings.ReplaceAll(string(role), "_", " "),
		PreferredLanguage:   "en",
		OnboardingStep:      3,
		OnboardingCompleted: true,
	}
	return user, profile, nil
}

func (s *authService) createDemoUser(ctx context.Context, role entity.Role) (*entity.User, error) {
	user, profile, err := NewDemoAccount(role)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user, profile, []entity.Role{role}); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) GoogleLogin(state string) (string, error) {
	if s.googleConfig == nil {
		return "", ErrGoogleDisabled
	}
	return s.googleConfig.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

type googleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (s *authService) GoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error) {
	if s.googleConfig == nil {
		return nil, ErrGoogleDisabled
	}

	token, err := s.googleConfig.Exchange(ctx, code)
	if err != nil {
		return nil, apperror.New(http.StatusUnauthorized, "failed to exchange token", err)
	}

	client := s.googleConfig.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	var gu googleUser
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if gu.Email == "" || !gu.VerifiedEmail {
		return nil, apperror.New(http.StatusUnauthorized, "google account email is not verified", apperror.ErrUnauthorized)
	}

	user, err := s.repo.FindByGoogleID(ctx, gu.ID)
	if err == nil {
		return s.buildAuthResponse(user, nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err = s.repo.FindByEmail(ctx, gu.Email)
	switch {
	case err == nil:
		user.GoogleID = &gu.ID
		if err := s.repo.Update(ctx, user); err != nil {
			s.log.Warn("failed to link google account", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, herr := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
		if herr != nil {
			return nil, fmt.Errorf("failed to hash password: %w", herr)
		}
		user = &entity.User{
			Email:        strings.ToLower(gu.Email),
			PasswordHash: string(hashed),
			GoogleID:     &gu.ID,
		}
		if gu.Picture != "" {
			user.AvatarURL = &gu.Picture
		}
		profile := &entity.Profile{FullName: gu.Name, PreferredLanguage: "en"}
		if err := s.repo.Create(ctx, user, profile, []entity.Role{s.defaultRole}); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	default:
		return nil, err
	}

	return s.buildAuthResponse(user, nil)
}

func (s *authService) SignOut(ctx context.Context, sess *session.Session) error {
	return s.store.Revoke(ctx, sess)
}

func (s *authService) Session(ctx context.Context, sess *session.Session) (*dto.SessionResponse, error) {
	user, err := s.repo.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	return &dto.SessionResponse{
		User:            user,
		Profile:         user.Profile,
		Roles:           user.RoleNames(),
		IsImpersonating: sess.IsImpersonating(),
		ImpersonatorID:  sess.ImpersonatorID,
		ExpiresAt:       sess.ExpiresAt.Unix(),
	}, nil
}

// IssueFor signs a token for an existing user. Impersonation uses it with a
// non-nil impersonator.
func (s *authService) IssueFor(ctx context.Context, userID uuid.UUID, impersonator *uuid.UUID) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return s.buildAuthResponse(user, impersonator)
}

func (s *authService) buildAuthResponse(user *entity.User, impersonator *uuid.UUID) (*dto.AuthResponse, error) {
	token, sess, err := s.issuer.Issue(user.ID, impersonator)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(sess.ExpiresAt).Seconds()),
		User:        user,
		Profile:     user.Profile,
		Roles:       user.RoleNames(),
	}, nil
}
