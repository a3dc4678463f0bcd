package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/placement-backend/internal/config"
	"github.com/stemsi/placement-backend/internal/metrics"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/repository"
)

// AuthCode identifies why a sign-in was refused.
type AuthCode string

const (
	AuthUserNotFound    AuthCode = "auth/user-not-found"
	AuthWrongPassword   AuthCode = "auth/wrong-password"
	AuthTooManyRequests AuthCode = "auth/too-many-requests"
)

// AuthError is a refused sign-in.
type AuthError struct {
	Code AuthCode
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("sign-in refused (%s)", e.Code)
}

// AuthMessage turns a sign-in error into the message shown to the user.
func AuthMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, string(AuthUserNotFound)):
		return "No user found with this email."
	case strings.Contains(msg, string(AuthWrongPassword)):
		return "Invalid password. Please try again."
	case strings.Contains(msg, string(AuthTooManyRequests)):
		return "Too many login attempts. Please try again later."
	}
	return "Sign-in failed. Please try again."
}

// Claims extends JWT standard claims with the account identity.
type Claims struct {
	jwt.RegisteredClaims
	Role        model.Role `json:"role"`
	Email       string     `json:"email"`
	InstituteID int        `json:"institute_id,omitempty"` // Admin and Student only
}

// SessionStore keeps the active session per account and the failed sign-in
// counters.
type SessionStore interface {
	Save(ctx context.Context, role, email, jti string, ttl time.Duration) error
	Get(ctx context.Context, role, email string) (string, error)
	Delete(ctx context.Context, role, email string) error
	FailedSignIns(ctx context.Context, role, email string) (int64, error)
	RecordFailedSignIn(ctx context.Context, role, email string, window time.Duration) (int64, error)
	ResetFailedSignIns(ctx context.Context, role, email string) error
}

// AuthService handles sign-in, JWT and session management.
type AuthService struct {
	cfg        *config.Config
	sessions   SessionStore
	admins     *repository.AdminRepository
	recruiters *repository.RecruiterRepository
	students   *repository.StudentRepository
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	cfg *config.Config,
	sessions SessionStore,
	admins *repository.AdminRepository,
	recruiters *repository.RecruiterRepository,
	students *repository.StudentRepository,
	m *metrics.Metrics,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		cfg:        cfg,
		sessions:   sessions,
		admins:     admins,
		recruiters: recruiters,
		students:   students,
		metrics:    m,
		log:        log.With().Str("component", "auth_service").Logger(),
	}
}

type account struct {
	passwordHash string
	instituteID  int
}

func (s *AuthService) lookup(ctx context.Context, role model.Role, email string) (*account, error) {
	switch role {
	case model.RoleAdmin:
		a, err := s.admins.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return &account{passwordHash: a.PasswordHash, instituteID: a.InstituteID}, nil
	case model.RoleRecruiter:
		r, err := s.recruiters.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return &account{passwordHash: r.PasswordHash}, nil
	case model.RoleStudent:
		st, err := s.students.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return &account{passwordHash: st.PasswordHash, instituteID: st.InstituteID}, nil
	}
	return nil, repository.ErrNotFound
}

// SignIn checks the credentials and opens a new session, replacing any
// previous one for the account. After SignInMaxAttempts failures within
// SignInLockout further attempts are refused.
func (s *AuthService) SignIn(ctx context.Context, role model.Role, email, password string) (*model.LoginResponse, error) {
	failed, err := s.sessions.FailedSignIns(ctx, string(role), email)
	if err != nil {
		return nil, fmt.Errorf("check sign-in attempts: %w", err)
	}
	if failed >= int64(s.cfg.SignInMaxAttempts) {
		s.metrics.IncrementSignIn("locked")
		return nil, &AuthError{Code: AuthTooManyRequests}
	}

	acc, err := s.lookup(ctx, role, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.recordFailure(ctx, role, email)
			s.metrics.IncrementSignIn("user_not_found")
			return nil, &AuthError{Code: AuthUserNotFound}
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	if !checkPassword(acc.passwordHash, password) {
		s.recordFailure(ctx, role, email)
		s.metrics.IncrementSignIn("wrong_password")
		return nil, &AuthError{Code: AuthWrongPassword}
	}

	if err := s.sessions.ResetFailedSignIns(ctx, string(role), email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("Failed to reset sign-in attempts")
	}

	token, err := s.issueToken(ctx, role, email, acc.instituteID)
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementSignIn("success")
	return &model.LoginResponse{
		Token:       token,
		Role:        role,
		Email:       email,
		InstituteID: acc.instituteID,
		Dashboard:   role.Dashboard(),
	}, nil
}

// issueToken creates a JWT and registers it as the account's active session.
func (s *AuthService) issueToken(ctx context.Context, role model.Role, email string, instituteID int) (string, error) {
	jti := uuid.New().String()
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		Role:        role,
		Email:       email,
		InstituteID: instituteID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	// Store session in Redis with same expiry as JWT.
	if err := s.sessions.Save(ctx, string(role), email, jti, s.cfg.JWTExpiry); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return signed, nil
}

func (s *AuthService) recordFailure(ctx context.Context, role model.Role, email string) {
	if _, err := s.sessions.RecordFailedSignIn(ctx, string(role), email, s.cfg.SignInLockout); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("Failed to record sign-in attempt")
	}
}

// SignOut ends the session the claims belong to.
func (s *AuthService) SignOut(ctx context.Context, claims *Claims) error {
	return s.sessions.Delete(ctx, string(claims.Role), claims.Email)
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ValidateSession checks that the token's JTI is still the active session.
func (s *AuthService) ValidateSession(ctx context.Context, claims *Claims) error {
	stored, err := s.sessions.Get(ctx, string(claims.Role), claims.Email)
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if stored == "" {
		return ErrNoActiveSession
	}
	if stored != claims.ID {
		return ErrSessionInvalidated
	}
	return nil
}
