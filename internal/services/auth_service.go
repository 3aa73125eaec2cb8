package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"github.com/Sumit6307/Try-Nutri/internal/models"
	"github.com/Sumit6307/Try-Nutri/internal/repositories"
	"github.com/Sumit6307/Try-Nutri/pkg/hashpool"
	"github.com/Sumit6307/Try-Nutri/pkg/rabbitmq"
)

// Token purposes. A reset token is never accepted for API authorization and
// a login token is never accepted by the reset flow.
const (
	tokenPurposeLogin = "login"
	tokenPurposeReset = "reset"
)

const (
	loginTokenTTL = 24 * time.Hour
	resetTokenTTL = time.Hour
)

// ResetMailPublisher delivers password-reset emails out-of-band.
type ResetMailPublisher interface {
	PublishPasswordReset(msg rabbitmq.PasswordResetEmail) error
}

// AuthService handles registration, login, token issuance/verification, and
// the password reset flow.
type AuthService struct {
	userRepo       repositories.UserRepository
	resetTokenRepo repositories.ResetTokenRepository
	mailPublisher  ResetMailPublisher
	hasher         *hashpool.Pool
	jwtSecret      []byte
	resetBaseURL   string
}

// NewAuthService creates a new AuthService. mailPublisher may be nil, in
// which case password reset emails are skipped (useful for tests and local
// runs without a broker).
func NewAuthService(userRepo repositories.UserRepository, resetTokenRepo repositories.ResetTokenRepository, mailPublisher ResetMailPublisher, hasher *hashpool.Pool, jwtSecret, resetBaseURL string) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		resetTokenRepo: resetTokenRepo,
		mailPublisher:  mailPublisher,
		hasher:         hasher,
		jwtSecret:      []byte(jwtSecret),
		resetBaseURL:   strings.TrimRight(resetBaseURL, "/"),
	}
}

// Register creates a new user and returns it along with a login token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		Name:              name,
		Email:             email,
		Password:          hash,
		TrialStart:        now,
		PasswordChangedAt: now,
	}
	if err := s.userRepo.Create(user); err != nil {
		// The unique index catches registrations that raced the check above.
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, "", fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
		}
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.IssueLoginToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates a user by email and password and returns the user and
// a login token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email is registered.
		return nil, "", ErrInvalidCredentials
	}

	if err := s.hasher.Compare(ctx, user.Password, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueLoginToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueLoginToken produces a signed login token for the user, valid 24 hours.
func (s *AuthService) IssueLoginToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"purpose": tokenPurposeLogin,
		"iat":     now.Unix(),
		"exp":     now.Add(loginTokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// IssueResetToken produces a signed single-purpose reset token for the user,
// valid 1 hour. The embedded jti makes each token individually trackable so
// redemption can be limited to once.
func (s *AuthService) IssueResetToken(userID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(resetTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"purpose": tokenPurposeReset,
		"jti":     uuid.New().String(),
		"iat":     now.Unix(),
		"exp":     expiresAt.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate reset token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// Authenticate verifies a login token and returns the embedded user id.
// Tokens issued before the user's last password change are rejected, so a
// password change or reset revokes outstanding sessions.
func (s *AuthService) Authenticate(token string) (string, error) {
	claims, err := s.parseToken(token, tokenPurposeLogin)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("%w: missing user id claim", ErrUnauthorized)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", fmt.Errorf("%w: unknown user", ErrUnauthorized)
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return "", fmt.Errorf("%w: missing iat claim", ErrUnauthorized)
	}
	if int64(iat) < user.PasswordChangedAt.Unix() {
		return "", fmt.Errorf("%w: token issued before password change", ErrUnauthorized)
	}

	return userID, nil
}

// ForgotPassword issues a reset token and queues the reset email. The result
// is identical whether or not the email is registered, so the endpoint does
// not disclose account existence.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Password reset requested for unregistered email")
			return nil
		}
		return fmt.Errorf("failed to look up user for password reset: %w", err)
	}

	token, expiresAt, err := s.IssueResetToken(user.ID)
	if err != nil {
		return err
	}

	if s.mailPublisher == nil {
		log.Println("Mail publisher is not configured. Skipping password reset email.")
		return nil
	}

	msg := rabbitmq.PasswordResetEmail{
		To:        user.Email,
		ResetLink: fmt.Sprintf("%s/reset-password/%s", s.resetBaseURL, token),
		ExpiresAt: expiresAt,
	}
	if err := s.mailPublisher.PublishPasswordReset(msg); err != nil {
		return fmt.Errorf("failed to queue password reset email: %w", err)
	}
	return nil
}

// ResetPassword redeems a reset token and overwrites the user's password.
// Any verification failure leaves the stored hash untouched.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.parseToken(token, tokenPurposeReset)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOrExpiredToken, err)
	}

	userID, _ := claims["user_id"].(string)
	jti, _ := claims["jti"].(string)
	exp, _ := claims["exp"].(float64)
	if userID == "" || jti == "" || exp == 0 {
		return fmt.Errorf("%w: missing claims", ErrInvalidOrExpiredToken)
	}

	used, err := s.resetTokenRepo.IsUsed(jti)
	if err != nil {
		return fmt.Errorf("failed to check reset token: %w", err)
	}
	if used {
		return fmt.Errorf("%w: token already redeemed", ErrInvalidOrExpiredToken)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: user no longer exists", ErrInvalidOrExpiredToken)
		}
		return fmt.Errorf("failed to load user for password reset: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Burn the token before writing the new hash. If the write below fails
	// the old password stays valid and the token is dead, which is the safer
	// side of the race against a concurrent redemption.
	if err := s.resetTokenRepo.MarkUsed(jti, time.Unix(int64(exp), 0)); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return fmt.Errorf("%w: token already redeemed", ErrInvalidOrExpiredToken)
		}
		return fmt.Errorf("failed to mark reset token as used: %w", err)
	}

	user.Password = hash
	user.PasswordChangedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// parseToken verifies signature, expiry, and purpose.
func (s *AuthService) parseToken(tokenString, purpose string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims["purpose"] != purpose {
		return nil, fmt.Errorf("wrong token purpose")
	}
	return claims, nil
}
