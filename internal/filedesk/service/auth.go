package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
	"github.com/aussiebroadwan/filedesk/pkg/cryptox"
	"github.com/aussiebroadwan/filedesk/pkg/idx"
	"github.com/aussiebroadwan/filedesk/pkg/slogx"
)

const (
	DefaultLockoutThreshold = 5
	DefaultLockoutWindow    = 30 * time.Minute
	DefaultResetTTL         = time.Hour

	// BirthDateLayout is the accepted wire format for birth dates.
	BirthDateLayout = "2006-01-02"
)

var (
	ErrValidation         = errors.New("validation_failed")
	ErrEmailTaken         = errors.New("email_taken")
	ErrCredentialNotFound = errors.New("credential_not_found")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrLockedOut          = errors.New("locked_out")
	ErrDeliveryFailed     = errors.New("delivery_failed")
	ErrInvalidToken       = errors.New("invalid_token")
)

// LockedOutError is returned by Login while a credential is locked. It
// matches ErrLockedOut with errors.Is.
type LockedOutError struct {
	Remaining time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("locked_out: retry in %s", e.Remaining.Round(time.Second))
}

func (e *LockedOutError) Is(target error) bool { return target == ErrLockedOut }

type RegisterInput struct {
	Email      string
	Password   string
	NationalID string
	FullName   string
	BirthDate  string // YYYY-MM-DD
}

type AuthService struct {
	Store    store.Store
	Notifier Notifier

	LockoutThreshold int
	LockoutWindow    time.Duration
	ResetTTL         time.Duration

	// ResetURLBase is prefixed to the raw token to build the emailed link.
	ResetURLBase string

	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) threshold() int {
	if s.LockoutThreshold > 0 {
		return s.LockoutThreshold
	}
	return DefaultLockoutThreshold
}

func (s *AuthService) window() time.Duration {
	if s.LockoutWindow > 0 {
		return s.LockoutWindow
	}
	return DefaultLockoutWindow
}

func (s *AuthService) resetTTL() time.Duration {
	if s.ResetTTL > 0 {
		return s.ResetTTL
	}
	return DefaultResetTTL
}

// Register creates a new credential with a clean lockout state.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	in.Email = strings.TrimSpace(in.Email)
	in.NationalID = strings.TrimSpace(in.NationalID)
	in.FullName = strings.TrimSpace(in.FullName)
	in.BirthDate = strings.TrimSpace(in.BirthDate)

	if in.Email == "" || in.Password == "" || in.NationalID == "" || in.FullName == "" || in.BirthDate == "" {
		return fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	birth, err := time.Parse(BirthDateLayout, in.BirthDate)
	if err != nil {
		return fmt.Errorf("%w: birth date must be YYYY-MM-DD", ErrValidation)
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	err = s.Store.Credentials().CreateCredential(ctx, domain.Credential{
		Email:        in.Email,
		PasswordHash: hash,
		DisplayName:  in.FullName,
		BirthDate:    birth,
		NationalID:   in.NationalID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("create credential: %w", err)
	}
	return nil
}

// Login verifies a password and maintains the lockout counters. Unknown
// emails are indistinguishable from wrong passwords.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Credential, error) {
	l := slogx.FromContext(ctx)
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Credential{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	cred, err := s.Store.Credentials().GetCredentialByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		cryptox.VerifyDummy(password)
		return domain.Credential{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Credential{}, fmt.Errorf("load credential: %w", err)
	}

	now := s.now()
	window := s.window()

	if cred.Locked {
		var elapsed time.Duration
		if cred.LastAttemptAt != nil {
			elapsed = now.Sub(*cred.LastAttemptAt)
		} else {
			elapsed = window
		}
		if elapsed < window {
			return domain.Credential{}, &LockedOutError{Remaining: window - elapsed}
		}

		if _, err := s.Store.Credentials().ClearExpiredLockout(ctx, email, now.Add(-window), now); err != nil {
			l.Error("failed to clear expired lockout", slog.String("email", email), slog.Any("err", err))
		}
		cred.Locked = false
		cred.FailedAttempts = 0
	}

	if err := cryptox.VerifyPassword(password, cred.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrInvalidHash) {
			l.Error("stored password hash is corrupt", slog.String("email", email), slog.Any("err", err))
			return domain.Credential{}, fmt.Errorf("verify stored hash: %w", err)
		}
		attempts, locked, recErr := s.Store.Credentials().RecordFailedAttempt(ctx, email, s.threshold(), now)
		if recErr != nil {
			l.Error("failed to record failed login", slog.String("email", email), slog.Any("err", recErr))
			attempts = cred.FailedAttempts + 1
			locked = attempts >= s.threshold()
		}
		l.Info("login failed", slog.String("email", email), slog.Int("failed_attempts", attempts), slog.Bool("locked", locked))
		return domain.Credential{}, ErrInvalidCredentials
	}

	if err := s.Store.Credentials().ResetAttempts(ctx, email, now); err != nil {
		l.Error("failed to reset login attempts", slog.String("email", email), slog.Any("err", err))
	}
	cred.FailedAttempts = 0
	cred.Locked = false
	return cred, nil
}

// ForgotPassword issues a reset token and emails the link. The token row is
// kept even when delivery fails.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	if _, err := s.Store.Credentials().GetCredentialByEmail(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCredentialNotFound
		}
		return fmt.Errorf("load credential: %w", err)
	}

	token, fingerprint, err := cryptox.NewResetToken()
	if err != nil {
		return err
	}

	now := s.now()
	err = s.Store.ResetTokens().CreateResetToken(ctx, domain.ResetToken{
		ID:        idx.NewAt(now).String(),
		Email:     email,
		TokenHash: fingerprint,
		ExpiresAt: now.Add(s.resetTTL()),
		CreatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	body := fmt.Sprintf("Your password reset link: %s%s\n\nThe link expires in %s.",
		s.ResetURLBase, token, s.resetTTL())
	if err := s.Notifier.Send(ctx, email, "Password reset link", body); err != nil {
		slogx.FromContext(ctx).Error("failed to send reset link", slog.String("email", email), slog.Any("err", err))
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return nil
}

// VerifyToken reports whether token names a live reset token. It never
// mutates state.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (bool, error) {
	if _, err := s.lookupToken(ctx, token); err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *AuthService) lookupToken(ctx context.Context, token string) (domain.ResetToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ResetToken{}, ErrInvalidToken
	}
	rt, err := s.Store.ResetTokens().GetResetToken(ctx, cryptox.FingerprintToken(token))
	if errors.Is(err, store.ErrNotFound) {
		return domain.ResetToken{}, ErrInvalidToken
	}
	if err != nil {
		return domain.ResetToken{}, fmt.Errorf("load reset token: %w", err)
	}
	if !rt.ValidAt(s.now()) {
		return domain.ResetToken{}, ErrInvalidToken
	}
	return rt, nil
}

// ResetPassword redeems a reset token. The lockout state is left alone.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" || newPassword == "" {
		return fmt.Errorf("%w: token and new password are required", ErrValidation)
	}

	rt, err := s.lookupToken(ctx, token)
	if err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.Store.Credentials().UpdatePasswordHash(ctx, rt.Email, hash, s.now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.Store.ResetTokens().DeleteResetToken(ctx, rt.TokenHash); err != nil {
		slogx.FromContext(ctx).Warn("failed to delete redeemed reset token",
			slog.String("token_id", rt.ID), slog.Any("err", err))
	}
	return nil
}

// ChangePassword replaces the password after checking the old one. Failed
// checks here do not count towards the lockout.
func (s *AuthService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	email = strings.TrimSpace(email)
	if email == "" || oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: email, old and new password are required", ErrValidation)
	}

	cred, err := s.Store.Credentials().GetCredentialByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return ErrCredentialNotFound
	}
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}

	if err := cryptox.VerifyPassword(oldPassword, cred.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrInvalidHash) {
			slogx.FromContext(ctx).Error("stored password hash is corrupt", slog.String("email", email), slog.Any("err", err))
			return fmt.Errorf("verify stored hash: %w", err)
		}
		return ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Store.Credentials().UpdatePasswordHash(ctx, email, hash, s.now()); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// UserInfo returns the profile fields of a credential.
func (s *AuthService) UserInfo(ctx context.Context, email string) (domain.Credential, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.Credential{}, fmt.Errorf("%w: email is required", ErrValidation)
	}
	cred, err := s.Store.Credentials().GetCredentialByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Credential{}, ErrCredentialNotFound
	}
	if err != nil {
		return domain.Credential{}, fmt.Errorf("load credential: %w", err)
	}
	return cred, nil
}
