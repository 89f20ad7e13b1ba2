package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/leverblum/boardsctrl/internal/core/domain"
	"github.com/leverblum/boardsctrl/internal/core/ports"
)

// AuthService implements registration and the login pipeline:
// user lookup, local hash, role, external verifier, token.
type AuthService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	verifier ports.IdentityVerifier
	tokens   ports.TokenIssuer
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	verifier ports.IdentityVerifier,
	tokens ports.TokenIssuer,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		roles:    roles,
		verifier: verifier,
		tokens:   tokens,
		log:      log,
		now:      time.Now,
	}
}

// Register creates an active account with a bcrypt hash. The external
// verifier is not consulted.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" || in.Role == "" {
		return nil, domain.Invalid("username, password y role son obligatorios")
	}

	exists, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateUsername
	}

	role, err := s.resolveRole(ctx, in.Role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, domain.Invalid("La contraseña no puede superar 72 bytes")
	}
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Email:        strings.TrimSpace(in.Email),
		RoleID:       role.ID,
		Active:       true,
		Audit:        domain.NewAudit(domain.SelfRegistration, s.now()),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("username", created.Username).Str("role", role.Name).Msg("user registered")
	return created, nil
}

// resolveRole looks the role up by id first, then by name.
func (s *AuthService) resolveRole(ctx context.Context, ref string) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, ref)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("register: find role: %w", err)
	}

	role, err = s.roles.FindByName(ctx, ref)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnknownRole
	}
	if err != nil {
		return nil, fmt.Errorf("register: find role: %w", err)
	}
	return role, nil
}

// Login runs the checks strictly in order and stops at the first failure.
// It performs no writes.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	// 1. Account lookup; missing and inactive are indistinguishable.
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: find user: %w", err)
	}
	if !user.Active {
		return nil, domain.ErrInvalidCredentials
	}

	// 2. Local hash, when one is stored.
	if user.HasLocalPassword() {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return nil, domain.ErrInvalidCredentials
		}
	}

	// 3. Role. Only a missing role blocks login; an inactive role still resolves.
	role, err := s.roles.FindByID(ctx, user.RoleID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrRoleUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("login: find role: %w", err)
	}

	// 4. External identity service.
	outcome, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("external identity service unavailable")
		if errors.Is(err, domain.ErrExternalUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrExternalUnavailable, err)
	}
	if !outcome.Success {
		s.log.Info().
			Str("username", username).
			Int("code", outcome.ResponseCode).
			Int("http_status", outcome.HTTPStatus).
			Str("message", outcome.Message).
			Msg("external identity service rejected credentials")
		return nil, domain.ErrExternalRejected
	}

	// 5. Token.
	token, exp, err := s.tokens.Issue(user.ID, user.Username, role.Name)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	return &domain.AuthResult{
		AccountID: user.ID,
		Username:  user.Username,
		Role:      role.Name,
		Token:     token,
		ExpiresAt: exp,
	}, nil
}
