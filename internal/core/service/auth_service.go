package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mateluxy/backoffice-api/internal/api/metrics"
	"github.com/mateluxy/backoffice-api/internal/core/domain"
	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

const (
	resetTokenTTL     = time.Hour
	resetTokenBytes   = 32
	minPasswordLength = 6
)

// SessionTokens issues and verifies session tokens.
type SessionTokens interface {
	Issue(identityID string, rememberMe bool) (ports.IssuedToken, error)
	Verify(token string) (string, error)
}

// PasswordRecovery groups the collaborators of the forgot/reset flow.
type PasswordRecovery struct {
	Store       ports.ResetTokenStore
	Mailer      ports.Mailer
	FrontendURL string
}

type authService struct {
	admins   ports.AdminRepository
	agents   ports.AgentRepository
	tokens   SessionTokens
	hasher   ports.PasswordHasher
	recovery PasswordRecovery
	log      zerolog.Logger
	now      func() time.Time
}

// NewAuthService returns an AuthService implementation.
func NewAuthService(
	admins ports.AdminRepository,
	agents ports.AgentRepository,
	tokens SessionTokens,
	hasher ports.PasswordHasher,
	recovery PasswordRecovery,
	log zerolog.Logger,
) ports.AuthService {
	recovery.FrontendURL = strings.TrimRight(recovery.FrontendURL, "/")
	return &authService{
		admins:   admins,
		agents:   agents,
		tokens:   tokens,
		hasher:   hasher,
		recovery: recovery,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *authService) SignInAdmin(ctx context.Context, email, password string, rememberMe bool) (*ports.AdminSession, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, domain.NewValidationError("email and password are required")
	}

	admin, err := s.admins.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, s.signInFailure(domain.KindAdmin, err, domain.ErrAdminNotFound)
	}
	if !s.hasher.Compare(password, admin.PasswordHash) {
		return nil, s.signInFailure(domain.KindAdmin, domain.ErrInvalidCredentials, nil)
	}

	token, err := s.tokens.Issue(admin.ID, rememberMe)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues(string(domain.KindAdmin), "error").Inc()
		return nil, fmt.Errorf("sign in admin: %w", err)
	}

	now := s.now()
	if err := s.admins.SetPresence(ctx, admin.ID, true, now); err != nil {
		s.log.Warn().Err(err).Str("admin_id", admin.ID).Msg("failed to record admin presence")
	} else {
		admin.LastLogin, admin.LastActivity, admin.IsOnline = &now, &now, true
	}

	metrics.SignInsTotal.WithLabelValues(string(domain.KindAdmin), "success").Inc()
	s.log.Info().Str("admin_id", admin.ID).Bool("remember_me", rememberMe).Msg("admin signed in")
	return &ports.AdminSession{Token: token, Admin: admin}, nil
}

func (s *authService) SignInAgent(ctx context.Context, email, password string, rememberMe bool) (*ports.AgentSession, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, domain.NewValidationError("email and password are required")
	}

	agent, err := s.agents.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, s.signInFailure(domain.KindAgent, err, domain.ErrAgentNotFound)
	}
	if !s.hasher.Compare(password, agent.PasswordHash) {
		return nil, s.signInFailure(domain.KindAgent, domain.ErrInvalidCredentials, nil)
	}

	token, err := s.tokens.Issue(agent.ID, rememberMe)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues(string(domain.KindAgent), "error").Inc()
		return nil, fmt.Errorf("sign in agent: %w", err)
	}

	now := s.now()
	if err := s.agents.SetPresence(ctx, agent.ID, true, now); err != nil {
		s.log.Warn().Err(err).Str("agent_id", agent.ID).Msg("failed to record agent presence")
	} else {
		agent.LastLogin, agent.LastActivity, agent.IsOnline = &now, &now, true
	}

	metrics.SignInsTotal.WithLabelValues(string(domain.KindAgent), "success").Inc()
	s.log.Info().Str("agent_id", agent.ID).Bool("remember_me", rememberMe).Msg("agent signed in")
	return &ports.AgentSession{Token: token, Agent: agent}, nil
}

// signInFailure reports an unknown identity as ErrInvalidCredentials.
func (s *authService) signInFailure(kind domain.IdentityKind, err, notFound error) error {
	if errors.Is(err, domain.ErrInvalidCredentials) || (notFound != nil && errors.Is(err, notFound)) {
		metrics.SignInsTotal.WithLabelValues(string(kind), "invalid_credentials").Inc()
		return domain.ErrInvalidCredentials
	}
	metrics.SignInsTotal.WithLabelValues(string(kind), "error").Inc()
	return fmt.Errorf("sign in %s: %w", kind, err)
}

func (s *authService) Logout(ctx context.Context, kind domain.IdentityKind, token string) {
	if token == "" {
		return
	}
	id, err := s.tokens.Verify(token)
	if err != nil {
		return
	}

	now := s.now()
	switch kind {
	case domain.KindAgent:
		err = s.agents.SetPresence(ctx, id, false, now)
	default:
		err = s.admins.SetPresence(ctx, id, false, now)
	}
	if err != nil {
		s.log.Warn().Err(err).Str("kind", string(kind)).Str("identity_id", id).Msg("failed to mark identity offline")
	}
}

var resetMailTemplate = template.Must(template.New("reset").Parse(
	`<p>Hello {{.Name}},</p>
<p>We received a request to reset your password. The link below is valid for one hour:</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p>If you did not request a reset you can ignore this message.</p>`))

// ForgotPassword mails a single-use reset link. Issuing a new link invalidates
// the previous one.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return domain.NewValidationError("email is required")
	}

	admin, err := s.admins.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}

	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("forgot password: generate token: %w", err)
	}
	token := hex.EncodeToString(raw)

	if err := s.recovery.Store.Save(ctx, admin.ID, hashResetToken(token), resetTokenTTL); err != nil {
		return fmt.Errorf("forgot password: store token: %w", err)
	}

	name := admin.FullName
	if name == "" {
		name = admin.Username
	}
	var body bytes.Buffer
	if err := resetMailTemplate.Execute(&body, struct{ Name, Link string }{
		Name: name,
		Link: s.recovery.FrontendURL + "/reset-password/" + token,
	}); err != nil {
		return fmt.Errorf("forgot password: render mail: %w", err)
	}

	if err := s.recovery.Mailer.Send(ctx, admin.Email, "Password reset request", body.String()); err != nil {
		metrics.MailFailuresTotal.Inc()
		if delErr := s.recovery.Store.Delete(ctx, admin.ID); delErr != nil {
			s.log.Warn().Err(delErr).Str("admin_id", admin.ID).Msg("failed to discard undelivered reset token")
		}
		return fmt.Errorf("forgot password: send mail: %w", err)
	}

	metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()
	s.log.Info().Str("admin_id", admin.ID).Msg("password reset requested")
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < minPasswordLength {
		return domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if token == "" {
		return domain.ErrResetTokenInvalid
	}

	adminID, err := s.recovery.Store.Lookup(ctx, hashResetToken(token))
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	if _, err := s.admins.FindByID(ctx, adminID); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("reset password: hash: %w", err)
	}
	if _, err := s.admins.Update(ctx, adminID, ports.AdminUpdate{PasswordHash: &hash}); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	if err := s.recovery.Store.Delete(ctx, adminID); err != nil {
		s.log.Warn().Err(err).Str("admin_id", adminID).Msg("failed to consume reset token")
	}

	metrics.PasswordResetsTotal.WithLabelValues("completed").Inc()
	s.log.Info().Str("admin_id", adminID).Msg("password reset completed")
	return nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
