package session

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/anonto42/threads-go-client/internal/api"
	"github.com/anonto42/threads-go-client/internal/models"
)

// Manager drives the authentication lifecycle: login, registration, logout,
// restoring a persisted token on startup, and profile updates that may rotate
// the token.
type Manager struct {
	session  *Session
	auth     api.AuthAPI
	users    api.UserAPI
	store    Store
	validate *validator.Validate
	logger   *zap.Logger

	// onAuthChange runs after login, logout and restore so the owner can
	// drop caches whose per-viewer projections are now stale.
	onAuthChange func()
}

// NewManager creates a new Manager
func NewManager(session *Session, auth api.AuthAPI, users api.UserAPI, store Store, logger *zap.Logger) *Manager {
	return &Manager{
		session:  session,
		auth:     auth,
		users:    users,
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

// OnAuthChange registers a callback fired whenever the active principal changes
func (m *Manager) OnAuthChange(fn func()) {
	m.onAuthChange = fn
}

func (m *Manager) authChanged() {
	if m.onAuthChange != nil {
		m.onAuthChange()
	}
}

// Login exchanges credentials for a token, resolves the identity and
// persists the token for future runs.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	req := models.LoginRequest{Email: email, Password: password}
	if err := m.validate.Struct(req); err != nil {
		return nil, err
	}

	token, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	// Install the token first so the identity lookup is authorized
	m.session.SetToken(token.AccessToken)
	user, err := m.auth.CurrentUser(ctx)
	if err != nil {
		m.session.Clear()
		return nil, fmt.Errorf("resolving logged-in user: %w", err)
	}
	m.session.SetUser(user)

	if err := m.store.Save(token.AccessToken); err != nil {
		m.logger.Warn("could not persist token", zap.Error(err))
	}
	m.logger.Info("logged in", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	m.authChanged()
	return user, nil
}

// Register creates an account and then logs in with the same credentials,
// matching the reference client's register-then-login flow.
func (m *Manager) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	req := models.RegisterRequest{Username: username, Email: email, Password: password}
	if err := m.validate.Struct(req); err != nil {
		return nil, err
	}

	if _, err := m.auth.Register(ctx, username, email, password); err != nil {
		return nil, err
	}
	return m.Login(ctx, email, password)
}

// Logout drops the credential locally. No server call is involved; the token
// simply stops being presented.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return err
	}
	m.session.Clear()
	m.logger.Info("logged out")
	m.authChanged()
	return nil
}

// Restore loads a persisted token and revalidates it against the server.
// An expired or rejected token is removed, leaving the viewer anonymous.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}
	if Expired(token) {
		m.logger.Info("stored token expired, discarding")
		return m.store.Clear()
	}

	m.session.SetToken(token)
	user, err := m.auth.CurrentUser(ctx)
	if err != nil {
		m.session.Clear()
		if api.IsUnauthorized(err) {
			m.logger.Info("stored token rejected, discarding")
			return m.store.Clear()
		}
		return err
	}
	m.session.SetUser(user)
	m.logger.Info("session restored", zap.Uint("user_id", user.ID))
	m.authChanged()
	return nil
}

// UpdateMe updates the authenticated user's profile. A rotated token in the
// response is installed and persisted.
func (m *Manager) UpdateMe(ctx context.Context, req models.UpdateUserRequest) (*models.User, error) {
	if !m.session.Authenticated() {
		return nil, ErrNoSession
	}
	if err := m.validate.Struct(req); err != nil {
		return nil, err
	}

	resp, err := m.users.UpdateMe(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken != nil && *resp.AccessToken != "" {
		m.session.SetToken(*resp.AccessToken)
		if err := m.store.Save(*resp.AccessToken); err != nil {
			m.logger.Warn("could not persist rotated token", zap.Error(err))
		}
	}
	user := resp.User
	m.session.SetUser(&user)
	return &user, nil
}

// UploadAvatar replaces the authenticated user's avatar
func (m *Manager) UploadAvatar(ctx context.Context, file api.Upload) (*models.User, error) {
	if !m.session.Authenticated() {
		return nil, ErrNoSession
	}
	user, err := m.users.UploadAvatar(ctx, file)
	if err != nil {
		return nil, err
	}
	m.session.SetUser(user)
	return user, nil
}

// DeleteAvatar removes the authenticated user's avatar
func (m *Manager) DeleteAvatar(ctx context.Context) error {
	if !m.session.Authenticated() {
		return ErrNoSession
	}
	if err := m.users.DeleteAvatar(ctx); err != nil {
		return err
	}
	if user := m.session.CurrentUser(); user != nil {
		updated := *user
		updated.AvatarURL = nil
		m.session.SetUser(&updated)
	}
	return nil
}
