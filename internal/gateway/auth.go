package gateway

import (
	"context"
	"fmt"
	"strings"
)

// Login looks the username up case-insensitively and, on an exact password
// match, stores the sanitized user as the current session and returns it. A
// failed login is not an error: the returned user is nil and err remains nil.
func (g *Gateway) Login(ctx context.Context, username, password string) (user *User, err error) {
	if g == nil {
		return nil, fmt.Errorf("Gateway is nil")
	}

	logger := g.loggerWith(ctx, "Login", "username", username)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "login failed", "error", err, "error_kind", errorKind(err))
			return
		}
		if user == nil {
			logger.InfoContext(ctx, "login rejected")
			return
		}
		logger.With("user_id", user.ID).InfoContext(ctx, "login succeeded")
	}()

	if err = g.wait(ctx, delayLogin); err != nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	users, _, err := readJSON[[]User](ctx, g.store, keyUsers)
	if err != nil {
		return
	}

	for _, candidate := range users {
		if !strings.EqualFold(candidate.Username, username) {
			continue
		}
		if candidate.Password != password {
			break
		}

		sanitized := candidate.sanitized()
		if err = writeJSON(ctx, g.store, keyCurrentUser, sanitized); err != nil {
			return
		}
		g.recordAudit(ctx, candidate.Username, "login", candidate.ID, "ok", "")
		user = &sanitized
		return
	}

	g.recordAudit(ctx, username, "login", "", "no_match", "")
	return nil, nil
}

// Register creates a new account with the non-privileged role and a generated
// id, establishes the session and returns the sanitized user. When the
// username is already taken (case-insensitively) the result carries a message
// instead of a user.
func (g *Gateway) Register(ctx context.Context, name, username, password string) (result RegisterResult, err error) {
	if g == nil {
		return RegisterResult{}, fmt.Errorf("Gateway is nil")
	}

	logger := g.loggerWith(ctx, "Register", "username", username)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "registration failed", "error", err, "error_kind", errorKind(err))
			return
		}
		if !result.Registered() {
			logger.InfoContext(ctx, "registration rejected", "reason", result.Message)
			return
		}
		logger.With("user_id", result.User.ID).InfoContext(ctx, "user registered")
	}()

	if err = g.wait(ctx, delayRegister); err != nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	users, _, err := readJSON[[]User](ctx, g.store, keyUsers)
	if err != nil {
		return
	}

	for _, existing := range users {
		if strings.EqualFold(existing.Username, username) {
			g.recordAudit(ctx, username, "register", "", "duplicate_username", "")
			result = RegisterResult{Message: fmt.Sprintf("username %q is already taken", username)}
			return
		}
	}

	created := User{
		ID:       g.idGenerator(),
		Username: username,
		Password: password,
		Name:     name,
		Role:     RoleUser,
	}

	if err = writeJSON(ctx, g.store, keyUsers, append(users, created)); err != nil {
		return
	}

	sanitized := created.sanitized()
	if err = writeJSON(ctx, g.store, keyCurrentUser, sanitized); err != nil {
		return
	}

	g.recordAudit(ctx, created.Username, "register", created.ID, "ok", "")
	result = RegisterResult{User: &sanitized}
	return
}

// Logout clears the session slot. It always succeeds, even when no session
// is established.
func (g *Gateway) Logout(ctx context.Context) error {
	if g == nil {
		return fmt.Errorf("Gateway is nil")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.Delete(ctx, keyCurrentUser); err != nil {
		g.loggerWith(ctx, "Logout").ErrorContext(ctx, "failed to clear session", "error", err, "error_kind", errorKind(err))
		return err
	}

	g.recordAudit(ctx, "", "logout", "", "ok", "")
	return nil
}

// CurrentUser returns the session snapshot, or nil when nobody is logged in.
func (g *Gateway) CurrentUser(ctx context.Context) (*User, error) {
	if g == nil {
		return nil, fmt.Errorf("Gateway is nil")
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	user, ok, err := readJSON[User](ctx, g.store, keyCurrentUser)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// UpdatePassword replaces the password of the user with the given id. An
// unknown id leaves the collection unchanged and still reports success.
func (g *Gateway) UpdatePassword(ctx context.Context, userID, newPassword string) (err error) {
	if g == nil {
		return fmt.Errorf("Gateway is nil")
	}

	logger := g.loggerWith(ctx, "UpdatePassword", "user_id", userID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update password", "error", err, "error_kind", errorKind(err))
			return
		}
		logger.InfoContext(ctx, "password updated")
	}()

	if err = g.wait(ctx, delayPasswordUpdate); err != nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	users, _, err := readJSON[[]User](ctx, g.store, keyUsers)
	if err != nil {
		return
	}

	for i := range users {
		if users[i].ID == userID {
			users[i].Password = newPassword
			break
		}
	}

	err = writeJSON(ctx, g.store, keyUsers, users)
	return
}
