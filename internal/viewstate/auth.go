package viewstate

import (
	"context"

	"epaw/internal/domain/auth"
	"epaw/internal/domain/users"
	"epaw/internal/platform/logger"
)

type AuthBackend interface {
	Login(ctx context.Context, email, password string) (auth.Session, error)
	RegisterUser(ctx context.Context, in auth.RegisterRequest) (auth.Session, error)
	RegisterOrganization(ctx context.Context, in auth.RegisterRequest) (auth.Session, error)
	RegisterVeterinary(ctx context.Context, in auth.RegisterRequest) (auth.Session, error)
	CurrentUser(ctx context.Context) (users.User, error)
	UpdateProfile(ctx context.Context, in auth.UpdateProfileRequest) (users.User, error)
	ChangePassword(ctx context.Context, current, next string) error
	Logout() error
	IsLoggedIn() bool
}

var _ AuthBackend = (*auth.Service)(nil)

type AuthSnapshot struct {
	Status
	Authenticated bool
	User          *users.User
}

// AuthState guarda quién está logueado.
type AuthState struct {
	state
	svc           AuthBackend
	authenticated bool
	user          *users.User
}

// NewAuthState arranca autenticado si el store ya tiene un token.
// El usuario se completa con FetchCurrentUser.
func NewAuthState(svc AuthBackend, log logger.Logger) *AuthState {
	a := &AuthState{svc: svc, authenticated: svc.IsLoggedIn()}
	a.setup(log, "auth")
	return a
}

func (a *AuthState) Snapshot() AuthSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := AuthSnapshot{Status: a.st, Authenticated: a.authenticated}
	if a.user != nil {
		u := *a.user
		out.User = &u
	}
	return out
}

func (a *AuthState) Login(ctx context.Context, email, password string) bool {
	return a.enter("login failed", func() (auth.Session, error) {
		return a.svc.Login(ctx, email, password)
	})
}

func (a *AuthState) RegisterUser(ctx context.Context, in auth.RegisterRequest) bool {
	return a.enter("register failed", func() (auth.Session, error) {
		return a.svc.RegisterUser(ctx, in)
	})
}

func (a *AuthState) RegisterOrganization(ctx context.Context, in auth.RegisterRequest) bool {
	return a.enter("register organization failed", func() (auth.Session, error) {
		return a.svc.RegisterOrganization(ctx, in)
	})
}

func (a *AuthState) RegisterVeterinary(ctx context.Context, in auth.RegisterRequest) bool {
	return a.enter("register veterinary failed", func() (auth.Session, error) {
		return a.svc.RegisterVeterinary(ctx, in)
	})
}

func (a *AuthState) enter(msg string, call func() (auth.Session, error)) bool {
	a.start()
	sess, err := call()
	if err != nil {
		a.fail(err, msg)
		return false
	}
	a.update(func() {
		u := sess.User
		a.user = &u
		a.authenticated = true
		a.st.Loading = false
	})
	return true
}

// FetchCurrentUser refresca el perfil. Si falla, el token no sirve y se cierra la sesión.
func (a *AuthState) FetchCurrentUser(ctx context.Context) {
	u, err := a.svc.CurrentUser(ctx)
	if err != nil {
		a.log.Warn("current user failed, logging out", map[string]any{"err": err})
		a.Logout()
		return
	}
	a.update(func() {
		a.user = &u
		a.authenticated = true
	})
}

func (a *AuthState) Logout() {
	if err := a.svc.Logout(); err != nil {
		a.log.Warn("clear session", map[string]any{"err": err})
	}
	a.update(func() {
		a.user = nil
		a.authenticated = false
	})
}

func (a *AuthState) ChangePassword(ctx context.Context, current, next string) bool {
	a.start()
	if err := a.svc.ChangePassword(ctx, current, next); err != nil {
		a.fail(err, "change password failed")
		return false
	}
	a.done()
	return true
}

// UpdateProfile guarda los cambios y deja el perfil que devuelve el server.
func (a *AuthState) UpdateProfile(ctx context.Context, in auth.UpdateProfileRequest) bool {
	a.start()
	u, err := a.svc.UpdateProfile(ctx, in)
	if err != nil {
		a.fail(err, "update profile failed")
		return false
	}
	a.update(func() {
		a.user = &u
		a.st.Loading = false
	})
	return true
}
