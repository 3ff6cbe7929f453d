package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"epaw/internal/domain/users"
	"epaw/internal/platform/envelope"
	"epaw/internal/platform/httpclient"
	"epaw/internal/platform/logger"
	"epaw/internal/ports/session"
)

const (
	pathRegister       = "/api/auth/register"
	pathLogin          = "/api/auth/login"
	pathMe             = "/api/auth/me"
	pathProfile        = "/api/auth/profile"
	pathChangePassword = "/api/auth/change-password"
)

var (
	ErrInvalidInput = httpclient.ErrInvalidInput
	ErrEmptyToken   = errors.New("server returned an empty token")
)

type Service struct {
	http  httpclient.Doer
	store session.Store
	log   logger.Logger
}

func NewService(d httpclient.Doer, store session.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		http:  d,
		store: store,
		log:   log.With(map[string]any{"service": "auth"}),
	}
}

func (s *Service) RegisterUser(ctx context.Context, in RegisterRequest) (Session, error) {
	in.Role = users.RoleUser
	return s.register(ctx, in)
}

func (s *Service) RegisterOrganization(ctx context.Context, in RegisterRequest) (Session, error) {
	in.Role = users.RoleOrganization
	if strings.TrimSpace(in.OrganizationName) == "" {
		return Session{}, ErrInvalidInput
	}
	return s.register(ctx, in)
}

func (s *Service) RegisterVeterinary(ctx context.Context, in RegisterRequest) (Session, error) {
	in.Role = users.RoleVeterinary
	if strings.TrimSpace(in.ClinicName) == "" {
		return Session{}, ErrInvalidInput
	}
	return s.register(ctx, in)
}

func (s *Service) register(ctx context.Context, in RegisterRequest) (Session, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || in.Name == "" || in.Password == "" {
		return Session{}, ErrInvalidInput
	}

	sess, err := envelope.Get[Session](ctx, s.http, http.MethodPost, pathRegister, in)
	if err != nil {
		return Session{}, err
	}
	if err := s.persist(sess); err != nil {
		return Session{}, err
	}
	s.log.Info("registered", map[string]any{"user_id": sess.User.ID.String(), "role": string(sess.User.Role)})
	return sess, nil
}

// Login guarda el token en el session store antes de devolver.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, ErrInvalidInput
	}

	sess, err := envelope.Get[Session](ctx, s.http, http.MethodPost, pathLogin, LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return Session{}, err
	}
	if err := s.persist(sess); err != nil {
		return Session{}, err
	}
	s.log.Info("logged in", map[string]any{"user_id": sess.User.ID.String(), "role": string(sess.User.Role)})
	return sess, nil
}

func (s *Service) CurrentUser(ctx context.Context) (users.User, error) {
	return envelope.Get[users.User](ctx, s.http, http.MethodGet, pathMe, nil)
}

// UpdateProfile manda solo los campos no-nil.
func (s *Service) UpdateProfile(ctx context.Context, in UpdateProfileRequest) (users.User, error) {
	u, err := envelope.Get[users.User](ctx, s.http, http.MethodPut, pathProfile, in)
	if err != nil {
		return users.User{}, err
	}
	if s.store != nil {
		if err := s.store.SaveIdentity(identityOf(u)); err != nil {
			s.log.Warn("could not refresh stored identity", map[string]any{"err": err})
		}
	}
	return u, nil
}

func (s *Service) ChangePassword(ctx context.Context, current, next string) error {
	if current == "" || next == "" {
		return ErrInvalidInput
	}
	_, err := envelope.GetOptional[struct{}](ctx, s.http, http.MethodPut, pathChangePassword, ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	})
	return err
}

// Logout solo limpia el session store; el estado en memoria es de quien llama.
func (s *Service) Logout() error {
	if s.store == nil {
		return nil
	}
	return s.store.Clear()
}

func (s *Service) IsLoggedIn() bool {
	return s.store != nil && s.store.IsActive()
}

// Identity devuelve los datos guardados junto al token.
func (s *Service) Identity() (session.Identity, bool) {
	if s.store == nil {
		return session.Identity{}, false
	}
	return s.store.ReadIdentity()
}

func (s *Service) persist(sess Session) error {
	if strings.TrimSpace(sess.Token) == "" {
		return ErrEmptyToken
	}
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(sess.Token); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := s.store.SaveIdentity(identityOf(sess.User)); err != nil {
		s.log.Warn("could not store identity", map[string]any{"err": err})
	}
	return nil
}

func identityOf(u users.User) session.Identity {
	return session.Identity{
		UserID: u.ID.String(),
		Email:  u.Email,
		Name:   u.Name,
		Role:   string(u.Role),
	}
}
