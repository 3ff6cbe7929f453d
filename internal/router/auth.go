package router

import (
	"errors"
	"net/http"
	"strings"

	domauth "epaw/internal/domain/auth"
	"epaw/internal/domain/shared"
	"epaw/internal/domain/users"
	"epaw/internal/ports/auth"
	"epaw/internal/ports/storage"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// account es lo que se guarda en users: el perfil público + el hash.
type account struct {
	User         users.User `json:"user"`
	PasswordHash string     `json:"passwordHash"`
}

var errEmailTaken = errors.New("email already registered")

func registerAuthRoutes(r chi.Router, a *api) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(a))
		ar.Post("/login", loginHandler(a))
		ar.Get("/me", meHandler(a))
		ar.Put("/profile", updateProfileHandler(a))
		ar.Put("/change-password", changePasswordHandler(a))
	})
}

func registerHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in domauth.RegisterRequest
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		in.Email = strings.ToLower(strings.TrimSpace(in.Email))
		in.Name = strings.TrimSpace(in.Name)
		if in.Email == "" || in.Name == "" || len(in.Password) < minPasswordLen {
			writeError(w, http.StatusBadRequest, "Email, nombre y contraseña (mínimo 6 caracteres) son requeridos")
			return
		}
		if in.Role == "" {
			in.Role = users.RoleUser
		}
		if !in.Role.Valid() {
			writeError(w, http.StatusBadRequest, "Rol inválido")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, msgInternal)
			return
		}

		now := a.timestamp()
		acc := account{
			User: users.User{
				ID:              shared.ID(shared.NewID()),
				Email:           in.Email,
				Name:            in.Name,
				Role:            in.Role,
				Phone:           in.Phone,
				Address:         in.Address,
				ProfilePhotoURL: in.ProfilePhotoURL,
				CreatedAt:       &now,
				UpdatedAt:       &now,
			},
			PasswordHash: string(hash),
		}
		switch in.Role {
		case users.RoleOrganization:
			acc.User.Organization = &users.OrganizationDetails{
				OrganizationName: in.OrganizationName,
				Description:      in.Description,
				Website:          in.Website,
				LogoURL:          in.LogoURL,
				Capacity:         in.Capacity,
			}
		case users.RoleVeterinary:
			vet := &users.VeterinaryDetails{
				ClinicName:      in.ClinicName,
				LicenseNumber:   in.LicenseNumber,
				Specialties:     in.Specialties,
				LocationAddress: in.LocationAddress,
				BusinessHours:   in.BusinessHours,
			}
			if in.Latitude != nil && in.Longitude != nil {
				p := shared.NewPoint(*in.Latitude, *in.Longitude)
				vet.Location = &p
			}
			acc.User.Veterinary = vet
		}

		if err := a.createAccount(r, acc); err != nil {
			if errors.Is(err, errEmailTaken) {
				writeError(w, http.StatusBadRequest, "El email ya está registrado")
				return
			}
			a.storeError(w, r, err, "")
			return
		}

		a.writeSession(w, http.StatusCreated, acc.User, "Usuario registrado exitosamente")
	}
}

func loginHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in domauth.LoginRequest
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		acc, err := a.accountByEmail(r, in.Email)
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Credenciales inválidas")
			return
		}
		if err != nil {
			a.storeError(w, r, err, "")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(in.Password)) != nil {
			writeError(w, http.StatusUnauthorized, "Credenciales inválidas")
			return
		}

		a.writeSession(w, http.StatusOK, acc.User, "Inicio de sesión exitoso")
	}
}

func meHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireClaims(w, r)
		if !ok {
			return
		}
		acc, err := a.account(r, c.UserID)
		if err != nil {
			a.storeError(w, r, err, "Usuario no encontrado")
			return
		}
		writeData(w, http.StatusOK, acc.User)
	}
}

func updateProfileHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireClaims(w, r)
		if !ok {
			return
		}
		var in domauth.UpdateProfileRequest
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		acc, err := a.account(r, c.UserID)
		if err != nil {
			a.storeError(w, r, err, "Usuario no encontrado")
			return
		}

		applyProfile(&acc.User, in)
		now := a.timestamp()
		acc.User.UpdatedAt = &now

		if err := storage.Save(r.Context(), a.store, storage.Users, acc.User.ID.String(), acc); err != nil {
			a.storeError(w, r, err, "")
			return
		}
		writeDataMessage(w, http.StatusOK, acc.User, "Perfil actualizado")
	}
}

func changePasswordHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireClaims(w, r)
		if !ok {
			return
		}
		var in domauth.ChangePasswordRequest
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		if len(in.NewPassword) < minPasswordLen {
			writeError(w, http.StatusBadRequest, "La nueva contraseña debe tener al menos 6 caracteres")
			return
		}

		acc, err := a.account(r, c.UserID)
		if err != nil {
			a.storeError(w, r, err, "Usuario no encontrado")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(in.CurrentPassword)) != nil {
			writeError(w, http.StatusBadRequest, "La contraseña actual es incorrecta")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		acc.PasswordHash = string(hash)
		if err := storage.Save(r.Context(), a.store, storage.Users, acc.User.ID.String(), acc); err != nil {
			a.storeError(w, r, err, "")
			return
		}
		writeDataMessage(w, http.StatusOK, nil, "Contraseña actualizada exitosamente")
	}
}

func (a *api) writeSession(w http.ResponseWriter, status int, u users.User, msg string) {
	token, err := a.tokens.Issue(auth.Claims{
		UserID: u.ID.String(),
		Email:  u.Email,
		Role:   string(u.Role),
	})
	if err != nil {
		a.log.Error("issue token failed", map[string]any{"error": err})
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	writeDataMessage(w, status, domauth.Session{Token: token, User: u}, msg)
}

func (a *api) account(r *http.Request, id string) (account, error) {
	var acc account
	err := storage.Load(r.Context(), a.store, storage.Users, id, &acc)
	return acc, err
}

func (a *api) accounts(r *http.Request) ([]account, error) {
	return storage.All[account](r.Context(), a.store, storage.Users)
}

func (a *api) accountByEmail(r *http.Request, email string) (account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	all, err := a.accounts(r)
	if err != nil {
		return account{}, err
	}
	for _, acc := range all {
		if acc.User.Email == email {
			return acc, nil
		}
	}
	return account{}, storage.ErrNotFound
}

// createAccount no es atómico entre el chequeo y el alta; alcanza para el sandbox.
func (a *api) createAccount(r *http.Request, acc account) error {
	_, err := a.accountByEmail(r, acc.User.Email)
	switch {
	case err == nil:
		return errEmailTaken
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}
	return storage.Save(r.Context(), a.store, storage.Users, acc.User.ID.String(), acc)
}

func applyProfile(u *users.User, in domauth.UpdateProfileRequest) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&u.Name, in.Name)
	set(&u.Phone, in.Phone)
	set(&u.Address, in.Address)
	set(&u.ProfilePhotoURL, in.ProfilePhotoURL)

	switch u.Role {
	case users.RoleOrganization:
		if u.Organization == nil {
			u.Organization = &users.OrganizationDetails{}
		}
		o := u.Organization
		set(&o.OrganizationName, in.OrganizationName)
		set(&o.Description, in.Description)
		set(&o.Website, in.Website)
		set(&o.LogoURL, in.LogoURL)
		if in.Capacity != nil {
			o.Capacity = in.Capacity
		}
		if in.Facebook != nil || in.Instagram != nil || in.Twitter != nil {
			if o.SocialMedia == nil {
				o.SocialMedia = &users.SocialMedia{}
			}
			set(&o.SocialMedia.Facebook, in.Facebook)
			set(&o.SocialMedia.Instagram, in.Instagram)
			set(&o.SocialMedia.Twitter, in.Twitter)
		}
	case users.RoleVeterinary:
		if u.Veterinary == nil {
			u.Veterinary = &users.VeterinaryDetails{}
		}
		v := u.Veterinary
		set(&v.ClinicName, in.ClinicName)
		set(&v.LicenseNumber, in.LicenseNumber)
		set(&v.LocationAddress, in.LocationAddress)
		set(&v.BusinessHours, in.BusinessHours)
		if in.Specialties != nil {
			v.Specialties = *in.Specialties
		}
		if in.Latitude != nil && in.Longitude != nil {
			p := shared.NewPoint(*in.Latitude, *in.Longitude)
			v.Location = &p
		}
	}
}
