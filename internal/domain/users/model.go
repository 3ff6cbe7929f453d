package users

import (
	"encoding/json"
	"time"

	"epaw/internal/domain/shared"
)

// Role define qué pantallas y acciones ve el usuario. No cambia después del registro.
type Role string

const (
	RoleUser         Role = "user"
	RoleOrganization Role = "organization"
	RoleVeterinary   Role = "veterinary"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleOrganization, RoleVeterinary:
		return true
	}
	return false
}

func (r Role) Label() string {
	switch r {
	case RoleOrganization:
		return "Organización"
	case RoleVeterinary:
		return "Veterinaria"
	default:
		return "Usuario"
	}
}

type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

type OrganizationDetails struct {
	OrganizationName string       `json:"organizationName,omitempty"`
	Description      string       `json:"description,omitempty"`
	Website          string       `json:"website,omitempty"`
	SocialMedia      *SocialMedia `json:"socialMedia,omitempty"`
	LogoURL          string       `json:"logoUrl,omitempty"`
	Capacity         *int         `json:"capacity,omitempty"`
	CurrentAnimals   *int         `json:"currentAnimals,omitempty"`
	TotalRescues     *int         `json:"totalRescues,omitempty"`
}

type VeterinaryDetails struct {
	ClinicName        string           `json:"clinicName,omitempty"`
	LicenseNumber     string           `json:"licenseNumber,omitempty"`
	Specialties       []string         `json:"specialties,omitempty"`
	Location          *shared.GeoPoint `json:"location,omitempty"`
	LocationAddress   string           `json:"locationAddress,omitempty"`
	BusinessHours     string           `json:"businessHours,omitempty"`
	TotalCasesHandled *int             `json:"totalCasesHandled,omitempty"`
	Rating            *float64         `json:"rating,omitempty"`
}

// User es el perfil devuelto por /api/auth/* y /api/veterinaries/{id}.
type User struct {
	ID              shared.ID            `json:"id"`
	Email           string               `json:"email"`
	Name            string               `json:"name"`
	Role            Role                 `json:"role"`
	Verified        *bool                `json:"verified,omitempty"`
	Phone           string               `json:"phone,omitempty"`
	Address         string               `json:"address,omitempty"`
	ProfilePhotoURL string               `json:"profilePhotoUrl,omitempty"`
	IsActive        *bool                `json:"isActive,omitempty"`
	Organization    *OrganizationDetails `json:"organizationDetails,omitempty"`
	Veterinary      *VeterinaryDetails   `json:"veterinaryDetails,omitempty"`
	CreatedAt       *time.Time           `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time           `json:"updatedAt,omitempty"`
}

// DisplayName prefiere el nombre de organización o clínica si existe.
func (u User) DisplayName() string {
	if u.Organization != nil && u.Organization.OrganizationName != "" {
		return u.Organization.OrganizationName
	}
	if u.Veterinary != nil && u.Veterinary.ClinicName != "" {
		return u.Veterinary.ClinicName
	}
	return u.Name
}

// UnmarshalJSON acepta "id" o "_id" según el endpoint.
func (u *User) UnmarshalJSON(b []byte) error {
	type alias User
	aux := struct {
		*alias
		MongoID shared.ID `json:"_id"`
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}
