package auth

import "epaw/internal/domain/users"

// Session es lo que devuelven login y register.
type Session struct {
	Token string     `json:"token"`
	User  users.User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest es un solo shape para los tres roles; el rol lo fija el método usado.
type RegisterRequest struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Name     string     `json:"name"`
	Role     users.Role `json:"role,omitempty"`
	Phone    string     `json:"phone,omitempty"`
	Address  string     `json:"address,omitempty"`

	// Organización
	OrganizationName string `json:"organizationName,omitempty"`
	Description      string `json:"description,omitempty"`
	Website          string `json:"website,omitempty"`
	Capacity         *int   `json:"capacity,omitempty"`
	LogoURL          string `json:"logoUrl,omitempty"`

	// Veterinaria
	ClinicName      string   `json:"clinicName,omitempty"`
	LicenseNumber   string   `json:"licenseNumber,omitempty"`
	Specialties     []string `json:"specialties,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	LocationAddress string   `json:"locationAddress,omitempty"`
	BusinessHours   string   `json:"businessHours,omitempty"`

	ProfilePhotoURL string `json:"profilePhotoUrl,omitempty"`
}

// UpdateProfileRequest: nil = no se envía.
type UpdateProfileRequest struct {
	Name            *string `json:"name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Address         *string `json:"address,omitempty"`
	ProfilePhotoURL *string `json:"profilePhotoUrl,omitempty"`

	OrganizationName *string `json:"organizationName,omitempty"`
	Description      *string `json:"description,omitempty"`
	Website          *string `json:"website,omitempty"`
	LogoURL          *string `json:"logoUrl,omitempty"`
	Capacity         *int    `json:"capacity,omitempty"`
	Facebook         *string `json:"facebook,omitempty"`
	Instagram        *string `json:"instagram,omitempty"`
	Twitter          *string `json:"twitter,omitempty"`

	ClinicName      *string   `json:"clinicName,omitempty"`
	LicenseNumber   *string   `json:"licenseNumber,omitempty"`
	Specialties     *[]string `json:"specialties,omitempty"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	LocationAddress *string   `json:"locationAddress,omitempty"`
	BusinessHours   *string   `json:"businessHours,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
