package animals

import (
	"time"

	"epaw/internal/domain/shared"
	"epaw/internal/domain/users"
)

type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesBird   Species = "bird"
	SpeciesRabbit Species = "rabbit"
	SpeciesOther  Species = "other"
)

func (s Species) Label() string {
	switch s {
	case SpeciesDog:
		return "Perro"
	case SpeciesCat:
		return "Gato"
	case SpeciesBird:
		return "Ave"
	case SpeciesRabbit:
		return "Conejo"
	case SpeciesOther:
		return "Otro"
	}
	return string(s)
}

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Macho"
	case GenderFemale:
		return "Hembra"
	}
	return "Desconocido"
}

type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

func (s Size) Label() string {
	switch s {
	case SizeSmall:
		return "Pequeño"
	case SizeMedium:
		return "Mediano"
	case SizeLarge:
		return "Grande"
	}
	return string(s)
}

type Status string

const (
	StatusAvailable       Status = "available"
	StatusPendingAdoption Status = "pending_adoption"
	StatusAdopted         Status = "adopted"
	StatusDeceased        Status = "deceased"
)

func (s Status) Label() string {
	switch s {
	case StatusAvailable:
		return "Disponible"
	case StatusPendingAdoption:
		return "Adopción Pendiente"
	case StatusAdopted:
		return "Adoptado"
	case StatusDeceased:
		return "Fallecido"
	}
	return string(s)
}

type HealthInfo struct {
	IsVaccinated bool   `json:"isVaccinated"`
	IsSterilized bool   `json:"isSterilized"`
	IsDewormed   bool   `json:"isDewormed"`
	MedicalNotes string `json:"medicalNotes,omitempty"`
}

type ReportSummary struct {
	ID              string `json:"_id"`
	LocationAddress string `json:"locationAddress,omitempty"`
	UrgencyLevel    string `json:"urgencyLevel,omitempty"`
	Description     string `json:"description,omitempty"`
}

type OrganizationSummary struct {
	ID                  string                     `json:"_id"`
	Name                string                     `json:"name,omitempty"`
	Email               string                     `json:"email,omitempty"`
	Phone               string                     `json:"phone,omitempty"`
	OrganizationDetails *users.OrganizationDetails `json:"organizationDetails,omitempty"`
}

// Animal es un animal publicado por una organización, normalmente a partir de un reporte.
type Animal struct {
	ID                shared.ID                       `json:"_id"`
	Report            shared.Ref[ReportSummary]       `json:"reportId,omitzero"`
	Organization      shared.Ref[OrganizationSummary] `json:"organizationId,omitzero"`
	Name              string                          `json:"name"`
	Species           Species                         `json:"species"`
	Breed             string                          `json:"breed,omitempty"`
	Gender            Gender                          `json:"gender"`
	AgeEstimate       string                          `json:"ageEstimate,omitempty"`
	Size              Size                            `json:"size"`
	Color             string                          `json:"color,omitempty"`
	Story             string                          `json:"story,omitempty"`
	PersonalityTraits []string                        `json:"personalityTraits,omitempty"`
	SpecialNeeds      string                          `json:"specialNeeds,omitempty"`
	PhotoURLs         []string                        `json:"photoUrls"`
	VideoURL          string                          `json:"videoUrl,omitempty"`
	Status            Status                          `json:"status"`
	HealthInfo        *HealthInfo                     `json:"healthInfo,omitempty"`
	AdoptedAt         *time.Time                      `json:"adoptedAt,omitempty"`
	IsDeleted         bool                            `json:"isDeleted,omitempty"`
	CreatedAt         *time.Time                      `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time                      `json:"updatedAt,omitempty"`
}

// CreateRequest da de alta un animal desde un reporte.
type CreateRequest struct {
	ReportID          string      `json:"reportId"`
	Name              string      `json:"name"`
	Species           Species     `json:"species"`
	Breed             *string     `json:"breed,omitempty"`
	Gender            Gender      `json:"gender"`
	AgeEstimate       *string     `json:"ageEstimate,omitempty"`
	Size              Size        `json:"size"`
	Color             *string     `json:"color,omitempty"`
	Story             *string     `json:"story,omitempty"`
	PersonalityTraits []string    `json:"personalityTraits,omitempty"`
	SpecialNeeds      *string     `json:"specialNeeds,omitempty"`
	PhotoURLs         []string    `json:"photoUrls"`
	VideoURL          *string     `json:"videoUrl,omitempty"`
	HealthInfo        *HealthInfo `json:"healthInfo,omitempty"`
}
