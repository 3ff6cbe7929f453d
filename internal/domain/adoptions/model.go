package adoptions

import (
	"time"

	"epaw/internal/domain/shared"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
)

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pendiente"
	case StatusUnderReview:
		return "En Revisión"
	case StatusApproved:
		return "Aprobada"
	case StatusRejected:
		return "Rechazada"
	case StatusCompleted:
		return "Completada"
	case StatusCancelled:
		return "Cancelada"
	}
	return string(s)
}

// IsFinal: rechazada, cancelada o completada ya no se tocan desde la UI.
func (s Status) IsFinal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

type HomeType string

const (
	HomeHouse     HomeType = "house"
	HomeApartment HomeType = "apartment"
	HomeFarm      HomeType = "farm"
	HomeOther     HomeType = "other"
)

func (h HomeType) Label() string {
	switch h {
	case HomeHouse:
		return "Casa"
	case HomeApartment:
		return "Apartamento"
	case HomeFarm:
		return "Granja"
	case HomeOther:
		return "Otro"
	}
	return string(h)
}

// AdopterInfo es el cuestionario que llena quien aplica.
type AdopterInfo struct {
	HasExperience     bool     `json:"hasExperience"`
	ExperienceDetails *string  `json:"experienceDetails,omitempty"`
	HasOtherPets      bool     `json:"hasOtherPets"`
	OtherPetsDetails  *string  `json:"otherPetsDetails,omitempty"`
	HomeType          HomeType `json:"homeType"`
	HasYard           bool     `json:"hasYard"`
	HouseholdMembers  int      `json:"householdMembers"`
	HouseholdDetails  *string  `json:"householdDetails,omitempty"`
	WorkSchedule      *string  `json:"workSchedule,omitempty"`
	ReasonForAdoption *string  `json:"reasonForAdoption,omitempty"`
}

type AnimalDetails struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Species   string   `json:"species,omitempty"`
	Breed     string   `json:"breed,omitempty"`
	PhotoURLs []string `json:"photoUrls,omitempty"`
	Status    string   `json:"status,omitempty"`
}

type OrganizationProfile struct {
	OrganizationName string `json:"organizationName,omitempty"`
	Description      string `json:"description,omitempty"`
	LogoURL          string `json:"logoUrl,omitempty"`
	Website          string `json:"website,omitempty"`
	Capacity         *int   `json:"capacity,omitempty"`
	CurrentAnimals   *int   `json:"currentAnimals,omitempty"`
}

type UserDetails struct {
	ID                  string               `json:"_id"`
	Name                string               `json:"name"`
	Email               string               `json:"email,omitempty"`
	Phone               string               `json:"phone,omitempty"`
	ProfilePhotoURL     string               `json:"profilePhotoUrl,omitempty"`
	OrganizationDetails *OrganizationProfile `json:"organizationDetails,omitempty"`
}

// Adoption es una solicitud de adopción.
type Adoption struct {
	ID                 shared.ID                 `json:"_id"`
	Animal             shared.Ref[AnimalDetails] `json:"animalId,omitzero"`
	Adopter            shared.Ref[UserDetails]   `json:"adopterId,omitzero"`
	Organization       shared.Ref[UserDetails]   `json:"organizationId,omitzero"`
	ApplicationMessage string                    `json:"applicationMessage"`
	AdopterInfo        AdopterInfo               `json:"adopterInfo"`
	Status             Status                    `json:"status"`
	ReviewNotes        string                    `json:"reviewNotes,omitempty"`
	RejectionReason    string                    `json:"rejectionReason,omitempty"`
	AppliedAt          *time.Time                `json:"appliedAt,omitempty"`
	ReviewedAt         *time.Time                `json:"reviewedAt,omitempty"`
	CompletedAt        *time.Time                `json:"completedAt,omitempty"`
	CreatedAt          time.Time                 `json:"createdAt"`
	UpdatedAt          time.Time                 `json:"updatedAt"`
}

type SubmitRequest struct {
	AnimalID           string      `json:"animalId"`
	ApplicationMessage string      `json:"applicationMessage"`
	AdopterInfo        AdopterInfo `json:"adopterInfo"`
}

// UpdateStatusRequest: solo viajan los campos no-nil.
type UpdateStatusRequest struct {
	Status          Status  `json:"status"`
	ReviewNotes     *string `json:"reviewNotes,omitempty"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
}
