package router

import (
	"net/http"
	"strings"

	"epaw/internal/domain/adoptions"
	"epaw/internal/domain/animals"
	"epaw/internal/domain/shared"
	"epaw/internal/domain/users"
	"epaw/internal/ports/storage"

	"github.com/go-chi/chi/v5"
)

const (
	msgAdoptionNotFound = "Solicitud no encontrada"
	msgAnimalNotFound   = "Animal no encontrado"
)

func registerAdoptionRoutes(r chi.Router, a *api) {
	r.Route("/adoptions", func(ar chi.Router) {
		ar.Post("/", submitAdoptionHandler(a))
		ar.Get("/my-applications", myApplicationsHandler(a))
		ar.Get("/organization/{orgID}", organizationApplicationsHandler(a))
		ar.Get("/animal/{animalID}", animalApplicationsHandler(a))
		ar.Get("/{adoptionID}", getAdoptionHandler(a))
		ar.Put("/{adoptionID}/status", updateAdoptionStatusHandler(a))
		ar.Put("/{adoptionID}/cancel", cancelAdoptionHandler(a))
	})
}

func submitAdoptionHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireClaims(w, r)
		if !ok {
			return
		}
		var in adoptions.SubmitRequest
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		in.AnimalID = strings.TrimSpace(in.AnimalID)
		in.ApplicationMessage = strings.TrimSpace(in.ApplicationMessage)
		if in.AnimalID == "" || in.ApplicationMessage == "" {
			writeError(w, http.StatusBadRequest, "Animal y mensaje son requeridos")
			return
		}

		var an animals.Animal
		if err := storage.Load(r.Context(), a.store, storage.Animals, in.AnimalID, &an); err != nil {
			a.storeError(w, r, err, msgAnimalNotFound)
			return
		}
		if an.IsDeleted || an.Status != animals.StatusAvailable {
			writeError(w, http.StatusBadRequest, "El animal no está disponible para adopción")
			return
		}

		all, err := storage.All[adoptions.Adoption](r.Context(), a.store, storage.Adoptions)
		if err != nil {
			a.storeError(w, r, err, "")
			return
		}
		for _, ad := range all {
			if ad.Animal.ID == in.AnimalID && ad.Adopter.ID == c.UserID && !ad.Status.IsFinal() {
				writeError(w, http.StatusBadRequest, "Ya tienes una solicitud activa para este animal")
				return
			}
		}

		now := a.timestamp()
		ad := adoptions.Adoption{
			ID:                 shared.ID(shared.NewID()),
			Animal:             shared.RefTo[adoptions.AnimalDetails](in.AnimalID),
			Adopter:            shared.RefTo[adoptions.UserDetails](c.UserID),
			Organization:       shared.RefTo[adoptions.UserDetails](an.Organization.ID),
			ApplicationMessage: in.ApplicationMessage,
			AdopterInfo:        in.AdopterInfo,
			Status:             adoptions.StatusPending,
			AppliedAt:          &now,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := storage.Save(r.Context(), a.store, storage.Adoptions, ad.ID.String(), ad); err != nil {
			a.storeError(w, r, err, "")
			return
		}
		writeDataMessage(w, http.StatusCreated, ad, "Solicitud enviada exitosamente")
	}
}

func myApplicationsHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireClaims(w, r)
		if !ok {
			return
		}
		status := adoptions.Status(r.URL.Query().Get("status"))
		a.writeAdoptions(w, r, adoptions.DefaultLimit, func(ad adoptions.Adoption) bool {
			return ad.Adopter.ID == c.UserID && (status == "" || ad.Status == status)
		})
	}
}

func organizationApplicationsHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireRole(w, r, users.RoleOrganization)
		if !ok {
			return
		}
		orgID := chi.URLParam(r, "orgID")
		if orgID != c.UserID {
			writeError(w, http.StatusForbidden, msgForbidden)
			return
		}
		status := adoptions.Status(r.URL.Query().Get("status"))
		a.writeAdoptions(w, r, adoptions.DefaultOrganizationLimit, func(ad adoptions.Adoption) bool {
			return ad.Organization.ID == orgID && (status == "" || ad.Status == status)
		})
	}
}

func (a *api) writeAdoptions(w http.ResponseWriter, r *http.Request, limit int, keep func(adoptions.Adoption) bool) {
	all, err := storage.All[adoptions.Adoption](r.Context(), a.store, storage.Adoptions)
	if err != nil {
		a.storeError(w, r, err, "")
		return
	}
	items, p := paginate(r, newestFirst(where(all, keep)), limit)
	writePage(w, items, p)
}

func animalApplicationsHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireClaims(w, r); !ok {
			return
		}
		animalID := chi.URLParam(r, "animalID")
		all, err := storage.All[adoptions.Adoption](r.Context(), a.store, storage.Adoptions)
		if err != nil {
			a.storeError(w, r, err, "")
			return
		}
		writeData(w, http.StatusOK, newestFirst(where(all, func(ad adoptions.Adoption) bool {
			return ad.Animal.ID == animalID
		})))
	}
}

func getAdoptionHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireClaims(w, r)
		if !ok {
			return
		}
		var ad adoptions.Adoption
		if err := storage.Load(r.Context(), a.store, storage.Adoptions, chi.URLParam(r, "adoptionID"), &ad); err != nil {
			a.storeError(w, r, err, msgAdoptionNotFound)
			return
		}
		if ad.Adopter.ID != c.UserID && ad.Organization.ID != c.UserID {
			writeError(w, http.StatusForbidden, msgForbidden)
			return
		}
		a.populateAdoption(r, &ad)
		writeData(w, http.StatusOK, ad)
	}
}

func updateAdoptionStatusHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireRole(w, r, users.RoleOrganization)
		if !ok {
			return
		}
		var in adoptions.UpdateStatusRequest
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		switch in.Status {
		case adoptions.StatusUnderReview, adoptions.StatusApproved, adoptions.StatusRejected, adoptions.StatusCompleted:
		default:
			writeError(w, http.StatusBadRequest, "Estado inválido")
			return
		}

		id := chi.URLParam(r, "adoptionID")
		var ad adoptions.Adoption
		if err := storage.Load(r.Context(), a.store, storage.Adoptions, id, &ad); err != nil {
			a.storeError(w, r, err, msgAdoptionNotFound)
			return
		}
		if ad.Organization.ID != c.UserID {
			writeError(w, http.StatusForbidden, msgForbidden)
			return
		}

		now := a.timestamp()
		ad.Status = in.Status
		ad.UpdatedAt = now
		if in.ReviewNotes != nil {
			ad.ReviewNotes = strings.TrimSpace(*in.ReviewNotes)
		}
		if in.RejectionReason != nil {
			ad.RejectionReason = strings.TrimSpace(*in.RejectionReason)
		}
		if in.Status == adoptions.StatusCompleted {
			ad.CompletedAt = &now
		} else {
			ad.ReviewedAt = &now
		}

		if err := storage.Save(r.Context(), a.store, storage.Adoptions, id, ad); err != nil {
			a.storeError(w, r, err, "")
			return
		}
		a.syncAnimal(r, ad)

		a.populateAdoption(r, &ad)
		writeDataMessage(w, http.StatusOK, ad, "Estado de la solicitud actualizado")
	}
}

// syncAnimal refleja la solicitud en el animal: aprobada reserva, completada adopta.
func (a *api) syncAnimal(r *http.Request, ad adoptions.Adoption) {
	var next animals.Status
	switch ad.Status {
	case adoptions.StatusApproved:
		next = animals.StatusPendingAdoption
	case adoptions.StatusCompleted:
		next = animals.StatusAdopted
	default:
		return
	}

	var an animals.Animal
	if err := storage.Load(r.Context(), a.store, storage.Animals, ad.Animal.ID, &an); err != nil {
		a.log.Warn("adoption animal missing", map[string]any{"adoption_id": ad.ID.String(), "error": err})
		return
	}
	an.Status = next
	an.UpdatedAt = &ad.UpdatedAt
	if next == animals.StatusAdopted {
		an.AdoptedAt = ad.CompletedAt
	}
	if err := storage.Save(r.Context(), a.store, storage.Animals, an.ID.String(), an); err != nil {
		a.log.Error("animal sync failed", map[string]any{"animal_id": an.ID.String(), "error": err})
	}
}

func cancelAdoptionHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireClaims(w, r)
		if !ok {
			return
		}
		id := chi.URLParam(r, "adoptionID")
		var ad adoptions.Adoption
		if err := storage.Load(r.Context(), a.store, storage.Adoptions, id, &ad); err != nil {
			a.storeError(w, r, err, msgAdoptionNotFound)
			return
		}
		if ad.Adopter.ID != c.UserID {
			writeError(w, http.StatusForbidden, msgForbidden)
			return
		}
		if ad.Status != adoptions.StatusPending && ad.Status != adoptions.StatusUnderReview {
			writeError(w, http.StatusBadRequest, "No puedes cancelar esta solicitud")
			return
		}

		ad.Status = adoptions.StatusCancelled
		ad.UpdatedAt = a.timestamp()
		if err := storage.Save(r.Context(), a.store, storage.Adoptions, id, ad); err != nil {
			a.storeError(w, r, err, "")
			return
		}
		writeDataMessage(w, http.StatusOK, ad, "Solicitud cancelada")
	}
}
