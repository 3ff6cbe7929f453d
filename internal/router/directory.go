package router

import (
	"net/http"
	"strings"

	"epaw/internal/domain/animals"
	"epaw/internal/domain/organizations"
	"epaw/internal/domain/reports"
	"epaw/internal/domain/shared"
	"epaw/internal/domain/users"
	"epaw/internal/domain/veterinaries"
	"epaw/internal/ports/storage"

	"github.com/go-chi/chi/v5"
)

const recentLimit = 5

func registerAnimalRoutes(r chi.Router, a *api) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Get("/", listAnimalsHandler(a))
		ar.Post("/", createAnimalHandler(a))
		ar.Get("/{animalID}", getAnimalHandler(a))
	})
}

func registerOrganizationRoutes(r chi.Router, a *api) {
	r.Get("/organizations", listOrganizationsHandler(a))
	r.Get("/organizations/{orgID}/stats", organizationStatsHandler(a))
}

func registerVeterinaryRoutes(r chi.Router, a *api) {
	r.Route("/veterinaries", func(vr chi.Router) {
		vr.Get("/", listVeterinariesHandler(a))
		vr.Get("/search", searchVeterinariesHandler(a))
		vr.Get("/nearby", nearbyVeterinariesHandler(a))
		vr.Get("/{vetID}", getVeterinaryHandler(a))
	})
}

// Animales

func listAnimalsHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := animals.Status(r.URL.Query().Get("status"))
		if status == "" {
			status = animals.StatusAvailable
		}
		orgID := r.URL.Query().Get("organizationId")

		all, err := storage.All[animals.Animal](r.Context(), a.store, storage.Animals)
		if err != nil {
			a.storeError(w, r, err, "")
			return
		}
		writeData(w, http.StatusOK, newestFirst(where(all, func(an animals.Animal) bool {
			return !an.IsDeleted && an.Status == status && (orgID == "" || an.Organization.ID == orgID)
		})))
	}
}

func getAnimalHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var an animals.Animal
		if err := storage.Load(r.Context(), a.store, storage.Animals, chi.URLParam(r, "animalID"), &an); err != nil {
			a.storeError(w, r, err, msgAnimalNotFound)
			return
		}
		if an.IsDeleted {
			writeError(w, http.StatusNotFound, msgAnimalNotFound)
			return
		}
		a.populateAnimal(r, &an)
		writeData(w, http.StatusOK, an)
	}
}

func createAnimalHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireRole(w, r, users.RoleOrganization)
		if !ok {
			return
		}
		var in animals.CreateRequest
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		in.ReportID = strings.TrimSpace(in.ReportID)
		in.Name = strings.TrimSpace(in.Name)
		if in.ReportID == "" || in.Name == "" || in.Species == "" {
			writeError(w, http.StatusBadRequest, "Reporte, nombre y especie son requeridos")
			return
		}
		if err := storage.Load(r.Context(), a.store, storage.Reports, in.ReportID, &reports.Report{}); err != nil {
			a.storeError(w, r, err, msgReportNotFound)
			return
		}

		now := a.timestamp()
		an := animals.Animal{
			ID:                shared.ID(shared.NewID()),
			Report:            shared.RefTo[animals.ReportSummary](in.ReportID),
			Organization:      shared.RefTo[animals.OrganizationSummary](c.UserID),
			Name:              in.Name,
			Species:           in.Species,
			Breed:             deref(in.Breed),
			Gender:            in.Gender,
			AgeEstimate:       deref(in.AgeEstimate),
			Size:              in.Size,
			Color:             deref(in.Color),
			Story:             deref(in.Story),
			PersonalityTraits: in.PersonalityTraits,
			SpecialNeeds:      deref(in.SpecialNeeds),
			PhotoURLs:         in.PhotoURLs,
			VideoURL:          deref(in.VideoURL),
			Status:            animals.StatusAvailable,
			HealthInfo:        in.HealthInfo,
			CreatedAt:         &now,
			UpdatedAt:         &now,
		}
		if an.Gender == "" {
			an.Gender = animals.GenderUnknown
		}
		if an.Size == "" {
			an.Size = animals.SizeMedium
		}
		if an.PhotoURLs == nil {
			an.PhotoURLs = []string{}
		}

		if err := storage.Save(r.Context(), a.store, storage.Animals, an.ID.String(), an); err != nil {
			a.storeError(w, r, err, "")
			return
		}
		writeDataMessage(w, http.StatusCreated, an, "Animal registrado exitosamente")
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// Organizaciones

func listOrganizationsHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accs, err := a.accounts(r)
		if err != nil {
			a.storeError(w, r, err, "")
			return
		}
		out := make([]organizations.Organization, 0)
		for _, acc := range accs {
			u := acc.User
			if u.Role != users.RoleOrganization {
				continue
			}
			out = append(out, organizations.Organization{
				ID:                  u.ID,
				Name:                u.Name,
				OrganizationDetails: u.Organization,
			})
		}
		writeData(w, http.StatusOK, out)
	}
}

func organizationStatsHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID := chi.URLParam(r, "orgID")
		acc, err := a.account(r, orgID)
		if err == nil && acc.User.Role != users.RoleOrganization {
			err = storage.ErrNotFound
		}
		if err != nil {
			a.storeError(w, r, err, "Organización no encontrada")
			return
		}

		reps, err := storage.All[reports.Report](r.Context(), a.store, storage.Reports)
		if err != nil {
			a.storeError(w, r, err, "")
			return
		}
		ans, err := storage.All[animals.Animal](r.Context(), a.store, storage.Animals)
		if err != nil {
			a.storeError(w, r, err, "")
			return
		}

		reps = newestFirst(where(reps, func(rep reports.Report) bool { return rep.Organization.ID == orgID }))
		ans = newestFirst(where(ans, func(an animals.Animal) bool { return an.Organization.ID == orgID && !an.IsDeleted }))

		writeData(w, http.StatusOK, organizationStats(reps, ans))
	}
}

func organizationStats(reps []reports.Report, ans []animals.Animal) organizations.Stats {
	st := organizations.Stats{
		Recent: organizations.Recent{
			Reports: []organizations.RecentReport{},
			Animals: []organizations.RecentAnimal{},
		},
	}

	st.Reports.Total = len(reps)
	for _, rep := range reps {
		switch rep.Status {
		case reports.StatusPending:
			st.Reports.Pending++
		case reports.StatusRescued:
			st.Reports.Rescued++
		case reports.StatusInVeterinary:
			st.Reports.InVeterinary++
		case reports.StatusRecovered:
			st.Reports.ReadyForAdoption++
		}
		if len(st.Recent.Reports) < recentLimit {
			st.Recent.Reports = append(st.Recent.Reports, organizations.RecentReport{
				ID:              rep.ID,
				Description:     rep.Description,
				AnimalType:      string(rep.AnimalType),
				UrgencyLevel:    string(rep.UrgencyLevel),
				LocationAddress: rep.LocationAddress,
				PhotoURLs:       rep.PhotoURLs,
				CreatedAt:       rep.CreatedAt,
			})
		}
	}

	st.Animals.Total = len(ans)
	for _, an := range ans {
		switch an.Status {
		case animals.StatusAvailable:
			st.Animals.Available++
		case animals.StatusAdopted:
			st.Animals.Adopted++
		}
		if len(st.Recent.Animals) < recentLimit {
			st.Recent.Animals = append(st.Recent.Animals, organizations.RecentAnimal{
				ID:        an.ID,
				Name:      an.Name,
				Species:   string(an.Species),
				PhotoURLs: an.PhotoURLs,
			})
		}
	}
	return st
}

// Veterinarias

func (a *api) veterinaries(r *http.Request) ([]users.User, error) {
	accs, err := a.accounts(r)
	if err != nil {
		return nil, err
	}
	out := make([]users.User, 0)
	for _, acc := range accs {
		if acc.User.Role == users.RoleVeterinary {
			out = append(out, acc.User)
		}
	}
	return out, nil
}

func vetItem(u users.User) veterinaries.Veterinary {
	return veterinaries.Veterinary{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Phone:             u.Phone,
		Address:           u.Address,
		ProfilePhotoURL:   u.ProfilePhotoURL,
		VeterinaryDetails: u.Veterinary,
	}
}

func (a *api) writeVeterinaryPage(w http.ResponseWriter, r *http.Request, keep func(users.User) bool) {
	vets, err := a.veterinaries(r)
	if err != nil {
		a.storeError(w, r, err, "")
		return
	}
	matched := where(vets, keep)
	items := make([]veterinaries.Veterinary, 0, len(matched))
	for _, u := range matched {
		items = append(items, vetItem(u))
	}
	page, p := paginate(r, items, veterinaries.DefaultLimit)
	writeData(w, http.StatusOK, veterinaries.Page{Veterinaries: page, Pagination: &p})
}

func listVeterinariesHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.writeVeterinaryPage(w, r, func(users.User) bool { return true })
	}
}

func searchVeterinariesHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		specialty := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("specialty")))
		a.writeVeterinaryPage(w, r, func(u users.User) bool {
			if specialty == "" {
				return true
			}
			if u.Veterinary == nil {
				return false
			}
			for _, s := range u.Veterinary.Specialties {
				if strings.Contains(strings.ToLower(s), specialty) {
					return true
				}
			}
			return false
		})
	}
}

func nearbyVeterinariesHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lat, okLat := queryFloat(r, "latitude")
		lng, okLng := queryFloat(r, "longitude")
		if !okLat || !okLng {
			writeError(w, http.StatusBadRequest, "Latitud y longitud son requeridas")
			return
		}
		maxDistance := float64(queryInt(r, "maxDistance", veterinaries.DefaultMaxDistance))

		vets, err := a.veterinaries(r)
		if err != nil {
			a.storeError(w, r, err, "")
			return
		}
		out := make([]veterinaries.Veterinary, 0)
		for _, u := range vets {
			if u.Veterinary == nil || u.Veterinary.Location == nil {
				continue
			}
			loc := u.Veterinary.Location
			if distanceMeters(lat, lng, loc.Latitude(), loc.Longitude()) <= maxDistance {
				out = append(out, vetItem(u))
			}
		}
		writeData(w, http.StatusOK, out)
	}
}

func getVeterinaryHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, err := a.account(r, chi.URLParam(r, "vetID"))
		if err == nil && acc.User.Role != users.RoleVeterinary {
			err = storage.ErrNotFound
		}
		if err != nil {
			a.storeError(w, r, err, "Veterinaria no encontrada")
			return
		}
		writeData(w, http.StatusOK, acc.User)
	}
}
