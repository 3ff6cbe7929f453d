package router

import (
	"net/http"

	"epaw/internal/domain/adoptions"
	"epaw/internal/domain/animals"
	"epaw/internal/domain/medicalrecords"
	"epaw/internal/domain/reports"
	"epaw/internal/domain/shared"
	"epaw/internal/ports/storage"
)

// Los detalles pueblan las referencias; los listados las dejan como id.
// Si el documento referido no existe la referencia queda sin poblar.

func populate[D, T any](a *api, r *http.Request, ref *shared.Ref[T], collection string, conv func(D) T) {
	if ref.ID == "" {
		return
	}
	var doc D
	if err := storage.Load(r.Context(), a.store, collection, ref.ID, &doc); err != nil {
		return
	}
	*ref = shared.Populated(ref.ID, conv(doc))
}

func (a *api) populateReport(r *http.Request, rep *reports.Report) {
	populate(a, r, &rep.Reporter, storage.Users, func(acc account) reports.ReporterInfo {
		u := acc.User
		return reports.ReporterInfo{ID: u.ID.String(), Name: u.Name, Email: u.Email, Phone: u.Phone, ProfilePhotoURL: u.ProfilePhotoURL}
	})
	populate(a, r, &rep.Organization, storage.Users, func(acc account) reports.OrganizationInfo {
		u := acc.User
		return reports.OrganizationInfo{ID: u.ID.String(), Name: u.Name, Email: u.Email, Phone: u.Phone, OrganizationDetails: u.Organization}
	})
	populate(a, r, &rep.Veterinary, storage.Users, func(acc account) reports.VeterinaryInfo {
		u := acc.User
		return reports.VeterinaryInfo{ID: u.ID.String(), Name: u.Name, Email: u.Email, Phone: u.Phone, VeterinaryDetails: u.Veterinary}
	})
}

func adoptionUser(acc account) adoptions.UserDetails {
	u := acc.User
	d := adoptions.UserDetails{
		ID:              u.ID.String(),
		Name:            u.Name,
		Email:           u.Email,
		Phone:           u.Phone,
		ProfilePhotoURL: u.ProfilePhotoURL,
	}
	if o := u.Organization; o != nil {
		d.OrganizationDetails = &adoptions.OrganizationProfile{
			OrganizationName: o.OrganizationName,
			Description:      o.Description,
			LogoURL:          o.LogoURL,
			Website:          o.Website,
			Capacity:         o.Capacity,
			CurrentAnimals:   o.CurrentAnimals,
		}
	}
	return d
}

func (a *api) populateAdoption(r *http.Request, ad *adoptions.Adoption) {
	populate(a, r, &ad.Animal, storage.Animals, func(an animals.Animal) adoptions.AnimalDetails {
		return adoptions.AnimalDetails{
			ID:        an.ID.String(),
			Name:      an.Name,
			Species:   string(an.Species),
			Breed:     an.Breed,
			PhotoURLs: an.PhotoURLs,
			Status:    string(an.Status),
		}
	})
	populate(a, r, &ad.Adopter, storage.Users, adoptionUser)
	populate(a, r, &ad.Organization, storage.Users, adoptionUser)
}

func (a *api) populateRecord(r *http.Request, rec *medicalrecords.Record) {
	populate(a, r, &rec.Animal, storage.Animals, func(an animals.Animal) medicalrecords.AnimalDetails {
		return medicalrecords.AnimalDetails{
			ID:        an.ID.String(),
			Name:      an.Name,
			Species:   string(an.Species),
			Breed:     an.Breed,
			PhotoURLs: an.PhotoURLs,
		}
	})
	populate(a, r, &rec.Report, storage.Reports, func(rep reports.Report) medicalrecords.ReportDetails {
		return medicalrecords.ReportDetails{
			ID:           rep.ID.String(),
			Description:  rep.Description,
			UrgencyLevel: string(rep.UrgencyLevel),
			Status:       string(rep.Status),
		}
	})
	populate(a, r, &rec.Veterinary, storage.Users, func(acc account) medicalrecords.VeterinaryDetails {
		u := acc.User
		d := medicalrecords.VeterinaryDetails{ID: u.ID.String(), Name: u.Name, Email: u.Email, Phone: u.Phone}
		if v := u.Veterinary; v != nil {
			d.VeterinaryDetails = &medicalrecords.ClinicInfo{
				ClinicName:    v.ClinicName,
				LicenseNumber: v.LicenseNumber,
				Specialties:   v.Specialties,
			}
		}
		return d
	})
}

func (a *api) populateAnimal(r *http.Request, an *animals.Animal) {
	populate(a, r, &an.Report, storage.Reports, func(rep reports.Report) animals.ReportSummary {
		return animals.ReportSummary{
			ID:              rep.ID.String(),
			LocationAddress: rep.LocationAddress,
			UrgencyLevel:    string(rep.UrgencyLevel),
			Description:     rep.Description,
		}
	})
	populate(a, r, &an.Organization, storage.Users, func(acc account) animals.OrganizationSummary {
		u := acc.User
		return animals.OrganizationSummary{ID: u.ID.String(), Name: u.Name, Email: u.Email, Phone: u.Phone, OrganizationDetails: u.Organization}
	})
}
