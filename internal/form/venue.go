package form

import (
	"net/url"

	"github.com/iliyamo/fyyur/internal/model"
)

// VenueForm holds the raw values of the venue create/edit form.
type VenueForm struct {
	Name               string
	City               string
	State              string
	Address            string
	Phone              string
	ImageLink          string
	FacebookLink       string
	WebsiteLink        string
	Genres             []string
	SeekingTalent      bool
	SeekingDescription string
}

// VenueFormFromValues reads a submitted venue form.
func VenueFormFromValues(v url.Values) VenueForm {
	return VenueForm{
		Name:               v.Get("name"),
		City:               v.Get("city"),
		State:              v.Get("state"),
		Address:            v.Get("address"),
		Phone:              v.Get("phone"),
		ImageLink:          v.Get("image_link"),
		FacebookLink:       v.Get("facebook_link"),
		WebsiteLink:        v.Get("website_link"),
		Genres:             v["genres"],
		SeekingTalent:      checked(v.Get("seeking_talent")),
		SeekingDescription: v.Get("seeking_description"),
	}
}

// VenueFormFromModel pre-fills the edit form from a stored venue.
func VenueFormFromModel(m model.Venue) VenueForm {
	return VenueForm{
		Name:               m.Name,
		City:               m.City,
		State:              m.State,
		Address:            m.Address,
		Phone:              m.Phone,
		ImageLink:          m.ImageLink,
		FacebookLink:       m.FacebookLink,
		WebsiteLink:        m.Website,
		Genres:             fromGenres(m.Genres),
		SeekingTalent:      m.SeekingTalent,
		SeekingDescription: m.SeekingDescription,
	}
}

// Venue builds the candidate record.  The ID is left zero.
func (f VenueForm) Venue() model.Venue {
	return model.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		Genres:             toGenres(f.Genres),
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}
}

// Validate checks required fields first and, only when those pass, the
// phone and facebook link formats.
func (f VenueForm) Validate() Result[model.Venue] {
	var c checker
	c.required("name", f.Name)
	c.required("city", f.City)
	c.state("state", f.State)
	c.required("address", f.Address)
	c.genres("genres", f.Genres)
	if len(c.errs) == 0 {
		c.contact(f.Phone, f.FacebookLink)
	}
	return Result[model.Venue]{Record: f.Venue(), Errors: c.errs}
}
