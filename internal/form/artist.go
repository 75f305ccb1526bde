package form

import (
	"net/url"

	"github.com/iliyamo/fyyur/internal/model"
)

// ArtistForm holds the raw values of the artist create/edit form.
type ArtistForm struct {
	Name               string
	City               string
	State              string
	Phone              string
	ImageLink          string
	FacebookLink       string
	WebsiteLink        string
	Genres             []string
	SeekingVenue       bool
	SeekingDescription string
}

func ArtistFormFromValues(v url.Values) ArtistForm {
	return ArtistForm{
		Name:               v.Get("name"),
		City:               v.Get("city"),
		State:              v.Get("state"),
		Phone:              v.Get("phone"),
		ImageLink:          v.Get("image_link"),
		FacebookLink:       v.Get("facebook_link"),
		WebsiteLink:        v.Get("website_link"),
		Genres:             v["genres"],
		SeekingVenue:       checked(v.Get("seeking_venue")),
		SeekingDescription: v.Get("seeking_description"),
	}
}

func ArtistFormFromModel(m model.Artist) ArtistForm {
	return ArtistForm{
		Name:               m.Name,
		City:               m.City,
		State:              m.State,
		Phone:              m.Phone,
		ImageLink:          m.ImageLink,
		FacebookLink:       m.FacebookLink,
		WebsiteLink:        m.Website,
		Genres:             fromGenres(m.Genres),
		SeekingVenue:       m.SeekingVenue,
		SeekingDescription: m.SeekingDescription,
	}
}

func (f ArtistForm) Artist() model.Artist {
	return model.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             toGenres(f.Genres),
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}
}

// Validate applies the same two phases as VenueForm.Validate; artists have
// no address.
func (f ArtistForm) Validate() Result[model.Artist] {
	var c checker
	c.required("name", f.Name)
	c.required("city", f.City)
	c.state("state", f.State)
	c.genres("genres", f.Genres)
	if len(c.errs) == 0 {
		c.contact(f.Phone, f.FacebookLink)
	}
	return Result[model.Artist]{Record: f.Artist(), Errors: c.errs}
}
