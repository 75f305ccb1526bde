package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/view"
)

// ListShows renders every show with its venue and artist.
func (h *SiteHandler) ListShows(c echo.Context) error {
	shows, err := h.Dir.ListShows(c.Request().Context())
	if err != nil {
		h.logf(c, "list shows: %v", err)
	}
	return h.render(c, tplShows, "Shows", shows)
}

// NewShowForm renders the show form with the start time set to now.
func (h *SiteHandler) NewShowForm(c echo.Context) error {
	return h.render(c, tplNewShow, "New Show", view.ShowFormData{Form: form.NewShowForm(h.Dir.Now())})
}

// CreateShow lists a show.  Any failure, including unknown ids and an
// unreadable start time, gets the same generic message.
func (h *SiteHandler) CreateShow(c echo.Context) error {
	f := form.ShowFormFromValues(formValues(c))
	if _, err := h.Dir.CreateShow(c.Request().Context(), f); err != nil {
		h.logf(c, "error inserting the show: %v", err)
		middleware.AddFlash(c, "An error occurred. Show could not be listed.")
		return h.render(c, tplNewShow, "New Show", view.ShowFormData{Form: f})
	}
	return h.redirect(c, "/", "Show was successfully listed!")
}
