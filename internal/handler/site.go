// Package handler maps the directory's HTML routes onto the service layer.
// Handlers only extract inputs, call the Directory, choose between a page,
// a redirect or a redisplayed form, and log failures.
package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/service"
	"github.com/iliyamo/fyyur/internal/view"
)

// Template names.
const (
	tplHome          = "pages/home.html"
	tplVenues        = "pages/venues.html"
	tplSearchVenues  = "pages/search_venues.html"
	tplShowVenue     = "pages/show_venue.html"
	tplArtists       = "pages/artists.html"
	tplSearchArtists = "pages/search_artists.html"
	tplShowArtist    = "pages/show_artist.html"
	tplShows         = "pages/shows.html"
	tplNewVenue      = "forms/new_venue.html"
	tplEditVenue     = "forms/edit_venue.html"
	tplNewArtist     = "forms/new_artist.html"
	tplEditArtist    = "forms/edit_artist.html"
	tplNewShow       = "forms/new_show.html"
)

// SiteHandler serves every page of the directory.
type SiteHandler struct {
	Dir *service.Directory
	Log *log.Logger
}

// NewSiteHandler constructs a SiteHandler and panics if dir is nil.  A nil
// logger discards output.
func NewSiteHandler(dir *service.Directory, lg *log.Logger) *SiteHandler {
	if dir == nil {
		panic("nil directory passed to NewSiteHandler")
	}
	if lg == nil {
		lg = log.New(io.Discard, "", 0)
	}
	return &SiteHandler{Dir: dir, Log: lg}
}

// Home renders the landing page.
func (h *SiteHandler) Home(c echo.Context) error {
	return h.render(c, tplHome, "", nil)
}

// render hands a page to the renderer with any pending flash messages.
func (h *SiteHandler) render(c echo.Context, name, title string, data any) error {
	return c.Render(http.StatusOK, name, view.Page{
		Title:   title,
		Flashes: middleware.TakeFlashes(c),
		Data:    data,
	})
}

// redirect queues msg and sends the browser to path with 303 See Other.
func (h *SiteHandler) redirect(c echo.Context, path, msg string) error {
	if msg != "" {
		middleware.AddFlash(c, msg)
	}
	return c.Redirect(http.StatusSeeOther, path)
}

// logf records a failure against the request.  Logging never changes the
// response.
func (h *SiteHandler) logf(c echo.Context, format string, args ...any) {
	h.Log.Printf("%s %s: "+format, append([]any{c.Request().Method, c.Request().URL.Path}, args...)...)
}

// pathID parses the :id parameter.  A non-numeric id matches no record, so
// it is reported as not found.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.ErrNotFound
	}
	return id, nil
}

// formValues parses the submitted form.  A malformed body is treated as an
// empty submission.
func formValues(c echo.Context) url.Values {
	v, err := c.FormParams()
	if err != nil {
		return url.Values{}
	}
	return v
}

func isNotFound(err error) bool { return errors.Is(err, service.ErrNotFound) }

func invalidData(err error) (*service.InvalidDataError, bool) {
	var inv *service.InvalidDataError
	ok := errors.As(err, &inv)
	return inv, ok
}
