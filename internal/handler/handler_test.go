package handler_test

import (
	"context"
	"database/sql"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/router"
	"github.com/iliyamo/fyyur/internal/service"
	"github.com/iliyamo/fyyur/internal/view"
)

var testNow = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

type recordingRenderer struct {
	name string
	page view.Page
}

func (r *recordingRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	r.name = name
	r.page, _ = data.(view.Page)
	_, err := io.WriteString(w, name)
	return err
}

type testServer struct {
	e   *echo.Echo
	rr  *recordingRenderer
	db  *sql.DB
	dir *service.Directory
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := database.Open(database.Options{Driver: database.DriverSQLite, Path: ":memory:"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.Migrate(context.Background(), db, database.DriverSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	discard := log.New(io.Discard, "", 0)
	dir := service.NewDirectory(db, service.Options{
		Driver: database.DriverSQLite,
		Clock:  func() time.Time { return testNow },
	})

	e := echo.New()
	rr := &recordingRenderer{}
	e.Renderer = rr
	e.HTTPErrorHandler = router.ErrorHandler(discard)
	e.Use(middleware.Flash("test-secret"))
	router.RegisterRoutes(e, db)
	router.RegisterSite(e, handler.NewSiteHandler(dir, discard), nil)
	return &testServer{e: e, rr: rr, db: db, dir: dir}
}

func (s *testServer) do(method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	s.rr.name, s.rr.page = "", view.Page{}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func flashCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.FlashCookie {
			return ck
		}
	}
	return nil
}

func venueValues(name string) url.Values {
	return url.Values{
		"name":          {name},
		"city":          {"San Francisco"},
		"state":         {"CA"},
		"address":       {"1015 Folsom Street"},
		"phone":         {"123-123-1234"},
		"genres":        {"Jazz", "Reggae"},
		"facebook_link": {"https://www.facebook.com/TheMusicalHop"},
	}
}

func artistValues(name string) url.Values {
	return url.Values{
		"name":   {name},
		"city":   {"San Francisco"},
		"state":  {"CA"},
		"genres": {"Rock n Roll"},
	}
}

func (s *testServer) mustCreate(t *testing.T, path string, form url.Values) {
	t.Helper()
	if rec := s.do(http.MethodPost, path, form); rec.Code != http.StatusSeeOther {
		t.Fatalf("POST %s status = %d, want 303 (template %s, flashes %v)", path, rec.Code, s.rr.name, s.rr.page.Flashes)
	}
}

func TestHomeAndHealth(t *testing.T) {
	s := newTestServer(t)
	if rec := s.do(http.MethodGet, "/", nil); rec.Code != http.StatusOK || s.rr.name != "pages/home.html" {
		t.Fatalf("GET / = %d %s", rec.Code, s.rr.name)
	}
	if rec := s.do(http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("GET /healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestCreateVenue(t *testing.T) {
	s := newTestServer(t)

	t.Run("success flashes on the next page", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/venues/create", venueValues("The Musical Hop"))
		if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/" {
			t.Fatalf("status = %d location = %q, want 303 /", rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
		ck := flashCookie(rec)
		if ck == nil {
			t.Fatal("no flash cookie")
		}
		s.do(http.MethodGet, "/", nil, ck)
		if got := s.rr.page.Flashes; len(got) != 1 || got[0] != "Venue The Musical Hop was successfully listed!" {
			t.Fatalf("flashes = %v", got)
		}
	})

	t.Run("invalid phone redisplays form", func(t *testing.T) {
		v := venueValues("Bad Phone")
		v.Set("phone", "5551234567")
		rec := s.do(http.MethodPost, "/venues/create", v)
		if rec.Code != http.StatusOK || s.rr.name != "forms/new_venue.html" {
			t.Fatalf("status = %d template = %s", rec.Code, s.rr.name)
		}
		data := s.rr.page.Data.(view.VenueFormData)
		if !data.Errors.Has("phone") || data.Form.Phone != "5551234567" {
			t.Fatalf("form data = %+v", data)
		}
		if got := s.rr.page.Flashes; len(got) != 1 || got[0] != "Invalid phone." {
			t.Fatalf("flashes = %v, want [Invalid phone.]", got)
		}
	})

	t.Run("missing fields are reported before format checks", func(t *testing.T) {
		v := venueValues("")
		v.Set("phone", "bad")
		s.do(http.MethodPost, "/venues/create", v)
		data := s.rr.page.Data.(view.VenueFormData)
		if !data.Errors.Has("name") || data.Errors.Has("phone") {
			t.Fatalf("errors = %v, want only required-field errors", data.Errors)
		}
	})

	var n int
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM venues`).Scan(&n)
	if n != 1 {
		t.Fatalf("venues stored = %d, want 1", n)
	}
}

func TestVenuePages(t *testing.T) {
	s := newTestServer(t)
	s.mustCreate(t, "/venues/create", venueValues("Park Square Live Music & Coffee"))
	s.mustCreate(t, "/venues/create", venueValues("The Musical Hop"))
	s.mustCreate(t, "/artists/create", artistValues("Guns N Petals"))
	s.mustCreate(t, "/shows/create", url.Values{"venue_id": {"1"}, "artist_id": {"1"}, "start_time": {"2035-04-01 20:00:00"}})
	s.mustCreate(t, "/shows/create", url.Values{"venue_id": {"1"}, "artist_id": {"1"}, "start_time": {"2019-06-15 23:00:00"}})

	s.do(http.MethodGet, "/venues", nil)
	areas := s.rr.page.Data.([]service.Area)
	if len(areas) != 1 || len(areas[0].Venues) != 2 {
		t.Fatalf("areas = %+v", areas)
	}
	for _, v := range areas[0].Venues {
		if v.ID == 1 && v.NumUpcomingShows != 1 {
			t.Fatalf("upcoming = %d, want 1", v.NumUpcomingShows)
		}
	}

	s.do(http.MethodPost, "/venues/search", url.Values{"search_term": {"PARK"}})
	sd := s.rr.page.Data.(view.SearchData)
	if sd.Term != "PARK" || sd.Results.Count != 1 || sd.Results.Data[0].ID != 1 {
		t.Fatalf("search = %+v", sd)
	}

	rec := s.do(http.MethodGet, "/venues/1", nil)
	detail := s.rr.page.Data.(*service.VenueDetail)
	if rec.Code != http.StatusOK || detail.UpcomingShowsCount != 1 || detail.PastShowsCount != 1 {
		t.Fatalf("detail = %d %+v", rec.Code, detail)
	}

	for _, path := range []string{"/venues/99", "/venues/abc", "/venues/99/edit", "/artists/99"} {
		rec := s.do(http.MethodGet, path, nil)
		if rec.Code != http.StatusNotFound || s.rr.name != "errors/404.html" {
			t.Fatalf("GET %s = %d %s, want 404 page", path, rec.Code, s.rr.name)
		}
	}
}

func TestEditVenue(t *testing.T) {
	s := newTestServer(t)
	s.mustCreate(t, "/venues/create", venueValues("The Musical Hop"))

	s.do(http.MethodGet, "/venues/1/edit", nil)
	pre := s.rr.page.Data.(view.VenueFormData)
	if s.rr.name != "forms/edit_venue.html" || pre.ID != 1 || pre.Form.Name != "The Musical Hop" || len(pre.Form.Genres) != 2 {
		t.Fatalf("edit form = %s %+v", s.rr.name, pre)
	}

	t.Run("invalid facebook link keeps typed values", func(t *testing.T) {
		v := venueValues("The Musical Hop Renamed")
		v.Set("facebook_link", "facebook dot com")
		rec := s.do(http.MethodPost, "/venues/1/edit", v)
		data := s.rr.page.Data.(view.VenueFormData)
		if rec.Code != http.StatusOK || s.rr.name != "forms/edit_venue.html" || data.Form.FacebookLink != "facebook dot com" {
			t.Fatalf("redisplay = %d %s %+v", rec.Code, s.rr.name, data.Form)
		}
		if got := s.rr.page.Flashes; len(got) != 1 || got[0] != "Invalid facebook link." {
			t.Fatalf("flashes = %v", got)
		}
		stored, _ := s.dir.Venue(context.Background(), 1)
		if stored.Name != "The Musical Hop" {
			t.Fatalf("stored name = %q, want unchanged", stored.Name)
		}
	})

	t.Run("success redirects to the venue", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/venues/1/edit", venueValues("The Musical Hop Renamed"))
		if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/venues/1" {
			t.Fatalf("status = %d location = %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
		s.do(http.MethodGet, "/venues/1", nil, flashCookie(rec))
		if got := s.rr.page.Flashes; len(got) != 1 || got[0] != "Venue The Musical Hop Renamed was successfully updated!" {
			t.Fatalf("flashes = %v", got)
		}
	})

	t.Run("missing venue", func(t *testing.T) {
		if rec := s.do(http.MethodPost, "/venues/42/edit", venueValues("Ghost")); rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestDeleteVenue(t *testing.T) {
	s := newTestServer(t)
	s.mustCreate(t, "/venues/create", venueValues("First"))
	s.mustCreate(t, "/venues/create", venueValues("Second"))

	rec := s.do(http.MethodGet, "/venues/1/delete", nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("GET delete = %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	if rec := s.do(http.MethodGet, "/venues/1/delete", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete = %d, want 404", rec.Code)
	}
	if rec := s.do(http.MethodGet, "/venues/1", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("detail after delete = %d, want 404", rec.Code)
	}
	if rec := s.do(http.MethodDelete, "/venues/2", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE = %d, want 204", rec.Code)
	}
	if rec := s.do(http.MethodDelete, "/venues/2", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("DELETE missing = %d, want 404", rec.Code)
	}
}

func TestArtists(t *testing.T) {
	s := newTestServer(t)
	s.mustCreate(t, "/artists/create", artistValues("Guns N Petals"))
	s.mustCreate(t, "/artists/create", artistValues("Matt Quevedo"))

	s.do(http.MethodGet, "/artists", nil)
	if list := s.rr.page.Data.([]service.Summary); len(list) != 2 || list[0].Name != "Guns N Petals" {
		t.Fatalf("artists = %+v", list)
	}

	s.do(http.MethodPost, "/artists/search", url.Values{"search_term": {"a"}})
	if sd := s.rr.page.Data.(view.SearchData); sd.Results.Count != 2 {
		t.Fatalf("search = %+v", sd)
	}

	bad := artistValues("")
	s.do(http.MethodPost, "/artists/create", bad)
	if s.rr.name != "forms/new_artist.html" || s.rr.page.Flashes[0] != "This field is required." {
		t.Fatalf("invalid create = %s %v", s.rr.name, s.rr.page.Flashes)
	}

	s.do(http.MethodGet, "/artists/2/edit", nil)
	if data := s.rr.page.Data.(view.ArtistFormData); data.Form.Name != "Matt Quevedo" {
		t.Fatalf("edit form = %+v", data)
	}
	rec := s.do(http.MethodPost, "/artists/2/edit", artistValues("Matt Quevedo Trio"))
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/artists/2" {
		t.Fatalf("edit = %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	s.do(http.MethodGet, "/artists/2", nil)
	if d := s.rr.page.Data.(*service.ArtistDetail); d.Name != "Matt Quevedo Trio" {
		t.Fatalf("detail = %+v", d)
	}
	if rec := s.do(http.MethodDelete, "/artists/2", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("DELETE artist = %d, want 405", rec.Code)
	}
}

func TestCreateShow(t *testing.T) {
	s := newTestServer(t)
	s.mustCreate(t, "/venues/create", venueValues("The Musical Hop"))
	s.mustCreate(t, "/artists/create", artistValues("Guns N Petals"))

	s.do(http.MethodGet, "/shows/create", nil)
	if f := s.rr.page.Data.(view.ShowFormData).Form; f.StartTime != "2030-06-01 12:00:00" {
		t.Fatalf("default start time = %q", f.StartTime)
	}

	for _, v := range []url.Values{
		{"venue_id": {"1"}, "artist_id": {"9"}, "start_time": {"2035-04-01 20:00:00"}},
		{"venue_id": {"1"}, "artist_id": {"1"}, "start_time": {"tomorrow"}},
	} {
		rec := s.do(http.MethodPost, "/shows/create", v)
		if rec.Code != http.StatusOK || s.rr.name != "forms/new_show.html" {
			t.Fatalf("failed create = %d %s", rec.Code, s.rr.name)
		}
		if got := s.rr.page.Flashes; len(got) != 1 || got[0] != "An error occurred. Show could not be listed." {
			t.Fatalf("flashes = %v", got)
		}
	}

	rec := s.do(http.MethodPost, "/shows/create", url.Values{"venue_id": {"1"}, "artist_id": {"1"}, "start_time": {"2035-04-01T20:00"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("create = %d", rec.Code)
	}
	s.do(http.MethodGet, "/shows", nil, flashCookie(rec))
	shows := s.rr.page.Data.([]service.ShowEntry)
	if len(shows) != 1 || shows[0].VenueName != "The Musical Hop" || shows[0].ArtistName != "Guns N Petals" {
		t.Fatalf("shows = %+v", shows)
	}
	if got := s.rr.page.Flashes; len(got) != 1 || got[0] != "Show was successfully listed!" {
		t.Fatalf("flashes = %v", got)
	}
}
