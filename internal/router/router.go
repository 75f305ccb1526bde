// Package router registers the directory's routes and its HTML error pages.
package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/view"
)

// RegisterRoutes registers the health check on the provided Echo instance.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterSite registers every page.  limit wraps the form submissions;
// pass nil to leave them unthrottled.
func RegisterSite(e *echo.Echo, h *handler.SiteHandler, limit echo.MiddlewareFunc) {
	var writes []echo.MiddlewareFunc
	if limit != nil {
		writes = append(writes, limit)
	}

	e.GET("/", h.Home)

	// ---- Venues ----
	e.GET("/venues", h.ListVenues)
	e.POST("/venues/search", h.SearchVenues)
	e.GET("/venues/create", h.NewVenueForm)
	e.POST("/venues/create", h.CreateVenue, writes...)
	e.GET("/venues/:id", h.ShowVenue)
	e.GET("/venues/:id/edit", h.EditVenueForm)
	e.POST("/venues/:id/edit", h.UpdateVenue, writes...)
	e.GET("/venues/:id/delete", h.DeleteVenue, writes...)
	e.DELETE("/venues/:id", h.DeleteVenue, writes...)

	// ---- Artists ----
	e.GET("/artists", h.ListArtists)
	e.POST("/artists/search", h.SearchArtists)
	e.GET("/artists/create", h.NewArtistForm)
	e.POST("/artists/create", h.CreateArtist, writes...)
	e.GET("/artists/:id", h.ShowArtist)
	e.GET("/artists/:id/edit", h.EditArtistForm)
	e.POST("/artists/:id/edit", h.UpdateArtist, writes...)

	// ---- Shows ----
	e.GET("/shows", h.ListShows)
	e.GET("/shows/create", h.NewShowForm)
	e.POST("/shows/create", h.CreateShow, writes...)
}

// ErrorHandler renders errors/404.html and errors/500.html, and a generic
// page for other statuses.  Internal causes are logged, never shown.
func ErrorHandler(lg *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if s, ok := he.Message.(string); ok {
				msg = s
			}
			if he.Internal != nil {
				lg.Printf("%s %s: %d: %v", c.Request().Method, c.Request().URL.Path, code, he.Internal)
			}
		} else {
			lg.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		}

		name, data := "errors/error.html", any(view.ErrorData{Code: code, Message: msg})
		switch code {
		case http.StatusNotFound:
			name, data = "errors/404.html", nil
		case http.StatusInternalServerError:
			name, data = "errors/500.html", nil
		}
		page := view.Page{Title: http.StatusText(code), Flashes: middleware.TakeFlashes(c), Data: data}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.Render(code, name, page)
		}
		if err != nil {
			lg.Printf("render error page: %v", err)
			_ = c.String(code, msg)
		}
	}
}
