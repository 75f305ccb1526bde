package form

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/iliyamo/fyyur/internal/model"
)

const (
	msgRequired        = "This field is required."
	msgInvalidChoice   = "Not a valid choice."
	msgInvalidPhone    = "Invalid phone."
	msgInvalidFacebook = "Invalid facebook link."
)

// PhonePattern accepts "(NNN) NNN-NNNN", "NNN-NNN-NNNN", "NNN.NNN.NNNN" or
// the empty string.
var PhonePattern = regexp.MustCompile(`^\([0-9]{3}\) *[0-9]{3}-[0-9]{4}$|^[0-9]{3}-[0-9]{3}-[0-9]{4}$|^[0-9]{3}\.[0-9]{3}\.[0-9]{4}$|^$`)

// IsValidPhone reports whether phone is empty or in one of the accepted
// US formats.
func IsValidPhone(phone string) bool {
	return PhonePattern.MatchString(phone)
}

// IsValidURL reports whether link is empty or an absolute http(s)/ftp URL
// with a host.
func IsValidURL(link string) bool {
	if link == "" {
		return true
	}
	if strings.ContainsAny(link, " \t\n") {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp":
	default:
		return false
	}
	return u.Host != "" && u.Hostname() != ""
}

// checker accumulates errors for one validation pass.
type checker struct {
	errs Errors
}

func (c *checker) add(field, msg string) {
	c.errs = append(c.errs, FieldError{Field: field, Message: msg})
}

// required fails on empty or whitespace-only input.
func (c *checker) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.add(field, msgRequired)
	}
}

func (c *checker) state(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.add(field, msgRequired)
		return
	}
	if !model.IsState(value) {
		c.add(field, msgInvalidChoice)
	}
}

// genres requires a non-empty selection drawn from model.Genres.
func (c *checker) genres(field string, values []string) {
	if len(values) == 0 {
		c.add(field, msgRequired)
		return
	}
	for _, v := range values {
		if _, ok := model.ParseGenre(v); !ok {
			c.add(field, "'"+v+"' is not a valid choice for this field.")
		}
	}
}

// contact runs the second phase: phone format and facebook link.
func (c *checker) contact(phone, facebook string) {
	if !IsValidPhone(phone) {
		c.add("phone", msgInvalidPhone)
	}
	if !IsValidURL(facebook) {
		c.add("facebook_link", msgInvalidFacebook)
	}
}

func toGenres(values []string) []model.Genre {
	out := make([]model.Genre, 0, len(values))
	for _, v := range values {
		out = append(out, model.Genre(v))
	}
	return out
}

func fromGenres(gs []model.Genre) []string {
	out := make([]string, 0, len(gs))
	for _, g := range gs {
		out = append(out, string(g))
	}
	return out
}

// checked mirrors an HTML checkbox: any value except "" and "false" is on.
func checked(v string) bool {
	return v != "" && v != "false"
}
