package model

// Venue represents a place that hosts shows.  It corresponds to a row in
// the `venues` table.  SeekingDescription is only meaningful when
// SeekingTalent is true.
//
// Fields:
//
//	ID                 - primary key identifier.
//	Name               - display name of the venue.
//	City, State        - location; State is a two-letter code.
//	Address            - street address.
//	Phone              - optional phone number.
//	ImageLink          - optional picture URL.
//	FacebookLink       - optional facebook page URL.
//	Website            - optional website URL.
//	Genres             - set of genres played at the venue.
//	SeekingTalent      - whether the venue is looking for artists.
//	SeekingDescription - free text shown when seeking talent.
type Venue struct {
	ID                 uint64  // venues.id
	Name               string  // venues.name
	City               string  // venues.city
	State              string  // venues.state
	Address            string  // venues.address
	Phone              string  // venues.phone
	ImageLink          string  // venues.image_link
	FacebookLink       string  // venues.facebook_link
	Website            string  // venues.website
	Genres             []Genre // venues.genres (comma separated)
	SeekingTalent      bool    // venues.seeking_talent
	SeekingDescription string  // venues.seeking_description
}
