package model

// Artist represents a performer that can be booked at venues.  It
// corresponds to a row in the `artists` table.  Artists have no street
// address; otherwise the shape mirrors Venue.
type Artist struct {
	ID                 uint64  // artists.id
	Name               string  // artists.name
	City               string  // artists.city
	State              string  // artists.state
	Phone              string  // artists.phone
	Genres             []Genre // artists.genres (comma separated)
	ImageLink          string  // artists.image_link
	FacebookLink       string  // artists.facebook_link
	Website            string  // artists.website
	SeekingVenue       bool    // artists.seeking_venue
	SeekingDescription string  // artists.seeking_description
}
