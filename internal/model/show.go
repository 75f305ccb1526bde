package model

import "time"

// Show links exactly one venue and one artist at one point in time.
// Nothing prevents the same pair from having several shows.  Whether a
// show is upcoming or past is never stored; it is derived from StartTime
// at query time.
//
// Fields:
//
//	ID        - primary key identifier.
//	VenueID   - venue hosting the show (required foreign key).
//	ArtistID  - artist performing (required foreign key).
//	StartTime - when the show begins, always in UTC.
type Show struct {
	ID        uint64    // shows.id
	VenueID   uint64    // shows.venue_id
	ArtistID  uint64    // shows.artist_id
	StartTime time.Time // shows.start_time
}
