// Package queue defines message payloads exchanged over the message broker.
package queue

// ListingQueueName is the durable queue carrying listing events.
const ListingQueueName = "fyyur.listings"

// Listing event kinds.
const (
	VenueCreated  = "venue.created"
	VenueUpdated  = "venue.updated"
	VenueDeleted  = "venue.deleted"
	ArtistCreated = "artist.created"
	ArtistUpdated = "artist.updated"
	ShowCreated   = "show.created"
)

// ListingEvent is published after a venue, artist or show change has been
// committed.  It carries enough for downstream consumers to log or notify
// without querying the primary database.
type ListingEvent struct {
	Kind       string `json:"kind"`
	ID         uint64 `json:"id"`
	Name       string `json:"name,omitempty"`
	VenueID    uint64 `json:"venue_id,omitempty"`
	ArtistID   uint64 `json:"artist_id,omitempty"`
	StartTime  string `json:"start_time,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
