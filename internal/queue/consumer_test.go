package queue

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatLine(t *testing.T) {
	got := FormatLine(ListingEvent{
		Kind:       ShowCreated,
		ID:         4,
		VenueID:    1,
		ArtistID:   2,
		StartTime:  "2035-04-01T20:00:00Z",
		OccurredAt: "2030-01-01T00:00:00Z",
	})
	want := "[2030-01-01T00:00:00Z] show.created | id=4 | venue_id=1 | artist_id=2 | start_time=2035-04-01T20:00:00Z\n"
	if got != want {
		t.Fatalf("FormatLine() = %q, want %q", got, want)
	}
}

func TestHandleMessageAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "listings.log")
	c := &Consumer{LogPath: path, Logger: log.New(io.Discard, "", 0)}

	for _, ev := range []ListingEvent{
		{Kind: VenueCreated, ID: 1, Name: "Park Square", OccurredAt: "t1"},
		{Kind: VenueDeleted, ID: 1, OccurredAt: "t2"},
	} {
		body, _ := json.Marshal(ev)
		if err := c.HandleMessage(body); err != nil {
			t.Fatalf("HandleMessage() error = %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], `name="Park Square"`) || !strings.Contains(lines[1], "venue.deleted") {
		t.Fatalf("log lines = %q", lines)
	}
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	c := &Consumer{LogPath: filepath.Join(t.TempDir(), "x.log"), Logger: log.New(io.Discard, "", 0)}
	if err := c.HandleMessage([]byte("{")); err == nil {
		t.Fatal("HandleMessage(invalid json) error = nil")
	}
	if err := c.HandleMessage([]byte(`{"id":1}`)); err == nil {
		t.Fatal("HandleMessage(no kind) error = nil")
	}
}
