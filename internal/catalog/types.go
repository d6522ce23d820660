// Package catalog binds the backend's entity endpoints to collection
// views: one service per dashboard page.
package catalog

import (
	"errors"
	"time"
)

// ErrUnsupported is returned by collection operations an endpoint set
// does not offer (read-only lists, upload-only creates).
var ErrUnsupported = errors.New("operation not supported by this collection")

// Music is one curated music entry.
type Music struct {
	ID          string    `json:"id"`
	SpotifyID   string    `json:"spotifyId"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	BeatportURL string    `json:"beatportUrl"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MusicPayload is the create/update body for a music entry.
type MusicPayload struct {
	SpotifyID   string `json:"spotifyId"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	BeatportURL string `json:"beatportUrl"`
	Category    string `json:"category"`
}

// Sample is one sample-bank entry; the binary assets live behind the
// returned URLs.
type Sample struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Genre      string    `json:"genre"`
	Price      float64   `json:"price"`
	ImageURL   string    `json:"imageUrl"`
	DemoURL    string    `json:"demoUrl"`
	ContentURL string    `json:"contentUrl"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HotPlaylist is one curated "HOT" playlist.
type HotPlaylist struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	TrackCount int       `json:"trackCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Playlist is a user-owned public playlist.
type Playlist struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Owner      string `json:"owner"`
	TrackCount int    `json:"trackCount"`
	IsPublic   bool   `json:"isPublic"`
}

// Listing is one second-hand equipment store listing.
type Listing struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Status    string    `json:"status"`
	IsActive  bool      `json:"isActive"`
	SellerID  string    `json:"sellerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListingStatusUpdate is the body of the listing status endpoint.
type ListingStatusUpdate struct {
	Status   string `json:"status"`
	IsActive bool   `json:"isActive"`
}

// StoreStats are the store dashboard counters as the backend reports
// them; nothing is synthesized client-side.
type StoreStats struct {
	TotalListings   int `json:"totalListings"`
	ActiveListings  int `json:"activeListings"`
	PendingListings int `json:"pendingListings"`
	SoldListings    int `json:"soldListings"`
}

// TicketStats are ticket counts by status.
type TicketStats struct {
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
	Total      int `json:"total"`
}

// RightsGrant is the posting-rights grant request body.
type RightsGrant struct {
	UserID       string `json:"userId"`
	RightsAmount int    `json:"rightsAmount"`
	Reason       string `json:"reason"`
}
