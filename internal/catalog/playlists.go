package catalog

import (
	"context"

	"admin-dashboard/internal/collection"
	"admin-dashboard/internal/gateway"
)

// HotService lists the curated HOT playlists. Read-only in this
// snapshot: the backend offers no admin mutations for them.
type HotService struct {
	gw *gateway.Client
}

func NewHotService(gw *gateway.Client) *HotService {
	return &HotService{gw: gw}
}

func (s *HotService) List(ctx context.Context, _ collection.Query) (collection.Result[HotPlaylist], error) {
	var items []HotPlaylist
	if err := s.gw.GetJSON(ctx, "/api/hot", nil, &items); err != nil {
		return collection.Result[HotPlaylist]{}, err
	}
	return collection.Result[HotPlaylist]{Items: items, TotalCount: len(items)}, nil
}

func (s *HotService) Create(ctx context.Context, payload any) (HotPlaylist, error) {
	return HotPlaylist{}, ErrUnsupported
}

func (s *HotService) Update(ctx context.Context, id string, payload any) (HotPlaylist, error) {
	return HotPlaylist{}, ErrUnsupported
}

func (s *HotService) Delete(ctx context.Context, id string) error {
	return ErrUnsupported
}

func (s *HotService) View() *collection.View[HotPlaylist] {
	return collection.NewView(collection.Config[HotPlaylist]{
		Source: s,
		Mode:   collection.ClientFiltered,
		Fields: func(p HotPlaylist) map[string]string {
			return map[string]string{"title": p.Title}
		},
		Category: func(p HotPlaylist) string { return p.Category },
	})
}

// PlaylistService lists public user playlists, also read-only.
type PlaylistService struct {
	gw *gateway.Client
}

func NewPlaylistService(gw *gateway.Client) *PlaylistService {
	return &PlaylistService{gw: gw}
}

func (s *PlaylistService) List(ctx context.Context, _ collection.Query) (collection.Result[Playlist], error) {
	var items []Playlist
	if err := s.gw.GetJSON(ctx, "/api/playlists/public", nil, &items); err != nil {
		return collection.Result[Playlist]{}, err
	}
	return collection.Result[Playlist]{Items: items, TotalCount: len(items)}, nil
}

func (s *PlaylistService) Create(ctx context.Context, payload any) (Playlist, error) {
	return Playlist{}, ErrUnsupported
}

func (s *PlaylistService) Update(ctx context.Context, id string, payload any) (Playlist, error) {
	return Playlist{}, ErrUnsupported
}

func (s *PlaylistService) Delete(ctx context.Context, id string) error {
	return ErrUnsupported
}

func (s *PlaylistService) View() *collection.View[Playlist] {
	return collection.NewView(collection.Config[Playlist]{
		Source: s,
		Mode:   collection.ClientFiltered,
		Fields: func(p Playlist) map[string]string {
			return map[string]string{
				"name":  p.Name,
				"owner": p.Owner,
			}
		},
	})
}
