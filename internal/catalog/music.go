package catalog

import (
	"context"

	"admin-dashboard/internal/collection"
	"admin-dashboard/internal/gateway"
)

// MusicService drives the music page: full-list fetch with client-side
// filtering over title, artist and category.
type MusicService struct {
	gw *gateway.Client
}

func NewMusicService(gw *gateway.Client) *MusicService {
	return &MusicService{gw: gw}
}

func (s *MusicService) List(ctx context.Context, _ collection.Query) (collection.Result[Music], error) {
	var items []Music
	if err := s.gw.GetJSON(ctx, "/api/music", nil, &items); err != nil {
		return collection.Result[Music]{}, err
	}
	return collection.Result[Music]{Items: items, TotalCount: len(items)}, nil
}

func (s *MusicService) Create(ctx context.Context, payload any) (Music, error) {
	var m Music
	err := s.gw.PostJSON(ctx, "/api/music", payload, &m)
	return m, err
}

func (s *MusicService) Update(ctx context.Context, id string, payload any) (Music, error) {
	var m Music
	err := s.gw.PutJSON(ctx, "/api/music/"+id, payload, &m)
	return m, err
}

func (s *MusicService) Delete(ctx context.Context, id string) error {
	return s.gw.Delete(ctx, "/api/music/"+id)
}

func (s *MusicService) View() *collection.View[Music] {
	return collection.NewView(collection.Config[Music]{
		Source: s,
		Mode:   collection.ClientFiltered,
		Fields: func(m Music) map[string]string {
			return map[string]string{
				"title":  m.Title,
				"artist": m.Artist,
			}
		},
		Category: func(m Music) string { return m.Category },
	})
}
