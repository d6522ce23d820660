package catalog

import (
	"context"
	"net/http"

	"admin-dashboard/internal/collection"
	"admin-dashboard/internal/gateway"
	"admin-dashboard/internal/upload"
)

// SampleService drives the sample-bank page. Listing and deletion are
// plain JSON; creation and update go through a progress-tracked
// multipart upload session.
type SampleService struct {
	gw *gateway.Client
}

func NewSampleService(gw *gateway.Client) *SampleService {
	return &SampleService{gw: gw}
}

func (s *SampleService) List(ctx context.Context, _ collection.Query) (collection.Result[Sample], error) {
	var items []Sample
	if err := s.gw.GetJSON(ctx, "/api/samples", nil, &items); err != nil {
		return collection.Result[Sample]{}, err
	}
	return collection.Result[Sample]{Items: items, TotalCount: len(items)}, nil
}

// Create and Update are upload-only; use NewUpload + Submit.
func (s *SampleService) Create(ctx context.Context, payload any) (Sample, error) {
	return Sample{}, ErrUnsupported
}

func (s *SampleService) Update(ctx context.Context, id string, payload any) (Sample, error) {
	return Sample{}, ErrUnsupported
}

func (s *SampleService) Delete(ctx context.Context, id string) error {
	return s.gw.Delete(ctx, "/api/samples/"+id)
}

func (s *SampleService) View() *collection.View[Sample] {
	return collection.NewView(collection.Config[Sample]{
		Source: s,
		Mode:   collection.ClientFiltered,
		Fields: func(sm Sample) map[string]string {
			return map[string]string{
				"title": sm.Title,
				"genre": sm.Genre,
			}
		},
		Category: func(sm Sample) string { return sm.Genre },
	})
}

// UploadRules are the required file slots of a sample submission.
func UploadRules() []upload.Rule {
	return []upload.Rule{
		{Field: "image", Check: upload.IsImage},
		{Field: "demoFile", Check: upload.IsMP3},
		{Field: "mainContent", Check: upload.IsZip},
	}
}

// NewUpload opens a session for one sample submission attempt.
func (s *SampleService) NewUpload() *upload.Session {
	return upload.NewSession(UploadRules()...)
}

// Submit runs the session against the sample endpoints: POST for a new
// sample, PUT with the sampleId field for an update. Blocks until the
// transfer finishes; run it in a goroutine and watch sess.Events().
func (s *SampleService) Submit(ctx context.Context, sess *upload.Session, sampleID string, fields map[string]string, files map[string]upload.File) {
	method, path := http.MethodPost, "/api/samples"
	if sampleID != "" {
		method, path = http.MethodPut, "/api/samples/"+sampleID
		merged := make(map[string]string, len(fields)+1)
		for k, v := range fields {
			merged[k] = v
		}
		merged["sampleId"] = sampleID
		fields = merged
	}
	sess.Submit(ctx, s.gw, method, path, fields, files)
}
