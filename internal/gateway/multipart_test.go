package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoMultipart(t *testing.T) {
	t.Run("fields and files arrive intact", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(32<<20))

			assert.Equal(t, "Deep Cuts", r.FormValue("title"))
			assert.Equal(t, "afrohouse", r.FormValue("genre"))

			f, hdr, err := r.FormFile("demoFile")
			require.NoError(t, err)
			defer f.Close()
			assert.Equal(t, "demo.mp3", hdr.Filename)
			assert.Equal(t, "audio/mpeg", hdr.Header.Get("Content-Type"))
			data, err := io.ReadAll(f)
			require.NoError(t, err)
			assert.Equal(t, []byte("ID3-bytes"), data)

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"s1"}`))
		}))
		defer srv.Close()

		c := New(srv.URL)
		raw, err := c.DoMultipart(context.Background(), http.MethodPost, "/api/samples",
			map[string]string{"title": "Deep Cuts", "genre": "afrohouse"},
			[]FilePart{{Field: "demoFile", Name: "demo.mp3", MIME: "audio/mpeg", Content: []byte("ID3-bytes")}},
			nil,
		)

		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"s1"}`, string(raw))
	})

	t.Run("progress is monotonic and reaches the total", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.Copy(io.Discard, r.Body)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		var sents []int64
		var total int64
		c := New(srv.URL)
		_, err := c.DoMultipart(context.Background(), http.MethodPost, "/api/samples",
			nil,
			[]FilePart{{Field: "mainContent", Name: "pack.zip", Content: make([]byte, 256<<10)}},
			func(sent, tot int64) {
				sents = append(sents, sent)
				total = tot
			},
		)

		require.NoError(t, err)
		require.NotEmpty(t, sents)
		for i := 1; i < len(sents); i++ {
			assert.GreaterOrEqual(t, sents[i], sents[i-1])
		}
		assert.Equal(t, total, sents[len(sents)-1])
	})

	t.Run("non-2xx surfaces the server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			_, _ = w.Write([]byte(`{"error":"archive too large"}`))
		}))
		defer srv.Close()

		c := New(srv.URL)
		_, err := c.DoMultipart(context.Background(), http.MethodPost, "/api/samples", nil,
			[]FilePart{{Field: "mainContent", Name: "pack.zip", Content: []byte("zip")}}, nil)

		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusRequestEntityTooLarge, httpErr.StatusCode)
		assert.Equal(t, "archive too large", httpErr.Message)
	})
}
