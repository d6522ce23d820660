package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// FilePart is one binary field of a multipart submission.
type FilePart struct {
	Field   string
	Name    string
	MIME    string
	Content []byte
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// DoMultipart sends fields and files as multipart/form-data, reporting
// progress as (bytesSent, bytesTotal) while the body streams out. Progress
// may be nil. Cancelling ctx aborts the transfer.
func (c *Client) DoMultipart(ctx context.Context, method, path string, fields map[string]string, files []FilePart, progress func(sent, total int64)) (json.RawMessage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			`form-data; name="`+quoteEscaper.Replace(f.Field)+`"; filename="`+quoteEscaper.Replace(f.Name)+`"`)
		if f.MIME != "" {
			h.Set("Content-Type", f.MIME)
		}
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	total := int64(buf.Len())
	body := &progressReader{r: &buf, total: total, report: progress}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.ContentLength = total
	c.authorize(req)

	raw, _, err := c.roundTrip(req)
	return raw, err
}

// progressReader counts bytes as the transport drains the request body.
type progressReader struct {
	r      io.Reader
	total  int64
	sent   int64
	report func(sent, total int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.report != nil {
			p.report(p.sent, p.total)
		}
	}
	return n, err
}
