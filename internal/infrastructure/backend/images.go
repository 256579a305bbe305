package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"easylease-admin/internal/domain"
)

// UploadFile is one image forwarded to the upload endpoint.
type UploadFile struct {
	Name        string
	ContentType string
	Data        io.Reader
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadImages POST /listings/upload-images as multipart: one "images" part per
// file plus a "folder" field. Returns the stored URLs in upload order.
func (c *Client) UploadImages(ctx context.Context, folder string, files []UploadFile) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, quoteEscaper.Replace(f.Name)))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, f.Data); err != nil {
			return nil, fmt.Errorf("copy %s: %w", f.Name, err)
		}
	}
	if err := w.WriteField("folder", folder); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	res, err := fetch[domain.UploadedImages](ctx, c, request{
		method:      http.MethodPost,
		route:       "/listings/upload-images",
		path:        "/listings/upload-images",
		body:        &buf,
		contentType: w.FormDataContentType(),
	})
	if err != nil {
		return nil, err
	}
	return res.UploadedURLs, nil
}

// DeleteImage DELETE /listings/delete-image with {imageUrl}.
func (c *Client) DeleteImage(ctx context.Context, imageURL string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		route:  "/listings/delete-image",
		path:   "/listings/delete-image",
		json:   map[string]string{"imageUrl": imageURL},
	}, nil)
}
