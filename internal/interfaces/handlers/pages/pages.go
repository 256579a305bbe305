// Package pages holds what every dashboard handler shares: rendering inside the
// layout, the session id, form field access and the generic list/form/detail flow.
package pages

import (
	"mime/multipart"
	"strconv"
	"strings"

	"easylease-admin/internal/application/forms"
	"easylease-admin/internal/application/tables"
	"easylease-admin/internal/infrastructure/backend"
	"easylease-admin/internal/interfaces/views"
	"easylease-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// BusyAlert is shown when the same draft already has a request running.
const BusyAlert = "Ya hay una operación en curso, espera a que termine."

// Render writes page inside the dashboard layout.
func Render(c *fiber.Ctx, page, title, alert string, data interface{}) error {
	return c.Render(page, views.Page{
		Title: title,
		Path:  c.Path(),
		Alert: alert,
		Data:  data,
	})
}

// Missing renders the not-found / could-not-load page with status.
func Missing(c *fiber.Ctx, status int, message, back string) error {
	c.Status(status)
	return Render(c, "missing", "No encontrado", "", views.MissingData{Status: status, Message: message, Back: back})
}

// SessionID is the view-state key of the caller.
func SessionID(c *fiber.Ctx) string {
	return middleware.GetSessionID(c)
}

// Confirmed reads the answer to the browser confirm() dialog that the delete
// buttons copy into the hidden "confirmed" field.
func Confirmed(c *fiber.Ctx) tables.Confirmer {
	answer := c.FormValue("confirmed") == "yes"
	return tables.ConfirmFunc(func(string) bool { return answer })
}

// Fields exposes the submitted form values to the draft appliers.
func Fields(c *fiber.Ctx) forms.FieldSource {
	return func(name string) string { return strings.TrimSpace(c.FormValue(name)) }
}

// Action splits a button value such as "move-image:2:0" into its name and
// integer arguments. Non-numeric arguments are dropped.
func Action(raw string) (string, []int) {
	parts := strings.Split(raw, ":")
	args := make([]int, 0, len(parts)-1)
	for _, p := range parts[1:] {
		if n, err := strconv.Atoi(p); err == nil {
			args = append(args, n)
		}
	}
	return parts[0], args
}

// Uploads opens the files picked in field. The returned release closes them and
// must be called once the upload finished.
func Uploads(c *fiber.Ctx, field string) ([]forms.Upload, func(), error) {
	release := func() {}
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil, release, nil
	}
	mf, err := c.MultipartForm()
	if err != nil {
		return nil, release, err
	}

	var opened []multipart.File
	release = func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	var uploads []forms.Upload
	for _, fh := range mf.File[field] {
		// An empty file input still submits one nameless part.
		if fh.Filename == "" && fh.Size == 0 {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			release()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		uploads = append(uploads, forms.Upload{
			UploadFile: backend.UploadFile{
				Name:        fh.Filename,
				ContentType: fh.Header.Get(fiber.HeaderContentType),
				Data:        f,
			},
			Size: fh.Size,
		})
	}
	return uploads, release, nil
}
