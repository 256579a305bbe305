package forms

import (
	"context"
	"fmt"
	"strings"

	"easylease-admin/internal/application/tables"
	"easylease-admin/internal/domain"
	"easylease-admin/internal/infrastructure/backend"

	"github.com/rs/zerolog/log"
)

const (
	MaxImageBytes  = 5 << 20
	MaxImageCount  = 10
	ImageLimitHint = "Máximo 5MB por imagen, hasta 10 imágenes"

	confirmImageDelete = "¿Estás seguro de que quieres eliminar esta imagen?"
)

// AddImage appends a trimmed URL unless it is blank or already present.
func AddImage(images []string, url string) []string {
	url = strings.TrimSpace(url)
	if url == "" {
		return images
	}
	for _, img := range images {
		if img == url {
			return images
		}
	}
	return append(images, url)
}

// RemoveImage drops the image at index i; out of range indexes are ignored.
func RemoveImage(images []string, i int) []string {
	if i < 0 || i >= len(images) {
		return images
	}
	out := make([]string, 0, len(images)-1)
	out = append(out, images[:i]...)
	return append(out, images[i+1:]...)
}

// MoveImage takes the image at from out of the list and reinserts it at to,
// shifting the images in between. The result has the same elements.
func MoveImage(images []string, from, to int) []string {
	n := len(images)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return images
	}
	out := make([]string, 0, n)
	moved := images[from]
	for i, img := range images {
		if i != from {
			out = append(out, img)
		}
	}
	out = append(out, "")
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out
}

// MergeUploaded appends uploaded URLs in the order the backend returned them.
func MergeUploaded(images, uploaded []string) []string {
	return append(images, uploaded...)
}

// DropImage removes every occurrence of url.
func DropImage(images []string, url string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img != url {
			out = append(out, img)
		}
	}
	return out
}

// ListingAPI is the part of the backend client the listing form uses.
type ListingAPI interface {
	CreateListing(ctx context.Context, in domain.ListingInput) (domain.Listing, error)
	UpdateListing(ctx context.Context, id string, in domain.ListingInput) (domain.Listing, error)
	UploadImages(ctx context.Context, folder string, files []backend.UploadFile) ([]string, error)
	DeleteImage(ctx context.Context, imageURL string) error
}

// Upload is one file picked in the image uploader.
type Upload struct {
	backend.UploadFile
	Size int64
}

// Listings is the listing form: the shared submit flow plus image management.
type Listings struct {
	*Form[domain.ListingInput]
	api    ListingAPI
	folder string
}

// AddImage adds a URL typed by hand.
func (l *Listings) AddImage(ctx context.Context, sid, id, url string) (Draft[domain.ListingInput], error) {
	return l.Edit(ctx, sid, id, func(d *Draft[domain.ListingInput]) error {
		d.Input.Images = AddImage(d.Input.Images, url)
		return nil
	})
}

func (l *Listings) RemoveImage(ctx context.Context, sid, id string, index int) (Draft[domain.ListingInput], error) {
	return l.Edit(ctx, sid, id, func(d *Draft[domain.ListingInput]) error {
		d.Input.Images = RemoveImage(d.Input.Images, index)
		return nil
	})
}

func (l *Listings) MoveImage(ctx context.Context, sid, id string, from, to int) (Draft[domain.ListingInput], error) {
	return l.Edit(ctx, sid, id, func(d *Draft[domain.ListingInput]) error {
		d.Input.Images = MoveImage(d.Input.Images, from, to)
		return nil
	})
}

// UploadImages sends files to the backend and appends the stored URLs to the draft.
func (l *Listings) UploadImages(ctx context.Context, sid, id string, files []Upload) (Outcome, Draft[domain.ListingInput], error) {
	if len(files) == 0 {
		d, _, err := l.Load(ctx, sid, id)
		return Outcome{}, d, err
	}
	if alert := checkUploads(files); alert != "" {
		d, _, err := l.Load(ctx, sid, id)
		return Outcome{Alert: alert}, d, err
	}

	_, err := l.Edit(ctx, sid, id, func(d *Draft[domain.ListingInput]) error {
		if d.Uploading {
			return ErrInFlight
		}
		d.Uploading = true
		return nil
	})
	if err != nil {
		return Outcome{}, Draft[domain.ListingInput]{}, err
	}

	parts := make([]backend.UploadFile, len(files))
	for i, f := range files {
		parts[i] = f.UploadFile
	}
	urls, callErr := l.api.UploadImages(ctx, l.folder, parts)

	d, err := l.Edit(ctx, sid, id, func(d *Draft[domain.ListingInput]) error {
		d.Uploading = false
		if callErr == nil {
			d.Input.Images = MergeUploaded(d.Input.Images, urls)
		}
		return nil
	})
	if callErr != nil {
		log.Error().Err(callErr).Str("folder", l.folder).Int("files", len(files)).Msg("Upload error")
		return Outcome{Alert: imageAlert("Error uploading images", callErr)}, d, err
	}
	return Outcome{}, d, err
}

// DeleteImage removes an image from storage after confirmation and then from the draft.
func (l *Listings) DeleteImage(ctx context.Context, sid, id, url string, confirm tables.Confirmer) (Outcome, Draft[domain.ListingInput], error) {
	if confirm == nil || !confirm.Confirm(confirmImageDelete) {
		d, _, err := l.Load(ctx, sid, id)
		return Outcome{}, d, err
	}

	_, err := l.Edit(ctx, sid, id, func(d *Draft[domain.ListingInput]) error {
		if d.DeletingImage == url {
			return ErrInFlight
		}
		d.DeletingImage = url
		return nil
	})
	if err != nil {
		return Outcome{}, Draft[domain.ListingInput]{}, err
	}

	callErr := l.api.DeleteImage(ctx, url)

	d, err := l.Edit(ctx, sid, id, func(d *Draft[domain.ListingInput]) error {
		if d.DeletingImage == url {
			d.DeletingImage = ""
		}
		if callErr == nil {
			d.Input.Images = DropImage(d.Input.Images, url)
		}
		return nil
	})
	if callErr != nil {
		log.Error().Err(callErr).Str("image", url).Msg("Delete error")
		return Outcome{Alert: imageAlert("Error deleting image", callErr)}, d, err
	}
	return Outcome{}, d, err
}

// ConfirmImageDelete is the prompt shown before removing an uploaded image.
func ConfirmImageDelete() string { return confirmImageDelete }

func checkUploads(files []Upload) string {
	if len(files) > MaxImageCount {
		return fmt.Sprintf("Error uploading images: %s", ImageLimitHint)
	}
	for _, f := range files {
		if f.Size > MaxImageBytes {
			return fmt.Sprintf("Error uploading images: %s supera 5MB", f.Name)
		}
	}
	return ""
}

func imageAlert(prefix string, err error) string {
	if msg, ok := backend.Detail(err); ok {
		return prefix + ": " + msg
	}
	return prefix
}
