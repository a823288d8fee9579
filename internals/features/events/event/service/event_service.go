package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	eventModel "eventhub_backend/internals/features/events/event/model"
	helper "eventhub_backend/internals/helpers"
	"eventhub_backend/internals/helpers/imagestore"
)

// MaxEventImageBytes caps one uploaded event image.
const MaxEventImageBytes = 10 * 1024 * 1024

type ImageUpload struct {
	Filename string
	Data     []byte
}

// CheckImages runs the collection minimum plus the format and size gates for
// the whole submission before any row is written or any network call is made.
// Failures land on the "images" key, one message per offending file.
func CheckImages(uploads []ImageUpload, maxBytes int64) helper.FieldErrors {
	fe := helper.FieldErrors{}
	if len(uploads) == 0 {
		fe.Add("images", "At least one image is required.")
		return fe
	}
	for _, up := range uploads {
		if _, err := imagestore.Check(up.Filename, up.Data, maxBytes); err != nil {
			fe.Add("images", err.Error())
		}
	}
	return fe
}

// CreateEvent persists the event, its price zones and its images in one
// transaction: either every row lands or none does. Uploads run inside the
// boundary; when a later step fails, the rows roll back and the assets that
// already reached the CDN are removed best-effort.
func CreateEvent(ctx context.Context, db *gorm.DB, store imagestore.Store, ev *eventModel.EventModel, uploads []ImageUpload) error {
	var uploadedURLs []string

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// zone rows ride along through the association
		if err := tx.Create(ev).Error; err != nil {
			return fmt.Errorf("create event: %w", err)
		}

		for _, up := range uploads {
			uploaded, err := imagestore.Process(ctx, store, up.Filename, up.Data, imagestore.ProcessOptions{
				MaxBytes: MaxEventImageBytes,
			})
			if err != nil {
				return err
			}
			uploadedURLs = append(uploadedURLs, uploaded.URL)

			img := eventModel.EventImageModel{EventID: ev.ID, ImageURL: uploaded.URL}
			if err := tx.Create(&img).Error; err != nil {
				return fmt.Errorf("create event image: %w", err)
			}
			ev.Images = append(ev.Images, img)
		}
		return nil
	})
	if err != nil {
		rollbackUploads(store, uploadedURLs)
		ev.Images = nil
		return err
	}
	return nil
}

// DeleteEvent removes the row (zones and images cascade at the FK) and then
// clears the remote assets. CDN cleanup is best-effort: the rows are already
// gone and an orphaned asset only costs storage.
func DeleteEvent(ctx context.Context, db *gorm.DB, store imagestore.Store, ev *eventModel.EventModel) error {
	urls := make([]string, 0, len(ev.Images))
	for _, img := range ev.Images {
		urls = append(urls, img.ImageURL)
	}

	if err := db.WithContext(ctx).Delete(ev).Error; err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	rollbackUploads(store, urls)
	return nil
}

func rollbackUploads(store imagestore.Store, urls []string) {
	for _, u := range urls {
		if err := store.Delete(context.Background(), u); err != nil {
			log.Printf("remove uploaded image %s: %v", u, err)
		}
	}
}

// IsReject reports a user-correctable per-file failure.
func IsReject(err error) (*imagestore.RejectError, bool) {
	var reject *imagestore.RejectError
	ok := errors.As(err, &reject)
	return reject, ok
}
