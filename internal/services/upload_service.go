package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/yoockh/folio/internal/models"
	pgrepo "github.com/yoockh/folio/internal/repositories/postgres"
	"github.com/yoockh/folio/internal/storage"
	"github.com/yoockh/folio/internal/utils"
)

const MaxUploadSize = 5 << 20

var allowedUploadTypes = []string{"image/png", "image/jpeg", "image/webp", "image/gif", "application/pdf"}

type UploadService interface {
	// Upload stores a user's file; its type is sniffed from the content.
	Upload(ctx context.Context, userID, fileName string, r io.Reader) (*models.Upload, error)
}

type deleter interface {
	Delete(ctx context.Context, objectName string) error
}

type uploadService struct {
	store   storage.Uploader
	uploads pgrepo.UploadRepository
	now     func() time.Time
}

func NewUploadService(store storage.Uploader, uploads pgrepo.UploadRepository) UploadService {
	return &uploadService{store: store, uploads: uploads, now: func() time.Time { return time.Now().UTC() }}
}

func (s *uploadService) Upload(ctx context.Context, userID, fileName string, r io.Reader) (*models.Upload, error) {
	const op = "UploadService.Upload"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if s.store == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "file storage is not configured", nil)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "failed to read file", err)
	}
	if len(data) == 0 {
		return nil, utils.Invalid(op, map[string]string{"file": "File is empty"})
	}
	if len(data) > MaxUploadSize {
		return nil, utils.Invalid(op, map[string]string{"file": "File must be at most 5 MB"})
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowedUploadTypes...) {
		return nil, utils.Invalid(op, map[string]string{
			"file": fmt.Sprintf("Unsupported file type %s", mt.String()),
		})
	}

	now := s.now()
	id := uuid.NewString()
	key := fmt.Sprintf("uploads/%s/%04d/%02d/%s%s", userID, now.Year(), int(now.Month()), id, mt.Extension())

	url, err := s.store.Upload(ctx, key, mt.String(), bytes.NewReader(data))
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to store file", err)
	}

	u := &models.Upload{
		ID:        id,
		UserID:    userID,
		ObjectKey: key,
		URL:       url,
		FileName:  path.Base(fileName),
		MimeType:  mt.String(),
		Size:      int64(len(data)),
		CreatedAt: now,
	}
	if err := s.uploads.Insert(ctx, u); err != nil {
		if d, ok := s.store.(deleter); ok {
			_ = d.Delete(ctx, key)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to save upload", err)
	}
	return u, nil
}
