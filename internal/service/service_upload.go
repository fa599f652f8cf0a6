package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"

	"github.com/GameServerX/dark-haven-website/internal/config"
	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/internal/store"
	"github.com/GameServerX/dark-haven-website/internal/utils"
	"github.com/GameServerX/dark-haven-website/models"
)

const defaultUploadExtension = "png"

// contentTypes maps lower-case file extensions to the stored content type.
// Anything else is stored as application/octet-stream.
var contentTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"mp4":  "video/mp4",
	"webm": "video/webm",
	"mov":  "video/quicktime",
}

type uploadService struct {
	objectStorage store.ObjectStorage
	ids           utils.IDGenerator

	keyPrefix string
	maxSize   int64

	logger *logger.Logger
}

func NewUploadService(objectStorage store.ObjectStorage, cfg config.StructuredConfig, logger *logger.Logger) UploadService {
	return &uploadService{
		objectStorage: objectStorage,
		ids:           utils.NewUUIDGenerator(),
		keyPrefix:     strings.Trim(cfg.Storage.Objects.KeyPrefix, "/"),
		maxSize:       cfg.App.MaxUploadSize,
		logger:        logger,
	}
}

// Upload decodes the base64 payload (optionally a data URL) and stores it
// under "<prefix>/<id>.<ext>".
func (s *uploadService) Upload(ctx context.Context, user models.User, request models.UploadRequest) (models.UploadResult, error) {
	log := logger.FromContext(ctx)

	data, err := decodeUpload(request.File)
	if err != nil {
		return models.UploadResult{}, err
	}
	if int64(len(data)) > s.maxSize {
		return models.UploadResult{}, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidDataProvided, s.maxSize)
	}

	ext := uploadExtension(request.FileName)
	fileName := s.ids.Generate() + "." + ext
	key := fileName
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + fileName
	}

	url, err := s.objectStorage.PutObject(ctx, key, contentTypeFor(ext), data)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Str("key", key).Msg("upload failed")
		return models.UploadResult{}, fmt.Errorf("upload failed: %w", err)
	}

	log.Info().Int64("user_id", user.UserID).Str("key", key).Int("size", len(data)).Msg("file uploaded")

	return models.UploadResult{Success: true, URL: url, FileName: fileName}, nil
}

// decodeUpload strips a "data:<type>;base64," prefix and decodes the rest.
func decodeUpload(file string) ([]byte, error) {
	file = strings.TrimSpace(file)
	if _, payload, found := strings.Cut(file, ","); found {
		file = payload
	}
	if file == "" {
		return nil, fmt.Errorf("%w: no file data provided", ErrInvalidDataProvided)
	}

	data, err := base64.StdEncoding.DecodeString(file)
	if err != nil {
		return nil, fmt.Errorf("%w: file is not valid base64", ErrInvalidDataProvided)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no file data provided", ErrInvalidDataProvided)
	}
	return data, nil
}

// uploadExtension returns the lower-case extension of name, or "png" when
// name has none. Only the last path element counts.
func uploadExtension(name string) string {
	ext := strings.TrimPrefix(path.Ext(path.Base(name)), ".")
	ext = strings.ToLower(ext)
	if ext == "" || strings.ContainsAny(ext, `/\`) {
		return defaultUploadExtension
	}
	return ext
}

func contentTypeFor(ext string) string {
	if contentType, ok := contentTypes[ext]; ok {
		return contentType
	}
	return "application/octet-stream"
}
