// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameServerX

package store

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/GameServerX/dark-haven-website/internal/config"
	"github.com/GameServerX/dark-haven-website/internal/logger"
)

// s3ObjectStorage uploads objects into one bucket of an S3-compatible store.
type s3ObjectStorage struct {
	client    *s3.Client
	bucket    string
	publicURL string
	logger    *logger.Logger
}

// NewS3ObjectStorage builds the client from cfg. Static credentials are used
// when both keys are set, otherwise the default AWS credential chain.
// optFns are applied last and may override any client option.
func NewS3ObjectStorage(ctx context.Context, cfg config.Objects, log *logger.Logger, optFns ...func(*s3.Options)) (ObjectStorage, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Err(err).Str("func", "NewS3ObjectStorage").Msg("failed to load aws config")
		return nil, fmt.Errorf("error loading object storage config: %w", err)
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.UsePathStyle
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		},
	}
	opts = append(opts, optFns...)

	log.Info().
		Str("func", "NewS3ObjectStorage").
		Str("bucket", cfg.Bucket).
		Str("endpoint", cfg.Endpoint).
		Msg("object storage configured")

	return &s3ObjectStorage{
		client:    s3.NewFromConfig(awsCfg, opts...),
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
		logger:    log,
	}, nil
}

// PutObject uploads data under key and returns the public URL of the object.
func (s *s3ObjectStorage) PutObject(ctx context.Context, key, contentType string, data []byte) (string, error) {
	log := logger.FromContext(ctx)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		log.Err(err).
			Str("func", "*s3ObjectStorage.PutObject").
			Str("key", key).
			Int("size", len(data)).
			Msg("failed to put object")
		return "", fmt.Errorf("%w: %w", ErrPuttingObject, err)
	}

	log.Debug().Str("func", "*s3ObjectStorage.PutObject").Str("key", key).Msg("object stored")

	return PublicObjectURL(s.publicURL, key), nil
}

// PublicObjectURL joins the public base URL and the object key with exactly
// one slash between them.
func PublicObjectURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(key, "/")
}

// disabledObjectStorage rejects every upload. It stands in when no bucket
// is configured.
type disabledObjectStorage struct{}

// NewDisabledObjectStorage returns an [ObjectStorage] that always fails with
// [ErrObjectStorageDisabled].
func NewDisabledObjectStorage() ObjectStorage {
	return disabledObjectStorage{}
}

func (disabledObjectStorage) PutObject(context.Context, string, string, []byte) (string, error) {
	return "", ErrObjectStorageDisabled
}
