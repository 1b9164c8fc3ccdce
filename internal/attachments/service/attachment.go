package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"lumiere/pkg/config"
	apperrors "lumiere/pkg/errors"
)

// allowedContentTypes is the whitelist for dossier attachments.
var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
}

// PresignResult carries the presigned upload URL plus the storage key
// and a presigned download URL for the dossier record.
type PresignResult struct {
	Key         string `json:"key"`
	UploadURL   string `json:"upload_url"`
	DownloadURL string `json:"download_url"`
	ExpiresIn   int    `json:"expires_in_seconds"`
}

type AttachmentService interface {
	PresignUpload(ctx context.Context, fileName, contentType string, size int64) (*PresignResult, error)
	PresignDownload(ctx context.Context, key string) (string, error)
	Remove(ctx context.Context, key string) error
}

type attachmentService struct {
	cfg *config.Config
}

func NewAttachmentService(cfg *config.Config) AttachmentService {
	return &attachmentService{cfg: cfg}
}

func (s *attachmentService) s3Client(ctx context.Context) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(s.cfg.S3Region),
	}
	if s.cfg.S3AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.cfg.S3AccessKeyID, s.cfg.S3SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s.cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func storageKey(fileName string) string {
	d := time.Now()
	return fmt.Sprintf("attachments/%d/%02d/%v/%s", d.Year(), d.Month(), uuid.New(), fileName)
}

// PresignUpload validates the candidate file and returns presigned PUT
// and GET URLs. Nothing is written until the caller uploads to the URL.
func (s *attachmentService) PresignUpload(ctx context.Context, fileName, contentType string, size int64) (*PresignResult, error) {
	if fileName == "" {
		return nil, apperrors.InvalidInput("File name cannot be empty")
	}
	if !allowedContentTypes[contentType] {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Unsupported content type: %s", contentType))
	}
	if size <= 0 || size > int64(s.cfg.AttachmentMaxSize) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("File size must be between 1 and %d bytes", s.cfg.AttachmentMaxSize))
	}

	client, err := s.s3Client(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to initialize storage client", err)
	}
	presignClient := s3.NewPresignClient(client)

	key := storageKey(fileName)

	putReq, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.S3Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.cfg.PresignTTL))
	if err != nil {
		s.cfg.Log.Error("Failed to presign upload", "key", key, "error", err)
		return nil, apperrors.Internal("Failed to presign upload", err)
	}

	getReq, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.S3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.cfg.PresignTTL))
	if err != nil {
		s.cfg.Log.Error("Failed to presign download", "key", key, "error", err)
		return nil, apperrors.Internal("Failed to presign download", err)
	}

	s.cfg.Log.Info("Attachment upload presigned",
		"key", key,
		"content_type", contentType,
		"size", size,
	)

	return &PresignResult{
		Key:         key,
		UploadURL:   putReq.URL,
		DownloadURL: getReq.URL,
		ExpiresIn:   int(s.cfg.PresignTTL.Seconds()),
	}, nil
}

func (s *attachmentService) PresignDownload(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", apperrors.InvalidInput("Attachment key cannot be empty")
	}

	client, err := s.s3Client(ctx)
	if err != nil {
		return "", apperrors.Internal("Failed to initialize storage client", err)
	}
	presignClient := s3.NewPresignClient(client)

	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.S3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.cfg.PresignTTL))
	if err != nil {
		s.cfg.Log.Error("Failed to presign download", "key", key, "error", err)
		return "", apperrors.Internal("Failed to presign download", err)
	}

	return req.URL, nil
}

func (s *attachmentService) Remove(ctx context.Context, key string) error {
	if key == "" {
		return apperrors.InvalidInput("Attachment key cannot be empty")
	}

	client, err := s.s3Client(ctx)
	if err != nil {
		return apperrors.Internal("Failed to initialize storage client", err)
	}

	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.cfg.Log.Error("Failed to delete attachment", "key", key, "error", err)
		return apperrors.Internal("Failed to delete attachment", err)
	}

	s.cfg.Log.Info("Attachment deleted", "key", key)
	return nil
}
