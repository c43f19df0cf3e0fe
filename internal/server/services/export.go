package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/copyit/internal/server/models"
	"github.com/google/uuid"
)

const exportLinkValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) error {
		_, err := c.PutObject(ctx, in)
		return err
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Export is the document written to object storage.
type Export struct {
	UserID     string          `json:"user_id"`
	ExportedAt time.Time       `json:"exported_at"`
	Entries    []*models.Entry `json:"entries"`
}

func exportKey(userID string, now time.Time) string {
	return fmt.Sprintf("users/%s/exports/%04d/%02d/%02d/%v.json", userID, now.Year(), now.Month(), now.Day(), uuid.New())
}

func (s *EntryService) s3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Export uploads the owner's entries as JSON and returns the object key
// and a presigned download URL valid for 15 minutes.
func (s *EntryService) Export(ctx context.Context, userID string) (string, string, error) {
	entries, err := s.List(ctx, userID)
	if err != nil {
		return "", "", err
	}

	now := time.Now().UTC()
	body, err := json.MarshalIndent(Export{UserID: userID, ExportedAt: now, Entries: entries}, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("error encoding export: %w", err)
	}

	client, err := s.s3Client(ctx)
	if err != nil {
		return "", "", fmt.Errorf("error configuring s3: %w", err)
	}

	bucket := s.config.S3Bucket
	key := exportKey(userID, now)

	if err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return "", "", fmt.Errorf("error uploading export: %w", err)
	}

	req, err := presignGetObject(s3.NewPresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(exportLinkValidity))
	if err != nil {
		return "", "", fmt.Errorf("error presigning export: %w", err)
	}

	s.logger.Info(ctx, "entries exported", "user_id", userID, "key", key, "count", len(entries))
	return key, req.URL, nil
}
