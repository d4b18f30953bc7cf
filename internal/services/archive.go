package services

import (
	"bytes"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
)

// ArchiveService keeps a copy of every submitted batch file in S3-compatible
// storage so failed runs can be diagnosed after the staged upload target has
// expired. The service is optional; without S3 configuration runs proceed
// without archival.
type ArchiveService struct {
	s3Client *s3.S3
	bucket   string
}

// NewArchiveService creates an archive service from the environment
func NewArchiveService() (*ArchiveService, error) {
	endpoint := os.Getenv("S3_ENDPOINT")
	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")
	bucket := os.Getenv("S3_BUCKET")

	if accessKey == "" || secretKey == "" || bucket == "" {
		return nil, fmt.Errorf("S3 configuration missing")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("us-east-1"),
		Endpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(
			accessKey,
			secretKey,
			"",
		),
		S3ForcePathStyle: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &ArchiveService{
		s3Client: s3.New(sess),
		bucket:   bucket,
	}, nil
}

// ArchiveBatch stores the serialized batch under the run's id and returns
// the object key.
func (s *ArchiveService) ArchiveBatch(runID string, content []byte) (string, error) {
	key := fmt.Sprintf("sku-batches/%s.jsonl", runID)

	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("text/jsonl"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive batch: %w", err)
	}

	log.Debug().Str("key", key).Int("bytes", len(content)).Msg("Batch archived")
	return key, nil
}
