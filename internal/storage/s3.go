package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	appconfig "grounds-backend/internal/config"
	"grounds-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ReportArchiver uploads generated reports to an S3-compatible bucket.
// When archiving is not configured it degrades to a no-op, reports are
// still served to the caller.
type ReportArchiver struct {
	client *s3.Client
	bucket string
}

// NewReportArchiver builds the archiver from config. Returns a disabled
// (nil-client) archiver when the archive block is not configured.
func NewReportArchiver(cfg *appconfig.Config) *ReportArchiver {
	if !cfg.Archive.Enabled {
		return &ReportArchiver{}
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Archive.Region),
	)
	if err != nil {
		log.Printf("[Archive] S3 config failed, archiving disabled: %v", err)
		return &ReportArchiver{}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Archive.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Archive.Endpoint)
		}
	})

	return &ReportArchiver{client: client, bucket: cfg.Archive.Bucket}
}

// Enabled reports whether uploads will actually happen
func (a *ReportArchiver) Enabled() bool {
	return a.client != nil
}

// Archive uploads a report asynchronously. Failures are logged, never
// surfaced to the caller; the report was already delivered.
func (a *ReportArchiver) Archive(kind, filename string, data []byte) {
	if a.client == nil {
		return
	}

	key := fmt.Sprintf("reports/%s/%s/%s_%s",
		kind, timeutil.Now().Format("2006-01"), uuid.New().String()[:8], filename)

	payload := make([]byte, len(data))
	copy(payload, data)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(a.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(payload),
			ContentType: aws.String(contentTypeFor(filename)),
		})
		if err != nil {
			log.Printf("[Archive] upload %s failed: %v", key, err)
			return
		}
		log.Printf("[Archive] uploaded %s (%d bytes)", key, len(payload))
	}()
}

// ListArchived returns the keys of archived reports of one kind
func (a *ReportArchiver) ListArchived(ctx context.Context, kind string) ([]string, error) {
	if a.client == nil {
		return nil, nil
	}

	result, err := a.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String("reports/" + kind + "/"),
	})
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(result.Contents))
	for _, obj := range result.Contents {
		if obj.Key != nil {
			keys = append(keys, *obj.Key)
		}
	}
	return keys, nil
}

func contentTypeFor(filename string) string {
	switch {
	case len(filename) > 4 && filename[len(filename)-4:] == ".pdf":
		return "application/pdf"
	case len(filename) > 4 && filename[len(filename)-4:] == ".zip":
		return "application/zip"
	case len(filename) > 4 && filename[len(filename)-4:] == ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
