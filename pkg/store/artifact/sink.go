package artifact

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

const DefaultRegion = "us-east-1"

// Sink persists a rendered report and returns where it was written
type Sink interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

type fileSink struct {
	dir string
}

func NewFileSink(dir string) Sink {
	if dir == "" {
		dir = "."
	}
	return &fileSink{dir: dir}
}

func (s *fileSink) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	target := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", target).Int("bytes", len(data)).Msg("artifact written")
	return target, nil
}

// PutObjectAPI is the part of the S3 client the sink needs
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Sink struct {
	client PutObjectAPI
	bucket string
	prefix string
}

func NewS3Sink(client PutObjectAPI, bucket, prefix string) Sink {
	return &s3Sink{client: client, bucket: bucket, prefix: prefix}
}

// NewS3SinkFromEnv builds an S3 sink from the default AWS credential chain
func NewS3SinkFromEnv(ctx context.Context, bucket, prefix, region string) (Sink, error) {
	if region == "" {
		region = DefaultRegion
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithDefaultRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return NewS3Sink(s3.NewFromConfig(awsCfg), bucket, prefix), nil
}

func (s *s3Sink) Save(ctx context.Context, name string, data []byte) (string, error) {
	key := path.Join(s.prefix, name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awssdk.String(s.bucket),
		Key:         awssdk.String(key),
		Body:        bytes.NewReader(data),
		ContentType: awssdk.String(contentType(name)),
	})
	if err != nil {
		return "", fmt.Errorf("upload s3://%s/%s: %w", s.bucket, key, err)
	}

	location := fmt.Sprintf("s3://%s/%s", s.bucket, key)
	zerolog.Ctx(ctx).Debug().Str("location", location).Int("bytes", len(data)).Msg("artifact uploaded")
	return location, nil
}

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
