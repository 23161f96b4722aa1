// Package publish uploads compiled bundles to object storage.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/syntax-framework/basset/cmn"
)

// CacheControl of published bundles, their names change with their contents
const CacheControl = "public, max-age=31536000, immutable"

var errorPublishRead = cmn.Err(
	"publish.read",
	"Unable to read the bundle", "File: %s", "Caused by: %s",
)

var errorPublishCredentials = cmn.Err(
	"publish.credentials",
	"AWS credentials not found in the environment", "Variables: %s",
)

var errorPublishBucket = cmn.Err(
	"publish.bucket",
	"A bucket is required to publish bundles",
)

// Uploader the subset of the S3 client used to publish
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 publishes bundles to bucket/prefix/<file name>
type S3 struct {
	Client Uploader
	Bucket string
	Prefix string

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Key the object key of a bundle
func (p *S3) Key(file string) string {
	prefix := strings.Trim(p.Prefix, "/")
	if prefix == "" {
		return filepath.Base(file)
	}
	return path.Join(prefix, filepath.Base(file))
}

// Publish uploads a compiled bundle, returns its object key
func (p *S3) Publish(ctx context.Context, file string) (string, error) {
	if p.Bucket == "" {
		return "", errorPublishBucket()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", errorPublishRead(file, err)
	}

	key := p.Key(file)
	contentType := mime.TypeByExtension(filepath.Ext(file))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = p.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.Bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(CacheControl),
		Metadata: map[string]string{
			"xxhash": cmn.HashXXH64(data),
		},
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}

	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("bundle published", slog.String("bucket", p.Bucket), slog.String("key", key))
	return key, nil
}

// PublishAll uploads every file, stopping at the first failure
func (p *S3) PublishAll(ctx context.Context, files []string) ([]string, error) {
	var keys []string
	for _, file := range files {
		key, err := p.Publish(ctx, file)
		if err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// EnvCredentials reads AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN
func EnvCredentials(lookup func(string) (string, bool)) aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		id, _ := lookup("AWS_ACCESS_KEY_ID")
		secret, _ := lookup("AWS_SECRET_ACCESS_KEY")
		if id == "" || secret == "" {
			return aws.Credentials{}, errorPublishCredentials("AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY")
		}
		token, _ := lookup("AWS_SESSION_TOKEN")
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    token,
			Source:          "basset environment",
		}, nil
	})
}

// NewS3Client a client for region with credentials from the environment. A non empty endpoint
// targets an S3 compatible service with path style addressing.
func NewS3Client(region string, endpoint string) *s3.Client {
	return s3.New(s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(EnvCredentials(os.LookupEnv)),
	}, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
}
