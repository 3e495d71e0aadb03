package objectstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/pulse-atlas/pkg/models/domain"
	"github.com/de-tools/pulse-atlas/pkg/store/dataset"
	"github.com/rs/zerolog"
)

// ObjectGetter is the subset of the S3 API used to fetch the dataset.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type s3Loader struct {
	client ObjectGetter
	bucket string
	key    string
}

// NewClient creates an S3 client from the default AWS credential chain.
// An empty region falls back to the environment/shared config.
func NewClient(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// NewLoader reads the survey CSV stored at an s3://bucket/key URI.
func NewLoader(client ObjectGetter, uri string) (dataset.Loader, error) {
	if client == nil {
		return nil, fmt.Errorf("s3 client is nil")
	}
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	return &s3Loader{client: client, bucket: bucket, key: key}, nil
}

// ParseURI splits an s3://bucket/key URI.
func ParseURI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("parse s3 uri: %w", err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("unsupported scheme %q, expected s3", u.Scheme)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("s3 uri %q must name a bucket and a key", uri)
	}
	return u.Host, key, nil
}

func (l *s3Loader) Load(ctx context.Context) (*domain.Dataset, error) {
	logger := zerolog.Ctx(ctx)

	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(l.key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", l.bucket, l.key, err)
	}
	defer out.Body.Close()

	ds, err := dataset.ReadCSV(out.Body)
	if err != nil {
		return nil, fmt.Errorf("load s3://%s/%s: %w", l.bucket, l.key, err)
	}

	logger.Info().
		Str("bucket", l.bucket).
		Str("key", l.key).
		Int("records", ds.Len()).
		Msg("dataset loaded")
	return ds, nil
}
