// Package storage uploads catalog media (destination photos, tour
// itinerary images, banners) to an S3-compatible bucket and hands back
// the public URL stored on the catalog records.
package storage

import (
    "context"
    "errors"
    "fmt"
    "io"
    "path"
    "strings"
    "time"

    "github.com/aws/aws-sdk-go-v2/aws"
    awsconfig "github.com/aws/aws-sdk-go-v2/config"
    "github.com/aws/aws-sdk-go-v2/credentials"
    "github.com/aws/aws-sdk-go-v2/service/s3"
)

// MediaConfig holds bucket configuration. Endpoint and the static keys
// are optional; without keys the SDK default credential chain is used.
type MediaConfig struct {
    Bucket    string
    Region    string
    Endpoint  string
    AccessKey string
    SecretKey string
    PublicURL string
}

// MediaStore wraps an S3 client for media uploads.
type MediaStore struct {
    client    *s3.Client
    bucket    string
    publicURL string
}

// NewMediaStore builds a MediaStore from configuration.
func NewMediaStore(ctx context.Context, cfg MediaConfig) (*MediaStore, error) {
    if cfg.Bucket == "" {
        return nil, errors.New("media storage: bucket not configured")
    }

    region := cfg.Region
    if region == "" {
        region = "auto"
    }

    opts := []func(*awsconfig.LoadOptions) error{
        awsconfig.WithRegion(region),
    }
    if cfg.AccessKey != "" && cfg.SecretKey != "" {
        opts = append(opts, awsconfig.WithCredentialsProvider(
            credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
        ))
    }

    awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
    if err != nil {
        return nil, fmt.Errorf("load aws config: %w", err)
    }

    client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
        if cfg.Endpoint != "" {
            o.BaseEndpoint = aws.String(cfg.Endpoint)
            o.UsePathStyle = true // S3-compatible stores want path-style URLs
        }
    })

    return &MediaStore{
        client:    client,
        bucket:    cfg.Bucket,
        publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
    }, nil
}

// Upload stores the object under a timestamped key below prefix and
// returns the public URL for it. The original filename only contributes
// its extension; the key itself is server-generated.
func (m *MediaStore) Upload(ctx context.Context, prefix, filename, contentType string, size int64, body io.Reader) (string, error) {
    ext := strings.ToLower(path.Ext(filename))
    key := fmt.Sprintf("%s/%d%s", strings.Trim(prefix, "/"), time.Now().UnixNano(), ext)

    _, err := m.client.PutObject(ctx, &s3.PutObjectInput{
        Bucket:        aws.String(m.bucket),
        Key:           aws.String(key),
        Body:          body,
        ContentLength: aws.Int64(size),
        ContentType:   aws.String(contentType),
    })
    if err != nil {
        return "", fmt.Errorf("put object: %w", err)
    }

    return m.URLFor(key), nil
}

// Delete removes the object behind a previously returned URL. Unknown
// URLs are ignored so catalog deletes stay idempotent.
func (m *MediaStore) Delete(ctx context.Context, url string) error {
    key := m.keyFromURL(url)
    if key == "" {
        return nil
    }
    _, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
        Bucket: aws.String(m.bucket),
        Key:    aws.String(key),
    })
    if err != nil {
        return fmt.Errorf("delete object: %w", err)
    }
    return nil
}

// URLFor maps an object key to its public URL.
func (m *MediaStore) URLFor(key string) string {
    if m.publicURL != "" {
        return m.publicURL + "/" + key
    }
    return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", m.bucket, key)
}

func (m *MediaStore) keyFromURL(url string) string {
    if m.publicURL != "" && strings.HasPrefix(url, m.publicURL+"/") {
        return strings.TrimPrefix(url, m.publicURL+"/")
    }
    host := fmt.Sprintf("https://%s.s3.amazonaws.com/", m.bucket)
    if strings.HasPrefix(url, host) {
        return strings.TrimPrefix(url, host)
    }
    return ""
}
