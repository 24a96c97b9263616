package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/barber-booking/internal/config"
)

// Uploaded images are normalized before storage: downscaled to maxWidth and
// re-encoded as webp.
const (
	maxWidth    = 1600
	webpQuality = 80
)

// Store keeps service and gallery images in an S3-compatible bucket and
// addresses them by public URL. A nil Store (no S3 configured) rejects
// uploads, which keeps local development without object storage possible.
type Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewStore(cfg *config.Config) *Store {
	if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		return nil
	}

	awsCfg := aws.Config{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{
		client:  client,
		bucket:  cfg.S3Bucket,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
}

// Upload normalizes the image and stores it under the given prefix
// ("services" or "gallery"), returning the object key.
func (s *Store) Upload(ctx context.Context, prefix string, r io.Reader) (string, error) {
	if s == nil {
		return "", fmt.Errorf("media store not configured")
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	src = downscale(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := fmt.Sprintf("%s/%s.webp", prefix, uuid.New().String())

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return key, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s == nil || key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// URL resolves an object key to its public address.
func (s *Store) URL(key string) string {
	if s == nil || key == "" {
		return ""
	}
	return s.baseURL + "/" + key
}

func downscale(src image.Image) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxWidth {
		return src
	}

	h := b.Dy() * maxWidth / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
