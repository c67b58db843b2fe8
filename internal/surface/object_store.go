package surface

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/Gunvolt24/pos_print/internal/domain"
	"github.com/Gunvolt24/pos_print/internal/ports"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Проверка, что ObjectStoreSurface удовлетворяет интерфейсу LocalRenderSurface.
var _ ports.LocalRenderSurface = (*ObjectStoreSurface)(nil)

// objectPutter — часть s3.Client, которая нужна поверхности.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config — доступ к S3-совместимому хранилищу (AWS, R2, MinIO).
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3Client — клиент со статическими ключами; при заданном Endpoint — path-style адресация.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// ObjectStoreSurface — архив документов печати в бакете.
// Ключ: <prefix>YYYY/MM/DD/<job>-<destination>.html; число копий — в метаданных.
type ObjectStoreSurface struct {
	client objectPutter
	bucket string
	prefix string
	now    func() time.Time
}

// NewObjectStoreSurface — конструктор ObjectStoreSurface.
func NewObjectStoreSurface(client objectPutter, bucket, prefix string) *ObjectStoreSurface {
	return &ObjectStoreSurface{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

// Render — загрузка документа.
func (s *ObjectStoreSurface) Render(ctx context.Context, doc domain.PrintDocument) error {
	body, err := BuildDocument(doc)
	if err != nil {
		return err
	}
	key := s.key(doc)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			"order-number": doc.OrderNumber,
			"destination":  string(doc.Destination),
			"copies":       strconv.Itoa(copiesOf(doc)),
			"paper":        doc.Paper.Name,
		},
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}

func (s *ObjectStoreSurface) key(doc domain.PrintDocument) string {
	day := s.now().UTC().Format("2006/01/02")
	return s.prefix + path.Join(day, fmt.Sprintf("%s-%s.html", doc.JobID, doc.Destination))
}
