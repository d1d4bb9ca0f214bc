// Package s3 stores room photos and blog thumbnails in an S3 compatible
// bucket. With a public domain configured uploads are linked directly;
// otherwise they are served back through the image endpoint.
package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "s3.object_key"
	otelAttrBucket    = "s3.bucket"
)

var ErrObjectNotFound = errors.New("object not found")

// Object is a stored blob read back from the bucket.
type Object struct {
	Body        []byte
	ContentType string
}

// An empty bucketName falls back to the configured bucket.
type S3 interface {
	UploadFile(ctx context.Context, bucketName, directory string, file multipart.File, fileHeader *multipart.FileHeader, fileName string) (url string, err error)
	GetFile(ctx context.Context, bucketName, directory, objectName string) (Object, error)
	DeleteFile(ctx context.Context, bucketName, directory, objectName string) error
	GetObjectNameFromURL(bucketName, url string) (objectName string)
}

type s3Impl struct {
	client *s3.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	storage := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(storage.AccessKeyID, storage.SecretAccessKey, constant.Empty)),
		awsConfig.WithRegion(storage.Region),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load S3 configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if storage.APIEndpoint != constant.Empty {
			o.BaseEndpoint = aws.String(storage.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &s3Impl{client: client, cfg: cfg, otel: otel}
}

func (svc *s3Impl) scope(ctx context.Context, operation, bucket, key string) (context.Context, otel.Scope) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+"."+operation)
	scope.SetAttributes(map[string]any{
		otelAttrBucket:    bucket,
		otelAttrObjectKey: key,
	})

	return ctx, scope
}

func (svc *s3Impl) bucket(name string) string {
	if name == constant.Empty {
		return svc.cfg.External.S3.BucketName
	}

	return name
}

func (svc *s3Impl) UploadFile(ctx context.Context, bucketName, directory string, file multipart.File, fileHeader *multipart.FileHeader, fileName string) (url string, err error) {
	bucket, key := svc.bucket(bucketName), path.Join(directory, fileName)

	ctx, scope := svc.scope(ctx, "UploadFile", bucket, key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return constant.Empty, fmt.Errorf("failed to rewind upload: %w", err)
	}

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentType:   aws.String(fileHeader.Header.Get(constant.RequestHeaderContentType)),
		ContentLength: aws.Int64(fileHeader.Size),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.publicURL(key), nil
}

func (svc *s3Impl) GetFile(ctx context.Context, bucketName, directory, objectName string) (obj Object, err error) {
	bucket, key := svc.bucket(bucketName), path.Join(directory, objectName)

	ctx, scope := svc.scope(ctx, "GetFile", bucket, key)
	defer scope.End()
	defer func() {
		if !errors.Is(err, ErrObjectNotFound) {
			scope.TraceIfError(err)
		}
	}()

	output, err := svc.client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return obj, ErrObjectNotFound
		}

		log.Error().Err(err).Str("key", key).Msg("failed to get file from S3")

		return obj, fmt.Errorf("failed to get file from S3: %w", err)
	}
	defer output.Body.Close()

	if obj.Body, err = io.ReadAll(output.Body); err != nil {
		return obj, fmt.Errorf("failed to read file from S3: %w", err)
	}

	obj.ContentType = aws.ToString(output.ContentType)

	return obj, nil
}

func (svc *s3Impl) DeleteFile(ctx context.Context, bucketName, directory, objectName string) (err error) {
	bucket, key := svc.bucket(bucketName), path.Join(directory, objectName)

	ctx, scope := svc.scope(ctx, "DeleteFile", bucket, key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)}); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// GetObjectNameFromURL recovers the object name from any link UploadFile may
// have produced, or returns "" for a foreign URL.
func (svc *s3Impl) GetObjectNameFromURL(bucketName, url string) string {
	storage := svc.cfg.External.S3

	prefixes := []string{constant.ImagePathPrefix + "/"}

	if domain := strings.TrimSuffix(storage.PublicDomain, "/"); domain != constant.Empty {
		prefixes = append(prefixes, domain+"/")
	}

	if endpoint := strings.TrimSuffix(storage.APIEndpoint, "/"); endpoint != constant.Empty {
		prefixes = append(prefixes, endpoint+"/"+svc.bucket(bucketName)+"/")
	}

	for _, prefix := range prefixes {
		if name, found := strings.CutPrefix(url, prefix); found && name != constant.Empty {
			return path.Base(name)
		}
	}

	return constant.Empty
}

func (svc *s3Impl) publicURL(key string) string {
	domain := strings.TrimSuffix(svc.cfg.External.S3.PublicDomain, "/")
	if domain == constant.Empty {
		return path.Join(constant.ImagePathPrefix, key)
	}

	return domain + "/" + key
}
