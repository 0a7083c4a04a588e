package service

import (
	"career_coach_backend/internal/config"
	"career_coach_backend/internal/util"
	"career_coach_backend/pkg/logger"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider stores exported documents and returns a URL clients can fetch.
type StorageProvider interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	GetURL(key string) string
}

type LocalStorageProvider struct {
	Root string
}

func (p *LocalStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return p.GetURL(key), nil
}

func (p *LocalStorageProvider) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(p.Root, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (p *LocalStorageProvider) GetURL(key string) string {
	return "/uploads/" + key
}

type MinioStorageProvider struct {
	Bucket string
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Bucket: cfg.MinioBucket, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(key), nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, key string) error {
	return p.Client.RemoveObject(ctx, p.Bucket, key, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) GetURL(key string) string {
	return "/" + p.Bucket + "/" + key
}

type OSSStorageProvider struct {
	Endpoint string
	Bucket   *oss.Bucket
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Endpoint: cfg.OSSEndpoint, Bucket: bucket}, nil
}

func (p *OSSStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	if err := p.Bucket.PutObject(key, reader, oss.ContentType(contentType), oss.WithContext(ctx)); err != nil {
		return "", err
	}
	return p.GetURL(key), nil
}

func (p *OSSStorageProvider) Delete(ctx context.Context, key string) error {
	return p.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (p *OSSStorageProvider) GetURL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", p.Bucket.BucketName, p.Endpoint, key)
}

// NewStorageProvider picks the configured backend, falling back to local disk
// when a remote one cannot be constructed.
func NewStorageProvider(cfg *config.StorageConfig) StorageProvider {
	switch cfg.Type {
	case util.StorageMinio:
		p, err := NewMinioStorageProvider(cfg)
		if err == nil {
			return p
		}
		logger.Log.Error("MinIO storage unavailable, using local disk", zap.Error(err))
	case util.StorageOSS:
		p, err := NewOSSStorageProvider(cfg)
		if err == nil {
			return p
		}
		logger.Log.Error("OSS storage unavailable, using local disk", zap.Error(err))
	}
	return &LocalStorageProvider{Root: cfg.LocalPath}
}
