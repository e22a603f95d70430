package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cfg "github.com/maheshrc27/creatorflow/configs"
)

// AssetService uploads media payloads to R2 storage. Optional — when R2
// is not configured the workspace keeps media session-local only.
type AssetService struct {
	config cfg.Config
}

func NewAssetService(cfg cfg.Config) *AssetService {
	return &AssetService{config: cfg}
}

func (r *AssetService) Enabled() bool {
	return r.config.R2.AccountID != "" && r.config.R2.BucketName != ""
}

func (r *AssetService) client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r.config.R2.AccessKey, r.config.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.config.R2.AccountID))
	}), nil
}

// Upload stores the payload under key and returns its public URL.
func (r *AssetService) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	client, err := r.client(ctx)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("error uploading asset: %w", err)
	}

	return fmt.Sprintf("https://%s.r2.dev/%s", r.config.R2.BucketName, key), nil
}
