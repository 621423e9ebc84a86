package endpoints

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/OpenNSW/formflow/internal/config"
	"github.com/OpenNSW/formflow/internal/endpoints/drivers"
)

// Names the handlers resolve their endpoints by
const (
	NameOrder     = "order"
	NameInventory = "inventory"
)

// Load builds the endpoint registry from the configured source
func Load(ctx context.Context, cfg config.EndpointsConfig) (*Registry, error) {
	if cfg.Source == "env" {
		slog.Info("loading endpoints from environment")
		return NewRegistry(map[string]string{
			NameOrder:     cfg.OrderFlowURL,
			NameInventory: cfg.InventoryFlowURL,
		})
	}

	src, err := NewSourceFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return LoadFrom(ctx, src, cfg.File)
}

// LoadFrom reads and parses the endpoints file stored under key.
func LoadFrom(ctx context.Context, src Source, key string) (*Registry, error) {
	rc, err := src.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read endpoints file %s: %w", key, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read endpoints file %s: %w", key, err)
	}

	reg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "endpoints loaded", "file", key, "names", reg.Names())
	return reg, nil
}

// NewSourceFromConfig creates a source instance based on the provided configuration
func NewSourceFromConfig(ctx context.Context, cfg config.EndpointsConfig) (Source, error) {
	switch cfg.Source {
	case "local":
		slog.Info("initializing local endpoints source", "dir", cfg.LocalDir)
		return drivers.NewLocalFSDriver(cfg.LocalDir)
	case "s3":
		slog.Info("initializing S3 endpoints source", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)

		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.S3Region),
		}

		if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
			creds := credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")
			opts = append(opts, awsconfig.WithCredentialsProvider(creds))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.S3Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			}
			o.UsePathStyle = true
		})

		return drivers.NewS3Driver(client, cfg.S3Bucket), nil
	default:
		return nil, fmt.Errorf("unsupported endpoints source: %s", cfg.Source)
	}
}
