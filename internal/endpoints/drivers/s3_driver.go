package drivers

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectGetter is the subset of the S3 client the driver uses.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Driver reads endpoint files from an S3-compatible bucket
type S3Driver struct {
	Client ObjectGetter
	Bucket string
}

func NewS3Driver(client ObjectGetter, bucket string) *S3Driver {
	return &S3Driver{
		Client: client,
		Bucket: bucket,
	}
}

func (d *S3Driver) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	resp, err := d.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get from S3: %w", err)
	}
	return resp.Body, nil
}
