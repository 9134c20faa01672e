// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package objstore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/pdiddy/meca-fetch/pkg/types"
)

// S3Store reads the bioRxiv monthly deposit bucket. The bucket is
// requester-pays, so every request acknowledges the charge.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store builds an S3-backed store using the default AWS credential
// chain (environment, shared config, instance role).
func NewS3Store(ctx context.Context, cfg types.StoreConfig) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &S3Store{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
	}, nil
}

// Size returns the object's ContentLength from a HEAD request.
func (s *S3Store) Size(ctx context.Context, key string) (int64, error) {
	var size int64
	err := withRetry(ctx, func(ctx context.Context) error {
		out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket:       aws.String(s.bucket),
			Key:          aws.String(key),
			RequestPayer: s3types.RequestPayerRequester,
		})
		if err != nil {
			return err
		}
		if out.ContentLength == nil {
			return fmt.Errorf("no content length for %s", key)
		}
		size = *out.ContentLength
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("head %s: %w", key, err)
	}
	return size, nil
}

// GetRange returns length bytes of the object starting at offset.
func (s *S3Store) GetRange(ctx context.Context, key string, offset, length int64) ([]byte, error) {
	var data []byte
	err := withRetry(ctx, func(ctx context.Context) error {
		out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket:       aws.String(s.bucket),
			Key:          aws.String(key),
			Range:        aws.String(fmt.Sprintf("bytes=%d-%d", offset, offset+length-1)),
			RequestPayer: s3types.RequestPayerRequester,
		})
		if err != nil {
			return err
		}
		defer out.Body.Close()
		data, err = io.ReadAll(out.Body)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("ranged get %s: %w", key, err)
	}
	return data, nil
}

// Get downloads the whole object.
func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := withRetry(ctx, func(ctx context.Context) error {
		out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket:       aws.String(s.bucket),
			Key:          aws.String(key),
			RequestPayer: s3types.RequestPayerRequester,
		})
		if err != nil {
			return err
		}
		defer out.Body.Close()
		data, err = io.ReadAll(out.Body)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return data, nil
}

// List returns every key under prefix. Pagination is exhausted; each page
// request runs under the retry policy independently.
func (s *S3Store) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:       aws.String(s.bucket),
		Prefix:       aws.String(prefix),
		RequestPayer: s3types.RequestPayerRequester,
	})

	for paginator.HasMorePages() {
		var page *s3.ListObjectsV2Output
		err := withRetry(ctx, func(ctx context.Context) error {
			var err error
			page, err = paginator.NextPage(ctx)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
	}

	return keys, nil
}
