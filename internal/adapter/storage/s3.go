package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BucketStore lists the source documents in the ingestion bucket. The bucket
// is written by the out-of-band ingestion pipeline; this service only reads
// key names.
type BucketStore struct {
	client *s3.Client
	bucket string
}

// NewBucketStore creates an S3-backed object store for the given bucket.
func NewBucketStore(client *s3.Client, bucket string) *BucketStore {
	return &BucketStore{client: client, bucket: bucket}
}

// ListDocuments returns the object keys currently present in the bucket.
func (b *BucketStore) ListDocuments(ctx context.Context) ([]string, error) {
	var keys []string

	paginator := s3.NewListObjectsV2Paginator(b.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list bucket %s: %w", b.bucket, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}

	return keys, nil
}
