package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3API is the slice of the S3 client surface S3Store uses. Narrowed for
// testability.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	s3.ListObjectsV2APIClient
}

// S3Store persists submissions as JSON objects in an S3 bucket.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	client := s3.NewFromConfig(cfg)
//	st := store.NewS3Store(client, "my-bucket", "submissions/")
//
//	f := form.New(values, form.WithSubmit(store.Submit[Values](st, "signup")))
type S3Store struct {
	client s3API
	bucket string
	prefix string
}

// NewS3Store creates an S3-backed submission store. Keys are written
// under the given prefix (e.g. "submissions/").
func NewS3Store(client *s3.Client, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// newS3Store is the injectable constructor used by tests.
func newS3Store(client s3API, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// Save implements SubmissionStore: one PutObject per submission, values
// as the JSON body, form id and timestamp as object metadata.
func (s *S3Store) Save(ctx context.Context, formID string, values map[string]any) (string, error) {
	body, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("store: marshal submission: %w", err)
	}

	id := newID()
	key := s.prefix + id

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"form-id":      formID,
			"submitted-at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("store: s3 put failed: %w", err)
	}

	return id, nil
}

// Get fetches a stored submission's values by id.
func (s *S3Store) Get(ctx context.Context, id string) (map[string]any, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + id),
	})
	if err != nil {
		return nil, ErrNotFound
	}
	defer out.Body.Close()

	var values map[string]any
	if err := json.NewDecoder(out.Body).Decode(&values); err != nil {
		return nil, fmt.Errorf("store: decode submission: %w", err)
	}
	return values, nil
}

// Cleanup deletes submissions older than maxAge.
func (s *S3Store) Cleanup(ctx context.Context, maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var toDelete []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("store: list submissions: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.LastModified != nil && obj.LastModified.Before(cutoff) && obj.Key != nil {
				toDelete = append(toDelete, *obj.Key)
			}
		}
	}

	for _, key := range toDelete {
		if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		}); err != nil {
			return fmt.Errorf("store: delete %s: %w", key, err)
		}
	}

	return nil
}

// Submit adapts a SubmissionStore into a form submit callback for a
// typed values struct.
func Submit[T any](st SubmissionStore, formID string) func(ctx context.Context, values T) error {
	return func(ctx context.Context, values T) error {
		data, err := json.Marshal(values)
		if err != nil {
			return fmt.Errorf("store: marshal values: %w", err)
		}
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("store: values are not an object: %w", err)
		}
		_, err = st.Save(ctx, formID, m)
		return err
	}
}
