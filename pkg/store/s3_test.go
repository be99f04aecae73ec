package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// fakeS3 records calls and serves canned objects.
type fakeS3 struct {
	objects map[string][]byte
	puts    []s3.PutObjectInput
	deleted []string
	listing []s3types.Object
	failPut bool
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failPut {
		return nil, errors.New("access denied")
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Key] = body
	f.puts = append(f.puts, *in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[*in.Key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(body)))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, *in.Key)
	delete(f.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	return &s3.ListObjectsV2Output{
		Contents:    f.listing,
		IsTruncated: aws.Bool(false),
	}, nil
}

func TestS3StoreSave(t *testing.T) {
	fake := newFakeS3()
	st := newS3Store(fake, "bucket", "submissions/")

	id, err := st.Save(context.Background(), "signup", map[string]any{"email": "a@b.co"})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if len(fake.puts) != 1 {
		t.Fatalf("Expected 1 put, got %d", len(fake.puts))
	}
	put := fake.puts[0]
	if *put.Bucket != "bucket" {
		t.Errorf("Unexpected bucket: %s", *put.Bucket)
	}
	if *put.Key != "submissions/"+id {
		t.Errorf("Unexpected key: %s", *put.Key)
	}
	if put.Metadata["form-id"] != "signup" {
		t.Errorf("Expected form id in metadata, got %v", put.Metadata)
	}
	if put.Metadata["submitted-at"] == "" {
		t.Error("Expected timestamp in metadata")
	}

	var stored map[string]any
	if err := json.Unmarshal(fake.objects[*put.Key], &stored); err != nil {
		t.Fatalf("Stored body is not JSON: %v", err)
	}
	if stored["email"] != "a@b.co" {
		t.Errorf("Unexpected stored body: %v", stored)
	}
}

func TestS3StoreSaveFailure(t *testing.T) {
	fake := newFakeS3()
	fake.failPut = true
	st := newS3Store(fake, "bucket", "submissions/")

	if _, err := st.Save(context.Background(), "signup", map[string]any{}); err == nil {
		t.Error("Expected put failure surfaced")
	}
}

func TestS3StoreGet(t *testing.T) {
	fake := newFakeS3()
	st := newS3Store(fake, "bucket", "submissions/")

	id, _ := st.Save(context.Background(), "signup", map[string]any{"email": "a@b.co"})

	values, err := st.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if values["email"] != "a@b.co" {
		t.Errorf("Unexpected values: %v", values)
	}

	if _, err := st.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestS3StoreCleanup(t *testing.T) {
	fake := newFakeS3()
	old := time.Now().Add(-48 * time.Hour)
	fresh := time.Now()
	fake.listing = []s3types.Object{
		{Key: aws.String("submissions/old"), LastModified: &old},
		{Key: aws.String("submissions/fresh"), LastModified: &fresh},
	}

	st := newS3Store(fake, "bucket", "submissions/")
	if err := st.Cleanup(context.Background(), 24*time.Hour); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	if len(fake.deleted) != 1 || fake.deleted[0] != "submissions/old" {
		t.Errorf("Expected only the old object deleted, got %v", fake.deleted)
	}
}
