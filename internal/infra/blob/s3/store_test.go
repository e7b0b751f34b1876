package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"prism/internal/blob/core"
)

func TestMockStorePutGetOverwrite(t *testing.T) {
	ctx := context.Background()
	s := NewMockForTests()
	if s.Driver() != core.DriverS3 || s.Bucket() != "mock-bucket" {
		t.Fatalf("unexpected store %s %s", s.Driver(), s.Bucket())
	}
	if _, err := s.Put(ctx, "prism/startups.json", strings.NewReader("[]"), core.PutOptions{ContentType: "application/json"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Put(ctx, "prism/startups.json", strings.NewReader(`[{"id":"a"}]`), core.PutOptions{ContentType: "application/json"}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	info, rc, err := s.Get(ctx, "prism/startups.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	b, _ := io.ReadAll(rc)
	if string(b) != `[{"id":"a"}]` {
		t.Fatalf("unexpected body %s", b)
	}
	if info.ContentType != "application/json" || info.ETag != "etag" {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestMockStoreGetMissing(t *testing.T) {
	s := NewMockForTests()
	if _, _, err := s.Get(context.Background(), "absent.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected bucket error")
	}
}

func TestNewWithStaticCredentials(t *testing.T) {
	s, err := New(context.Background(), Config{
		Bucket:          "startups",
		Endpoint:        "http://127.0.0.1:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		PathStyle:       true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Bucket() != "startups" {
		t.Fatalf("unexpected bucket %s", s.Bucket())
	}
}

func TestIsNotFoundNil(t *testing.T) {
	if isNotFound(nil) || isNotFound(errors.New("other")) {
		t.Fatalf("expected only not-found errors to match")
	}
}
