package services

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestMediaSaveOpenDelete(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	asset, url, err := r.Media.Save(ctx, BucketUsers, "image/png", "avatar.png", "u-1", strings.NewReader("png bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if asset.SizeBytes != int64(len("png bytes")) || asset.Sha256 == "" {
		t.Fatalf("unexpected asset: %+v", asset)
	}
	if url != "/api/media/assets/"+asset.ID+"/content" {
		t.Fatalf("unexpected url: %s", url)
	}

	file, stored, err := r.Media.Open(ctx, asset.ID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	content, _ := io.ReadAll(file)
	_ = file.Close()
	if string(content) != "png bytes" {
		t.Fatalf("content = %q", content)
	}
	if stored.ContentType != "image/png" {
		t.Fatalf("content type = %s", stored.ContentType)
	}

	if err := r.Media.Delete(ctx, asset.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, err := r.Media.Open(ctx, asset.ID); err == nil {
		t.Fatal("asset readable after delete")
	}
	// Deleting again is a no-op.
	if err := r.Media.Delete(ctx, asset.ID); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestMediaSaveValidation(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	if _, _, err := r.Media.Save(ctx, "attic", "text/plain", "f", "u-1", strings.NewReader("x")); err == nil {
		t.Fatal("unknown bucket accepted")
	}
	if _, _, err := r.Media.Save(ctx, BucketCourses, "text/plain", "f", "u-1", strings.NewReader("")); err == nil {
		t.Fatal("empty upload accepted")
	}
}
