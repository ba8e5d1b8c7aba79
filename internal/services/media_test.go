package services_test

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
)

func setupMedia(t *testing.T) *services.MediaService {
	t.Helper()

	cfg := testConfig()
	cfg.Uploads.Dir = t.TempDir()
	cfg.Uploads.MaxSizeMB = 1
	cfg.Uploads.ContentType = "image/png,image/jpeg"

	svc, err := services.NewMediaService(setupTestDB(t), cfg)
	if err != nil {
		t.Fatalf("NewMediaService: %v", err)
	}
	return svc
}

// fileHeader builds a real multipart.FileHeader by round-tripping a form
// through the http parser.
func fileHeader(t *testing.T, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/", &buf)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(4 << 20); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestMediaSaveAndDelete(t *testing.T) {
	svc := setupMedia(t)

	header := fileHeader(t, "photo.png", "image/png", []byte("fake png bytes"))
	media, err := svc.Save(header)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if media.OriginalName != "photo.png" {
		t.Errorf("original name = %q", media.OriginalName)
	}
	if filepath.Ext(media.FileName) != ".png" {
		t.Errorf("stored name %q should keep the extension", media.FileName)
	}
	if media.URL == "" {
		t.Error("url should be set")
	}
	if media.Size != int64(len("fake png bytes")) {
		t.Errorf("size = %d", media.Size)
	}

	// The file exists on disk under the generated name.
	if _, err := os.Stat(filepath.Join(svc.Dir(), media.FileName)); err != nil {
		t.Errorf("stored file missing: %v", err)
	}

	if err := svc.Delete(media.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(svc.Dir(), media.FileName)); !os.IsNotExist(err) {
		t.Error("file should be removed with the record")
	}
	if _, err := svc.GetByID(media.ID); !errors.Is(err, services.ErrMediaNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrMediaNotFound", err)
	}
}

func TestMediaRejectsDisallowedType(t *testing.T) {
	svc := setupMedia(t)

	header := fileHeader(t, "script.sh", "application/x-sh", []byte("#!/bin/sh"))
	if _, err := svc.Save(header); !errors.Is(err, services.ErrMediaTypeNotAllowed) {
		t.Fatalf("disallowed type = %v, want ErrMediaTypeNotAllowed", err)
	}
}

func TestMediaRejectsOversizedFile(t *testing.T) {
	svc := setupMedia(t)

	big := make([]byte, 2<<20) // over the 1 MB test cap
	header := fileHeader(t, "big.png", "image/png", big)
	if _, err := svc.Save(header); !errors.Is(err, services.ErrMediaTooLarge) {
		t.Fatalf("oversized = %v, want ErrMediaTooLarge", err)
	}
}

func TestMediaList(t *testing.T) {
	svc := setupMedia(t)

	for _, name := range []string{"a.png", "b.png", "c.png"} {
		if _, err := svc.Save(fileHeader(t, name, "image/png", []byte(name))); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}

	items, total, err := svc.List(2, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(items) != 2 {
		t.Errorf("page = %d items, want 2", len(items))
	}
}
