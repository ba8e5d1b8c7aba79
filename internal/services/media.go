package services

import (
	"database/sql"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/config"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/database"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/models"
)

var (
	// ErrMediaNotFound indicates the requested file was not found.
	ErrMediaNotFound = errors.New("media not found")
	// ErrMediaTypeNotAllowed indicates a content type outside the allow-list.
	ErrMediaTypeNotAllowed = errors.New("content type not allowed")
	// ErrMediaTooLarge indicates the upload exceeds the size cap.
	ErrMediaTooLarge = errors.New("file exceeds maximum size")
)

// MediaService stores uploads on local disk and tracks them in the
// database. The disk layout is an implementation detail of this service;
// callers only see ids and URLs.
type MediaService struct {
	db      *database.DB
	dir     string
	baseURL string
	maxSize int64
	allowed map[string]bool
}

// NewMediaService creates a MediaService and ensures the upload directory
// exists.
func NewMediaService(db *database.DB, cfg *config.Config) (*MediaService, error) {
	if err := os.MkdirAll(cfg.Uploads.Dir, 0750); err != nil {
		return nil, err
	}

	allowed := make(map[string]bool)
	for _, ct := range strings.Split(cfg.Uploads.ContentType, ",") {
		ct = strings.TrimSpace(ct)
		if ct != "" {
			allowed[ct] = true
		}
	}

	return &MediaService{
		db:      db,
		dir:     cfg.Uploads.Dir,
		baseURL: strings.TrimRight(cfg.Uploads.BaseURL, "/"),
		maxSize: int64(cfg.Uploads.MaxSizeMB) << 20,
		allowed: allowed,
	}, nil
}

// Save validates and stores an uploaded file, returning its record.
func (s *MediaService) Save(header *multipart.FileHeader) (*models.Media, error) {
	if header.Size > s.maxSize {
		return nil, ErrMediaTooLarge
	}
	contentType := header.Header.Get("Content-Type")
	if !s.allowed[contentType] {
		return nil, ErrMediaTypeNotAllowed
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	id := uuid.NewString()
	fileName := id + filepath.Ext(header.Filename)
	path := filepath.Join(s.dir, fileName)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0640)
	if err != nil {
		return nil, err
	}
	written, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	url := s.baseURL + "/" + fileName
	_, err = s.db.Exec(
		`INSERT INTO media (id, file_name, original_name, content_type, size, url)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, fileName, header.Filename, contentType, written, url,
	)
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	return s.GetByID(id)
}

// GetByID retrieves a media record by id.
func (s *MediaService) GetByID(id string) (*models.Media, error) {
	var m models.Media
	err := s.db.QueryRow(
		"SELECT id, file_name, original_name, content_type, size, url, created_at FROM media WHERE id = ?",
		id,
	).Scan(&m.ID, &m.FileName, &m.OriginalName, &m.ContentType, &m.Size, &m.URL, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrMediaNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns a page of media records, newest first.
func (s *MediaService) List(limit, offset int) ([]models.Media, int, error) {
	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM media").Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Query(
		"SELECT id, file_name, original_name, content_type, size, url, created_at FROM media ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = rows.Close() }()

	items := make([]models.Media, 0)
	for rows.Next() {
		var m models.Media
		if err := rows.Scan(&m.ID, &m.FileName, &m.OriginalName, &m.ContentType, &m.Size, &m.URL, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

// Delete removes the record and the file on disk. A missing file is not
// an error; the record is authoritative.
func (s *MediaService) Delete(id string) error {
	m, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec("DELETE FROM media WHERE id = ?", id); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, m.FileName)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the upload directory for static file serving.
func (s *MediaService) Dir() string {
	return s.dir
}
