package storage

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded product images and maps them to public URLs
type Store interface {
	Save(file *multipart.FileHeader) (string, error)
	// Remove deletes the file behind a previously returned URL. Best-effort:
	// a missing file is logged, not reported as an error.
	Remove(url string)
}

type localStore struct {
	baseDir string
	baseURL string
}

// NewLocalStore creates an on-disk store rooted at baseDir, serving files
// under baseURL (e.g. "/uploads").
func NewLocalStore(baseDir, baseURL string) (Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &localStore{baseDir: baseDir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *localStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dst, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", err
	}

	return s.baseURL + "/" + name, nil
}

func (s *localStore) Remove(url string) {
	name := filepath.Base(url)
	if name == "." || name == "/" || !strings.HasPrefix(url, s.baseURL+"/") {
		return
	}
	if err := os.Remove(filepath.Join(s.baseDir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Println("WARNING: failed to remove image file:", err)
	}
}
