package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Upload types map to subdirectories of the upload path: images and
// documents.
const (
	UploadTypeImages    = "sekiller"
	UploadTypeDocuments = "senedler"
)

var allowedExtensions = map[string]map[string]bool{
	UploadTypeImages:    {".jpg": true, ".jpeg": true, ".png": true, ".webp": true},
	UploadTypeDocuments: {".pdf": true},
}

type StorageService interface {
	SaveFile(file *multipart.FileHeader, uploadType string) (string, string, error)
	GetFilePath(uploadType, filename string) string
	DeleteFile(uploadType, filename string) error
	EnsureUploadDirs() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDirs() error {
	for _, uploadType := range []string{UploadTypeImages, UploadTypeDocuments} {
		dir := filepath.Join(s.uploadPath, uploadType)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create upload directory %s: %w", dir, err)
		}
	}
	return nil
}

func (s *storageService) SaveFile(file *multipart.FileHeader, uploadType string) (string, string, error) {
	allowed, ok := allowedExtensions[uploadType]
	if !ok {
		return "", "", fmt.Errorf("unknown upload type: %s", uploadType)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed[ext] {
		return "", "", fmt.Errorf("invalid file extension for %s: %s", uploadType, ext)
	}

	// slug + short uuid keeps filenames readable and collision-free
	base := Slugify(strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename)))
	if base == "" {
		base = "fayl"
	}
	uniqueFilename := fmt.Sprintf("%s-%s%s", base, uuid.New().String()[:8], ext)
	filePath := filepath.Join(s.uploadPath, uploadType, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *storageService) GetFilePath(uploadType, filename string) string {
	return filepath.Join(s.uploadPath, uploadType, filename)
}

func (s *storageService) DeleteFile(uploadType, filename string) error {
	filePath := s.GetFilePath(uploadType, filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

var azeriTranslit = map[rune]rune{
	'ə': 'e', 'ç': 'c', 'ı': 'i', 'ğ': 'g', 'ö': 'o', 'ş': 's', 'ü': 'u',
}

// Slugify lowercases, transliterates Azerbaijani letters and strips
// everything that is not a word character or hyphen.
func Slugify(text string) string {
	text = strings.ToLower(text)

	var b strings.Builder
	for _, r := range text {
		if repl, ok := azeriTranslit[r]; ok {
			r = repl
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}

	return b.String()
}
