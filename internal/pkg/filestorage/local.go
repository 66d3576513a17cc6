package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/greeklink/greeklink/internal/pkg/logger"
)

// SavedFile describes where an uploaded file ended up
type SavedFile struct {
	// Path relative to the storage root, stored in the database
	Path string
	// URL the file is reachable at
	URL string
	// Size in bytes
	Size int64
}

// LocalStorage saves uploads to the local filesystem
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a new LocalStorage instance. basePath is the
// storage root on disk; baseURL, when set, prefixes returned file URLs.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save stores an uploaded file under the given subdirectory with a
// collision-free name.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader, subPath string) (*SavedFile, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dirPath := ls.basePath
	if subPath != "" {
		dirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(fileHeader.Filename)
	uniqueName := uuid.New().String() + ext
	dstPath := filepath.Join(dirPath, uniqueName)

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	relPath := uniqueName
	if subPath != "" {
		relPath = subPath + "/" + uniqueName
	}

	url := relPath
	if ls.baseURL != "" {
		url = ls.baseURL + "/" + relPath
	}

	logger.Info().
		Str("filename", fileHeader.Filename).
		Str("saved_as", relPath).
		Msg("File saved successfully")

	return &SavedFile{Path: relPath, URL: url, Size: size}, nil
}

// Delete removes a stored file. Deleting a missing file is not an error.
func (ls *LocalStorage) Delete(relPath string) error {
	if relPath == "" {
		return nil
	}

	cleaned := filepath.Clean(relPath)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return fmt.Errorf("invalid file path: %s", relPath)
	}

	physicalPath := filepath.Join(ls.basePath, cleaned)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted")
	return nil
}

// FullPath returns the on-disk path of a stored file
func (ls *LocalStorage) FullPath(relPath string) string {
	if relPath == "" {
		return ""
	}
	return filepath.Join(ls.basePath, filepath.Clean(relPath))
}
