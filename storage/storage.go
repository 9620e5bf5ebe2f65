package storage // import "github.com/storyworld/storyworld/storage"

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/storyworld/storyworld/config"
	"github.com/storyworld/storyworld/log"
	"github.com/storyworld/storyworld/util"
	"go.uber.org/zap"
)

// PublicPrefix is the URL path the upload directory is served under.
const PublicPrefix = "/uploads"

var (
	ErrUploadTooLarge   = errors.New("uploaded file exceeds the size limit")
	ErrNotPDF           = errors.New("book file must be a PDF")
	ErrUnsupportedCover = errors.New("cover must be a jpeg, png or webp image")
)

// LocalStorage writes uploaded files under the data directory with
// randomized names. Failed uploads are not cleaned up.
type LocalStorage struct {
	dir string
}

func NewLocalStorage() (*LocalStorage, error) {
	dir := filepath.Join(config.Opts.Data, "uploads")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "unable to create upload folder %s", dir)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

// StorePDF saves the uploaded book file, returning the public URL path.
// The content is sniffed, the filename extension is not trusted.
func (s *LocalStorage) StorePDF(fileHeader *multipart.FileHeader) (string, error) {
	mtype, err := s.sniff(fileHeader)
	if err != nil {
		return "", err
	}
	if !mtype.Is("application/pdf") {
		return "", ErrNotPDF
	}
	return s.store(fileHeader, ".pdf")
}

// StoreCover saves the uploaded cover image. Raster covers are
// converted to webp after storing, the original is removed on success.
func (s *LocalStorage) StoreCover(fileHeader *multipart.FileHeader) (string, error) {
	mtype, err := s.sniff(fileHeader)
	if err != nil {
		return "", err
	}

	var ext string
	switch {
	case mtype.Is("image/jpeg"):
		ext = ".jpg"
	case mtype.Is("image/png"):
		ext = ".png"
	case mtype.Is("image/webp"):
		ext = ".webp"
	default:
		return "", ErrUnsupportedCover
	}

	publicURL, err := s.store(fileHeader, ext)
	if err != nil {
		return "", err
	}

	if ext == ".webp" {
		return publicURL, nil
	}
	storedPath := filepath.Join(s.dir, path.Base(publicURL))
	// 75 is the quality of the WebP image
	if webpPath := util.ImageToWebp(storedPath, 75); webpPath != "" {
		os.Remove(storedPath)
		return path.Join(PublicPrefix, filepath.Base(webpPath)), nil
	}
	return publicURL, nil
}

func (s *LocalStorage) sniff(fileHeader *multipart.FileHeader) (*mimetype.MIME, error) {
	if fileHeader.Size > config.Opts.MaxUploadSize<<20 {
		return nil, ErrUploadTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrap(err, "unable to open uploaded file")
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return nil, errors.Wrap(err, "unable to detect uploaded file type")
	}
	return mtype, nil
}

func (s *LocalStorage) store(fileHeader *multipart.FileHeader, ext string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", errors.Wrap(err, "unable to open uploaded file")
	}
	defer file.Close()

	// Names are random, collisions still get a numbered suffix.
	filePath := util.GenerateNewFileName(filepath.Join(s.dir, util.GenUUID()+ext))
	name := filepath.Base(filePath)

	outFile, err := os.Create(filePath)
	if err != nil {
		return "", errors.Wrapf(err, "unable to create file %s", filePath)
	}
	defer outFile.Close()

	// Copy data to the file and calculate the hash
	hash := sha256.New()
	if _, err := io.Copy(io.MultiWriter(outFile, hash), file); err != nil {
		return "", errors.Wrapf(err, "unable to write file %s", filePath)
	}

	fileHash := hex.EncodeToString(hash.Sum(nil))
	log.Debug("Stored file", zap.String("path", filePath), zap.String("hash", fileHash))

	return path.Join(PublicPrefix, name), nil
}
