// file: internals/helpers/assets/asset_store.go
package assets

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

var allowedPictureExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
}

// Store keeps person pictures and rendered QR codes on local disk.
// Refs returned by the store are paths relative to the base dir, so they can be
// served straight from the static file handler.
type Store struct {
	baseDir   string
	uploadDir string
	qrDir     string
}

func NewStore(baseDir string) (*Store, error) {
	s := &Store{
		baseDir:   baseDir,
		uploadDir: filepath.Join(baseDir, "uploads"),
		qrDir:     filepath.Join(baseDir, "qr_codes"),
	}
	for _, dir := range []string{s.uploadDir, s.qrDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("assets: create %s: %w", dir, err)
		}
	}
	return s, nil
}

// SavePicture re-encodes an uploaded image as a 300x300-bounded JPEG (quality 85)
// under a random filename and returns its ref. Rejects non-image extensions.
func (s *Store) SavePicture(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedPictureExts[ext] {
		return "", fmt.Errorf("assets: file type %q not allowed", ext)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("assets: open upload: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("assets: decode image: %w", err)
	}
	img = imaging.Fit(img, 300, 300, imaging.Lanczos)

	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ".jpg"
	path := filepath.Join(s.uploadDir, name)
	if err := imaging.Save(img, path, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("assets: save image: %w", err)
	}
	return filepath.Join("uploads", name), nil
}

// RenderQR writes a 256px PNG encoding payload and returns its ref.
// The filename is derived from the payload so re-rendering overwrites in place.
func (s *Store) RenderQR(payload string) (string, error) {
	name := fmt.Sprintf("qr_%s.png", payload)
	path := filepath.Join(s.qrDir, name)
	if err := qrcode.WriteFile(payload, qrcode.Medium, 256, path); err != nil {
		return "", fmt.Errorf("assets: render qr: %w", err)
	}
	return filepath.Join("qr_codes", name), nil
}

// Remove deletes an asset by ref. Best-effort: a missing file is not an error,
// anything else is just logged so deletions never block the owning operation.
func (s *Store) Remove(ref string) {
	if ref == "" {
		return
	}
	path := filepath.Join(s.baseDir, ref)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARNING] assets: remove %s: %v", ref, err)
	}
}
