package service

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// FileQRRenderer renders QR payloads to PNG files under Dir. File
// names are random UUIDs so concurrent purchases never collide.
type FileQRRenderer struct {
	Dir string
}

func NewFileQRRenderer(dir string) *FileQRRenderer {
	if dir == "" {
		dir = "qr_codes"
	}
	return &FileQRRenderer{Dir: dir}
}

// Render encodes data into a 256x256 PNG and returns its path.
func (r *FileQRRenderer) Render(data string) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(r.Dir, uuid.NewString()+".png")
	if err := qrcode.WriteFile(data, qrcode.Medium, 256, path); err != nil {
		return "", err
	}
	return path, nil
}
