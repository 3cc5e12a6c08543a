package exporter

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
)

// ArchiveFile arşive eklenecek tek bir medya dosyası.
type ArchiveFile struct {
	Name string
	Data []byte
}

// ArchiveFileName deterministik arşiv dosya adı üretir:
// {misafirAdı|anonymous}-{ISO tarih}-{gönderimID}.{uzantı}
// Gönderim ID adın parçası olduğu için ad çakışması imkansızdır.
func ArchiveFileName(guestName string, createdAt time.Time, id uint, mediaURL string) string {
	name := strings.TrimSpace(guestName)
	if name == "" {
		name = "anonymous"
	}
	date := createdAt.UTC().Format("2006-01-02")
	return fmt.Sprintf("%s-%s-%d%s", name, date, id, mediaExt(mediaURL))
}

// mediaExt URL yolundaki uzantıyı döndürür; bulunamazsa .bin.
func mediaExt(mediaURL string) string {
	p := mediaURL
	if u, err := url.Parse(mediaURL); err == nil && u.Path != "" {
		p = u.Path
	}
	if ext := path.Ext(p); ext != "" {
		return ext
	}
	return ".bin"
}

// BuildArchive dosyaları bellek içi tek bir ZIP'e paketler.
func BuildArchive(files []ArchiveFile) ([]byte, error) {
	if len(files) == 0 {
		return nil, ErrNothingToExport
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.Name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("arşiv girdisi oluşturulamadı (%s): %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("arşiv girdisi yazılamadı (%s): %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("arşiv sonlandırılamadı: %w", err)
	}
	return buf.Bytes(), nil
}
