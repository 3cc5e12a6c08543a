package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"lovelens.link/configs/configslog"
	"lovelens.link/configs/configsstorage"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MediaServiceError özel servis hataları
type MediaServiceError string

func (e MediaServiceError) Error() string { return string(e) }

const (
	ErrMediaUploadFailed MediaServiceError = "medya dosyası yüklenemedi"
	ErrMediaDeleteFailed MediaServiceError = "medya dosyası silinemedi"
	ErrMediaFetchFailed  MediaServiceError = "medya dosyası indirilemedi"
)

// IMediaService Media Blob collaborator'ına giden tüm çağrıları soyutlar:
// anahtarla yükleme, anahtarla silme, public URL çözümü ve arşiv
// dışa aktarımı için HTTP fetch.
type IMediaService interface {
	Upload(ctx context.Context, objectKey string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, objectKey string) error
	Fetch(ctx context.Context, publicURL string) ([]byte, error)
	NewObjectKey(originalName string) string
	ObjectKeyFromURL(publicURL string) string
}

// MediaService OSS destekli implementasyon.
type MediaService struct {
	bucket *oss.Bucket
	client *http.Client
}

// NewMediaService yeni bir MediaService örneği oluşturur.
func NewMediaService() IMediaService {
	return &MediaService{
		bucket: configsstorage.GetBucket(),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewObjectKey orijinal dosya adının uzantısını koruyan benzersiz bir
// nesne anahtarı üretir.
func (s *MediaService) NewObjectKey(originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	return fmt.Sprintf("guest-media/%s%s", uuid.NewString(), ext)
}

// Upload dosyayı bucket'a yazar ve public URL'ini döndürür.
func (s *MediaService) Upload(ctx context.Context, objectKey string, r io.Reader, contentType string) (string, error) {
	opts := []oss.Option{}
	if contentType != "" {
		opts = append(opts, oss.ContentType(contentType))
	}
	if err := s.bucket.PutObject(objectKey, r, opts...); err != nil {
		configslog.Log.Error("MediaService.Upload: OSS yazma hatası", zap.String("key", objectKey), zap.Error(err))
		return "", ErrMediaUploadFailed
	}
	return configsstorage.PublicURL(objectKey), nil
}

// Delete nesneyi bucket'tan kaldırır.
func (s *MediaService) Delete(ctx context.Context, objectKey string) error {
	if objectKey == "" {
		return nil
	}
	if err := s.bucket.DeleteObject(objectKey); err != nil {
		configslog.Log.Error("MediaService.Delete: OSS silme hatası", zap.String("key", objectKey), zap.Error(err))
		return ErrMediaDeleteFailed
	}
	return nil
}

// Fetch public URL'deki nesneyi belleğe indirir (arşiv dışa aktarımı için).
func (s *MediaService) Fetch(ctx context.Context, publicURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, publicURL, nil)
	if err != nil {
		return nil, ErrMediaFetchFailed
	}
	resp, err := s.client.Do(req)
	if err != nil {
		configslog.Log.Error("MediaService.Fetch: HTTP hatası", zap.String("url", publicURL), zap.Error(err))
		return nil, ErrMediaFetchFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		configslog.Log.Error("MediaService.Fetch: beklenmeyen durum kodu",
			zap.String("url", publicURL), zap.Int("status", resp.StatusCode))
		return nil, ErrMediaFetchFailed
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrMediaFetchFailed
	}
	return data, nil
}

// ObjectKeyFromURL public URL'den bucket nesne anahtarını çıkarır.
func (s *MediaService) ObjectKeyFromURL(publicURL string) string {
	u, err := url.Parse(publicURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}

var _ IMediaService = (*MediaService)(nil)
