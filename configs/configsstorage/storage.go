package configsstorage

import (
	"fmt"
	"os"
	"strings"

	"lovelens.link/configs/configslog"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"go.uber.org/zap"
)

// Misafir medyası için OSS bucket bağlantısı. configsdatabase ile aynı
// yaşam döngüsü: main'de InitStorage, sonrasında GetBucket.
var (
	client *oss.Client
	bucket *oss.Bucket
)

// InitStorage ortam değişkenlerinden OSS istemcisini ve bucket'ı hazırlar.
// OSS_ENDPOINT, OSS_ACCESS_KEY_ID, OSS_ACCESS_KEY_SECRET, OSS_BUCKET zorunlu.
func InitStorage() {
	endpoint := strings.TrimSpace(os.Getenv("OSS_ENDPOINT"))
	keyID := strings.TrimSpace(os.Getenv("OSS_ACCESS_KEY_ID"))
	keySecret := strings.TrimSpace(os.Getenv("OSS_ACCESS_KEY_SECRET"))
	bucketName := strings.TrimSpace(os.Getenv("OSS_BUCKET"))

	if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
		configslog.Log.Fatal("InitStorage: OSS ortam değişkenleri eksik",
			zap.String("endpoint", endpoint), zap.String("bucket", bucketName))
	}

	var err error
	client, err = oss.New(endpoint, keyID, keySecret)
	if err != nil {
		configslog.Log.Fatal("OSS istemcisi oluşturulamadı", zap.Error(err))
	}

	bucket, err = client.Bucket(bucketName)
	if err != nil {
		configslog.Log.Fatal("OSS bucket'ı alınamadı", zap.String("bucket", bucketName), zap.Error(err))
	}

	configslog.SLog.Infof("OSS depolama hazır: %s", bucketName)
}

// GetBucket aktif bucket'ı döndürür. InitStorage çağrılmadan kullanılamaz.
func GetBucket() *oss.Bucket {
	if bucket == nil {
		configslog.Log.Fatal("GetBucket: Depolama henüz başlatılmadı (InitStorage çağrılmalı)")
	}
	return bucket
}

// PublicURL bir nesne anahtarının herkese açık URL'ini üretir.
// OSS_PUBLIC_BASE_URL tanımlıysa (CDN vb.) o kullanılır.
func PublicURL(objectKey string) string {
	if base := strings.TrimSpace(os.Getenv("OSS_PUBLIC_BASE_URL")); base != "" {
		return strings.TrimRight(base, "/") + "/" + objectKey
	}
	endpoint := strings.TrimPrefix(os.Getenv("OSS_ENDPOINT"), "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")
	return fmt.Sprintf("https://%s.%s/%s", os.Getenv("OSS_BUCKET"), endpoint, objectKey)
}
