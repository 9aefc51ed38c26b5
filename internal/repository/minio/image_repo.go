package minio

import (
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/trendbook/search-backend/internal/cfg"
)

// ImageRepo отдаёт публичные ссылки на изображения, лежащие в MinIO.
// Бакет должен быть открыт на чтение: ссылки не подписываются.
type ImageRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// PublicURL строит публичный URL объекта по его ключу.
// Если задан PublicBaseURL (CDN или reverse proxy), ссылка строится от него,
// иначе от адреса самого MinIO.
func (i *ImageRepo) PublicURL(storageKey string) string {
	key := strings.TrimPrefix(storageKey, "/")

	if i.cfg.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(i.cfg.PublicBaseURL, "/"), i.cfg.BucketName, key)
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(i.mc.EndpointURL().String(), "/"), i.cfg.BucketName, key)
}
