package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"hanbloom_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

// MediaAsset : média marketing (vidéo hero, image carrousel, paire
// avant/après) servi via URL présignée
type MediaAsset struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size"`
}

const presignExpiry = 1 * time.Hour

// ListMediaAssets liste les médias d'une section (hero, carousel,
// before-after) et présigne chaque objet
func ListMediaAssets(ctx context.Context, bucket, section string) ([]MediaAsset, error) {
	if database.MinIO == nil {
		return nil, fmt.Errorf("MinIO non initialisé")
	}

	objects := database.MinIO.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    section + "/",
		Recursive: true,
	})

	var assets []MediaAsset
	for object := range objects {
		if object.Err != nil {
			return nil, fmt.Errorf("listing %s: %w", section, object.Err)
		}

		signed, err := database.MinIO.PresignedGetObject(ctx, bucket, object.Key, presignExpiry, url.Values{})
		if err != nil {
			return nil, fmt.Errorf("présignature %s: %w", object.Key, err)
		}

		assets = append(assets, MediaAsset{
			Key:         object.Key,
			URL:         signed.String(),
			ContentType: object.ContentType,
			Size:        object.Size,
		})
	}

	return assets, nil
}
