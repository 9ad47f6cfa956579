// Package media renames stored media objects so their filenames carry the
// item's slug. Purely cosmetic for SEO; every failure is non-fatal and the
// old URLs keep working until the copy succeeds.
package media

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/promptfinder/core/internal/config"
	"github.com/promptfinder/core/internal/models"
	"github.com/promptfinder/core/internal/pkg/seo"
)

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	cfg    config.MediaStorageConfig
	client *s3.Client
}

// NewService builds the renamer. With incomplete storage config the
// service stays disabled and RenameForSEO becomes a no-op.
func NewService(db *gorm.DB, log *zap.Logger, cfg config.MediaStorageConfig) *Service {
	s := &Service{db: db, log: log.Named("media"), cfg: cfg}
	if cfg.Bucket == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return s
	}

	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		opts.BaseEndpoint = aws.String(strings.TrimSuffix(endpoint, "/"))
	}
	s.client = s3.New(opts)
	return s
}

func (s *Service) Enabled() bool { return s.client != nil }

// RenameForSEO copies the item's media objects to slug-derived keys and
// deletes the originals, then records the new URLs. Objects already named
// after the current title are left alone.
func (s *Service) RenameForSEO(ctx context.Context, itemID string) error {
	if !s.Enabled() {
		return nil
	}

	var item models.ItemModel
	if err := s.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("item %s not found", itemID)
		}
		return err
	}
	if strings.TrimSpace(item.Title) == "" {
		return nil
	}

	updates := map[string]any{}

	if item.B2ImageURL != "" {
		newURL, err := s.renameObject(ctx, item.B2ImageURL, func(ext string) string {
			return seo.Filename(item.Title, ext)
		})
		if err != nil {
			return fmt.Errorf("rename image: %w", err)
		}
		if newURL != "" {
			updates["b2_image_url"] = newURL
		}
	}
	if item.B2VideoThumbURL != "" {
		newURL, err := s.renameObject(ctx, item.B2VideoThumbURL, func(string) string {
			return seo.ThumbFilename(item.Title)
		})
		if err != nil {
			return fmt.Errorf("rename thumbnail: %w", err)
		}
		if newURL != "" {
			updates["b2_video_thumb_url"] = newURL
		}
	}

	if len(updates) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Model(&item).Updates(updates).Error; err != nil {
		return fmt.Errorf("record renamed urls: %w", err)
	}
	s.log.Info("media renamed for seo",
		zap.String("item_id", item.ID),
		zap.Int("objects", len(updates)),
	)
	return nil
}

// renameObject copies one object to its new key and deletes the original.
// Returns "" when no rename was needed.
func (s *Service) renameObject(ctx context.Context, rawURL string, nameFor func(ext string) string) (string, error) {
	key, ok := s.objectKey(rawURL)
	if !ok {
		s.log.Warn("media url not renameable", zap.String("url", rawURL))
		return "", nil
	}

	ext := strings.TrimPrefix(path.Ext(key), ".")
	if ext == "" {
		ext = "jpg"
	}
	newName := nameFor(ext)
	if newName == "" || path.Base(key) == newName {
		return "", nil
	}
	newKey := path.Join(path.Dir(key), newName)
	if newKey == key {
		return "", nil
	}

	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.cfg.Bucket),
		CopySource: aws.String(s.cfg.Bucket + "/" + key),
		Key:        aws.String(newKey),
	})
	if err != nil {
		return "", fmt.Errorf("copy %s: %w", key, err)
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		// The copy exists; losing the delete only leaves a duplicate.
		s.log.Warn("stale media object not deleted", zap.String("key", key), zap.Error(err))
	}
	return s.publicURL(rawURL, newKey), nil
}

// objectKey extracts the bucket-relative key from a public media URL.
func (s *Service) objectKey(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return "", false
	}
	key := strings.TrimPrefix(u.Path, "/")
	// Path-style URLs carry the bucket as the first segment.
	key = strings.TrimPrefix(key, s.cfg.Bucket+"/")
	if key == "" {
		return "", false
	}
	return key, true
}

func (s *Service) publicURL(oldURL, newKey string) string {
	if base := strings.TrimRight(strings.TrimSpace(s.cfg.PublicBaseURL), "/"); base != "" {
		return base + "/" + newKey
	}
	u, err := url.Parse(oldURL)
	if err != nil {
		return ""
	}
	prefix := ""
	if strings.HasPrefix(strings.TrimPrefix(u.Path, "/"), s.cfg.Bucket+"/") {
		prefix = "/" + s.cfg.Bucket
	}
	u.Path = prefix + "/" + newKey
	return u.String()
}
