package models

import "time"

// Item publication status.
const (
	StatusDraft     = 0
	StatusPublished = 1
)

// ItemModel is an uploaded gallery artifact (image or video) plus the
// metadata the enrichment pipeline writes for it.
type ItemModel struct {
	Base
	Title       string `json:"title"       gorm:"size:200"`
	Description string `json:"description" gorm:"type:text"` // used as the public excerpt
	Content     string `json:"content"     gorm:"type:longtext"`
	Slug        string `json:"slug"        gorm:"uniqueIndex;not null"`
	Status      int    `json:"status"      gorm:"default:0;index"`
	Platform    string `json:"platform"    gorm:"index"`
	AuthorID    string `json:"author_id"   gorm:"index"`

	// Media URLs are written by the upload subsystem; the pipeline only reads them.
	B2ImageURL       string            `json:"b2_image_url"`
	B2VideoThumbURL  string            `json:"b2_video_thumb_url"`
	FeaturedImageURL string            `json:"featured_image_url"`
	MediaVariants    map[string]string `json:"media_variants,omitempty" gorm:"type:longtext;serializer:json"`

	ProcessingComplete bool       `json:"processing_complete" gorm:"default:false;index"`
	NeedsSeoReview     bool       `json:"needs_seo_review"    gorm:"default:false;index"`
	SeoPass2At         *time.Time `json:"seo_pass2_at"`

	LikeCount int `json:"like_count" gorm:"column:like_count;default:0"`
	ViewCount int `json:"view_count" gorm:"column:view_count;default:0"`
}

func (ItemModel) TableName() string { return "items" }

// IsPublished reports whether the item is publicly visible.
func (i ItemModel) IsPublished() bool { return i.Status == StatusPublished }

// MediaURL returns the best image URL for vision analysis, in preference
// order: B2 image, B2 video thumbnail, legacy featured image. Empty string
// means the item has no analyzable media.
func (i ItemModel) MediaURL() string {
	if i.B2ImageURL != "" {
		return i.B2ImageURL
	}
	if i.B2VideoThumbURL != "" {
		return i.B2VideoThumbURL
	}
	return i.FeaturedImageURL
}
