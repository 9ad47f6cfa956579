package models

// SlugRedirectModel records old slugs so renamed items keep working links.
// Append-only: enrichment writes a row whenever it changes an item's slug.
type SlugRedirectModel struct {
	Base
	Slug   string `json:"slug"    gorm:"index;not null"`
	ItemID string `json:"item_id" gorm:"index;not null"`
}

func (SlugRedirectModel) TableName() string { return "slug_redirects" }
