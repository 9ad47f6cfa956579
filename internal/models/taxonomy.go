package models

// CategoryModel is a broad classification label from the closed taxonomy.
type CategoryModel struct {
	Base
	Name         string `json:"name"          gorm:"uniqueIndex;not null"`
	Slug         string `json:"slug"          gorm:"uniqueIndex;not null"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order" gorm:"default:0"`
}

func (CategoryModel) TableName() string { return "categories" }

// Descriptor types. Fixed set; DescriptorModel.Type always holds one of these.
const (
	DescriptorGender     = "gender"
	DescriptorEthnicity  = "ethnicity"
	DescriptorAge        = "age"
	DescriptorFeatures   = "features"
	DescriptorProfession = "profession"
	DescriptorMood       = "mood"
	DescriptorColor      = "color"
	DescriptorHoliday    = "holiday"
	DescriptorSeason     = "season"
	DescriptorSetting    = "setting"
)

// DescriptorModel is a fine-grained typed attribute label from the closed taxonomy.
type DescriptorModel struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"index;not null"`
	Type string `json:"type" gorm:"index;not null"`
}

func (DescriptorModel) TableName() string { return "descriptors" }

// TagModel is an open-vocabulary keyword. Names are lowercase [a-z0-9-] and
// created lazily by the pipeline (get-or-create).
type TagModel struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (TagModel) TableName() string { return "tags" }

// ItemTagModel joins items to tags. Position records validator output order,
// which is observable downstream (demographic tags render last).
type ItemTagModel struct {
	ID       uint   `json:"-"        gorm:"primaryKey;autoIncrement"`
	ItemID   string `json:"item_id"  gorm:"type:char(36);index;uniqueIndex:idx_item_tag,priority:1;not null"`
	TagID    string `json:"tag_id"   gorm:"type:char(36);index;uniqueIndex:idx_item_tag,priority:2;not null"`
	Position int    `json:"position" gorm:"not null"`

	Tag *TagModel `json:"tag,omitempty" gorm:"foreignKey:TagID"`
}

func (ItemTagModel) TableName() string { return "item_tags" }

// ItemCategoryModel joins items to categories (0-5 per item).
type ItemCategoryModel struct {
	ID         uint   `json:"-"           gorm:"primaryKey;autoIncrement"`
	ItemID     string `json:"item_id"     gorm:"type:char(36);index;uniqueIndex:idx_item_category,priority:1;not null"`
	CategoryID string `json:"category_id" gorm:"type:char(36);index;uniqueIndex:idx_item_category,priority:2;not null"`

	Category *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (ItemCategoryModel) TableName() string { return "item_categories" }

// ItemDescriptorModel joins items to descriptors.
type ItemDescriptorModel struct {
	ID           uint   `json:"-"             gorm:"primaryKey;autoIncrement"`
	ItemID       string `json:"item_id"       gorm:"type:char(36);index;uniqueIndex:idx_item_descriptor,priority:1;not null"`
	DescriptorID string `json:"descriptor_id" gorm:"type:char(36);index;uniqueIndex:idx_item_descriptor,priority:2;not null"`

	Descriptor *DescriptorModel `json:"descriptor,omitempty" gorm:"foreignKey:DescriptorID"`
}

func (ItemDescriptorModel) TableName() string { return "item_descriptors" }
