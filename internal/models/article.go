package models

// ArticleModel is an imported article. Every row originates from a remote
// group post; SourcePostID is the sole deduplication key. It is indexed
// but deliberately not unique: the importer checks before creating (see
// the importer module for the known race window).
type ArticleModel struct {
	Base
	Title           string         `json:"title"             gorm:"not null"`
	Text            string         `json:"text"              gorm:"type:longtext"`
	SourcePostID    string         `json:"source_post_id"    gorm:"column:source_post_id;index;not null"`
	IsPublished     bool           `json:"is_published"      gorm:"default:false;index"`
	CategoryID      *string        `json:"category_id"       gorm:"index"`
	Category        *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ThumbnailFileID *string        `json:"thumbnail_file_id" gorm:"index"`
}

func (ArticleModel) TableName() string { return "articles" }
