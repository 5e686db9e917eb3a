package models

// CategoryModel represents an article category. The importer creates rows
// lazily for subcategory names coming out of the keyword classifier.
type CategoryModel struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null"`

	Articles []ArticleModel `json:"articles,omitempty" gorm:"foreignKey:CategoryID"`
}

func (CategoryModel) TableName() string { return "categories" }
