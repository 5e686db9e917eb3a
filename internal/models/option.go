package models

// OptionModel stores named JSON configuration blobs (import settings,
// keyword rules) edited through the admin API.
type OptionModel struct {
	Base
	Name  string `json:"name"  gorm:"uniqueIndex;not null"`
	Value string `json:"value" gorm:"type:longtext"`
}

func (OptionModel) TableName() string { return "options" }
