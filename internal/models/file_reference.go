package models

// FileReferenceModel tracks media files sideloaded into the static dir.
// Status is "attached" once an article references the file, "pending"
// while a download has not been claimed yet.
type FileReferenceModel struct {
	Base
	FileName  string `json:"file_name" gorm:"not null"`
	FileURL   string `json:"file_url"  gorm:"not null"`
	SourceURL string `json:"source_url"`
	Status    string `json:"status"    gorm:"default:pending;index"`
}

func (FileReferenceModel) TableName() string { return "file_references" }
