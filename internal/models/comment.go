package models

import "time"

// CommentState represents the moderation state of a comment.
type CommentState int

const (
	CommentPending  CommentState = 0
	CommentApproved CommentState = 1
	CommentJunk     CommentState = 2
)

// CommentModel represents a comment attached to an article. Imported
// comments carry the source network in Source and are created approved.
type CommentModel struct {
	Base
	ArticleID string       `json:"article_id" gorm:"not null;index"`
	Author    string       `json:"author"     gorm:"not null"`
	Text      string       `json:"text"       gorm:"type:text;not null"`
	State     CommentState `json:"state"      gorm:"default:0;index"`
	Source    string       `json:"source"`
	PostedAt  time.Time    `json:"posted_at"`
}

func (CommentModel) TableName() string { return "comments" }
