package comment

import (
	"time"

	"github.com/groupmirror/core/internal/models"
	"gorm.io/gorm"
)

const (
	sourceFacebook = "facebook"
	unknownAuthor  = "Unknown"
)

// Service creates imported comments. Imports are pre-approved: the source
// network already moderated them, and the article is a draft anyway.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateImported attaches a comment from the source feed to an article.
// createdTime is the source's timestamp string; when unparsable the import
// time is used instead.
func (s *Service) CreateImported(articleID, author, text, createdTime string) error {
	comment := models.CommentModel{
		ArticleID: articleID,
		Author:    normalizeAuthor(author),
		Text:      text,
		State:     models.CommentApproved,
		Source:    sourceFacebook,
		PostedAt:  parseCreatedTime(createdTime),
	}
	return s.db.Create(&comment).Error
}

// ListByArticle returns a post's imported comments in posting order.
func (s *Service) ListByArticle(articleID string) ([]models.CommentModel, error) {
	var comments []models.CommentModel
	err := s.db.Where("article_id = ?", articleID).
		Order("posted_at ASC").
		Find(&comments).Error
	return comments, err
}

func normalizeAuthor(author string) string {
	if author == "" {
		return unknownAuthor
	}
	return author
}

func parseCreatedTime(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-0700"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now()
}
