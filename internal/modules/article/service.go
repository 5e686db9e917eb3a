package article

import (
	"errors"

	"github.com/groupmirror/core/internal/models"
	"github.com/groupmirror/core/internal/pkg/pagination"
	"github.com/groupmirror/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Service handles imported-article persistence. It is the destination side
// of the import pipeline: the importer only ever creates drafts here and
// amends them within the same run; it never updates or deletes articles in
// later runs.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ExistsBySourcePostID reports whether any article was already imported
// from the given remote post. Published articles count too: a draft that
// an editor published later must still suppress re-import.
func (s *Service) ExistsBySourcePostID(sourcePostID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.ArticleModel{}).
		Where("source_post_id = ?", sourcePostID).
		Count(&count).Error
	return count > 0, err
}

// CreateDraft inserts a new unpublished article linked to its source post.
func (s *Service) CreateDraft(title, text, sourcePostID string) (*models.ArticleModel, error) {
	art := models.ArticleModel{
		Title:        title,
		Text:         text,
		SourcePostID: sourcePostID,
		IsPublished:  false,
	}
	if err := s.db.Create(&art).Error; err != nil {
		return nil, err
	}
	return &art, nil
}

// PrependEmbed puts an embed tag above the article's current body.
// Successive calls stack embeds in reverse call order, which is what the
// importer relies on for its media ordering.
func (s *Service) PrependEmbed(articleID, embed string) error {
	art, err := s.GetByID(articleID)
	if err != nil {
		return err
	}
	if art == nil {
		return gorm.ErrRecordNotFound
	}
	text := embed
	if art.Text != "" {
		text += "\n\n" + art.Text
	}
	return s.db.Model(&models.ArticleModel{}).
		Where("id = ?", articleID).
		Update("text", text).Error
}

// SetThumbnail attaches a sideloaded file as the article thumbnail.
func (s *Service) SetThumbnail(articleID, fileID string) error {
	return s.db.Model(&models.ArticleModel{}).
		Where("id = ?", articleID).
		Update("thumbnail_file_id", fileID).Error
}

// AssignCategory links the article to a category, creating the category
// row on first use of a subcategory name.
func (s *Service) AssignCategory(articleID, name string) error {
	var cat models.CategoryModel
	err := s.db.Where("name = ?", name).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cat = models.CategoryModel{Name: name}
		err = s.db.Create(&cat).Error
	}
	if err != nil {
		return err
	}
	return s.db.Model(&models.ArticleModel{}).
		Where("id = ?", articleID).
		Update("category_id", cat.ID).Error
}

// GetByID fetches a single article. Returns (nil, nil) when absent.
func (s *Service) GetByID(id string) (*models.ArticleModel, error) {
	var art models.ArticleModel
	if err := s.db.Preload("Category").First(&art, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &art, nil
}

// List returns a paginated list of imported articles, newest first.
func (s *Service) List(q pagination.Query) ([]models.ArticleModel, response.Pagination, error) {
	tx := s.db.Model(&models.ArticleModel{}).
		Preload("Category").
		Order("created_at DESC")

	var articles []models.ArticleModel
	pag, err := pagination.Paginate(tx, q, &articles)
	return articles, pag, err
}
