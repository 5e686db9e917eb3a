package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/groupmirror/core/internal/models"
	"github.com/groupmirror/core/internal/modules/classifier"
	"github.com/groupmirror/core/internal/modules/facebook"
	"go.uber.org/zap"
)

const (
	// fallbackTitle is used when a post has no message text.
	fallbackTitle = "New Post"
	// maxTitleRunes bounds the derived title, counted in codepoints.
	maxTitleRunes = 80
	// maxExtraImages bounds how many attachment images get embedded.
	maxExtraImages = 10
)

// ErrMissingConfig aborts a run before any network call when token, group
// or limit is not configured.
var ErrMissingConfig = errors.New("missing api token, group id, or post limit")

// ImportConfig is the immutable per-run configuration. It is constructed
// from the stored settings at the start of each tick, never mutated by the
// pipeline.
type ImportConfig struct {
	APIToken        string
	GroupID         string
	Enabled         bool
	ImportComments  bool
	IntervalMinutes int
	PostLimit       int
}

// FeedSource fetches normalized posts from the remote group feed.
type FeedSource interface {
	FetchGroupFeed(ctx context.Context, groupID, token string, limit int) ([]facebook.Post, error)
}

// ArticleStore is the persistence boundary for imported articles. The
// exists-then-create pair is the dedup mechanism; it is best-effort, not
// transactional, so two overlapping runs could both pass the check. Ticks
// are minutes apart and manual triggers are rare, so that window is
// accepted.
type ArticleStore interface {
	ExistsBySourcePostID(sourcePostID string) (bool, error)
	CreateDraft(title, text, sourcePostID string) (*models.ArticleModel, error)
	PrependEmbed(articleID, embed string) error
	SetThumbnail(articleID, fileID string) error
	AssignCategory(articleID, name string) error
}

// CommentStore persists imported comments.
type CommentStore interface {
	CreateImported(articleID, author, text, createdTime string) error
}

// ImageValidator checks a media URL before a download is attempted.
type ImageValidator interface {
	IsValidImage(ctx context.Context, url string) bool
}

// MediaStore downloads a remote media file and stores a local copy.
type MediaStore interface {
	Sideload(ctx context.Context, url string) (fileID, fileURL string, err error)
}

// URLCleaner strips volatile query parameters from a media URL.
type URLCleaner func(raw string) (string, error)

// RuleSource supplies the keyword table in storage order.
type RuleSource interface {
	KeywordRules() ([]classifier.KeywordRule, error)
}

// Stats summarizes one run.
type Stats struct {
	Fetched         int `json:"fetched"`
	Imported        int `json:"imported"`
	Skipped         int `json:"skipped"`
	MediaFailures   int `json:"media_failures"`
	CommentFailures int `json:"comment_failures"`
}

// Service drives one import run: fetch, then per post dedup, classify,
// sideload media and persist. Per-post and per-item failures are logged
// and skipped; only config and fetch failures abort a run.
type Service struct {
	feed      FeedSource
	articles  ArticleStore
	comments  CommentStore
	validator ImageValidator
	media     MediaStore
	cleanURL  URLCleaner
	rules     RuleSource
	logger    *zap.Logger
}

func NewService(
	feed FeedSource,
	articles ArticleStore,
	comments CommentStore,
	validator ImageValidator,
	media MediaStore,
	cleanURL URLCleaner,
	rules RuleSource,
	logger *zap.Logger,
) *Service {
	return &Service{
		feed:      feed,
		articles:  articles,
		comments:  comments,
		validator: validator,
		media:     media,
		cleanURL:  cleanURL,
		rules:     rules,
		logger:    logger.Named("ImportService"),
	}
}

// Run executes one import pass. Errors returned here are run-level
// (config or fetch); everything that goes wrong after the fetch is logged
// through the sink and absorbed.
func (s *Service) Run(ctx context.Context, cfg ImportConfig) (*Stats, error) {
	stats := &Stats{}

	if !cfg.Enabled {
		s.logger.Info("import is disabled")
		return stats, nil
	}
	if cfg.APIToken == "" || cfg.GroupID == "" || cfg.PostLimit <= 0 {
		s.logger.Warn("import misconfigured", zap.Error(ErrMissingConfig))
		return nil, ErrMissingConfig
	}

	posts, err := s.feed.FetchGroupFeed(ctx, cfg.GroupID, cfg.APIToken, cfg.PostLimit)
	if err != nil {
		s.logger.Warn("error fetching posts from the group feed", zap.Error(err))
		return nil, err
	}
	stats.Fetched = len(posts)

	if len(posts) == 0 {
		s.logger.Info("no new posts found in the group feed")
		return stats, nil
	}

	rules, err := s.rules.KeywordRules()
	if err != nil {
		s.logger.Warn("failed to load keyword rules, classification skipped", zap.Error(err))
		rules = nil
	}

	for _, post := range posts {
		s.importPost(ctx, cfg, post, rules, stats)
	}

	s.logger.Info("import run finished",
		zap.Int("fetched", stats.Fetched),
		zap.Int("imported", stats.Imported),
		zap.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

func (s *Service) importPost(ctx context.Context, cfg ImportConfig, post facebook.Post, rules []classifier.KeywordRule, stats *Stats) {
	exists, err := s.articles.ExistsBySourcePostID(post.ID)
	if err != nil {
		s.logger.Warn("dedup lookup failed, post skipped", zap.String("post_id", post.ID), zap.Error(err))
		stats.Skipped++
		return
	}
	if exists {
		s.logger.Info(fmt.Sprintf("post %s already exists, skipped", post.ID))
		stats.Skipped++
		return
	}

	title := deriveTitle(post.Message)
	art, err := s.articles.CreateDraft(title, post.Message, post.ID)
	if err != nil {
		s.logger.Warn("failed to create draft article", zap.String("post_id", post.ID), zap.Error(err))
		return
	}
	stats.Imported++
	s.logger.Info(fmt.Sprintf("created draft %s from post %s", art.ID, post.ID))

	if subcategory, ok := classifier.Classify(post.Message, rules); ok {
		if err := s.articles.AssignCategory(art.ID, subcategory); err != nil {
			s.logger.Warn("failed to assign category", zap.String("article_id", art.ID), zap.Error(err))
		}
	} else {
		s.logger.Info(fmt.Sprintf("no category matched for post %s", post.ID))
	}

	s.attachThumbnail(ctx, post, art.ID, stats)
	s.embedImages(ctx, post, art.ID, title, stats)
	s.embedVideo(post, art.ID)

	if cfg.ImportComments {
		s.importComments(post, art.ID, stats)
	}
}

// attachThumbnail resolves the post's main picture into the article
// thumbnail. Every failure leaves the article without one, never fatal.
func (s *Service) attachThumbnail(ctx context.Context, post facebook.Post, articleID string, stats *Stats) {
	if post.ImageURL == "" {
		return
	}

	cleaned, err := s.cleanURL(post.ImageURL)
	if err != nil {
		s.logger.Warn("invalid main image url", zap.String("post_id", post.ID), zap.String("url", post.ImageURL))
		stats.MediaFailures++
		return
	}
	if !s.validator.IsValidImage(ctx, cleaned) {
		s.logger.Warn("main image url did not validate", zap.String("post_id", post.ID), zap.String("url", cleaned))
		stats.MediaFailures++
		return
	}

	fileID, _, err := s.media.Sideload(ctx, cleaned)
	if err != nil {
		s.logger.Warn("error downloading main image", zap.String("post_id", post.ID), zap.Error(err))
		stats.MediaFailures++
		return
	}
	if err := s.articles.SetThumbnail(articleID, fileID); err != nil {
		s.logger.Warn("failed to set thumbnail", zap.String("article_id", articleID), zap.Error(err))
		stats.MediaFailures++
	}
}

// embedImages prepends an embed per valid attachment image, first ten
// only. Because each valid image is prepended in encounter order, the last
// one ends up on top and the body shows them in reverse of feed order.
func (s *Service) embedImages(ctx context.Context, post facebook.Post, articleID, alt string, stats *Stats) {
	for i, raw := range post.Images {
		if i >= maxExtraImages {
			break
		}

		cleaned, err := s.cleanURL(raw)
		if err != nil {
			s.logger.Warn("invalid additional image url", zap.String("post_id", post.ID), zap.String("url", raw))
			stats.MediaFailures++
			continue
		}
		if !s.validator.IsValidImage(ctx, cleaned) {
			s.logger.Warn("additional image url did not validate", zap.String("post_id", post.ID), zap.String("url", cleaned))
			stats.MediaFailures++
			continue
		}

		_, fileURL, err := s.media.Sideload(ctx, cleaned)
		if err != nil {
			s.logger.Warn("error downloading additional image", zap.String("post_id", post.ID), zap.Error(err))
			stats.MediaFailures++
			continue
		}

		embed := fmt.Sprintf(`<img src="%s" alt="%s">`, fileURL, alt)
		if err := s.articles.PrependEmbed(articleID, embed); err != nil {
			s.logger.Warn("failed to embed image", zap.String("article_id", articleID), zap.Error(err))
			stats.MediaFailures++
		}
	}
}

// embedVideo prepends the video embed after all images, so the video sits
// above them in the final body. The video is referenced remotely, not
// sideloaded.
func (s *Service) embedVideo(post facebook.Post, articleID string) {
	if post.VideoURL == "" {
		return
	}
	embed := fmt.Sprintf(`<video controls><source src="%s" type="video/mp4"></video>`, post.VideoURL)
	if err := s.articles.PrependEmbed(articleID, embed); err != nil {
		s.logger.Warn("failed to embed video", zap.String("article_id", articleID), zap.Error(err))
	}
}

// importComments inserts each source comment independently: a failure is
// logged and later comments are still attempted, so a post can end up with
// a partial comment set. There is no rollback.
func (s *Service) importComments(post facebook.Post, articleID string, stats *Stats) {
	if len(post.Comments) == 0 {
		s.logger.Info(fmt.Sprintf("no comments found for post %s", post.ID))
		return
	}
	for _, c := range post.Comments {
		if err := s.comments.CreateImported(articleID, c.Author, c.Message, c.CreatedTime); err != nil {
			s.logger.Warn("failed to import comment", zap.String("article_id", articleID), zap.Error(err))
			stats.CommentFailures++
		}
	}
}

// deriveTitle truncates the message to the title limit, counting
// codepoints rather than bytes so multibyte text is not cut mid-rune.
func deriveTitle(message string) string {
	if message == "" {
		return fallbackTitle
	}
	runes := []rune(message)
	if len(runes) > maxTitleRunes {
		runes = runes[:maxTitleRunes]
	}
	return string(runes)
}
