package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/groupmirror/core/internal/models"
	"github.com/groupmirror/core/internal/pkg/response"
	"gorm.io/gorm"
)

const imageSubdir = "image"

// Store downloads remote media into the static dir and keeps a
// FileReference row per stored file.
type Store struct {
	db         *gorm.DB
	staticDir  string
	HTTPClient *http.Client
}

func NewStore(db *gorm.DB, staticDir string) *Store {
	return &Store{
		db:         db,
		staticDir:  staticDir,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Sideload fetches a remote image and stores a local copy, returning the
// FileReference ID and the URL path it is served under.
func (s *Store) Sideload(ctx context.Context, sourceURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", "", err
	}
	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("download media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("download media: unexpected status %d", resp.StatusCode)
	}

	name := buildFileName(sourceURL)
	dir := filepath.Join(s.staticDir, imageSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	file, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", "", err
	}
	_, copyErr := io.Copy(file, resp.Body)
	closeErr := file.Close()
	if copyErr != nil {
		return "", "", fmt.Errorf("store media: %w", copyErr)
	}
	if closeErr != nil {
		return "", "", closeErr
	}

	ref := models.FileReferenceModel{
		FileName:  name,
		FileURL:   "/objects/" + imageSubdir + "/" + name,
		SourceURL: sourceURL,
		Status:    "attached",
	}
	if err := s.db.Create(&ref).Error; err != nil {
		return "", "", err
	}
	return ref.ID, ref.FileURL, nil
}

// RegisterRoutes exposes stored files and their metadata listing.
func (s *Store) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/objects")
	g.GET("/:type/:name", s.get)
	g.GET("", authMW, s.list)
}

func (s *Store) get(c *gin.Context) {
	typ := safeSegment(c.Param("type"))
	name := safeSegment(filepath.Base(c.Param("name")))
	if typ == "" || name == "" {
		response.NotFound(c)
		return
	}

	path := filepath.Join(s.staticDir, typ, name)
	if _, err := os.Stat(path); err != nil {
		response.NotFound(c)
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000")
	c.File(path)
}

func (s *Store) list(c *gin.Context) {
	var refs []models.FileReferenceModel
	if err := s.db.Order("created_at DESC").Limit(200).Find(&refs).Error; err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, refs)
}

func buildFileName(sourceURL string) string {
	ext := strings.ToLower(filepath.Ext(sourceURL))
	if ext == "" || len(ext) > 10 || !isSafe(ext[1:]) {
		ext = ".jpg"
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:18] + ext
}

func safeSegment(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, "..") || !isSafe(raw) {
		return ""
	}
	return raw
}

func isSafe(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			continue
		}
		return false
	}
	return true
}
