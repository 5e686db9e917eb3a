package settings

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/groupmirror/core/internal/models"
	"github.com/groupmirror/core/internal/modules/classifier"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	importSettingsKey = "import_settings"
	keywordRulesKey   = "keyword_rules"

	MinIntervalMinutes = 1
	MaxIntervalMinutes = 60
	MinPostLimit       = 1
	MaxPostLimit       = 30
)

// ImportSettings is the operator-editable import configuration, persisted
// as a JSON option row and re-read at the start of every run.
type ImportSettings struct {
	APIToken        string `json:"api_token"`
	GroupID         string `json:"group_id"`
	Enabled         bool   `json:"enabled"`
	ImportComments  bool   `json:"import_comments"`
	IntervalMinutes int    `json:"interval_minutes"`
	PostLimit       int    `json:"post_limit"`
}

// DefaultImportSettings is what a fresh install runs with: disabled,
// 5 minute cadence, 10 posts per run.
func DefaultImportSettings() ImportSettings {
	return ImportSettings{
		IntervalMinutes: 5,
		PostLimit:       10,
	}
}

// Clamp forces interval and limit into their allowed ranges.
func (s *ImportSettings) Clamp() {
	if s.IntervalMinutes < MinIntervalMinutes {
		s.IntervalMinutes = MinIntervalMinutes
	}
	if s.IntervalMinutes > MaxIntervalMinutes {
		s.IntervalMinutes = MaxIntervalMinutes
	}
	if s.PostLimit < MinPostLimit {
		s.PostLimit = MinPostLimit
	}
	if s.PostLimit > MaxPostLimit {
		s.PostLimit = MaxPostLimit
	}
}

// Service manages the persisted import settings and keyword rule table,
// with an in-memory cache in front of the options table.
type Service struct {
	db *gorm.DB

	mu       sync.RWMutex
	settings *ImportSettings
	rules    []classifier.KeywordRule
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Get returns the current import settings, loading from DB if not cached.
func (s *Service) Get() (ImportSettings, error) {
	s.mu.RLock()
	if s.settings != nil {
		defer s.mu.RUnlock()
		return *s.settings, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings != nil {
		return *s.settings, nil
	}

	loaded := DefaultImportSettings()
	found, err := s.loadOption(importSettingsKey, &loaded)
	if err != nil {
		return ImportSettings{}, err
	}
	loaded.Clamp()
	s.settings = &loaded
	if !found {
		_ = s.persistOption(importSettingsKey, loaded)
	}
	return loaded, nil
}

// Update merges a partial settings patch and persists the result.
func (s *Service) Update(patch map[string]json.RawMessage) (ImportSettings, error) {
	current, err := s.Get()
	if err != nil {
		return ImportSettings{}, err
	}

	currentJSON, err := json.Marshal(current)
	if err != nil {
		return ImportSettings{}, err
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(currentJSON, &merged); err != nil {
		return ImportSettings{}, err
	}
	for k, v := range patch {
		merged[k] = v
	}
	mergedJSON, err := json.Marshal(merged)
	if err != nil {
		return ImportSettings{}, err
	}

	updated := DefaultImportSettings()
	if err := json.Unmarshal(mergedJSON, &updated); err != nil {
		return ImportSettings{}, errors.New("invalid settings payload")
	}
	updated.Clamp()

	if err := s.persistOption(importSettingsKey, updated); err != nil {
		return ImportSettings{}, err
	}

	s.mu.Lock()
	s.settings = &updated
	s.mu.Unlock()
	return updated, nil
}

// KeywordRules returns the stored classification table in storage order.
func (s *Service) KeywordRules() ([]classifier.KeywordRule, error) {
	s.mu.RLock()
	if s.rules != nil {
		defer s.mu.RUnlock()
		return s.rules, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rules != nil {
		return s.rules, nil
	}

	rules := []classifier.KeywordRule{}
	if _, err := s.loadOption(keywordRulesKey, &rules); err != nil {
		return nil, err
	}
	s.rules = rules
	return rules, nil
}

// ReplaceKeywordRules stores a new rule table, replacing the old one
// wholesale. The admin table is always submitted as a full snapshot.
func (s *Service) ReplaceKeywordRules(rules []classifier.KeywordRule) error {
	if rules == nil {
		rules = []classifier.KeywordRule{}
	}
	if err := s.persistOption(keywordRulesKey, rules); err != nil {
		return err
	}
	s.mu.Lock()
	s.rules = rules
	s.mu.Unlock()
	return nil
}

func (s *Service) loadOption(name string, dest interface{}) (bool, error) {
	var opt models.OptionModel
	err := s.db.Where("name = ?", name).First(&opt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(opt.Value), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) persistOption(name string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	opt := models.OptionModel{Name: name, Value: string(data)}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&opt).Error
}
