package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/showquiz/tvtrivia/internal/model"
	"github.com/showquiz/tvtrivia/internal/storage"
)

// Storage is a Postgres-backed implementation of the storage interface
type Storage struct {
	db *gorm.DB
}

// New opens a Postgres connection and migrates the schema
func New(dsn string) (*Storage, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&sessionRecord{},
		&rosterRecord{},
		&selectionsRecord{},
		&usedQuestionsRecord{},
		&bankRecord{},
		&questionRecord{},
		&userRecord{},
		&themeRecord{},
	); err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// NewWithDB creates a Postgres storage with an existing connection (for testing)
func NewWithDB(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func notFound(err error, missing error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return missing
	}
	return err
}

// unmarshalDoc decodes a stored JSON document. Corrupt documents read as
// missing so callers fall back to defaults.
func unmarshalDoc(data []byte, v any, missing error) error {
	if err := json.Unmarshal(data, v); err != nil {
		return missing
	}
	return nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	doc, err := json.Marshal(session)
	if err != nil {
		return err
	}
	record := sessionRecord{SessionID: string(session.ID), Document: doc, UpdatedAt: session.UpdatedAt}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&record).Error
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	var record sessionRecord
	if err := s.db.WithContext(ctx).First(&record, "session_id = ?", string(id)).Error; err != nil {
		return nil, notFound(err, model.ErrSessionNotFound)
	}
	var session model.GameSession
	if err := unmarshalDoc(record.Document, &session, model.ErrSessionNotFound); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	return s.db.WithContext(ctx).Delete(&sessionRecord{}, "session_id = ?", string(id)).Error
}

func (s *Storage) SessionExists(ctx context.Context, id model.SessionID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&sessionRecord{}).
		Where("session_id = ?", string(id)).Count(&count).Error
	return count > 0, err
}

// Roster operations

func (s *Storage) SaveRoster(ctx context.Context, roster *model.Roster) error {
	doc, err := json.Marshal(roster)
	if err != nil {
		return err
	}
	record := rosterRecord{SessionID: string(roster.SessionID), Document: doc, UpdatedAt: roster.UpdatedAt}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&record).Error
}

func (s *Storage) GetRoster(ctx context.Context, sessionID model.SessionID) (*model.Roster, error) {
	var record rosterRecord
	if err := s.db.WithContext(ctx).First(&record, "session_id = ?", string(sessionID)).Error; err != nil {
		return nil, notFound(err, model.ErrRosterNotFound)
	}
	var roster model.Roster
	if err := unmarshalDoc(record.Document, &roster, model.ErrRosterNotFound); err != nil {
		return nil, err
	}
	return &roster, nil
}

// Show selection operations

func (s *Storage) SaveShowSelections(ctx context.Context, selections *model.ShowSelections) error {
	doc, err := json.Marshal(selections)
	if err != nil {
		return err
	}
	record := selectionsRecord{SessionID: string(selections.SessionID), Document: doc, UpdatedAt: selections.UpdatedAt}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&record).Error
}

func (s *Storage) GetShowSelections(ctx context.Context, sessionID model.SessionID) (*model.ShowSelections, error) {
	var record selectionsRecord
	if err := s.db.WithContext(ctx).First(&record, "session_id = ?", string(sessionID)).Error; err != nil {
		return nil, notFound(err, model.ErrSelectionNotFound)
	}
	var selections model.ShowSelections
	if err := unmarshalDoc(record.Document, &selections, model.ErrSelectionNotFound); err != nil {
		return nil, err
	}
	return &selections, nil
}

// Used-question operations

func (s *Storage) SaveUsedQuestions(ctx context.Context, used *model.UsedQuestions) error {
	doc, err := json.Marshal(used)
	if err != nil {
		return err
	}
	record := usedQuestionsRecord{
		SessionID: string(used.SessionID),
		Decade:    used.Decade,
		Document:  doc,
		UpdatedAt: used.UpdatedAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&record).Error
}

func (s *Storage) GetUsedQuestions(ctx context.Context, sessionID model.SessionID, decade string) (*model.UsedQuestions, error) {
	var record usedQuestionsRecord
	err := s.db.WithContext(ctx).
		First(&record, "session_id = ? AND decade = ?", string(sessionID), decade).Error
	if err != nil {
		return nil, notFound(err, model.ErrUsedQuestionsNotFound)
	}
	var used model.UsedQuestions
	if err := unmarshalDoc(record.Document, &used, model.ErrUsedQuestionsNotFound); err != nil {
		return nil, err
	}
	return &used, nil
}

// Question bank operations

func (s *Storage) SaveQuestionBank(ctx context.Context, bank *model.QuestionBank) error {
	shows, err := json.Marshal(bank.Shows)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := bankRecord{
			ID:          bank.ID,
			Decade:      bank.Decade,
			ShowSetHash: bank.ShowSetHash,
			Shows:       shows,
			ObjectKey:   bank.ObjectKey,
			CreatedAt:   bank.CreatedAt,
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
			return err
		}

		if err := tx.Delete(&questionRecord{}, "bank_id = ?", bank.ID).Error; err != nil {
			return err
		}

		if len(bank.Questions) == 0 {
			return nil
		}

		questions := make([]questionRecord, 0, len(bank.Questions))
		for _, q := range bank.Questions {
			questions = append(questions, questionRecord{
				BankID:     bank.ID,
				ExternalID: q.ID,
				ShowID:     q.ShowID,
				ShowTitle:  q.ShowTitle,
				Difficulty: string(q.Difficulty),
				Prompt:     q.Prompt,
				Answer:     q.Answer,
			})
		}
		return tx.Create(&questions).Error
	})
}

func (s *Storage) GetLatestQuestionBank(ctx context.Context, decade string) (*model.QuestionBank, error) {
	var record bankRecord
	err := s.db.WithContext(ctx).
		Preload("Questions").
		Where("decade = ?", decade).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, notFound(err, model.ErrBankNotFound)
	}

	var shows []string
	if err := unmarshalDoc(record.Shows, &shows, model.ErrBankNotFound); err != nil {
		return nil, err
	}

	questions := make([]model.Question, 0, len(record.Questions))
	for _, q := range record.Questions {
		questions = append(questions, model.Question{
			ID:         q.ExternalID,
			ShowID:     q.ShowID,
			ShowTitle:  q.ShowTitle,
			Difficulty: model.Difficulty(q.Difficulty),
			Prompt:     q.Prompt,
			Answer:     q.Answer,
		})
	}

	return &model.QuestionBank{
		ID:          record.ID,
		Decade:      record.Decade,
		Shows:       shows,
		ShowSetHash: record.ShowSetHash,
		Questions:   questions,
		ObjectKey:   record.ObjectKey,
		CreatedAt:   record.CreatedAt,
	}, nil
}

func (s *Storage) SetQuestionBankObjectKey(ctx context.Context, bankID string, objectKey string) error {
	result := s.db.WithContext(ctx).Model(&bankRecord{}).
		Where("id = ?", bankID).
		Update("object_key", objectKey)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrBankNotFound
	}
	return nil
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	record := userRecord{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&record).Error
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var record userRecord
	if err := s.db.WithContext(ctx).First(&record, "username = ?", username).Error; err != nil {
		return nil, notFound(err, model.ErrUserNotFound)
	}
	return &model.User{
		ID:           record.ID,
		Username:     record.Username,
		PasswordHash: record.PasswordHash,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}, nil
}

// Theme operations

func (s *Storage) SaveTheme(ctx context.Context, sessionID model.SessionID, theme model.Theme) error {
	record := themeRecord{SessionID: string(sessionID), Theme: string(theme)}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&record).Error
}

func (s *Storage) GetTheme(ctx context.Context, sessionID model.SessionID) (model.Theme, error) {
	var record themeRecord
	if err := s.db.WithContext(ctx).First(&record, "session_id = ?", string(sessionID)).Error; err != nil {
		return "", notFound(err, model.ErrThemeNotFound)
	}
	return model.Theme(record.Theme), nil
}
