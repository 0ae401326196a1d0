package postgres

import "time"

// Records mirror the storage documents. Session-scoped state keeps the
// wholesale-document shape (one JSON column per record); question banks
// get relational tables so banks can be queried by decade and recency.

type sessionRecord struct {
	SessionID string `gorm:"primaryKey;size:64"`
	Document  []byte `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (sessionRecord) TableName() string { return "game_sessions" }

type rosterRecord struct {
	SessionID string `gorm:"primaryKey;size:64"`
	Document  []byte `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (rosterRecord) TableName() string { return "rosters" }

type selectionsRecord struct {
	SessionID string `gorm:"primaryKey;size:64"`
	Document  []byte `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (selectionsRecord) TableName() string { return "show_selections" }

type usedQuestionsRecord struct {
	SessionID string `gorm:"primaryKey;size:64"`
	Decade    string `gorm:"primaryKey;size:8"`
	Document  []byte `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (usedQuestionsRecord) TableName() string { return "used_questions" }

type bankRecord struct {
	ID          string `gorm:"primaryKey;size:64"`
	Decade      string `gorm:"size:8;index:idx_banks_decade_created"`
	ShowSetHash string `gorm:"size:64"`
	Shows       []byte `gorm:"type:jsonb;not null"`
	ObjectKey   string
	CreatedAt   time.Time `gorm:"index:idx_banks_decade_created"`

	Questions []questionRecord `gorm:"foreignKey:BankID"`
}

func (bankRecord) TableName() string { return "question_banks" }

type questionRecord struct {
	ID         uint   `gorm:"primaryKey"`
	BankID     string `gorm:"size:64;index;not null"`
	ExternalID string `gorm:"size:128;not null"`
	ShowID     string `gorm:"size:128"`
	ShowTitle  string
	Difficulty string `gorm:"size:8"`
	Prompt     string `gorm:"not null"`
	Answer     string `gorm:"not null"`
}

func (questionRecord) TableName() string { return "questions" }

type userRecord struct {
	ID           string `gorm:"primaryKey;size:64"`
	Username     string `gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

type themeRecord struct {
	SessionID string `gorm:"primaryKey;size:64"`
	Theme     string `gorm:"size:32;not null"`
	UpdatedAt time.Time
}

func (themeRecord) TableName() string { return "themes" }
