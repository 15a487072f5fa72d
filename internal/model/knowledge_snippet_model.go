package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// KnowledgeSnippet is one row of the approved-context corpus. Position keeps corpus order so
// similarity ties resolve the same way as the file index.
type KnowledgeSnippet struct {
	Id             string          `gorm:"type:text;primaryKey"`
	Position       int             `gorm:"not null;index"`
	Text           string          `gorm:"type:text;not null"`
	Topic          string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (KnowledgeSnippet) TableName() string {
	return "knowledge_snippets"
}
