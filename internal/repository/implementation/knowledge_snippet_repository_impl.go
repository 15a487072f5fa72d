package implementation

import (
	"context"
	"fmt"

	"staystrong-chat-be/internal/mapper"
	"staystrong-chat-be/internal/model"
	"staystrong-chat-be/internal/repository/contract"
	"staystrong-chat-be/pkg/knowledge"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KnowledgeSnippetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeSnippetMapper
}

func NewKnowledgeSnippetRepository(db *gorm.DB) contract.KnowledgeSnippetRepository {
	return &KnowledgeSnippetRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeSnippetMapper(),
	}
}

func (r *KnowledgeSnippetRepositoryImpl) Load(ctx context.Context) ([]knowledge.Snippet, error) {
	var rows []model.KnowledgeSnippet
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load knowledge snippets: %w", err)
	}
	if len(rows) == 0 {
		return nil, knowledge.ErrIndexNotBuilt
	}

	out := make([]knowledge.Snippet, len(rows))
	for i := range rows {
		out[i] = r.mapper.ToDomain(&rows[i])
	}
	return out, nil
}

func (r *KnowledgeSnippetRepositoryImpl) ReplaceAll(ctx context.Context, snippets []knowledge.Snippet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.KnowledgeSnippet{}).Error; err != nil {
			return err
		}
		if len(snippets) == 0 {
			return nil
		}

		rows := make([]*model.KnowledgeSnippet, len(snippets))
		for i, s := range snippets {
			rows[i] = r.mapper.ToModel(s, i)
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(rows, 100).Error
	})
}

func (r *KnowledgeSnippetRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.KnowledgeSnippet{}).Count(&n).Error
	return n, err
}
