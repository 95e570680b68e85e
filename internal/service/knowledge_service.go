package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/repository"
	"roleplay_coach_backend/internal/util"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	knowledgeCachePrefix = "knowledge:search:"
	knowledgeCacheTTL    = 5 * time.Minute
	knowledgeSearchLimit = 10
)

type KnowledgeService struct {
	Repo  *repository.KnowledgeRepository
	Redis *redis.Client
}

func NewKnowledgeService(repo *repository.KnowledgeRepository, rdb *redis.Client) *KnowledgeService {
	return &KnowledgeService{Repo: repo, Redis: rdb}
}

func (s *KnowledgeService) List(page, limit int) ([]model.KnowledgeDocument, int64, error) {
	return s.Repo.FindAll(page, limit)
}

func (s *KnowledgeService) Get(id uint) (*model.KnowledgeDocument, error) {
	doc, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Search runs a LIKE query over titles and content, cached briefly in redis
// since the same knowledge base is injected into every enhanced conversation
// turn of a session.
func (s *KnowledgeService) Search(query, documentType string) ([]model.KnowledgeDocument, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("%s%s:%s", knowledgeCachePrefix, documentType, strings.ToLower(query))

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var docs []model.KnowledgeDocument
			if json.Unmarshal([]byte(cached), &docs) == nil {
				return docs, nil
			}
		}
	}

	docs, err := s.Repo.Search(query, documentType, knowledgeSearchLimit)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(docs); err == nil {
			s.Redis.Set(ctx, cacheKey, data, knowledgeCacheTTL)
		}
	}
	return docs, nil
}

func (s *KnowledgeService) Create(doc *model.KnowledgeDocument) error {
	if doc.DocumentType == "" {
		doc.DocumentType = "general"
	}
	if err := s.Repo.Create(doc); err != nil {
		return err
	}
	s.invalidateSearch()
	return nil
}

func (s *KnowledgeService) Update(id uint, updated *model.KnowledgeDocument) (*model.KnowledgeDocument, error) {
	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	doc.Title = updated.Title
	doc.Content = updated.Content
	if updated.DocumentType != "" {
		doc.DocumentType = updated.DocumentType
	}
	doc.Tags = updated.Tags

	if err := s.Repo.Update(doc); err != nil {
		return nil, err
	}
	s.invalidateSearch()
	return doc, nil
}

func (s *KnowledgeService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.invalidateSearch()
	return nil
}

func (s *KnowledgeService) invalidateSearch() {
	if s.Redis == nil {
		return
	}
	ctx := context.Background()
	keys, err := s.Redis.Keys(ctx, knowledgeCachePrefix+"*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	s.Redis.Del(ctx, keys...)
}
