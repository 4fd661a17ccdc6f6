package chat

import (
	"context"
	"strings"

	"gamehub-backend/internal/models"
	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/repository"
	"gamehub-backend/internal/service"

	"gorm.io/gorm"
)

// Service stores support chat messages. Batch inserts are transactional so a
// single invalid message leaves no rows behind.
type Service struct {
	*service.Service[models.ChatMessage]
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	repo := repository.New[models.ChatMessage](db, "id", "sent_at")
	return &Service{Service: service.New(repo), DB: db}
}

type CreateMessageInput struct {
	UserID      uint   `json:"user_id"`
	MessageText string `json:"message_text"`
	MessageType string `json:"message_type"`
	IsFromUser  *bool  `json:"is_from_user"`
}

func (in CreateMessageInput) validate() error {
	if in.UserID == 0 {
		return apperrors.Validation("user_id is required")
	}
	if strings.TrimSpace(in.MessageText) == "" {
		return apperrors.Validation("message_text must not be empty")
	}
	if in.MessageType == "" {
		return apperrors.Validation("message_type is required")
	}
	return nil
}

func (in CreateMessageInput) toModel() *models.ChatMessage {
	msg := &models.ChatMessage{
		UserID:      in.UserID,
		MessageText: in.MessageText,
		MessageType: in.MessageType,
		IsFromUser:  true,
	}
	if in.IsFromUser != nil {
		msg.IsFromUser = *in.IsFromUser
	}
	return msg
}

func (s *Service) CreateMessage(ctx context.Context, in CreateMessageInput) (*models.ChatMessage, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	msg := in.toModel()
	if err := s.Create(ctx, msg); err != nil {
		return nil, apperrors.FromDB(err)
	}
	return msg, nil
}

// CreateBatch inserts all messages or none. Validation runs up front so the
// transaction is never opened for a payload that cannot succeed.
func (s *Service) CreateBatch(ctx context.Context, inputs []CreateMessageInput) ([]models.ChatMessage, error) {
	if len(inputs) == 0 {
		return nil, apperrors.Validation("messages must not be empty")
	}
	messages := make([]models.ChatMessage, 0, len(inputs))
	for _, in := range inputs {
		if err := in.validate(); err != nil {
			return nil, err
		}
		messages = append(messages, *in.toModel())
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&messages).Error
	})
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	return messages, nil
}

func (s *Service) GetMessage(ctx context.Context, id uint) (*models.ChatMessage, error) {
	msg, err := s.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if msg == nil {
		return nil, apperrors.NotFound("chat message", id)
	}
	return msg, nil
}

// GetUserMessages returns a user's messages oldest first, so the slice reads
// as a conversation.
func (s *Service) GetUserMessages(ctx context.Context, userID uint, skip, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.Repo.DB().WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sent_at ASC").
		Offset(skip).Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	return messages, nil
}

func (s *Service) UpdateMessage(ctx context.Context, id uint, changes map[string]interface{}) (*models.ChatMessage, error) {
	if text, ok := changes["message_text"]; ok {
		str, isStr := text.(string)
		if !isStr || strings.TrimSpace(str) == "" {
			return nil, apperrors.Validation("message_text must not be empty")
		}
	}
	msg, err := s.Update(ctx, id, changes)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if msg == nil {
		return nil, apperrors.NotFound("chat message", id)
	}
	return msg, nil
}

func (s *Service) DeleteMessage(ctx context.Context, id uint) error {
	found, err := s.Delete(ctx, id)
	if err != nil {
		return apperrors.FromDB(err)
	}
	if !found {
		return apperrors.NotFound("chat message", id)
	}
	return nil
}

type Statistics struct {
	TotalMessages int64            `json:"total_messages"`
	FromUsers     int64            `json:"from_users"`
	FromSupport   int64            `json:"from_support"`
	ByType        map[string]int64 `json:"by_type"`
}

func (s *Service) GetStatistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{ByType: map[string]int64{}}
	db := s.Repo.DB().WithContext(ctx).Model(&models.ChatMessage{})

	if err := db.Count(&stats.TotalMessages).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	if err := s.Repo.DB().WithContext(ctx).Model(&models.ChatMessage{}).
		Where("is_from_user = ?", true).Count(&stats.FromUsers).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	stats.FromSupport = stats.TotalMessages - stats.FromUsers

	type typeCount struct {
		MessageType string
		N           int64
	}
	var rows []typeCount
	if err := s.Repo.DB().WithContext(ctx).Model(&models.ChatMessage{}).
		Select("message_type, COUNT(*) AS n").Group("message_type").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	for _, row := range rows {
		stats.ByType[row.MessageType] = row.N
	}
	return stats, nil
}
