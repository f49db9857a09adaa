// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Message
// model, including the read-flag transitions.
//
// The read flag only ever moves false -> true, and only for messages whose
// sender is not the reader. Both MarkConversationRead and MarkMessageRead
// encode that predicate in the WHERE clause, so re-marking is a no-op rather
// than an error and the flag can never regress.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawmatch/go-dating-backend/internal/domain"
)

// CreateMessage inserts a new message row with read=false.
func CreateMessage(ctx context.Context, db *gorm.DB, matchID, senderID, content string) (*domain.Message, error) {
	m := &domain.Message{
		ID:        uuid.NewString(),
		MatchID:   matchID,
		SenderID:  senderID,
		Content:   content,
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// ListMessages returns a match's messages ordered deterministically for
// display (CreatedAt ASC, ID ASC).
func ListMessages(ctx context.Context, db *gorm.DB, matchID string) ([]domain.Message, error) {
	var out []domain.Message
	err := db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// LastMessage returns the newest message in a match, or ErrNotFound when the
// conversation has no messages yet.
func LastMessage(ctx context.Context, db *gorm.DB, matchID string) (*domain.Message, error) {
	var m domain.Message
	err := db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at DESC, id DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CountUnread returns the number of messages in matchID that readerID has not
// read, i.e. unread messages sent by the counterpart.
func CountUnread(ctx context.Context, db *gorm.DB, matchID, readerID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("match_id = ? AND sender_id <> ? AND is_read = ?", matchID, readerID, false).
		Count(&total).Error
	return total, err
}

// MarkConversationRead marks every unread counterpart message in matchID as
// read on behalf of readerID. Returns the number of rows flipped; zero rows
// is the idempotent no-op case, not an error.
func MarkConversationRead(ctx context.Context, db *gorm.DB, matchID, readerID string) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("match_id = ? AND sender_id <> ? AND is_read = ?", matchID, readerID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

// MarkMessageRead marks a single message as read on behalf of readerID,
// skipping messages the reader sent themselves. Used by live feeds when a
// counterpart message arrives while the conversation is open.
func MarkMessageRead(ctx context.Context, db *gorm.DB, messageID, readerID string) error {
	return db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("id = ? AND sender_id <> ? AND is_read = ?", messageID, readerID, false).
		Update("is_read", true).Error
}

// GetMessage fetches a message by ID.
func GetMessage(ctx context.Context, db *gorm.DB, id string) (*domain.Message, error) {
	var m domain.Message
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
