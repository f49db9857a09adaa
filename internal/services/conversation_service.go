// Package services – ConversationService
//
// This file implements the ConversationService, which owns everything that
// happens after a match: the conversation overview (counterpart, last
// message, unread count, relative-time label), the per-match history view
// with day grouping and read-marking, and sending.
//
// Read flags move false -> true only, and only for messages the reader did
// not send; re-marking is a no-op. Sending treats the message insert as the
// correctness-critical write: the match's last-activity timestamp is updated
// best-effort afterwards and a failure there never hides the message.
package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/pawmatch/go-dating-backend/internal/domain"
	"github.com/pawmatch/go-dating-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MessagePublisher receives committed messages for realtime fan-out to open
// conversation feeds. Implementations must not block.
type MessagePublisher interface {
	Publish(matchID string, msg domain.Message)
}

// ConversationService implements the post-match messaging use-cases.
type ConversationService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// Publisher fans committed messages out to live subscribers. Optional;
	// nil disables realtime delivery.
	Publisher MessagePublisher

	// ResolveURL maps stored image references to display URLs. Identity
	// when nil.
	ResolveURL func(string) string

	// MaxMessageRunes caps message length. <= 0 disables the cap.
	MaxMessageRunes int

	// Now is a clock seam for relative-time labels in tests. time.Now
	// when nil.
	Now func() time.Time
}

// ConversationSummary is one row of the conversation overview.
type ConversationSummary struct {
	MatchID     string      `json:"match_id"`
	Counterpart ProfileCard `json:"counterpart"`

	// LastMessage is nil while the conversation has no messages yet.
	LastMessage *domain.Message `json:"last_message,omitempty"`
	UnreadCount int64           `json:"unread_count"`

	// ActivityLabel is the human-relative bucket of the last activity:
	// same day "15:04", one day "yesterday", 2-6 days the weekday name,
	// otherwise month/day.
	ActivityLabel string    `json:"activity_label"`
	LastActivity  time.Time `json:"last_activity"`
	MatchedAt     time.Time `json:"matched_at"`
}

// DayGroup is a calendar day's worth of messages in display order.
type DayGroup struct {
	// Date is the day key in YYYY-MM-DD form.
	Date string `json:"date"`
	// Label is the day's display label: "today", "yesterday", or month/day.
	Label    string           `json:"label"`
	Messages []domain.Message `json:"messages"`
}

// Conversation is the opened view of a single match.
type Conversation struct {
	MatchID     string      `json:"match_id"`
	Counterpart ProfileCard `json:"counterpart"`
	Days        []DayGroup  `json:"days"`
}

// List returns the conversation overview for userID, ordered by last
// activity descending. A store failure fails the whole call; no partial
// overviews.
func (s *ConversationService) List(ctx context.Context, userID string) ([]ConversationSummary, error) {
	tr := otel.Tracer("services/ConversationService")
	ctx, span := tr.Start(ctx, "List",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	matches, err := repo.ListMatchesForUser(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]ConversationSummary, 0, len(matches))
	for _, m := range matches {
		otherID := m.Counterpart(userID)
		card, err := s.counterpartCard(ctx, otherID, now)
		if err != nil {
			return nil, err
		}

		sum := ConversationSummary{
			MatchID:      m.ID,
			Counterpart:  card,
			LastActivity: m.LastActivity(),
			MatchedAt:    m.CreatedAt,
		}

		last, err := repo.LastMessage(ctx, s.DB, m.ID)
		switch {
		case err == nil:
			sum.LastMessage = last
		case isNotFound(err):
			// no messages yet; the zero LastMessage is the sentinel
		default:
			return nil, err
		}

		sum.UnreadCount, err = repo.CountUnread(ctx, s.DB, m.ID, userID)
		if err != nil {
			return nil, err
		}
		sum.ActivityLabel = relativeLabel(sum.LastActivity, now)
		out = append(out, sum)
	}
	return out, nil
}

// Open loads the full history of matchID for userID, grouped by calendar
// day, and marks every unread counterpart message as read. Re-opening an
// already-read conversation flips nothing and is not an error.
//
// Returns ErrMatchNotFound for unknown matches and ErrNotParticipant when
// userID is not one of the two matched profiles.
func (s *ConversationService) Open(ctx context.Context, matchID, userID string) (*Conversation, error) {
	tr := otel.Tracer("services/ConversationService")
	ctx, span := tr.Start(ctx, "Open",
		trace.WithAttributes(
			attribute.String("match.id", matchID),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	m, err := s.participantMatch(ctx, s.DB, matchID, userID)
	if err != nil {
		return nil, err
	}

	var history []domain.Message
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.MarkConversationRead(ctx, tx, matchID, userID); err != nil {
			return err
		}
		history, err = repo.ListMessages(ctx, tx, matchID)
		return err
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	card, err := s.counterpartCard(ctx, m.Counterpart(userID), now)
	if err != nil {
		return nil, err
	}

	return &Conversation{
		MatchID:     matchID,
		Counterpart: card,
		Days:        groupByDay(history, now),
	}, nil
}

// Send appends a message from senderID to matchID and publishes it to live
// subscribers.
//
// Semantics:
//   - blank or whitespace-only text is rejected with ErrEmptyMessage;
//   - text over MaxMessageRunes is rejected with ErrMessageTooLong;
//   - senderID must be a participant (ErrNotParticipant otherwise);
//   - the message is inserted with read=false; the match's last-activity
//     timestamp is then advanced best-effort. If that update fails the
//     message stays committed and visible — the timestamp only affects
//     overview ordering.
func (s *ConversationService) Send(ctx context.Context, matchID, senderID, text string) (*domain.Message, error) {
	tr := otel.Tracer("services/ConversationService")
	ctx, span := tr.Start(ctx, "Send",
		trace.WithAttributes(
			attribute.String("match.id", matchID),
			attribute.String("user.id", senderID),
		),
	)
	defer span.End()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if s.MaxMessageRunes > 0 && utf8.RuneCountInString(text) > s.MaxMessageRunes {
		return nil, ErrMessageTooLong
	}

	if _, err := s.participantMatch(ctx, s.DB, matchID, senderID); err != nil {
		return nil, err
	}

	msg, err := repo.CreateMessage(ctx, s.DB, matchID, senderID, text)
	if err != nil {
		return nil, err
	}

	// Ordering hint only: ignore failures, the message row is committed.
	_ = repo.TouchLastMessage(ctx, s.DB, matchID, msg.CreatedAt)

	if s.Publisher != nil {
		s.Publisher.Publish(matchID, *msg)
	}
	return msg, nil
}

// MarkIncomingRead marks a single counterpart message as read on behalf of
// readerID. Used by live feeds when a message arrives while the conversation
// is open; marking an already-read or own message is a no-op.
func (s *ConversationService) MarkIncomingRead(ctx context.Context, matchID, readerID, messageID string) error {
	if _, err := s.participantMatch(ctx, s.DB, matchID, readerID); err != nil {
		return err
	}
	return repo.MarkMessageRead(ctx, s.DB, messageID, readerID)
}

// participantMatch loads a match and enforces that userID takes part in it.
func (s *ConversationService) participantMatch(ctx context.Context, db *gorm.DB, matchID, userID string) (*domain.Match, error) {
	m, err := repo.GetMatch(ctx, db, matchID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if !m.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	return m, nil
}

// counterpartCard builds the display card for the other side of a match.
func (s *ConversationService) counterpartCard(ctx context.Context, otherID string, now time.Time) (ProfileCard, error) {
	p, err := repo.GetProfile(ctx, s.DB, otherID)
	if err != nil {
		return ProfileCard{}, err
	}
	dogs, err := repo.ListDogsByOwner(ctx, s.DB, otherID)
	if err != nil {
		return ProfileCard{}, err
	}
	return newProfileCard(*p, dogs, now, s.ResolveURL), nil
}

func (s *ConversationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// groupByDay splits an ascending message history into calendar-day buckets,
// preserving order within and across buckets.
func groupByDay(history []domain.Message, now time.Time) []DayGroup {
	var out []DayGroup
	for _, msg := range history {
		key := msg.CreatedAt.Format("2006-01-02")
		if n := len(out); n == 0 || out[n-1].Date != key {
			out = append(out, DayGroup{
				Date:  key,
				Label: dayLabel(msg.CreatedAt, now),
			})
		}
		out[len(out)-1].Messages = append(out[len(out)-1].Messages, msg)
	}
	return out
}

// calendarDaysBetween counts whole calendar days from t to now (0 for the
// same day, 1 for yesterday, ...). Comparison is by date, not by 24h windows.
func calendarDaysBetween(t, now time.Time) int {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	a := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	b := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

// relativeLabel buckets a timestamp for the conversation overview:
// same day -> "15:04", 1 day -> "yesterday", 2-6 days -> weekday name,
// 7+ days -> "Jan 2".
func relativeLabel(t, now time.Time) string {
	switch days := calendarDaysBetween(t, now); {
	case days <= 0:
		return t.Format("15:04")
	case days == 1:
		return "yesterday"
	case days < 7:
		return t.Weekday().String()
	default:
		return t.Format("Jan 2")
	}
}

// dayLabel labels a history day group: "today", "yesterday", or month/day.
func dayLabel(t, now time.Time) string {
	switch days := calendarDaysBetween(t, now); {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	default:
		return t.Format("Jan 2")
	}
}
