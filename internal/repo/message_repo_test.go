package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/pawmatch/go-dating-backend/internal/domain"
)

func TestCreateMessage_Defaults(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedMatch(t, db, "m1", "a", "b", time.Now().UTC())

	msg, err := CreateMessage(ctx, db, "m1", "a", "hello")
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if msg.ID == "" || msg.MatchID != "m1" || msg.SenderID != "a" || msg.Content != "hello" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.IsRead {
		t.Fatal("new message must start unread")
	}
	if msg.CreatedAt.IsZero() || time.Since(msg.CreatedAt) > time.Minute {
		t.Fatalf("CreatedAt not set reasonably: %v", msg.CreatedAt)
	}
}

func TestListMessages_AscendingOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedMatch(t, db, "m1", "a", "b", time.Now().UTC())

	t0 := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	rows := []domain.Message{
		{ID: "x2", MatchID: "m1", SenderID: "a", Content: "second", CreatedAt: t0.Add(time.Second)},
		{ID: "x1", MatchID: "m1", SenderID: "b", Content: "first", CreatedAt: t0},
		// same timestamp as x1: ID breaks the tie
		{ID: "x0", MatchID: "m1", SenderID: "a", Content: "tie", CreatedAt: t0},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}

	got, err := ListMessages(ctx, db, "m1")
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(got) != 3 || got[0].ID != "x0" || got[1].ID != "x1" || got[2].ID != "x2" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestLastMessage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedMatch(t, db, "m1", "a", "b", time.Now().UTC())

	if _, err := LastMessage(ctx, db, "m1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for empty conversation, got %v", err)
	}

	if _, err := CreateMessage(ctx, db, "m1", "a", "first"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	newest, err := CreateMessage(ctx, db, "m1", "b", "newest")
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	// force a strictly later timestamp; CreateMessage stamps both in the
	// same instant on fast machines
	if err := db.Model(newest).Update("created_at", newest.CreatedAt.Add(time.Second)).Error; err != nil {
		t.Fatalf("bump timestamp: %v", err)
	}

	got, err := LastMessage(ctx, db, "m1")
	if err != nil || got.ID != newest.ID {
		t.Fatalf("LastMessage = %+v, %v; want %s", got, err, newest.ID)
	}
}

func TestUnreadCountAndMarkConversationRead(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedMatch(t, db, "m1", "a", "b", time.Now().UTC())

	for _, content := range []string{"hi", "there"} {
		if _, err := CreateMessage(ctx, db, "m1", "a", content); err != nil {
			t.Fatalf("CreateMessage: %v", err)
		}
	}
	// b's own message never counts toward b's unread total
	if _, err := CreateMessage(ctx, db, "m1", "b", "yo"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	unread, err := CountUnread(ctx, db, "m1", "b")
	if err != nil || unread != 2 {
		t.Fatalf("CountUnread(b) = %d, %v; want 2", unread, err)
	}

	flipped, err := MarkConversationRead(ctx, db, "m1", "b")
	if err != nil || flipped != 2 {
		t.Fatalf("MarkConversationRead = %d, %v; want 2", flipped, err)
	}

	unread, err = CountUnread(ctx, db, "m1", "b")
	if err != nil || unread != 0 {
		t.Fatalf("CountUnread after read = %d, %v; want 0", unread, err)
	}

	// idempotent: nothing left to flip
	flipped, err = MarkConversationRead(ctx, db, "m1", "b")
	if err != nil || flipped != 0 {
		t.Fatalf("second MarkConversationRead = %d, %v; want 0", flipped, err)
	}

	// reading never touches the reader's own outgoing messages
	unreadForA, err := CountUnread(ctx, db, "m1", "a")
	if err != nil || unreadForA != 1 {
		t.Fatalf("CountUnread(a) = %d, %v; want 1", unreadForA, err)
	}
}

func TestMarkMessageRead_SkipsOwnMessages(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedMatch(t, db, "m1", "a", "b", time.Now().UTC())

	own, err := CreateMessage(ctx, db, "m1", "a", "mine")
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	if err := MarkMessageRead(ctx, db, own.ID, "a"); err != nil {
		t.Fatalf("MarkMessageRead: %v", err)
	}
	got, err := GetMessage(ctx, db, own.ID)
	if err != nil {
		t.Fatalf("GetMessage: %v", err)
	}
	if got.IsRead {
		t.Fatal("sender must not mark their own message read")
	}

	if err := MarkMessageRead(ctx, db, own.ID, "b"); err != nil {
		t.Fatalf("MarkMessageRead as recipient: %v", err)
	}
	got, err = GetMessage(ctx, db, own.ID)
	if err != nil || !got.IsRead {
		t.Fatalf("recipient read not recorded: %+v, %v", got, err)
	}
}
