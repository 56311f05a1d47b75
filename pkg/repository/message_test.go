package repository_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/markclong/slack-archiver/pkg/domain/interfaces"
	"github.com/markclong/slack-archiver/pkg/domain/model"
	"github.com/markclong/slack-archiver/pkg/domain/types"
)

func runMessageRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Save and Get round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		channel := uniqueName("general")
		ts := newTSFactory()

		msg := &model.Message{
			TS:         ts(1),
			Channel:    channel,
			AuthorID:   "U111",
			Text:       "hello world",
			ReplyCount: 2,
		}
		if err := repo.Message().Save(ctx, msg); err != nil {
			t.Fatalf("failed to save message: %v", err)
		}

		got, err := repo.Message().Get(ctx, ts(1))
		if err != nil {
			t.Fatalf("failed to get message: %v", err)
		}
		if got == nil {
			t.Fatal("expected message, got nil")
		}
		if got.Text != "hello world" || got.AuthorID != "U111" || got.ReplyCount != 2 {
			t.Errorf("unexpected message: %+v", got)
		}
		if !got.ThreadTS.IsZero() {
			t.Errorf("expected zero thread ts, got %q", got.ThreadTS)
		}
	})

	t.Run("re-save with same ts replaces instead of duplicating", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		channel := uniqueName("general")
		ts := newTSFactory()

		if err := repo.Message().Save(ctx, &model.Message{
			TS: ts(1), Channel: channel, AuthorID: "U111", Text: "first",
		}); err != nil {
			t.Fatalf("failed to save message: %v", err)
		}
		if err := repo.Message().Save(ctx, &model.Message{
			TS: ts(1), Channel: channel, AuthorID: "U111", Text: "edited",
		}); err != nil {
			t.Fatalf("failed to re-save message: %v", err)
		}

		count, err := repo.Message().Count(ctx, channel)
		if err != nil {
			t.Fatalf("failed to count messages: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 message, got %d", count)
		}

		got, err := repo.Message().Get(ctx, ts(1))
		if err != nil {
			t.Fatalf("failed to get message: %v", err)
		}
		if got == nil || got.Text != "edited" {
			t.Errorf("expected the edited text, got %+v", got)
		}
	})

	t.Run("reactions replace wholesale", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		channel := uniqueName("general")
		ts := newTSFactory()

		first := &model.Message{
			TS: ts(1), Channel: channel, AuthorID: "U111", Text: "popular",
			Reactions: []model.Reaction{
				{Name: "thumbsup", UserIDs: []types.UserID{"U1", "U2", "U3"}},
				{Name: "eyes", UserIDs: []types.UserID{"U4"}},
			},
		}
		if err := repo.Message().Save(ctx, first); err != nil {
			t.Fatalf("failed to save message: %v", err)
		}

		// Two users removed their thumbsup, eyes disappeared entirely.
		second := &model.Message{
			TS: ts(1), Channel: channel, AuthorID: "U111", Text: "popular",
			Reactions: []model.Reaction{
				{Name: "thumbsup", UserIDs: []types.UserID{"U1"}},
			},
		}
		if err := repo.Message().Save(ctx, second); err != nil {
			t.Fatalf("failed to re-save message: %v", err)
		}

		reactions, err := repo.Message().Reactions(ctx, ts(1))
		if err != nil {
			t.Fatalf("failed to list reactions: %v", err)
		}
		if len(reactions) != 1 {
			t.Fatalf("expected 1 reaction after replace, got %d", len(reactions))
		}
		if reactions[0].Name != "thumbsup" {
			t.Errorf("unexpected reaction: %+v", reactions[0])
		}
		if diff := cmp.Diff([]types.UserID{"U1"}, reactions[0].UserIDs); diff != "" {
			t.Errorf("user list mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nil reactions leave stored rows untouched", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		channel := uniqueName("general")
		ts := newTSFactory()

		if err := repo.Message().Save(ctx, &model.Message{
			TS: ts(1), Channel: channel, AuthorID: "U111", Text: "popular",
			Reactions: []model.Reaction{{Name: "tada", UserIDs: []types.UserID{"U1", "U2"}}},
		}); err != nil {
			t.Fatalf("failed to save message: %v", err)
		}

		// A thread fetch redelivers the parent without reaction data.
		if err := repo.Message().Save(ctx, &model.Message{
			TS: ts(1), Channel: channel, AuthorID: "U111", Text: "popular",
		}); err != nil {
			t.Fatalf("failed to re-save message: %v", err)
		}

		reactions, err := repo.Message().Reactions(ctx, ts(1))
		if err != nil {
			t.Fatalf("failed to list reactions: %v", err)
		}
		if len(reactions) != 1 {
			t.Fatalf("expected the stored reaction to survive, got %d rows", len(reactions))
		}
		if len(reactions[0].UserIDs) != 2 {
			t.Errorf("expected 2 reacting users, got %d", len(reactions[0].UserIDs))
		}
	})

	t.Run("empty non-nil reactions clear stored rows", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		channel := uniqueName("general")
		ts := newTSFactory()

		if err := repo.Message().Save(ctx, &model.Message{
			TS: ts(1), Channel: channel, AuthorID: "U111", Text: "was popular",
			Reactions: []model.Reaction{{Name: "tada", UserIDs: []types.UserID{"U1"}}},
		}); err != nil {
			t.Fatalf("failed to save message: %v", err)
		}

		if err := repo.Message().Save(ctx, &model.Message{
			TS: ts(1), Channel: channel, AuthorID: "U111", Text: "was popular",
			Reactions: []model.Reaction{},
		}); err != nil {
			t.Fatalf("failed to re-save message: %v", err)
		}

		reactions, err := repo.Message().Reactions(ctx, ts(1))
		if err != nil {
			t.Fatalf("failed to list reactions: %v", err)
		}
		if len(reactions) != 0 {
			t.Errorf("expected no reactions, got %d", len(reactions))
		}
	})

	t.Run("files upsert by ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		channel := uniqueName("general")
		ts := newTSFactory()
		fileID := types.FileID(uniqueName("F"))

		if err := repo.Message().Save(ctx, &model.Message{
			TS: ts(1), Channel: channel, AuthorID: "U111", Text: "see attachment",
			Files: []model.File{{
				ID:       fileID,
				Name:     "report.pdf",
				Mimetype: "application/pdf",
				URL:      "https://files.example.com/report.pdf",
			}},
		}); err != nil {
			t.Fatalf("failed to save message: %v", err)
		}

		// Second run resolved the local copy.
		if err := repo.Message().Save(ctx, &model.Message{
			TS: ts(1), Channel: channel, AuthorID: "U111", Text: "see attachment",
			Files: []model.File{{
				ID:        fileID,
				Name:      "report.pdf",
				Mimetype:  "application/pdf",
				URL:       "https://files.example.com/report.pdf",
				LocalPath: "files/" + fileID.String() + ".pdf",
			}},
		}); err != nil {
			t.Fatalf("failed to re-save message: %v", err)
		}

		files, err := repo.Message().Files(ctx, ts(1))
		if err != nil {
			t.Fatalf("failed to list files: %v", err)
		}
		if len(files) != 1 {
			t.Fatalf("expected 1 file, got %d", len(files))
		}
		if files[0].LocalPath != "files/"+fileID.String()+".pdf" {
			t.Errorf("local path not updated: %q", files[0].LocalPath)
		}
	})

	t.Run("ListTopLevel pages backwards and hides replies", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		channel := uniqueName("general")
		ts := newTSFactory()

		for i := 1; i <= 5; i++ {
			if err := repo.Message().Save(ctx, &model.Message{
				TS: ts(i), Channel: channel, AuthorID: "U111", Text: "top",
			}); err != nil {
				t.Fatalf("failed to save message: %v", err)
			}
		}
		if err := repo.Message().Save(ctx, &model.Message{
			TS: ts(6), Channel: channel, AuthorID: "U222", Text: "reply", ThreadTS: ts(3),
		}); err != nil {
			t.Fatalf("failed to save reply: %v", err)
		}

		page, err := repo.Message().ListTopLevel(ctx, channel, "", 3)
		if err != nil {
			t.Fatalf("failed to list messages: %v", err)
		}
		if len(page) != 3 {
			t.Fatalf("expected 3 messages, got %d", len(page))
		}
		// Newest three, oldest first within the page.
		if page[0].TS != ts(3) || page[1].TS != ts(4) || page[2].TS != ts(5) {
			t.Errorf("unexpected page order: %v %v %v", page[0].TS, page[1].TS, page[2].TS)
		}

		older, err := repo.Message().ListTopLevel(ctx, channel, page[0].TS, 3)
		if err != nil {
			t.Fatalf("failed to list older messages: %v", err)
		}
		if len(older) != 2 {
			t.Fatalf("expected 2 older messages, got %d", len(older))
		}
		if older[0].TS != ts(1) || older[1].TS != ts(2) {
			t.Errorf("unexpected older page: %v %v", older[0].TS, older[1].TS)
		}
	})

	t.Run("ListThread returns replies oldest first without the parent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		channel := uniqueName("general")
		ts := newTSFactory()

		if err := repo.Message().Save(ctx, &model.Message{
			TS: ts(1), Channel: channel, AuthorID: "U111", Text: "parent", ReplyCount: 2,
		}); err != nil {
			t.Fatalf("failed to save parent: %v", err)
		}
		for i := 2; i <= 3; i++ {
			if err := repo.Message().Save(ctx, &model.Message{
				TS: ts(i), Channel: channel, AuthorID: "U222", Text: "reply", ThreadTS: ts(1),
			}); err != nil {
				t.Fatalf("failed to save reply: %v", err)
			}
		}

		replies, err := repo.Message().ListThread(ctx, ts(1))
		if err != nil {
			t.Fatalf("failed to list thread: %v", err)
		}
		if len(replies) != 2 {
			t.Fatalf("expected 2 replies, got %d", len(replies))
		}
		if replies[0].TS != ts(2) || replies[1].TS != ts(3) {
			t.Errorf("unexpected reply order: %v %v", replies[0].TS, replies[1].TS)
		}
	})

	t.Run("Count includes thread replies", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		channel := uniqueName("general")
		ts := newTSFactory()

		if err := repo.Message().Save(ctx, &model.Message{
			TS: ts(1), Channel: channel, AuthorID: "U111", Text: "parent",
		}); err != nil {
			t.Fatalf("failed to save parent: %v", err)
		}
		if err := repo.Message().Save(ctx, &model.Message{
			TS: ts(2), Channel: channel, AuthorID: "U222", Text: "reply", ThreadTS: ts(1),
		}); err != nil {
			t.Fatalf("failed to save reply: %v", err)
		}

		count, err := repo.Message().Count(ctx, channel)
		if err != nil {
			t.Fatalf("failed to count messages: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 messages, got %d", count)
		}
	})
}

func TestMemoryMessageRepository(t *testing.T) {
	runMessageRepositoryTest(t, newMemoryRepository)
}

func TestSQLiteMessageRepository(t *testing.T) {
	runMessageRepositoryTest(t, newSQLiteRepository)
}

func TestPostgresMessageRepository(t *testing.T) {
	runMessageRepositoryTest(t, newPostgresRepository)
}
