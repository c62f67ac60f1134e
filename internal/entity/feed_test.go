package entity

import (
	"errors"
	"testing"
	"time"

	"ourlittleworld/internal/api/feed"
)

func TestPostMetadataRecount(t *testing.T) {
	m := PostMetadata{
		Likes: []string{"user-a", "user-b"},
		Comments: []Comment{
			{ID: "c1", Replies: []Reply{{ID: "r1"}, {ID: "r2"}}},
			{ID: "c2"},
		},
		// Deliberately stale.
		LikesCount:    99,
		CommentsCount: 99,
	}

	m.Recount()

	if m.LikesCount != 2 {
		t.Errorf("LikesCount = %d, want 2", m.LikesCount)
	}
	// Each comment counts itself plus its replies: (1+2) + (1+0) = 4.
	if m.CommentsCount != 4 {
		t.Errorf("CommentsCount = %d, want 4", m.CommentsCount)
	}
}

func TestPostMetadataToggleLike(t *testing.T) {
	var m PostMetadata

	if liked := m.ToggleLike("user-a"); !liked {
		t.Error("first toggle should like the post")
	}
	if m.LikesCount != 1 {
		t.Errorf("LikesCount = %d, want 1", m.LikesCount)
	}

	if liked := m.ToggleLike("user-b"); !liked {
		t.Error("toggle by second user should like the post")
	}
	if m.LikesCount != 2 {
		t.Errorf("LikesCount = %d, want 2", m.LikesCount)
	}

	if liked := m.ToggleLike("user-a"); liked {
		t.Error("second toggle by same user should unlike")
	}
	if m.LikesCount != 1 {
		t.Errorf("LikesCount = %d, want 1 after unlike", m.LikesCount)
	}
	if m.Likes[0] != "user-b" {
		t.Errorf("remaining like = %q, want user-b", m.Likes[0])
	}
}

func TestPostMetadataAddComment(t *testing.T) {
	var m PostMetadata

	m.AddComment(Comment{ID: "c1", Author: "user-a", Body: "first", CreatedAt: time.Now()})
	m.AddComment(Comment{ID: "c2", Author: "user-b", Body: "second", CreatedAt: time.Now()})

	if m.CommentsCount != 2 {
		t.Errorf("CommentsCount = %d, want 2", m.CommentsCount)
	}
}

func TestPostMetadataAddReply(t *testing.T) {
	m := PostMetadata{
		Comments: []Comment{{ID: "c1", Author: "user-a", Body: "hello"}},
	}
	m.Recount()

	if err := m.AddReply("c1", Reply{ID: "r1", Author: "user-b", Body: "hi back"}); err != nil {
		t.Fatalf("AddReply() = %v, want nil", err)
	}
	if m.CommentsCount != 2 {
		t.Errorf("CommentsCount = %d, want 2 (comment plus reply)", m.CommentsCount)
	}
	if len(m.Comments[0].Replies) != 1 {
		t.Fatalf("replies = %d, want 1", len(m.Comments[0].Replies))
	}

	err := m.AddReply("missing", Reply{ID: "r2"})
	if !errors.Is(err, feed.ErrCommentNotFound) {
		t.Errorf("AddReply(missing) = %v, want %v", err, feed.ErrCommentNotFound)
	}
	if m.CommentsCount != 2 {
		t.Errorf("CommentsCount changed on failed reply: %d", m.CommentsCount)
	}
}
