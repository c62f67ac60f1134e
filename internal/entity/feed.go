package entity

import (
	"time"

	"ourlittleworld/internal/api/feed"
)

// Post metadata is an embedded document, not relational rows: images,
// likes, comments and replies all live in one JSON column on the post.
// The counters are re-derived from the collections on every write
// instead of incremented, so they can never drift.

type Reply struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Replies   []Reply   `json:"replies"`
}

type PostMetadata struct {
	Images        []string  `json:"images"`
	Likes         []string  `json:"likes"`
	LikesCount    int       `json:"likes_count"`
	Comments      []Comment `json:"comments"`
	CommentsCount int       `json:"comments_count"`
}

type Post struct {
	ID        string       `json:"id"`
	CoupleID  string       `json:"couple_id"`
	Author    string       `json:"author"`
	Caption   string       `json:"caption"`
	Metadata  PostMetadata `json:"metadata"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (p Post) EntityID() string { return p.ID }

// Recount re-derives both counters from the embedded collections.
// likes_count == len(likes) and comments_count == sum(1 + len(replies))
// must hold after every mutation.
func (m *PostMetadata) Recount() {
	m.LikesCount = len(m.Likes)

	count := 0
	for _, c := range m.Comments {
		count += 1 + len(c.Replies)
	}
	m.CommentsCount = count
}

// ToggleLike adds or removes the user from the like list and returns
// whether the post is liked afterwards.
func (m *PostMetadata) ToggleLike(userID string) bool {
	for i, id := range m.Likes {
		if id == userID {
			m.Likes = append(m.Likes[:i], m.Likes[i+1:]...)
			m.Recount()
			return false
		}
	}

	m.Likes = append(m.Likes, userID)
	m.Recount()
	return true
}

func (m *PostMetadata) AddComment(comment Comment) {
	m.Comments = append(m.Comments, comment)
	m.Recount()
}

func (m *PostMetadata) AddReply(commentID string, reply Reply) error {
	for i := range m.Comments {
		if m.Comments[i].ID == commentID {
			m.Comments[i].Replies = append(m.Comments[i].Replies, reply)
			m.Recount()
			return nil
		}
	}

	return feed.ErrCommentNotFound
}
