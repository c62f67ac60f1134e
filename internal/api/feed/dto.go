package feed

// Post create/update travel as multipart forms because of the image
// uploads; the remaining mutations are plain JSON.

type UpdatePostRequest struct {
	ID       string `json:"id" validate:"required"`
	CoupleID string `json:"coupleId" validate:"required"`
	Caption  string `json:"caption" validate:"max=2000"`
}

type ToggleLikeRequest struct {
	PostID   string `json:"postId" validate:"required"`
	CoupleID string `json:"coupleId" validate:"required"`
}

type AddCommentRequest struct {
	PostID   string `json:"postId" validate:"required"`
	CoupleID string `json:"coupleId" validate:"required"`
	Body     string `json:"body" validate:"required,max=1000"`
}

type AddReplyRequest struct {
	PostID    string `json:"postId" validate:"required"`
	CoupleID  string `json:"coupleId" validate:"required"`
	CommentID string `json:"commentId" validate:"required"`
	Body      string `json:"body" validate:"required,max=1000"`
}

type ReplyResponse struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

type CommentResponse struct {
	ID        string          `json:"id"`
	Author    string          `json:"author"`
	Body      string          `json:"body"`
	CreatedAt string          `json:"created_at"`
	Replies   []ReplyResponse `json:"replies"`
}

type PostResponse struct {
	ID            string            `json:"id"`
	CoupleID      string            `json:"couple_id"`
	Author        string            `json:"author"`
	Caption       string            `json:"caption"`
	Images        []string          `json:"images"`
	Likes         []string          `json:"likes"`
	LikesCount    int               `json:"likes_count"`
	Comments      []CommentResponse `json:"comments"`
	CommentsCount int               `json:"comments_count"`
	CreatedAt     string            `json:"created_at"`
	UpdatedAt     string            `json:"updated_at"`
}

type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
}
