package feedService

import (
	"mime/multipart"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"ourlittleworld/internal/api/feed"
	"ourlittleworld/internal/entity"
	contextPkg "ourlittleworld/pkg/context"
	"ourlittleworld/pkg/realtime"
)

const maxPostImages = 6

func (s *feedService) CreatePost(ctx context.Context, user entity.UserLoginData, coupleID string, caption string, images []*multipart.FileHeader) (entity.Post, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.membership.EnsureMember(ctx, coupleID, user.ID); err != nil {
		return entity.Post{}, err
	}

	if caption == "" && len(images) == 0 {
		return entity.Post{}, feed.ErrMissingCaption
	}
	if len(images) > maxPostImages {
		return entity.Post{}, feed.ErrTooManyImages
	}

	uploaded := make([]string, 0, len(images))
	for _, image := range images {
		if err := s.utils.ValidateImageFile(image); err != nil {
			return entity.Post{}, feed.ErrUploadImage
		}

		location, err := s.s3.UploadFile(image)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to upload post image")
			return entity.Post{}, feed.ErrUploadImage
		}
		uploaded = append(uploaded, location)
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate post ID")
		return entity.Post{}, feed.ErrCreatePost
	}

	post := entity.Post{
		ID:       id,
		CoupleID: coupleID,
		Author:   user.ID,
		Caption:  caption,
		Metadata: entity.PostMetadata{
			Images:   uploaded,
			Likes:    []string{},
			Comments: []entity.Comment{},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	post.Metadata.Recount()

	repo, err := s.feedRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Post{}, err
	}

	if err := repo.Post.CreatePost(ctx, post); err != nil {
		return entity.Post{}, feed.ErrCreatePost
	}

	s.broadcaster.Broadcast(realtime.Event{
		Type:     realtime.EventPostCreated,
		CoupleID: post.CoupleID,
		Entity:   post,
	})

	return post, nil
}

func (s *feedService) GetPostsByCouple(ctx context.Context, user entity.UserLoginData, coupleID string, limit int, offset int) ([]entity.Post, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.membership.EnsureMember(ctx, coupleID, user.ID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	repo, err := s.feedRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	posts, err := repo.Post.GetPostsByCouple(ctx, coupleID, limit, offset)
	if err != nil {
		return nil, err
	}

	// Stored locations are raw bucket URLs; readers get short-lived
	// presigned ones instead.
	for i := range posts {
		for j, image := range posts[i].Metadata.Images {
			presigned, err := s.s3.PresignUrl(image)
			if err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Warn("Failed to presign post image, serving raw URL")
				continue
			}
			posts[i].Metadata.Images[j] = presigned
		}
	}

	return posts, nil
}

func (s *feedService) UpdatePost(ctx context.Context, user entity.UserLoginData, req feed.UpdatePostRequest) (entity.Post, error) {
	if err := s.membership.EnsureMember(ctx, req.CoupleID, user.ID); err != nil {
		return entity.Post{}, err
	}

	repo, err := s.feedRepository.NewClient(false)
	if err != nil {
		return entity.Post{}, err
	}

	post, err := repo.Post.GetPostByID(ctx, req.CoupleID, req.ID)
	if err != nil {
		return entity.Post{}, err
	}

	if post.Author != user.ID {
		return entity.Post{}, feed.ErrNotPostAuthor
	}

	post.Caption = req.Caption
	post.UpdatedAt = time.Now()

	if err := repo.Post.UpdatePost(ctx, post); err != nil {
		return entity.Post{}, err
	}

	s.broadcaster.Broadcast(realtime.Event{
		Type:     realtime.EventPostUpdated,
		CoupleID: post.CoupleID,
		Entity:   post,
	})

	return post, nil
}

func (s *feedService) DeletePost(ctx context.Context, user entity.UserLoginData, coupleID string, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.membership.EnsureMember(ctx, coupleID, user.ID); err != nil {
		return err
	}

	repo, err := s.feedRepository.NewClient(false)
	if err != nil {
		return err
	}

	post, err := repo.Post.GetPostByID(ctx, coupleID, id)
	if err != nil {
		return err
	}

	if post.Author != user.ID {
		return feed.ErrNotPostAuthor
	}

	if err := repo.Post.DeletePost(ctx, coupleID, id); err != nil {
		return err
	}

	// Bucket cleanup is best effort; the row is already gone.
	for _, image := range post.Metadata.Images {
		if err := s.s3.DeleteFile(image); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to delete post image from bucket")
		}
	}

	s.broadcaster.Broadcast(realtime.Event{
		Type:     realtime.EventPostDeleted,
		CoupleID: coupleID,
		Entity:   map[string]string{"id": id},
	})

	return nil
}

func (s *feedService) ToggleLike(ctx context.Context, user entity.UserLoginData, req feed.ToggleLikeRequest) (entity.Post, error) {
	return s.mutatePost(ctx, user, req.CoupleID, req.PostID, func(post *entity.Post) error {
		post.Metadata.ToggleLike(user.ID)
		return nil
	})
}

func (s *feedService) AddComment(ctx context.Context, user entity.UserLoginData, req feed.AddCommentRequest) (entity.Post, error) {
	if req.Body == "" {
		return entity.Post{}, feed.ErrMissingBody
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return entity.Post{}, err
	}

	return s.mutatePost(ctx, user, req.CoupleID, req.PostID, func(post *entity.Post) error {
		post.Metadata.AddComment(entity.Comment{
			ID:        id,
			Author:    user.ID,
			Body:      req.Body,
			CreatedAt: time.Now(),
			Replies:   []entity.Reply{},
		})
		return nil
	})
}

func (s *feedService) AddReply(ctx context.Context, user entity.UserLoginData, req feed.AddReplyRequest) (entity.Post, error) {
	if req.Body == "" {
		return entity.Post{}, feed.ErrMissingBody
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return entity.Post{}, err
	}

	return s.mutatePost(ctx, user, req.CoupleID, req.PostID, func(post *entity.Post) error {
		return post.Metadata.AddReply(req.CommentID, entity.Reply{
			ID:        id,
			Author:    user.ID,
			Body:      req.Body,
			CreatedAt: time.Now(),
		})
	})
}

// mutatePost loads, mutates and persists one post inside a transaction,
// then broadcasts the updated document. Either partner may like or
// comment; authorship only gates caption edits and deletion.
func (s *feedService) mutatePost(ctx context.Context, user entity.UserLoginData, coupleID string, postID string, mutate func(*entity.Post) error) (entity.Post, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.membership.EnsureMember(ctx, coupleID, user.ID); err != nil {
		return entity.Post{}, err
	}

	repo, err := s.feedRepository.NewClient(true)
	if err != nil {
		return entity.Post{}, err
	}
	defer func() {
		_ = repo.Rollback()
	}()

	post, err := repo.Post.GetPostByID(ctx, coupleID, postID)
	if err != nil {
		return entity.Post{}, err
	}

	if err := mutate(&post); err != nil {
		return entity.Post{}, err
	}
	post.UpdatedAt = time.Now()

	if err := repo.Post.UpdatePost(ctx, post); err != nil {
		return entity.Post{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit post mutation")
		return entity.Post{}, err
	}

	s.broadcaster.Broadcast(realtime.Event{
		Type:     realtime.EventPostUpdated,
		CoupleID: post.CoupleID,
		Entity:   post,
	})

	return post, nil
}
