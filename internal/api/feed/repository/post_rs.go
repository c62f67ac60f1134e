package feedRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"ourlittleworld/internal/api/feed"
	"ourlittleworld/internal/entity"
	contextPkg "ourlittleworld/pkg/context"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// metadata rides in a single JSONB column; the counters inside it are
// already re-derived by the entity before any write lands here.
type PostDB struct {
	ID        sql.NullString `db:"id"`
	CoupleID  sql.NullString `db:"couple_id"`
	Author    sql.NullString `db:"author"`
	Caption   sql.NullString `db:"caption"`
	Metadata  []byte         `db:"metadata"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (r *postRepository) CreatePost(c context.Context, post entity.Post) error {
	requestID := contextPkg.GetRequestID(c)

	metadata, err := json.Marshal(post.Metadata)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreatePost metadata marshal err")
		return err
	}

	argsKV := map[string]interface{}{
		"id":         post.ID,
		"couple_id":  post.CoupleID,
		"author":     post.Author,
		"caption":    post.Caption,
		"metadata":   metadata,
		"created_at": time.Now(),
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryCreatePost, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreatePost named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating post")
		return err
	}

	return nil
}

func (r *postRepository) GetPostByID(c context.Context, coupleID string, id string) (entity.Post, error) {
	requestID := contextPkg.GetRequestID(c)
	var post PostDB

	argsKV := map[string]interface{}{
		"id":        id,
		"couple_id": coupleID,
	}

	query, args, err := sqlx.Named(queryGetPostByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPostByID named query preparation err")
		return entity.Post{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&post); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("GetPostByID no rows found")
			return entity.Post{}, feed.ErrPostNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPostByID execution err")
		return entity.Post{}, err
	}

	return r.makePost(requestID, post)
}

func (r *postRepository) GetPostsByCouple(c context.Context, coupleID string, limit int, offset int) ([]entity.Post, error) {
	requestID := contextPkg.GetRequestID(c)
	var posts []PostDB

	argsKV := map[string]interface{}{
		"couple_id": coupleID,
		"limit":     limit,
		"offset":    offset,
	}

	query, args, err := sqlx.Named(queryGetPostsByCouple, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPostsByCouple named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &posts, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPostsByCouple execution err")
		return nil, err
	}

	result := make([]entity.Post, 0, len(posts))
	for _, post := range posts {
		made, err := r.makePost(requestID, post)
		if err != nil {
			return nil, err
		}
		result = append(result, made)
	}

	return result, nil
}

func (r *postRepository) UpdatePost(c context.Context, post entity.Post) error {
	requestID := contextPkg.GetRequestID(c)

	metadata, err := json.Marshal(post.Metadata)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePost metadata marshal err")
		return err
	}

	argsKV := map[string]interface{}{
		"id":         post.ID,
		"couple_id":  post.CoupleID,
		"caption":    post.Caption,
		"metadata":   metadata,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdatePost, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePost named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePost execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePost rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("UpdatePost no rows affected")
		return feed.ErrPostNotFound
	}

	return nil
}

func (r *postRepository) DeletePost(c context.Context, coupleID string, id string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":        id,
		"couple_id": coupleID,
	}

	query, args, err := sqlx.Named(queryDeletePost, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeletePost named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeletePost execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeletePost rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("DeletePost no rows affected")
		return feed.ErrPostNotFound
	}

	return nil
}

func (r *postRepository) makePost(requestID string, post PostDB) (entity.Post, error) {
	result := entity.Post{
		ID:        post.ID.String,
		CoupleID:  post.CoupleID.String,
		Author:    post.Author.String,
		Caption:   post.Caption.String,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}

	if len(post.Metadata) > 0 {
		if err := json.Unmarshal(post.Metadata, &result.Metadata); err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("makePost metadata unmarshal err")
			return entity.Post{}, err
		}
	}

	return result, nil
}
