package feedRepository

const (
	queryCreatePost = `
		INSERT INTO posts (
			id,
			couple_id,
			author,
			caption,
			metadata,
			created_at,
			updated_at
		) VALUES (
			:id,
			:couple_id,
			:author,
			:caption,
			:metadata,
			:created_at,
			:updated_at
		)
	`

	queryGetPostByID = `
		SELECT
			id,
			couple_id,
			author,
			caption,
			metadata,
			created_at,
			updated_at
		FROM posts
		WHERE id = :id AND couple_id = :couple_id
	`

	queryGetPostsByCouple = `
		SELECT
			id,
			couple_id,
			author,
			caption,
			metadata,
			created_at,
			updated_at
		FROM posts
		WHERE couple_id = :couple_id
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryUpdatePost = `
		UPDATE posts
		SET
			caption = :caption,
			metadata = :metadata,
			updated_at = :updated_at
		WHERE id = :id AND couple_id = :couple_id
	`

	queryDeletePost = `
		DELETE FROM posts
		WHERE id = :id AND couple_id = :couple_id
	`
)
