package goalRepository

const (
	queryCreateGoal = `
		INSERT INTO savings_goals (
			id,
			couple_id,
			title,
			description,
			target_cents,
			current_cents,
			icon,
			color,
			deadline,
			priority,
			is_completed,
			completed_at,
			created_at,
			updated_at
		) VALUES (
			:id,
			:couple_id,
			:title,
			:description,
			:target_cents,
			:current_cents,
			:icon,
			:color,
			:deadline,
			:priority,
			:is_completed,
			:completed_at,
			:created_at,
			:updated_at
		)
	`

	queryGetGoalByID = `
		SELECT
			id,
			couple_id,
			title,
			description,
			target_cents,
			current_cents,
			icon,
			color,
			deadline,
			priority,
			is_completed,
			completed_at,
			created_at,
			updated_at
		FROM savings_goals
		WHERE id = :id AND couple_id = :couple_id
	`

	queryGetGoalsByCouple = `
		SELECT
			id,
			couple_id,
			title,
			description,
			target_cents,
			current_cents,
			icon,
			color,
			deadline,
			priority,
			is_completed,
			completed_at,
			created_at,
			updated_at
		FROM savings_goals
		WHERE couple_id = :couple_id
		ORDER BY is_completed ASC, created_at DESC
	`

	queryUpdateGoal = `
		UPDATE savings_goals
		SET
			title = :title,
			description = :description,
			target_cents = :target_cents,
			current_cents = :current_cents,
			icon = :icon,
			color = :color,
			deadline = :deadline,
			priority = :priority,
			is_completed = :is_completed,
			completed_at = :completed_at,
			updated_at = :updated_at
		WHERE id = :id AND couple_id = :couple_id
	`

	queryDeleteGoal = `
		DELETE FROM savings_goals
		WHERE id = :id AND couple_id = :couple_id
	`
)
