package moodRepository

const (
	queryUpsertMood = `
		INSERT INTO mood_entries (
			id,
			couple_id,
			user_id,
			entry_date,
			mood,
			note,
			created_at,
			updated_at
		) VALUES (
			:id,
			:couple_id,
			:user_id,
			:entry_date,
			:mood,
			:note,
			:created_at,
			:updated_at
		)
		ON CONFLICT (user_id, entry_date) DO UPDATE SET
			mood = EXCLUDED.mood,
			note = EXCLUDED.note,
			updated_at = EXCLUDED.updated_at
	`

	queryGetMoodsByDateRange = `
		SELECT
			id,
			couple_id,
			user_id,
			entry_date,
			mood,
			note,
			created_at,
			updated_at
		FROM mood_entries
		WHERE
			couple_id = :couple_id
			AND entry_date >= :start_date
			AND entry_date < :end_date
		ORDER BY entry_date DESC, user_id ASC
	`
)
