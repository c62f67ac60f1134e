package coupleRepository

const (
	queryCreateCouple = `
		INSERT INTO couples (
			id,
			inviter_id,
			partner_id,
			created_at,
			updated_at
		) VALUES (
			:id,
			:inviter_id,
			:partner_id,
			:created_at,
			:updated_at
		)
	`

	queryGetCoupleByID = `
		SELECT
			id,
			inviter_id,
			partner_id,
			created_at,
			updated_at
		FROM couples
		WHERE id = :id
	`

	queryGetCoupleByMember = `
		SELECT
			id,
			inviter_id,
			partner_id,
			created_at,
			updated_at
		FROM couples
		WHERE inviter_id = :user_id OR partner_id = :user_id
	`

	queryAttachPartner = `
		UPDATE couples
		SET
			partner_id = :partner_id,
			updated_at = :updated_at
		WHERE id = :id AND (partner_id IS NULL OR partner_id = '')
	`
)
