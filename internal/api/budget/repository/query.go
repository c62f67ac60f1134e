package budgetRepository

const (
	queryCreateTransaction = `
		INSERT INTO transactions (
			id,
			couple_id,
			amount_cents,
			category,
			note,
			payer,
			type,
			created_by,
			transaction_date,
			created_at,
			updated_at
		) VALUES (
			:id,
			:couple_id,
			:amount_cents,
			:category,
			:note,
			:payer,
			:type,
			:created_by,
			:transaction_date,
			:created_at,
			:updated_at
		)
	`

	queryGetTransactionByID = `
		SELECT
			id,
			couple_id,
			amount_cents,
			category,
			note,
			payer,
			type,
			created_by,
			transaction_date,
			created_at,
			updated_at
		FROM transactions
		WHERE id = :id AND couple_id = :couple_id
	`

	queryGetTransactionsByMonth = `
		SELECT
			id,
			couple_id,
			amount_cents,
			category,
			note,
			payer,
			type,
			created_by,
			transaction_date,
			created_at,
			updated_at
		FROM transactions
		WHERE
			couple_id = :couple_id
			AND transaction_date >= :start_date
			AND transaction_date < :end_date
		ORDER BY transaction_date DESC, created_at DESC
	`

	queryUpdateTransaction = `
		UPDATE transactions
		SET
			amount_cents = :amount_cents,
			category = :category,
			note = :note,
			payer = :payer,
			type = :type,
			transaction_date = :transaction_date,
			updated_at = :updated_at
		WHERE id = :id AND couple_id = :couple_id
	`

	queryDeleteTransaction = `
		DELETE FROM transactions
		WHERE id = :id AND couple_id = :couple_id
	`

	queryGetBudget = `
		SELECT
			couple_id,
			month,
			monthly_total_cents,
			his_cents,
			hers_cents,
			shared_cents,
			created_at,
			updated_at
		FROM budgets
		WHERE couple_id = :couple_id AND month = :month
	`

	queryUpsertBudget = `
		INSERT INTO budgets (
			couple_id,
			month,
			monthly_total_cents,
			his_cents,
			hers_cents,
			shared_cents,
			created_at,
			updated_at
		) VALUES (
			:couple_id,
			:month,
			:monthly_total_cents,
			:his_cents,
			:hers_cents,
			:shared_cents,
			:created_at,
			:updated_at
		)
		ON CONFLICT (couple_id, month) DO UPDATE SET
			monthly_total_cents = EXCLUDED.monthly_total_cents,
			his_cents = EXCLUDED.his_cents,
			hers_cents = EXCLUDED.hers_cents,
			shared_cents = EXCLUDED.shared_cents,
			updated_at = EXCLUDED.updated_at
	`
)
