package mood

type CheckInRequest struct {
	CoupleID  string `json:"coupleId" validate:"required"`
	EntryDate string `json:"entryDate"`
	Mood      string `json:"mood" validate:"required,max=40"`
	Note      string `json:"note" validate:"max=500"`
}

type MoodResponse struct {
	ID        string `json:"id"`
	CoupleID  string `json:"couple_id"`
	UserID    string `json:"user_id"`
	EntryDate string `json:"entry_date"`
	Mood      string `json:"mood"`
	Note      string `json:"note"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type MoodHistoryResponse struct {
	Days    int            `json:"days"`
	Entries []MoodResponse `json:"entries"`
}
