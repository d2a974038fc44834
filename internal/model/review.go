// internal/model/review.go
package model

// ReviewItem は復習対象のカード (GET /api/recall/due の要素)
type ReviewItem struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Quality は SM-2 系の評価値 (0〜5)
const (
	MinQuality = 0
	MaxQuality = 5
)

// SubmitReviewRequest は復習結果送信リクエストのDTO
type SubmitReviewRequest struct {
	CardID  string `json:"card_id" validate:"required"`
	Quality *int   `json:"quality" validate:"required,min=0,max=5"`
}

// ReviewStats は GET /api/recall/stats のレスポンス
type ReviewStats struct {
	DueCount int `json:"due_count"`
}
