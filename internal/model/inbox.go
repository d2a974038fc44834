// internal/model/inbox.go
package model

// インボックス項目のステータス
const (
	InboxStatusActive = "active"
	InboxStatusPaused = "paused"
	InboxStatusDone   = "done"
)

// InboxItem は GET /api/inbox/items の要素
type InboxItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// BulkUpdateRequest は PUT /api/inbox/items/bulk-update のリクエストDTO
type BulkUpdateRequest struct {
	ItemIDs []string `json:"item_ids" validate:"required,min=1,dive,required"`
	Status  string   `json:"status" validate:"required,max=32"`
}
