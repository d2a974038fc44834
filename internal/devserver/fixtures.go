package devserver

import (
	"fmt"

	"recall_keep/internal/model"

	"github.com/google/uuid"
)

// SampleFixtures は devserver コマンド用のサンプルデータです。
func SampleFixtures() Fixtures {
	cards := []struct{ front, back string }{
		{"ephemeral", "短命な、つかの間の"},
		{"ubiquitous", "至る所にある"},
		{"meticulous", "細心の注意を払う"},
		{"candid", "率直な"},
		{"resilient", "回復力のある"},
	}
	var f Fixtures
	for _, c := range cards {
		f.Due = append(f.Due, model.ReviewItem{ID: uuid.NewString(), Front: c.front, Back: c.back})
	}
	for i := 1; i <= 6; i++ {
		f.Inbox = append(f.Inbox, model.InboxItem{
			ID:     uuid.NewString(),
			Title:  fmt.Sprintf("Reading assignment #%d", i),
			Status: model.InboxStatusActive,
		})
	}
	return f
}
