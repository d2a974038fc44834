package devserver

import (
	"net/http"

	"recall_keep/internal/middleware"
	"recall_keep/internal/model"
	"recall_keep/internal/webutil"
)

func (s *Server) getDue(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	s.mu.Lock()
	due := append([]model.ReviewItem{}, s.due...)
	s.mu.Unlock()

	webutil.RespondWithJSON(w, http.StatusOK, due, logger)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	s.mu.Lock()
	stats := model.ReviewStats{DueCount: len(s.due)}
	s.mu.Unlock()

	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}

func (s *Server) postReview(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.SubmitReviewRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, item := range s.due {
		if item.ID == req.CardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		appErr := model.NewAppError("NOT_FOUND", "card not found", "card_id", model.ErrNotFound)
		webutil.HandleError(w, logger, appErr)
		return
	}

	s.due = append(s.due[:idx], s.due[idx+1:]...)
	s.reviews = append(s.reviews, req)
	logger.Info("Review recorded", "card_id", req.CardID, "quality", *req.Quality)
	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true}, logger)
}

func (s *Server) getInboxItems(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	s.mu.Lock()
	items := append([]model.InboxItem{}, s.inbox...)
	s.mu.Unlock()

	webutil.RespondWithJSON(w, http.StatusOK, items, logger)
}

func (s *Server) putBulkUpdate(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.BulkUpdateRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := make(map[string]int, len(s.inbox))
	for i, item := range s.inbox {
		index[item.ID] = i
	}
	// 一件でも存在しなければ全体を拒否する
	for _, id := range req.ItemIDs {
		if _, ok := index[id]; !ok {
			appErr := model.NewAppError("NOT_FOUND", "item not found: "+id, "item_ids", model.ErrNotFound)
			webutil.HandleError(w, logger, appErr)
			return
		}
	}
	for _, id := range req.ItemIDs {
		s.inbox[index[id]].Status = req.Status
	}
	s.bulkUpdates = append(s.bulkUpdates, req)

	logger.Info("Bulk update applied", "count", len(req.ItemIDs), "status", req.Status)
	webutil.RespondWithJSON(w, http.StatusOK, map[string]int{"updated": len(req.ItemIDs)}, logger)
}
