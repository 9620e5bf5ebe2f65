package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/storyworld/storyworld/config"
	"github.com/storyworld/storyworld/http/response"
	"github.com/storyworld/storyworld/model"
)

type statsResponse struct {
	Success bool         `json:"success"`
	Data    *model.Stats `json:"data"`
}

type genresResponse struct {
	Success bool     `json:"success"`
	Data    []string `json:"data"`
}

type healthResponse struct {
	Success   bool      `json:"success"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type viewsRequest struct {
	BookID   string `json:"bookId"`
	DeviceID string `json:"deviceId"`
}

type viewsResponse struct {
	Success    bool   `json:"success"`
	TotalViews int    `json:"totalViews"`
	BookViews  int    `json:"bookViews,omitempty"`
	BookID     string `json:"bookId,omitempty"`
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	response.OK(w, r, statsResponse{Success: true, Data: h.store.Stats()})
}

func (h *Handler) getGenres(w http.ResponseWriter, r *http.Request) {
	response.OK(w, r, genresResponse{Success: true, Data: config.Genres})
}

func (h *Handler) getHealth(w http.ResponseWriter, r *http.Request) {
	response.OK(w, r, healthResponse{Success: true, Status: "ok", Timestamp: time.Now()})
}

func (h *Handler) incrementViews(w http.ResponseWriter, r *http.Request) {
	var body viewsRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.BadRequest(w, r, errors.New("invalid request body"))
			return
		}
	}

	views, err := h.store.RecordView(body.BookID, body.DeviceID)
	if err != nil {
		storeError(w, r, err)
		return
	}

	response.OK(w, r, viewsResponse{
		Success:    true,
		TotalViews: views.TotalViews,
		BookViews:  views.Books[body.BookID],
		BookID:     body.BookID,
	})
}
