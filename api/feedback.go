package api

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/storyworld/storyworld/http/response"
	"github.com/storyworld/storyworld/model"
)

type feedbackRequest struct {
	BookID   string `json:"bookId"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	DeviceID string `json:"deviceId"`
}

type feedbackResponse struct {
	Success       bool            `json:"success"`
	Data          *model.Feedback `json:"data"`
	AverageRating float64         `json:"averageRating"`
}

func (h *Handler) addFeedback(w http.ResponseWriter, r *http.Request) {
	var body feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, r, errors.New("invalid request body"))
		return
	}

	feedback, err := h.store.AddFeedback(body.BookID, body.Rating, body.Comment, body.DeviceID)
	if err != nil {
		storeError(w, r, err)
		return
	}

	response.Created(w, r, feedbackResponse{
		Success:       true,
		Data:          feedback,
		AverageRating: h.store.AverageRating(),
	})
}
