package api

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/storyworld/storyworld/http/request"
	"github.com/storyworld/storyworld/http/response"
	"github.com/storyworld/storyworld/model"
)

type commentRequest struct {
	Comment string `json:"comment"`
	Author  string `json:"author"`
}

type commentResponse struct {
	Success bool           `json:"success"`
	Data    *model.Comment `json:"data"`
}

type commentListResponse struct {
	Success bool             `json:"success"`
	Data    []*model.Comment `json:"data"`
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteStringParam(r, "id")

	var body commentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, r, errors.New("invalid request body"))
		return
	}

	comment, err := h.store.AddComment(bookID, body.Author, body.Comment)
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Created(w, r, commentResponse{Success: true, Data: comment})
}

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteStringParam(r, "id")

	if !h.store.CheckBook(bookID) {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, commentListResponse{Success: true, Data: h.store.ListComments(bookID)})
}
