package api

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/storyworld/storyworld/config"
	"github.com/storyworld/storyworld/http/request"
	"github.com/storyworld/storyworld/http/response"
	"github.com/storyworld/storyworld/log"
	"github.com/storyworld/storyworld/model"
	"github.com/storyworld/storyworld/util"
	"github.com/storyworld/storyworld/validator"
	"go.uber.org/zap"
)

type bookListResponse struct {
	Success    bool             `json:"success"`
	Data       []*model.Book    `json:"data"`
	Pagination model.Pagination `json:"pagination"`
}

type bookDetail struct {
	*model.Book
	Comments []*model.Comment `json:"comments"`
}

type bookResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type likeResponse struct {
	Success bool `json:"success"`
	Likes   int  `json:"likes"`
}

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	query := model.BookQuery{
		Search: request.QueryStringParam(r, "search", ""),
		Genre:  request.QueryStringParam(r, "genre", ""),
		Sort:   request.QueryStringParam(r, "sort", model.SortNewest),
		Page:   request.QueryIntParam(r, "page", 1),
		Limit:  request.QueryIntParam(r, "limit", config.Opts.PageSize),
	}

	items, pagination := h.store.QueryBooks(query)
	response.OK(w, r, bookListResponse{
		Success:    true,
		Data:       items,
		Pagination: pagination,
	})
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteStringParam(r, "id")

	book, err := h.store.GetBook(bookID)
	if err != nil {
		storeError(w, r, err)
		return
	}

	response.OK(w, r, bookResponse{
		Success: true,
		Data: bookDetail{
			Book:     book,
			Comments: h.store.ListComments(bookID),
		},
	})
}

// createBook accepts a multipart form with the book fields plus a
// cover image and a PDF. Every text field and both files are required.
func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	// The argument only bounds the in-memory part buffer, the real size
	// cap is enforced when the files are sniffed.
	if err := r.ParseMultipartForm(config.Opts.MaxUploadSize << 20); err != nil {
		log.Error("Malformed multipart form", zap.Error(err))
		response.BadRequest(w, r, errors.New("malformed multipart form"))
		return
	}

	now := time.Now()
	book := &model.Book{
		ID:          util.GenUUID(),
		Title:       r.FormValue("title"),
		Author:      r.FormValue("author"),
		Description: r.FormValue("description"),
		Genre:       r.FormValue("genre"),
		AgeGroup:    r.FormValue("ageGroup"),
		Tags:        util.ParseTags(r.FormValue("tags")),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := validator.ValidateBookCreateRequest(book); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	covers := r.MultipartForm.File["cover"]
	if len(covers) == 0 {
		response.BadRequest(w, r, errors.New("cover file is required"))
		return
	}
	pdfs := r.MultipartForm.File["pdf"]
	if len(pdfs) == 0 {
		response.BadRequest(w, r, errors.New("pdf file is required"))
		return
	}

	coverURL, err := h.storage.StoreCover(covers[0])
	if err != nil {
		uploadError(w, r, err)
		return
	}
	pdfURL, err := h.storage.StorePDF(pdfs[0])
	if err != nil {
		uploadError(w, r, err)
		return
	}
	book.CoverURL = coverURL
	book.PDFURL = pdfURL

	h.store.AddBook(book)
	log.Info("Book added to catalog",
		zap.String("book_id", book.ID),
		zap.String("title", book.Title))

	response.Created(w, r, bookResponse{Success: true, Data: book})
}

func (h *Handler) likeBook(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteStringParam(r, "id")

	likes, err := h.store.IncrementLikes(bookID)
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.OK(w, r, likeResponse{Success: true, Likes: likes})
}
