package blog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dusanmitic/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type PostsResponse struct {
	Posts []*Blog `json:"posts"`
	Total int     `json:"total"`
}

type likeBlogRequest struct {
	ID int `json:"id"`
}

type newBlogRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

type updateBlogRequest struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

type blogRepo interface {
	AddBlog(ctx context.Context, blog *Blog) error
	UpdateBlog(ctx context.Context, id int, title, category, content string) error
	BlogLiked(ctx context.Context, id int) error
	DeleteBlog(ctx context.Context, id int) error
	All(ctx context.Context, filter Filter) ([]*Blog, error)
	BlogsCount(ctx context.Context) (int, error)
	GetBlogsPage(ctx context.Context, page, size int) ([]*Blog, error)
}

type Handler struct {
	repo blogRepo
}

func NewBlogHandler(repo blogRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/blog/admin/new", handler.handleNewBlog).Methods("POST", "OPTIONS").Name("new-blog")
	router.HandleFunc("/blog/admin/update", handler.handleUpdateBlog).Methods("POST", "OPTIONS").Name("update-blog")
	router.HandleFunc("/blog/admin/delete/{id}", handler.handleDeleteBlog).Methods("DELETE", "OPTIONS").Name("delete-blog")
	router.HandleFunc("/blog/like", handler.handleBlogLiked).Methods("PATCH", "OPTIONS").Name("blog-liked")
	router.HandleFunc("/blog/all", handler.handleAll).Methods("GET").Name("all-blogs")
	router.HandleFunc("/blog/page/{page}/size/{size}", handler.handleGetPage).Methods("GET").Name("blogs-page")
}

func (handler *Handler) handleNewBlog(w http.ResponseWriter, r *http.Request) {
	var newBlogReq newBlogRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&newBlogReq); err != nil {
			log.Errorf("new blog, unmarshal json params: %s", err)
			http.Error(w, "add blog failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("add new blog failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		newBlogReq = newBlogRequest{
			Title:    r.Form.Get("title"),
			Category: r.Form.Get("category"),
			Content:  r.Form.Get("content"),
		}
	}

	if newBlogReq.Title == "" {
		http.Error(w, "error, title empty", http.StatusBadRequest)
		return
	}
	if newBlogReq.Content == "" {
		http.Error(w, "error, content empty", http.StatusBadRequest)
		return
	}

	newBlog := &Blog{
		Title:     newBlogReq.Title,
		Category:  newBlogReq.Category,
		Content:   newBlogReq.Content,
		CreatedAt: time.Now(),
	}

	if err := handler.repo.AddBlog(r.Context(), newBlog); err != nil {
		log.Errorf("add new blog failed: %s", err)
		http.Error(w, "add new blog failed", http.StatusInternalServerError)
		return
	}

	log.Tracef("new blog %d: [%s] added", newBlog.ID, newBlog.Title)

	pkg.WriteResponse(
		w,
		pkg.ContentType.Text,
		fmt.Sprintf("added:%d", newBlog.ID),
		http.StatusCreated,
	)
}

func (handler *Handler) handleUpdateBlog(w http.ResponseWriter, r *http.Request) {
	var updateBlogReq updateBlogRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&updateBlogReq); err != nil {
			log.Errorf("update blog, unmarshal json params: %s", err)
			http.Error(w, "update blog failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("update blog failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		idStr := r.Form.Get("id")
		if idStr == "" {
			http.Error(w, "error, id empty", http.StatusBadRequest)
			return
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "error, id invalid", http.StatusBadRequest)
			return
		}
		updateBlogReq = updateBlogRequest{
			ID:       id,
			Title:    r.Form.Get("title"),
			Category: r.Form.Get("category"),
			Content:  r.Form.Get("content"),
		}
	}

	if updateBlogReq.Title == "" {
		http.Error(w, "error, title empty", http.StatusBadRequest)
		return
	}
	if updateBlogReq.Content == "" {
		http.Error(w, "error, content empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.UpdateBlog(
		r.Context(),
		updateBlogReq.ID,
		updateBlogReq.Title,
		updateBlogReq.Category,
		updateBlogReq.Content,
	); err != nil {
		log.Errorf("update blog failed: %s", err)
		http.Error(w, "update blog failed", http.StatusInternalServerError)
		return
	}

	log.Tracef("blog %d: [%s] updated", updateBlogReq.ID, updateBlogReq.Title)

	pkg.WriteTextResponseOK(w, fmt.Sprintf("updated:%d", updateBlogReq.ID))
}

func (handler *Handler) handleBlogLiked(w http.ResponseWriter, r *http.Request) {
	var likeReq likeBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&likeReq); err != nil {
		log.Errorf("like blog, unmarshal json params: %s", err)
		http.Error(w, "like blog failed", http.StatusBadRequest)
		return
	}

	if err := handler.repo.BlogLiked(r.Context(), likeReq.ID); err != nil {
		if errors.Is(err, ErrBlogNotFound) {
			http.Error(w, "blog not found", http.StatusNotFound)
			return
		}
		log.Errorf("like blog failed: %s", err)
		http.Error(w, "like blog failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("liked:%d", likeReq.ID))
}

func (handler *Handler) handleDeleteBlog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.DeleteBlog(r.Context(), id); err != nil {
		if errors.Is(err, ErrBlogNotFound) {
			http.Error(w, "blog not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete blog failed: %s", err)
		http.Error(w, "delete blog failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("deleted:%d", id))
}

func (handler *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}

	blogs, err := handler.repo.All(r.Context(), filter)
	if err != nil {
		log.Errorf("get all blogs failed: %s", err)
		http.Error(w, "get all blogs failed", http.StatusInternalServerError)
		return
	}
	if blogs == nil {
		blogs = []*Blog{}
	}

	respBytes, err := json.Marshal(PostsResponse{
		Posts: blogs,
		Total: len(blogs),
	})
	if err != nil {
		log.Errorf("get all blogs, marshal response: %s", err)
		http.Error(w, "get all blogs failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) handleGetPage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		http.Error(w, "error, page invalid", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		http.Error(w, "error, size invalid", http.StatusBadRequest)
		return
	}
	if page < 1 || size < 1 {
		http.Error(w, "error, page and size must be positive", http.StatusBadRequest)
		return
	}

	blogs, err := handler.repo.GetBlogsPage(r.Context(), page, size)
	if err != nil {
		log.Errorf("get blogs page failed: %s", err)
		http.Error(w, "get blogs page failed", http.StatusInternalServerError)
		return
	}

	total, err := handler.repo.BlogsCount(r.Context())
	if err != nil {
		log.Errorf("get blogs count failed: %s", err)
		http.Error(w, "get blogs page failed", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(PostsResponse{
		Posts: blogs,
		Total: total,
	})
	if err != nil {
		log.Errorf("get blogs page, marshal response: %s", err)
		http.Error(w, "get blogs page failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}
