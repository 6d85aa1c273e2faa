package tutorial

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dusanmitic/fittrack/internal/telemetry/tracing"
	"github.com/dusanmitic/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type tutorialRepo interface {
	Add(ctx context.Context, tutorial *Tutorial) error
	Get(ctx context.Context, id int) (*Tutorial, error)
	List(ctx context.Context, filter Filter) ([]Tutorial, error)
	IncrementViews(ctx context.Context, id int) error
	Update(ctx context.Context, tutorial *Tutorial) error
	Delete(ctx context.Context, id int) error
}

type ListResponse struct {
	Tutorials []Tutorial `json:"tutorials"`
	Total     int        `json:"total"`
}

type Handler struct {
	repo tutorialRepo
}

func NewHandler(repo tutorialRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/tutorials", handler.handleList).Methods("GET", "OPTIONS").Name("tutorials-list")
	router.HandleFunc("/tutorials/view/{id}", handler.handleView).Methods("GET", "OPTIONS").Name("tutorial-view")
	router.HandleFunc("/tutorials/admin/new", handler.handleNew).Methods("POST", "OPTIONS").Name("tutorial-new")
	router.HandleFunc("/tutorials/admin/update", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("tutorial-update")
	router.HandleFunc("/tutorials/admin/delete/{id}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("tutorial-delete")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "tutorialHandler.list")
	defer span.End()

	filter := Filter{
		Category:   r.URL.Query().Get("category"),
		Difficulty: Difficulty(r.URL.Query().Get("difficulty")),
		Search:     r.URL.Query().Get("search"),
	}
	if filter.Difficulty != "" && !filter.Difficulty.Valid() {
		http.Error(w, "error, invalid difficulty", http.StatusBadRequest)
		return
	}

	tutorials, err := handler.repo.List(ctx, filter)
	if err != nil {
		log.Errorf("list tutorials: %s", err)
		http.Error(w, "list tutorials failed", http.StatusInternalServerError)
		return
	}
	if tutorials == nil {
		tutorials = []Tutorial{}
	}

	respBytes, err := json.Marshal(ListResponse{
		Tutorials: tutorials,
		Total:     len(tutorials),
	})
	if err != nil {
		log.Errorf("list tutorials, marshal response: %s", err)
		http.Error(w, "list tutorials failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

// handleView returns one tutorial and bumps its view counter.
func (handler *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "tutorialHandler.view")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.IncrementViews(ctx, id); err != nil {
		if errors.Is(err, ErrTutorialNotFound) {
			http.Error(w, "tutorial not found", http.StatusNotFound)
			return
		}
		log.Errorf("increment tutorial views: %s", err)
		http.Error(w, "get tutorial failed", http.StatusInternalServerError)
		return
	}

	tut, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTutorialNotFound) {
			http.Error(w, "tutorial not found", http.StatusNotFound)
			return
		}
		log.Errorf("get tutorial: %s", err)
		http.Error(w, "get tutorial failed", http.StatusInternalServerError)
		return
	}

	tutBytes, err := json.Marshal(tut)
	if err != nil {
		log.Errorf("get tutorial, marshal response: %s", err)
		http.Error(w, "get tutorial failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, tutBytes, http.StatusOK)
}

func (handler *Handler) handleNew(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "tutorialHandler.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var newTutorial Tutorial
	if err := json.NewDecoder(r.Body).Decode(&newTutorial); err != nil {
		log.Tracef("new tutorial, unmarshal json params: %s", err)
		http.Error(w, "add tutorial failed", http.StatusBadRequest)
		return
	}

	if newTutorial.Title == "" {
		http.Error(w, "error, title empty", http.StatusBadRequest)
		return
	}
	if !newTutorial.Difficulty.Valid() {
		http.Error(w, "error, invalid difficulty", http.StatusBadRequest)
		return
	}
	if newTutorial.CreatedAt.IsZero() {
		newTutorial.CreatedAt = time.Now()
	}

	if err := handler.repo.Add(ctx, &newTutorial); err != nil {
		log.Errorf("add tutorial failed: %s", err)
		http.Error(w, "add tutorial failed", http.StatusInternalServerError)
		return
	}

	log.Tracef("new tutorial %d: [%s] added", newTutorial.ID, newTutorial.Title)
	pkg.WriteResponse(w, pkg.ContentType.Text, fmt.Sprintf("added:%d", newTutorial.ID), http.StatusCreated)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "tutorialHandler.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var tutorialUpdate Tutorial
	if err := json.NewDecoder(r.Body).Decode(&tutorialUpdate); err != nil {
		log.Tracef("update tutorial, unmarshal json params: %s", err)
		http.Error(w, "update tutorial failed", http.StatusBadRequest)
		return
	}

	if tutorialUpdate.ID <= 0 {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &tutorialUpdate); err != nil {
		if errors.Is(err, ErrTutorialNotFound) {
			http.Error(w, "tutorial not found", http.StatusNotFound)
			return
		}
		log.Errorf("update tutorial failed: %s", err)
		http.Error(w, "update tutorial failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("updated:%d", tutorialUpdate.ID))
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "tutorialHandler.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrTutorialNotFound) {
			http.Error(w, "tutorial not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete tutorial failed: %s", err)
		http.Error(w, "delete tutorial failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("deleted:%d", id))
}
