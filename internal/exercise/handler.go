package exercise

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dusanmitic/fittrack/internal/telemetry/tracing"
	"github.com/dusanmitic/fittrack/internal/workout"
	"github.com/dusanmitic/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type exerciseRepo interface {
	Add(ctx context.Context, exercise *Exercise) error
	Get(ctx context.Context, id int) (*Exercise, error)
	List(ctx context.Context, filter Filter) ([]Exercise, error)
	Update(ctx context.Context, exercise *Exercise) error
	Delete(ctx context.Context, id int) error
}

type ListResponse struct {
	Exercises []Exercise `json:"exercises"`
	Total     int        `json:"total"`
}

type Handler struct {
	repo exerciseRepo
}

func NewHandler(repo exerciseRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/exercises", handler.handleList).Methods("GET", "OPTIONS").Name("exercises-list")
	router.HandleFunc("/exercises/view/{id}", handler.handleGet).Methods("GET", "OPTIONS").Name("exercise-get")
	router.HandleFunc("/exercises/admin/new", handler.handleNew).Methods("POST", "OPTIONS").Name("exercise-new")
	router.HandleFunc("/exercises/admin/update", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("exercise-update")
	router.HandleFunc("/exercises/admin/delete/{id}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("exercise-delete")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "exerciseHandler.list")
	defer span.End()

	filter := Filter{
		Category:   workout.Category(r.URL.Query().Get("category")),
		Difficulty: Difficulty(r.URL.Query().Get("difficulty")),
		Search:     r.URL.Query().Get("search"),
	}
	if filter.Category != "" && !filter.Category.Valid() {
		http.Error(w, "error, invalid category", http.StatusBadRequest)
		return
	}
	if filter.Difficulty != "" && !filter.Difficulty.Valid() {
		http.Error(w, "error, invalid difficulty", http.StatusBadRequest)
		return
	}

	exercises, err := handler.repo.List(ctx, filter)
	if err != nil {
		log.Errorf("list exercises: %s", err)
		http.Error(w, "list exercises failed", http.StatusInternalServerError)
		return
	}
	if exercises == nil {
		exercises = []Exercise{}
	}

	respBytes, err := json.Marshal(ListResponse{
		Exercises: exercises,
		Total:     len(exercises),
	})
	if err != nil {
		log.Errorf("list exercises, marshal response: %s", err)
		http.Error(w, "list exercises failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "exerciseHandler.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	ex, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("get exercise: %s", err)
		http.Error(w, "get exercise failed", http.StatusInternalServerError)
		return
	}

	exBytes, err := json.Marshal(ex)
	if err != nil {
		log.Errorf("get exercise, marshal response: %s", err)
		http.Error(w, "get exercise failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exBytes, http.StatusOK)
}

func (handler *Handler) handleNew(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "exerciseHandler.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var newExercise Exercise
	if err := json.NewDecoder(r.Body).Decode(&newExercise); err != nil {
		log.Tracef("new exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	if newExercise.Name == "" {
		http.Error(w, "error, name empty", http.StatusBadRequest)
		return
	}
	if !newExercise.Category.Valid() {
		http.Error(w, "error, invalid category", http.StatusBadRequest)
		return
	}
	if newExercise.CaloriesPerMinute <= 0 {
		http.Error(w, "error, invalid calories per minute", http.StatusBadRequest)
		return
	}
	if newExercise.Difficulty == "" {
		newExercise.Difficulty = DifficultyBeginner
	}
	if !newExercise.Difficulty.Valid() {
		http.Error(w, "error, invalid difficulty", http.StatusBadRequest)
		return
	}
	if newExercise.CreatedAt.IsZero() {
		newExercise.CreatedAt = time.Now()
	}

	if err := handler.repo.Add(ctx, &newExercise); err != nil {
		if errors.Is(err, ErrExerciseNameTaken) {
			http.Error(w, "error, exercise name already taken", http.StatusConflict)
			return
		}
		log.Errorf("add exercise failed: %s", err)
		http.Error(w, "add exercise failed", http.StatusInternalServerError)
		return
	}

	log.Tracef("new exercise %d: [%s] added", newExercise.ID, newExercise.Name)
	pkg.WriteResponse(w, pkg.ContentType.Text, fmt.Sprintf("added:%d", newExercise.ID), http.StatusCreated)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "exerciseHandler.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var exerciseUpdate Exercise
	if err := json.NewDecoder(r.Body).Decode(&exerciseUpdate); err != nil {
		log.Tracef("update exercise, unmarshal json params: %s", err)
		http.Error(w, "update exercise failed", http.StatusBadRequest)
		return
	}

	if exerciseUpdate.ID <= 0 {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &exerciseUpdate); err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrExerciseNameTaken) {
			http.Error(w, "error, exercise name already taken", http.StatusConflict)
			return
		}
		log.Errorf("update exercise failed: %s", err)
		http.Error(w, "update exercise failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("updated:%d", exerciseUpdate.ID))
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "exerciseHandler.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete exercise failed: %s", err)
		http.Error(w, "delete exercise failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("deleted:%d", id))
}
