package gym

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

	"github.com/coocood/freecache"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const listCacheExpireSeconds = 5 * 60

type gymRepo interface {
	Add(ctx context.Context, gym *Gym) error
	Get(ctx context.Context, id int) (*Gym, error)
	List(ctx context.Context, filter Filter) ([]Gym, error)
	Cities(ctx context.Context) ([]string, error)
	Update(ctx context.Context, gym *Gym) error
	Delete(ctx context.Context, id int) error
}

type ListResponse struct {
	Gyms  []Gym `json:"gyms"`
	Total int   `json:"total"`
}

type Handler struct {
	repo  gymRepo
	cache *freecache.Cache
}

func NewHandler(repo gymRepo) *Handler {
	megabyte := 1024 * 1024
	return &Handler{
		repo:  repo,
		cache: freecache.NewCache(10 * megabyte),
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/gyms", handler.handleList).Methods("GET", "OPTIONS").Name("gyms-list")
	router.HandleFunc("/gyms/cities", handler.handleCities).Methods("GET", "OPTIONS").Name("gyms-cities")
	router.HandleFunc("/gyms/admin/new", handler.handleNew).Methods("POST", "OPTIONS").Name("gym-new")
	router.HandleFunc("/gyms/admin/update", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("gym-update")
	router.HandleFunc("/gyms/admin/delete/{id}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("gym-delete")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "gymHandler.list")
	defer span.End()

	filter := Filter{
		City:       r.URL.Query().Get("city"),
		PriceRange: r.URL.Query().Get("priceRange"),
		Search:     r.URL.Query().Get("search"),
	}

	cacheKey := []byte(fmt.Sprintf("list::%s::%s::%s", filter.City, filter.PriceRange, filter.Search))
	if cachedResp, err := handler.cache.Get(cacheKey); err == nil {
		log.Tracef("gyms list for %s... served from cache", cacheKey)
		pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cachedResp, http.StatusOK)
		return
	}

	gyms, err := handler.repo.List(ctx, filter)
	if err != nil {
		log.Errorf("list gyms: %s", err)
		http.Error(w, "list gyms failed", http.StatusInternalServerError)
		return
	}
	if gyms == nil {
		gyms = []Gym{}
	}

	respBytes, err := json.Marshal(ListResponse{
		Gyms:  gyms,
		Total: len(gyms),
	})
	if err != nil {
		log.Errorf("list gyms, marshal response: %s", err)
		http.Error(w, "list gyms failed", http.StatusInternalServerError)
		return
	}

	if err := handler.cache.Set(cacheKey, respBytes, listCacheExpireSeconds); err != nil {
		log.Errorf("cache gyms list: %s", err)
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) handleCities(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "gymHandler.cities")
	defer span.End()

	cities, err := handler.repo.Cities(ctx)
	if err != nil {
		log.Errorf("get gym cities: %s", err)
		http.Error(w, "get gym cities failed", http.StatusInternalServerError)
		return
	}
	if cities == nil {
		cities = []string{}
	}

	citiesBytes, err := json.Marshal(cities)
	if err != nil {
		log.Errorf("get gym cities, marshal response: %s", err)
		http.Error(w, "get gym cities failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, citiesBytes, http.StatusOK)
}

func (handler *Handler) handleNew(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "gymHandler.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var newGym Gym
	if err := json.NewDecoder(r.Body).Decode(&newGym); err != nil {
		log.Tracef("new gym, unmarshal json params: %s", err)
		http.Error(w, "add gym failed", http.StatusBadRequest)
		return
	}

	if newGym.Name == "" || newGym.City == "" {
		http.Error(w, "error, name or city empty", http.StatusBadRequest)
		return
	}
	if newGym.CreatedAt.IsZero() {
		newGym.CreatedAt = time.Now()
	}

	if err := handler.repo.Add(ctx, &newGym); err != nil {
		log.Errorf("add gym failed: %s", err)
		http.Error(w, "add gym failed", http.StatusInternalServerError)
		return
	}

	handler.cache.Clear()

	log.Tracef("new gym %d: [%s] added", newGym.ID, newGym.Name)
	pkg.WriteResponse(w, pkg.ContentType.Text, fmt.Sprintf("added:%d", newGym.ID), http.StatusCreated)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "gymHandler.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var gymUpdate Gym
	if err := json.NewDecoder(r.Body).Decode(&gymUpdate); err != nil {
		log.Tracef("update gym, unmarshal json params: %s", err)
		http.Error(w, "update gym failed", http.StatusBadRequest)
		return
	}

	if gymUpdate.ID <= 0 {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &gymUpdate); err != nil {
		if errors.Is(err, ErrGymNotFound) {
			http.Error(w, "gym not found", http.StatusNotFound)
			return
		}
		log.Errorf("update gym failed: %s", err)
		http.Error(w, "update gym failed", http.StatusInternalServerError)
		return
	}

	handler.cache.Clear()

	pkg.WriteTextResponseOK(w, fmt.Sprintf("updated:%d", gymUpdate.ID))
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "gymHandler.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrGymNotFound) {
			http.Error(w, "gym not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete gym failed: %s", err)
		http.Error(w, "delete gym failed", http.StatusInternalServerError)
		return
	}

	handler.cache.Clear()

	pkg.WriteTextResponseOK(w, fmt.Sprintf("deleted:%d", id))
}
