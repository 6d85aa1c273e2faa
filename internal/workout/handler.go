package workout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dusanmitic/fittrack/internal/auth"
	"github.com/dusanmitic/fittrack/internal/telemetry/metrics"
	"github.com/dusanmitic/fittrack/internal/telemetry/tracing"
	"github.com/dusanmitic/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=workout_mocks_test.go -package=workout_test

type workoutRepo interface {
	Add(ctx context.Context, workout Workout) (_ *Workout, newLifetimeTotal int, err error)
	ListByUser(ctx context.Context, params ListParams) ([]Workout, error)
	CountByUser(ctx context.Context, userID int) (int, error)
}

type userLedger interface {
	LifetimeCalories(ctx context.Context, userID int) (int, error)
}

type AddWorkoutResponse struct {
	Workout          *Workout `json:"workout"`
	LifetimeCalories int      `json:"lifetimeCalories"`
}

type ListResponse struct {
	Workouts []Workout `json:"workouts"`
	Total    int       `json:"total"`
}

type Handler struct {
	calculator *Calculator
	repo       workoutRepo
	analyzer   *Analyzer
	statsCache *StatsCache
	metrics    *metrics.Manager
}

func NewHandler(
	calculator *Calculator,
	repo workoutRepo,
	ledger userLedger,
	statsCache *StatsCache,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		calculator: calculator,
		repo:       repo,
		analyzer:   NewAnalyzer(repo, ledger),
		statsCache: statsCache,
		metrics:    metricsManager,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	workoutsRouter := mainRouter.PathPrefix("/workouts").Subrouter()
	workoutsRouter.HandleFunc("", handler.HandleAdd).Methods("POST", "OPTIONS").Name("workout-add")
	workoutsRouter.HandleFunc("", handler.HandleList).Methods("GET", "OPTIONS").Name("workout-list")
	workoutsRouter.HandleFunc("/stats", handler.HandleStats).Methods("GET", "OPTIONS").Name("workout-stats")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.add")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	type addWorkoutRequest struct {
		Exercises []ExerciseInput `json:"exercises"`
	}

	var addReq addWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&addReq); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	enriched, err := handler.calculator.Enrich(session.UserID, addReq.Exercises, time.Now())
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			handler.metrics.CounterWorkoutsRejected.Inc()
			http.Error(w, validationErr.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("add workout, enrich: %s", err)
		http.Error(w, "add workout failed", http.StatusInternalServerError)
		return
	}

	addedWorkout, newLifetimeTotal, err := handler.repo.Add(ctx, *enriched)
	if err != nil {
		if errors.Is(err, ErrLedgerUpdate) {
			log.Errorf("add workout [user %d]: %s", session.UserID, err)
			http.Error(w, "lifetime calories not credited, please resubmit", http.StatusInternalServerError)
			return
		}
		log.Errorf("add workout [user %d]: %s", session.UserID, err)
		http.Error(w, "add workout failed", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkouts.Inc()
	handler.metrics.CounterCaloriesBurned.Add(float64(addedWorkout.TotalCalories))

	handler.statsCache.Invalidate(ctx, session.UserID)

	respBytes, err := json.Marshal(AddWorkoutResponse{
		Workout:          addedWorkout,
		LifetimeCalories: newLifetimeTotal,
	})
	if err != nil {
		log.Errorf("add workout, marshal response: %s", err)
		http.Error(w, "add workout failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.list")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	period := Period(r.URL.Query().Get("period"))
	if period == "" {
		period = PeriodAll
	}

	workouts, err := handler.repo.ListByUser(ctx, ListParams{
		UserID: session.UserID,
		From:   period.WindowStart(time.Now()),
	})
	if err != nil {
		log.Errorf("list workouts [user %d]: %s", session.UserID, err)
		http.Error(w, "list workouts failed", http.StatusInternalServerError)
		return
	}
	if workouts == nil {
		workouts = []Workout{}
	}

	respBytes, err := json.Marshal(ListResponse{
		Workouts: workouts,
		Total:    len(workouts),
	})
	if err != nil {
		log.Errorf("list workouts, marshal response: %s", err)
		http.Error(w, "list workouts failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.stats")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	stats, cached := handler.statsCache.Get(ctx, session.UserID)
	if !cached {
		var err error
		stats, err = handler.analyzer.ComputeStats(ctx, session.UserID, time.Now())
		if err != nil {
			log.Errorf("compute stats [user %d]: %s", session.UserID, err)
			http.Error(w, "get stats failed", http.StatusInternalServerError)
			return
		}
		handler.statsCache.Set(ctx, session.UserID, stats)
	}

	respBytes, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("get stats, marshal response: %s", err)
		http.Error(w, "get stats failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}
