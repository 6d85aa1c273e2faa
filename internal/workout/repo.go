package workout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dusanmitic/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type ListParams struct {
	UserID int
	// From restricts the listing to workouts created at or after it.
	From *time.Time
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add persists the enriched workout and credits the owner's lifetime
// calories counter, both in one transaction. Returns the stored workout
// and the new lifetime total. On a ledger failure the workout insert is
// rolled back and ErrLedgerUpdate is returned.
func (r *Repo) Add(ctx context.Context, workout Workout) (_ *Workout, newLifetimeTotal int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
		INSERT INTO workout (user_id, total_calories, total_duration_minutes, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		workout.UserID,
		workout.TotalCalories,
		workout.TotalDurationMinutes,
		workout.CreatedAt,
	).Scan(&workout.ID)
	if err != nil {
		return nil, 0, err
	}

	for i := range workout.Exercises {
		ex := &workout.Exercises[i]
		err = tx.QueryRow(ctx, `
			INSERT INTO workout_exercise (workout_id, position, name, category, duration_minutes, calories_burned)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`,
			workout.ID, i, ex.Name, ex.Category, ex.DurationMinutes, ex.CaloriesBurned,
		).Scan(&ex.ID)
		if err != nil {
			return nil, 0, err
		}
	}

	// credit the lifetime calories counter, a single atomic statement so
	// concurrent submissions for the same user never lose an update
	err = tx.QueryRow(ctx, `
		UPDATE fituser
		SET total_calories_burned = total_calories_burned + $1
		WHERE id = $2
		RETURNING total_calories_burned
	`,
		workout.TotalCalories, workout.UserID,
	).Scan(&newLifetimeTotal)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrLedgerUpdate, err)
	}

	span.SetAttributes(attribute.Int("workout.id", workout.ID))
	span.SetAttributes(attribute.Int("workout.totalCalories", workout.TotalCalories))

	return &workout, newLifetimeTotal, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	w := &Workout{}
	err = r.db.QueryRow(ctx, `
		SELECT id, user_id, total_calories, total_duration_minutes, created_at
		FROM workout
		WHERE id = $1
	`, id).Scan(&w.ID, &w.UserID, &w.TotalCalories, &w.TotalDurationMinutes, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	if err := r.attachExercises(ctx, []*Workout{w}); err != nil {
		return nil, err
	}

	return w, nil
}

// ListByUser returns the user's workouts sorted by creation time
// descending, optionally restricted to params.From and later.
func (r *Repo) ListByUser(ctx context.Context, params ListParams) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.listByUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", params.UserID))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}

	query := `
		SELECT id, user_id, total_calories, total_duration_minutes, created_at
		FROM workout
		WHERE user_id = $1`
	args := []interface{}{params.UserID}
	if params.From != nil {
		query += ` AND created_at >= $2`
		args = append(args, *params.From)
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts, err := rows2workouts(rows)
	if err != nil {
		return nil, err
	}

	workoutPtrs := make([]*Workout, len(workouts))
	for i := range workouts {
		workoutPtrs[i] = &workouts[i]
	}
	if err := r.attachExercises(ctx, workoutPtrs); err != nil {
		return nil, err
	}

	return workouts, nil
}

func (r *Repo) CountByUser(ctx context.Context, userID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.countByUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	var count int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM workout WHERE user_id = $1;
	`, userID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repo) attachExercises(ctx context.Context, workouts []*Workout) error {
	if len(workouts) == 0 {
		return nil
	}

	workoutIDs := make([]int, 0, len(workouts))
	id2workout := make(map[int]*Workout, len(workouts))
	for _, w := range workouts {
		workoutIDs = append(workoutIDs, w.ID)
		id2workout[w.ID] = w
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, workout_id, name, category, duration_minutes, calories_burned
		FROM workout_exercise
		WHERE workout_id = ANY($1)
		ORDER BY workout_id, position;
	`, workoutIDs)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ex Exercise
		var workoutID int
		if err := rows.Scan(&ex.ID, &workoutID, &ex.Name, &ex.Category, &ex.DurationMinutes, &ex.CaloriesBurned); err != nil {
			return fmt.Errorf("rows scan: %w", err)
		}
		w := id2workout[workoutID]
		w.Exercises = append(w.Exercises, ex)
	}

	return rows.Err()
}

func rows2workouts(rows pgx.Rows) ([]Workout, error) {
	var workouts []Workout
	for rows.Next() {
		var w Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.TotalCalories, &w.TotalDurationMinutes, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}
