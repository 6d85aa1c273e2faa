package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/dusanmitic/fittrack/internal/telemetry/tracing"
	"github.com/dusanmitic/fittrack/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, u *User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.user.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO fituser
				(name, email, password_hash, weight_kg, height_cm, age, goal, is_admin, total_calories_burned, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id;`,
		u.Name, u.Email, u.PasswordHash, u.WeightKg, u.HeightCm, u.Age, u.Goal, u.IsAdmin, u.TotalCaloriesBurned, u.CreatedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("user.id", id))

	u.ID = id
	return u, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.user.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, email, password_hash, weight_kg, height_cm, age, goal, is_admin, total_calories_burned, created_at
			FROM fituser WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2user(rows)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.user.getByEmail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, email, password_hash, weight_kg, height_cm, age, goal, is_admin, total_calories_burned, created_at
			FROM fituser WHERE email = $1;`,
		email,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2user(rows)
}

func (r *Repo) UpdateProfile(ctx context.Context, id int, update ProfileUpdate) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.user.updateProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE fituser SET name = $1, weight_kg = $2, height_cm = $3, age = $4, goal = $5 WHERE id = $6;`,
		update.Name, update.WeightKg, update.HeightCm, update.Age, update.Goal, id,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// IncrementLifetimeCalories adds burned calories to the user lifetime
// total and returns the new total. The update is a single atomic
// statement, safe under concurrent workout additions.
func (r *Repo) IncrementLifetimeCalories(ctx context.Context, id int, calories int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.user.incrementLifetimeCalories")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))
	span.SetAttributes(attribute.Int("calories", calories))

	var newTotal int
	err = r.db.QueryRow(
		ctx,
		`UPDATE fituser SET total_calories_burned = total_calories_burned + $1 WHERE id = $2 RETURNING total_calories_burned;`,
		calories, id,
	).Scan(&newTotal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	return newTotal, nil
}

func (r *Repo) LifetimeCalories(ctx context.Context, id int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.user.lifetimeCalories")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	var total int
	err = r.db.QueryRow(
		ctx,
		`SELECT total_calories_burned FROM fituser WHERE id = $1;`,
		id,
	).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	return total, nil
}

func rows2user(rows pgx.Rows) (*User, error) {
	if !rows.Next() {
		return nil, ErrUserNotFound
	}

	var u User
	if err := rows.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.WeightKg, &u.HeightCm, &u.Age, &u.Goal,
		&u.IsAdmin, &u.TotalCaloriesBurned, &u.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	return &u, nil
}
