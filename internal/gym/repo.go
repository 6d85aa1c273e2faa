package gym

import (
	"context"
	"errors"
	"fmt"

	"github.com/dusanmitic/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var _ gymRepo = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, gym *Gym) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gym.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO gym (name, city, address, price_range, rating, featured, description, amenities, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id;`,
		gym.Name, gym.City, gym.Address, gym.PriceRange, gym.Rating, gym.Featured, gym.Description, gym.Amenities, gym.CreatedAt,
	).Scan(&gym.ID)
	if err != nil {
		return err
	}

	span.SetAttributes(attribute.Int("gym.id", gym.ID))
	return nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Gym, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gym.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	gym := &Gym{}
	err = r.db.QueryRow(
		ctx,
		`SELECT id, name, city, address, price_range, rating, featured, description, amenities, created_at
			FROM gym WHERE id = $1;`,
		id,
	).Scan(&gym.ID, &gym.Name, &gym.City, &gym.Address, &gym.PriceRange, &gym.Rating, &gym.Featured, &gym.Description, &gym.Amenities, &gym.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}

	return gym, nil
}

// List returns gyms matching the filter, featured gyms first, then by
// rating descending.
func (r *Repo) List(ctx context.Context, filter Filter) (_ []Gym, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gym.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("city", filter.City))

	query := `SELECT id, name, city, address, price_range, rating, featured, description, amenities, created_at FROM gym`
	var clauses []string
	var args []interface{}
	if filter.City != "" {
		args = append(args, filter.City)
		clauses = append(clauses, fmt.Sprintf("city = $%d", len(args)))
	}
	if filter.PriceRange != "" {
		args = append(args, filter.PriceRange)
		clauses = append(clauses, fmt.Sprintf("price_range = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf(
			"(name ILIKE $%d OR address ILIKE $%d OR array_to_string(amenities, ' ') ILIKE $%d)",
			len(args), len(args), len(args),
		))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += ` ORDER BY featured DESC, rating DESC;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gyms []Gym
	for rows.Next() {
		var gym Gym
		if err := rows.Scan(
			&gym.ID, &gym.Name, &gym.City, &gym.Address, &gym.PriceRange,
			&gym.Rating, &gym.Featured, &gym.Description, &gym.Amenities, &gym.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		gyms = append(gyms, gym)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *Repo) Cities(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gym.cities")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT DISTINCT city FROM gym ORDER BY city;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cities, nil
}

func (r *Repo) Update(ctx context.Context, gym *Gym) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gym.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", gym.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE gym SET name = $1, city = $2, address = $3, price_range = $4, rating = $5, featured = $6, description = $7, amenities = $8 WHERE id = $9;`,
		gym.Name, gym.City, gym.Address, gym.PriceRange, gym.Rating, gym.Featured, gym.Description, gym.Amenities, gym.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrGymNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gym.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM gym WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrGymNotFound
	}

	return nil
}
