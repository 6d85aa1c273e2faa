package tutorial

import (
	"context"
	"errors"
	"fmt"

	"github.com/dusanmitic/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var _ tutorialRepo = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, tutorial *Tutorial) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tutorial.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO tutorial (title, category, difficulty, video_url, description, views, featured, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id;`,
		tutorial.Title, tutorial.Category, tutorial.Difficulty, tutorial.VideoURL,
		tutorial.Description, tutorial.Views, tutorial.Featured, tutorial.CreatedAt,
	).Scan(&tutorial.ID)
	if err != nil {
		return err
	}

	span.SetAttributes(attribute.Int("tutorial.id", tutorial.ID))
	return nil
}

// List returns tutorials matching the filter, featured ones first, then
// by view count descending.
func (r *Repo) List(ctx context.Context, filter Filter) (_ []Tutorial, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tutorial.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("category", filter.Category))

	query := `SELECT id, title, category, difficulty, video_url, description, views, featured, created_at FROM tutorial`
	var clauses []string
	var args []interface{}
	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Difficulty != "" {
		args = append(args, filter.Difficulty)
		clauses = append(clauses, fmt.Sprintf("difficulty = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += ` ORDER BY featured DESC, views DESC;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tutorials []Tutorial
	for rows.Next() {
		var tut Tutorial
		if err := rows.Scan(
			&tut.ID, &tut.Title, &tut.Category, &tut.Difficulty, &tut.VideoURL,
			&tut.Description, &tut.Views, &tut.Featured, &tut.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		tutorials = append(tutorials, tut)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tutorials, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Tutorial, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tutorial.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tut := &Tutorial{}
	err = r.db.QueryRow(
		ctx,
		`SELECT id, title, category, difficulty, video_url, description, views, featured, created_at
			FROM tutorial WHERE id = $1;`,
		id,
	).Scan(
		&tut.ID, &tut.Title, &tut.Category, &tut.Difficulty, &tut.VideoURL,
		&tut.Description, &tut.Views, &tut.Featured, &tut.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTutorialNotFound
		}
		return nil, err
	}

	return tut, nil
}

// IncrementViews bumps the view counter, a single atomic statement.
func (r *Repo) IncrementViews(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tutorial.incrementViews")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `UPDATE tutorial SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTutorialNotFound
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, tutorial *Tutorial) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tutorial.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", tutorial.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE tutorial SET title = $1, category = $2, difficulty = $3, video_url = $4, description = $5, featured = $6 WHERE id = $7;`,
		tutorial.Title, tutorial.Category, tutorial.Difficulty, tutorial.VideoURL,
		tutorial.Description, tutorial.Featured, tutorial.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrTutorialNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tutorial.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM tutorial WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrTutorialNotFound
	}

	return nil
}
