package blog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dusanmitic/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// manual caching of blog posts not needed (at least for this use case):
// https://github.com/jackc/pgx/wiki/Automatic-Prepared-Statement-Caching

var _ blogRepo = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) AddBlog(ctx context.Context, blog *Blog) error {
	if blog.Content == "" || blog.Title == "" {
		return ErrBlogTitleOrContentEmpty
	}

	if blog.CreatedAt.IsZero() {
		blog.CreatedAt = time.Now()
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO blog (title, category, created_at, content, likes) VALUES ($1, $2, $3, $4, $5) RETURNING id;`,
		blog.Title, blog.Category, blog.CreatedAt, blog.Content, blog.Likes,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return err
	}

	if rows.Next() {
		var id int
		if err := rows.Scan(&id); err == nil {
			blog.ID = id
			return nil
		}
	}

	return errors.New("unexpected error, failed to insert blog")
}

// UpdateBlog will update the content, title and category of the blog
// createdAt and likes are not updated
func (r *Repo) UpdateBlog(ctx context.Context, id int, title, category, content string) error {
	if content == "" || title == "" {
		return ErrBlogTitleOrContentEmpty
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE blog SET title = $1, category = $2, content = $3 WHERE id = $4`,
		title, category, content, id,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		log.Tracef("blog %d not updated", id)
	}

	return nil
}

func (r *Repo) BlogLiked(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `UPDATE blog SET likes = likes + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBlogNotFound
	}
	return nil
}

func (r *Repo) DeleteBlog(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blog WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBlogNotFound
	}
	return nil
}

func (r *Repo) All(ctx context.Context, filter Filter) ([]*Blog, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.all")
	defer span.End()
	span.SetAttributes(attribute.String("category", filter.Category))

	query := `SELECT id, title, category, created_at, content, likes FROM blog`
	where, args := filterClauses(filter)
	query += where + ` ORDER BY id DESC;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rows2blogs(rows)
}

func (r *Repo) BlogsCount(ctx context.Context) (int, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.blogsCount")
	defer span.End()

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM blog`).Scan(&count); err != nil {
		return -1, err
	}
	return count, nil
}

func (r *Repo) GetBlogsPage(ctx context.Context, page, size int) ([]*Blog, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.getBlogsPage")
	span.SetAttributes(attribute.Int("page", page))
	span.SetAttributes(attribute.Int("size", size))
	defer span.End()

	limit := size
	offset := (page - 1) * size
	blogsCount, err := r.BlogsCount(ctx)
	if err != nil {
		return nil, err
	}

	if blogsCount <= limit {
		return r.All(ctx, Filter{})
	}

	if blogsCount-offset < limit {
		offset = blogsCount - limit
	}

	log.Tracef("getting blogs, blogs count %d, limit %d, offset %d", blogsCount, limit, offset)

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, title, category, created_at, content, likes FROM blog
			ORDER BY id DESC
			LIMIT $1
			OFFSET $2;
		`,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rows2blogs(rows)
}

func filterClauses(filter Filter) (string, []interface{}) {
	var clauses []string
	var args []interface{}
	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", len(args), len(args)))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	where := " WHERE " + clauses[0]
	for _, clause := range clauses[1:] {
		where += " AND " + clause
	}
	return where, args
}

func rows2blogs(rows pgx.Rows) ([]*Blog, error) {
	var blogs []*Blog
	for rows.Next() {
		var blog Blog
		if err := rows.Scan(&blog.ID, &blog.Title, &blog.Category, &blog.CreatedAt, &blog.Content, &blog.Likes); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		blogs = append(blogs, &blog)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return blogs, nil
}
