package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/avolkov/scribe/internal/common/db"
	"github.com/avolkov/scribe/internal/post/domain"
)

var ErrPostNotFound = errors.New("post not found")

type Repository interface {
	Create(ctx context.Context, post domain.Post) error
	FindAll(ctx context.Context) ([]domain.WithAuthor, error)
	FindByAuthor(ctx context.Context, authorID string) ([]domain.WithAuthor, error)
	FindByID(ctx context.Context, id domain.ID) (domain.WithAuthor, error)
	Update(ctx context.Context, id domain.ID, patch domain.Patch) error
	Delete(ctx context.Context, id domain.ID) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Listing queries join the author so the public projection rides along in
// one round trip. The id tiebreak keeps ordering stable for posts created
// within the same timestamp granularity.
const selectWithAuthor = `
	SELECT p.id, p.title, p.content, p.author_id, p.created_at, p.updated_at,
	       u.username, u.email, u.created_at
	FROM posts p
	JOIN users u ON u.id = p.author_id`

func (r *PgRepository) Create(ctx context.Context, post domain.Post) error {
	defer db.MeasureQueryDuration("create_post", "posts", time.Now())

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO posts (id, title, content, author_id) VALUES ($1, $2, $3, $4)`,
		string(post.ID),
		post.Title,
		post.Content,
		string(post.AuthorID),
	)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *PgRepository) FindAll(ctx context.Context) ([]domain.WithAuthor, error) {
	defer db.MeasureQueryDuration("find_all_posts", "posts", time.Now())

	rows, err := r.pool.Query(ctx, selectWithAuthor+` ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *PgRepository) FindByAuthor(ctx context.Context, authorID string) ([]domain.WithAuthor, error) {
	defer db.MeasureQueryDuration("find_posts_by_author", "posts", time.Now())

	rows, err := r.pool.Query(
		ctx,
		selectWithAuthor+` WHERE p.author_id = $1 ORDER BY p.created_at DESC, p.id DESC`,
		authorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by author: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.WithAuthor, error) {
	defer db.MeasureQueryDuration("find_post_by_id", "posts", time.Now())

	row := r.pool.QueryRow(ctx, selectWithAuthor+` WHERE p.id = $1`, string(id))

	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.WithAuthor{}, ErrPostNotFound
		}
		return domain.WithAuthor{}, fmt.Errorf("failed to find post by id: %w", err)
	}
	return post, nil
}

func (r *PgRepository) Update(ctx context.Context, id domain.ID, patch domain.Patch) error {
	defer db.MeasureQueryDuration("update_post", "posts", time.Now())

	tag, err := r.pool.Exec(
		ctx,
		`UPDATE posts
		 SET title = COALESCE($2, title),
		     content = COALESCE($3, content),
		     updated_at = now()
		 WHERE id = $1`,
		string(id),
		patch.Title,
		patch.Content,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *PgRepository) Delete(ctx context.Context, id domain.ID) error {
	defer db.MeasureQueryDuration("delete_post", "posts", time.Now())

	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

func collectPosts(rows pgx.Rows) ([]domain.WithAuthor, error) {
	var posts []domain.WithAuthor
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return posts, nil
}

func scanPost(row pgx.Row) (domain.WithAuthor, error) {
	var post domain.WithAuthor
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.Author.Username,
		&post.Author.Email,
		&post.Author.CreatedAt,
	)
	if err != nil {
		return domain.WithAuthor{}, err
	}
	post.Author.ID = post.AuthorID
	return post, nil
}
