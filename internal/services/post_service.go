package services

import (
	"database/sql"
	"errors"

	"github.com/postbox-app/postbox-be/internal/models"
)

// PostServiceProvider defines the interface for post services. Every
// operation is scoped by the owner's id.
type PostServiceProvider interface {
	ListPosts(ownerID int64) ([]models.Post, error)
	CreatePost(ownerID int64, text string) (models.Post, error)
	DeletePost(postID, ownerID int64) (models.Post, error)
}

// PostService provides business logic for post management.
type PostService struct {
	db *sql.DB
}

// NewPostService creates a new PostService.
func NewPostService(db *sql.DB) *PostService {
	return &PostService{db: db}
}

// ListPosts retrieves all posts belonging to the given owner, in insertion
// order. An owner with no posts gets an empty slice, not an error.
func (s *PostService) ListPosts(ownerID int64) ([]models.Post, error) {
	rows, err := s.db.Query("SELECT id, text, owner_id, created_at FROM posts WHERE owner_id = ? ORDER BY id", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.Text, &post.OwnerID, &post.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// CreatePost inserts a new post for the given owner and returns the record
// with its assigned id.
func (s *PostService) CreatePost(ownerID int64, text string) (models.Post, error) {
	row := s.db.QueryRow(
		"INSERT INTO posts(text, owner_id) VALUES(?, ?) RETURNING id, text, owner_id, created_at",
		text, ownerID,
	)
	var post models.Post
	if err := row.Scan(&post.ID, &post.Text, &post.OwnerID, &post.CreatedAt); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// DeletePost removes a post, but only if it exists AND belongs to the given
// owner. Returns the deleted record, or ErrPostNotFound: an ownership
// mismatch is indistinguishable from a nonexistent id.
func (s *PostService) DeletePost(postID, ownerID int64) (models.Post, error) {
	row := s.db.QueryRow(
		"DELETE FROM posts WHERE id = ? AND owner_id = ? RETURNING id, text, owner_id, created_at",
		postID, ownerID,
	)
	var post models.Post
	if err := row.Scan(&post.ID, &post.Text, &post.OwnerID, &post.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, ErrPostNotFound
		}
		return models.Post{}, err
	}
	return post, nil
}
