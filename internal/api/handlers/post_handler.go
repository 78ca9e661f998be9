package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/postbox-app/postbox-be/internal/auth"
	"github.com/postbox-app/postbox-be/internal/cache"
	"github.com/postbox-app/postbox-be/internal/services"
)

// PostHandler handles HTTP requests for post management. All routes assume
// auth.RequireUser has already placed the current user in the context.
type PostHandler struct {
	posts services.PostServiceProvider
	cache *cache.PostCache
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts services.PostServiceProvider, cache *cache.PostCache) *PostHandler {
	return &PostHandler{posts: posts, cache: cache}
}

// AddPostPayload defines the structure for post creation requests.
type AddPostPayload struct {
	Text string `json:"text"`
}

// AddPost creates a new post owned by the current user.
func (h *PostHandler) AddPost(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user from context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var payload AddPostPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Text == "" {
		http.Error(w, "Text is required", http.StatusBadRequest)
		return
	}

	post, err := h.posts.CreatePost(user.ID, payload.Text)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to create post")
		http.Error(w, "Failed to create post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

// GetPosts lists the current user's posts, served from the read cache when a
// fresh entry exists. The cache is filled on miss and only ever invalidated
// by TTL expiry, so results may lag writes by up to one TTL window.
func (h *PostHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user from context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	posts, hit := h.cache.Get(user.ID)
	if !hit {
		var err error
		posts, err = h.posts.ListPosts(user.ID)
		if err != nil {
			log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to list posts")
			http.Error(w, "Failed to list posts", http.StatusInternalServerError)
			return
		}
		h.cache.Put(user.ID, posts)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

// DeletePost removes a post identified by the post_id query parameter,
// scoped to the current user. A post that exists but belongs to someone else
// gets the same 404 as a nonexistent one.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user from context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	postID, err := strconv.ParseInt(r.URL.Query().Get("post_id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid post_id", http.StatusBadRequest)
		return
	}

	post, err := h.posts.DeletePost(postID, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			http.Error(w, "Post not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int64("user_id", user.ID).Int64("post_id", postID).Msg("Failed to delete post")
		http.Error(w, "Failed to delete post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}
