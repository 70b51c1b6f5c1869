package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"devsync-backend/internal/auth"
	"devsync-backend/internal/models"
	"devsync-backend/internal/websocket"
)

// PostServiceProvider defines the interface for the content feed.
type PostServiceProvider interface {
	CreatePost(ownerID, content, image string) (models.Post, error)
	ListFeed() ([]models.Post, error)
	GetPostByID(id string) (models.Post, error)
	DeletePost(actingID, postID string) error
	Like(actingID, postID string) ([]string, error)
	Unlike(actingID, postID string) ([]string, error)
	AddComment(actingID, postID, text string) ([]models.Comment, error)
	DeleteComment(actingID, postID, commentID string) ([]models.Comment, error)
}

// PostService owns the post lifecycle, like-set membership, comment
// sequences and the assembled feed view.
type PostService struct {
	db       *sql.DB
	hub      *websocket.Hub
	activity ActivityServiceProvider
}

// NewPostService creates a new PostService. The hub may be nil when no
// live feed stream is wanted.
func NewPostService(db *sql.DB, hub *websocket.Hub, activity ActivityServiceProvider) *PostService {
	return &PostService{db: db, hub: hub, activity: activity}
}

// CreatePost stores a new post and returns it with the owner joined in.
// Content validation (non-empty after trim) is the caller's job.
func (s *PostService) CreatePost(ownerID, content, image string) (models.Post, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		"INSERT INTO posts(id, user_id, content, image) VALUES(?, ?, ?, ?)",
		id, ownerID, content, image,
	)
	if err != nil {
		return models.Post{}, err
	}

	post, err := s.GetPostByID(id)
	if err != nil {
		return models.Post{}, err
	}

	if s.activity != nil {
		s.activity.Record("post.create", post.Owner.Name+" published a post", &ownerID)
	}
	s.broadcast("post.created", post)
	return post, nil
}

// ListFeed returns all posts, newest first, with owner and comment
// author summaries joined and the like id list attached.
func (s *PostService) ListFeed() ([]models.Post, error) {
	rows, err := s.db.Query(
		`SELECT p.id, p.content, p.image, p.created_at, u.id, u.name, u.profile_photo
		 FROM posts p JOIN users u ON u.id = p.user_id
		 ORDER BY p.created_at DESC, p.id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.Content, &post.Image, &post.CreatedAt,
			&post.Owner.ID, &post.Owner.Name, &post.Owner.ProfilePhoto); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		if posts[i].Likes, err = s.likeIDs(posts[i].ID); err != nil {
			return nil, err
		}
		if posts[i].Comments, err = s.commentList(posts[i].ID); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// GetPostByID returns one post with the same joins as the feed.
func (s *PostService) GetPostByID(id string) (models.Post, error) {
	var post models.Post
	row := s.db.QueryRow(
		`SELECT p.id, p.content, p.image, p.created_at, u.id, u.name, u.profile_photo
		 FROM posts p JOIN users u ON u.id = p.user_id
		 WHERE p.id = ?`,
		id,
	)
	err := row.Scan(&post.ID, &post.Content, &post.Image, &post.CreatedAt,
		&post.Owner.ID, &post.Owner.Name, &post.Owner.ProfilePhoto)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Post{}, fmt.Errorf("post %s: %w", id, ErrNotFound)
		}
		return models.Post{}, err
	}

	if post.Likes, err = s.likeIDs(id); err != nil {
		return models.Post{}, err
	}
	if post.Comments, err = s.commentList(id); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// DeletePost removes a post and, through the cascading schema, its
// comments and likes. Only the owner may delete.
func (s *PostService) DeletePost(actingID, postID string) error {
	var ownerID string
	err := s.db.QueryRow("SELECT user_id FROM posts WHERE id = ?", postID).Scan(&ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return err
	}

	if err := auth.Authorize(actingID, ownerID); err != nil {
		return fmt.Errorf("delete post %s: %w", postID, err)
	}

	if _, err := s.db.Exec("DELETE FROM posts WHERE id = ?", postID); err != nil {
		return err
	}

	if s.activity != nil {
		s.activity.Record("post.delete", "post removed", &actingID)
	}
	s.broadcast("post.deleted", map[string]string{"id": postID})
	return nil
}

// Like adds the acting user to the post's like-set.
func (s *PostService) Like(actingID, postID string) ([]string, error) {
	if err := s.requirePost(postID); err != nil {
		return nil, err
	}

	var exists int
	err := s.db.QueryRow("SELECT COUNT(1) FROM post_likes WHERE post_id = ? AND user_id = ?", postID, actingID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, fmt.Errorf("like post %s: %w", postID, ErrAlreadyLiked)
	}

	if _, err := s.db.Exec("INSERT INTO post_likes(post_id, user_id) VALUES(?, ?)", postID, actingID); err != nil {
		return nil, err
	}

	likes, err := s.likeIDs(postID)
	if err != nil {
		return nil, err
	}
	s.broadcast("post.liked", map[string]interface{}{"id": postID, "likes": likes})
	return likes, nil
}

// Unlike removes the acting user from the post's like-set.
func (s *PostService) Unlike(actingID, postID string) ([]string, error) {
	if err := s.requirePost(postID); err != nil {
		return nil, err
	}

	res, err := s.db.Exec("DELETE FROM post_likes WHERE post_id = ? AND user_id = ?", postID, actingID)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("unlike post %s: %w", postID, ErrNotLiked)
	}

	likes, err := s.likeIDs(postID)
	if err != nil {
		return nil, err
	}
	s.broadcast("post.unliked", map[string]interface{}{"id": postID, "likes": likes})
	return likes, nil
}

// AddComment prepends a comment to the post's sequence and returns the
// full joined comment list.
func (s *PostService) AddComment(actingID, postID, text string) ([]models.Comment, error) {
	if err := s.requirePost(postID); err != nil {
		return nil, err
	}

	_, err := s.db.Exec(
		"INSERT INTO comments(id, post_id, user_id, text) VALUES(?, ?, ?, ?)",
		uuid.New().String(), postID, actingID, text,
	)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentList(postID)
	if err != nil {
		return nil, err
	}
	s.broadcast("comment.added", map[string]interface{}{"id": postID, "comments": comments})
	return comments, nil
}

// DeleteComment removes one comment. Ownership is per-comment: only the
// comment's author may delete it, the post's owner may not.
func (s *PostService) DeleteComment(actingID, postID, commentID string) ([]models.Comment, error) {
	if err := s.requirePost(postID); err != nil {
		return nil, err
	}

	var authorID string
	err := s.db.QueryRow("SELECT user_id FROM comments WHERE id = ? AND post_id = ?", commentID, postID).Scan(&authorID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("comment %s: %w", commentID, ErrNotFound)
		}
		return nil, err
	}

	if err := auth.Authorize(actingID, authorID); err != nil {
		return nil, fmt.Errorf("delete comment %s: %w", commentID, err)
	}

	if _, err := s.db.Exec("DELETE FROM comments WHERE id = ?", commentID); err != nil {
		return nil, err
	}

	comments, err := s.commentList(postID)
	if err != nil {
		return nil, err
	}
	s.broadcast("comment.deleted", map[string]interface{}{"id": postID, "comments": comments})
	return comments, nil
}

// requirePost fails with ErrNotFound when the post id does not resolve.
func (s *PostService) requirePost(postID string) error {
	var exists int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM posts WHERE id = ?", postID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}
	return nil
}

// likeIDs returns the ids of the users who liked a post.
func (s *PostService) likeIDs(postID string) ([]string, error) {
	rows, err := s.db.Query("SELECT user_id FROM post_likes WHERE post_id = ? ORDER BY created_at", postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		likes = append(likes, id)
	}
	return likes, rows.Err()
}

// commentList returns a post's comments, most recent first, with author
// summaries joined.
func (s *PostService) commentList(postID string) ([]models.Comment, error) {
	rows, err := s.db.Query(
		`SELECT c.id, c.text, c.created_at, u.id, u.name, u.profile_photo
		 FROM comments c JOIN users u ON u.id = c.user_id
		 WHERE c.post_id = ?
		 ORDER BY c.seq DESC`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(&comment.ID, &comment.Text, &comment.CreatedAt,
			&comment.Author.ID, &comment.Author.Name, &comment.Author.ProfilePhoto); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (s *PostService) broadcast(action string, payload interface{}) {
	if s.hub != nil {
		s.hub.BroadcastEvent(action, payload)
	}
}
