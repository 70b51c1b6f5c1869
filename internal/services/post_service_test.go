package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devsync-backend/internal/auth"
)

func TestCreatePost_JoinsOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil, nil)

	alice := seedUser(t, db, "Alice", "alice@x.com")

	post, err := svc.CreatePost(alice, "hello world", "")
	require.NoError(t, err)

	assert.Equal(t, "hello world", post.Content)
	assert.Equal(t, alice, post.Owner.ID)
	assert.Equal(t, "Alice", post.Owner.Name)
	assert.Empty(t, post.Likes)
	assert.Empty(t, post.Comments)
}

func TestListFeed_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil, nil)

	alice := seedUser(t, db, "Alice", "alice@x.com")

	// Seed with explicit timestamps so the order is unambiguous.
	_, err := db.Exec(
		"INSERT INTO posts(id, user_id, content, created_at) VALUES('p1', ?, 'first', '2026-01-01 10:00:00')", alice)
	require.NoError(t, err)
	_, err = db.Exec(
		"INSERT INTO posts(id, user_id, content, created_at) VALUES('p2', ?, 'second', '2026-01-02 10:00:00')", alice)
	require.NoError(t, err)

	posts, err := svc.ListFeed()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Content)
	assert.Equal(t, "first", posts[1].Content)
}

func TestGetPost_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil, nil)

	_, err := svc.GetPostByID("no-such-post")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetPostByID("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePost_OwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil, nil)

	alice := seedUser(t, db, "Alice", "alice@x.com")
	bob := seedUser(t, db, "Bob", "bob@x.com")

	post, err := svc.CreatePost(alice, "hello world", "")
	require.NoError(t, err)

	err = svc.DeletePost(bob, post.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	// The post is untouched by the failed delete.
	_, err = svc.GetPostByID(post.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(alice, post.ID))
	_, err = svc.GetPostByID(post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePost_CascadesCommentsAndLikes(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil, nil)

	alice := seedUser(t, db, "Alice", "alice@x.com")
	bob := seedUser(t, db, "Bob", "bob@x.com")

	post, err := svc.CreatePost(alice, "hello world", "")
	require.NoError(t, err)

	_, err = svc.Like(bob, post.ID)
	require.NoError(t, err)
	_, err = svc.AddComment(bob, post.ID, "nice!")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(alice, post.ID))

	var likes, comments int
	require.NoError(t, db.QueryRow("SELECT COUNT(1) FROM post_likes WHERE post_id = ?", post.ID).Scan(&likes))
	require.NoError(t, db.QueryRow("SELECT COUNT(1) FROM comments WHERE post_id = ?", post.ID).Scan(&comments))
	assert.Zero(t, likes)
	assert.Zero(t, comments)
}

func TestLike_ConflictAndRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil, nil)

	alice := seedUser(t, db, "Alice", "alice@x.com")
	bob := seedUser(t, db, "Bob", "bob@x.com")

	post, err := svc.CreatePost(alice, "hello world", "")
	require.NoError(t, err)

	likes, err := svc.Like(bob, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob}, likes)

	_, err = svc.Like(bob, post.ID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	// Unlike returns the like-set to its pre-like state.
	likes, err = svc.Unlike(bob, post.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)

	_, err = svc.Unlike(bob, post.ID)
	assert.ErrorIs(t, err, ErrNotLiked)
}

func TestLike_PostNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil, nil)

	bob := seedUser(t, db, "Bob", "bob@x.com")

	_, err := svc.Like(bob, "no-such-post")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Unlike(bob, "no-such-post")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddComment_PrependsNewest(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil, nil)

	alice := seedUser(t, db, "Alice", "alice@x.com")
	bob := seedUser(t, db, "Bob", "bob@x.com")

	post, err := svc.CreatePost(alice, "hello world", "")
	require.NoError(t, err)

	_, err = svc.AddComment(bob, post.ID, "first")
	require.NoError(t, err)
	comments, err := svc.AddComment(alice, post.ID, "second")
	require.NoError(t, err)

	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "Alice", comments[0].Author.Name)
	assert.Equal(t, "first", comments[1].Text)
	assert.Equal(t, "Bob", comments[1].Author.Name)
}

func TestDeleteComment_AuthorOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil, nil)

	alice := seedUser(t, db, "Alice", "alice@x.com")
	bob := seedUser(t, db, "Bob", "bob@x.com")

	post, err := svc.CreatePost(alice, "hello world", "")
	require.NoError(t, err)

	comments, err := svc.AddComment(bob, post.ID, "nice!")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	commentID := comments[0].ID

	// The post's owner may NOT delete someone else's comment.
	_, err = svc.DeleteComment(alice, post.ID, commentID)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	comments, err = svc.DeleteComment(bob, post.ID, commentID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestDeleteComment_PreservesOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil, nil)

	alice := seedUser(t, db, "Alice", "alice@x.com")

	post, err := svc.CreatePost(alice, "hello world", "")
	require.NoError(t, err)

	_, err = svc.AddComment(alice, post.ID, "one")
	require.NoError(t, err)
	comments, err := svc.AddComment(alice, post.ID, "two")
	require.NoError(t, err)
	comments, err = svc.AddComment(alice, post.ID, "three")
	require.NoError(t, err)
	require.Len(t, comments, 3)

	// Remove the middle comment ("two").
	comments, err = svc.DeleteComment(alice, post.ID, comments[1].ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "three", comments[0].Text)
	assert.Equal(t, "one", comments[1].Text)
}

func TestDeleteComment_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil, nil)

	alice := seedUser(t, db, "Alice", "alice@x.com")

	post, err := svc.CreatePost(alice, "hello world", "")
	require.NoError(t, err)

	_, err = svc.DeleteComment(alice, post.ID, "no-such-comment")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.DeleteComment(alice, "no-such-post", "whatever")
	assert.ErrorIs(t, err, ErrNotFound)
}
