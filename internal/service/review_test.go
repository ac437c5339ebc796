package service

import (
	"context"
	"testing"

	"github.com/Skotchmaster/bookstore/internal/events"
	"github.com/Skotchmaster/bookstore/internal/testutil"
	"github.com/Skotchmaster/bookstore/internal/transport"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	john := testutil.User(t, env.Repo, "John Doe", "john@example.com")
	jane := testutil.User(t, env.Repo, "Jane Smith", "jane@example.com")
	book := testutil.Book(t, env.Repo, "To Kill a Mockingbird", "12.99", 50)

	_, err := env.Reviews.Create(ctx, john.ID, uuid.New(), transport.ReviewRequest{Rating: 5})
	requireKind(t, err, ErrNotFound, "Book not found")

	_, err = env.Reviews.Create(ctx, john.ID, book.ID, transport.ReviewRequest{Rating: 6})
	requireKind(t, err, ErrValidation, "Rating must be between 1 and 5")

	review, err := env.Reviews.Create(ctx, john.ID, book.ID, transport.ReviewRequest{Rating: 5, Comment: "A timeless classic."})
	require.NoError(t, err)
	require.NotNil(t, review.User)
	assert.Equal(t, "John Doe", review.User.Name)

	_, err = env.Reviews.Create(ctx, john.ID, book.ID, transport.ReviewRequest{Rating: 4})
	requireKind(t, err, ErrConflict, "You have already reviewed this book")

	_, err = env.Reviews.Create(ctx, jane.ID, book.ID, transport.ReviewRequest{Rating: 4, Comment: "Moving."})
	require.NoError(t, err)

	list, err := env.Reviews.ListForBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = env.Reviews.Update(ctx, jane.ID, review.ID, transport.PatchReviewRequest{Rating: intp(1)})
	requireKind(t, err, ErrForbidden, "You are not authorized to update this review")

	_, err = env.Reviews.Update(ctx, john.ID, uuid.New(), transport.PatchReviewRequest{Rating: intp(1)})
	requireKind(t, err, ErrNotFound, "Review not found")

	comment := "Still great."
	updated, err := env.Reviews.Update(ctx, john.ID, review.ID, transport.PatchReviewRequest{Rating: intp(4), Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, comment, updated.Comment)

	err = env.Reviews.Delete(ctx, jane.ID, review.ID)
	requireKind(t, err, ErrForbidden, "You are not authorized to delete this review")

	require.NoError(t, env.Reviews.Delete(ctx, john.ID, review.ID))
	err = env.Reviews.Delete(ctx, john.ID, review.ID)
	requireKind(t, err, ErrNotFound, "Review not found")

	assert.Equal(t, []string{
		events.ReviewCreated, events.ReviewCreated, events.ReviewUpdated, events.ReviewDeleted,
	}, env.Events.Types())
}
