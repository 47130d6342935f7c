package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"kudosboard/pkg/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardWithCards() client.Board {
	now := time.Now()
	return client.Board{
		ID:        1,
		Title:     "Q3 Wins",
		Category:  "celebration",
		Author:    "Ann",
		CreatedAt: now,
		Cards: []client.Card{
			{ID: 7, BoardID: 1, Message: "great job", Author: "Bob", Upvotes: 2},
			{ID: 8, BoardID: 1, Message: "well done", Author: "Cat"},
		},
	}
}

func TestBoardDetail_LoadReplacesMirror(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(boardWithCards())
	}))
	defer srv.Close()

	detail := client.NewBoardDetail(client.New(srv.URL), 1)

	// Act
	_, loaded := detail.Board()
	assert.False(t, loaded)
	require.NoError(t, detail.Load(context.Background()))

	// Assert
	board, loaded := detail.Board()
	assert.True(t, loaded)
	assert.Len(t, board.Cards, 2)
}

func TestBoardDetail_UpvoteCard_AppliesServerCard(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/boards/1" {
			json.NewEncoder(w).Encode(boardWithCards())
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Card upvoted successfully",
			"card":    client.Card{ID: 7, BoardID: 1, Message: "great job", Author: "Bob", Upvotes: 3},
		})
	}))
	defer srv.Close()

	detail := client.NewBoardDetail(client.New(srv.URL), 1)
	require.NoError(t, detail.Load(context.Background()))

	// Act
	card, err := detail.UpvoteCard(context.Background(), 7)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, card.Upvotes)

	board, _ := detail.Board()
	assert.Equal(t, 3, board.Cards[0].Upvotes)
	assert.Equal(t, 0, board.Cards[1].Upvotes)
}

func TestBoardDetail_SecondUpvoteRejectedWhileInFlight(t *testing.T) {
	// Arrange: the first upvote blocks inside the server until released
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/boards/1" {
			json.NewEncoder(w).Encode(boardWithCards())
			return
		}
		close(entered)
		<-release
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Card upvoted successfully",
			"card":    client.Card{ID: 7, BoardID: 1, Message: "great job", Author: "Bob", Upvotes: 3},
		})
	}))
	defer srv.Close()

	detail := client.NewBoardDetail(client.New(srv.URL), 1)
	require.NoError(t, detail.Load(context.Background()))

	firstDone := make(chan error, 1)
	go func() {
		_, err := detail.UpvoteCard(context.Background(), 7)
		firstDone <- err
	}()
	<-entered

	// Act: the card reads busy and a second submission is rejected
	assert.True(t, detail.Busy(7))
	_, err := detail.UpvoteCard(context.Background(), 7)
	assert.ErrorIs(t, err, client.ErrOperationInFlight)

	// A different card is unaffected by card 7's flight
	assert.False(t, detail.Busy(8))

	close(release)
	require.NoError(t, <-firstDone)

	// Assert: the flag cleared once the operation finished
	assert.False(t, detail.Busy(7))
}

func TestBoardDetail_GuardClearsOnFailure(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/boards/1" {
			json.NewEncoder(w).Encode(boardWithCards())
			return
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Card not found"})
	}))
	defer srv.Close()

	detail := client.NewBoardDetail(client.New(srv.URL), 1)
	require.NoError(t, detail.Load(context.Background()))

	// Act
	_, err := detail.PinCard(context.Background(), 7)

	// Assert: failure surfaced, guard released for the next attempt
	require.Error(t, err)
	assert.True(t, client.NotFound(err))
	assert.False(t, detail.Busy(7))
}

func TestBoardDetail_PollSurvivesErrorsAndStopsOnCancel(t *testing.T) {
	// Arrange: first fetch succeeds, later ones fail
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			json.NewEncoder(w).Encode(boardWithCards())
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to fetch board"})
	}))
	defer srv.Close()

	detail := client.NewBoardDetail(client.New(srv.URL), 1)
	require.NoError(t, detail.Load(context.Background()))

	pollErrs := make(chan error, 16)
	detail.OnError = func(err error) { pollErrs <- err }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		detail.Poll(ctx, 10*time.Millisecond)
		close(done)
	}()

	// Act: wait for at least one failed background poll
	select {
	case err := <-pollErrs:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("no poll error delivered")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poll loop did not stop on cancel")
	}

	// Assert: the mirror kept its last-known-good state
	board, loaded := detail.Board()
	assert.True(t, loaded)
	assert.Equal(t, "Q3 Wins", board.Title)
}

func TestBoardDetail_AddAndDeleteCard(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(boardWithCards())
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(client.Card{ID: 9, BoardID: 1, Message: "fresh", Author: "Dan"})
		case r.Method == http.MethodDelete:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"message": "Card deleted successfully",
				"card":    client.Card{ID: 8, BoardID: 1, Message: "well done", Author: "Cat"},
			})
		}
	}))
	defer srv.Close()

	detail := client.NewBoardDetail(client.New(srv.URL), 1)
	require.NoError(t, detail.Load(context.Background()))

	// Act
	card, err := detail.AddCard(context.Background(), client.CardInput{Message: "fresh", Author: "Dan"})
	require.NoError(t, err)
	assert.Equal(t, uint(9), card.ID)

	require.NoError(t, detail.DeleteCard(context.Background(), 8))

	// Assert: new card leads, deleted card gone
	board, _ := detail.Board()
	require.Len(t, board.Cards, 2)
	assert.Equal(t, uint(9), board.Cards[0].ID)
	assert.Equal(t, uint(7), board.Cards[1].ID)
}
