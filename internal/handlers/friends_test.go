package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/campusnet/internal/models"
	"github.com/thereayou/campusnet/internal/services"
)

type fakeFriends struct {
	err error
}

func (f *fakeFriends) SendRequest(_ context.Context, fromID, toID uuid.UUID) (*models.FriendRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.FriendRequest{ID: uuid.New(), FromID: fromID, ToID: toID, Status: models.FriendRequestPending}, nil
}

func (f *fakeFriends) Accept(_ context.Context, requestID, userID uuid.UUID) (*models.FriendRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.FriendRequest{ID: requestID, ToID: userID, Status: models.FriendRequestAccepted}, nil
}

func (f *fakeFriends) Decline(_ context.Context, requestID, userID uuid.UUID) (*models.FriendRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.FriendRequest{ID: requestID, ToID: userID, Status: models.FriendRequestDeclined}, nil
}

func (f *fakeFriends) ListSent(_ context.Context, fromID uuid.UUID) ([]models.FriendRequest, error) {
	return []models.FriendRequest{{
		ID:     uuid.New(),
		FromID: fromID,
		Status: models.FriendRequestPending,
		To:     models.User{ID: uuid.New(), Name: "Bob"},
	}}, nil
}

func friendRouter(userID uuid.UUID, svc *fakeFriends) http.Handler {
	r := testRouter(userID)
	h := NewFriendHandler(svc, discardLogger())
	r.POST("/api/friends/requests/:userId", h.SendRequest)
	r.PUT("/api/friends/requests/:id/accept", h.Accept)
	r.PUT("/api/friends/requests/:id/decline", h.Decline)
	r.GET("/api/friends/requests/sent", h.ListSent)
	return r
}

func TestFriendHandler_Lifecycle(t *testing.T) {
	req := require.New(t)
	me := uuid.New()
	r := friendRouter(me, &fakeFriends{})

	target := uuid.New()
	w, body := do(t, r, http.MethodPost, "/api/friends/requests/"+target.String())
	req.Equal(http.StatusCreated, w.Code)
	req.Equal(target.String(), body["toId"])
	req.Equal("pending", body["status"])
	req.NotContains(body, "to")

	w, body = do(t, r, http.MethodPut, "/api/friends/requests/"+uuid.NewString()+"/accept")
	req.Equal(http.StatusOK, w.Code)
	req.Equal("accepted", body["status"])

	w, body = do(t, r, http.MethodPut, "/api/friends/requests/"+uuid.NewString()+"/decline")
	req.Equal(http.StatusOK, w.Code)
	req.Equal("declined", body["status"])

	w, body = do(t, r, http.MethodGet, "/api/friends/requests/sent")
	req.Equal(http.StatusOK, w.Code)
	sent := body["requests"].([]any)
	req.Len(sent, 1)
	req.Equal("Bob", sent[0].(map[string]any)["to"].(map[string]any)["name"])
}

func TestFriendHandler_ErrorKinds(t *testing.T) {
	cases := map[services.Kind]int{
		services.KindValidation:   http.StatusBadRequest,
		services.KindNotFound:     http.StatusNotFound,
		services.KindUnauthorized: http.StatusForbidden,
	}
	for kind, status := range cases {
		t.Run(string(kind), func(t *testing.T) {
			svc := &fakeFriends{err: &services.Error{Kind: kind, Op: "accept friend request"}}
			r := friendRouter(uuid.New(), svc)

			w, body := do(t, r, http.MethodPut, "/api/friends/requests/"+uuid.NewString()+"/accept")
			require.Equal(t, status, w.Code)
			require.Equal(t, string(kind), body["kind"])
		})
	}
}
