package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"unify/handlers"
	"unify/models"
	"unify/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, h *handlers.Handler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return routes.SetupRouter(h)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func clubHandler(users *fakeUsers, clubs *fakeClubs) *handlers.Handler {
	return &handlers.Handler{Users: users, Clubs: clubs, Media: &fakeMedia{}}
}

func TestFollowUnfollowScenario(t *testing.T) {
	users := newFakeUsers(&models.User{ExternalID: "u1", Username: "dana", ClubsFollowed: []string{"1"}, ClubsJoined: 1})
	clubs := newFakeClubs(&models.Club{ClubID: "3", Name: "Robotics", Followers: 10})
	router := newTestRouter(t, clubHandler(users, clubs))

	// Follow: counter 10 -> 11, set gains "3".
	w := doJSON(t, router, http.MethodPut, "/api/clubs", gin.H{"user_id": "u1", "club_id": "3", "action": "add"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["isFollowed"])
	assert.EqualValues(t, 11, body["followers"])
	assert.ElementsMatch(t, []string{"1", "3"}, users.users["u1"].ClubsFollowed)
	assert.Equal(t, 2, users.users["u1"].ClubsJoined)

	// Repeat follow is a no-op: counter increases by exactly 1 overall.
	w = doJSON(t, router, http.MethodPut, "/api/clubs", gin.H{"user_id": "u1", "club_id": "3", "action": "add"})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.EqualValues(t, 11, body["followers"])
	assert.Equal(t, 2, users.users["u1"].ClubsJoined)

	// Unfollow: counter 11 -> 10, set loses "3".
	w = doJSON(t, router, http.MethodPut, "/api/clubs", gin.H{"user_id": "u1", "club_id": "3", "action": "remove"})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, false, body["isFollowed"])
	assert.EqualValues(t, 10, body["followers"])
	assert.ElementsMatch(t, []string{"1"}, users.users["u1"].ClubsFollowed)

	// Re-unfollow is a no-op, counter stays 10.
	w = doJSON(t, router, http.MethodPut, "/api/clubs", gin.H{"user_id": "u1", "club_id": "3", "action": "remove"})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.EqualValues(t, 10, body["followers"])
	assert.Equal(t, 10, clubs.clubs["3"].Followers)
}

func TestMembershipRejectsImplicitToggle(t *testing.T) {
	users := newFakeUsers(&models.User{ExternalID: "u1"})
	clubs := newFakeClubs(&models.Club{ClubID: "3", Followers: 10})
	router := newTestRouter(t, clubHandler(users, clubs))

	w := doJSON(t, router, http.MethodPut, "/api/clubs", gin.H{"user_id": "u1", "club_id": "3", "action": "toggle"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMembershipUnknownUserAndClub(t *testing.T) {
	users := newFakeUsers(&models.User{ExternalID: "u1"})
	clubs := newFakeClubs(&models.Club{ClubID: "3", Followers: 10})
	router := newTestRouter(t, clubHandler(users, clubs))

	w := doJSON(t, router, http.MethodPut, "/api/clubs", gin.H{"user_id": "ghost", "club_id": "3", "action": "add"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/clubs", gin.H{"user_id": "u1", "club_id": "99", "action": "add"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, users.users["u1"].ClubsFollowed)
}

func TestMembershipRevertsCounterWhenUserSaveFails(t *testing.T) {
	users := newFakeUsers(&models.User{ExternalID: "u1"})
	users.failSaveClubs = true
	clubs := newFakeClubs(&models.Club{ClubID: "3", Followers: 10})
	router := newTestRouter(t, clubHandler(users, clubs))

	w := doJSON(t, router, http.MethodPut, "/api/clubs", gin.H{"user_id": "u1", "club_id": "3", "action": "add"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 10, clubs.clubs["3"].Followers)
	assert.Empty(t, users.users["u1"].ClubsFollowed)
}

func TestGetClubsEnrichment(t *testing.T) {
	users := newFakeUsers(&models.User{ExternalID: "u1", ClubsFollowed: []string{"2"}, ClubsJoined: 1})
	clubs := newFakeClubs(
		&models.Club{ClubID: "1", Name: "Drama", Followers: 4},
		&models.Club{ClubID: "2", Name: "Chess", Followers: 7},
	)
	router := newTestRouter(t, clubHandler(users, clubs))

	w := doJSON(t, router, http.MethodGet, "/api/clubs?user_id=u1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var views []models.ClubView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 2)
	assert.False(t, views[0].IsFollowed)
	assert.True(t, views[1].IsFollowed)

	// Unauthenticated requester gets false everywhere.
	w = doJSON(t, router, http.MethodGet, "/api/clubs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	for _, v := range views {
		assert.False(t, v.IsFollowed)
	}
}

func TestGetFollowedClubs(t *testing.T) {
	users := newFakeUsers(&models.User{ExternalID: "u1", ClubsFollowed: []string{"1", "4"}, ClubsJoined: 2})
	router := newTestRouter(t, clubHandler(users, newFakeClubs()))

	w := doJSON(t, router, http.MethodGet, "/api/clubs/followed?user_id=u1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var followed []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &followed))
	assert.Equal(t, []string{"1", "4"}, followed)

	w = doJSON(t, router, http.MethodGet, "/api/clubs/followed?user_id=ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
