package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/anonto42/lms/backend/internal/models"
	"github.com/anonto42/lms/backend/internal/services"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func voteContext(body string) (*CommunityHandler, *stubVoteCaster, func() (int, map[string]interface{}, error)) {
	caster := &stubVoteCaster{}
	h := NewCommunityHandler(&stubPostRepo{}, caster, &stubActivity{})
	return h, caster, func() (int, map[string]interface{}, error) {
		c, rec := newContext(http.MethodPost, "/", body, "u1")
		c.SetParamNames("postId")
		c.SetParamValues(primitive.NewObjectID().Hex())
		err := h.Vote(c)
		var out map[string]interface{}
		if rec.Body.Len() > 0 {
			_ = json.Unmarshal(rec.Body.Bytes(), &out)
		}
		return rec.Code, out, err
	}
}

func TestVoteReturnsUpdatedPost(t *testing.T) {
	_, caster, do := voteContext(`{"voteType":"upvote"}`)
	caster.result = &services.VoteResult{Post: &models.Post{Title: "q", Upvotes: 10, Highlighted: true}}

	code, body, err := do()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, models.VoteUp, caster.got)
	post := body["post"].(map[string]interface{})
	require.EqualValues(t, 10, post["upvotes"])
	require.Equal(t, true, post["highlighted"])
	require.NotContains(t, body, "alreadyVoted")
}

func TestVoteAlreadyVotedIsSuccess(t *testing.T) {
	_, caster, do := voteContext(`{"voteType":"downvote"}`)
	caster.result = &services.VoteResult{Post: &models.Post{}, AlreadyVoted: true}

	code, body, err := do()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["alreadyVoted"])
	require.Equal(t, "Already voted", body["message"])
}

func TestVoteErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "missing vote type", body: `{}`, status: http.StatusBadRequest},
		{name: "unknown vote type", body: `{"voteType":"meh"}`, err: services.ErrInvalidVoteType, status: http.StatusBadRequest},
		{name: "missing post", body: `{"voteType":"upvote"}`, err: services.ErrPostNotFound, status: http.StatusNotFound},
		{name: "store failure", body: `{"voteType":"upvote"}`, err: errors.New("apply vote: write conflict"), status: http.StatusInternalServerError},
		{name: "malformed body", body: `{`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, caster, do := voteContext(tt.body)
			caster.err = tt.err
			_, _, err := do()
			require.Equal(t, tt.status, httpStatus(err))
		})
	}
}

func TestCreatePostLogsCommunityActivity(t *testing.T) {
	posts := &stubPostRepo{}
	activity := &stubActivity{}
	h := NewCommunityHandler(posts, &stubVoteCaster{}, activity)

	c, rec := newContext(http.MethodPost, "/", `{"title":"Help","content":"Why nil map panic?","link":"https://go.dev"}`, "u1")
	require.NoError(t, h.CreatePost(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, posts.created, 1)
	require.Equal(t, "u1", posts.created[0].AuthorID)
	require.Equal(t, "https://go.dev", *posts.created[0].Link)
	require.Len(t, activity.logged, 1)
	require.Equal(t, models.ActionCommunityPost, activity.logged[0].action)
	require.Nil(t, activity.logged[0].topicID)
}

func TestGetPostNotFound(t *testing.T) {
	h := NewCommunityHandler(&stubPostRepo{}, &stubVoteCaster{}, &stubActivity{})
	c, _ := newContext(http.MethodGet, "/", "", "u1")
	c.SetParamNames("postId")
	c.SetParamValues("nope")
	require.Equal(t, http.StatusNotFound, httpStatus(h.GetPost(c)))
}

func TestVoteRequiresAuthentication(t *testing.T) {
	h := NewCommunityHandler(&stubPostRepo{}, &stubVoteCaster{}, &stubActivity{})
	c, _ := newContext(http.MethodPost, "/", `{"voteType":"upvote"}`, "")
	require.Equal(t, http.StatusUnauthorized, httpStatus(h.Vote(c)))
}
