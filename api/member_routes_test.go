package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	appitem "shop/application/item"
	appmember "shop/application/member"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberJoinUpdateAndList(t *testing.T) {
	s := newServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/members",
		`{"name":"Jieun","city":"Seoul","street":"street","zipcode":"12345"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var first appmember.JoinResponse
	require.NoError(t, json.Unmarshal(env.Data, &first))
	require.NotZero(t, first.ID)

	rec, env = s.do(t, http.MethodPost, "/api/v2/members", `{"name":"Sumin"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var second appmember.JoinResponse
	require.NoError(t, json.Unmarshal(env.Data, &second))
	assert.Greater(t, second.ID, first.ID)

	rec, env = s.do(t, http.MethodPut, "/api/v2/members/"+itoa(second.ID), `{"name":"Minji"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated appmember.UpdateResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, appmember.UpdateResponse{ID: second.ID, Name: "Minji"}, updated)

	rec, env = s.do(t, http.MethodGet, "/api/v1/members", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var full []appmember.MemberDto
	require.NoError(t, json.Unmarshal(env.Data, &full))
	require.Len(t, full, 2)
	assert.Equal(t, "Jieun", full[0].Name)
	assert.Equal(t, "Seoul", full[0].Address.City)
	assert.Equal(t, "Minji", full[1].Name)
	assert.Empty(t, full[1].Address.City)

	rec, _ = s.do(t, http.MethodGet, "/api/v2/members", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var names struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
	assert.Equal(t, []map[string]any{{"name": "Jieun"}, {"name": "Minji"}}, names.Data)
}

func TestMemberErrors(t *testing.T) {
	s := newServer(t)
	memberID, _ := s.seed(t)
	rec, _ := s.do(t, http.MethodPost, "/api/v2/members", `{"name":"Sumin"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{
			name: "duplicate v1 join", method: http.MethodPost, path: "/api/v1/members",
			body: `{"name":"Jieun","city":"Busan"}`, status: http.StatusConflict, code: "DUPLICATE_MEMBER",
		},
		{
			name: "duplicate v2 join", method: http.MethodPost, path: "/api/v2/members",
			body: `{"name":"Jieun"}`, status: http.StatusConflict, code: "DUPLICATE_MEMBER",
		},
		{
			name: "missing name", method: http.MethodPost, path: "/api/v2/members",
			body: `{}`, status: http.StatusBadRequest, code: "BAD_REQUEST",
		},
		{
			name: "rename to taken name", method: http.MethodPut, path: "/api/v2/members/" + itoa(memberID),
			body: `{"name":"Sumin"}`, status: http.StatusConflict, code: "DUPLICATE_MEMBER",
		},
		{
			name: "rename unknown member", method: http.MethodPut, path: "/api/v2/members/999",
			body: `{"name":"Minji"}`, status: http.StatusNotFound, code: "MEMBER_NOT_FOUND",
		},
		{
			name: "bad member id", method: http.MethodPut, path: "/api/v2/members/abc",
			body: `{"name":"Minji"}`, status: http.StatusBadRequest, code: "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, env.Error)
		})
	}

	rec, env := s.do(t, http.MethodGet, "/api/v1/members", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var members []appmember.MemberDto
	require.NoError(t, json.Unmarshal(env.Data, &members))
	require.Len(t, members, 2)
	assert.Equal(t, "Jieun", members[0].Name)
	assert.Equal(t, "Sumin", members[1].Name)
}

func TestItemList(t *testing.T) {
	s := newServer(t)
	memberID, itemID := s.seed(t)

	rec, _ := s.do(t, http.MethodPost, "/api/v1/orders",
		`{"memberId":`+itoa(memberID)+`,"itemId":`+itoa(itemID)+`,"count":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/api/v1/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []appitem.ItemDto
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, itemID, items[0].ID)
	assert.Equal(t, "JPA1 BOOK", items[0].Name)
	assert.Equal(t, 3, items[0].StockQuantity)
	assert.Equal(t, "B", items[0].Kind)
	assert.Equal(t, "book by Kim (isbn 1)", items[0].Description)
}
