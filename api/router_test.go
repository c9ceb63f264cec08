package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shop/api"
	"shop/api/health"
	apiitem "shop/api/item"
	apimember "shop/api/member"
	apiorder "shop/api/order"
	appitem "shop/application/item"
	appmember "shop/application/member"
	apporder "shop/application/order"
	"shop/config"
	"shop/domain/item"
	"shop/domain/member"
	"shop/infrastructure/persistence/mysql"
	"shop/infrastructure/persistence/sqlitetest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	RequestID string          `json:"request_id"`
}

type server struct {
	db      *gorm.DB
	engine  *gin.Engine
	members *mysql.MemberRepository
	items   *mysql.ItemRepository
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := sqlitetest.Open(t)
	cfg := &config.Config{
		App: config.AppConfig{Name: "shop", Version: "test", Env: "test"},
		CORS: config.CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST"},
			AllowHeaders: []string{"Content-Type"},
			MaxAge:       600,
		},
	}

	members := mysql.NewMemberRepository(db)
	items := mysql.NewItemRepository(db, 0)
	orders := mysql.NewOrderRepository(db, mysql.OrderRepositoryOptions{})
	uow := mysql.NewUnitOfWork(db)
	service := apporder.NewApplicationService(orders, members, items, uow)
	queries := apporder.NewQueryService(orders, mysql.NewOrderQueryRepository(db), uow)

	router := api.NewRouter(cfg,
		health.NewController(cfg, db),
		apimember.NewController(appmember.NewApplicationService(members, uow)),
		apiitem.NewController(appitem.NewApplicationService(items, uow)),
		apiorder.NewController(service, queries),
		apiorder.NewSimpleController(queries),
	)
	router.SetupRoutes()
	gin.SetMode(gin.TestMode)

	return &server{db: db, engine: router.GetEngine(), members: members, items: items}
}

func (s *server) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func (s *server) seed(t *testing.T) (memberID, itemID int64) {
	t.Helper()
	ctx := context.Background()
	m, err := member.NewMember("Jieun", member.NewAddress("Seoul", "street", "12345"))
	require.NoError(t, err)
	require.NoError(t, s.members.Save(ctx, m))
	it, err := item.NewItem("JPA1 BOOK", 1000, 5, item.Book{Author: "Kim", ISBN: "1"})
	require.NoError(t, err)
	require.NoError(t, s.items.Save(ctx, it))
	return m.ID(), it.ID()
}

func TestPlaceAndCancelOrder(t *testing.T) {
	s := newServer(t)
	memberID, itemID := s.seed(t)

	body := `{"memberId":` + itoa(memberID) + `,"itemId":` + itoa(itemID) + `,"count":3}`
	rec, env := s.do(t, http.MethodPost, "/api/v1/orders", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)
	assert.Equal(t, env.RequestID, rec.Header().Get("X-Request-ID"))

	var placed apporder.PlaceOrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &placed))
	require.NotZero(t, placed.OrderID)

	rec, env = s.do(t, http.MethodGet, "/api/v3/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []apporder.OrderDto
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, int64(3000), orders[0].TotalPrice)
	assert.Equal(t, "ORDERED", orders[0].OrderStatus)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/orders/"+itoa(placed.OrderID)+"/cancel", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(t, http.MethodPost, "/api/v1/orders/"+itoa(placed.OrderID)+"/cancel", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "INVALID_ORDER_STATE", env.Error)
	assert.False(t, env.Success)

	rec, env = s.do(t, http.MethodGet, "/api/v1/orders?orderStatus=CANCELLED", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var found []apporder.SimpleOrderDto
	require.NoError(t, json.Unmarshal(env.Data, &found))
	require.Len(t, found, 1)
	assert.Equal(t, placed.OrderID, found[0].OrderID)
}

func TestOrderErrors(t *testing.T) {
	s := newServer(t)
	memberID, itemID := s.seed(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{
			name: "out of stock", method: http.MethodPost, path: "/api/v1/orders",
			body:   `{"memberId":` + itoa(memberID) + `,"itemId":` + itoa(itemID) + `,"count":6}`,
			status: http.StatusConflict, code: "OUT_OF_STOCK",
		},
		{
			name: "unknown member", method: http.MethodPost, path: "/api/v1/orders",
			body:   `{"memberId":999,"itemId":` + itoa(itemID) + `,"count":1}`,
			status: http.StatusNotFound, code: "MEMBER_NOT_FOUND",
		},
		{
			name: "unknown item", method: http.MethodPost, path: "/api/v1/orders",
			body:   `{"memberId":` + itoa(memberID) + `,"itemId":999,"count":1}`,
			status: http.StatusNotFound, code: "ITEM_NOT_FOUND",
		},
		{
			name: "zero count", method: http.MethodPost, path: "/api/v1/orders",
			body:   `{"memberId":` + itoa(memberID) + `,"itemId":` + itoa(itemID) + `,"count":0}`,
			status: http.StatusBadRequest, code: "BAD_REQUEST",
		},
		{
			name: "malformed body", method: http.MethodPost, path: "/api/v1/orders",
			body: `{"memberId":`, status: http.StatusBadRequest, code: "BAD_REQUEST",
		},
		{
			name: "unknown order", method: http.MethodPost, path: "/api/v1/orders/999/cancel",
			status: http.StatusNotFound, code: "ORDER_NOT_FOUND",
		},
		{
			name: "bad order id", method: http.MethodPost, path: "/api/v1/orders/abc/cancel",
			status: http.StatusBadRequest, code: "BAD_REQUEST",
		},
		{
			name: "bad status filter", method: http.MethodGet, path: "/api/v1/orders?orderStatus=SHIPPED",
			status: http.StatusBadRequest, code: "VALIDATION_ERROR",
		},
		{
			name: "negative offset", method: http.MethodGet, path: "/api/v3.1/orders?offset=-1",
			status: http.StatusBadRequest, code: "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, env.Error)
			assert.Equal(t, tt.status, env.Code)
		})
	}

	it, err := s.items.FindOne(context.Background(), itemID)
	require.NoError(t, err)
	assert.Equal(t, 5, it.StockQuantity(), "failed orders leave stock unchanged")
}

func TestReadPaths(t *testing.T) {
	s := newServer(t)
	memberID, itemID := s.seed(t)
	for i := 0; i < 3; i++ {
		rec, _ := s.do(t, http.MethodPost, "/api/v1/orders",
			`{"memberId":`+itoa(memberID)+`,"itemId":`+itoa(itemID)+`,"count":1}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	for _, path := range []string{"/api/v2/orders", "/api/v3/orders"} {
		rec, env := s.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		var orders []apporder.OrderDto
		require.NoError(t, json.Unmarshal(env.Data, &orders))
		assert.Len(t, orders, 3, path)
	}

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v3.1/orders?offset=1&limit=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var paged struct {
		Data       []apporder.OrderDto `json:"data"`
		Pagination struct {
			Offset int `json:"offset"`
			Limit  int `json:"limit"`
			Count  int `json:"count"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &paged))
	require.Len(t, paged.Data, 1)
	assert.Equal(t, 1, paged.Pagination.Offset)
	assert.Equal(t, 1, paged.Pagination.Count)

	var summaries [][]apporder.SimpleOrderDto
	for _, path := range []string{"/api/v2/simple-orders", "/api/v3/simple-orders", "/api/v4/simple-orders"} {
		rec, env := s.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		var orders []apporder.SimpleOrderDto
		require.NoError(t, json.Unmarshal(env.Data, &orders))
		require.Len(t, orders, 3, path)
		assert.Equal(t, "Jieun", orders[0].MemberName)
		summaries = append(summaries, orders)
	}
	assert.ElementsMatch(t, summaries[1], summaries[0])
	assert.Equal(t, summaries[1], summaries[2])
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	for _, path := range []string{"/api/v1/health", "/api/v1/health/live", "/api/v1/health/ready"} {
		rec := httptest.NewRecorder()
		s.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	var body health.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "sqlite", body.Driver)
	assert.Equal(t, "healthy", body.Checks["database"].Status)
	assert.Equal(t, "healthy", body.Checks["schema"].Status)
}

func TestHealth_MissingTable(t *testing.T) {
	s := newServer(t)
	require.NoError(t, s.db.Migrator().DropTable("order_items"))

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body health.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "healthy", body.Checks["database"].Status)
	assert.Equal(t, "unhealthy", body.Checks["schema"].Status)
	assert.Contains(t, body.Checks["schema"].Message, "order_items")

	rec = httptest.NewRecorder()
	s.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "schema")

	rec = httptest.NewRecorder()
	s.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDIsPropagated(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v3/orders", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "req-123", env.RequestID)
}
