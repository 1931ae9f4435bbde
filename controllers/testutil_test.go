package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/mohit-gami/farmley-api/middlewares"
	"github.com/mohit-gami/farmley-api/models"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database so every pooled connection sees the
	// same in-memory store.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestRouter(db *gorm.DB, idem IdempotencyStore) *gin.Engine {
	server := gin.New()

	server.POST("/auth/signup", Signup(db))
	server.POST("/auth/login", Login(db))

	server.GET("/products", GetProducts(db))
	server.GET("/products/:id", GetProduct(db))

	cart := server.Group("/cart", middlewares.RequireAuth())
	{
		cart.GET("", GetCart(db))
		cart.POST("", AddToCart(db))
		cart.PUT("/:productId", UpdateCartLine(db))
		cart.DELETE("/:productId", RemoveCartLine(db))
		cart.DELETE("", ClearCart(db))
	}

	orders := server.Group("/orders", middlewares.RequireAuth())
	{
		orders.POST("/checkout", Checkout(db, idem))
		orders.GET("", GetUserOrders(db))
		orders.GET("/:orderId", GetOrder(db))
	}

	admin := server.Group("/admin/orders", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("", GetOrders(db))
		admin.PATCH("/:orderId/status", UpdateOrderStatus(db))
	}

	return server
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) (models.User, string) {
	t.Helper()

	hashed, err := hashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Fullname: "Test User",
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	token, err := generateJWT(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	return user, token
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()

	product := models.Product{
		Name:     name,
		Category: "Dry Fruits",
		Price:    price,
		Stock:    stock,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product %s: %v", name, err)
	}
	return product
}

func performRequest(router *gin.Engine, method, path string, body any, token string, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type cartListResponse struct {
	Cart     []models.CartEntry `json:"cart"`
	Subtotal float64            `json:"subtotal"`
}

func fetchCart(t *testing.T, router *gin.Engine, token string) cartListResponse {
	t.Helper()

	w := performRequest(router, http.MethodGet, "/cart", nil, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list cart returned %d: %s", w.Code, w.Body.String())
	}

	var resp cartListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode cart response: %v", err)
	}
	return resp
}
