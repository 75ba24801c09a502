package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/cumarfaruur/safari-pos-backend/internal/auth"
	"github.com/cumarfaruur/safari-pos-backend/internal/models"
	"github.com/cumarfaruur/safari-pos-backend/internal/validation"
)

// accountServiceStub satisfies AccountService with per-test functions.
type accountServiceStub struct {
	createFn      func(ctx context.Context, account *models.Account) (*models.Account, error)
	findByEmailFn func(ctx context.Context, email string) (*models.Account, error)
	listFn        func(ctx context.Context) ([]models.Account, error)
	getByIDFn     func(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	updateByIDFn  func(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Account, error)
	deleteByIDFn  func(ctx context.Context, id primitive.ObjectID) error
}

func (s *accountServiceStub) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	return s.createFn(ctx, account)
}

func (s *accountServiceStub) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.findByEmailFn(ctx, email)
}

func (s *accountServiceStub) List(ctx context.Context) ([]models.Account, error) {
	return s.listFn(ctx)
}

func (s *accountServiceStub) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	return s.getByIDFn(ctx, id)
}

func (s *accountServiceStub) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Account, error) {
	return s.updateByIDFn(ctx, id, fields)
}

func (s *accountServiceStub) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteByIDFn(ctx, id)
}

var testIssuer = auth.NewTokenIssuer("test-secret", 24*time.Hour)

func newTestAccountHandler(svc AccountService) *AccountHandler {
	return NewAccountHandler(svc, "Waiter", validation.New(), testIssuer, false, zap.NewNop())
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return body
}

func TestAccountSignup(t *testing.T) {
	signupBody := `{"fullname":"Amina Hassan","email":"amina@restaurant.com","password":"123456","phone":"252611234567"}`

	t.Run("creates the account", func(t *testing.T) {
		var stored *models.Account
		svc := &accountServiceStub{
			findByEmailFn: func(ctx context.Context, email string) (*models.Account, error) {
				return nil, mongo.ErrNoDocuments
			},
			createFn: func(ctx context.Context, account *models.Account) (*models.Account, error) {
				account.ID = primitive.NewObjectID()
				now := time.Now()
				account.CreatedAt = now
				account.UpdatedAt = now
				stored = account
				return account, nil
			},
		}
		h := newTestAccountHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/waiter/signup", strings.NewReader(signupBody))
		rr := httptest.NewRecorder()
		h.Signup(rr, req)

		if rr.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201 (body %s)", rr.Code, rr.Body.String())
		}
		if stored == nil {
			t.Fatal("nothing was persisted")
		}
		if stored.Password == "123456" {
			t.Error("password stored as plaintext")
		}
		if !auth.CheckPassword("123456", stored.Password) {
			t.Error("stored digest does not verify against the password")
		}

		body := decodeEnvelope(t, rr)
		if body["success"] != true {
			t.Errorf("success = %v, want true", body["success"])
		}
		if body["message"] != "Your Account Has been Created" {
			t.Errorf("message = %v", body["message"])
		}
		result := body["result"].(map[string]interface{})
		if result["fullname"] != "Amina Hassan" || result["email"] != "amina@restaurant.com" {
			t.Errorf("result = %v", result)
		}
		if _, ok := result["password"]; ok {
			t.Error("password leaked into the response")
		}
		if cd, _ := result["createdDate"].(string); cd == "" {
			t.Error("formatted createdDate missing")
		}
		if ct, _ := result["createdTime"].(string); ct == "" {
			t.Error("formatted createdTime missing")
		}
	})

	t.Run("duplicate email conflicts without creating", func(t *testing.T) {
		created := false
		svc := &accountServiceStub{
			findByEmailFn: func(ctx context.Context, email string) (*models.Account, error) {
				return &models.Account{Email: email}, nil
			},
			createFn: func(ctx context.Context, account *models.Account) (*models.Account, error) {
				created = true
				return account, nil
			},
		}
		h := newTestAccountHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/waiter/signup", strings.NewReader(signupBody))
		rr := httptest.NewRecorder()
		h.Signup(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rr.Code)
		}
		if created {
			t.Error("a second account was created")
		}
		if body := decodeEnvelope(t, rr); body["message"] != "Waiter already exists!" {
			t.Errorf("message = %v", body["message"])
		}
	})

	t.Run("invalid payload persists nothing", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{name: "missing fullname", body: `{"email":"amina@restaurant.com","password":"123456","phone":"252611234567"}`},
			{name: "password with letters", body: `{"fullname":"Amina Hassan","email":"amina@restaurant.com","password":"12345a","phone":"252611234567"}`},
			{name: "email with bad domain", body: `{"fullname":"Amina Hassan","email":"amina@restaurant.org","password":"123456","phone":"252611234567"}`},
			{name: "phone too short", body: `{"fullname":"Amina Hassan","email":"amina@restaurant.com","password":"123456","phone":"1234"}`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc := &accountServiceStub{
					findByEmailFn: func(ctx context.Context, email string) (*models.Account, error) {
						t.Error("FindByEmail called for invalid payload")
						return nil, mongo.ErrNoDocuments
					},
					createFn: func(ctx context.Context, account *models.Account) (*models.Account, error) {
						t.Error("Create called for invalid payload")
						return account, nil
					},
				}
				h := newTestAccountHandler(svc)

				req := httptest.NewRequest(http.MethodPost, "/api/waiter/signup", strings.NewReader(tt.body))
				rr := httptest.NewRecorder()
				h.Signup(rr, req)

				if rr.Code != http.StatusUnauthorized {
					t.Errorf("status = %d, want 401", rr.Code)
				}
				if body := decodeEnvelope(t, rr); body["success"] != false {
					t.Errorf("success = %v, want false", body["success"])
				}
			})
		}
	})
}

func TestAccountLogin(t *testing.T) {
	digest, err := auth.HashPassword("123456")
	if err != nil {
		t.Fatal(err)
	}
	account := &models.Account{
		ID:       primitive.NewObjectID(),
		FullName: "Amina Hassan",
		Email:    "amina@restaurant.com",
		Password: digest,
		Phone:    "252611234567",
	}

	t.Run("issues a token with the account claims", func(t *testing.T) {
		svc := &accountServiceStub{
			findByEmailFn: func(ctx context.Context, email string) (*models.Account, error) {
				if email != account.Email {
					return nil, mongo.ErrNoDocuments
				}
				return account, nil
			},
		}
		h := newTestAccountHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/waiter/login", strings.NewReader(`{"email":"amina@restaurant.com","password":"123456"}`))
		rr := httptest.NewRecorder()
		h.Login(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
		}

		body := decodeEnvelope(t, rr)
		if body["message"] != "Login successfully" {
			t.Errorf("message = %v", body["message"])
		}
		tokenStr, _ := body["token"].(string)
		if tokenStr == "" {
			t.Fatal("no token in response")
		}

		claims, err := testIssuer.Parse(tokenStr)
		if err != nil {
			t.Fatalf("token does not parse: %v", err)
		}
		if claims.UserID != account.ID.Hex() || claims.Email != account.Email ||
			claims.FullName != account.FullName || claims.Phone != account.Phone {
			t.Errorf("claims = %+v, want account identity", claims)
		}

		cookies := rr.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Name != "Authorization" {
			t.Fatalf("cookies = %v, want one Authorization cookie", cookies)
		}
		if !strings.Contains(cookies[0].Value, tokenStr) {
			t.Error("cookie does not carry the token")
		}
	})

	t.Run("unknown email and wrong password report the same message", func(t *testing.T) {
		svc := &accountServiceStub{
			findByEmailFn: func(ctx context.Context, email string) (*models.Account, error) {
				if email != account.Email {
					return nil, mongo.ErrNoDocuments
				}
				return account, nil
			},
		}
		h := newTestAccountHandler(svc)

		requests := []string{
			`{"email":"nobody@restaurant.com","password":"123456"}`,
			`{"email":"amina@restaurant.com","password":"999999"}`,
		}

		var messages []string
		for _, payload := range requests {
			req := httptest.NewRequest(http.MethodPost, "/api/waiter/login", strings.NewReader(payload))
			rr := httptest.NewRecorder()
			h.Login(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rr.Code)
			}
			body := decodeEnvelope(t, rr)
			if token, ok := body["token"]; ok && token != "" {
				t.Error("token issued on failed login")
			}
			messages = append(messages, body["message"].(string))
		}

		if messages[0] != messages[1] || messages[0] != "Invalid credentials!" {
			t.Errorf("messages = %v, want identical %q", messages, "Invalid credentials!")
		}
	})
}

func TestAccountLogoutClearsCookie(t *testing.T) {
	h := newTestAccountHandler(&accountServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/api/waiter/logout", nil)
	rr := httptest.NewRecorder()
	h.Logout(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "Authorization" {
		t.Fatalf("cookies = %v, want one Authorization cookie", cookies)
	}
	if cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Error("cookie was not cleared")
	}
}

func TestAccountList(t *testing.T) {
	now := time.Now()
	svc := &accountServiceStub{
		listFn: func(ctx context.Context) ([]models.Account, error) {
			return []models.Account{
				{ID: primitive.NewObjectID(), FullName: "Amina Hassan", Email: "amina@restaurant.com", Phone: "252611234567", CreatedAt: now, UpdatedAt: now},
				{ID: primitive.NewObjectID(), FullName: "Cali Yusuf", Email: "cali@restaurant.com", Phone: "252617654321", CreatedAt: now, UpdatedAt: now},
			}, nil
		},
	}
	h := newTestAccountHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/waiter/all-waiters", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := decodeEnvelope(t, rr)
	if body["message"] != "Waiters fetched successfully" {
		t.Errorf("message = %v", body["message"])
	}
	data := body["data"].([]interface{})
	if len(data) != 2 {
		t.Fatalf("len(data) = %d, want 2", len(data))
	}
	first := data[0].(map[string]interface{})
	if first["fullname"] != "Amina Hassan" {
		t.Errorf("first record = %v", first)
	}
}

func TestAccountUpdate(t *testing.T) {
	id := primitive.NewObjectID()
	existing := &models.Account{
		ID:       id,
		FullName: "Amina Hassan",
		Email:    "amina@restaurant.com",
		Phone:    "252611234567",
	}

	t.Run("touches only the supplied fields", func(t *testing.T) {
		var gotFields bson.M
		svc := &accountServiceStub{
			getByIDFn: func(ctx context.Context, gotID primitive.ObjectID) (*models.Account, error) {
				if gotID != id {
					return nil, mongo.ErrNoDocuments
				}
				return existing, nil
			},
			updateByIDFn: func(ctx context.Context, gotID primitive.ObjectID, fields bson.M) (*models.Account, error) {
				gotFields = fields
				updated := *existing
				updated.FullName = fields["fullname"].(string)
				updated.UpdatedAt = time.Now()
				return &updated, nil
			},
		}
		h := newTestAccountHandler(svc)

		req := httptest.NewRequest(http.MethodPut, "/api/waiter/update-waiter/"+id.Hex(), strings.NewReader(`{"fullname":"Amina H. Warsame"}`))
		req = mux.SetURLVars(req, map[string]string{"id": id.Hex()})
		rr := httptest.NewRecorder()
		h.Update(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
		}
		if len(gotFields) != 1 {
			t.Errorf("fields = %v, want only fullname", gotFields)
		}
		if gotFields["fullname"] != "Amina H. Warsame" {
			t.Errorf("fullname = %v", gotFields["fullname"])
		}

		body := decodeEnvelope(t, rr)
		if body["message"] != "Waiter updated successfully" {
			t.Errorf("message = %v", body["message"])
		}
	})

	t.Run("hashes a supplied password before persisting", func(t *testing.T) {
		var gotFields bson.M
		svc := &accountServiceStub{
			getByIDFn: func(ctx context.Context, gotID primitive.ObjectID) (*models.Account, error) {
				return existing, nil
			},
			updateByIDFn: func(ctx context.Context, gotID primitive.ObjectID, fields bson.M) (*models.Account, error) {
				gotFields = fields
				return existing, nil
			},
		}
		h := newTestAccountHandler(svc)

		req := httptest.NewRequest(http.MethodPut, "/api/waiter/update-waiter/"+id.Hex(), strings.NewReader(`{"password":"654321"}`))
		req = mux.SetURLVars(req, map[string]string{"id": id.Hex()})
		rr := httptest.NewRecorder()
		h.Update(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rr.Code)
		}
		digest, _ := gotFields["password"].(string)
		if digest == "" || digest == "654321" {
			t.Fatalf("password field = %q, want a digest", digest)
		}
		if !auth.CheckPassword("654321", digest) {
			t.Error("digest does not verify")
		}
	})

	t.Run("missing account is a 404", func(t *testing.T) {
		svc := &accountServiceStub{
			getByIDFn: func(ctx context.Context, gotID primitive.ObjectID) (*models.Account, error) {
				return nil, mongo.ErrNoDocuments
			},
		}
		h := newTestAccountHandler(svc)

		req := httptest.NewRequest(http.MethodPut, "/api/waiter/update-waiter/"+id.Hex(), strings.NewReader(`{"fullname":"X Y"}`))
		req = mux.SetURLVars(req, map[string]string{"id": id.Hex()})
		rr := httptest.NewRecorder()
		h.Update(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rr.Code)
		}
		if body := decodeEnvelope(t, rr); body["message"] != "Waiter not found" {
			t.Errorf("message = %v", body["message"])
		}
	})

	t.Run("malformed id is a 400", func(t *testing.T) {
		h := newTestAccountHandler(&accountServiceStub{})

		req := httptest.NewRequest(http.MethodPut, "/api/waiter/update-waiter/not-hex", strings.NewReader(`{}`))
		req = mux.SetURLVars(req, map[string]string{"id": "not-hex"})
		rr := httptest.NewRecorder()
		h.Update(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rr.Code)
		}
	})
}

func TestAccountDelete(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("deletes an existing account", func(t *testing.T) {
		svc := &accountServiceStub{
			deleteByIDFn: func(ctx context.Context, gotID primitive.ObjectID) error {
				if gotID != id {
					return mongo.ErrNoDocuments
				}
				return nil
			},
		}
		h := newTestAccountHandler(svc)

		req := httptest.NewRequest(http.MethodDelete, "/api/waiter/delete-waiter/"+id.Hex(), nil)
		req = mux.SetURLVars(req, map[string]string{"id": id.Hex()})
		rr := httptest.NewRecorder()
		h.Delete(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rr.Code)
		}
		if body := decodeEnvelope(t, rr); body["message"] != "Waiter deleted successfully" {
			t.Errorf("message = %v", body["message"])
		}
	})

	t.Run("missing account is a 404", func(t *testing.T) {
		svc := &accountServiceStub{
			deleteByIDFn: func(ctx context.Context, gotID primitive.ObjectID) error {
				return mongo.ErrNoDocuments
			},
		}
		h := newTestAccountHandler(svc)

		req := httptest.NewRequest(http.MethodDelete, "/api/waiter/delete-waiter/"+id.Hex(), nil)
		req = mux.SetURLVars(req, map[string]string{"id": id.Hex()})
		rr := httptest.NewRecorder()
		h.Delete(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rr.Code)
		}
	})
}

func TestUserRealmWording(t *testing.T) {
	svc := &accountServiceStub{
		findByEmailFn: func(ctx context.Context, email string) (*models.Account, error) {
			return &models.Account{Email: email}, nil
		},
	}
	h := NewAccountHandler(svc, "User", validation.New(), testIssuer, false, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/user/signup", strings.NewReader(`{"fullname":"Amina Hassan","email":"amina@restaurant.com","password":"123456","phone":"252611234567"}`))
	rr := httptest.NewRecorder()
	h.Signup(rr, req)

	if body := decodeEnvelope(t, rr); body["message"] != "User already exists!" {
		t.Errorf("message = %v", body["message"])
	}
}
