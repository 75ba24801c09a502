package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/cumarfaruur/safari-pos-backend/internal/auth"
	"github.com/cumarfaruur/safari-pos-backend/internal/models"
	"github.com/cumarfaruur/safari-pos-backend/internal/timefmt"
	"github.com/cumarfaruur/safari-pos-backend/internal/validation"
)

// authCookieName is the session cookie. Logout clears only this cookie; the
// token inside stays valid until it expires.
const authCookieName = "Authorization"

// cookieTTL is how long the browser keeps the session cookie. Shorter than
// the token expiry.
const cookieTTL = 8 * time.Hour

// AccountService is the account store contract the handler needs.
type AccountService interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Account, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// AccountHandler serves one authentication realm (waiter or user). The realm
// name only changes route wiring and response wording; behavior is identical.
type AccountHandler struct {
	service       AccountService
	realm         string
	validate      *validation.Validator
	tokens        *auth.TokenIssuer
	secureCookies bool
	log           *zap.Logger
}

func NewAccountHandler(service AccountService, realm string, validate *validation.Validator, tokens *auth.TokenIssuer, secureCookies bool, log *zap.Logger) *AccountHandler {
	return &AccountHandler{
		service:       service,
		realm:         realm,
		validate:      validate,
		tokens:        tokens,
		secureCookies: secureCookies,
		log:           log,
	}
}

// The first violated rule, in field order, is the one reported.
type AccountSignupRequest struct {
	FullName string `json:"fullname" validate:"required,min=3,max=100"`
	Phone    string `json:"phone" validate:"required,phonedigits"`
	Email    string `json:"email" validate:"required,min=6,max=60,email,emailtld"`
	Password string `json:"password" validate:"required,digitsonly"`
}

type AccountLoginRequest struct {
	Email    string `json:"email" validate:"required,min=6,max=60,email,emailtld"`
	Password string `json:"password" validate:"required,digitsonly"`
}

// AccountUpdateRequest carries only the fields the client wants changed.
type AccountUpdateRequest struct {
	FullName *string `json:"fullname"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Phone    *string `json:"phone"`
}

type accountRecord struct {
	ID          primitive.ObjectID `json:"_id"`
	FullName    string             `json:"fullname"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	CreatedDate string             `json:"createdDate,omitempty"`
	CreatedTime string             `json:"createdTime,omitempty"`
	UpdateDate  string             `json:"updateDate"`
	UpdateTime  string             `json:"updateTime"`
}

func newAccountRecord(account *models.Account) accountRecord {
	return accountRecord{
		ID:          account.ID,
		FullName:    account.FullName,
		Email:       account.Email,
		Phone:       account.Phone,
		CreatedDate: timefmt.DateString(account.CreatedAt),
		CreatedTime: timefmt.TimeString(account.CreatedAt),
		UpdateDate:  timefmt.DateString(account.UpdatedAt),
		UpdateTime:  timefmt.TimeString(account.UpdatedAt),
	}
}

// Signup handles POST /api/{realm}/signup
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req AccountSignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if ferr := h.validate.Check(&req); ferr != nil {
		fail(w, http.StatusUnauthorized, ferr.Message)
		return
	}

	_, err := h.service.FindByEmail(r.Context(), req.Email)
	if err == nil {
		fail(w, http.StatusUnauthorized, h.realm+" already exists!")
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		serverError(w, h.log, "Internal Server Error", err)
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		serverError(w, h.log, "Internal Server Error", err)
		return
	}

	account, err := h.service.Create(r.Context(), &models.Account{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hashed,
		Phone:    req.Phone,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			fail(w, http.StatusUnauthorized, h.realm+" already exists!")
			return
		}
		serverError(w, h.log, "Internal Server Error", err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Your Account Has been Created",
		Result:  newAccountRecord(account),
	})
}

// Login handles POST /api/{realm}/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req AccountLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if ferr := h.validate.Check(&req); ferr != nil {
		fail(w, http.StatusUnauthorized, ferr.Message)
		return
	}

	// Unknown email and wrong password report the same message so the
	// response does not reveal which one failed.
	account, err := h.service.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			fail(w, http.StatusUnauthorized, "Invalid credentials!")
			return
		}
		serverError(w, h.log, "Internal Server Error", err)
		return
	}

	if !auth.CheckPassword(req.Password, account.Password) {
		fail(w, http.StatusUnauthorized, "Invalid credentials!")
		return
	}

	token, err := h.tokens.Issue(account.ID.Hex(), account.Email, account.FullName, account.Phone)
	if err != nil {
		serverError(w, h.log, "Internal Server Error", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "Bearer " + token,
		Path:     "/",
		Expires:  time.Now().Add(cookieTTL),
		HttpOnly: h.secureCookies,
		Secure:   h.secureCookies,
	})

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Token:   token,
		Message: "Login successfully",
	})
}

// Logout handles POST /api/{realm}/logout. It clears the cookie only; an
// already-issued token remains valid until its natural expiry.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:    authCookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})

	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Logged out successfully"})
}

// List handles GET /api/{realm}/all-{realm}s
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.List(r.Context())
	if err != nil {
		serverError(w, h.log, "Error fetching "+h.plural(), err)
		return
	}

	records := make([]accountRecord, 0, len(accounts))
	for i := range accounts {
		records = append(records, newAccountRecord(&accounts[i]))
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: fmt.Sprintf("%ss fetched successfully", h.realm),
		Data:    records,
	})
}

// Update handles PUT /api/{realm}/update-{realm}/{id}. Only fields present
// in the body are touched; updatedAt is always refreshed.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		fail(w, http.StatusBadRequest, "Invalid "+strings.ToLower(h.realm)+" ID")
		return
	}

	var req AccountUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.service.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			fail(w, http.StatusNotFound, h.realm+" not found")
			return
		}
		serverError(w, h.log, "Error updating "+strings.ToLower(h.realm), err)
		return
	}

	fields := bson.M{}
	if req.FullName != nil {
		fields["fullname"] = *req.FullName
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			serverError(w, h.log, "Error updating "+strings.ToLower(h.realm), err)
			return
		}
		fields["password"] = hashed
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}

	account, err := h.service.UpdateByID(r.Context(), id, fields)
	if err != nil {
		serverError(w, h.log, "Error updating "+strings.ToLower(h.realm), err)
		return
	}

	record := newAccountRecord(account)
	record.CreatedDate = ""
	record.CreatedTime = ""

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: h.realm + " updated successfully",
		Result:  record,
	})
}

// Delete handles DELETE /api/{realm}/delete-{realm}/{id}
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		fail(w, http.StatusBadRequest, "Invalid "+strings.ToLower(h.realm)+" ID")
		return
	}

	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			fail(w, http.StatusNotFound, h.realm+" not found")
			return
		}
		serverError(w, h.log, "Error deleting "+strings.ToLower(h.realm), err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Message: h.realm + " deleted successfully"})
}

func (h *AccountHandler) plural() string {
	return strings.ToLower(h.realm) + "s"
}
