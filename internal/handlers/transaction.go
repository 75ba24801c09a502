package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/cumarfaruur/safari-pos-backend/internal/models"
	"github.com/cumarfaruur/safari-pos-backend/internal/timefmt"
	"github.com/cumarfaruur/safari-pos-backend/internal/validation"
)

// TransactionService is the transaction store contract the handler needs.
type TransactionService interface {
	Create(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error)
	List(ctx context.Context) ([]models.Transaction, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Transaction, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// TransactionHandler handles HTTP requests for till-closing transactions.
type TransactionHandler struct {
	service  TransactionService
	validate *validation.Validator
	log      *zap.Logger
}

func NewTransactionHandler(service TransactionService, validate *validation.Validator, log *zap.Logger) *TransactionHandler {
	return &TransactionHandler{service: service, validate: validate, log: log}
}

// Amounts are pointers so a missing field fails "required" while an explicit
// zero passes.
type TransactionCreateRequest struct {
	Waiter    string         `json:"waiter" validate:"required"`
	Merchant  *models.Amount `json:"merchant" validate:"required"`
	Premier   *models.Amount `json:"premier" validate:"required"`
	Edahab    *models.Amount `json:"edahab" validate:"required"`
	EBesa     *models.Amount `json:"e-besa" validate:"required"`
	Others    *models.Amount `json:"others" validate:"required"`
	Credit    *models.Amount `json:"credit" validate:"required"`
	Promotion *models.Amount `json:"promotion" validate:"required"`
	Open      *models.Amount `json:"open" validate:"required"`
}

type TransactionUpdateRequest struct {
	Waiter    *string        `json:"waiter"`
	Merchant  *models.Amount `json:"merchant"`
	Premier   *models.Amount `json:"premier"`
	Edahab    *models.Amount `json:"edahab"`
	EBesa     *models.Amount `json:"e-besa"`
	Others    *models.Amount `json:"others"`
	Credit    *models.Amount `json:"credit"`
	Promotion *models.Amount `json:"promotion"`
	Open      *models.Amount `json:"open"`
}

type transactionRecord struct {
	ID          primitive.ObjectID `json:"_id"`
	Waiter      string             `json:"waiter"`
	Merchant    float64            `json:"merchant"`
	Premier     float64            `json:"premier"`
	Edahab      float64            `json:"edahab"`
	EBesa       float64            `json:"e-besa"`
	Others      float64            `json:"others"`
	Credit      float64            `json:"credit"`
	Promotion   float64            `json:"promotion"`
	Open        float64            `json:"open"`
	TotalAmount float64            `json:"totalAmount"`
	CreatedDate string             `json:"createdDate"`
	CreatedTime string             `json:"createdTime"`
	UpdateDate  string             `json:"updateDate"`
	UpdateTime  string             `json:"updateTime"`
}

func newTransactionRecord(t *models.Transaction) transactionRecord {
	return transactionRecord{
		ID:          t.ID,
		Waiter:      t.Waiter,
		Merchant:    t.Merchant.Float64(),
		Premier:     t.Premier.Float64(),
		Edahab:      t.Edahab.Float64(),
		EBesa:       t.EBesa.Float64(),
		Others:      t.Others.Float64(),
		Credit:      t.Credit.Float64(),
		Promotion:   t.Promotion.Float64(),
		Open:        t.Open.Float64(),
		TotalAmount: t.TotalAmount(),
		CreatedDate: timefmt.DateString(t.CreatedAt),
		CreatedTime: timefmt.TimeString(t.CreatedAt),
		UpdateDate:  timefmt.DateString(t.UpdatedAt),
		UpdateTime:  timefmt.TimeString(t.UpdatedAt),
	}
}

// Create handles POST /api/transaction/create-transaction
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TransactionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Covers malformed JSON and non-numeric amount strings.
		fail(w, http.StatusUnauthorized, err.Error())
		return
	}

	if ferr := h.validate.Check(&req); ferr != nil {
		fail(w, http.StatusUnauthorized, ferr.Message)
		return
	}

	transaction, err := h.service.Create(r.Context(), &models.Transaction{
		Waiter:    req.Waiter,
		Merchant:  *req.Merchant,
		Premier:   *req.Premier,
		Edahab:    *req.Edahab,
		EBesa:     *req.EBesa,
		Others:    *req.Others,
		Credit:    *req.Credit,
		Promotion: *req.Promotion,
		Open:      *req.Open,
	})
	if err != nil {
		serverError(w, h.log, "Internal Server Error", err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Transaction has been created",
		Result:  newTransactionRecord(transaction),
	})
}

// List handles GET /api/transaction/all-transactions
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.List(r.Context())
	if err != nil {
		serverError(w, h.log, "Error fetching transactions", err)
		return
	}

	records := make([]transactionRecord, 0, len(transactions))
	for i := range transactions {
		records = append(records, newTransactionRecord(&transactions[i]))
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Transactions fetched successfully",
		Data:    records,
	})
}

// Update handles PUT /api/transaction/update-transaction/{id}
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		fail(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	var req TransactionUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusUnauthorized, err.Error())
		return
	}

	if _, err := h.service.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			fail(w, http.StatusNotFound, "Transaction not found")
			return
		}
		serverError(w, h.log, "Error updating transaction", err)
		return
	}

	fields := bson.M{}
	if req.Waiter != nil {
		fields["waiter"] = *req.Waiter
	}
	if req.Merchant != nil {
		fields["merchant"] = *req.Merchant
	}
	if req.Premier != nil {
		fields["premier"] = *req.Premier
	}
	if req.Edahab != nil {
		fields["edahab"] = *req.Edahab
	}
	if req.EBesa != nil {
		fields["e-besa"] = *req.EBesa
	}
	if req.Others != nil {
		fields["others"] = *req.Others
	}
	if req.Credit != nil {
		fields["credit"] = *req.Credit
	}
	if req.Promotion != nil {
		fields["promotion"] = *req.Promotion
	}
	if req.Open != nil {
		fields["open"] = *req.Open
	}

	transaction, err := h.service.UpdateByID(r.Context(), id, fields)
	if err != nil {
		serverError(w, h.log, "Error updating transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Transaction updated successfully",
		Result:  newTransactionRecord(transaction),
	})
}

// Delete handles DELETE /api/transaction/delete-transaction/{id}
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		fail(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			fail(w, http.StatusNotFound, "Transaction not found")
			return
		}
		serverError(w, h.log, "Error deleting transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Transaction deleted successfully"})
}
