package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/cumarfaruur/safari-pos-backend/internal/models"
	"github.com/cumarfaruur/safari-pos-backend/internal/timefmt"
	"github.com/cumarfaruur/safari-pos-backend/internal/validation"
)

// ReceptionService is the slice of the reception store the handler uses.
// Only creation is routed.
type ReceptionService interface {
	Create(ctx context.Context, reception *models.Reception) (*models.Reception, error)
}

// ReceptionHandler handles HTTP requests for front-desk reception records.
type ReceptionHandler struct {
	service  ReceptionService
	validate *validation.Validator
	log      *zap.Logger
}

func NewReceptionHandler(service ReceptionService, validate *validation.Validator, log *zap.Logger) *ReceptionHandler {
	return &ReceptionHandler{service: service, validate: validate, log: log}
}

type ReceptionCreateRequest struct {
	ReceptionName string         `json:"receptionname" validate:"required"`
	Merchant      *models.Amount `json:"merchant" validate:"required"`
	Evc           *models.Amount `json:"evc" validate:"required"`
	Premier       *models.Amount `json:"premier" validate:"required"`
	Edahab        *models.Amount `json:"edahab" validate:"required"`
	EBesa         *models.Amount `json:"e-besa" validate:"required"`
	Others        *models.Amount `json:"others" validate:"required"`
	Credit        *models.Amount `json:"credit" validate:"required"`
	Deposit       *models.Amount `json:"deposit" validate:"required"`
	Refund        *models.Amount `json:"refund" validate:"required"`
	Discount      *models.Amount `json:"discount" validate:"required"`
}

type receptionRecord struct {
	ID            primitive.ObjectID `json:"_id"`
	ReceptionName string             `json:"receptionname"`
	Merchant      float64            `json:"merchant"`
	Evc           float64            `json:"evc"`
	Premier       float64            `json:"premier"`
	Edahab        float64            `json:"edahab"`
	EBesa         float64            `json:"e-besa"`
	Others        float64            `json:"others"`
	Credit        float64            `json:"credit"`
	Deposit       float64            `json:"deposit"`
	Refund        float64            `json:"refund"`
	Discount      float64            `json:"discount"`
	TotalAmount   float64            `json:"totalAmount"`
	CreatedDate   string             `json:"createdDate"`
	CreatedTime   string             `json:"createdTime"`
	UpdateDate    string             `json:"updateDate"`
	UpdateTime    string             `json:"updateTime"`
}

func newReceptionRecord(rec *models.Reception) receptionRecord {
	return receptionRecord{
		ID:            rec.ID,
		ReceptionName: rec.ReceptionName,
		Merchant:      rec.Merchant.Float64(),
		Evc:           rec.Evc.Float64(),
		Premier:       rec.Premier.Float64(),
		Edahab:        rec.Edahab.Float64(),
		EBesa:         rec.EBesa.Float64(),
		Others:        rec.Others.Float64(),
		Credit:        rec.Credit.Float64(),
		Deposit:       rec.Deposit.Float64(),
		Refund:        rec.Refund.Float64(),
		Discount:      rec.Discount.Float64(),
		TotalAmount:   rec.TotalAmount(),
		CreatedDate:   timefmt.DateString(rec.CreatedAt),
		CreatedTime:   timefmt.TimeString(rec.CreatedAt),
		UpdateDate:    timefmt.DateString(rec.UpdatedAt),
		UpdateTime:    timefmt.TimeString(rec.UpdatedAt),
	}
}

// Create handles POST /api/reception/create-reception
func (h *ReceptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ReceptionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusUnauthorized, err.Error())
		return
	}

	if ferr := h.validate.Check(&req); ferr != nil {
		fail(w, http.StatusUnauthorized, ferr.Message)
		return
	}

	reception, err := h.service.Create(r.Context(), &models.Reception{
		ReceptionName: strings.TrimSpace(req.ReceptionName),
		Merchant:      *req.Merchant,
		Evc:           *req.Evc,
		Premier:       *req.Premier,
		Edahab:        *req.Edahab,
		EBesa:         *req.EBesa,
		Others:        *req.Others,
		Credit:        *req.Credit,
		Deposit:       *req.Deposit,
		Refund:        *req.Refund,
		Discount:      *req.Discount,
	})
	if err != nil {
		serverError(w, h.log, "Internal Server Error", err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Reception has been created",
		Result:  newReceptionRecord(reception),
	})
}
