package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reception is a front-desk payment breakdown recorded at day close.
type Reception struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceptionName string             `bson:"receptionname" json:"receptionname"`
	Merchant      Amount             `bson:"merchant" json:"merchant"`
	Evc           Amount             `bson:"evc" json:"evc"`
	Premier       Amount             `bson:"premier" json:"premier"`
	Edahab        Amount             `bson:"edahab" json:"edahab"`
	EBesa         Amount             `bson:"e-besa" json:"e-besa"`
	Others        Amount             `bson:"others" json:"others"`
	Credit        Amount             `bson:"credit" json:"credit"`
	Deposit       Amount             `bson:"deposit" json:"deposit"`
	Refund        Amount             `bson:"refund" json:"refund"`
	Discount      Amount             `bson:"discount" json:"discount"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TotalAmount sums the ten payment-method fields in fixed order.
func (r *Reception) TotalAmount() float64 {
	return sum(r.Merchant, r.Evc, r.Premier, r.Edahab, r.EBesa, r.Others, r.Credit, r.Deposit, r.Refund, r.Discount)
}
