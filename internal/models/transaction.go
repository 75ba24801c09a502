package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction is one till-closing record: the payment-method breakdown a
// waiter hands in at the end of a shift. Waiter is a free-text name, not a
// reference to an account.
type Transaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Waiter    string             `bson:"waiter" json:"waiter"`
	Merchant  Amount             `bson:"merchant" json:"merchant"`
	Premier   Amount             `bson:"premier" json:"premier"`
	Edahab    Amount             `bson:"edahab" json:"edahab"`
	EBesa     Amount             `bson:"e-besa" json:"e-besa"`
	Others    Amount             `bson:"others" json:"others"`
	Credit    Amount             `bson:"credit" json:"credit"`
	Promotion Amount             `bson:"promotion" json:"promotion"`
	Open      Amount             `bson:"open" json:"open"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TotalAmount sums the eight payment-method fields in fixed order. The total
// is derived at response time and never stored; fields absent on older
// documents decode as zero.
func (t *Transaction) TotalAmount() float64 {
	return sum(t.Merchant, t.Premier, t.Edahab, t.EBesa, t.Others, t.Credit, t.Promotion, t.Open)
}
