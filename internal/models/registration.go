package models

import "time"

// PaymentStatusSuccessful is the only status the confirmation pipeline
// ever writes; a row exists if and only if its signature verified.
const PaymentStatusSuccessful = "successful"

// StudentRegistration is a paid course registration. Rows are immutable
// after creation; there is no update or delete path.
type StudentRegistration struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	Phone         string    `db:"phone" json:"phone"`
	Course        string    `db:"course" json:"course"`
	Amount        float64   `db:"amount" json:"amount"`
	PaymentID     string    `db:"payment_id" json:"payment_id"`
	OrderID       string    `db:"order_id" json:"order_id"`
	PaymentStatus string    `db:"payment_status" json:"payment_status"`
	RegisteredAt  time.Time `db:"registered_at" json:"registered_at"`
}
