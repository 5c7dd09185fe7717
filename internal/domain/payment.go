package domain

import "time"

type TransactionStatus string

const (
	TransactionStatusVerified TransactionStatus = "verified"
	TransactionStatusFailed   TransactionStatus = "failed"
)

type Transaction struct {
	ID        string            `json:"id"`
	Amount    float64           `json:"amount"`
	Status    TransactionStatus `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
}
