package database

import "fmt"

// Tx is the transactional information between two parties. Nothing about
// the parties or the amount is validated.
type Tx struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
}

// NewTx constructs a new transaction.
func NewTx(sender string, recipient string, amount float64) Tx {
	return Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%g", tx.Sender, tx.Recipient, tx.Amount)
}
