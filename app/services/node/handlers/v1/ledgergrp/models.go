package ledgergrp

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
)

// newTx is what a client posts to add a transaction to the pool. The
// fields are pointers so a missing field can be told apart from an empty one.
type newTx struct {
	Sender    *string  `json:"sender" validate:"required"`
	Recipient *string  `json:"recipient" validate:"required"`
	Amount    *float64 `json:"amount" validate:"required"`
}

func toDBTx(ntx newTx) database.Tx {
	return database.NewTx(*ntx.Sender, *ntx.Recipient, *ntx.Amount)
}

type mined struct {
	Hash database.BlockHash `json:"hash"`
}

type resolved struct {
	Replaced bool           `json:"replaced"`
	Chain    state.Snapshot `json:"chain"`
}
