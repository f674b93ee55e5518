package id_test

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/weiawesome/typedid/id"
)

var orderSeq atomic.Int64

type Order struct{}

func (Order) IDGenerator() id.Generator[string] {
	return id.GeneratorFunc[string](func() (string, error) {
		return fmt.Sprintf("ord_%06d", orderSeq.Add(1)), nil
	})
}

type User struct{}

func (User) IDGenerator() id.Generator[string] {
	return id.GeneratorFunc[string](func() (string, error) { return "usr_1", nil })
}

type Session struct{}

func (Session) IDGenerator() id.Generator[uuid.UUID] {
	return id.GeneratorFunc[uuid.UUID](uuid.NewRandom)
}

var ticketSeq atomic.Int64

type Ticket struct{}

func (Ticket) IDGenerator() id.Generator[int64] {
	return id.GeneratorFunc[int64](func() (int64, error) { return ticketSeq.Add(1), nil })
}

var errEntropy = errors.New("entropy source exhausted")

type Broken struct{}

func (Broken) IDGenerator() id.Generator[string] {
	return id.GeneratorFunc[string](func() (string, error) { return "", errEntropy })
}

type Orphan struct{}

func (Orphan) IDGenerator() id.Generator[string] { return nil }

type Account struct{}

func (Account) Label() string { return "LegacyAccount" }

type Anonymous struct{}

func (Anonymous) Label() string { return "" }

type pointerLabeled struct{}

func (*pointerLabeled) Label() string { return "Pointer" }

type Box[T any] struct{}

type (
	OrderID   = id.ID[Order, string]
	UserID    = id.ID[User, string]
	SessionID = id.ID[Session, uuid.UUID]
	TicketID  = id.ID[Ticket, int64]
)
