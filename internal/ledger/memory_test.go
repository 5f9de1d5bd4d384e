package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/stakemesh/wagerd/internal/dependencies/mocks"
	"github.com/stakemesh/wagerd/internal/model"
)

type MemoryLedgerSuite struct {
	suite.Suite
	ledger *MemoryLedger
	ctx    context.Context
}

func TestMemoryLedgerSuite(t *testing.T) {
	suite.Run(t, new(MemoryLedgerSuite))
}

func (s *MemoryLedgerSuite) SetupTest() {
	s.ledger = NewMemory(mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
	s.ctx = context.Background()
}

func (s *MemoryLedgerSuite) TestDepositAndBalance() {
	err := s.ledger.Deposit(s.ctx, "alice", 500)
	s.Require().NoError(err)

	balance, err := s.ledger.Balance(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.Amount(500), balance)
}

func (s *MemoryLedgerSuite) TestUnknownAccountHasZeroBalance() {
	balance, err := s.ledger.Balance(s.ctx, "nobody")
	s.Require().NoError(err)
	s.Equal(model.Amount(0), balance)
}

func (s *MemoryLedgerSuite) TestTransfer() {
	_ = s.ledger.Deposit(s.ctx, "alice", 500)

	err := s.ledger.Transfer(s.ctx, "alice", "vault", 200)
	s.Require().NoError(err)

	aliceBalance, _ := s.ledger.Balance(s.ctx, "alice")
	vaultBalance, _ := s.ledger.Balance(s.ctx, "vault")
	s.Equal(model.Amount(300), aliceBalance)
	s.Equal(model.Amount(200), vaultBalance)
}

func (s *MemoryLedgerSuite) TestTransferInsufficientFunds() {
	_ = s.ledger.Deposit(s.ctx, "alice", 100)

	err := s.ledger.Transfer(s.ctx, "alice", "vault", 200)
	s.ErrorIs(err, ErrInsufficientFunds)

	aliceBalance, _ := s.ledger.Balance(s.ctx, "alice")
	s.Equal(model.Amount(100), aliceBalance)
}

func (s *MemoryLedgerSuite) TestApplyBatchIsAtomic() {
	_ = s.ledger.Deposit(s.ctx, "vault", 300)

	// Second transfer exceeds what remains; nothing may be committed
	err := s.ledger.Apply(s.ctx, []Transfer{
		{From: "vault", To: "alice", Amount: 200},
		{From: "vault", To: "bob", Amount: 200},
	})
	s.ErrorIs(err, ErrInsufficientFunds)

	vaultBalance, _ := s.ledger.Balance(s.ctx, "vault")
	aliceBalance, _ := s.ledger.Balance(s.ctx, "alice")
	s.Equal(model.Amount(300), vaultBalance)
	s.Equal(model.Amount(0), aliceBalance)
}

func (s *MemoryLedgerSuite) TestApplyBatchDrainsExactly() {
	_ = s.ledger.Deposit(s.ctx, "vault", 300)

	err := s.ledger.Apply(s.ctx, []Transfer{
		{From: "vault", To: "alice", Amount: 200},
		{From: "vault", To: "bob", Amount: 100},
	})
	s.Require().NoError(err)

	vaultBalance, _ := s.ledger.Balance(s.ctx, "vault")
	s.Equal(model.Amount(0), vaultBalance)
}

func (s *MemoryLedgerSuite) TestJournalRecordsAppliedTransfers() {
	_ = s.ledger.Deposit(s.ctx, "alice", 500)
	_ = s.ledger.Transfer(s.ctx, "alice", "vault", 200)

	journal := s.ledger.Journal()
	s.Require().Len(journal, 2)
	s.Equal(model.AccountID("vault"), journal[1].To)
	s.Equal(model.Amount(200), journal[1].Amount)
	s.NotEqual(journal[0].ID, journal[1].ID)
}
