package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"finance-ledger/internal/core/domain"
	"finance-ledger/internal/core/ports"
	"finance-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const defaultCommandTTL = 10 * time.Minute

// FinanceConfig holds the settings the ledger is built from.
type FinanceConfig struct {
	CanonicalCurrency     string
	DisplayCurrency       string
	ExchangeRate          decimal.Decimal
	DefaultIncomeCategory string
	Categories            []domain.Category // Nil = DefaultCategories
	CommandTTL            time.Duration
}

// WalletSeed is a wallet created on first start, when nothing was persisted yet.
type WalletSeed struct {
	Name    string
	Balance decimal.Decimal
}

// FinanceServiceImpl implements ports.FinanceService on top of the ledger components.
// Commands run one at a time; each successful command is followed by a snapshot save.
type FinanceServiceImpl struct {
	mu         sync.Mutex
	rateMu     sync.RWMutex
	rate       decimal.Decimal
	normalizer *CurrencyNormalizer
	wallets    *WalletStore
	ledger     *TransactionLedger
	transfers  *TransferCoordinator
	loans      *LoanTracker
	income     *IncomeDistributor
	store      ports.SnapshotStore
	guard      ports.CommandGuard
	commandTTL time.Duration
	dirty      atomic.Bool
	now        func() time.Time
	log        zerolog.Logger
}

// NewFinanceService wires the ledger components. store and guard may be nil.
func NewFinanceService(cfg FinanceConfig, store ports.SnapshotStore, guard ports.CommandGuard, log zerolog.Logger) (*FinanceServiceImpl, error) {
	if err := ValidateRate(cfg.ExchangeRate); err != nil {
		return nil, err
	}
	categories := cfg.Categories
	if categories == nil {
		categories = DefaultCategories()
	}
	catalog := NewCategoryCatalog(categories)
	if cfg.DefaultIncomeCategory != "" {
		cat, err := catalog.Get(cfg.DefaultIncomeCategory)
		if err != nil || !cat.Accepts(domain.TransactionTypeIncome) {
			return nil, apperror.Validationf("default income category %q is not an income category", cfg.DefaultIncomeCategory)
		}
	}
	ttl := cfg.CommandTTL
	if ttl <= 0 {
		ttl = defaultCommandTTL
	}

	wallets := NewWalletStore(log)
	ledger := NewTransactionLedger(wallets, catalog, log)
	return &FinanceServiceImpl{
		rate:       cfg.ExchangeRate,
		normalizer: NewCurrencyNormalizer(cfg.CanonicalCurrency, cfg.DisplayCurrency),
		wallets:    wallets,
		ledger:     ledger,
		transfers:  NewTransferCoordinator(ledger, log),
		loans:      NewLoanTracker(ledger, log),
		income:     NewIncomeDistributor(ledger, cfg.DefaultIncomeCategory, log),
		store:      store,
		guard:      guard,
		commandTTL: ttl,
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
	}, nil
}

// Ledger exposes the transaction ledger for read-side services.
func (s *FinanceServiceImpl) Ledger() *TransactionLedger {
	return s.ledger
}

// ---- Wallets ----

// CreateWallet adds a wallet whose initial balance may be given in either currency.
func (s *FinanceServiceImpl) CreateWallet(ctx context.Context, req ports.CreateWalletRequest) (*domain.Wallet, error) {
	var wallet *domain.Wallet
	err := s.execute(ctx, "create-wallet", "", func() error {
		initial, err := s.toCanonical(req.InitialBalance, req.Currency)
		if err != nil {
			return err
		}
		wallet, err = s.wallets.Create(req.Name, initial)
		return err
	})
	return wallet, err
}

// GetWallet returns a wallet by ID.
func (s *FinanceServiceImpl) GetWallet(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	return s.wallets.Get(id)
}

// ListWallets returns all wallets in creation order.
func (s *FinanceServiceImpl) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	return s.wallets.List(), nil
}

// SetWalletBalance overrides a balance without a transaction. Reconcile reports the drift.
func (s *FinanceServiceImpl) SetWalletBalance(ctx context.Context, req ports.SetWalletBalanceRequest) (*domain.Wallet, error) {
	var wallet *domain.Wallet
	err := s.execute(ctx, "set-balance", "", func() error {
		balance, err := s.toCanonical(req.NewBalance, req.Currency)
		if err != nil {
			return err
		}
		wallet, err = s.wallets.SetBalanceOverride(req.WalletID, balance)
		return err
	})
	return wallet, err
}

// ---- Transactions ----

// CreateTransaction records a manual income or expense.
func (s *FinanceServiceImpl) CreateTransaction(ctx context.Context, req ports.CreateTransactionRequest) (*domain.Transaction, error) {
	var txn *domain.Transaction
	err := s.execute(ctx, "create-transaction", req.RequestKey, func() error {
		amount, err := s.toCanonical(req.Amount, req.Currency)
		if err != nil {
			return err
		}
		txn, err = s.ledger.Record(RecordRequest{
			Description: req.Description,
			Amount:      amount,
			WalletID:    req.WalletID,
			CategoryID:  req.CategoryID,
			Type:        req.Type,
			Date:        req.Date,
			Kind:        domain.TransactionKindManual,
		})
		return err
	})
	return txn, err
}

// RevertTransaction removes a transaction and undoes its delta. A transfer leg
// cancels its whole transfer; loan transactions cannot be reverted.
func (s *FinanceServiceImpl) RevertTransaction(ctx context.Context, id uuid.UUID) error {
	return s.execute(ctx, "revert-transaction", "", func() error {
		txn, err := s.ledger.Get(id)
		if err != nil {
			return err
		}
		switch {
		case txn.IsLoanLinked():
			return apperror.Validation("loan transactions cannot be reverted")
		case txn.IsTransferLeg():
			return s.transfers.CancelTransfer(*txn.TransferID)
		}
		_, err = s.ledger.Revert(id)
		return err
	})
}

// ListTransactions returns recorded transactions matching filter, in recording order.
func (s *FinanceServiceImpl) ListTransactions(ctx context.Context, filter ports.TransactionFilter) ([]domain.Transaction, error) {
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, apperror.Validation("from must be before to")
	}
	return s.ledger.List(filter), nil
}

// ---- Transfers ----

// CreateTransfer moves funds between two wallets as a linked pair of legs.
func (s *FinanceServiceImpl) CreateTransfer(ctx context.Context, req ports.CreateTransferRequest) (*ports.TransferResult, error) {
	var result *ports.TransferResult
	err := s.execute(ctx, "create-transfer", req.RequestKey, func() error {
		amount, err := s.toCanonical(req.Amount, req.Currency)
		if err != nil {
			return err
		}
		result, err = s.transfers.MoveFunds(amount, req.FromWalletID, req.ToWalletID, req.Date, req.Description)
		return err
	})
	return result, err
}

// CancelTransfer reverts both legs of a transfer.
func (s *FinanceServiceImpl) CancelTransfer(ctx context.Context, transferID uuid.UUID) error {
	return s.execute(ctx, "cancel-transfer", "", func() error {
		return s.transfers.CancelTransfer(transferID)
	})
}

// ---- Loans ----

// CreateLoan lends money out of a wallet.
func (s *FinanceServiceImpl) CreateLoan(ctx context.Context, req ports.CreateLoanRequest) (*domain.Loan, error) {
	var loan *domain.Loan
	err := s.execute(ctx, "create-loan", req.RequestKey, func() error {
		amount, err := s.toCanonical(req.Amount, req.Currency)
		if err != nil {
			return err
		}
		loan, err = s.loans.CreateLoan(req.Person, req.Description, amount, req.WalletID, req.Date)
		return err
	})
	return loan, err
}

// RecordLoanPayment books a repayment into the loan's wallet.
func (s *FinanceServiceImpl) RecordLoanPayment(ctx context.Context, req ports.RecordLoanPaymentRequest) (*domain.Loan, error) {
	var loan *domain.Loan
	err := s.execute(ctx, "loan-payment", req.RequestKey, func() error {
		amount, err := s.toCanonical(req.Amount, req.Currency)
		if err != nil {
			return err
		}
		loan, err = s.loans.RecordPayment(req.LoanID, amount, req.Date)
		return err
	})
	return loan, err
}

// GetLoan returns a loan by ID.
func (s *FinanceServiceImpl) GetLoan(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	return s.loans.Get(id)
}

// ListLoans returns all loans in creation order.
func (s *FinanceServiceImpl) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	return s.loans.List(), nil
}

// ---- Income ----

// DistributeIncome records income into one wallet under the default income category.
func (s *FinanceServiceImpl) DistributeIncome(ctx context.Context, req ports.DistributeIncomeRequest) (*domain.Transaction, error) {
	var txn *domain.Transaction
	err := s.execute(ctx, "distribute-income", req.RequestKey, func() error {
		amount, err := s.toCanonical(req.Amount, req.Currency)
		if err != nil {
			return err
		}
		txn, err = s.income.Distribute(amount, req.WalletID, req.Date, req.Description, req.CategoryID)
		return err
	})
	return txn, err
}

// ---- Currency & reference data ----

// SetExchangeRate replaces the display-per-canonical rate. Stored amounts are
// canonical and do not change.
func (s *FinanceServiceImpl) SetExchangeRate(ctx context.Context, rate decimal.Decimal) error {
	if err := ValidateRate(rate); err != nil {
		return err
	}
	return s.execute(ctx, "set-exchange-rate", "", func() error {
		s.rateMu.Lock()
		s.rate = rate
		s.rateMu.Unlock()

		s.log.Info().Str("rate", rate.String()).Msg("exchange rate updated")
		return nil
	})
}

// ExchangeRate returns the current display-per-canonical rate.
func (s *FinanceServiceImpl) ExchangeRate() decimal.Decimal {
	s.rateMu.RLock()
	defer s.rateMu.RUnlock()
	return s.rate
}

// DisplayAmount converts a stored canonical amount at the current rate.
func (s *FinanceServiceImpl) DisplayAmount(canonical decimal.Decimal) (decimal.Decimal, error) {
	return s.normalizer.ToDisplay(canonical, s.ExchangeRate())
}

// Currencies returns the canonical and display currency codes.
func (s *FinanceServiceImpl) Currencies() ports.CurrencyPair {
	return s.normalizer.Pair()
}

// Categories returns the category catalog.
func (s *FinanceServiceImpl) Categories() []domain.Category {
	return s.ledger.Categories().List()
}

// ---- Persistence ----

// Load restores persisted state. When nothing was saved yet the seed wallets
// are created and saved.
func (s *FinanceServiceImpl) Load(ctx context.Context, seeds []WalletSeed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snapshot *domain.LedgerSnapshot
	if s.store != nil {
		var err error
		snapshot, err = s.store.Load(ctx)
		if err != nil {
			return apperror.ErrPersistence(err)
		}
	}

	if snapshot != nil && !snapshot.IsEmpty() {
		s.wallets.Restore(snapshot.Wallets)
		s.ledger.Restore(snapshot.Transactions)
		s.loans.Restore(snapshot.Loans)
		if ValidateRate(snapshot.ExchangeRate) == nil {
			s.rateMu.Lock()
			s.rate = snapshot.ExchangeRate
			s.rateMu.Unlock()
		}
		s.log.Info().
			Int("wallets", len(snapshot.Wallets)).
			Int("transactions", len(snapshot.Transactions)).
			Int("loans", len(snapshot.Loans)).
			Msg("ledger restored")
		return nil
	}

	for _, seed := range seeds {
		if _, err := s.wallets.Create(seed.Name, seed.Balance); err != nil {
			return err
		}
	}
	if len(seeds) > 0 {
		s.persist(ctx)
	}
	return nil
}

// Snapshot returns the current state as it would be persisted.
func (s *FinanceServiceImpl) Snapshot() *domain.LedgerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Flush retries a snapshot save that previously failed.
func (s *FinanceServiceImpl) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil || !s.dirty.Load() {
		return nil
	}
	if err := s.store.Save(ctx, s.snapshot()); err != nil {
		return apperror.ErrPersistence(err)
	}
	s.dirty.Store(false)
	s.log.Info().Msg("pending ledger state saved")
	return nil
}

// PendingSync reports whether in-memory state is ahead of the persisted snapshot.
func (s *FinanceServiceImpl) PendingSync() bool {
	return s.dirty.Load()
}

// SyncHealth reports unhealthy while a save is pending.
func (s *FinanceServiceImpl) SyncHealth() ports.HealthChecker {
	return &syncHealthChecker{svc: s}
}

type syncHealthChecker struct {
	svc *FinanceServiceImpl
}

func (h *syncHealthChecker) Ping(ctx context.Context) error {
	if h.svc.PendingSync() {
		return errors.New("ledger state not persisted")
	}
	return nil
}

func (h *syncHealthChecker) Name() string {
	return "ledger-sync"
}

// execute runs fn under the command lock. A non-empty requestKey is claimed
// first so a replayed UI command is rejected; a failed command releases it.
func (s *FinanceServiceImpl) execute(ctx context.Context, op, requestKey string, fn func() error) error {
	key := ""
	if requestKey != "" && s.guard != nil {
		key = op + ":" + requestKey
		claimed, err := s.guard.Claim(ctx, key, s.commandTTL)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("key", key).Msg("command guard unavailable, executing without replay check")
			key = ""
		case !claimed:
			return apperror.ErrDuplicateCommand()
		}
	}

	s.mu.Lock()
	err := fn()
	if err == nil {
		s.persist(ctx)
	}
	s.mu.Unlock()

	if err != nil && key != "" {
		if releaseErr := s.guard.Release(ctx, key); releaseErr != nil {
			s.log.Warn().Err(releaseErr).Str("key", key).Msg("failed to release command key")
		}
	}
	return err
}

// persist saves the current state. Caller holds s.mu.
func (s *FinanceServiceImpl) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, s.snapshot()); err != nil {
		s.dirty.Store(true)
		s.log.Error().Err(err).Msg("failed to persist ledger state")
		return
	}
	s.dirty.Store(false)
}

// snapshot builds the persisted form of the ledger. Caller holds s.mu.
func (s *FinanceServiceImpl) snapshot() *domain.LedgerSnapshot {
	wallets, transactions := s.ledger.View()
	return &domain.LedgerSnapshot{
		Wallets:      wallets,
		Transactions: transactions,
		Loans:        s.loans.List(),
		ExchangeRate: s.ExchangeRate(),
		SavedAt:      s.now(),
	}
}

// toCanonical converts at the current rate. Called inside execute so a concurrent
// rate change cannot land between conversion and recording.
func (s *FinanceServiceImpl) toCanonical(amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	return s.normalizer.Normalize(amount, currency, s.ExchangeRate())
}

var _ ports.FinanceService = (*FinanceServiceImpl)(nil)
