package ofx

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is a transaction type as per the OFX Spec 2.2 Section 11.4.4.3
// https://www.ofx.net/downloads/OFX%202.2.pdf
// Values are lowercased, matching the extractor's normalization of TRNTYPE.
type TransactionType string

const (
	// Common Transaction Types
	DEBIT  TransactionType = "debit"
	CREDIT TransactionType = "credit"
	// Uncommon Transaction Types
	INTEREST      TransactionType = "int"
	DIVIDEND      TransactionType = "div"
	FEE           TransactionType = "fee"
	SERVICECHARGE TransactionType = "srvchg"
	DEPOSIT       TransactionType = "dep"
	ATM           TransactionType = "atm"
	POS           TransactionType = "pos"
	TRANSFER      TransactionType = "xfer"
	CHECK         TransactionType = "check"
	PAYMENT       TransactionType = "payment"
	CASH          TransactionType = "cash"
	DIRECTDEPOSIT TransactionType = "directdep"
	DIRECTDEBIT   TransactionType = "directdebit"
	REPEATPAYMENT TransactionType = "repeatpmt"
	OTHER         TransactionType = "other"
)

// AccountKind discriminates the account variants a response can carry.
type AccountKind int

const (
	AccountUnknown AccountKind = iota
	AccountBank
	AccountCreditCard
	AccountInvestment
)

func (k AccountKind) String() string {
	switch k {
	case AccountBank:
		return "bank"
	case AccountCreditCard:
		return "creditcard"
	case AccountInvestment:
		return "investment"
	}
	return "unknown"
}

// Institution identifies the server counterpart from a shared <FI> node.
type Institution struct {
	Organization string
	FID          string
}

// Account is a single account discovered in a response. An account owns at
// most one Statement (bank, credit card) or InvestmentStatement.
type Account struct {
	ID                  string
	RoutingNumber       string
	BranchID            string
	BrokerID            string
	AccountType         string
	Description         string
	Currency            string
	Kind                AccountKind
	Institution         *Institution
	Statement           *Statement
	InvestmentStatement *InvestmentStatement
	Warnings            []string
}

// DiscardedEntry records a node that failed extraction in lenient mode.
type DiscardedEntry struct {
	Error   string
	Content string
}

// Statement is a bank or credit card statement.
type Statement struct {
	StartDate            *time.Time
	EndDate              *time.Time
	Currency             string
	Balance              decimal.Decimal
	BalanceDate          *time.Time
	AvailableBalance     decimal.Decimal
	AvailableBalanceDate *time.Time
	Transactions         []Transaction
	DiscardedEntries     []DiscardedEntry
	Warnings             []string
}

// Transaction is a single statement transaction. Amount, Date and ID are
// mandatory; their absence fails extraction for the transaction.
type Transaction struct {
	Type     TransactionType
	Payee    string
	Memo     string
	Amount   decimal.Decimal
	Date     time.Time
	UserDate *time.Time
	ID       string
	SIC      string
	MCC      string
	CheckNum string
}

// InvestmentStatement is a brokerage statement.
type InvestmentStatement struct {
	StartDate        *time.Time
	EndDate          *time.Time
	Currency         string
	Positions        []Position
	Transactions     []InvestmentTransaction
	BankTransactions []Transaction
	Balances         []BrokerageBalance
	AvailableCash    decimal.Decimal
	MarginBalance    decimal.Decimal
	ShortBalance     decimal.Decimal
	BuyingPower      decimal.Decimal
	DiscardedEntries []DiscardedEntry
	Warnings         []string
}

// Position is a single security holding within an investment statement.
type Position struct {
	Security    string
	Units       decimal.Decimal
	UnitPrice   decimal.Decimal
	MarketValue decimal.Decimal
	Date        *time.Time
}

// InvestmentTransaction is an aggregate investment transaction (BUYSTOCK,
// SELLMF, INCOME, ...). Type holds the lowercased aggregate tag name.
type InvestmentTransaction struct {
	Type           string
	ID             string
	TradeDate      *time.Time
	SettleDate     *time.Time
	Memo           string
	Security       string
	IncomeType     string
	Units          decimal.Decimal
	UnitPrice      decimal.Decimal
	Commission     decimal.Decimal
	Fees           decimal.Decimal
	Total          decimal.Decimal
	TransferAction string
}

// Security describes an instrument from the <SECLIST> block. Securities are
// document scoped, not owned by any single account.
type Security struct {
	UniqueID string
	Name     string
	Ticker   string
	Memo     string
}

// BrokerageBalance is one named balance from an <INVBAL> balance list.
type BrokerageBalance struct {
	Name        string
	Description string
	Value       decimal.Decimal
}

// Signon is the parsed <SONRS> sign-on response.
type Signon struct {
	Code     int
	Severity string
	Message  string
	DTServer string
	Language string
	DTProfUp string
	Org      string
	FID      string
	IntuBID  string
	// Success is true iff Code is zero.
	Success bool
}

// Status is the transaction-set status from <STMTTRNRS>/<CCSTMTTRNRS>.
type Status struct {
	Code     int
	Severity string
	Message  string
}

// ParseResult is the sole output of a parse call.
type ParseResult struct {
	Headers    Headers
	Signon     *Signon
	Status     *Status
	Accounts   []*Account
	Securities []Security
}
