package ofx

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/shopspring/decimal"
)

// ParseMode decides what happens when a per-entry extraction fails.
type ParseMode int

const (
	// FailFast aborts the whole parse on the first extraction error.
	FailFast ParseMode = iota
	// Lenient records the offending node in the owning statement's
	// DiscardedEntries (or Warnings for statement-level scalars) and
	// continues.
	Lenient
)

// ParseOptions configures a parse call.
type ParseOptions struct {
	Mode ParseMode
	// DateFormat overrides the YYYYMMDD layout used for bare 8-character
	// dates, for institutions with non-standard short dates.
	DateFormat string
}

// positionTags are the investment position aggregates a statement fans out
// across.
var positionTags = []string{"POSMF", "POSSTOCK", "POSOPT", "POSOTHER", "POSDEBT"}

// investmentTransactionTags are the aggregate investment transaction names
// per OFX 2.2 section 13.9.2.4.
var investmentTransactionTags = []string{
	"BUYDEBT", "BUYMF", "BUYOPT", "BUYOTHER", "BUYSTOCK",
	"CLOSUREOPT", "INCOME", "INVEXPENSE", "JRNLFUND", "JRNLSEC",
	"MARGININTEREST", "REINVEST", "RETOFCAP",
	"SELLDEBT", "SELLMF", "SELLOPT", "SELLOTHER", "SELLSTOCK",
	"SPLIT", "TRANSFER",
}

// Parse decodes a raw OFX response into a ParseResult, failing fast on
// extraction errors.
func Parse(data []byte) (*ParseResult, error) {
	return ParseWithOptions(data, ParseOptions{})
}

// ParseWithOptions decodes a raw OFX response into a ParseResult. The text
// flows through header decoding, markup repair and tree building before
// record extraction.
func ParseWithOptions(data []byte, opts ParseOptions) (*ParseResult, error) {
	text, headers, err := DecodeBody(data)
	if err != nil {
		return nil, err
	}
	clean := NewCleaner().CleanupXML([]byte(text))
	glog.V(3).Infof("cleaned markup: %s", clean.String())

	root, err := buildTree(clean.Bytes())
	if err != nil {
		return nil, err
	}

	p := &parser{opts: opts}
	result := &ParseResult{Headers: headers}

	if sonrs := root.Find("SONRS"); sonrs != nil {
		result.Signon, err = p.parseSignon(sonrs)
		if err != nil {
			return nil, err
		}
	}
	for _, trs := range []string{"STMTTRNRS", "CCSTMTTRNRS"} {
		node := root.Find(trs)
		if node == nil {
			continue
		}
		if statusNode := node.Find("STATUS"); statusNode != nil {
			status, err := p.parseStatus(statusNode)
			if err != nil {
				return nil, err
			}
			result.Status = status
		}
	}

	var accounts []*Account
	if statements := root.FindAll("STMTRS"); len(statements) > 0 {
		parsed, err := p.parseAccounts(statements, AccountBank)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, parsed...)
	}
	if statements := root.FindAll("CCSTMTRS"); len(statements) > 0 {
		parsed, err := p.parseAccounts(statements, AccountCreditCard)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, parsed...)
	}
	if investments := root.FindAll("INVSTMTRS"); len(investments) > 0 {
		parsed, err := p.parseInvestmentAccounts(investments)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, parsed...)
		if seclist := root.Find("SECLIST"); seclist != nil {
			result.Securities = p.parseSecurityList(seclist)
		}
	}
	if info := root.Find("ACCTINFORS"); info != nil {
		parsed, err := p.parseAccountInfo(info)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, parsed...)
	}

	// A document-scoped <FI> applies to every account in this parse.
	if fi := root.Find("FI"); fi != nil {
		institution := p.parseOrg(fi)
		for _, account := range accounts {
			account.Institution = institution
		}
	}
	result.Accounts = accounts
	return result, nil
}

type parser struct {
	opts ParseOptions
}

// childText returns the trimmed text of the first matching descendant.
func childText(n *Node, name string) (string, bool) {
	c := n.Find(name)
	if c == nil {
		return "", false
	}
	text := strings.TrimSpace(c.Text)
	return text, text != ""
}

func requiredText(n *Node, name string) (string, error) {
	text, ok := childText(n, name)
	if !ok {
		return "", &ExtractionError{Field: name}
	}
	return text, nil
}

func (p *parser) date(n *Node, name string) (*time.Time, error) {
	text, ok := childText(n, name)
	if !ok {
		return nil, nil
	}
	t, err := ParseOFXDate(text, p.opts.DateFormat)
	if err != nil {
		return nil, &ExtractionError{Field: name, Value: text, Err: err}
	}
	return t, nil
}

func (p *parser) requiredDate(n *Node, name string) (time.Time, error) {
	text, err := requiredText(n, name)
	if err != nil {
		return time.Time{}, err
	}
	t, err := ParseOFXDate(text, p.opts.DateFormat)
	if err != nil {
		return time.Time{}, &ExtractionError{Field: name, Value: text, Err: err}
	}
	if t == nil {
		// The 00000000 sentinel is an explicit absence, which a
		// required date cannot tolerate.
		return time.Time{}, &ExtractionError{Field: name, Value: text}
	}
	return *t, nil
}

func (p *parser) amount(n *Node, name string) (decimal.Decimal, bool, error) {
	text, ok := childText(n, name)
	if !ok {
		return decimal.Decimal{}, false, nil
	}
	v, err := ParseOFXDecimal(text)
	if err != nil {
		return decimal.Decimal{}, false, &ExtractionError{Field: name, Value: text, Err: err}
	}
	return v, true, nil
}

func (p *parser) requiredAmount(n *Node, name string) (decimal.Decimal, error) {
	text, err := requiredText(n, name)
	if err != nil {
		return decimal.Decimal{}, err
	}
	v, err := ParseOFXDecimal(text)
	if err != nil {
		return decimal.Decimal{}, &ExtractionError{Field: name, Value: text, Err: err}
	}
	return v, nil
}

func (p *parser) parseSignon(node *Node) (*Signon, error) {
	codeText, err := requiredText(node, "CODE")
	if err != nil {
		return nil, err
	}
	code, err := strconv.Atoi(codeText)
	if err != nil {
		return nil, &ExtractionError{Field: "CODE", Value: codeText, Err: err}
	}
	signon := &Signon{Code: code, Success: code == 0}
	signon.Severity, _ = childText(node, "SEVERITY")
	signon.Message, _ = childText(node, "MESSAGE")
	signon.DTServer, _ = childText(node, "DTSERVER")
	signon.Language, _ = childText(node, "LANGUAGE")
	signon.DTProfUp, _ = childText(node, "DTPROFUP")
	signon.Org, _ = childText(node, "ORG")
	signon.FID, _ = childText(node, "FID")
	signon.IntuBID, _ = childText(node, "INTU.BID")
	return signon, nil
}

func (p *parser) parseStatus(node *Node) (*Status, error) {
	codeText, err := requiredText(node, "CODE")
	if err != nil {
		return nil, err
	}
	code, err := strconv.Atoi(codeText)
	if err != nil {
		return nil, &ExtractionError{Field: "CODE", Value: codeText, Err: err}
	}
	status := &Status{Code: code}
	status.Severity, _ = childText(node, "SEVERITY")
	status.Message, _ = childText(node, "MESSAGE")
	return status, nil
}

func (p *parser) parseOrg(node *Node) *Institution {
	institution := &Institution{}
	institution.Organization, _ = childText(node, "ORG")
	institution.FID, _ = childText(node, "FID")
	return institution
}

func (p *parser) parseAccounts(statements []*Node, kind AccountKind) ([]*Account, error) {
	accounts := make([]*Account, 0, len(statements))
	for _, node := range statements {
		account := &Account{Kind: kind}
		account.Currency, _ = childText(node, "CURDEF")
		account.ID, _ = childText(node, "ACCTID")
		account.RoutingNumber, _ = childText(node, "BANKID")
		account.BranchID, _ = childText(node, "BRANCHID")
		account.AccountType, _ = childText(node, "ACCTTYPE")

		statement, err := p.parseStatement(node)
		if err != nil {
			return nil, err
		}
		account.Statement = statement
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// scalar routes a statement-level extraction error per the parse mode:
// fail-fast propagates it, lenient downgrades it to a warning.
func (p *parser) scalar(warnings *[]string, err error) error {
	if err == nil {
		return nil
	}
	if p.opts.Mode == FailFast {
		return err
	}
	*warnings = append(*warnings, err.Error())
	return nil
}

func (p *parser) parseStatement(node *Node) (*Statement, error) {
	statement := &Statement{}

	start, err := p.date(node, "DTSTART")
	if err := p.scalar(&statement.Warnings, err); err != nil {
		return nil, err
	}
	statement.StartDate = start
	end, err := p.date(node, "DTEND")
	if err := p.scalar(&statement.Warnings, err); err != nil {
		return nil, err
	}
	statement.EndDate = end
	if currency, ok := childText(node, "CURDEF"); ok {
		statement.Currency = strings.ToLower(currency)
	}

	if err := p.parseBalance(node, "LEDGERBAL", &statement.Balance, &statement.BalanceDate, &statement.Warnings); err != nil {
		return nil, err
	}
	if err := p.parseBalance(node, "AVAILBAL", &statement.AvailableBalance, &statement.AvailableBalanceDate, &statement.Warnings); err != nil {
		return nil, err
	}

	for _, txnNode := range node.FindAll("STMTTRN") {
		txn, err := p.parseTransaction(txnNode)
		if err != nil {
			if p.opts.Mode == FailFast {
				return nil, err
			}
			statement.DiscardedEntries = append(statement.DiscardedEntries, DiscardedEntry{
				Error:   err.Error(),
				Content: txnNode.Render(),
			})
			continue
		}
		statement.Transactions = append(statement.Transactions, txn)
	}
	return statement, nil
}

// parseBalance extracts a LEDGERBAL/AVAILBAL/INVBAL style block. A present
// balance tag with a missing BALAMT or DTASOF sub-field is an extraction
// error, not a silent skip.
func (p *parser) parseBalance(node *Node, name string, amount *decimal.Decimal, date **time.Time, warnings *[]string) error {
	balance := node.Find(name)
	if balance == nil {
		return nil
	}
	v, err := p.requiredAmount(balance, "BALAMT")
	if err == nil {
		*amount = v
		var asOf time.Time
		asOf, err = p.requiredDate(balance, "DTASOF")
		if err == nil {
			*date = &asOf
			return nil
		}
	}
	if p.opts.Mode == FailFast {
		return &ExtractionError{Field: name, Err: err}
	}
	*warnings = append(*warnings, err.Error())
	return nil
}

func (p *parser) parseTransaction(node *Node) (Transaction, error) {
	txn := Transaction{}
	if text, ok := childText(node, "TRNTYPE"); ok {
		txn.Type = TransactionType(strings.ToLower(text))
	}
	txn.Payee, _ = childText(node, "NAME")
	txn.Memo, _ = childText(node, "MEMO")

	amount, err := p.requiredAmount(node, "TRNAMT")
	if err != nil {
		return txn, err
	}
	txn.Amount = amount

	date, err := p.requiredDate(node, "DTPOSTED")
	if err != nil {
		return txn, err
	}
	txn.Date = date

	userDate, err := p.date(node, "DTUSER")
	if err != nil {
		return txn, err
	}
	txn.UserDate = userDate

	id, err := requiredText(node, "FITID")
	if err != nil {
		return txn, err
	}
	txn.ID = id

	if sic, ok := childText(node, "SIC"); ok {
		txn.SIC = sic
		if description, known := mccDescriptions[sic]; known {
			txn.MCC = description
		}
	}
	txn.CheckNum, _ = childText(node, "CHECKNUM")
	return txn, nil
}

func (p *parser) parseInvestmentAccounts(investments []*Node) ([]*Account, error) {
	accounts := make([]*Account, 0, len(investments))
	for _, node := range investments {
		account := &Account{Kind: AccountInvestment}
		account.ID, _ = childText(node, "ACCTID")
		account.BrokerID, _ = childText(node, "BROKERID")

		statement, err := p.parseInvestmentStatement(node)
		if err != nil {
			return nil, err
		}
		account.InvestmentStatement = statement
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (p *parser) parseInvestmentStatement(node *Node) (*InvestmentStatement, error) {
	statement := &InvestmentStatement{}
	if currency, ok := childText(node, "CURDEF"); ok {
		statement.Currency = strings.ToLower(currency)
	}
	if list := node.Find("INVTRANLIST"); list != nil {
		start, err := p.date(list, "DTSTART")
		if err := p.scalar(&statement.Warnings, err); err != nil {
			return nil, err
		}
		statement.StartDate = start
		end, err := p.date(list, "DTEND")
		if err := p.scalar(&statement.Warnings, err); err != nil {
			return nil, err
		}
		statement.EndDate = end
	}

	for _, tag := range positionTags {
		for _, positionNode := range node.FindAll(tag) {
			position, err := p.parsePosition(positionNode)
			if err != nil {
				if p.opts.Mode == FailFast {
					return nil, err
				}
				statement.DiscardedEntries = append(statement.DiscardedEntries, DiscardedEntry{
					Error:   "error parsing position: " + err.Error(),
					Content: positionNode.Render(),
				})
				continue
			}
			statement.Positions = append(statement.Positions, position)
		}
	}

	for _, tag := range investmentTransactionTags {
		for _, txnNode := range node.FindAll(tag) {
			txn, err := p.parseInvestmentTransaction(tag, txnNode)
			if err != nil {
				if p.opts.Mode == FailFast {
					return nil, err
				}
				statement.DiscardedEntries = append(statement.DiscardedEntries, DiscardedEntry{
					Error:   strings.ToLower(tag) + ": " + err.Error(),
					Content: txnNode.Render(),
				})
				continue
			}
			statement.Transactions = append(statement.Transactions, txn)
		}
	}

	for _, bankNode := range node.FindAll("INVBANKTRAN") {
		for _, txnNode := range bankNode.FindAll("STMTTRN") {
			txn, err := p.parseTransaction(txnNode)
			if err != nil {
				if p.opts.Mode == FailFast {
					return nil, err
				}
				statement.DiscardedEntries = append(statement.DiscardedEntries, DiscardedEntry{
					Error:   err.Error(),
					Content: txnNode.Render(),
				})
				continue
			}
			statement.BankTransactions = append(statement.BankTransactions, txn)
		}
	}

	if err := p.parseInvestmentBalances(node, statement); err != nil {
		return nil, err
	}
	return statement, nil
}

func (p *parser) parseInvestmentBalances(node *Node, statement *InvestmentStatement) error {
	invbal := node.Find("INVBAL")
	if invbal == nil {
		return nil
	}
	for _, field := range []struct {
		tag  string
		dest *decimal.Decimal
	}{
		{"AVAILCASH", &statement.AvailableCash},
		{"MARGINBALANCE", &statement.MarginBalance},
		{"SHORTBALANCE", &statement.ShortBalance},
		{"BUYPOWER", &statement.BuyingPower},
	} {
		v, ok, err := p.amount(invbal, field.tag)
		if err != nil {
			if p.opts.Mode == FailFast {
				return err
			}
			statement.Warnings = append(statement.Warnings, err.Error())
			continue
		}
		if ok {
			*field.dest = v
		}
	}

	ballist := invbal.Find("BALLIST")
	if ballist == nil {
		return nil
	}
	for _, balNode := range ballist.FindAll("BAL") {
		balance := BrokerageBalance{}
		balance.Name, _ = childText(balNode, "NAME")
		balance.Description, _ = childText(balNode, "DESC")
		v, ok, err := p.amount(balNode, "VALUE")
		if err != nil {
			if p.opts.Mode == FailFast {
				return err
			}
			statement.Warnings = append(statement.Warnings, err.Error())
			continue
		}
		if ok {
			balance.Value = v
		}
		statement.Balances = append(statement.Balances, balance)
	}
	return nil
}

func (p *parser) parsePosition(node *Node) (Position, error) {
	position := Position{}
	position.Security, _ = childText(node, "UNIQUEID")
	for _, field := range []struct {
		tag  string
		dest *decimal.Decimal
	}{
		{"UNITS", &position.Units},
		{"UNITPRICE", &position.UnitPrice},
		{"MKTVAL", &position.MarketValue},
	} {
		v, ok, err := p.amount(node, field.tag)
		if err != nil {
			return position, err
		}
		if ok {
			*field.dest = v
		}
	}
	date, err := p.date(node, "DTPRICEASOF")
	if err != nil {
		return position, err
	}
	position.Date = date
	return position, nil
}

func (p *parser) parseInvestmentTransaction(tag string, node *Node) (InvestmentTransaction, error) {
	txn := InvestmentTransaction{Type: strings.ToLower(tag)}
	txn.ID, _ = childText(node, "FITID")
	txn.Memo, _ = childText(node, "MEMO")
	txn.Security, _ = childText(node, "UNIQUEID")
	txn.IncomeType, _ = childText(node, "INCOMETYPE")
	txn.TransferAction, _ = childText(node, "TFERACTION")

	tradeDate, err := p.date(node, "DTTRADE")
	if err != nil {
		return txn, err
	}
	txn.TradeDate = tradeDate
	settleDate, err := p.date(node, "DTSETTLE")
	if err != nil {
		return txn, err
	}
	txn.SettleDate = settleDate

	for _, field := range []struct {
		tag  string
		dest *decimal.Decimal
	}{
		{"UNITS", &txn.Units},
		{"UNITPRICE", &txn.UnitPrice},
		{"COMMISSION", &txn.Commission},
		{"FEES", &txn.Fees},
		{"TOTAL", &txn.Total},
	} {
		v, ok, err := p.amount(node, field.tag)
		if err != nil {
			return txn, err
		}
		if ok {
			*field.dest = v
		}
	}
	return txn, nil
}

func (p *parser) parseSecurityList(node *Node) []Security {
	var securities []Security
	for _, info := range node.FindAll("SECINFO") {
		uniqueID, okID := childText(info, "UNIQUEID")
		name, okName := childText(info, "SECNAME")
		if !okID || !okName {
			continue
		}
		security := Security{UniqueID: uniqueID, Name: name}
		security.Ticker, _ = childText(info, "TICKER")
		security.Memo, _ = childText(info, "MEMO")
		securities = append(securities, security)
	}
	return securities
}

// parseAccountInfo handles the <ACCTINFORS> account discovery response. The
// sub-kind of each <ACCTINFO> is chosen by which of BANKACCTINFO,
// CCACCTINFO or INVACCTINFO is present; entries with none are skipped.
func (p *parser) parseAccountInfo(node *Node) ([]*Account, error) {
	var accounts []*Account
	for _, info := range node.FindAll("ACCTINFO") {
		account := &Account{}
		switch {
		case info.Find("BANKACCTINFO") != nil:
			account.Kind = AccountBank
		case info.Find("CCACCTINFO") != nil:
			account.Kind = AccountCreditCard
		case info.Find("INVACCTINFO") != nil:
			account.Kind = AccountInvestment
		default:
			continue
		}
		account.ID, _ = childText(info, "ACCTID")
		account.RoutingNumber, _ = childText(info, "BANKID")
		account.BranchID, _ = childText(info, "BRANCHID")
		account.BrokerID, _ = childText(info, "BROKERID")
		account.AccountType, _ = childText(info, "ACCTTYPE")
		account.Description, _ = childText(info, "DESC")
		accounts = append(accounts, account)
	}
	return accounts, nil
}
