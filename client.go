package ofx

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client defaults, matching what most institutions expect from a Quicken
// desktop client.
const (
	DefaultAppID      = "QWIN"
	DefaultAppVersion = "2500"
	DefaultOFXVersion = "102"
	DefaultUserAgent  = "httpclient"
	DefaultAccept     = "*/*, application/x-ofx"

	// DefaultAccountListDate is the "accounts updated since" watermark used
	// when the caller does not supply one.
	DefaultAccountListDate = "19700101000000"
)

// FI identifies the institution endpoint a Client talks to.
type FI struct {
	Org string
	FID string
	URL string
}

// Client builds OFX request messages and issues them to one institution.
// It holds the per-session identity: credentials, client id and the
// CLTCOOKIE message counter. A Client is not safe for concurrent use; wrap
// it with external synchronization if shared.
type Client struct {
	FI         FI
	Username   string
	Password   string
	ClientID   string
	AppID      string
	AppVersion string
	OFXVersion string
	UserAgent  string
	Accept     string

	// ParseOptions is applied to every response parse.
	ParseOptions ParseOptions

	// HTTPClient issues the POSTs. Its Transport is the seam for tests.
	HTTPClient *http.Client

	cookie int
}

// NewClient returns a Client for the given institution with default
// application identity and a fresh client id.
func NewClient(fi FI, username, password string) *Client {
	return &Client{
		FI:         fi,
		Username:   username,
		Password:   password,
		ClientID:   newUID(),
		AppID:      DefaultAppID,
		AppVersion: DefaultAppVersion,
		OFXVersion: DefaultOFXVersion,
		UserAgent:  DefaultUserAgent,
		Accept:     DefaultAccept,
		HTTPClient: &http.Client{Timeout: requestTimeout},
		cookie:     3,
	}
}

// newUID returns a fresh random unique identifier in the 32-hex-digit form
// institutions expect for TRNUID and NEWFILEUID.
func newUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// nextCookie increments and serializes the per-session message counter.
func (c *Client) nextCookie() string {
	c.cookie++
	return strconv.Itoa(c.cookie)
}

// AuthenticatedQuery wraps a request payload in the OFXHEADER preamble and
// an <OFX> envelope carrying the sign-on block.
func (c *Client) AuthenticatedQuery(payload string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "OFXHEADER:100\r\n")
	fmt.Fprintf(&b, "DATA:OFXSGML\r\n")
	fmt.Fprintf(&b, "VERSION:%s\r\n", c.OFXVersion)
	fmt.Fprintf(&b, "SECURITY:NONE\r\n")
	fmt.Fprintf(&b, "ENCODING:USASCII\r\n")
	fmt.Fprintf(&b, "CHARSET:1252\r\n")
	fmt.Fprintf(&b, "COMPRESSION:NONE\r\n")
	fmt.Fprintf(&b, "OLDFILEUID:NONE\r\n")
	fmt.Fprintf(&b, "NEWFILEUID:%s\r\n", newUID())
	b.WriteString("\r\n")
	b.WriteString("<OFX>\r\n")
	b.WriteString(c.signOn())
	b.WriteString(payload)
	b.WriteString("</OFX>\r\n")
	return b.String()
}

func (c *Client) signOn() string {
	var b strings.Builder
	b.WriteString("<SIGNONMSGSRQV1>\r\n<SONRQ>\r\n")
	fmt.Fprintf(&b, "<DTCLIENT>%s</DTCLIENT>\r\n", FormatOFXDate(time.Now()))
	fmt.Fprintf(&b, "<USERID>%s</USERID>\r\n", c.Username)
	fmt.Fprintf(&b, "<USERPASS>%s</USERPASS>\r\n", c.Password)
	b.WriteString("<LANGUAGE>ENG</LANGUAGE>\r\n")
	fmt.Fprintf(&b, "<FI>\r\n<ORG>%s</ORG>\r\n<FID>%s</FID>\r\n</FI>\r\n", c.FI.Org, c.FI.FID)
	fmt.Fprintf(&b, "<APPID>%s</APPID>\r\n", c.AppID)
	fmt.Fprintf(&b, "<APPVER>%s</APPVER>\r\n", c.AppVersion)
	// CLIENTUID is only understood from spec version 103 onward; older
	// servers reject unknown sign-on elements.
	if v, err := strconv.Atoi(c.OFXVersion); err == nil && v >= 103 {
		fmt.Fprintf(&b, "<CLIENTUID>%s</CLIENTUID>\r\n", c.ClientID)
	}
	b.WriteString("</SONRQ>\r\n</SIGNONMSGSRQV1>\r\n")
	return b.String()
}

// message wraps a payload in the transaction request envelope for the given
// message set, attaching a fresh TRNUID and the next CLTCOOKIE.
func (c *Client) message(msgType, trnType, payload string) string {
	return fmt.Sprintf(
		"<%sMSGSRQV1>\r\n<%sTRNRQ>\r\n<TRNUID>%s</TRNUID>\r\n<CLTCOOKIE>%s</CLTCOOKIE>\r\n%s</%sTRNRQ>\r\n</%sMSGSRQV1>\r\n",
		msgType, trnType, newUID(), c.nextCookie(), payload, trnType, msgType)
}

// ProfileRequest builds a server profile request message.
func (c *Client) ProfileRequest() string {
	payload := "<PROFRQ>\r\n<CLIENTROUTING>NONE</CLIENTROUTING>\r\n<DTPROFUP>19700101000000</DTPROFUP>\r\n</PROFRQ>\r\n"
	return c.message("PROF", "PROF", payload)
}

// AccountListRequest builds an account discovery request for accounts
// updated since the given OFX date.
func (c *Client) AccountListRequest(since string) string {
	payload := fmt.Sprintf("<ACCTINFORQ>\r\n<DTACCTUP>%s</DTACCTUP>\r\n</ACCTINFORQ>\r\n", since)
	return c.message("SIGNUP", "ACCTINFO", payload)
}

// BankStatementRequest builds a bank statement request.
func (c *Client) BankStatementRequest(bankID, accountID, accountType string, start time.Time) string {
	payload := fmt.Sprintf(
		"<STMTRQ>\r\n<BANKACCTFROM>\r\n<BANKID>%s</BANKID>\r\n<ACCTID>%s</ACCTID>\r\n<ACCTTYPE>%s</ACCTTYPE>\r\n</BANKACCTFROM>\r\n<INCTRAN>\r\n<DTSTART>%s</DTSTART>\r\n<INCLUDE>Y</INCLUDE>\r\n</INCTRAN>\r\n</STMTRQ>\r\n",
		bankID, accountID, accountType, FormatOFXDate(start))
	return c.message("BANK", "STMT", payload)
}

// CreditCardStatementRequest builds a credit card statement request.
func (c *Client) CreditCardStatementRequest(accountID string, start time.Time) string {
	payload := fmt.Sprintf(
		"<CCSTMTRQ>\r\n<CCACCTFROM>\r\n<ACCTID>%s</ACCTID>\r\n</CCACCTFROM>\r\n<INCTRAN>\r\n<DTSTART>%s</DTSTART>\r\n<INCLUDE>Y</INCLUDE>\r\n</INCTRAN>\r\n</CCSTMTRQ>\r\n",
		accountID, FormatOFXDate(start))
	return c.message("CREDITCARD", "CCSTMT", payload)
}

// InvestmentStatementRequest builds a brokerage statement request. It also
// asks for open orders, a second zero-span transaction window anchored at
// now, and balance inclusion.
func (c *Client) InvestmentStatementRequest(brokerID, accountID string, start time.Time) string {
	payload := fmt.Sprintf(
		"<INVSTMTRQ>\r\n<INVACCTFROM>\r\n<BROKERID>%s</BROKERID>\r\n<ACCTID>%s</ACCTID>\r\n</INVACCTFROM>\r\n<INCTRAN>\r\n<DTSTART>%s</DTSTART>\r\n<INCLUDE>Y</INCLUDE>\r\n</INCTRAN>\r\n<INCOO>Y</INCOO>\r\n<INCTRAN>\r\n<DTSTART>%s</DTSTART>\r\n<INCLUDE>Y</INCLUDE>\r\n</INCTRAN>\r\n<INCBAL>Y</INCBAL>\r\n</INVSTMTRQ>\r\n",
		brokerID, accountID, FormatOFXDate(start), FormatOFXDate(time.Now()))
	return c.message("INVSTMT", "INVSTMT", payload)
}

// QueryProfile requests the server profile.
func (c *Client) QueryProfile(ctx context.Context) (*ParseResult, error) {
	return c.query(ctx, c.ProfileRequest())
}

// QueryAccountList requests the accounts known to the institution. A zero
// since falls back to DefaultAccountListDate.
func (c *Client) QueryAccountList(ctx context.Context, since time.Time) (*ParseResult, error) {
	watermark := DefaultAccountListDate
	if !since.IsZero() {
		watermark = FormatOFXDate(since)
	}
	return c.query(ctx, c.AccountListRequest(watermark))
}

// QueryBankStatements requests a bank account statement from start onward.
func (c *Client) QueryBankStatements(ctx context.Context, bankID, accountID, accountType string, start time.Time) (*ParseResult, error) {
	return c.query(ctx, c.BankStatementRequest(bankID, accountID, accountType, start))
}

// QueryCreditCardStatements requests a credit card statement from start
// onward.
func (c *Client) QueryCreditCardStatements(ctx context.Context, accountID string, start time.Time) (*ParseResult, error) {
	return c.query(ctx, c.CreditCardStatementRequest(accountID, start))
}

// QueryInvestmentStatements requests a brokerage statement from start
// onward.
func (c *Client) QueryInvestmentStatements(ctx context.Context, brokerID, accountID string, start time.Time) (*ParseResult, error) {
	return c.query(ctx, c.InvestmentStatementRequest(brokerID, accountID, start))
}

func (c *Client) query(ctx context.Context, payload string) (*ParseResult, error) {
	body, retried, err := c.send(ctx, c.AuthenticatedQuery(payload))
	if err != nil {
		return nil, err
	}
	if retried && len(body) == 0 {
		return nil, ErrRetryExhausted
	}
	return ParseWithOptions([]byte(body), c.ParseOptions)
}
