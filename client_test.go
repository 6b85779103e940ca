package ofx_test

import (
	"regexp"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/ledgertools/ofx"
)

var (
	cltCookiePattern = regexp.MustCompile(`<CLTCOOKIE>(\d+)</CLTCOOKIE>`)
	trnUIDPattern    = regexp.MustCompile(`<TRNUID>([0-9a-f]{32})</TRNUID>`)
)

var _ = Describe("Client", func() {
	var client *ofx.Client

	BeforeEach(func() {
		client = ofx.NewClient(ofx.FI{Org: "Test Bank", FID: "123", URL: "https://ofx.example.com"}, "user", "secret")
	})

	Describe("NewClient()", func() {
		It("should apply the default application identity", func() {
			Expect(client.AppID).To(Equal(ofx.DefaultAppID))
			Expect(client.AppVersion).To(Equal(ofx.DefaultAppVersion))
			Expect(client.OFXVersion).To(Equal(ofx.DefaultOFXVersion))
			Expect(client.UserAgent).To(Equal(ofx.DefaultUserAgent))
			Expect(client.ClientID).To(MatchRegexp(`^[0-9a-f]{32}$`))
		})
		It("should give each client its own id", func() {
			other := ofx.NewClient(client.FI, "user", "secret")
			Expect(other.ClientID).NotTo(Equal(client.ClientID))
		})
	})

	Describe("AuthenticatedQuery()", func() {
		It("should emit the header preamble and sign-on envelope", func() {
			query := client.AuthenticatedQuery(client.ProfileRequest())
			Expect(query).To(HavePrefix("OFXHEADER:100\r\n"))
			Expect(query).To(ContainSubstring("DATA:OFXSGML\r\n"))
			Expect(query).To(ContainSubstring("VERSION:102\r\n"))
			Expect(query).To(MatchRegexp(`NEWFILEUID:[0-9a-f]{32}\r\n`))
			Expect(query).To(ContainSubstring("<OFX>"))
			Expect(query).To(ContainSubstring("<SONRQ>"))
			Expect(query).To(ContainSubstring("<USERID>user</USERID>"))
			Expect(query).To(ContainSubstring("<USERPASS>secret</USERPASS>"))
			Expect(query).To(ContainSubstring("<ORG>Test Bank</ORG>"))
			Expect(query).To(ContainSubstring("<APPID>QWIN</APPID>"))
			Expect(query).To(HaveSuffix("</OFX>\r\n"))
		})
		It("should omit CLIENTUID for version 102", func() {
			Expect(client.AuthenticatedQuery("")).NotTo(ContainSubstring("<CLIENTUID>"))
		})
		It("should include CLIENTUID from version 103 onward", func() {
			client.OFXVersion = "103"
			Expect(client.AuthenticatedQuery("")).To(ContainSubstring("<CLIENTUID>" + client.ClientID + "</CLIENTUID>"))
		})
	})

	Describe("message envelopes", func() {
		It("should serialize strictly increasing cookies starting at 4", func() {
			first := client.BankStatementRequest("074000010", "0123456789", "CHECKING", time.Now())
			second := client.BankStatementRequest("074000010", "0123456789", "CHECKING", time.Now())

			firstMatch := cltCookiePattern.FindStringSubmatch(first)
			Expect(firstMatch).NotTo(BeNil())
			Expect(firstMatch[1]).To(Equal("4"))
			secondMatch := cltCookiePattern.FindStringSubmatch(second)
			Expect(secondMatch).NotTo(BeNil())
			Expect(secondMatch[1]).To(Equal("5"))

			firstCookie, err := strconv.Atoi(firstMatch[1])
			Expect(err).To(Succeed())
			secondCookie, err := strconv.Atoi(secondMatch[1])
			Expect(err).To(Succeed())
			Expect(secondCookie).To(BeNumerically(">", firstCookie))
		})
		It("should attach a fresh TRNUID to every message", func() {
			first := trnUIDPattern.FindStringSubmatch(client.ProfileRequest())
			second := trnUIDPattern.FindStringSubmatch(client.ProfileRequest())
			Expect(first).NotTo(BeNil())
			Expect(second).NotTo(BeNil())
			Expect(first[1]).NotTo(Equal(second[1]))
		})
	})

	Describe("request payloads", func() {
		It("should build a profile request", func() {
			query := client.ProfileRequest()
			Expect(query).To(ContainSubstring("<PROFMSGSRQV1>"))
			Expect(query).To(ContainSubstring("<PROFTRNRQ>"))
			Expect(query).To(ContainSubstring("<CLIENTROUTING>NONE</CLIENTROUTING>"))
			Expect(query).To(ContainSubstring("</PROFMSGSRQV1>"))
		})
		It("should build an account discovery request", func() {
			query := client.AccountListRequest(ofx.DefaultAccountListDate)
			Expect(query).To(ContainSubstring("<SIGNUPMSGSRQV1>"))
			Expect(query).To(ContainSubstring("<ACCTINFOTRNRQ>"))
			Expect(query).To(ContainSubstring("<DTACCTUP>19700101000000</DTACCTUP>"))
		})
		It("should build a bank statement request", func() {
			start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
			query := client.BankStatementRequest("074000010", "0123456789", "CHECKING", start)
			Expect(query).To(ContainSubstring("<BANKMSGSRQV1>"))
			Expect(query).To(ContainSubstring("<STMTTRNRQ>"))
			Expect(query).To(ContainSubstring("<BANKID>074000010</BANKID>"))
			Expect(query).To(ContainSubstring("<ACCTID>0123456789</ACCTID>"))
			Expect(query).To(ContainSubstring("<ACCTTYPE>CHECKING</ACCTTYPE>"))
			Expect(query).To(ContainSubstring("<DTSTART>20230101000000</DTSTART>"))
			Expect(query).To(ContainSubstring("<INCLUDE>Y</INCLUDE>"))
		})
		It("should build a credit card statement request", func() {
			start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
			query := client.CreditCardStatementRequest("4111111111111111", start)
			Expect(query).To(ContainSubstring("<CREDITCARDMSGSRQV1>"))
			Expect(query).To(ContainSubstring("<CCSTMTTRNRQ>"))
			Expect(query).To(ContainSubstring("<CCACCTFROM>"))
			Expect(query).To(ContainSubstring("<ACCTID>4111111111111111</ACCTID>"))
		})
		It("should build an investment statement request with balances and open orders", func() {
			start := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
			query := client.InvestmentStatementRequest("broker.example.com", "9900001", start)
			Expect(query).To(ContainSubstring("<INVSTMTMSGSRQV1>"))
			Expect(query).To(ContainSubstring("<BROKERID>broker.example.com</BROKERID>"))
			Expect(query).To(ContainSubstring("<DTSTART>20230401000000</DTSTART>"))
			Expect(query).To(ContainSubstring("<INCOO>Y</INCOO>"))
			Expect(query).To(ContainSubstring("<INCBAL>Y</INCBAL>"))
		})
	})
})
