package main

import (
	"fmt"
	"log"

	"github.com/ledgertools/ofx"
)

func main() {
	data := []byte(`OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1><SONRS>
    <STATUS><CODE>0<SEVERITY>INFO</STATUS>
    <DTSERVER>20190923042445<LANGUAGE>ENG
    <FI><ORG>Test Bank</ORG><FID>123</FID></FI>
</SONRS></SIGNONMSGSRSV1>
<BANKMSGSRSV1><STMTTRNRS>
    <TRNUID>0
    <STATUS><CODE>0<SEVERITY>INFO</STATUS>
    <STMTRS>
        <CURDEF>USD
        <BANKACCTFROM><BANKID>456<ACCTID>789<ACCTTYPE>CHECKING</BANKACCTFROM>
        <BANKTRANLIST>
            <DTSTART>20190101120000.000[0:GMT]<DTEND>20190131120000.000[0:GMT]
            <STMTTRN><TRNTYPE>DEBIT<DTPOSTED>20190119090000<TRNAMT>-20.96<FITID>20190119090001<NAME>Sample Expense</STMTTRN>
            <STMTTRN><TRNTYPE>DEBIT<DTPOSTED>20190122090000<TRNAMT>-115.26<FITID>20190122090002<NAME>Another Expense</STMTTRN>
        </BANKTRANLIST>
        <LEDGERBAL>
            <BALAMT>315.50<DTASOF>20190131120000.000[0:GMT]
        </LEDGERBAL>
    </STMTRS>
</STMTTRNRS></BANKMSGSRSV1>
</OFX>
`)

	result, err := ofx.Parse(data)
	if err != nil {
		log.Fatalf("error parsing data - %s", err)
	}
	for _, account := range result.Accounts {
		fmt.Printf("account %s at %s\n", account.ID, account.Institution.Organization)
		for _, txn := range account.Statement.Transactions {
			fmt.Printf("  %s %s %s %q\n", txn.Date.Format("2006-01-02"), txn.Type, txn.Amount, txn.Payee)
		}
	}
}
