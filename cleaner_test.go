package ofx_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/ledgertools/ofx"
)

var _ = Describe("CleanupXML()", func() {
	DescribeTable("should close dangling leaf elements", func(data, expected string) {
		cleaner := ofx.NewCleaner()
		Expect(cleaner.CleanupXML([]byte(data)).String()).To(Equal(expected))
	},
		Entry("when the document is well formed",
			`<OFX><SIGNONMSGSRSV1></SIGNONMSGSRSV1></OFX>`,
			`<OFX><SIGNONMSGSRSV1></SIGNONMSGSRSV1></OFX>`),
		Entry("when leaf elements are missing end tags",
			`<OFX><STATUS><CODE>0<SEVERITY>INFO</STATUS><DTSERVER>20191027065402<LANGUAGE>ENG</OFX>`,
			`<OFX><STATUS><CODE>0</CODE><SEVERITY>INFO</SEVERITY></STATUS><DTSERVER>20191027065402</DTSERVER><LANGUAGE>ENG</LANGUAGE></OFX>`),
		Entry("when a leaf owns trailing text before a sibling leaf",
			`<OFX><STMTTRN><MEMO>Coffee<DTPOSTED>20230101120000</STMTTRN></OFX>`,
			`<OFX><STMTTRN><MEMO>Coffee</MEMO><DTPOSTED>20230101120000</DTPOSTED></STMTTRN></OFX>`),
		Entry("when a leaf closes explicitly elsewhere in the document",
			`<OFX><MEMO>one</MEMO><MEMO>two</MEMO></OFX>`,
			`<OFX><MEMO>one</MEMO><MEMO>two</MEMO></OFX>`),
		Entry("when a processing instruction precedes the body",
			`<?xml version="1.0"?><OFX><CODE>0</OFX>`,
			`<?xml version="1.0"?><OFX><CODE>0</CODE></OFX>`),
		Entry("when a comment appears between elements",
			`<OFX><!--server note--><CODE>0</OFX>`,
			`<OFX><!--server note--><CODE>0</CODE></OFX>`),
		Entry("when the input is genuinely malformed",
			`<OFX>>CODE<</OFX>`,
			`<OFX>>CODE<</OFX>`),
	)
})
