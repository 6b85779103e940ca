package ofx_test

import (
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/ledgertools/ofx"
)

var _ = Describe("ParseOFXDecimal()", func() {
	Context("when given a valid decimal string", func() {
		DescribeTable("should normalize locale variants to the same value family", func(input, expected string) {
			got, err := ofx.ParseOFXDecimal(input)
			Expect(err).To(Succeed())
			want, err := decimal.NewFromString(expected)
			Expect(err).To(Succeed())
			Expect(got.Equal(want)).To(BeTrue(), "got %s, want %s", got, want)
		},
			Entry("US grouping", "1,025.53", "1025.53"),
			Entry("European grouping", "1.025,53", "1025.53"),
			Entry("comma decimal point", "10000,50", "10000.50"),
			Entry("space grouping", "1 025,53", "1025.53"),
			Entry("leading plus sign", "+1058,53", "1058.53"),
			Entry("plain negative", "-4.50", "-4.50"),
			Entry("null placeholder", "null", "0"),
			Entry("negative null placeholder", "-null", "0"),
			Entry("zero-padded", "+00000000000.00", "0"),
		)
		It("should be idempotent on already-canonical strings", func() {
			first, err := ofx.ParseOFXDecimal("1.025,53")
			Expect(err).To(Succeed())
			second, err := ofx.ParseOFXDecimal(first.String())
			Expect(err).To(Succeed())
			Expect(second.Equal(first)).To(BeTrue())
		})
	})
	Context("when given an invalid decimal string", func() {
		DescribeTable("should return a DecimalFormatError naming the original text", func(input string) {
			_, err := ofx.ParseOFXDecimal(input)
			var formatErr *ofx.DecimalFormatError
			Expect(errors.As(err, &formatErr)).To(BeTrue())
			Expect(formatErr.Text).To(Equal(input))
		},
			Entry("text", "twelve"),
			Entry("empty", ""),
			Entry("lone separator", ","),
		)
	})
})
