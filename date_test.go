package ofx_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/ledgertools/ofx"
)

var _ = Describe("ParseOFXDate()", func() {
	Context("when given a valid date string", func() {
		DescribeTable("should normalize to UTC", func(input string, expected time.Time) {
			got, err := ofx.ParseOFXDate(input, "")
			Expect(err).To(Succeed())
			Expect(got).NotTo(BeNil())
			Expect(*got).To(BeTemporally("==", expected))
		},
			Entry("YYYYMMDDHHMMSS", "20171108090000",
				time.Date(2017, 11, 8, 9, 0, 0, 0, time.UTC)),
			Entry("negative offset", "20101106160000.00[-5:EST]",
				time.Date(2010, 11, 6, 21, 0, 0, 0, time.UTC)),
			Entry("zero offset", "20170226120000.000[0:GMT]",
				time.Date(2017, 2, 26, 12, 0, 0, 0, time.UTC)),
			Entry("double digit offset", "20180313093000.000[-10:EDT]",
				time.Date(2018, 3, 13, 19, 30, 0, 0, time.UTC)),
			Entry("fractional seconds", "20101106160000.50[0:GMT]",
				time.Date(2010, 11, 6, 16, 0, 0, 500000000, time.UTC)),
			Entry("bare date", "20230101",
				time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
		)
		It("should honor a caller-supplied short date layout", func() {
			got, err := ofx.ParseOFXDate("02012019", "02012006")
			Expect(err).To(Succeed())
			Expect(*got).To(BeTemporally("==", time.Date(2019, 1, 2, 0, 0, 0, 0, time.UTC)))
		})
	})
	Context("when given the no-date sentinel", func() {
		DescribeTable("should return an explicit absence, not an error", func(input string) {
			got, err := ofx.ParseOFXDate(input, "")
			Expect(err).To(Succeed())
			Expect(got).To(BeNil())
		},
			Entry("bare sentinel", "00000000"),
			Entry("sentinel with time", "00000000000000"),
		)
	})
	Context("when given an invalid date string", func() {
		DescribeTable("should return a DateFormatError naming the original text", func(input string) {
			got, err := ofx.ParseOFXDate(input, "")
			Expect(got).To(BeNil())
			var formatErr *ofx.DateFormatError
			Expect(errors.As(err, &formatErr)).To(BeTrue())
			Expect(formatErr.Text).To(Equal(input))
		},
			Entry("empty", ""),
			Entry("text", "test"),
			Entry("slashed format", "2019/01/02"),
			Entry("missing month and day", "2019"),
		)
	})
})

var _ = Describe("FormatOFXDate()", func() {
	It("should render the wire format in UTC", func() {
		t := time.Date(2023, 1, 2, 15, 4, 5, 0, time.FixedZone("TTT", 2*60*60))
		Expect(ofx.FormatOFXDate(t)).To(Equal("20230102130405"))
	})
})
