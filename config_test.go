package ofx_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/ledgertools/ofx"
)

var _ = Describe("Connection files", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "ofx-config")
		Expect(err).To(Succeed())
	})
	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("should round-trip through save and load", func() {
		path := filepath.Join(dir, "bank.yaml")
		conn := &ofx.Connection{
			Org:        "Test Bank",
			FID:        "123",
			URL:        "https://ofx.example.com",
			OFXVersion: "103",
		}
		Expect(ofx.SaveConnection(path, conn)).To(Succeed())

		loaded, err := ofx.LoadConnection(path)
		Expect(err).To(Succeed())
		Expect(loaded).To(Equal(conn))
	})

	It("should report a missing file", func() {
		_, err := ofx.LoadConnection(filepath.Join(dir, "absent.yaml"))
		Expect(err).To(HaveOccurred())
	})

	It("should parse a hand-written file with optional fields omitted", func() {
		path := filepath.Join(dir, "bank.yaml")
		Expect(os.WriteFile(path, []byte("org: Test Bank\nfid: \"123\"\nurl: https://ofx.example.com\n"), 0o600)).To(Succeed())

		loaded, err := ofx.LoadConnection(path)
		Expect(err).To(Succeed())
		Expect(loaded.Org).To(Equal("Test Bank"))
		Expect(loaded.AppID).To(BeEmpty())
	})

	Describe("Connection.NewClient()", func() {
		It("should apply file overrides over the defaults", func() {
			conn := &ofx.Connection{Org: "Test Bank", FID: "123", URL: "https://ofx.example.com", OFXVersion: "103"}
			client := conn.NewClient("user", "secret")
			Expect(client.FI.Org).To(Equal("Test Bank"))
			Expect(client.OFXVersion).To(Equal("103"))
			Expect(client.AppID).To(Equal(ofx.DefaultAppID))
			Expect(client.AppVersion).To(Equal(ofx.DefaultAppVersion))
		})
	})
})
