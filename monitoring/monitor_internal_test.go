package monitoring

import (
	"encoding/json"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/hmem/buf"
)

var _ = Describe("Monitor", func() {
	var m *Monitor

	BeforeEach(func() {
		m = NewMonitor()
	})

	It("should register buffers once per name", func() {
		a := buf.New[float32]()
		b := buf.New[float32]()

		m.RegisterBuffer("a", a)
		m.RegisterBuffer("a", b)
		m.RegisterBuffer("b", b)

		Expect(m.names).To(Equal([]string{"a", "b"}))
		Expect(m.buffers).To(HaveLen(2))
	})

	It("should list registered buffers", func() {
		b := buf.New[float32]()
		Expect(b.Allocate(8, buf.Pageable)).To(Succeed())
		m.RegisterBuffer("scratch", b)

		rec := httptest.NewRecorder()
		m.listBuffers(rec, httptest.NewRequest("GET", "/api/buffers", nil))

		var rsp []bufferRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp).To(HaveLen(1))
		Expect(rsp[0].Name).To(Equal("scratch"))
		Expect(rsp[0].Allocated).To(BeTrue())
		Expect(rsp[0].Count).To(Equal(8))
		Expect(rsp[0].NumBytes).To(Equal(32))
		Expect(rsp[0].Space).To(Equal("Pageable"))
	})

	It("should report unknown buffers as 404", func() {
		rec := httptest.NewRecorder()
		m.inspectBuffer(rec,
			httptest.NewRequest("GET", "/api/buffer/nope", nil))

		Expect(rec.Code).To(Equal(404))
	})

	It("should reject privileged port numbers", func() {
		m.WithPortNumber(80)

		Expect(m.portNumber).To(Equal(0))
	})
})
