package buf

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/hmem/device"
)

var _ = Describe("Dump and Load", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "hmem_dump_test_")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("should round trip a float32 buffer bit for bit", func() {
		path := filepath.Join(dir, "halves.bin")

		b := New[float32]()
		Expect(b.Allocate(100, Pageable)).To(Succeed())
		for i := range b.Slice() {
			b.Slice()[i] = float32(i) * 0.5
		}

		Expect(b.Dump(path)).To(Succeed())

		loaded, err := Load[float32](path)
		Expect(err).ToNot(HaveOccurred())

		Expect(loaded.Len()).To(Equal(100))
		Expect(loaded.Space()).To(Equal(Pageable))
		Expect(loaded.Slice()[37]).To(Equal(float32(18.5)))
		Expect(loaded.Slice()).To(Equal(b.Slice()))
	})

	It("should pull a device-resident buffer to the host before dumping", func() {
		path := filepath.Join(dir, "device.bin")

		b := NewWithDriver[int32](device.Emulator())
		Expect(b.Allocate(4, Pageable)).To(Succeed())
		copy(b.Slice(), []int32{10, 20, 30, 40})
		Expect(b.ToDevice()).To(Succeed())

		Expect(b.Dump(path)).To(Succeed())

		Expect(b.OnDevice()).To(BeFalse())
		Expect(b.Space()).To(Equal(Pageable))

		loaded, err := Load[int32](path)
		Expect(err).ToNot(HaveOccurred())
		Expect(loaded.Slice()).To(Equal([]int32{10, 20, 30, 40}))
	})

	It("should ignore remainder bytes beyond a whole element", func() {
		path := filepath.Join(dir, "ragged.bin")

		raw := make([]byte, 4*3+2) // three int32 values plus two stray bytes
		raw[0] = 7
		Expect(os.WriteFile(path, raw, 0644)).To(Succeed())

		loaded, err := Load[int32](path)

		Expect(err).ToNot(HaveOccurred())
		Expect(loaded.Len()).To(Equal(3))
		Expect(loaded.Slice()[0]).To(Equal(int32(7)))
	})

	It("should reject a file with no complete element", func() {
		path := filepath.Join(dir, "short.bin")
		Expect(os.WriteFile(path, []byte{1, 2}, 0644)).To(Succeed())

		_, err := Load[float64](path)

		Expect(errors.Is(err, ErrInvalidArgument)).To(BeTrue())
	})

	It("should report a missing file", func() {
		_, err := Load[float32](filepath.Join(dir, "no_such_file.bin"))

		Expect(err).To(HaveOccurred())
	})

	It("should fail to dump into a directory that does not exist", func() {
		b := New[float32]()
		Expect(b.Allocate(2, Pageable)).To(Succeed())

		err := b.Dump(filepath.Join(dir, "missing", "deep", "x.bin"))

		Expect(err).To(HaveOccurred())
	})
})
