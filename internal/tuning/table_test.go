package tuning_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/itaetune/internal/tuning"
)

var _ = Describe("Table", func() {
	It("covers every input/controller pair once", func() {
		seen := map[[2]int]bool{}
		for _, c := range tuning.Table() {
			key := [2]int{int(c.Input), int(c.Controller)}
			Expect(seen).NotTo(HaveKey(key))
			seen[key] = true
		}
		Expect(seen).To(HaveLen(4))
	})

	It("hands out copies", func() {
		t := tuning.Table()
		t[0].P.A = 99
		c, ok := tuning.Lookup(tuning.Disturbance, tuning.PI)
		Expect(ok).To(BeTrue())
		Expect(c.P.A).To(Equal(0.859))
	})

	It("only has a derivative term for PID", func() {
		for _, c := range tuning.Table() {
			Expect(c.HasD).To(Equal(c.Controller == tuning.PID))
			_, ok := c.Coefficient(tuning.ModeD)
			Expect(ok).To(Equal(c.HasD))
		}
	})

	It("lists modes in P, I, D order", func() {
		c, _ := tuning.Lookup(tuning.SetPoint, tuning.PID)
		Expect(c.Modes()).To(Equal([]tuning.Mode{tuning.ModeP, tuning.ModeI, tuning.ModeD}))
		c, _ = tuning.Lookup(tuning.SetPoint, tuning.PI)
		Expect(c.Modes()).To(Equal([]tuning.Mode{tuning.ModeP, tuning.ModeI}))
	})

	It("does not resolve out-of-range enums", func() {
		_, ok := tuning.Lookup(tuning.SetPoint, tuning.ControllerType(5))
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Parsing", func() {
	DescribeTable("ParseInputType",
		func(s string, want tuning.InputType) {
			got, err := tuning.ParseInputType(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry(nil, "Disturbance", tuning.Disturbance),
		Entry(nil, "load", tuning.Disturbance),
		Entry(nil, "Set point", tuning.SetPoint),
		Entry(nil, "setpoint", tuning.SetPoint),
		Entry(nil, "set-point", tuning.SetPoint),
		Entry(nil, " SET_POINT ", tuning.SetPoint),
	)

	It("rejects unknown names", func() {
		_, err := tuning.ParseInputType("ramp")
		Expect(err).To(MatchError(tuning.ErrUnknownInputType))
		_, err = tuning.ParseControllerType("PD")
		Expect(err).To(MatchError(tuning.ErrUnknownControllerType))
	})

	It("round-trips canonical names", func() {
		for _, in := range tuning.InputTypes() {
			got, err := tuning.ParseInputType(in.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(in))
		}
		for _, ct := range tuning.ControllerTypes() {
			got, err := tuning.ParseControllerType(ct.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(ct))
		}
	})

	It("maps modes to setting keys", func() {
		Expect(tuning.ModeP.Key()).To(Equal(tuning.KeyKc))
		Expect(tuning.ModeI.Key()).To(Equal(tuning.KeyTauI))
		Expect(tuning.ModeD.Key()).To(Equal(tuning.KeyTauD))
	})
})
