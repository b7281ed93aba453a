package tuning_test

import (
	"errors"
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/itaetune/internal/tuning"
)

var _ = Describe("Evaluate", func() {
	DescribeTable("returns exactly the keys of the controller type",
		func(input, controller string, keys []string) {
			s := tuning.Evaluate(input, controller, 1.5, 0.8, 4.0)
			Expect(s).To(HaveLen(len(keys)))
			for _, k := range keys {
				Expect(s).To(HaveKey(k))
				Expect(math.IsInf(s[k], 0) || math.IsNaN(s[k])).To(BeFalse())
			}
			Expect(s.Keys()).To(Equal(keys))
		},
		Entry("disturbance PI", "Disturbance", "PI", []string{"Kc", "tau_I"}),
		Entry("disturbance PID", "Disturbance", "PID", []string{"Kc", "tau_I", "tau_D"}),
		Entry("set point PI", "Set point", "PI", []string{"Kc", "tau_I"}),
		Entry("set point PID", "Set point", "PID", []string{"Kc", "tau_I", "tau_D"}),
	)

	DescribeTable("returns an empty mapping for unknown combinations",
		func(input, controller string) {
			s := tuning.Evaluate(input, controller, 1.0, 1.0, 1.0)
			Expect(s).NotTo(BeNil())
			Expect(s.Empty()).To(BeTrue())
			Expect(s.Keys()).To(BeEmpty())
		},
		Entry("unknown input", "Ramp", "PI"),
		Entry("unknown controller", "Disturbance", "PD"),
		Entry("both unknown", "", ""),
		Entry("lowercase input is not canonical", "disturbance", "PI"),
		Entry("lowercase controller is not canonical", "Set point", "pid"),
		Entry("setpoint without space", "Setpoint", "PID"),
	)

	It("matches the disturbance PI formulas", func() {
		s := tuning.Evaluate("Disturbance", "PI", 2.0, 1.0, 5.0)
		Expect(s["Kc"]).To(BeNumerically("~", 0.859*math.Pow(0.2, -0.977)/2.0, 1e-12))
		Expect(s["tau_I"]).To(BeNumerically("~", 5.0/(0.674*math.Pow(0.2, -0.680)), 1e-12))
		Expect(s["Kc"]).To(BeNumerically("~", 2.06946, 5e-6))
		Expect(s["tau_I"]).To(BeNumerically("~", 2.48319, 5e-6))
	})

	It("uses the additive integral formula for set point PID", func() {
		s := tuning.Evaluate("Set point", "PID", 1.0, 0.5, 2.0)
		Expect(s["Kc"]).To(BeNumerically("~", 0.965*math.Pow(0.25, -0.850), 1e-12))
		Expect(s["tau_I"]).To(BeNumerically("~", 2.0/(0.796-0.1465*0.25), 1e-12))
		Expect(s["tau_D"]).To(BeNumerically("~", 0.308*math.Pow(0.25, 0.929), 1e-12))
		for _, v := range s {
			Expect(v).To(BeNumerically(">", 0))
		}
		Expect(s["tau_I"]).To(BeNumerically("~", 2.63374, 5e-6))
	})

	It("uses the power-law integral formula for disturbance PID", func() {
		s := tuning.Evaluate("Disturbance", "PID", 1.0, 0.5, 2.0)
		Expect(s["tau_I"]).To(BeNumerically("~", 2.0/(0.842*math.Pow(0.25, -0.738)), 1e-12))
		Expect(s["tau_D"]).To(BeNumerically("~", 0.381*math.Pow(0.25, 0.995), 1e-12))
	})

	It("reduces power-law terms to A when theta equals tau", func() {
		s := tuning.Evaluate("Disturbance", "PID", 2.0, 3.0, 3.0)
		Expect(s["Kc"]).To(BeNumerically("~", 1.357/2.0, 1e-12))
		Expect(s["tau_I"]).To(BeNumerically("~", 3.0/0.842, 1e-12))
		Expect(s["tau_D"]).To(Equal(0.381))

		s = tuning.Evaluate("Set point", "PID", 1.0, 3.0, 3.0)
		Expect(s["Kc"]).To(Equal(0.965))
		Expect(s["tau_I"]).To(BeNumerically("~", 3.0/(0.796-0.1465), 1e-12))
		Expect(s["tau_D"]).To(Equal(0.308))
	})

	It("is idempotent", func() {
		a := tuning.Evaluate("Set point", "PI", 0.7, 1.3, 9.1)
		for i := 0; i < 10; i++ {
			b := tuning.Evaluate("Set point", "PI", 0.7, 1.3, 9.1)
			Expect(b).To(HaveLen(len(a)))
			for k, v := range a {
				Expect(math.Float64bits(b[k])).To(Equal(math.Float64bits(v)))
			}
		}
	})

	It("does not guard against a zero time constant", func() {
		s := tuning.Evaluate("Disturbance", "PI", 1.0, 1.0, 0.0)
		Expect(s).To(HaveLen(2))
		Expect(math.IsNaN(s["tau_I"])).To(BeTrue())
	})
})

var _ = Describe("Concurrent use", func() {
	It("gives every goroutine bit-identical results", func() {
		type call struct {
			in, ctrl      string
			k, theta, tau float64
		}
		calls := []call{
			{"Disturbance", "PI", 2, 1, 5},
			{"Disturbance", "PID", 1, 0.3, 4},
			{"Set point", "PI", 0.5, 2, 3},
			{"Set point", "PID", 1, 0.5, 2},
		}
		want := make([]tuning.Settings, len(calls))
		for i, c := range calls {
			want[i] = tuning.Evaluate(c.in, c.ctrl, c.k, c.theta, c.tau)
		}
		wantTable := tuning.Table()

		const workers = 16
		var (
			wg         sync.WaitGroup
			mu         sync.Mutex
			mismatches []string
		)
		report := func(m string) {
			mu.Lock()
			mismatches = append(mismatches, m)
			mu.Unlock()
		}
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for round := 0; round < 50; round++ {
					for i, c := range calls {
						got := tuning.Evaluate(c.in, c.ctrl, c.k, c.theta, c.tau)
						if len(got) != len(want[i]) {
							report(c.in + "/" + c.ctrl + ": key count")
							continue
						}
						for key, v := range want[i] {
							if math.Float64bits(got[key]) != math.Float64bits(v) {
								report(c.in + "/" + c.ctrl + ": " + key)
							}
						}
					}
					if _, ok := tuning.Lookup(tuning.SetPoint, tuning.PID); !ok {
						report("lookup")
					}
					tbl := tuning.Table()
					tbl[0].P.A = -1
				}
			}()
		}
		wg.Wait()

		Expect(mismatches).To(BeEmpty())
		Expect(tuning.Table()).To(Equal(wantTable))
	})
})

var _ = Describe("Calculate", func() {
	It("agrees with Evaluate", func() {
		p := tuning.Process{K: 2.0, Theta: 1.0, Tau: 5.0}
		s, err := tuning.Calculate(tuning.Disturbance, tuning.PI, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal(tuning.Evaluate("Disturbance", "PI", 2.0, 1.0, 5.0)))
	})

	It("rejects invalid parameters before evaluating", func() {
		_, err := tuning.Calculate(tuning.SetPoint, tuning.PID, tuning.Process{K: 1, Theta: 0, Tau: 1})
		Expect(err).To(MatchError(tuning.ErrInvalidParameter))

		var pe *tuning.ParameterError
		Expect(errors.As(err, &pe)).To(BeTrue())
		Expect(pe.Name).To(Equal("theta"))
	})

	It("reports unknown pairs as an invalid combination", func() {
		_, err := tuning.Calculate(tuning.InputType(7), tuning.PI, tuning.Process{K: 1, Theta: 1, Tau: 1})
		Expect(err).To(MatchError(tuning.ErrInvalidCombination))
	})
})

var _ = Describe("Process", func() {
	DescribeTable("Validate",
		func(p tuning.Process, name string) {
			err := p.Validate()
			if name == "" {
				Expect(err).NotTo(HaveOccurred())
				return
			}
			Expect(errors.Is(err, tuning.ErrInvalidParameter)).To(BeTrue())
			var pe *tuning.ParameterError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Name).To(Equal(name))
		},
		Entry("positive", tuning.Process{K: 1, Theta: 2, Tau: 3}, ""),
		Entry("zero gain", tuning.Process{K: 0, Theta: 2, Tau: 3}, "K"),
		Entry("negative dead time", tuning.Process{K: 1, Theta: -2, Tau: 3}, "theta"),
		Entry("zero time constant", tuning.Process{K: 1, Theta: 2, Tau: 0}, "tau"),
		Entry("NaN gain", tuning.Process{K: math.NaN(), Theta: 2, Tau: 3}, "K"),
		Entry("infinite time constant", tuning.Process{K: 1, Theta: 2, Tau: math.Inf(1)}, "tau"),
	)

	It("computes the controllability ratio", func() {
		Expect(tuning.Process{K: 1, Theta: 1, Tau: 4}.Ratio()).To(Equal(0.25))
	})
})
