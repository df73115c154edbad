package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	sunMass   = 1.989e30
	earthMass = 5.97e24
	au        = 1.496e11
	hour      = 3600.0
)

func sun(dim int) *dynamo.Body {
	return dynamo.NewBody("sun", sunMass, make(dynamo.Vector, dim), make(dynamo.Vector, dim))
}

func circular(name string, r float64, dim int) *dynamo.Body {
	pos := make(dynamo.Vector, dim)
	pos[0] = r
	return dynamo.NewBody(name, earthMass, pos, physics.OrbitalInsert(physics.G*sunMass, pos))
}

var _ = Describe("Simulation driver", func() {
	var s *sim.Simulator

	BeforeEach(func() {
		s = sim.New(physics.NewGravity(), integrators.NewVerlet())
	})

	Context("determinism", func() {
		It("produces bit-identical trajectories for identical inputs", func() {
			a := dynamo.NewSystem(2, sun(2), circular("earth", au, 2), circular("mars", 1.52*au, 2))
			b := a.Clone()

			ra, err := s.Run(a, sim.Config{Dt: hour, TotalSteps: 500})
			Expect(err).NotTo(HaveOccurred())
			rb, err := sim.New(physics.NewGravity(), integrators.NewVerlet()).Run(b, sim.Config{Dt: hour, TotalSteps: 500})
			Expect(err).NotTo(HaveOccurred())

			Expect(ra.Trajectory.Positions).To(Equal(rb.Trajectory.Positions))
			Expect(ra.Trajectory.Times).To(Equal(rb.Trajectory.Times))
		})
	})

	Context("independence of bodies", func() {
		It("moves a body the same way with or without companions", func() {
			alone := dynamo.NewSystem(2, sun(2), circular("earth", au, 2))
			crowded := dynamo.NewSystem(2, sun(2),
				circular("venus", 0.72*au, 2),
				circular("earth", au, 2),
				circular("jupiter", 5.2*au, 2),
			)

			cfg := sim.Config{Dt: hour, TotalSteps: 1000}
			ra, err := s.Run(alone, cfg)
			Expect(err).NotTo(HaveOccurred())
			rc, err := s.Run(crowded, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(rc.Trajectory.Path(1)).To(Equal(ra.Trajectory.Path(0)))
			Expect(crowded.Host.Position).To(Equal(dynamo.Vector{0, 0}))
		})
	})

	DescribeTable("circular orbit stability",
		func(dim int) {
			sys := dynamo.NewSystem(dim, sun(dim), circular("earth", au, dim))
			period := 2 * math.Pi * math.Sqrt(au*au*au/(physics.G*sunMass))
			steps := int(math.Round(period / hour))

			res, err := s.Run(sys, sim.Config{Dt: hour, TotalSteps: steps})
			Expect(err).NotTo(HaveOccurred())

			for _, p := range res.Trajectory.Path(0) {
				Expect(p.Norm()).To(BeNumerically("~", au, 0.01*au))
			}
			final := sys.Bodies[0].Position
			Expect(final[0]).To(BeNumerically("~", au, 0.01*au))
			Expect(math.Abs(final[1])).To(BeNumerically("<", 0.01*au))
		},
		Entry("in 2D", 2),
		Entry("in 3D", 3),
	)

	Context("Kepler's second law", func() {
		It("sweeps equal areas in equal times on an eccentric orbit", func() {
			const rp, e = 1.471e11, 0.7
			gm := physics.G * sunMass
			comet := dynamo.NewBody("comet", earthMass, dynamo.Vector{rp, 0}, dynamo.Vector{0, physics.PeriapsisSpeed(gm, rp, e)})
			sys := dynamo.NewSystem(2, sun(2), comet)

			res, err := s.Run(sys, sim.Config{Dt: hour, TotalSteps: 3 * 365 * 24, IncludeInitial: true})
			Expect(err).NotTo(HaveOccurred())

			areas, err := analysis.SweptAreas(sys.Host.Position, res.Trajectory.Path(0), 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(areas).To(HaveLen(10))

			report := analysis.SecondLaw(areas, analysis.DefaultCVThreshold)
			Expect(report.CV).To(BeNumerically("<", 1.0))
			Expect(report.Pass).To(BeTrue())
		})
	})

	DescribeTable("zero gravity moves bodies in straight lines",
		func(scheme integrators.Scheme) {
			integ, err := integrators.New(scheme)
			Expect(err).NotTo(HaveOccurred())
			g := physics.NewGravity()
			g.G = 0

			b := dynamo.NewBody("probe", 1, dynamo.Vector{1e6, 2e6, 0}, dynamo.Vector{100, -50, 25})
			sys := dynamo.NewSystem(3, sun(3), b)

			_, err = sim.New(g, integ).Run(sys, sim.Config{Dt: 10, TotalSteps: 1000})
			Expect(err).NotTo(HaveOccurred())

			want := dynamo.Vector{1e6 + 100*1e4, 2e6 - 50*1e4, 25 * 1e4}
			for i := range want {
				Expect(b.Position[i]).To(BeNumerically("~", want[i], 1e-3))
			}
			Expect(b.Velocity).To(Equal(dynamo.Vector{100, -50, 25}))
		},
		Entry("velocity Verlet", integrators.VelocityVerlet),
		Entry("explicit Euler", integrators.ExplicitEuler),
	)

	Context("degenerate distance", func() {
		It("keeps a body sitting on the host finite", func() {
			b := dynamo.NewBody("stuck", 1, dynamo.Vector{0, 0}, dynamo.Vector{0, 0})
			sys := dynamo.NewSystem(2, sun(2), b)

			_, err := s.Run(sys, sim.Config{Dt: hour, TotalSteps: 10, ValidateState: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Position.IsValid()).To(BeTrue())
			Expect(b.Velocity.IsValid()).To(BeTrue())
		})
	})

	DescribeTable("precondition failures",
		func(sys func() *dynamo.System, cfg sim.Config, target error) {
			res, err := s.Run(sys(), cfg)
			Expect(err).To(MatchError(target))
			Expect(res).To(BeNil())
		},
		Entry("empty bodies",
			func() *dynamo.System { return dynamo.NewSystem(2, sun(2)) },
			sim.Config{Dt: hour, TotalSteps: 10}, dynamo.ErrConfiguration),
		Entry("zero dt",
			func() *dynamo.System { return dynamo.NewSystem(2, sun(2), circular("earth", au, 2)) },
			sim.Config{Dt: 0, TotalSteps: 10}, dynamo.ErrConfiguration),
		Entry("negative mass",
			func() *dynamo.System {
				b := circular("earth", au, 2)
				b.Mass = -1
				return dynamo.NewSystem(2, sun(2), b)
			},
			sim.Config{Dt: hour, TotalSteps: 10}, dynamo.ErrValidation),
		Entry("mixed dimensions",
			func() *dynamo.System { return dynamo.NewSystem(2, sun(2), circular("earth", au, 3)) },
			sim.Config{Dt: hour, TotalSteps: 10}, dynamo.ErrConfiguration),
	)
})
