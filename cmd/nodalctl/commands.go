package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"Nodal/internal/auth"
	"Nodal/internal/calc/fluid"
	"Nodal/internal/calc/friction"
	"Nodal/internal/calc/ipr"
	"Nodal/internal/calc/nodal"
	"Nodal/internal/display"
)

type rootOptions struct {
	JSON bool
}

type wellFlags struct {
	tp  ipr.TestPoint
	ef  float64
	ef2 float64
}

func (f *wellFlags) register(cmd *cobra.Command) {
	registerTestPoint(cmd, &f.tp)
	fs := cmd.Flags()
	fs.Float64Var(&f.ef, "ef", 1, "flow efficiency of the tested completion")
	fs.Float64Var(&f.ef2, "ef2", 1, "flow efficiency to project to")
}

func registerTestPoint(cmd *cobra.Command, tp *ipr.TestPoint) {
	fs := cmd.Flags()
	fs.Float64Var(&tp.QTest, "q-test", 0, "test oil rate, bpd")
	fs.Float64Var(&tp.PwfTest, "pwf-test", 0, "test flowing bottom-hole pressure, psi")
	fs.Float64Var(&tp.Pr, "pr", 0, "average reservoir pressure, psi")
	fs.Float64Var(&tp.Pb, "pb", 0, "bubble point pressure, psi")
	for _, name := range []string{"q-test", "pwf-test", "pr", "pb"} {
		cmd.MarkFlagRequired(name)
	}
}

func (f *wellFlags) efficiency(cmd *cobra.Command) ipr.Efficiency {
	if cmd.Flags().Changed("ef2") {
		return ipr.WithTransfer(f.ef, f.ef2)
	}
	return ipr.Efficiency{EF: f.ef}
}

func (f *wellFlags) input(cmd *cobra.Command) ipr.WellInput {
	e := f.efficiency(cmd)
	return ipr.WellInput{TestPoint: f.tp, EF: &e.EF, EF2: e.EF2}
}

type row struct {
	label string
	value string
}

func printRows(w io.Writer, rows []row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r.label, r.value)
	}
	return tw.Flush()
}

// emit prints v as JSON when asked, the text rows otherwise.
func emit(cmd *cobra.Command, opts *rootOptions, v any, rows []row) error {
	if opts.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return printRows(cmd.OutOrStdout(), rows)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "nodalctl",
		Short:         "Inflow performance and nodal analysis calculations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "print results as JSON")

	cmd.AddCommand(
		newCapacityCmd(opts),
		newDarcyIndexCmd(opts),
		newRateCmd(opts),
		newPressureCmd(opts),
		newCurveCmd(opts),
		newFluidCmd(opts),
		newFrictionCmd(opts),
		newNodalCmd(opts),
		newHashPasswordCmd(),
	)
	return cmd
}

func newCapacityCmd(opts *rootOptions) *cobra.Command {
	well := &wellFlags{}
	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Productivity index, rate at bubble point and absolute open flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ipr.Capacity(well.tp, well.efficiency(cmd))
			if err != nil {
				return err
			}
			rows := []row{
				{"state", string(s.State)},
				{"regime", s.Regime.String()},
				{"J", display.Format(s.J, display.BPDPerPSI)},
			}
			if s.Qb != nil {
				rows = append(rows, row{"Qb", display.Format(*s.Qb, display.BPD)})
			}
			rows = append(rows, row{"AOF", display.Format(s.AOF, display.BPD)})
			return emit(cmd, opts, s, rows)
		},
	}
	well.register(cmd)
	return cmd
}

func newRateCmd(opts *rootOptions) *cobra.Command {
	well := &wellFlags{}
	var (
		pwf    float64
		method string
	)
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Oil rate at a flowing bottom-hole pressure",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := ipr.RateInput{
				WellInput: well.input(cmd),
				Pwf:       pwf,
				Method:    method,
			}
			res, err := ipr.EvaluateRate(in)
			if err != nil {
				return err
			}
			return emit(cmd, opts, res, []row{
				{"method", string(res.Method)},
				{"q", display.Format(res.Q, display.BPD)},
			})
		},
	}
	well.register(cmd)
	cmd.Flags().Float64Var(&pwf, "pwf", 0, "flowing bottom-hole pressure, psi")
	cmd.Flags().StringVar(&method, "method", "", "darcy, vogel, standing, composite or auto")
	cmd.MarkFlagRequired("pwf")
	return cmd
}

func newPressureCmd(opts *rootOptions) *cobra.Command {
	well := &wellFlags{}
	var (
		q      float64
		method string
	)
	cmd := &cobra.Command{
		Use:   "pressure",
		Short: "Flowing bottom-hole pressure at an oil rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := ipr.EvaluatePressure(ipr.PressureInput{TestPoint: well.tp, Q: q, Method: method})
			if err != nil {
				return err
			}
			return emit(cmd, opts, res, []row{
				{"method", string(res.Method)},
				{"pwf", display.Format(res.Pwf, display.PSI)},
			})
		},
	}
	well.register(cmd)
	cmd.Flags().Float64Var(&q, "q", 0, "oil rate, bpd")
	cmd.Flags().StringVar(&method, "method", "", "darcy or vogel")
	cmd.MarkFlagRequired("q")
	cmd.MarkFlagRequired("method")
	return cmd
}

func newCurveCmd(opts *rootOptions) *cobra.Command {
	well := &wellFlags{}
	var (
		points  int
		methods []string
	)
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Inflow curve from pr down to zero",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := ipr.CurveInput{
				WellInput: well.input(cmd),
				Points:    points,
				Methods:   methods,
			}
			res, err := ipr.EvaluateCurves(in)
			if err != nil {
				return err
			}
			if opts.JSON {
				return emit(cmd, opts, res, nil)
			}
			return printCurves(cmd.OutOrStdout(), res)
		},
	}
	well.register(cmd)
	cmd.Flags().IntVar(&points, "points", ipr.DefaultCurvePoints, "grid size")
	cmd.Flags().StringSliceVar(&methods, "method", nil, "methods to compare (repeatable)")
	return cmd
}

func printCurves(w io.Writer, res ipr.CurveResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "pwf (psi)\t")
	for _, c := range res.Curves {
		fmt.Fprintf(tw, "q %s (bpd)\t", c.Method)
	}
	fmt.Fprintln(tw)
	if len(res.Curves) > 0 {
		for i, pwf := range res.Curves[0].Pwf {
			fmt.Fprintf(tw, "%s\t", display.Number(pwf))
			for _, c := range res.Curves {
				fmt.Fprintf(tw, "%s\t", display.Number(c.Q[i]))
			}
			fmt.Fprintln(tw)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if bp := res.BubblePoint; bp != nil {
		_, err := fmt.Fprintf(w, "bubble point: %s at %s\n",
			display.Format(bp.Q, display.BPD), display.Format(bp.Pwf, display.PSI))
		return err
	}
	return nil
}

func newDarcyIndexCmd(opts *rootOptions) *cobra.Command {
	var (
		p      ipr.ReservoirProperties
		regime string
	)
	cmd := &cobra.Command{
		Use:   "darcy-index",
		Short: "Productivity index from reservoir properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := ipr.EvaluateDarcyProductivity(ipr.DarcyInput{ReservoirProperties: p, Regime: ipr.FlowRegime(regime)})
			if err != nil {
				return err
			}
			return emit(cmd, opts, res, []row{{"J", display.Format(res.J, display.BPDPerPSI)}})
		},
	}
	fs := cmd.Flags()
	fs.Float64Var(&p.Ko, "ko", 0, "oil permeability, md")
	fs.Float64Var(&p.H, "h", 0, "net pay thickness, ft")
	fs.Float64Var(&p.Bo, "bo", 0, "oil formation volume factor, rb/STB")
	fs.Float64Var(&p.Uo, "uo", 0, "oil viscosity, cp")
	fs.Float64Var(&p.Re, "re", 0, "drainage radius, ft")
	fs.Float64Var(&p.Rw, "rw", 0, "wellbore radius, ft")
	fs.Float64Var(&p.Skin, "s", 0, "skin factor")
	fs.StringVar(&regime, "regime", string(ipr.PseudoSteady), "pseudo_steady or steady")
	for _, name := range []string{"ko", "h", "bo", "uo", "re", "rw"} {
		cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newNodalCmd(opts *rootOptions) *cobra.Command {
	var (
		in     nodal.Input
		qmax   float64
		points int
	)
	cmd := &cobra.Command{
		Use:   "nodal",
		Short: "System curve and operating point of a producing well",
		Long: "Evaluates the listed --rate values, or a --points grid from zero to --q-max\n" +
			"when no rate is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(in.Rates) == 0 {
				grid, err := ipr.RateGrid(qmax, points)
				if err != nil {
					return err
				}
				in.Rates = grid
			}
			res, err := nodal.Calculate(in)
			if err != nil {
				return err
			}
			if opts.JSON {
				return emit(cmd, opts, res, nil)
			}
			return printSystem(cmd.OutOrStdout(), res)
		},
	}
	registerTestPoint(cmd, &in.TestPoint)
	fs := cmd.Flags()
	fs.Float64SliceVar(&in.Rates, "rate", nil, "oil rate to evaluate, bpd (repeatable)")
	fs.Float64Var(&qmax, "q-max", 0, "top of the rate grid, bpd")
	fs.IntVar(&points, "points", ipr.DefaultCurvePoints, "rate grid size")
	fs.StringVar(&in.Method, "method", "", "darcy or vogel")
	fs.Float64Var(&in.THP, "thp", 0, "tubing head pressure, psi")
	fs.Float64Var(&in.API, "api", 0, "oil API gravity")
	fs.Float64Var(&in.WaterCut, "wc", 0, "water cut fraction, 0..1")
	fs.Float64Var(&in.SGWater, "sg-water", 1, "water specific gravity")
	fs.Float64Var(&in.InnerDiameter, "id", 0, "tubing inner diameter, in")
	fs.Float64Var(&in.Roughness, "c", friction.DefaultRoughness, "roughness coefficient")
	fs.Float64Var(&in.TVD, "tvd", 0, "true vertical depth, ft")
	fs.Float64Var(&in.MD, "md", 0, "measured depth, ft")
	fs.Float64Var(&in.FluidLevel, "fluid-level", 0, "fluid level, ft")
	cmd.MarkFlagsOneRequired("rate", "q-max")
	for _, name := range []string{"api", "id", "tvd", "md"} {
		cmd.MarkFlagRequired(name)
	}
	return cmd
}

func printSystem(w io.Writer, res nodal.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "q (bpd)\tpwf (psi)\tpo (psi)\tpsys (psi)\t")
	for _, r := range res.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
			display.Number(r.Q), display.Number(r.Pwf), display.Number(r.Po), display.Number(r.Psys))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if op := res.Operating; op != nil {
		_, err := fmt.Fprintf(w, "operating point: %s at %s\n",
			display.Format(op.Q, display.BPD), display.Format(op.Pwf, display.PSI))
		return err
	}
	_, err := fmt.Fprintln(w, "no operating point in the evaluated rates")
	return err
}

func newFluidCmd(opts *rootOptions) *cobra.Command {
	var in fluid.Input
	cmd := &cobra.Command{
		Use:   "fluid",
		Short: "Oil and mixture gravity and the average pressure gradient",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := fluid.Calculate(in)
			if err != nil {
				return err
			}
			return emit(cmd, opts, res, []row{
				{"SG oil", display.Format(res.SGOil, display.Dimensionless)},
				{"SG mixture", display.Format(res.SGMix, display.Dimensionless)},
				{"gradient", display.Format(res.Gradient, display.PSIPerFoot)},
			})
		},
	}
	cmd.Flags().Float64Var(&in.API, "api", 0, "oil API gravity")
	cmd.Flags().Float64Var(&in.WaterCut, "wc", 0, "water cut fraction, 0..1")
	cmd.Flags().Float64Var(&in.SGWater, "sg-water", 1, "water specific gravity")
	cmd.MarkFlagRequired("api")
	return cmd
}

func newFrictionCmd(opts *rootOptions) *cobra.Command {
	var in friction.Input
	cmd := &cobra.Command{
		Use:   "friction",
		Short: "Friction loss factor in the tubing",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := friction.Calculate(in)
			if err != nil {
				return err
			}
			return emit(cmd, opts, res, []row{
				{"f", display.Format(res.Factor, display.Dimensionless)},
				{"C", display.Format(res.Roughness, display.Dimensionless)},
			})
		},
	}
	cmd.Flags().Float64Var(&in.Rate, "q", 0, "oil rate, bpd")
	cmd.Flags().Float64Var(&in.InnerDiameter, "id", 0, "tubing inner diameter, in")
	cmd.Flags().Float64Var(&in.Roughness, "c", friction.DefaultRoughness, "roughness coefficient")
	cmd.MarkFlagRequired("q")
	cmd.MarkFlagRequired("id")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash to put in ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}
