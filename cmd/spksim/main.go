// Command spksim simulates a loudspeaker driver in an enclosure.
//
// Usage:
//
//	spksim [flags] params-file
//
// The parameter file holds Thiele-Small driver parameters and the enclosure
// description as "key = value" lines or YAML. Results are written as a
// table, CSV, JSON or parquet; -plot and -wav additionally render a PNG
// and the step response.
//
// Examples:
//
//	spksim woofer.txt
//	spksim -fmin 5 -fmax 500 -points 1000 -format csv -o woofer.csv woofer.yaml
//	spksim -ka-clamp -smooth 6 -plot woofer.png -wav step.wav woofer.txt
//
// Exit status is 0 on success, 2 for invalid parameters and 1 otherwise.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-speaker/internal/export"
	"github.com/cwbudde/algo-speaker/internal/paramfile"
	"github.com/cwbudde/algo-speaker/speaker/driver"
	"github.com/cwbudde/algo-speaker/speaker/grid"
	"github.com/cwbudde/algo-speaker/speaker/sim"
	"github.com/cwbudde/algo-speaker/speaker/validate"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitInvalid = 2
)

// errUsage marks command-line mistakes, which exit like invalid parameters.
var errUsage = errors.New("usage error")

type options struct {
	fmin, fmax float64
	points     int
	output     string
	format     string
	plot       string
	wav        string
	voltage    float64
	smooth     int
	kaClamp    bool
	step       bool
	verbose    bool
	paramsPath string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns its exit status.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "spksim: %v\n", err)
		return exitInvalid
	}

	log := newLogger(stderr, opts.verbose)
	defer func() { _ = log.Sync() }()

	if err := simulate(opts, stdout, log); err != nil {
		log.Error("simulation failed", zap.Error(err))
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, validate.ErrInvalidParameters),
		errors.Is(err, paramfile.ErrSyntax),
		errors.Is(err, errUsage):
		return exitInvalid
	default:
		return exitFailure
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("spksim", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.Float64Var(&o.fmin, "fmin", 0, "lowest frequency in Hz (default from file, else 10)")
	fs.Float64Var(&o.fmax, "fmax", 0, "highest frequency in Hz (default from file, else 1000)")
	fs.IntVar(&o.points, "points", 0, "number of log-spaced frequencies (default from file, else 500)")
	fs.StringVar(&o.output, "o", "-", "output path, - for stdout")
	fs.StringVar(&o.format, "format", "table", "output format: table, csv, json or parquet")
	fs.StringVar(&o.plot, "plot", "", "write SPL, impedance, excursion and step plots to this PNG")
	fs.StringVar(&o.wav, "wav", "", "write the step response to this WAV file")
	fs.Float64Var(&o.voltage, "voltage", 0, "rms drive voltage in V (default from file, else 2.83)")
	fs.IntVar(&o.smooth, "smooth", 0, "add a 1/N-octave smoothed SPL column to table and csv output")
	fs.BoolVar(&o.kaClamp, "ka-clamp", false, "limit fmax to the ka = 1 frequency of the driver")
	fs.BoolVar(&o.step, "step", true, "compute the step response; -step=false skips it unless -plot or -wav is set")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: spksim [flags] params-file\n\n")
		fmt.Fprintf(stderr, "Simulates a loudspeaker driver in an enclosure.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  spksim woofer.txt\n")
		fmt.Fprintf(stderr, "  spksim -format csv -o woofer.csv woofer.yaml\n")
		fmt.Fprintf(stderr, "  spksim -ka-clamp -plot woofer.png -wav step.wav woofer.txt\n")
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, fmt.Errorf("%w: expected one parameter file, got %d arguments", errUsage, fs.NArg())
	}
	if _, err := export.ParseFormat(o.format); err != nil {
		return nil, err
	}
	if o.smooth < 0 {
		return nil, fmt.Errorf("%w: -smooth must be >= 0", errUsage)
	}
	o.paramsPath = fs.Arg(0)
	o.step = o.step || o.plot != "" || o.wav != ""
	return o, nil
}

func simulate(o *options, stdout io.Writer, log *zap.Logger) error {
	f, err := paramfile.Load(o.paramsPath)
	if err != nil {
		return err
	}
	log.Debug("parameters loaded",
		zap.String("path", o.paramsPath),
		zap.Stringer("enclosure", f.Enclosure.Kind()),
	)

	if o.fmin > 0 {
		f.FMin = o.fmin
	}
	if o.fmax > 0 {
		f.FMax = o.fmax
	}
	if o.points > 0 {
		f.Points = o.points
	}
	if o.voltage > 0 {
		f.Voltage = o.voltage
	}

	g, err := f.Grid()
	if err != nil {
		return err
	}
	if o.kaClamp {
		if g, err = clampKa(f, g, log); err != nil {
			return err
		}
	}

	simOpts := append(f.Options(), sim.WithStepResponse(o.step))
	res, err := sim.Simulate(f.Driver, f.Enclosure, g, simOpts...)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		log.Warn(w.Message, zap.String("kind", string(w.Kind)))
	}
	log.Info("simulated",
		zap.String("enclosure", res.Enclosure.Kind),
		zap.Int("points", len(res.Freq)),
		zap.Float64("fmin", g.Min()),
		zap.Float64("fmax", g.Max()),
		zap.Float64("sensitivity_dB", res.Driver.Sensitivity),
	)

	format, err := export.ParseFormat(o.format)
	if err != nil {
		return err
	}
	if err := writeTo(o.output, stdout, func(w io.Writer) error {
		return export.Write(w, res, format, export.Options{Smooth: o.smooth})
	}); err != nil {
		return err
	}

	if o.plot != "" {
		if err := writeTo(o.plot, stdout, func(w io.Writer) error { return export.Plot(w, res) }); err != nil {
			return err
		}
		log.Info("plot written", zap.String("path", o.plot))
	}
	if o.wav != "" {
		if err := writeWAV(o.wav, res.Step); err != nil {
			return err
		}
		log.Info("step response written", zap.String("path", o.wav))
	}
	return nil
}

// clampKa drops grid points above the ka = 1 frequency of the driver.
func clampKa(f *paramfile.File, g grid.Grid, log *zap.Logger) (grid.Grid, error) {
	m, _, err := driver.Derive(f.Driver, f.Environment)
	if err != nil {
		return nil, err
	}
	limit := m.KaFrequency(1)
	clamped := grid.ClampKa(g, limit)
	if len(clamped) == 0 {
		return nil, validate.Errorf(validate.KindGrid, "fmin",
			"every frequency lies above the ka = 1 limit of %.1f Hz", limit)
	}
	if len(clamped) < len(g) {
		log.Info("grid clamped to ka = 1",
			zap.Float64("limit_hz", limit),
			zap.Int("dropped", len(g)-len(clamped)),
		)
	}
	return clamped, nil
}

func writeTo(path string, stdout io.Writer, write func(io.Writer) error) (err error) {
	if path == "-" || path == "" {
		return write(stdout)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return write(out)
}

func writeWAV(path string, step *sim.StepResponse) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return export.WAV(out, step)
}
