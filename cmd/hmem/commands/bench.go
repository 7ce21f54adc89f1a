package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarchlab/hmem/buf"
	"github.com/sarchlab/hmem/device"
	"github.com/sarchlab/hmem/monitoring"
	"github.com/sarchlab/hmem/recording"
)

var (
	benchCount   int
	benchRounds  int
	benchEmulate bool
	benchDB      string
	benchMonitor bool
	benchOpen    bool
	benchPort    int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark buffer allocation, cloning, transfer, and dumping.",
	Long: `Bench runs allocation, clone, space-transfer, and dump rounds over ` +
		`every memory space the build can serve, and records per-event rows ` +
		`into a SQLite database. Without device support only pageable memory ` +
		`is exercised; --emulate injects a host-memory device emulator so ` +
		`all four spaces run.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runBench()
	},
}

func init() {
	benchCmd.Flags().IntVar(&benchCount, "count", 1<<20,
		"elements per buffer")
	benchCmd.Flags().IntVar(&benchRounds, "rounds", 8,
		"rounds per memory space")
	benchCmd.Flags().BoolVar(&benchEmulate, "emulate", false,
		"emulate device memory in host memory")
	benchCmd.Flags().StringVar(&benchDB, "db", os.Getenv("HMEM_DB"),
		"recording database path (no extension)")
	benchCmd.Flags().BoolVar(&benchMonitor, "monitor", false,
		"serve live buffer state over HTTP while the benchmark runs")
	benchCmd.Flags().BoolVar(&benchOpen, "open", false,
		"open the monitor in a browser (implies --monitor)")
	benchCmd.Flags().IntVar(&benchPort, "monitor-port", envInt("HMEM_MONITOR_PORT"),
		"monitor port (0 picks a random port)")
	rootCmd.AddCommand(benchCmd)
}

func envInt(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}

	return v
}

func benchDriver() device.Driver {
	if benchEmulate {
		return device.Emulator()
	}

	return device.Default()
}

func benchSpaces(drv device.Driver) []buf.Space {
	if !drv.Available() {
		return []buf.Space{buf.Pageable}
	}

	return []buf.Space{buf.Pageable, buf.Pinned, buf.Device, buf.Managed}
}

func runBench() error {
	drv := benchDriver()
	recorder := recording.New(benchDB)

	var monitor *monitoring.Monitor
	if benchMonitor || benchOpen {
		monitor = monitoring.NewMonitor().WithPortNumber(benchPort)
		monitor.StartServer()

		if benchOpen {
			monitor.OpenBrowser()
		}
	}

	dir, err := os.MkdirTemp("", "hmem_bench_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	for _, space := range benchSpaces(drv) {
		if err := benchSpace(drv, recorder, monitor, space, dir); err != nil {
			return fmt.Errorf("bench %s: %w", space, err)
		}
	}

	recorder.Flush()

	return nil
}

func benchSpace(
	drv device.Driver,
	recorder recording.Recorder,
	monitor *monitoring.Monitor,
	space buf.Space,
	dir string,
) error {
	name := "bench_" + space.String()

	b := buf.NewWithDriver[float32](drv)
	b.AcceptHook(recording.NewTracer(recorder, name))

	if monitor != nil {
		monitor.RegisterBuffer(name, b)
	}

	start := time.Now()

	for round := 0; round < benchRounds; round++ {
		if err := b.Allocate(benchCount, space); err != nil {
			return err
		}

		if space.HostAccessible() {
			s := b.Slice()
			for i := range s {
				s[i] = float32(i)
			}
		}

		c, err := b.Clone()
		if err != nil {
			return err
		}
		c.Free()

		if err := b.ToDevice(); err != nil {
			return err
		}

		if err := b.ToHost(buf.Pageable); err != nil {
			return err
		}

		path := filepath.Join(dir, name+".bin")
		if err := b.Dump(path); err != nil {
			return err
		}
	}

	elapsed := time.Since(start)
	b.Free()

	fmt.Printf("%-10s %d rounds x %d elements: %v\n",
		space, benchRounds, benchCount, elapsed)

	return nil
}
