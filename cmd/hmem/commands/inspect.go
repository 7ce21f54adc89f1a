package commands

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/sarchlab/hmem/buf"
)

var inspectElemKind string

var inspectCmd = &cobra.Command{
	Use:   "inspect <dump-file>",
	Short: "Read a raw buffer dump and report its count and basic statistics.",
	Long: `Inspect reads a raw, headerless buffer dump. The file carries no ` +
		`element-type tag, so the element kind that was dumped must be given ` +
		`with --elem.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspectDump(cmd, args[0], inspectElemKind)
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectElemKind, "elem", "float32",
		"element kind of the dump "+
			"(uint8, int32, int64, float32, float64)")
	rootCmd.AddCommand(inspectCmd)
}

func inspectDump(cmd *cobra.Command, path, elem string) error {
	switch elem {
	case "uint8":
		return reportDump[uint8](cmd, path, elem)
	case "int32":
		return reportDump[int32](cmd, path, elem)
	case "int64":
		return reportDump[int64](cmd, path, elem)
	case "float32":
		return reportDump[float32](cmd, path, elem)
	case "float64":
		return reportDump[float64](cmd, path, elem)
	default:
		return fmt.Errorf("unknown element kind %q", elem)
	}
}

func reportDump[T buf.Element](cmd *cobra.Command, path, elem string) error {
	b, err := buf.Load[T](path)
	if err != nil {
		return err
	}
	defer b.Free()

	minV, maxV, mean := summarize(b.Slice())

	cmd.Printf("file:  %s\n", path)
	cmd.Printf("elem:  %s\n", elem)
	cmd.Printf("count: %d\n", b.Len())
	cmd.Printf("bytes: %d\n", b.NumBytes())
	cmd.Printf("min:   %g\n", minV)
	cmd.Printf("max:   %g\n", maxV)
	cmd.Printf("mean:  %g\n", mean)

	return nil
}

func summarize[T buf.Element](s []T) (minV, maxV, mean float64) {
	minV = math.Inf(1)
	maxV = math.Inf(-1)

	var sum float64
	for _, v := range s {
		f := float64(v)
		sum += f
		minV = math.Min(minV, f)
		maxV = math.Max(maxV, f)
	}

	mean = sum / float64(len(s))

	return minV, maxV, mean
}
