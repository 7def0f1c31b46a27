package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aschiffer/duplex/internal/pdf"
	"github.com/aschiffer/duplex/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [files...]",
	Short: "Show page counts and page sizes of scan PDFs",
	Long: `Inspect reports the page count and page size of each file, so a scan pair
can be checked before merging. With no arguments it inspects the configured
front and back inputs. When exactly two files are inspected, it also says
whether their page counts line up.`,
	RunE: runInspect,
}

// inspectReport is the per-file result, also used for --json output.
type inspectReport struct {
	File  string    `json:"file"`
	Pages int       `json:"pages"`
	Dims  []pdf.Dim `json:"dims"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		cfg := types.MergeConfig{
			FrontPath: viper.GetString("front"),
			BackPath:  viper.GetString("back"),
		}
		args = []string{cfg.ResolvedFront(), cfg.ResolvedBack()}
	}

	codec := pdf.NewCodec()
	reports := make([]inspectReport, 0, len(args))
	for _, path := range args {
		doc, err := codec.Open(path)
		if err != nil {
			return err
		}
		dims, err := codec.Dims(path)
		if err != nil {
			return err
		}
		reports = append(reports, inspectReport{File: path, Pages: doc.PageCount, Dims: dims})
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	fmt.Fprintf(os.Stdout, "%-44s  %6s  %s\n", "File", "Pages", "Size (pts)")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 66))
	for _, r := range reports {
		fmt.Fprintf(os.Stdout, "%-44s  %6d  %s\n", r.File, r.Pages, sizeLabel(r.Dims))
	}

	if len(reports) == 2 && reports[0].Pages != reports[1].Pages {
		fmt.Fprintf(os.Stdout, "\npage counts differ (%d vs %d); merge would be refused\n",
			reports[0].Pages, reports[1].Pages)
	}
	return nil
}

// sizeLabel renders a uniform page size as WxH, or "mixed" when the file
// holds more than one size.
func sizeLabel(dims []pdf.Dim) string {
	if len(dims) == 0 {
		return "-"
	}
	first := dims[0]
	for _, d := range dims[1:] {
		if d != first {
			return "mixed"
		}
	}
	return fmt.Sprintf("%.0fx%.0f", first.Width, first.Height)
}

func init() {
	inspectCmd.Flags().Bool("json", false, "output reports as JSON")

	rootCmd.AddCommand(inspectCmd)
}
