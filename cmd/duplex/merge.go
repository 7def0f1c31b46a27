// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aschiffer/duplex/internal/archive"
	"github.com/aschiffer/duplex/internal/interleave"
	"github.com/aschiffer/duplex/internal/pdf"
	"github.com/aschiffer/duplex/internal/ticket"
	"github.com/aschiffer/duplex/pkg/types"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Interleave a front and back scan pass into one PDF",
	Long: `Merge reads the front-side and back-side scan PDFs, checks that their page
counts match, optionally rotates one side, and writes a single document with
the pages interleaved front, back, front, back. After a successful write the
two inputs are moved into the archive directory under timestamped names.

Settings come from flags, a merge ticket (--ticket), the duplex.yaml config
file, and the built-in scanner defaults, in that order of precedence.`,
	RunE: runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg := types.MergeConfig{
		FrontPath:    viper.GetString("front"),
		BackPath:     viper.GetString("back"),
		OutputPath:   viper.GetString("output"),
		RotateTarget: types.RotateTarget(viper.GetString("rotate_target")),
		RotateAngle:  viper.GetInt("rotate_angle"),
		ArchiveDir:   viper.GetString("archive_dir"),
		Timestamp:    time.Now(),
	}
	cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")

	if ticketPath, _ := cmd.Flags().GetString("ticket"); ticketPath != "" {
		tk, err := ticket.Read(ticketPath)
		if err != nil {
			return err
		}
		applyTicket(cmd, tk, &cfg)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	codec := pdf.NewCodec()
	arc := archive.New(cfg.ResolvedArchiveDir())

	res, err := interleave.Run(cfg, codec, arc, os.Stdout)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return nil
}

// applyTicket lets explicit flags win over ticket fields: the ticket only
// fills in what the command line left unsaid.
func applyTicket(cmd *cobra.Command, tk *ticket.Ticket, cfg *types.MergeConfig) {
	if cmd.Flags().Changed("front") {
		tk.Front = ""
	}
	if cmd.Flags().Changed("back") {
		tk.Back = ""
	}
	if cmd.Flags().Changed("output") {
		tk.Output = ""
	}
	if cmd.Flags().Changed("rotate-target") {
		tk.RotateTarget = ""
	}
	if cmd.Flags().Changed("rotate-angle") {
		tk.RotateAngle = 0
	}
	if cmd.Flags().Changed("archive-dir") {
		tk.ArchiveDir = ""
	}
	tk.Apply(cfg)
}

func init() {
	mergeCmd.Flags().String("front", "", "front-side scan PDF (default: "+types.DefaultFrontPath+")")
	mergeCmd.Flags().String("back", "", "back-side scan PDF (default: "+types.DefaultBackPath+")")
	mergeCmd.Flags().String("output", "", "merged output path (default: merged_<timestamp>.pdf)")
	mergeCmd.Flags().String("rotate-target", "none", "input to rotate before merging: none, front, or back")
	mergeCmd.Flags().Int("rotate-angle", 0, "clockwise rotation in degrees: 0, 90, 180, or 270")
	mergeCmd.Flags().String("archive-dir", "", "directory for consumed inputs (default: "+types.DefaultArchiveDir+")")
	mergeCmd.Flags().String("ticket", "", "merge ticket YAML describing the job")
	mergeCmd.Flags().Bool("dry-run", false, "print the merge plan without writing or archiving")
	mergeCmd.Flags().Bool("json", false, "print the run result as JSON")

	_ = viper.BindPFlag("front", mergeCmd.Flags().Lookup("front"))
	_ = viper.BindPFlag("back", mergeCmd.Flags().Lookup("back"))
	_ = viper.BindPFlag("output", mergeCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("rotate_target", mergeCmd.Flags().Lookup("rotate-target"))
	_ = viper.BindPFlag("rotate_angle", mergeCmd.Flags().Lookup("rotate-angle"))
	_ = viper.BindPFlag("archive_dir", mergeCmd.Flags().Lookup("archive-dir"))

	rootCmd.AddCommand(mergeCmd)
}
