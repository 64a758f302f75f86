package cmd

import (
	"fmt"

	"github.com/AnyUserName/stylo-cli/internal/asset"
	"github.com/AnyUserName/stylo-cli/internal/favicon"
	"github.com/AnyUserName/stylo-cli/internal/present"
	"github.com/AnyUserName/stylo-cli/internal/qr"
	"github.com/AnyUserName/stylo-cli/internal/svgpng"
	"github.com/spf13/cobra"
)

var (
	qrOpts   qr.Options
	qrOutDir string

	svgWidth  int
	svgOutDir string

	faviconOutDir string
)

var qrCmd = &cobra.Command{
	Use:   "qr <text...>",
	Short: "Render text or a URL as a QR code PNG",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(args, true)
		if err != nil {
			return err
		}
		out, err := qr.Generate(input, qrOpts)
		if err != nil {
			return err
		}
		dst, err := present.Save(outDirOr(qrOutDir), qr.FileName, out)
		if err != nil {
			return err
		}
		fmt.Printf("  QR code → %s (%s)\n", dst, present.FormatBytes(int64(len(out))))
		return nil
	},
}

var svgCmd = &cobra.Command{
	Use:   "svg2png <file>",
	Short: "Rasterise an SVG to PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := asset.IngestFile(args[0], nil)
		if err != nil {
			return err
		}
		res, err := svgpng.Convert(cmd.Context(), newEngine(), src.Name, src.Data, svgWidth)
		if err != nil {
			return err
		}
		dst, err := present.Save(outDirOr(svgOutDir), res.Name, res.Data)
		if err != nil {
			return err
		}
		fmt.Printf("  %s → %s (%dx%d, %s)\n", src.Name, dst, res.Width, res.Height, present.FormatBytes(int64(len(res.Data))))
		return nil
	},
}

var faviconCmd = &cobra.Command{
	Use:   "favicon <file>",
	Short: "Generate favicon PNGs and favicon.ico from an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := asset.IngestFile(args[0], nil)
		if err != nil {
			return err
		}
		set, err := favicon.Generate(cmd.Context(), newEngine(), src.Data)
		if err != nil {
			return err
		}
		dir := outDirOr(faviconOutDir)
		for _, ic := range set.PNGs {
			dst, err := present.Save(dir, ic.Name, ic.Data)
			if err != nil {
				return err
			}
			logVerbose("%dx%d → %s", ic.Size, ic.Size, dst)
		}
		dst, err := present.Save(dir, favicon.ICOName, set.ICO)
		if err != nil {
			return err
		}
		fmt.Printf("  %s → %d PNGs and %s\n", src.Name, len(set.PNGs), dst)
		return nil
	},
}

func init() {
	f := qrCmd.Flags()
	f.IntVarP(&qrOpts.Size, "size", "s", qr.DefaultSize, fmt.Sprintf("size in pixels (%d-%d)", qr.MinSize, qr.MaxSize))
	f.StringVar(&qrOpts.Background, "bg", qr.DefaultBackground, "background color")
	f.StringVar(&qrOpts.Foreground, "fg", qr.DefaultForeground, "foreground color")
	f.StringVar(&qrOpts.Level, "level", "medium", "error correction: low, medium, high or highest")
	f.StringVarP(&qrOutDir, "out", "o", "", "output directory (default: config image.out_dir)")
	rootCmd.AddCommand(qrCmd)

	svgCmd.Flags().IntVar(&svgWidth, "width", svgpng.DefaultWidth, "output width in pixels")
	svgCmd.Flags().StringVarP(&svgOutDir, "out", "o", "", "output directory (default: config image.out_dir)")
	rootCmd.AddCommand(svgCmd)

	faviconCmd.Flags().StringVarP(&faviconOutDir, "out", "o", "", "output directory (default: config image.out_dir)")
	rootCmd.AddCommand(faviconCmd)
}
