package cmd

import (
	"fmt"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/asset"
	"github.com/AnyUserName/stylo-cli/internal/present"
	"github.com/AnyUserName/stylo-cli/internal/resize"
	"github.com/AnyUserName/stylo-cli/internal/scrub"
	"github.com/spf13/cobra"
)

var (
	resizeOpts     resize.Target
	resizeRotation int
	resizeFormat   string
	resizeQuality  int
	resizeOutDir   string

	stripOutDir string
)

var resizeCmd = &cobra.Command{
	Use:   "resize <file>",
	Short: "Resize, rotate and convert an image",
	Long: `Resizes an image to explicit dimensions or a named preset.

With only --width or --height the other side follows the aspect ratio.
Giving both unlocks it. Presets: ` + presetNames() + `.`,
	Args: cobra.ExactArgs(1),
	RunE: runResize,
}

var stripCmd = &cobra.Command{
	Use:   "strip-exif <file>",
	Short: "Remove EXIF and other metadata by re-encoding the pixels",
	Args:  cobra.ExactArgs(1),
	RunE:  runStrip,
}

func init() {
	f := resizeCmd.Flags()
	f.IntVar(&resizeOpts.Width, "width", 0, "target width in pixels")
	f.IntVar(&resizeOpts.Height, "height", 0, "target height in pixels")
	f.StringVarP(&resizeOpts.Preset, "preset", "p", "", "named size preset")
	f.IntVarP(&resizeRotation, "rotate", "r", 0, "rotation in degrees, multiple of 90")
	f.StringVarP(&resizeFormat, "format", "f", resize.DefaultFormat, "output format: "+strings.Join(resize.Formats, ", "))
	f.IntVarP(&resizeQuality, "quality", "q", resize.DefaultQuality, "quality for lossy formats")
	f.StringVarP(&resizeOutDir, "out", "o", "", "output directory (default: config image.out_dir)")
	rootCmd.AddCommand(resizeCmd)

	stripCmd.Flags().StringVarP(&stripOutDir, "out", "o", "", "output directory (default: config image.out_dir)")
	rootCmd.AddCommand(stripCmd)
}

func presetNames() string {
	var names []string
	for _, p := range resize.Presets() {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}

func outDirOr(flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.Image.OutDir
}

func runResize(cmd *cobra.Command, args []string) error {
	eng := newEngine()
	src, err := asset.IngestFile(args[0], nil)
	if err != nil {
		return err
	}
	surface, err := eng.Decode(src.Data)
	if err != nil {
		return err
	}
	dims, err := resize.Plan(surface.Width, surface.Height, resizeOpts)
	if err != nil {
		return err
	}
	logVerbose("resize %dx%d → %dx%d", surface.Width, surface.Height, dims.Width, dims.Height)

	out, err := resize.Resize(cmd.Context(), eng, src.Data, resize.Options{
		Width:    dims.Width,
		Height:   dims.Height,
		Rotation: resizeRotation,
		Format:   resizeFormat,
		Quality:  resizeQuality,
	})
	if err != nil {
		return err
	}
	dst, err := present.Save(outDirOr(resizeOutDir), present.ResizedName(src.Name, out.Format), out.Data)
	if err != nil {
		return err
	}
	fmt.Printf("  %s (%dx%d) → %s (%dx%d, %s)\n",
		src.Name, surface.Width, surface.Height, dst, out.Width, out.Height, present.FormatBytes(int64(len(out.Data))))
	return nil
}

func runStrip(cmd *cobra.Command, args []string) error {
	eng := newEngine()
	src, err := asset.IngestFile(args[0], nil)
	if err != nil {
		return err
	}
	res, err := scrub.Strip(cmd.Context(), eng, src)
	if err != nil {
		return err
	}
	dst, err := present.Save(outDirOr(stripOutDir), res.Name, res.Data)
	if err != nil {
		return err
	}
	fmt.Printf("  %s → %s (%s, metadata removed)\n", src.Name, dst, present.FormatBytes(int64(len(res.Data))))
	return nil
}
