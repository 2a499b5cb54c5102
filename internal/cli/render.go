package cli

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/svglite"
	"github.com/gogpu/svglite/fontdb"
	"github.com/gogpu/svglite/internal/svgdoc"
	"github.com/gogpu/svglite/scene"
	"github.com/gogpu/svglite/vglite"
	_ "github.com/gogpu/svglite/vglite/soft" // register the software backend
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	config      string // TOML config file
	backend     string
	format      string
	clear       uint32
	fillRule    string
	quality     string
	imagePolicy string
	fontDirs    []string
	builtinFont bool
	png         string // optional PNG preview path
	pngWidth    int    // preview width; 0 keeps the render size
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	def := DefaultConfig()

	cmd := &cobra.Command{
		Use:   "render WIDTH HEIGHT IN.svg OUT.raw",
		Short: "Render an SVG document to raw pixels",
		Long: `Render loads IN.svg, draws it into a WIDTH x HEIGHT target and writes the
target's memory (stride * height bytes, top row first) to OUT.raw.

Settings come from the defaults, then --config, then explicitly set flags.`,
		Example: `  svglite render 320 240 logo.svg logo.raw
  svglite render 64 64 icon.svg icon.raw --format rgba --clear 0 --png icon.png
  svglite render 800 600 page.svg page.raw --font-dir /usr/share/fonts --config svglite.toml`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			width, height, err := parseSize(args[0], args[1])
			if err != nil {
				return err
			}
			return c.render(cmd.Context(), cfg, width, height, args[2], args[3], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.config, "config", "", "TOML config file")
	f.StringVar(&opts.backend, "backend", def.Backend, "rasterizer backend name")
	f.StringVar(&opts.format, "format", def.Format, "target pixel format: bgra or rgba")
	f.Uint32Var(&opts.clear, "clear", def.Clear, "background color as 0xAARRGGBB")
	f.StringVar(&opts.fillRule, "fill-rule", def.FillRule, "fill rule for paths without one: nonzero or evenodd")
	f.StringVar(&opts.quality, "quality", def.Quality, "antialiasing quality: high, medium or low")
	f.StringVar(&opts.imagePolicy, "image-policy", def.ImagePolicy, "unsupported raster images: fail or zero-fill")
	f.StringArrayVar(&opts.fontDirs, "font-dir", nil, "directory of .ttf/.otf fonts (repeatable)")
	f.BoolVar(&opts.builtinFont, "builtin-font", def.BuiltinFont, "load the built-in Go Regular font")
	f.StringVar(&opts.png, "png", "", "also write a PNG preview to this path")
	f.IntVar(&opts.pngWidth, "png-width", 0, "resize the PNG preview to this width")
	return cmd
}

// resolve merges defaults, the config file and explicitly set flags.
func (o renderOpts) resolve(cmd *cobra.Command) (Config, error) {
	cfg := DefaultConfig()
	if o.config != "" {
		var err error
		if cfg, err = LoadConfig(o.config); err != nil {
			return cfg, err
		}
	}

	f := cmd.Flags()
	if f.Changed("backend") {
		cfg.Backend = o.backend
	}
	if f.Changed("format") {
		cfg.Format = o.format
	}
	if f.Changed("clear") {
		cfg.Clear = o.clear
	}
	if f.Changed("fill-rule") {
		cfg.FillRule = o.fillRule
	}
	if f.Changed("quality") {
		cfg.Quality = o.quality
	}
	if f.Changed("image-policy") {
		cfg.ImagePolicy = o.imagePolicy
	}
	if f.Changed("builtin-font") {
		cfg.BuiltinFont = o.builtinFont
	}
	cfg.FontDirs = append(cfg.FontDirs, o.fontDirs...)
	return cfg, nil
}

func parseSize(w, h string) (int, int, error) {
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("invalid width %q", w)
	}
	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("invalid height %q", h)
	}
	return width, height, nil
}

func (c *CLI) render(ctx context.Context, cfg Config, width, height int, in, out string, opts renderOpts) error {
	prog := newProgress(c.Logger)

	format, err := cfg.format()
	if err != nil {
		return err
	}
	renderOptions, err := cfg.options()
	if err != nil {
		return err
	}

	tree, err := svgdoc.ParseFile(in, svgdoc.WithLogger(c.slog()))
	if err != nil {
		return fmt.Errorf("load %s: %w", in, err)
	}
	c.Logger.Debug("loaded document", "path", in, "viewBox", tree.ViewBox)

	if fonts := c.loadFonts(cfg); fonts != nil {
		renderOptions = append(renderOptions, svglite.WithFontDB(fonts))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	pixels, err := c.rasterize(cfg.Backend, tree, width, height, format, renderOptions)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, pixels.mem, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	if opts.png != "" {
		if err := savePreview(pixels, opts.png, opts.pngWidth); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Rendered %s to %s (%dx%d %s)", in, out, width, height, format))
	return nil
}

// loadFonts builds the font database, or returns nil if no fonts were
// requested. Directories that fail to load are logged and skipped.
func (c *CLI) loadFonts(cfg Config) *fontdb.DB {
	if len(cfg.FontDirs) == 0 && !cfg.BuiltinFont {
		return nil
	}
	db := fontdb.New()
	for _, dir := range cfg.FontDirs {
		n, err := db.LoadFontsDir(dir)
		if err != nil {
			c.Logger.Warn("some fonts failed to load", "dir", dir, "err", err)
		}
		c.Logger.Debug("loaded fonts", "dir", dir, "count", n)
	}
	if cfg.BuiltinFont {
		if err := db.LoadFontData(goregular.TTF, "goregular"); err != nil {
			c.Logger.Warn("built-in font failed to load", "err", err)
		}
	}
	if db.Len() == 0 {
		c.Logger.Warn("no fonts loaded; text will be skipped")
	}
	return db
}

// rendered is a copy of a target buffer's memory.
type rendered struct {
	width, height, stride int
	format                vglite.Format
	mem                   []byte
}

func (c *CLI) rasterize(name string, tree *scene.Tree, width, height int, format vglite.Format, opts []svglite.Option) (_ *rendered, err error) {
	b, err := vglite.NewBackend(name)
	if err != nil {
		return nil, err
	}
	if err := b.Init(width, height); err != nil {
		return nil, fmt.Errorf("init backend %s: %w", name, err)
	}
	defer func() { err = errors.Join(err, b.Close()) }()

	target := &vglite.Buffer{Width: width, Height: height, Format: format}
	if err := b.Allocate(target); err != nil {
		return nil, fmt.Errorf("allocate target: %w", err)
	}
	defer b.Free(target)

	if err := svglite.Render(b, target, tree, opts...); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return &rendered{
		width:  width,
		height: height,
		stride: target.Stride,
		format: format,
		mem:    append([]byte(nil), target.Memory[:target.Stride*height]...),
	}, nil
}

// image converts the rendered pixels to straight-alpha NRGBA.
func (r *rendered) image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.width, r.height))
	for y := range r.height {
		src := r.mem[y*r.stride : y*r.stride+r.width*4]
		dst := img.Pix[y*img.Stride : y*img.Stride+r.width*4]
		copy(dst, src)
		if r.format == vglite.FormatBGRA8888 {
			for i := 0; i < len(dst); i += 4 {
				dst[i], dst[i+2] = dst[i+2], dst[i]
			}
		}
	}
	return img
}

func savePreview(r *rendered, path string, width int) error {
	var img image.Image = r.image()
	if width > 0 && width != r.width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save preview: %w", err)
	}
	return nil
}

func (c *CLI) backendsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List registered rasterizer backends",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range vglite.Backends() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
