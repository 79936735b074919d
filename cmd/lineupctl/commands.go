package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/lineup-studio/internal/domain/formation"
	"github.com/riskibarqy/lineup-studio/internal/domain/lineup"
	"github.com/riskibarqy/lineup-studio/internal/infrastructure/storage/filestore"
	"github.com/riskibarqy/lineup-studio/internal/platform/logging"
	"github.com/riskibarqy/lineup-studio/internal/render"
	"github.com/riskibarqy/lineup-studio/internal/usecase"
)

var errUsage = crerr.New("usage")

func exitCode(err error) int {
	if errors.Is(err, errUsage) {
		return 2
	}
	return 1
}

func usageError(format string, args ...any) error {
	return crerr.Mark(fmt.Errorf(format, args...), errUsage)
}

type command struct {
	summary string
	run     func(ctx context.Context, env *cliEnv, args []string) error
}

func commands() map[string]command {
	return map[string]command{
		"formations":  {summary: "list the available formations", run: runFormations},
		"show":        {summary: "show [--json]: print the current lineup", run: runShow},
		"formation":   {summary: "formation <id>: switch formation (clears players)", run: runFormation},
		"player":      {summary: "player <slot> [--name] [--number] [--captain]: edit one player", run: runPlayer},
		"jersey":      {summary: "jersey [--shirt] [--sleeve] [--text] [--style] [--style-color]: set jersey options", run: runJersey},
		"badge":       {summary: "badge <#rrggbb>: set the badge color", run: runBadge},
		"import":      {summary: "import <file>: load a lineup document", run: runImport},
		"export-json": {summary: "export-json [file]: write the lineup document", run: runExportJSON},
		"export-png":  {summary: "export-png [file] [--width --height] [--background] [--radius] [--alt-field]: render the lineup", run: runExportPNG},
		"reset":       {summary: "restore every default", run: runReset},
	}
}

type cliEnv struct {
	builder *usecase.LineupBuilder
	stdout  io.Writer
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	global := flag.NewFlagSet("lineupctl", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	dataDir := global.String("data", defaultDataDir(), "directory holding saved drafts")
	profile := global.String("profile", "default", "name of the draft to work on")
	verbose := global.Bool("v", false, "log builder activity to stdout")
	if err := global.Parse(args); err != nil {
		return usageError("%v\n%s", err, usage())
	}

	rest := global.Args()
	if len(rest) == 0 {
		return usageError("missing command\n%s", usage())
	}
	cmd, ok := commands()[rest[0]]
	if !ok {
		return usageError("unknown command %q\n%s", rest[0], usage())
	}

	store, err := filestore.NewDraftStore(*dataDir)
	if err != nil {
		return err
	}
	logger := logging.NewNop()
	if *verbose {
		logger = logging.New(logging.LevelDebug, true)
	}

	builder, err := usecase.NewLineupBuilder(ctx, usecase.LineupBuilderDeps{
		Catalog: formation.Builtin(),
		Storage: store.ForClient(strings.TrimSpace(*profile)),
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	return cmd.run(ctx, &cliEnv{builder: builder, stdout: stdout}, rest[1:])
}

func defaultDataDir() string {
	if dir := strings.TrimSpace(os.Getenv("LINEUPCTL_DATA")); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "lineup-studio")
	}
	return ".lineup-studio"
}

func usage() string {
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("usage: lineupctl [--data dir] [--profile name] [-v] <command> [args]\ncommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-12s %s\n", name, cmds[name].summary)
	}
	return b.String()
}

func runFormations(_ context.Context, env *cliEnv, _ []string) error {
	catalog := env.builder.Catalog()
	current := env.builder.State().Formation
	for _, f := range catalog.All() {
		marker := " "
		if f.ID == current {
			marker = "*"
		}
		fmt.Fprintf(env.stdout, "%s %-8s %s\n", marker, f.ID, strings.Join(f.SlotIDs(), " "))
	}
	return nil
}

func runShow(_ context.Context, env *cliEnv, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	asJSON := fs.Bool("json", false, "print the full state as JSON")
	if err := fs.Parse(args); err != nil {
		return usageError("show: %v", err)
	}

	st := env.builder.State()
	if *asJSON {
		return printJSON(env.stdout, st)
	}
	f, _ := env.builder.Catalog().Lookup(st.Formation)

	fmt.Fprintf(env.stdout, "formation: %s\n", st.Formation)
	for _, slot := range f.Slots {
		p := st.Players[slot.ID]
		captain := ""
		if p.IsCaptain {
			captain = " (C)"
		}
		name := p.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(env.stdout, "  %-4s %2d %s%s\n", slot.ID, p.Number, name, captain)
	}
	j := st.JerseyOptions
	fmt.Fprintf(env.stdout, "jersey: shirt=%s sleeve=%s text=%s style=%s style-color=%s\n",
		j.ShirtColor, j.SleeveColor, j.TextColor, j.ShirtStyle, j.ShirtStyleColor)
	fmt.Fprintf(env.stdout, "badge: %s\n", st.BadgeColor)
	return nil
}

func runFormation(ctx context.Context, env *cliEnv, args []string) error {
	if len(args) != 1 {
		return usageError("formation takes exactly one formation id")
	}
	if err := env.builder.SelectFormation(ctx, args[0]); err != nil {
		return err
	}
	return runShow(ctx, env, nil)
}

func runPlayer(ctx context.Context, env *cliEnv, args []string) error {
	if len(args) == 0 {
		return usageError("player needs a slot id")
	}
	slotID := args[0]

	fs := flag.NewFlagSet("player", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "display name")
	number := fs.Int("number", 0, "squad number 1-99")
	captain := fs.Bool("captain", false, "give or take the armband")
	if err := fs.Parse(args[1:]); err != nil {
		return usageError("player: %v", err)
	}

	var mutations []lineup.PlayerMutation
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			mutations = append(mutations, lineup.Rename{Name: *name})
		case "number":
			mutations = append(mutations, lineup.Renumber{Number: *number})
		case "captain":
			mutations = append(mutations, lineup.SetCaptain{Captain: *captain})
		}
	})
	if len(mutations) == 0 {
		return usageError("player: nothing to change, pass --name, --number or --captain")
	}

	for _, m := range mutations {
		if err := env.builder.EditPlayer(ctx, slotID, m); err != nil {
			return err
		}
	}
	return runShow(ctx, env, nil)
}

func runJersey(ctx context.Context, env *cliEnv, args []string) error {
	opts := env.builder.State().JerseyOptions

	fs := flag.NewFlagSet("jersey", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.ShirtColor, "shirt", opts.ShirtColor, "shirt color")
	fs.StringVar(&opts.SleeveColor, "sleeve", opts.SleeveColor, "sleeve color")
	fs.StringVar(&opts.TextColor, "text", opts.TextColor, "number color")
	fs.StringVar(&opts.ShirtStyleColor, "style-color", opts.ShirtStyleColor, "pattern color")
	style := fs.String("style", string(opts.ShirtStyle), "pattern name")
	if err := fs.Parse(args); err != nil {
		return usageError("jersey: %v", err)
	}
	opts.ShirtStyle = lineup.ShirtStyle(*style)

	if err := env.builder.SetJerseyOptions(ctx, opts); err != nil {
		return err
	}
	return runShow(ctx, env, nil)
}

func runBadge(ctx context.Context, env *cliEnv, args []string) error {
	if len(args) != 1 {
		return usageError("badge takes exactly one color")
	}
	if err := env.builder.SetBadgeColor(ctx, args[0]); err != nil {
		return err
	}
	return runShow(ctx, env, nil)
}

func runImport(ctx context.Context, env *cliEnv, args []string) error {
	if len(args) != 1 {
		return usageError("import takes exactly one file")
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	if err := env.builder.ImportJSON(ctx, raw); err != nil {
		if hint := crerr.FlattenHints(err); hint != "" {
			return fmt.Errorf("%w (%s)", err, hint)
		}
		return err
	}
	return runShow(ctx, env, nil)
}

func runExportJSON(_ context.Context, env *cliEnv, args []string) error {
	out, err := env.builder.ExportJSON()
	if err != nil {
		return err
	}
	return writeOutput(env, args, lineup.ExportFileName, out)
}

func runExportPNG(ctx context.Context, env *cliEnv, args []string) error {
	fs := flag.NewFlagSet("export-png", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	width := fs.Int("width", 0, "image width in pixels")
	height := fs.Int("height", 0, "image height in pixels")
	background := fs.String("background", "", "image file used behind the pitch")
	radius := fs.String("radius", "", "card corner radius: xs, sm, md, lg or xl")
	altField := fs.Bool("alt-field", false, "use the alternate pitch texture")
	if err := fs.Parse(reorderFlags(args)); err != nil {
		return usageError("export-png: %v", err)
	}
	if (*width == 0) != (*height == 0) {
		return usageError("export-png: --width and --height must be given together")
	}

	if *background != "" {
		data, err := os.ReadFile(*background)
		if err != nil {
			return fmt.Errorf("read %s: %w", *background, err)
		}
		if err := env.builder.UploadBackground(ctx, data); err != nil {
			return err
		}
	}
	if *radius != "" {
		if err := env.builder.SetPaperRadius(lineup.PaperRadius(*radius)); err != nil {
			return err
		}
	}
	if *altField {
		env.builder.ToggleFieldVariant()
	}

	out, err := env.builder.ExportImage(ctx, render.Size{Width: *width, Height: *height})
	if err != nil {
		return err
	}
	return writeOutput(env, fs.Args(), lineup.ImageFileName, out)
}

func runReset(ctx context.Context, env *cliEnv, _ []string) error {
	if err := env.builder.ResetAll(ctx); err != nil {
		return err
	}
	return runShow(ctx, env, nil)
}

// writeOutput writes to the named file, to the default name when args is
// empty, or to stdout for "-".
func writeOutput(env *cliEnv, args []string, defaultName string, body []byte) error {
	target := defaultName
	if len(args) > 0 {
		target = args[0]
	}
	if target == "-" {
		_, err := env.stdout.Write(body)
		return err
	}
	if err := os.WriteFile(target, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	fmt.Fprintf(env.stdout, "wrote %s (%d bytes)\n", target, len(body))
	return nil
}

// reorderFlags moves flags ahead of positional arguments so that
// "export-png out.png --width 540" parses like the reverse order.
func reorderFlags(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") || a == "-" {
			positional = append(positional, a)
			continue
		}
		flags = append(flags, a)
		if !strings.Contains(a, "=") && i+1 < len(args) && !isBoolFlag(a) {
			flags = append(flags, args[i+1])
			i++
		}
	}
	return append(flags, positional...)
}

func isBoolFlag(name string) bool {
	return strings.TrimLeft(name, "-") == "alt-field"
}

func printJSON(w io.Writer, v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
