// Command exports lists the functions a module exports by name, so you can
// check that the names a remote thread will resolve are actually there.
//
//	exports inject.dll --name echo --name fibonacci --disasm 4
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pboyd/injectee"
	"github.com/pboyd/injectee/internal/logger"
)

var (
	names  []string
	disasm int
	all    bool
	debug  bool

	headerColor = color.New(color.FgBlue)
	okColor     = color.New(color.FgGreen)
	missColor   = color.New(color.FgRed)
)

// defaultNames are the functions cmd/inject and cmd/random export.
var defaultNames = []string{"echo", "fibonacci", "add", "plus2", "seed", "seed_random", "random"}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lg, err := logger.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lg.Sync()
	ctx = logger.WithLogger(ctx, lg)

	root := &cobra.Command{
		Use:   "exports <module>",
		Short: "List and check a module's exported functions",
		Args:  cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				logger.SetDebug()
			}
		},
		RunE:         run,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.Flags().StringSliceVarP(&names, "name", "n", nil, "export names that must be present (default: all known injectee exports)")
	root.Flags().IntVarP(&disasm, "disasm", "d", 0, "disassemble this many instructions of each export")
	root.Flags().BoolVarP(&all, "all", "a", false, "list every export, not only the checked names")
	root.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	lg := logger.FromContext(cmd.Context())
	path := args[0]

	exports, err := injectee.ReadExports(path)
	if err != nil {
		lg.Error("failed to read exports", zap.Error(err))
		return err
	}
	lg.Debug("read exports", zap.String("path", path), zap.Int("count", len(exports)))

	want := names
	if len(want) == 0 {
		want = defaultNames
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{
		headerColor.Sprint("Name"),
		headerColor.Sprint("Address"),
		headerColor.Sprint("Arch"),
		headerColor.Sprint("Status"),
	})

	var missing []string
	for _, name := range want {
		e, ok := injectee.FindExport(exports, name)
		if !ok {
			missing = append(missing, name)
			// The default list spans both modules, so only names passed
			// with --name fail the command.
			t.AppendRow(table.Row{name, "", "", missColor.Sprint("missing")})
			continue
		}
		t.AppendRow(table.Row{e.Name, fmt.Sprintf("0x%x", e.Addr), e.Arch, okColor.Sprint("ok")})
		appendDisassembly(t, lg, e)
	}

	if all {
		for _, e := range exports {
			if slices.Contains(want, e.Name) {
				continue
			}
			t.AppendRow(table.Row{e.Name, fmt.Sprintf("0x%x", e.Addr), e.Arch, ""})
			appendDisassembly(t, lg, e)
		}
	}

	t.Render()

	if len(names) > 0 && len(missing) > 0 {
		return fmt.Errorf("%s: missing exports: %s", path, strings.Join(missing, ", "))
	}
	return nil
}

func appendDisassembly(t table.Writer, lg *zap.Logger, e injectee.Export) {
	if disasm <= 0 {
		return
	}

	insts, err := e.Disassemble(disasm)
	if err != nil {
		lg.Warn("disassembly failed", zap.String("export", e.Name), zap.Error(err))
	}
	for _, inst := range insts {
		t.AppendRow(table.Row{"", fmt.Sprintf("0x%x", inst.Addr), "", inst.Text})
	}
}
