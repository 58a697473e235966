package main

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/jcorbin/softbreak/internal/config"
	"github.com/jcorbin/softbreak/internal/mdcheck"
	"github.com/jcorbin/softbreak/internal/softbreak"
)

type rootFlags struct {
	col        string
	configPath string
	write      bool
	recheck    bool
	check      bool
	verbose    bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "softbreak [files...]",
		Short: "Insert soft breaks into long markdown lines",
		Long: `Breaks each line longer than the column limit once, after the last word
that fits. Continuations of list items and blockquotes are padded to line up
under the item text; indented lines keep their indentation. Lines inside
` + "```" + ` fenced code blocks are never changed.

With no files, reads stdin and writes stdout. With files, prints each
rewritten file to stdout, or with --write replaces it in place.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			elog := log.New(stderr, logPrefix, 0)
			vlog := verbose(flags.verbose, stderr)
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			vlog.Printf("column limit %v", opts.Col)

			var stores []store
			if len(args) == 0 {
				stores = append(stores, stdioStore(stdin, stdout))
			}
			for _, arg := range args {
				if flags.write {
					stores = append(stores, &fsStore{filename: arg})
				} else {
					stores = append(stores, printStore(arg, stdout))
				}
			}

			var failed bool
			for _, st := range stores {
				stats, err := process(st, opts, flags.check, flags.write)
				var mm *mdcheck.MismatchError
				if errors.As(err, &mm) {
					elog.Printf("warning: %v: %v", st.name(), mm)
				} else if err != nil {
					elog.Printf("%v: %v", st.name(), err)
					failed = true
					continue
				}
				vlog.Printf("%v: %v", st.name(), stats)
			}
			if failed {
				return errors.New("some documents could not be processed")
			}
			return nil
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "settings file (default: $SOFTBREAK_CONFIG or nearest .softbreak.toml)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log what was done to stderr")

	f := rootCmd.Flags()
	f.StringVarP(&flags.col, "col", "c", "", "column limit, overriding the settings file")
	f.BoolVarP(&flags.write, "write", "w", false, "rewrite files in place")
	f.BoolVar(&flags.recheck, "recheck", false, "break continuation lines again until they fit")
	f.BoolVar(&flags.check, "check", false, "warn when a rewrite changes markdown block structure")

	rootCmd.AddCommand(newConfigCmd(&flags))
	return rootCmd
}

func (flags *rootFlags) settings() (config.Settings, string, error) {
	path, err := config.ResolvePath(flags.configPath)
	if err != nil {
		return config.Settings{}, "", fmt.Errorf("config: %w", err)
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return cfg, path, fmt.Errorf("config: %w", err)
	}
	return cfg, path, nil
}

func (flags *rootFlags) options(cmd *cobra.Command) (softbreak.Options, error) {
	cfg, _, err := flags.settings()
	if err != nil {
		return softbreak.Options{}, err
	}
	if cmd.Flags().Changed("col") {
		cfg.Col = flags.col
	}
	return softbreak.Options{
		Col:     cfg.Column(),
		Recheck: flags.recheck,
	}, nil
}

// process runs a soft break pass over the document held by st, writing the
// result back unless onlyChanged is set and nothing was split.
// A structure check failure is returned as a *mdcheck.MismatchError after the
// rewrite has been written.
func process(st store, opts softbreak.Options, check, onlyChanged bool) (stats softbreak.Stats, rerr error) {
	rc, err := st.open()
	if err != nil {
		return stats, err
	}
	doc, err := softbreak.ReadLines(rc)
	if cerr := rc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return stats, err
	}

	var before string
	if check {
		before = doc.String()
	}

	stats = softbreak.Apply(doc, opts)
	if onlyChanged && stats.Split == 0 {
		return stats, nil
	}

	w, err := st.update()
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := w.Cleanup(); rerr == nil {
			rerr = cerr
		}
	}()
	if _, err := doc.WriteTo(w); err != nil {
		return stats, err
	}
	if err := w.Close(); err != nil {
		return stats, err
	}

	if check {
		return stats, mdcheck.Compare([]byte(before), []byte(doc.String()))
	}
	return stats, nil
}
