package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spektr-org/housing/engine"
	"github.com/spektr-org/housing/internal/plot"
)

const replHelp = `commands:
  price N          minimum median house value (snapped to the slider step)
  income B         income band: low, mid, high
  only A,B         keep exactly these ocean proximities
  add A            add an ocean proximity
  drop A           remove an ocean proximity
  all | none       select every / no ocean proximity
  show             print the full summary
  charts DIR       render PNG charts into DIR
  help             this text
  quit             leave`

func newReplCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Adjust facets interactively; every change recomputes the summaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}
			return runRepl(cmd.InOrStdin(), cmd.OutOrStdout(), s)
		},
	}
}

// runRepl reads one command per line. Each facet change triggers exactly one
// recomputation before the next line is read.
func runRepl(in io.Reader, out io.Writer, s *session) error {
	red := color.New(color.FgRed)
	fmt.Fprintf(out, "%d rows loaded; %d proximity labels. Type help for commands.\n",
		s.facets.Rows, len(s.facets.Proximities))
	printStatus(out, s.run())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		verb, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		changed, err := s.apply(strings.ToLower(verb), arg, out)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			red.Fprintln(out, err)
			continue
		}
		if changed {
			printStatus(out, s.run())
		}
	}
}

var errQuit = errors.New("quit")

// apply executes one command and reports whether the facets changed.
func (s *session) apply(verb, arg string, out io.Writer) (bool, error) {
	switch verb {
	case "price":
		v, err := strconv.ParseFloat(strings.ReplaceAll(arg, ",", ""), 64)
		if err != nil {
			return false, fmt.Errorf("price: %q is not a number", arg)
		}
		return true, s.setPrice(v)
	case "income", "band":
		b, err := engine.ParseIncomeBand(arg)
		if err != nil {
			return false, err
		}
		s.setBand(b)
		return true, nil
	case "only":
		return true, s.selectOnly(splitList([]string{arg}))
	case "add":
		return true, s.add(arg)
	case "drop", "remove":
		return true, s.drop(arg)
	case "all":
		s.selectAll()
		return true, nil
	case "none":
		s.selectNone()
		return true, nil
	case "show":
		writeText(out, s.run())
		return false, nil
	case "charts":
		if arg == "" {
			return false, fmt.Errorf("charts: directory required")
		}
		files, err := plot.RenderAll(arg, s.run())
		if err != nil {
			return false, err
		}
		fmt.Fprintf(out, "wrote %d chart(s) to %s\n", len(files), arg)
		return false, nil
	case "help", "?":
		fmt.Fprintln(out, replHelp)
		return false, nil
	case "quit", "exit", "q":
		return false, errQuit
	}
	return false, fmt.Errorf("unknown command %q (try help)", verb)
}

// printStatus is the one-line view shown after every recomputation.
func printStatus(out io.Writer, res *engine.Result) {
	cfg := res.Config
	fmt.Fprintf(out, "[%s+ | %s | %s] %s\n",
		engine.FormatCurrency(cfg.PriceThreshold),
		proximityLabel(cfg.AllowedProximities),
		cfg.IncomeBand.String(),
		res.Reply)
}
