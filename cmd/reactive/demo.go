package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/AnatoleLucet/reactive"
	"github.com/spf13/cobra"
)

func demoCmd() *cobra.Command {
	var (
		writes   int
		deferred bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run two tracked functions against a reactive counter",
		Long: `Wraps a counter, tracks a doubling and a parity function on it, then
increments it --writes times. With --deferred re-runs are queued by a
scheduler and flushed after each write.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if writes < 0 {
				return fmt.Errorf("--writes must not be negative, got %d", writes)
			}

			runDemo(cmd.OutOrStdout(), slog.Default(), writes, deferred)
			return nil
		},
	}

	cmd.Flags().IntVarP(&writes, "writes", "n", 3, "number of increments")
	cmd.Flags().BoolVar(&deferred, "deferred", false, "queue re-runs and flush them after each write")

	return cmd
}

func runDemo(w io.Writer, logger *slog.Logger, writes int, deferred bool) {
	s := reactive.NewSession(reactive.WithLogger(logger))
	counter := s.Wrap(reactive.NewObject(map[string]any{"num": 0}))

	queue := newRunQueue()

	var opts []reactive.EffectOption
	if deferred {
		opts = append(opts, reactive.WithScheduler(queue.Enqueue))
	}

	s.Effect(func() {
		fmt.Fprintf(w, "double: %d\n", reactive.Get[int](counter, "num")*2)
	}, opts...)

	s.Effect(func() {
		parity := "even"
		if reactive.Get[int](counter, "num")%2 != 0 {
			parity = "odd"
		}
		fmt.Fprintf(w, "parity: %s\n", parity)
	}, opts...)

	for i := 0; i < writes; i++ {
		next := reactive.Get[int](counter, "num") + 1
		fmt.Fprintf(w, "write num=%d\n", next)
		counter.Set("num", next)

		if deferred {
			fmt.Fprintf(w, "flush %d\n", queue.Len())
			queue.Flush()
		}
	}
}
