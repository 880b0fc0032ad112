package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iamasit07/tic-tac-toe/backend/internal/arena"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/bot"
	"github.com/muesli/termenv"
)

func main() {
	depth := flag.Int("depth", bot.DEFAULT_INITIAL_DEPTH, "initial search depth of the AI")
	threshold := flag.Int("threshold", bot.DEFAULT_ENDGAME_THRESHOLD, "empty cells at which the instant-win check runs")
	aiFirst := flag.String("ai-first", "both", "whether the AI opens: true, false or both")
	opponent := flag.String("opponent", string(arena.Perfect), "opponent model: perfect or any")
	verify := flag.Bool("verify", false, "re-run every search without pruning and compare")
	show := flag.Bool("show", false, "print lost boards and a sample draw")
	flag.Parse()

	var sides []bool
	switch *aiFirst {
	case "both":
		sides = []bool{true, false}
	case "true":
		sides = []bool{true}
	case "false":
		sides = []bool{false}
	default:
		fmt.Fprintf(os.Stderr, "invalid -ai-first %q\n", *aiFirst)
		os.Exit(2)
	}
	opp := arena.Opponent(*opponent)
	if opp != arena.Perfect && opp != arena.Any {
		fmt.Fprintf(os.Stderr, "invalid -opponent %q\n", *opponent)
		os.Exit(2)
	}

	out := termenv.NewOutput(os.Stdout)
	green := out.Color("2")
	yellow := out.Color("3")
	red := out.Color("1")

	failed := false
	for _, first := range sides {
		rep := arena.Run(arena.Config{
			Settings: bot.Settings{InitialDepth: *depth, EndgameThreshold: *threshold},
			AIFirst:  first,
			Opponent: opp,
			Verify:   *verify,
		})

		fmt.Fprintf(out, "%s vs %s opponent, start depth %d\n",
			out.String("AI as "+string(rep.AIMarker)).Bold(), opp, *depth)
		fmt.Fprintf(out, "  games %d  %s  %s  %s\n", rep.Games,
			out.String(fmt.Sprintf("wins %d", rep.Wins)).Foreground(green),
			out.String(fmt.Sprintf("draws %d", rep.Draws)).Foreground(yellow),
			out.String(fmt.Sprintf("losses %d", rep.Losses)).Foreground(red))

		if *verify {
			line := out.String(fmt.Sprintf("  verify: %d searches, %d mismatches", rep.Searches, rep.Mismatches))
			if rep.Mismatches > 0 {
				line = line.Foreground(red)
			} else {
				line = line.Foreground(green)
			}
			fmt.Fprintln(out, line)
		}

		if *show {
			for _, b := range rep.LostBoards {
				fmt.Fprintln(out, out.String("  lost:").Foreground(red))
				fmt.Fprintln(out, b.String())
			}
			if rep.SampleDraw != nil {
				fmt.Fprintln(out, "  sample draw:")
				fmt.Fprintln(out, rep.SampleDraw.String())
			}
		}

		if rep.Losses > 0 || rep.Mismatches > 0 {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
