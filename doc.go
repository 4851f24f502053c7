// Package inquire provides interactive terminal prompts with typed answers.
//
// Each prompt type is a small state machine driven by a generic engine: raw
// key events are mapped to prompt-specific semantic actions, the state
// machine mutates its session state, and a render backend draws the result.
// On submission a validator chain checks the candidate answer; failures are
// shown inline and the prompt keeps running until a valid answer is produced
// or the user aborts.
//
// Prompt types:
//
//   - DateSelect: calendar navigation by day, week, month, and year, with
//     optional min/max bounds, marked-date annotations, and a confirmation
//     sub-dialog for deleting a marked date's entry.
//   - Select: list selection with incremental filtering and paging.
//
// Quick start:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//		"time"
//
//		"github.com/nao1215/inquire"
//	)
//
//	func main() {
//		ds := inquire.NewDateSelect("When is the appointment?")
//		ds.MinDate = inquire.Date(2026, time.January, 1)
//		ds.MaxDate = inquire.Date(2026, time.December, 31)
//		ds.HelpMessage = "arrows move, shift+arrows change month, ctrl+arrows change year"
//
//		answer, err := ds.Run()
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("You picked %s\n", answer.Date.Format(time.DateOnly))
//	}
//
// Validators are plain function values and run in order on submission; the
// first failure is surfaced and the rest are skipped:
//
//	ds.Validators = []inquire.DateValidator{
//		func(d time.Time) (inquire.Validation, error) {
//			if d.Weekday() == time.Sunday {
//				return inquire.Invalid("we are closed on sundays"), nil
//			}
//			return inquire.Valid(), nil
//		},
//	}
//
// Aborting a prompt with Escape returns ErrCanceled, Ctrl+C returns
// ErrInterrupted, and configuration mistakes (a starting date outside the
// declared bounds, an empty option list) fail fast with
// ErrInvalidConfiguration before anything is drawn.
//
// All prompts run strictly synchronously on the calling goroutine; the only
// blocking point is the read of the next key. Use RunWithContext to bound a
// session with a timeout or external cancellation.
package inquire
