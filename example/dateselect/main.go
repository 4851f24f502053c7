// Example demonstrating the date-selection prompt with bounds, validators,
// and marked dates.
package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nao1215/inquire"
)

func main() {
	marked := map[time.Time]inquire.DateInfo{
		inquire.Date(2026, time.August, 12): {
			Deletable: true,
			Details:   "3 log entries · press d to delete",
		},
		inquire.Date(2026, time.August, 20): {
			Deletable: false,
			Details:   "archived · read only",
		},
	}

	ds := inquire.NewDateSelect("Which day do you want to review?")
	ds.StartingDate = inquire.Date(2026, time.August, 15)
	ds.MinDate = inquire.Date(2026, time.January, 1)
	ds.MaxDate = inquire.Date(2026, time.December, 31)
	ds.WeekStart = time.Monday
	ds.MarkedDates = marked
	ds.HelpMessage = "arrows move · shift+arrows month · ctrl+arrows year · d delete"
	ds.Validators = []inquire.DateValidator{
		func(d time.Time) (inquire.Validation, error) {
			if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
				return inquire.Invalid("pick a weekday"), nil
			}
			return inquire.Valid(), nil
		},
	}

	answer, err := ds.Run()
	if errors.Is(err, inquire.ErrCanceled) || errors.Is(err, inquire.ErrInterrupted) {
		fmt.Println("No date selected.")
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	if answer.ToDelete {
		fmt.Printf("Deleting logs for %s\n", answer.Date.Format(time.DateOnly))
		return
	}
	fmt.Printf("Reviewing %s\n", answer.Date.Format(time.DateOnly))
}
