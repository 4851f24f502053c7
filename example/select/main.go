// Example demonstrating the list-selection prompt with filtering and paging.
package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/nao1215/inquire"
)

func main() {
	options := []string{
		"Banana", "Apple", "Strawberry", "Grapes", "Lemon", "Tangerine",
		"Watermelon", "Orange", "Pear", "Avocado", "Pineapple",
	}

	sel := inquire.NewSelect("What's your favorite fruit?", options)
	sel.PageSize = 10
	sel.StartingCursor = 1
	sel.HelpMessage = "type to filter · arrows move · enter to choose"

	answer, err := sel.Run()
	if errors.Is(err, inquire.ErrCanceled) || errors.Is(err, inquire.ErrInterrupted) {
		fmt.Println("Nothing chosen.")
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Final answer was %s\n", answer.Value)
}
