// Command view-render renders a template with go-view and prints the result.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(newSurveyPrompter()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
