package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✔")
	skipMark = color.New(color.FgYellow).Sprint("-")
	failMark = color.New(color.FgRed).Sprint("✘")
	bold     = color.New(color.Bold).SprintFunc()
)

// printSummary writes one line per notified issue followed by totals
func printSummary(w io.Writer, result *model.SuccessResult) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintf(w, "%s %s\n", bold("Repository:"), result.Repository.FullName())

	for _, n := range result.Notifications {
		kind := n.Kind()

		switch {
		case n.Succeeded():
			line := fmt.Sprintf("%s #%d (%s) %s", okMark, n.Number, kind, n.CommentURL)
			if len(n.Labels) > 0 {
				line += " [" + strings.Join(n.Labels, ", ") + "]"
			}
			fmt.Fprintln(w, line)
		case n.Commented() && n.Failure.Recoverable():
			fmt.Fprintf(w, "%s #%d (%s) %s, labels skipped: %s\n", skipMark, n.Number, kind, n.CommentURL, n.Failure)
		case n.Commented():
			fmt.Fprintf(w, "%s #%d (%s) %s, labels failed: %v\n", failMark, n.Number, kind, n.CommentURL, n.Err)
		case n.Failure.Recoverable():
			fmt.Fprintf(w, "%s #%d (%s) skipped: %s\n", skipMark, n.Number, kind, n.Failure)
		default:
			fmt.Fprintf(w, "%s #%d (%s) failed: %v\n", failMark, n.Number, kind, n.Err)
		}
	}

	succeeded, failed := result.Count()
	fmt.Fprintf(w, "%s %d pull request(s) verified, %d notified, %d failed\n",
		bold("Summary:"), len(result.PullRequests), succeeded, failed)
}
