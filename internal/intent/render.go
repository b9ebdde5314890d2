package intent

import (
	"fmt"
	"strings"

	"github.com/JamesPrial/tasklist/internal/todo"
)

// FormatList renders items one per line followed by the progress summary.
//
//	[ ] 1731400000000  Buy milk
//	[x] 1731400000001  Walk dog
//	    leash
//
//	1 of 2 completed
func FormatList(items []todo.Item) string {
	var b strings.Builder
	p := todo.Progress{Total: len(items)}

	for _, item := range items {
		mark := " "
		if item.Completed {
			mark = "x"
			p.Done++
		}
		fmt.Fprintf(&b, "[%s] %s  %s\n", mark, item.ID, item.Text)
		if notes := strings.TrimSpace(item.Notes); notes != "" {
			for _, line := range strings.Split(notes, "\n") {
				fmt.Fprintf(&b, "    %s\n", line)
			}
		}
	}

	if p.Total > 0 {
		b.WriteString("\n")
	}
	b.WriteString(Summary(p))
	b.WriteString("\n")
	return b.String()
}
