package main

import (
	"fmt"

	"github.com/mjarosz/clipdown"
	"github.com/mjarosz/clipdown/clip"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := clipdown.ClipFilter{Limit: c.Limit}
	if c.Domain != "" {
		filter.Domain = &c.Domain
	}

	clips, err := deps.Clips.FindClips(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipdown.ErrorMessage(err))
		return err
	}

	if len(clips) == 0 {
		fmt.Fprintln(deps.Stdout, "No clips found. Use 'clipdown clip' to create one.")
		return nil
	}

	if c.Long {
		fmt.Fprintln(deps.Stdout, clipdown.FormatClips(clips))
		return nil
	}

	for _, cl := range clips {
		title := cl.Title
		if title == "" {
			title = cl.URL
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n",
			cl.CreatedAt.Format("2006-01-02"), title, clip.TruncateURL(cl.URL, 60))
	}

	return nil
}
