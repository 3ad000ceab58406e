package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/pramudya/lensa/internal/engine"
	"github.com/pramudya/lensa/internal/models"
	"github.com/spf13/cobra"
)

var queryLimit int

// Theme holds the color scheme for result rendering.
type Theme struct {
	Tier    lipgloss.Color
	Record  lipgloss.Color
	Detail  lipgloss.Color
	Reply   lipgloss.Color
	NoMatch lipgloss.Color
}

var defaultTheme = Theme{
	Tier:    lipgloss.Color("#5FAFD7"), // light blue
	Record:  lipgloss.Color("#00D787"), // green
	Detail:  lipgloss.Color("#6C6C6C"), // dim gray
	Reply:   lipgloss.Color("#D7AF5F"), // amber
	NoMatch: lipgloss.Color("#FF005F"), // red
}

func (t Theme) tierStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Tier).Bold(true)
}

func (t Theme) recordStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Record)
}

func (t Theme) detailStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Detail)
}

func (t Theme) replyStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Reply).Italic(true)
}

func (t Theme) noMatchStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.NoMatch)
}

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Resolve a natural-language media query",
	Long: `Resolve a natural-language query through the cascading tiers.

Examples:
  lensa query "foto kucing 2023"
  lensa query "album liburan bali"
  lensa query "pemandangan tepi laut" --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 20, "max records to print")
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	resolver := newResolver(ctx, nil)

	res := resolver.Resolve(ctx, args[0])
	printResolution(res)
	return nil
}

func printResolution(res engine.Resolution) {
	theme := defaultTheme

	if res.Reply != "" {
		if res.Tier == engine.TierNone {
			fmt.Println(theme.noMatchStyle().Render(res.Reply))
		} else {
			fmt.Println(theme.replyStyle().Render(res.Reply))
		}
		return
	}

	fmt.Printf("%s %s\n\n",
		theme.tierStyle().Render(fmt.Sprintf("[%s]", res.Tier)),
		theme.detailStyle().Render(res.Result.Description))

	records := res.Result.Records
	truncated := false
	if queryLimit > 0 && len(records) > queryLimit {
		records = records[:queryLimit]
		truncated = true
	}

	for i, rec := range records {
		fmt.Printf("%d. %s\n", i+1, theme.recordStyle().Render(recordTitle(rec)))
		detail := fmt.Sprintf("   %s  %s", rec.CapturedAt.Format("2006-01-02"), rec.MimeType)
		if rec.Album != "" {
			detail += "  album: " + rec.Album
		}
		if verbose && len(rec.Labels) > 0 {
			detail += fmt.Sprintf("  labels: %v", labelNames(rec))
		}
		fmt.Println(theme.detailStyle().Render(detail))
	}

	if truncated {
		fmt.Println(theme.detailStyle().Render(
			fmt.Sprintf("\n… %d more (use --limit to see all)", len(res.Result.Records)-queryLimit)))
	}
}

func recordTitle(rec models.MediaRecord) string {
	if rec.DisplayName != "" {
		return rec.DisplayName
	}
	return rec.URI
}

func labelNames(rec models.MediaRecord) []string {
	names := make([]string, 0, len(rec.Labels))
	for _, l := range rec.Labels {
		names = append(names, l.Name)
	}
	return names
}
