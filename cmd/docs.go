package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skyscholar/skyscholar/internal/content"
	"github.com/skyscholar/skyscholar/internal/study"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List study materials (optionally filtered by category or text)",
	RunE: func(cmd *cobra.Command, args []string) error {
		catVal, _ := cmd.Flags().GetString("category")
		query, _ := cmd.Flags().GetString("query")

		category, err := study.ParseCategory(catVal)
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		docs := catalog.Filter(category, query)
		out := cmd.OutOrStdout()
		if len(docs) == 0 {
			fmt.Fprintln(out, "No materials match your search.")
			return nil
		}

		fmt.Fprintf(out, "%-16s  %-40s  %-12s  %s\n", "ID", "Title", "Category", "Description")
		fmt.Fprintln(out, strings.Repeat("─", 110))
		for _, d := range docs {
			title := d.Title
			if len(title) > 40 {
				title = title[:37] + "..."
			}
			fmt.Fprintf(out, "%-16s  %-40s  %-12s  %s\n", d.ID, title, d.Category.Label(), d.Description)
		}
		fmt.Fprintf(out, "\n%d documents\n", len(docs))
		return nil
	},
}

var docsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		d, err := catalog.Find(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, d.Title)
		fmt.Fprintln(out, strings.Repeat("─", len([]rune(d.Title))))
		fmt.Fprintf(out, "%s — %s\n\n", d.Category.Label(), d.Description)
		if d.Content == "" {
			fmt.Fprintln(out, "Full content for this document is not yet available.")
			return nil
		}
		for _, b := range study.Blocks(d.Content) {
			switch b.Kind {
			case study.BlockHeading:
				fmt.Fprintln(out, strings.ToUpper(b.Text))
			case study.BlockBullet:
				fmt.Fprintln(out, "  • "+b.Text)
			case study.BlockBlank:
				fmt.Fprintln(out)
			default:
				fmt.Fprintln(out, b.Text)
			}
		}
		return nil
	},
}

// loadCatalog reads the configured catalog.
func loadCatalog(cmd *cobra.Command) (*study.Catalog, error) {
	rt, err := setup(cmd)
	if err != nil {
		return nil, err
	}
	defer rt.Close()
	return content.LoadCatalog(rt.cfg.Content.DocumentsFile)
}

func init() {
	docsCmd.Flags().String("category", string(study.CategoryAll), "Filter by category: all, pilot, mechanic or regulations")
	docsCmd.Flags().String("query", "", "Case-insensitive text to match in titles and descriptions")

	docsCmd.AddCommand(docsShowCmd)
}
