package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unera-social/unera-tui/internal/output"
	"github.com/unera-social/unera-tui/pkg/models"
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List the help-center article catalog",
	Long: `List the help-center article catalog in catalog order.

Filtering matches the interactive help center: --search matches the
query as a case-insensitive substring of an article's title or
category, --category matches the category exactly. --search wins when
both are given.`,
	RunE: runArticles,
}

func init() {
	articlesCmd.Flags().String("category", "", "filter by category (exact match)")
	articlesCmd.Flags().String("search", "", "filter by substring of title or category")
	articlesCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(articlesCmd)
}

func runArticles(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	category, _ := cmd.Flags().GetString("category")
	search, _ := cmd.Flags().GetString("search")
	asJSON, _ := cmd.Flags().GetBool("json")

	var articles []models.Article
	switch {
	case search != "":
		articles, err = store.SearchArticles(search)
	case category != "":
		cat := models.Category(category)
		if !cat.Valid() {
			return fmt.Errorf("unknown category %q", category)
		}
		articles, err = store.ArticlesByCategory(cat)
	default:
		articles, err = store.Articles()
	}
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(articles)
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.Heading("Help articles"))
	if len(articles) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), output.Dim("No articles found."))
		return nil
	}

	table := output.NewTable(cmd.OutOrStdout(), []string{"ID", "Title", "Category"})
	for _, a := range articles {
		table.AddRow([]string{strconv.FormatInt(a.ID, 10), a.Title, string(a.Category)})
	}
	table.Render()
	return nil
}
