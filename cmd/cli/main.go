package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	goversion "go.hein.dev/go-version"

	"regimen/adapters/excel"
	"regimen/adapters/postgres"
	"regimen/app"
	"regimen/domain/feed"
	"regimen/internal/layout"
	"regimen/internal/migration"
	"regimen/internal/testkit"
)

// Set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "regimen-cli",
		Short: "Regimen operations CLI for catalog imports and layout checks",
	}

	rootCmd.AddCommand(
		newImportCmd(),
		newSectionsCmd(),
		newResolveCmd(),
		newSeedCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newImportCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "import [workbook]",
		Short: "Import a catalog workbook into the store database",
		Long: `Import products, deals, and daily sales from a merchandiser workbook.

The database is taken from --database-url, the DATABASE_URL environment
variable, or a .env file in the working directory.

Example: regimen-cli import catalog.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), args[0], databaseURL)
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	return cmd
}

func runImport(ctx context.Context, workbook, databaseURL string) error {
	_ = godotenv.Load()

	if databaseURL == "" {
		databaseURL = configuredDatabaseURL()
	}
	if databaseURL == "" {
		return fmt.Errorf("no database configured: set --database-url, DATABASE_URL, or database_url in .regimen.yaml")
	}

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}

	service := app.NewImportService(postgres.NewProductRepository(db), postgres.NewDealRepository(db))

	startTime := time.Now()
	summary, err := service.Run(ctx, excel.NewCatalogReader(workbook))
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	color.Green("✓ Imported %s in %v", workbook, time.Since(startTime).Round(time.Millisecond))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("PRODUCTS", "DEALS", "SALES DAYS", "SKIPPED", "ISSUES")
	tbl.AddRow(summary.Products, summary.Deals, summary.SalesDays, len(summary.Skipped), len(summary.Issues))
	fmt.Fprintln(color.Output, tbl)

	for _, skipped := range summary.Skipped {
		color.Yellow("  skipped: %s", skipped)
	}
	for _, issue := range summary.Issues {
		color.Red("  issue: %s", issue.String())
	}

	return nil
}

func newSectionsCmd() *cobra.Command {
	var layoutFile string

	cmd := &cobra.Command{
		Use:   "sections",
		Short: "Show the home screen section layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSections(layoutFile)
		},
	}

	cmd.Flags().StringVar(&layoutFile, "layout", "", "Layout YAML file (defaults to the built-in layout)")
	return cmd
}

func runSections(layoutFile string) error {
	active, err := loadLayout(layoutFile)
	if err != nil {
		return err
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("POS", "SLUG", "KIND", "TITLE")
	for i, section := range active.Sections {
		tbl.AddRow(i, section.Slug, section.Kind, section.Title)
	}
	fmt.Fprintln(color.Output, tbl)
	fmt.Printf("\nlayout hash: %s\n", active.Hash())

	return nil
}

func newResolveCmd() *cobra.Command {
	var layoutFile string

	cmd := &cobra.Command{
		Use:   "resolve [title]",
		Short: "Resolve a free-form section title to its slug",
		Long: `Resolve a title the way home feed navigation does: the title is
normalized, checked against the alias table, then against canonical
section titles.

Example: regimen-cli resolve "Hot Deals!"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(strings.Join(args, " "), layoutFile)
		},
	}

	cmd.Flags().StringVar(&layoutFile, "layout", "", "Layout YAML file (defaults to the built-in layout)")
	return cmd
}

func runResolve(title, layoutFile string) error {
	active, err := loadLayout(layoutFile)
	if err != nil {
		return err
	}

	normalized := feed.NormalizeTitle(title)
	slug, ok := active.ResolveSlug(title)
	if !ok {
		return fmt.Errorf("title %q (normalized %q) matches no section", title, normalized)
	}

	position, _ := active.Position(slug)
	color.Green("✓ %q → %s", title, slug)
	fmt.Printf("  normalized: %q\n", normalized)
	fmt.Printf("  layout position: %d (rendered row index depends on live content)\n", position)

	return nil
}

func newSeedCmd() *cobra.Command {
	config := testkit.DefaultCatalogConfig()

	cmd := &cobra.Command{
		Use:   "seed [output.xlsx]",
		Short: "Generate a demo catalog workbook",
		Long: `Generate a deterministic demo catalog workbook that the import
command and the preview server's import trigger can consume.

Example: regimen-cli seed demo.xlsx --products 80 --seed 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(args[0], config)
		},
	}

	cmd.Flags().IntVar(&config.ProductCount, "products", config.ProductCount, "Number of products to generate")
	cmd.Flags().IntVar(&config.DealCount, "deals", config.DealCount, "Number of active deals")
	cmd.Flags().IntVar(&config.SalesDays, "days", config.SalesDays, "Days of daily sales history")
	cmd.Flags().Int64Var(&config.Seed, "seed", config.Seed, "Random seed for deterministic generation")
	return cmd
}

func runSeed(path string, config testkit.CatalogGeneratorConfig) error {
	batch, err := testkit.WriteDemoWorkbook(path, config)
	if err != nil {
		return err
	}

	color.Green("✓ Wrote %s", path)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("PRODUCTS", "DEALS", "SALES ROWS", "SEED")
	tbl.AddRow(len(batch.Products), len(batch.Deals), len(batch.Sales), config.Seed)
	fmt.Fprintln(color.Output, tbl)

	return nil
}

func newVersionCmd() *cobra.Command {
	shortened := false
	output := "json"

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Run: func(_ *cobra.Command, _ []string) {
			resp := goversion.FuncWithOutput(shortened, version, commit, date, output)
			fmt.Print(resp)
		},
	}

	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format. One of 'yaml' or 'json'")
	return cmd
}

func loadLayout(path string) (feed.Layout, error) {
	if path == "" {
		return feed.DefaultLayout(), nil
	}
	return layout.LoadFile(path)
}

// configuredDatabaseURL resolves the connection string from .regimen.yaml
// in the working directory, falling back to the DATABASE_URL environment
// variable the server reads.
func configuredDatabaseURL() string {
	viper.SetConfigName(".regimen")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "warning: ignoring unreadable .regimen.yaml: %v\n", err)
		}
	}

	return viper.GetString("database_url")
}
