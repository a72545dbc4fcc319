package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/dvloznov/pockit/internal/analytics"
	"github.com/dvloznov/pockit/internal/domain"
	infraBQ "github.com/dvloznov/pockit/internal/infra/bigquery"
	"github.com/dvloznov/pockit/internal/logger"
	"github.com/dvloznov/pockit/internal/notionsync"
	"github.com/dvloznov/pockit/internal/store"
	"github.com/dvloznov/pockit/internal/store/file"
	"github.com/dvloznov/pockit/internal/store/gcs"
	"github.com/dvloznov/pockit/internal/store/inmemory"
	"github.com/dvloznov/pockit/internal/tracker"
)

func main() {
	// Load .env if present; real env vars win.
	_ = godotenv.Load()

	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		runAdd(log)
	case "list":
		runList(log)
	case "summary":
		runSummary(log)
	case "insights":
		runInsights(log)
	case "categorize":
		runCategorize(log)
	case "export":
		runExport(log)
	case "import":
		runImport(log)
	case "seed":
		runSeed(log)
	case "export-bq":
		runExportBQ(log)
	case "sync-notion":
		runSyncNotion(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Pockit CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  add          Record a transaction")
	fmt.Println("  list         List transactions")
	fmt.Println("  summary      Show the monthly dashboard summary")
	fmt.Println("  insights     Run the full insight analysis")
	fmt.Println("  categorize   Suggest categories for a description")
	fmt.Println("  export       Export all data as a JSON backup")
	fmt.Println("  import       Import a JSON backup, replacing all data")
	fmt.Println("  seed         Fill the store with generated sample data")
	fmt.Println("  export-bq    Export transaction history to BigQuery")
	fmt.Println("  sync-notion  Sync a monthly summary to a Notion database")
	fmt.Println("  help         Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

// storeFlags is the shared storage backend selection. The GCS backend is
// used when -bucket is set, otherwise data lives in a local directory.
type storeFlags struct {
	data   *string
	bucket *string
	prefix *string
	creds  *string
}

func registerStoreFlags(fs *flag.FlagSet) storeFlags {
	return storeFlags{
		data:   fs.String("data", defaultDataDir(), "local data directory"),
		bucket: fs.String("bucket", os.Getenv("GCS_BUCKET"), "GCS bucket name (or set GCS_BUCKET env)"),
		prefix: fs.String("prefix", "pockit", "object prefix inside the GCS bucket"),
		creds:  fs.String("creds", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"), "service account credentials file"),
	}
}

func defaultDataDir() string {
	if dir := os.Getenv("POCKIT_DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pockit"
	}
	return home + "/.pockit"
}

func (sf storeFlags) open(ctx context.Context, log zerolog.Logger) (store.BlobStore, func()) {
	if *sf.bucket != "" {
		s, err := gcs.NewStore(ctx, *sf.bucket, *sf.prefix, *sf.creds)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open GCS store")
		}
		return s, func() { s.Close() }
	}

	s, err := file.NewStore(*sf.data)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open data directory")
	}
	return s, func() {}
}

func runAdd(log zerolog.Logger) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	sf := registerStoreFlags(fs)
	amount := fs.Float64("amount", 0, "transaction amount")
	typ := fs.String("type", "expense", "transaction type: income or expense")
	category := fs.String("category", "", "category (auto-detected from description when empty)")
	desc := fs.String("desc", "", "transaction description")
	date := fs.String("date", "", "transaction date as YYYY-MM-DD (defaults to today)")
	fs.Parse(os.Args[2:])

	if *amount <= 0 {
		log.Fatal().Msg("Error: -amount is required and must be positive")
	}

	var when time.Time
	if *date != "" {
		var err error
		when, err = time.Parse("2006-01-02", *date)
		if err != nil {
			log.Fatal().Err(err).Msg("Error: -date must be YYYY-MM-DD")
		}
	}

	ctx := logger.WithContext(context.Background(), log)
	bs, closeStore := sf.open(ctx, log)
	defer closeStore()

	svc := tracker.New(bs, log)
	tx, err := svc.AddTransaction(ctx, *amount, domain.TransactionType(*typ), domain.Category(*category), *desc, when)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to add transaction")
	}

	fmt.Printf("Recorded %s %s (%s) on %s\n", tx.Type, analytics.FormatRupiah(tx.Amount), tx.Category, tx.Date.Format("2006-01-02"))
}

func runList(log zerolog.Logger) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	sf := registerStoreFlags(fs)
	month := fs.Int("month", -1, "month bucket 0-11 (-1 for all)")
	fs.Parse(os.Args[2:])

	ctx := logger.WithContext(context.Background(), log)
	bs, closeStore := sf.open(ctx, log)
	defer closeStore()

	svc := tracker.New(bs, log)

	var txs []domain.Transaction
	if *month >= 0 && *month <= 11 {
		txs = svc.MonthTransactions(ctx, *month)
	} else {
		txs = svc.Transactions(ctx)
	}

	if len(txs) == 0 {
		fmt.Println("No transactions recorded.")
		return
	}

	for _, tx := range txs {
		sign := "-"
		if tx.Type == domain.TypeIncome {
			sign = "+"
		}
		fmt.Printf("%s  %s%-14s %-16s %s\n", tx.Date.Format("2006-01-02"), sign, analytics.FormatRupiah(tx.Amount), tx.Category, tx.Description)
	}
}

func runSummary(log zerolog.Logger) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	sf := registerStoreFlags(fs)
	month := fs.Int("month", domain.MonthIndex(time.Now()), "month bucket 0-11")
	fs.Parse(os.Args[2:])

	if *month < 0 || *month > 11 {
		log.Fatal().Msg("Error: -month must be 0-11")
	}

	ctx := logger.WithContext(context.Background(), log)
	bs, closeStore := sf.open(ctx, log)
	defer closeStore()

	svc := tracker.New(bs, log)
	d := svc.Dashboard(ctx, *month)

	fmt.Printf("Summary for %s\n\n", time.Month(*month+1))
	fmt.Printf("  Income:   %s\n", analytics.FormatRupiah(d.Totals.Income))
	fmt.Printf("  Expense:  %s\n", analytics.FormatRupiah(d.Totals.Expense))
	fmt.Printf("  Balance:  %s\n", analytics.FormatRupiah(d.Totals.Balance))
	fmt.Printf("  Savings rate:     %.1f%%\n", d.SavingsRate)
	fmt.Printf("  Budget adherence: %.1f%%\n", d.BudgetAdherence)
	fmt.Printf("  Health score:     %d (%s, %s)\n", d.Health.Score, d.Health.Grade.Letter, d.Health.Grade.Label)

	if len(d.ExpenseByCategory) > 0 {
		fmt.Println("\nSpending by category:")
		for _, cat := range domain.ExpenseCategories() {
			if total, ok := d.ExpenseByCategory[cat]; ok {
				fmt.Printf("  %-12s %s\n", cat, analytics.FormatRupiah(total))
			}
		}
	}

	if len(d.Messages) > 0 {
		fmt.Println()
		for _, m := range d.Messages {
			fmt.Printf("  [%s] %s\n", m.Type, m.Message)
		}
	}
}

func runInsights(log zerolog.Logger) {
	fs := flag.NewFlagSet("insights", flag.ExitOnError)
	sf := registerStoreFlags(fs)
	fs.Parse(os.Args[2:])

	ctx := logger.WithContext(context.Background(), log)
	bs, closeStore := sf.open(ctx, log)
	defer closeStore()

	svc := tracker.New(bs, log)
	in := svc.Insights(ctx)

	if len(in.Patterns) > 0 {
		fmt.Println("Spending patterns:")
		for _, p := range in.Patterns {
			fmt.Printf("  [%s] %s\n      %s\n      %s\n", p.Severity, p.Title, p.Description, p.Recommendation)
		}
	}

	if len(in.PositiveHabits) > 0 {
		fmt.Println("\nPositive habits:")
		for _, h := range in.PositiveHabits {
			fmt.Printf("  %s: %s\n", h.Title, h.Description)
		}
	}

	if in.Predictions.NextMonth != nil {
		f := in.Predictions.NextMonth
		fmt.Printf("\nNext month forecast: %s (%s confidence, trend %s %d%%)\n",
			analytics.FormatRupiah(f.Amount), f.Confidence, f.Trend, f.TrendPercentage)
	}

	if len(in.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, r := range in.Recommendations {
			fmt.Printf("  [%s] %s\n      %s\n", r.Priority, r.Title, r.Description)
		}
	}

	if len(in.Alerts) > 0 {
		fmt.Println("\nAlerts:")
		for _, a := range in.Alerts {
			fmt.Printf("  [%s] %s: %s\n", a.Severity, a.Title, a.Message)
		}
	}

	if len(in.Patterns) == 0 && len(in.Recommendations) == 0 && len(in.Alerts) == 0 {
		fmt.Println("Not enough data for insights yet. Record some transactions first.")
	}
}

func runCategorize(log zerolog.Logger) {
	fs := flag.NewFlagSet("categorize", flag.ExitOnError)
	desc := fs.String("desc", "", "description to categorize")
	typ := fs.String("type", "expense", "transaction type: income or expense")
	fs.Parse(os.Args[2:])

	if *desc == "" {
		log.Fatal().Msg("Error: -desc is required")
	}

	t := domain.TransactionType(*typ)
	if !t.Valid() {
		log.Fatal().Msg("Error: -type must be income or expense")
	}

	// No storage access needed, the matcher is self-contained.
	svc := tracker.New(inmemory.NewStore(), log)
	match := svc.Categorize(*desc, t)
	if match.Category == "" {
		fmt.Println("No confident match.")
	} else {
		fmt.Printf("Best match: %s (%d%% confidence, keywords: %v)\n", match.Category, match.Confidence, match.MatchedKeywords)
	}

	if suggestions := svc.Suggest(*desc, t); len(suggestions) > 0 {
		fmt.Println("Suggestions:")
		for _, s := range suggestions {
			fmt.Printf("  %-12s %d%%\n", s.Category, s.Confidence)
		}
	}
}

func runExport(log zerolog.Logger) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	sf := registerStoreFlags(fs)
	out := fs.String("out", "", "output file (defaults to stdout)")
	fs.Parse(os.Args[2:])

	ctx := logger.WithContext(context.Background(), log)
	bs, closeStore := sf.open(ctx, log)
	defer closeStore()

	svc := tracker.New(bs, log)
	data, err := svc.Export(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}

	if *out == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatal().Err(err).Msg("Failed to write backup file")
	}
	fmt.Printf("Exported backup to %s\n", *out)
}

func runImport(log zerolog.Logger) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	sf := registerStoreFlags(fs)
	in := fs.String("file", "", "backup file to import")
	fs.Parse(os.Args[2:])

	if *in == "" {
		log.Fatal().Msg("Error: -file is required")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read backup file")
	}

	ctx := logger.WithContext(context.Background(), log)
	bs, closeStore := sf.open(ctx, log)
	defer closeStore()

	svc := tracker.New(bs, log)
	if err := svc.Import(ctx, data); err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}
	fmt.Println("Backup imported. All previous data was replaced.")
}

func runSeed(log zerolog.Logger) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	sf := registerStoreFlags(fs)
	count := fs.Int("count", 60, "number of transactions to generate")
	months := fs.Int("months", 3, "how many trailing months to spread transactions over")
	seed := fs.Int64("seed", 0, "random seed (0 for random)")
	fs.Parse(os.Args[2:])

	if *seed != 0 {
		gofakeit.Seed(*seed)
	}

	ctx := logger.WithContext(context.Background(), log)
	bs, closeStore := sf.open(ctx, log)
	defer closeStore()

	svc := tracker.New(bs, log)
	now := time.Now()
	start := now.AddDate(0, -(*months - 1), 0)

	for i := 0; i < *count; i++ {
		date := gofakeit.DateRange(start, now)

		if gofakeit.Number(1, 100) <= 20 {
			cat := domain.IncomeCategories()[gofakeit.Number(0, len(domain.IncomeCategories())-1)]
			amount := float64(gofakeit.Number(100, 2000)) * 1000
			if _, err := svc.AddTransaction(ctx, amount, domain.TypeIncome, cat, seedDescription(cat), date); err != nil {
				log.Fatal().Err(err).Msg("Seeding failed")
			}
			continue
		}

		cat := domain.ExpenseCategories()[gofakeit.Number(0, len(domain.ExpenseCategories())-1)]
		amount := float64(gofakeit.Number(5, 300)) * 1000
		if _, err := svc.AddTransaction(ctx, amount, domain.TypeExpense, cat, seedDescription(cat), date); err != nil {
			log.Fatal().Err(err).Msg("Seeding failed")
		}
	}

	// A couple of budgets, a goal and a bill make the dashboard and
	// insight commands interesting out of the box.
	for _, b := range []struct {
		cat    domain.Category
		amount float64
	}{
		{domain.CategoryMakanan, 1500000},
		{domain.CategoryTransport, 500000},
		{domain.CategoryHiburan, 400000},
	} {
		if _, err := svc.CreateBudget(ctx, b.cat, b.amount); err != nil {
			log.Warn().Err(err).Str("category", string(b.cat)).Msg("Skipping budget")
		}
	}

	deadline := now.AddDate(0, 6, 0)
	if _, err := svc.CreateGoal(ctx, "Laptop baru", "laptop", 8000000, &deadline); err != nil {
		log.Warn().Err(err).Msg("Skipping goal")
	}
	if _, err := svc.AddBill(ctx, "Kos bulanan", 900000, now.AddDate(0, 0, 5), domain.CategoryKebutuhan); err != nil {
		log.Warn().Err(err).Msg("Skipping bill")
	}

	fmt.Printf("Seeded %d transactions across %d months.\n", *count, *months)
}

// seedDescription picks a plausible description for the category so the
// categorizer would agree with the seeded data.
func seedDescription(cat domain.Category) string {
	phrases := map[domain.Category][]string{
		domain.CategoryMakanan:        {"makan siang di warteg", "kopi kenangan", "gofood ayam geprek", "sarapan bubur"},
		domain.CategoryTransport:      {"gojek ke kampus", "isi bensin motor", "parkir mall", "top up e-toll"},
		domain.CategoryKuliah:         {"beli buku kuliah", "fotokopi modul", "bayar ukt cicilan", "print tugas"},
		domain.CategoryHiburan:        {"nonton bioskop", "langganan spotify", "top up game", "karaoke bareng"},
		domain.CategoryKebutuhan:      {"belanja sabun dan sampo", "beli pulsa", "bayar listrik kos", "laundry mingguan"},
		domain.CategoryLainnya:        {"patungan kado", "donasi jumat", "servis jam"},
		domain.CategoryUangSaku:       {"uang saku bulanan", "transfer dari orang tua"},
		domain.CategoryKerjaSampingan: {"gaji part time", "honor freelance desain"},
		domain.CategoryBeasiswa:       {"pencairan beasiswa"},
	}

	opts := phrases[cat]
	if len(opts) == 0 {
		return gofakeit.ProductName()
	}
	return opts[gofakeit.Number(0, len(opts)-1)]
}

func runExportBQ(log zerolog.Logger) {
	fs := flag.NewFlagSet("export-bq", flag.ExitOnError)
	sf := registerStoreFlags(fs)
	project := fs.String("project", os.Getenv("BQ_PROJECT"), "BigQuery project ID (or set BQ_PROJECT env)")
	dataset := fs.String("dataset", "pockit", "BigQuery dataset name")
	fs.Parse(os.Args[2:])

	if *project == "" {
		log.Fatal().Msg("Error: -project is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	bs, closeStore := sf.open(ctx, log)
	defer closeStore()

	svc := tracker.New(bs, log)
	txs := svc.Transactions(ctx)
	if len(txs) == 0 {
		fmt.Println("Nothing to export.")
		return
	}

	exporter, err := infraBQ.NewExporter(ctx, *project, *dataset, *sf.creds)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create BigQuery exporter")
	}
	defer exporter.Close()

	if err := exporter.Export(ctx, txs, time.Now()); err != nil {
		log.Fatal().Err(err).Msg("BigQuery export failed")
	}

	fmt.Printf("Exported %d transactions to %s.%s.transactions\n", len(txs), *project, *dataset)
}

func runSyncNotion(log zerolog.Logger) {
	fs := flag.NewFlagSet("sync-notion", flag.ExitOnError)
	sf := registerStoreFlags(fs)
	token := fs.String("token", os.Getenv("NOTION_TOKEN"), "Notion integration token (or set NOTION_TOKEN env)")
	dbID := fs.String("db", os.Getenv("NOTION_DB_ID"), "Notion database ID (or set NOTION_DB_ID env)")
	month := fs.Int("month", domain.MonthIndex(time.Now()), "month bucket 0-11 to sync")
	fs.Parse(os.Args[2:])

	if *token == "" || *dbID == "" {
		log.Fatal().Msg("Error: -token and -db are required")
	}
	if *month < 0 || *month > 11 {
		log.Fatal().Msg("Error: -month must be 0-11")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	bs, closeStore := sf.open(ctx, log)
	defer closeStore()

	svc := tracker.New(bs, log)
	d := svc.Dashboard(ctx, *month)

	summary := notionsync.MonthlySummary{
		Label:       fmt.Sprintf("%s %d", time.Month(*month+1), time.Now().Year()),
		Income:      d.Totals.Income,
		Expense:     d.Totals.Expense,
		Balance:     d.Totals.Balance,
		SavingsRate: d.SavingsRate,
		HealthScore: d.Health.Score,
		Grade:       d.Health.Grade.Letter,
		TopCategory: topCategory(d.ExpenseByCategory),
	}

	client := notionsync.NewNotionClient(*token)
	if err := notionsync.SyncMonthlySummary(ctx, client, *dbID, summary); err != nil {
		log.Fatal().Err(err).Msg("Notion sync failed")
	}

	fmt.Printf("Synced %s to Notion.\n", summary.Label)
}

func topCategory(byCategory map[domain.Category]float64) string {
	var best domain.Category
	var bestTotal float64
	for _, cat := range domain.ExpenseCategories() {
		if total := byCategory[cat]; total > bestTotal {
			best = cat
			bestTotal = total
		}
	}
	return string(best)
}
