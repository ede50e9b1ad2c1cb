package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/linkmax/lnkmx"
	"github.com/linkmax/lnkmx/internal/i18n"
	"github.com/linkmax/lnkmx/internal/importer"
	"github.com/linkmax/lnkmx/internal/pages"
	"github.com/linkmax/lnkmx/internal/records"
)

var moduleBuilder = lnkmx.New

var errUsage = errors.New("usage: lnkmx <new|validate|serialize|import> [flags]")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("lnkmx: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "new":
		return runNew(args[1:], out)
	case "validate":
		return runValidate(args[1:], out)
	case "serialize":
		return runSerialize(args[1:], out)
	case "import":
		return runImport(args[1:], out)
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

func runNew(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	user := fs.String("user", "", "Owner user id of the new page")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*user) == "" {
		return fmt.Errorf("user is required")
	}
	page := pages.CreateDefault(*user)
	return writeJSON(out, page)
}

type validateReport struct {
	Valid       bool               `json:"valid"`
	Errors      []string           `json:"errors,omitempty"`
	BlockIssues []pages.BlockIssue `json:"blockIssues,omitempty"`
}

func runValidate(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	file := fs.String("file", "", "Path to a page JSON document")
	if err := fs.Parse(args); err != nil {
		return err
	}
	page, err := readPage(*file)
	if err != nil {
		return err
	}
	res := page.Validate()
	return writeJSON(out, validateReport{
		Valid:       res.Valid,
		Errors:      res.Errors,
		BlockIssues: page.ValidateBlocks(),
	})
}

func runSerialize(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("serialize", flag.ContinueOnError)
	file := fs.String("file", "", "Path to a page JSON document")
	lang := fs.String("lang", string(i18n.DefaultFallback), "Language used for record titles")
	if err := fs.Parse(args); err != nil {
		return err
	}
	titleLang, ok := i18n.ParseLanguage(*lang)
	if !ok {
		return fmt.Errorf("unsupported language %q", *lang)
	}
	page, err := readPage(*file)
	if err != nil {
		return err
	}
	payload, err := records.BuildPayload(page.Blocks, records.DefaultTitleExtractor(titleLang))
	if err != nil {
		return fmt.Errorf("serialize blocks: %w", err)
	}
	return writeJSON(out, payload)
}

func runImport(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	file := fs.String("file", "", "Path to a Markdown page manifest")
	user := fs.String("user", "", "Owner user id (overrides the manifest)")
	save := fs.Bool("save", false, "Save the page into the configured storage")
	storage := fs.String("storage", lnkmx.DefaultConfig().Storage.Provider, "Storage provider: memory, sqlite or postgres")
	dsn := fs.String("dsn", "", "Database DSN for sql storage")
	verbose := fs.Bool("verbose", false, "Enable structured logging")
	logLevel := fs.String("log-level", "info", "Log level when verbose")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*file) == "" {
		return fmt.Errorf("file is required")
	}

	cfg := lnkmx.DefaultConfig()
	cfg.Storage.Provider = *storage
	cfg.Storage.DSN = *dsn
	cfg.Features.Commands = false
	if *verbose {
		cfg.Features.Logger = true
		cfg.Logging.Level = *logLevel
		cfg.Logging.Format = "console"
	}

	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	res, err := module.Importer().ImportFile(context.Background(), *file, importer.Options{
		User:   *user,
		DryRun: !*save,
	})
	if err != nil {
		var invalid *pages.PageValidationError
		if errors.As(err, &invalid) {
			_ = writeJSON(out, validateReport{Valid: false, Errors: invalid.Errors})
		}
		return fmt.Errorf("import %s: %w", *file, err)
	}
	return writeJSON(out, res)
}

func readPage(path string) (*pages.Page, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("file is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	var page pages.Page
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("decode page %s: %w", path, err)
	}
	return &page, nil
}

func writeJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
