package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"invoicer/internal/config"
	"invoicer/internal/logger"
	"invoicer/internal/sheets"
	"invoicer/internal/source"
	"invoicer/pkg/models"
)

// sourceOptions are the flags shared by commands that load an invoice.
type sourceOptions struct {
	from       string
	number     string
	address    string
	issuerPath string
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "json", "Invoice source: json, xlsx or sheet")
	cmd.Flags().String("invoice", "", "Invoice number to load (required for xlsx and sheet)")
	cmd.Flags().String("address", "", "Delivery address printed under Ship To [REQUIRED]")
	cmd.Flags().String("issuer", "", "Issuer profile JSON file (default: ISSUER_PROFILE_PATH or ISSUER_* variables)")
}

func readSourceFlags(cmd *cobra.Command, args []string) (sourceOptions, error) {
	var opts sourceOptions
	opts.from, _ = cmd.Flags().GetString("from")
	opts.number, _ = cmd.Flags().GetString("invoice")
	opts.address, _ = cmd.Flags().GetString("address")
	opts.issuerPath, _ = cmd.Flags().GetString("issuer")

	opts.from = strings.ToLower(opts.from)

	if strings.TrimSpace(opts.address) == "" {
		return opts, fmt.Errorf("--address is required")
	}

	switch opts.from {
	case "json":
		if len(args) != 1 {
			return opts, fmt.Errorf("json source needs exactly one file argument")
		}
	case "xlsx":
		if len(args) != 1 {
			return opts, fmt.Errorf("xlsx source needs exactly one workbook argument")
		}
		if opts.number == "" {
			return opts, fmt.Errorf("--invoice is required for xlsx source")
		}
	case "sheet":
		if opts.number == "" {
			return opts, fmt.Errorf("--invoice is required for sheet source")
		}
	default:
		return opts, fmt.Errorf("invalid source: %s (must be json, xlsx or sheet)", opts.from)
	}

	return opts, nil
}

// commandLogger returns a component logger tagged with a fresh request ID
func commandLogger(component string) zerolog.Logger {
	return logger.WithRequestID(uuid.NewString()).With().Str("component", component).Logger()
}

// loadInvoice reads the invoice from the selected source
func loadInvoice(ctx context.Context, cfg *config.Config, opts sourceOptions, args []string, log zerolog.Logger) (*models.Invoice, error) {
	log.Info().
		Str("from", opts.from).
		Str("invoice_number", opts.number).
		Msg("Loading invoice")

	switch opts.from {
	case "sheet":
		if err := cfg.RequireSheet(); err != nil {
			return nil, err
		}
		svc, err := sheets.NewSheetsService(ctx, cfg.GoogleSheetURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets service: %w", err)
		}
		return source.NewSheetsSource(svc, cfg.InvoiceSheet, cfg.LineItemSheet).Load(ctx, opts.number)

	case "xlsx":
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook: %w", err)
		}
		defer f.Close()
		return source.LoadXLSXSheets(f, opts.number, cfg.InvoiceSheet, cfg.LineItemSheet)

	default:
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to open invoice file: %w", err)
		}
		defer f.Close()

		inv, err := source.LoadJSON(f)
		if err != nil {
			return nil, err
		}
		if opts.number != "" && inv.InvoiceNumber != opts.number {
			return nil, fmt.Errorf("%s holds invoice %s, not %s: %w", args[0], inv.InvoiceNumber, opts.number, source.ErrInvoiceNotFound)
		}
		return inv, nil
	}
}

// loadIssuer resolves the issuer profile: --issuer, then ISSUER_PROFILE_PATH,
// then ISSUER_* variables.
func loadIssuer(cfg *config.Config, flagPath string) (*models.IssuerProfile, error) {
	path := flagPath
	if path == "" {
		path = cfg.IssuerProfilePath
	}
	if path == "" {
		return cfg.IssuerProfile(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open issuer profile: %w", err)
	}
	defer f.Close()

	return source.LoadProfileJSON(f)
}

// createContext creates a context with timeout and signal handling
func createContext(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
