package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"invoicer/internal/config"
	"invoicer/internal/delivery"
	"invoicer/internal/invoice"
	"invoicer/internal/layout"
	"invoicer/internal/logger"
	"invoicer/internal/render"
	"invoicer/internal/sheets"
	"invoicer/pkg/models"
)

var generateCmd = &cobra.Command{
	Use:   "generate [invoice.json | workbook.xlsx]",
	Short: "Generate the PDF document for an invoice",
	Long: `Load an invoice, lay it out on A4 pages and deliver the rendered PDF.

Sources:
  json   a single invoice document (file argument)
  xlsx   a workbook with Invoices and LineItems sheets (file argument, --invoice)
  sheet  the Google Sheet in GOOGLE_SHEET_URL (--invoice)

The document is written as Invoice-{number}.pdf to OUTPUT_DIR (or --out), or
uploaded to GCS_OUTPUT_BUCKET with --deliver gcs. With --register a row is
appended to the REGISTER_SHEET of the configured Google Sheet.

Environment variables:
  OUTPUT_DIR, DELIVERY_CHANNEL, GCS_OUTPUT_BUCKET, GCS_OUTPUT_FOLDER
  GOOGLE_SHEET_URL, INVOICE_SHEET, LINE_ITEM_SHEET, REGISTER_SHEET
  GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS
  ISSUER_PROFILE_PATH or ISSUER_NAME, ISSUER_ADDRESS, ... ISSUER_PAYMENT_APP`,
	Example: `  # Render a JSON invoice into ./out
  invoicer generate invoice.json --address "12 MG Road, Pune" --out out

  # Render invoice INV-17 from a workbook and upload it
  invoicer generate book.xlsx --from xlsx --invoice INV-17 --address "..." --deliver gcs

  # Render from the Google Sheet and record it in the register
  invoicer generate --from sheet --invoice INV-17 --address "..." --register`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	addSourceFlags(generateCmd)
	generateCmd.Flags().String("out", "", "Output directory for file delivery (default: OUTPUT_DIR)")
	generateCmd.Flags().String("deliver", "", "Delivery channel: file or gcs (default: DELIVERY_CHANNEL)")
	generateCmd.Flags().Bool("register", false, "Append the generated document to the register sheet")
	generateCmd.Flags().Int("timeout", 60, "Timeout in seconds")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := commandLogger("generate")

	opts, err := readSourceFlags(cmd, args)
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("out")
	channel, _ := cmd.Flags().GetString("deliver")
	register, _ := cmd.Flags().GetBool("register")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	cfg, err := config.Load()
	if err != nil {
		return failure(log, err, "Failed to load configuration")
	}
	if outDir != "" {
		cfg.OutputDir = outDir
	}
	if register {
		if err := cfg.RequireSheet(); err != nil {
			return fmt.Errorf("--register: %w", err)
		}
	}

	ctx, cancel := createContext(timeoutSecs, log)
	defer cancel()

	inv, err := loadInvoice(ctx, cfg, opts, args, log)
	if err != nil {
		return failure(log, err, "Failed to load invoice")
	}
	issuer, err := loadIssuer(cfg, opts.issuerPath)
	if err != nil {
		return failure(log, err, "Failed to load issuer profile")
	}

	engine, err := layout.NewEngine(layout.WithCurrencySymbol(cfg.CurrencySymbol))
	if err != nil {
		return failure(log, err, "Failed to create layout engine")
	}
	generator := invoice.NewGenerator(engine, render.NewPDFRenderer(issuer.Name))

	doc, err := generator.Generate(ctx, invoice.Request{
		Invoice:         inv,
		Issuer:          issuer,
		DeliveryAddress: opts.address,
	})
	if err != nil {
		return failure(logger.WithInvoice(log, inv.InvoiceNumber), err, "Invoice generation failed")
	}
	for _, w := range doc.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}

	deliverer, err := delivery.New(ctx, cfg, channel)
	if err != nil {
		return failure(log, err, "Failed to set up delivery")
	}
	if closer, ok := deliverer.(io.Closer); ok {
		defer closer.Close()
	}

	location, err := deliverer.Deliver(ctx, doc.FileName, doc.Data)
	if err != nil {
		return failure(log, err, "Delivery failed")
	}

	if register {
		if err := registerDocument(ctx, cfg, inv, doc, location); err != nil {
			// The document is already delivered; a missing register row is
			// reported but does not fail the command.
			log.Warn().Err(err).Msg("Failed to append to register")
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: document delivered but not registered: %v\n", err)
		}
	}

	log.Info().
		Str("invoice_number", inv.InvoiceNumber).
		Str("location", location).
		Int("pages", doc.Pages).
		Msg("Invoice delivered")

	fmt.Fprintln(cmd.OutOrStdout(), location)
	return nil
}

// failure logs err in full and returns the generic message shown to the user.
func failure(log zerolog.Logger, err error, msg string) error {
	log.Error().Err(err).Msg(msg)
	return errors.New(invoice.UserMessage(err))
}

func registerDocument(ctx context.Context, cfg *config.Config, inv *models.Invoice, doc *invoice.Document, location string) error {
	svc, err := sheets.NewSheetsService(ctx, cfg.GoogleSheetURL)
	if err != nil {
		return err
	}

	return svc.AppendRegister(ctx, cfg.RegisterSheet, []sheets.RegisterEntry{{
		InvoiceNumber: inv.InvoiceNumber,
		Vendor:        inv.Vendor,
		Total:         inv.TotalCost,
		Pages:         doc.Pages,
		FileName:      doc.FileName,
		Location:      location,
		GeneratedAt:   time.Now(),
	}})
}
