package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicer/internal/config"
	"invoicer/internal/invoice"
	"invoicer/internal/layout"
)

var layoutCmd = &cobra.Command{
	Use:   "layout [invoice.json | workbook.xlsx]",
	Short: "Print the draw instructions computed for an invoice",
	Long: `Lay out an invoice without rendering it and print the resulting
instruction sequence as JSON. Takes the same source flags as generate.

Useful for checking pagination and placement, or for driving another
renderer.`,
	Example: `  # Inspect the layout of a JSON invoice
  invoicer layout invoice.json --address "12 MG Road, Pune"

  # Save the layout of a workbook invoice
  invoicer layout book.xlsx --from xlsx --invoice INV-17 --address "..." -o layout.json`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runLayout,
}

// LayoutOutput is the JSON printed by the layout command
type LayoutOutput struct {
	InvoiceNumber string               `json:"invoice_number"`
	Pages         int                  `json:"pages"`
	Geometry      layout.PageGeometry  `json:"geometry"`
	Warnings      []string             `json:"warnings,omitempty"`
	Instructions  []layout.Instruction `json:"instructions"`
}

func init() {
	rootCmd.AddCommand(layoutCmd)

	addSourceFlags(layoutCmd)
	layoutCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	layoutCmd.Flags().Int("timeout", 60, "Timeout in seconds")
}

func runLayout(cmd *cobra.Command, args []string) error {
	log := commandLogger("layout")

	opts, err := readSourceFlags(cmd, args)
	if err != nil {
		return err
	}
	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := createContext(timeoutSecs, log)
	defer cancel()

	inv, err := loadInvoice(ctx, cfg, opts, args, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load invoice")
		return err
	}
	issuer, err := loadIssuer(cfg, opts.issuerPath)
	if err != nil {
		return err
	}

	engine, err := layout.NewEngine(layout.WithCurrencySymbol(cfg.CurrencySymbol))
	if err != nil {
		return err
	}

	// Layout never renders, so no renderer is needed.
	doc, err := invoice.NewGenerator(engine, nil).Layout(invoice.Request{
		Invoice:         inv,
		Issuer:          issuer,
		DeliveryAddress: opts.address,
	})
	if err != nil {
		log.Error().Err(err).Str("invoice_number", inv.InvoiceNumber).Msg("Layout failed")
		return errors.New(invoice.UserMessage(err))
	}

	output := LayoutOutput{
		InvoiceNumber: inv.InvoiceNumber,
		Pages:         doc.Pages,
		Geometry:      engine.Geometry(),
		Warnings:      doc.Warnings,
		Instructions:  doc.Instructions,
	}

	jsonData, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	if outputPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	}

	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	log.Info().
		Str("output", outputPath).
		Int("instructions", len(doc.Instructions)).
		Int("pages", doc.Pages).
		Msg("Layout written")

	return nil
}
