package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/invoice"
)

const invoiceJSON = `{
	"invoice_number": "INV-CLI-1",
	"invoice_date": "2024-03-15",
	"due_date": "2024-04-14",
	"vendor": "Acme Traders",
	"gst_percent": 18,
	"total_cost": 1180,
	"pending_amount": 1180,
	"line_items": [
		{"particulars": "MS angle 40x40x5", "quantity": 10, "basic_amount": 1000, "line_total": 1180}
	]
}`

func setupEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DELIVERY_CHANNEL", "OUTPUT_DIR", "ISSUER_PROFILE_PATH", "ISSUER_NAME",
		"GOOGLE_SHEET_URL", "LOG_FORMAT", "CURRENCY_SYMBOL",
	} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func writeInvoice(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invoice.json")
	require.NoError(t, os.WriteFile(path, []byte(invoiceJSON), 0o644))
	return path
}

func TestWordsCommand(t *testing.T) {
	out, err := execute(t, "words", "150000", "--figures=false")
	require.NoError(t, err)
	assert.Equal(t, "One Lakh Fifty Thousand Rupees Only\n", out)

	out, err = execute(t, "words", "Rs. 1,00,00,000", "--figures")
	require.NoError(t, err)
	assert.Equal(t, "Rs. 1,00,00,000.00\nOne Crore Rupees Only\n", out)

	_, err = execute(t, "words", "-5", "--figures=false")
	assert.Error(t, err)
}

func TestGenerateCommandWritesPDF(t *testing.T) {
	setupEnv(t)
	outDir := t.TempDir()

	out, err := execute(t, "generate", writeInvoice(t),
		"--from", "json", "--invoice", "",
		"--address", "12 MG Road, Pune",
		"--out", outDir, "--deliver", "file", "--register=false")
	require.NoError(t, err)

	want := filepath.Join(outDir, "Invoice-INV-CLI-1.pdf")
	assert.Contains(t, out, want)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerateCommandRequiresAddress(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "generate", writeInvoice(t), "--from", "json", "--invoice", "", "--address", " ")
	assert.ErrorContains(t, err, "--address is required")
}

func TestGenerateCommandReportsGenericFailure(t *testing.T) {
	setupEnv(t)

	path := filepath.Join(t.TempDir(), "bad.json")
	bad := strings.Replace(invoiceJSON, `"2024-04-14"`, `"Invalid Date"`, 1)
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	outDir := t.TempDir()
	_, err := execute(t, "generate", path, "--from", "json", "--invoice", "",
		"--address", "12 MG Road", "--out", outDir, "--deliver", "file", "--register=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not be generated")

	entries, readErr := os.ReadDir(outDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "nothing is delivered on failure")
}

func TestGenerateCommandHidesDeliverySetupErrors(t *testing.T) {
	setupEnv(t)
	t.Setenv("GCS_OUTPUT_BUCKET", "")

	outDir := t.TempDir()
	for _, channel := range []string{"gcs", "ftp"} {
		_, err := execute(t, "generate", writeInvoice(t), "--from", "json", "--invoice", "",
			"--address", "12 MG Road", "--out", outDir, "--deliver", channel, "--register=false")
		require.Error(t, err, channel)
		assert.Equal(t, invoice.GenericFailureMessage, err.Error(), channel)
	}

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateCommandHidesSourceErrors(t *testing.T) {
	setupEnv(t)

	missing := filepath.Join(t.TempDir(), "missing.json")
	_, err := execute(t, "generate", missing, "--from", "json", "--invoice", "",
		"--address", "12 MG Road", "--out", t.TempDir(), "--deliver", "file", "--register=false")
	require.Error(t, err)
	assert.Equal(t, invoice.GenericFailureMessage, err.Error())
}

func TestLayoutCommandPrintsInstructions(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "layout", writeInvoice(t), "--from", "json", "--invoice", "INV-CLI-1",
		"--address", "12 MG Road, Pune", "--output", "")
	require.NoError(t, err)

	var result LayoutOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "INV-CLI-1", result.InvoiceNumber)
	assert.Equal(t, 1, result.Pages)
	assert.NotEmpty(t, result.Instructions)
}

func TestReadSourceFlagsValidation(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "layout", "--from", "xlsx", "--invoice", "", "--address", "x", "book.xlsx")
	assert.ErrorContains(t, err, "--invoice is required")

	_, err = execute(t, "layout", "--from", "csv", "--invoice", "", "--address", "x", "book.csv")
	assert.ErrorContains(t, err, "invalid source")

	_, err = execute(t, "layout", "--from", "json", "--invoice", "", "--address", "x")
	assert.ErrorContains(t, err, "exactly one file")
}

func TestLogLevelFlag(t *testing.T) {
	level := zerolog.GlobalLevel()
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(level)
		_ = rootCmd.PersistentFlags().Set("log-level", "")
	})

	_, err := execute(t, "words", "12", "--log-level", "warn")
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	_, err = execute(t, "words", "12", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --log-level")
}
