package render_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/layout"
	"invoicer/internal/render"
	"invoicer/pkg/models"
)

func sampleInstructions(t *testing.T, items int) []layout.Instruction {
	t.Helper()

	inv := &models.Invoice{
		InvoiceNumber: "INV-9",
		InvoiceDate:   "2024-06-01",
		DueDate:       "2024-06-30",
		Vendor:        "Bharat Hardware",
		GSTPercent:    decimal.NewFromInt(18),
	}
	for i := 0; i < items; i++ {
		inv.LineItems = append(inv.LineItems, models.LineItem{
			Particulars: "TMT bar 12mm",
			Quantity:    2,
			BasicAmount: decimal.NewFromInt(500),
			LineTotal:   decimal.NewFromInt(590),
		})
	}
	inv.TotalCost = decimal.NewFromInt(int64(590 * items))
	inv.PendingAmount = inv.TotalCost

	out, err := layout.Layout(inv, &models.IssuerProfile{Name: "Café Steel & Co"}, "12 MG Road, Pune")
	require.NoError(t, err)
	return out
}

func TestPDFRendererProducesPDF(t *testing.T) {
	r := render.NewPDFRenderer("Café Steel & Co")

	data, err := r.Render(context.Background(), layout.A4, sampleInstructions(t, 3))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.True(t, bytes.Contains(data, []byte("%%EOF")))
}

func TestPDFRendererMultiPage(t *testing.T) {
	instructions := sampleInstructions(t, 90)
	require.GreaterOrEqual(t, layout.PageCount(instructions), 2)

	data, err := render.NewPDFRenderer("").Render(context.Background(), layout.A4, instructions)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPDFRendererHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data, err := render.NewPDFRenderer("").Render(ctx, layout.A4, sampleInstructions(t, 1))
	assert.Nil(t, data)
	assert.ErrorIs(t, err, render.ErrRenderFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPDFRendererRejectsUnknownInstruction(t *testing.T) {
	instructions := []layout.Instruction{{Kind: layout.KindNewPage, Page: 1}, {Kind: "ellipse", Page: 1}}

	_, err := render.NewPDFRenderer("").Render(context.Background(), layout.A4, instructions)

	var re *render.RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 1, re.Page)
	assert.ErrorIs(t, err, layout.ErrUnknownInstruction)
}

func TestCanvasCountsPages(t *testing.T) {
	instructions := sampleInstructions(t, 90)

	canvas := render.NewCanvas(layout.A4)
	require.NoError(t, layout.Replay(instructions, canvas))
	assert.Equal(t, layout.PageCount(instructions), canvas.Pages())

	data, err := canvas.Bytes()
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
