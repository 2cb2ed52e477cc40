package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/layout"
)

func TestReplayRoundTripsThroughRecorder(t *testing.T) {
	out := mustLayout(t, testInvoice(70), fullProfile())

	rec := layout.NewRecorder()
	require.NoError(t, layout.Replay(out, rec))

	assert.Equal(t, out, rec.Instructions())
	assert.Equal(t, layout.PageCount(out), rec.Pages())
}

func TestReplayRejectsUnknownKinds(t *testing.T) {
	err := layout.Replay([]layout.Instruction{{Kind: "circle"}}, layout.NewRecorder())
	assert.ErrorIs(t, err, layout.ErrUnknownInstruction)
}

func TestGeometry(t *testing.T) {
	g := layout.A4
	require.NoError(t, g.Validate())

	assert.LessOrEqual(t, g.TableWidth(), g.UsableWidth())
	assert.Equal(t, g.Margin, g.ColumnX(0))
	assert.Equal(t, g.Margin+g.TableWidth(), g.ColumnX(layout.ColumnCount))
	assert.Len(t, g.Boundaries(), layout.ColumnCount+1)
	assert.Less(t, g.Limit(), g.PrintableHeight())
}
