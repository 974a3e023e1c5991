package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	payload, err := exporter.Render(Dataset{
		Headers: []string{"ID", "Name"},
		Rows: [][]string{
			{"1", "Lab 101"},
			{"2", "Hall, B"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "ID,Name\n1,Lab 101\n2,\"Hall, B\"\n", string(payload))
}

func TestCSVExporterRejectsEmptyHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
}

func TestCSVExporterRejectsRaggedRows(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{
		Headers: []string{"ID", "Name"},
		Rows:    [][]string{{"only-one"}},
	})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()

	payload, err := exporter.Render(Dataset{
		Headers: []string{"ID", "Name"},
		Rows:    [][]string{{"1", "Lab 101"}},
	}, "Rooms")
	require.NoError(t, err)
	assert.True(t, len(payload) > 0)
	assert.Equal(t, "%PDF", string(payload[:4]))
}
