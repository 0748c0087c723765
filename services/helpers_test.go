package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"indicator-plots/utils"
)

const under5 = "Mortality rate, under-5 (per 1,000 live births)"

func newTestLogger(t *testing.T) *utils.Logger {
	return utils.FromZap(zaptest.NewLogger(t))
}

func wideFrame(t *testing.T, records [][]string) dataframe.DataFrame {
	t.Helper()
	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}),
	)
	require.NoError(t, df.Err)
	return df
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func csvLines(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}
