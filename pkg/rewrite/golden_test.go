package rewrite_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pseudomuto/shardkeeper/pkg/parser"
	. "github.com/pseudomuto/shardkeeper/pkg/rewrite"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

var routes = map[string]string{
	"t_order":      "t_order_0",
	"t_order_item": "t_order_item_0",
	"t_user":       "t_user_1",
}

func TestGoldenFiles(t *testing.T) {
	testdataDir := "testdata"

	// Find all *.in.sql files
	pattern := filepath.Join(testdataDir, "*.in.sql")
	matches, err := filepath.Glob(pattern)
	require.NoError(t, err)
	require.NotEmpty(t, matches, "No *.in.sql files found in testdata directory")

	for _, inputFile := range matches {
		// Derive output filename: "example.in.sql" -> "example.sql"
		basename := filepath.Base(inputFile)
		outputName := strings.TrimSuffix(basename, ".in.sql") + ".sql"

		t.Run(outputName, func(t *testing.T) {
			inputSQL, err := os.ReadFile(inputFile)
			require.NoError(t, err, "Failed to read input file %s", inputFile)

			ctx, err := parser.ParseString(strings.TrimSpace(string(inputSQL)), parser.MySQL{})
			require.NoError(t, err, "Failed to parse SQL from %s", inputFile)

			var buf bytes.Buffer
			require.NoError(t, Rewrite(&buf, ctx, routes))

			golden.Assert(t, buf.String()+"\n", outputName)
		})
	}
}
