package headless

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func runPageFile(t *testing.T, name string) *Result {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "pages", name+".yaml"))
	require.NoError(t, err)
	page, err := LoadPage(data)
	require.NoError(t, err)
	res, err := Run(page)
	require.NoError(t, err)
	return res
}

func assertGolden(t *testing.T, name string, got []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, got)
}

func TestGoldenText(t *testing.T) {
	for _, name := range []string{"manual", "queue"} {
		t.Run(name, func(t *testing.T) {
			res := runPageFile(t, name)
			var buf bytes.Buffer
			require.NoError(t, res.WriteText(&buf))
			assertGolden(t, name, buf.Bytes())
		})
	}
}

func TestGoldenJSON(t *testing.T) {
	res := runPageFile(t, "complete")
	var buf bytes.Buffer
	require.NoError(t, res.WriteJSON(&buf))
	assertGolden(t, "complete", buf.Bytes())
}
