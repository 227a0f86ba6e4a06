package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/navigation"
	"golang.org/x/net/html"
)

func TestExtractScripts(t *testing.T) {
	// Arrange
	fragment := `<section>
<script>one()</script>
<p>text <script type="module" src="/m.js"></script></p>
<script type="text/template"><b>{{.}}</b></script>
</section>`

	// Act
	scripts, err := navigation.ExtractScripts(fragment)

	// Assert
	require.Nil(t, err)
	require.Len(t, scripts, 3)

	require.Equal(t, "one()", scripts[0].Text)
	require.Empty(t, scripts[0].Attrs)
	require.True(t, scripts[0].Executable())

	require.Equal(t, []html.Attribute{{Key: "type", Val: "module"}, {Key: "src", Val: "/m.js"}}, scripts[1].Attrs)
	require.True(t, scripts[1].Executable())

	require.Equal(t, "<b>{{.}}</b>", scripts[2].Text)
	require.False(t, scripts[2].Executable())
}

func TestExtractScriptsNone(t *testing.T) {
	scripts, err := navigation.ExtractScripts(`<p>nothing to run</p>`)

	require.Nil(t, err)
	require.Empty(t, scripts)
}
