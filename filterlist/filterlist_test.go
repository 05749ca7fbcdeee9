package filterlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webshield/webshield/filterlist"
)

// testListName is the common filter list name for tests.
const testListName = "test list"

func TestParse(t *testing.T) {
	t.Parallel()

	const text = `! Title: Test List
! a comment

||ads.example.com^
@@||ads.example.com/allowed^
example.com##.banner
##.advertisement
example.com#+js(no-popups)
$script
`

	l, err := filterlist.Parse(testListName, text)
	require.NoError(t, err)

	assert.Equal(t, testListName, l.Name)
	assert.Len(t, l.Networks, 2)
	assert.Len(t, l.Cosmetics, 2)
	assert.Equal(t, map[string]string{"example.com": "+js(no-popups)"}, l.Scriptlets)

	// Two networks, two cosmetics, one scriptlet.
	assert.Equal(t, 5, l.RulesCount)

	// The "$script" line has an empty pattern.
	assert.Equal(t, 1, l.SkippedCount)
}

func TestParse_empty(t *testing.T) {
	t.Parallel()

	l, err := filterlist.Parse(testListName, "")
	require.NoError(t, err)

	assert.Zero(t, l.RulesCount)
	assert.Zero(t, l.SkippedCount)
	assert.Empty(t, l.Networks)
	assert.Empty(t, l.Cosmetics)
}

func TestParse_whitespace(t *testing.T) {
	t.Parallel()

	l, err := filterlist.Parse(testListName, "   ||example.com^   \r\n\t\n")
	require.NoError(t, err)

	require.Len(t, l.Networks, 1)
	assert.Equal(t, "||example.com^", l.Networks[0].Pattern)
}

func TestSet_Appending(t *testing.T) {
	t.Parallel()

	s := filterlist.NewSet()

	first, err := filterlist.Parse("first", "||one.example^\n##.ad\n")
	require.NoError(t, err)

	second, err := filterlist.Parse("second", "||two.example^\nexample.com#+js(x)\n")
	require.NoError(t, err)

	s1 := s.Appending(first)
	s2 := s1.Appending(second)

	// The older sets must not observe the newer rules.
	assert.Empty(t, s.Networks)
	assert.Len(t, s1.Networks, 1)
	assert.Len(t, s2.Networks, 2)

	assert.Equal(t, []string{"first"}, s1.ListNames)
	assert.Equal(t, []string{"first", "second"}, s2.ListNames)

	assert.Empty(t, s1.Scriptlets)
	assert.Equal(t, map[string]string{"example.com": "+js(x)"}, s2.Scriptlets)

	// Load order is preserved.
	assert.Equal(t, "||one.example^", s2.Networks[0].Pattern)
	assert.Equal(t, "||two.example^", s2.Networks[1].Pattern)
}
