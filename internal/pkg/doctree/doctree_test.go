package doctree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUntabbedDocument(t *testing.T) {
	data := []byte(`{
		"body": {"content": [
			{"paragraph": {"elements": [
				{"textRun": {"content": "Hello "}},
				{"textRun": {"content": "world\n"}}
			]}}
		]}
	}`)

	doc, err := Parse(data)
	require.NoError(t, err)
	assert.Empty(t, doc.Tabs)
	require.Len(t, doc.Body, 1)
	assert.Equal(t, KindParagraph, doc.Body[0].Kind)
	assert.Equal(t, "Hello world\n", doc.Body[0].Text)
}

func TestParseTabbedDocument(t *testing.T) {
	data := []byte(`{
		"tabs": [{
			"tabProperties": {"title": "Notes", "tabId": "t1"},
			"documentTab": {"body": {"content": [
				{"paragraph": {"elements": [{"textRun": {"content": "body\n"}}]}}
			]}},
			"childTabs": [{
				"tabProperties": {"tabId": "t2"}
			}],
			"tabs": [{
				"tabProperties": {"tabId": "t3"}
			}]
		}]
	}`)

	doc, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, doc.Tabs, 1)

	tab := doc.Tabs[0]
	assert.Equal(t, "Notes", tab.Title)
	assert.Equal(t, "t1", tab.ID)
	assert.True(t, tab.HasDocumentTab)
	assert.True(t, tab.HasBody)
	require.Len(t, tab.Body, 1)

	// Both nesting relations survive the parse independently.
	require.Len(t, tab.ChildTabs, 1)
	assert.Equal(t, "t2", tab.ChildTabs[0].ID)
	require.Len(t, tab.NestedTabs, 1)
	assert.Equal(t, "t3", tab.NestedTabs[0].ID)
}

func TestParsePresenceFlags(t *testing.T) {
	data := []byte(`{"tabs": [
		{"tabProperties": {"tabId": "a"}},
		{"tabProperties": {"tabId": "b"}, "documentTab": {}},
		{"tabProperties": {"tabId": "c"}, "documentTab": {"body": {}}}
	]}`)

	doc, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, doc.Tabs, 3)

	assert.False(t, doc.Tabs[0].HasDocumentTab)
	assert.True(t, doc.Tabs[1].HasDocumentTab)
	assert.False(t, doc.Tabs[1].HasBody)
	assert.True(t, doc.Tabs[2].HasBody)
	assert.Empty(t, doc.Tabs[2].Body)
}

func TestParseElementKinds(t *testing.T) {
	data := []byte(`{"body": {"content": [
		{"sectionBreak": {}},
		{"tableOfContents": {}},
		{"pageBreak": {}},
		{"horizontalRule": {}},
		{"footerContent": {"content": [{"paragraph": {"elements": [{"textRun": {"content": "f"}}]}}]}},
		{"headerContent": {"content": []}},
		{"somethingNew": {"payload": true}}
	]}}`)

	doc, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, doc.Body, 7)

	kinds := make([]ElementKind, len(doc.Body))
	for i, el := range doc.Body {
		kinds[i] = el.Kind
	}
	assert.Equal(t, []ElementKind{
		KindSectionBreak,
		KindTableOfContents,
		KindPageBreak,
		KindHorizontalRule,
		KindFooter,
		KindHeader,
		KindUnknown,
	}, kinds)

	require.Len(t, doc.Body[4].Content, 1)
	assert.Equal(t, "f", doc.Body[4].Content[0].Text)
}

func TestParseTable(t *testing.T) {
	data := []byte(`{"body": {"content": [
		{"table": {"tableRows": [
			{"tableCells": [
				{"content": [{"paragraph": {"elements": [{"textRun": {"content": "A\n"}}]}}]},
				{"content": [{"paragraph": {"elements": [{"textRun": {"content": "B\n"}}]}}]}
			]}
		]}}
	]}}`)

	doc, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, doc.Body, 1)

	table := doc.Body[0]
	assert.Equal(t, KindTable, table.Kind)
	require.Len(t, table.Rows, 1)
	require.Len(t, table.Rows[0], 2)

	lines := RenderElements(doc.Body)
	assert.Equal(t, []string{"\n--- TABLE ---", "A | B", "--- END TABLE ---"}, lines)
}

func TestParseKindPriorityOrder(t *testing.T) {
	// A node carrying several recognized keys resolves to the first kind in
	// the fixed priority order.
	data := []byte(`{"body": {"content": [
		{"paragraph": {"elements": []}, "sectionBreak": {}},
		{"sectionBreak": {}, "pageBreak": {}}
	]}}`)

	doc, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, doc.Body, 2)
	assert.Equal(t, KindParagraph, doc.Body[0].Kind)
	assert.Equal(t, KindSectionBreak, doc.Body[1].Kind)
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	assert.Error(t, err)
}

func TestParseRenderRoundTrip(t *testing.T) {
	data := []byte(`{"tabs": [{
		"tabProperties": {"title": "Report", "tabId": "r1"},
		"documentTab": {"body": {"content": [
			{"paragraph": {"elements": [{"textRun": {"content": "Summary\n"}}]}},
			{"table": {"tableRows": [
				{"tableCells": [
					{"content": [{"paragraph": {"elements": [{"textRun": {"content": "Q1\n"}}]}}]},
					{"content": [{"paragraph": {"elements": [{"textRun": {"content": "100\n"}}]}}]}
				]},
				{"tableCells": [
					{"content": [{"paragraph": {"elements": [{"textRun": {"content": " \n"}}]}}]},
					{"content": [{"paragraph": {"elements": [{"textRun": {"content": "\n"}}]}}]}
				]}
			]}}
		]}},
		"childTabs": [{
			"tabProperties": {"title": "Appendix", "tabId": "r2"},
			"documentTab": {"body": {"content": []}}
		}]
	}]}`)

	doc, err := Parse(data)
	require.NoError(t, err)

	out := strings.Join(RenderTabs(doc.Tabs, 0), "\n")
	assert.Contains(t, out, "=== TAB 1: Report (ID: r1) ===")
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Q1 | 100")
	assert.NotContains(t, out, " | \n--- END TABLE")
	assert.Contains(t, out, "--- CHILD TABS ---")
	assert.Contains(t, out, "  === TAB 1: Appendix (ID: r2) ===")
	assert.Contains(t, out, "  [EMPTY TAB CONTENT]")
}
