// Package doctree parses the nested tab / structural-element tree returned by
// the Google Docs API (documents.get with includeTabsContent=true) and renders
// it into an ordered sequence of plain-text lines.
//
// The package is pure: no I/O, no logging, and rendering cannot fail. Missing
// or unrecognized substructure degrades to placeholder text instead of
// erroring, because the Docs API is observed to return inconsistent shapes
// across tabbed and non-tabbed documents.
package doctree

import "encoding/json"

// ElementKind identifies the variant of a structural element.
type ElementKind int

const (
	// KindUnknown covers element kinds this package does not recognize.
	// Unknown elements render to nothing.
	KindUnknown ElementKind = iota
	KindParagraph
	KindTable
	KindSectionBreak
	KindTableOfContents
	KindPageBreak
	KindHorizontalRule
	KindFooter
	KindHeader
)

// Element is a structural element resolved into a closed tagged union.
// Exactly one payload field is meaningful, selected by Kind.
type Element struct {
	Kind ElementKind

	// Text is the concatenated text-run content of a paragraph.
	Text string

	// Rows holds table rows; each cell carries its own nested element list.
	Rows [][]Cell

	// Content is the nested element list of a header or footer.
	Content []Element
}

// Cell is a single table cell.
type Cell struct {
	Content []Element
}

// Tab is one tab of a tabbed document.
//
// Both ChildTabs and NestedTabs are traversed during rendering if present.
// The API has been observed to populate either relation, and the renderer
// deliberately does not deduplicate tabs that appear in both.
type Tab struct {
	Title string
	ID    string

	// HasDocumentTab and HasBody record which keys were present in the raw
	// payload, so rendering can distinguish the three placeholder cases.
	HasDocumentTab bool
	HasBody        bool

	Body       []Element
	ChildTabs  []Tab
	NestedTabs []Tab
}

// Document is the parsed form of a documents.get response. A tabbed document
// carries Tabs; a legacy untabbed document carries only Body.
type Document struct {
	Tabs []Tab
	Body []Element
}

// Raw JSON shapes. Key presence in the wire format is what selects an element
// kind; it is resolved into Element.Kind exactly once, here.

type rawDocument struct {
	Tabs []rawTab `json:"tabs"`
	Body *rawBody `json:"body"`
}

type rawTab struct {
	TabProperties *rawTabProperties `json:"tabProperties"`
	DocumentTab   *rawDocumentTab   `json:"documentTab"`
	ChildTabs     []rawTab          `json:"childTabs"`
	Tabs          []rawTab          `json:"tabs"`
}

type rawTabProperties struct {
	Title string `json:"title"`
	TabID string `json:"tabId"`
}

type rawDocumentTab struct {
	Body *rawBody `json:"body"`
}

type rawBody struct {
	Content []rawElement `json:"content"`
}

type rawElement struct {
	Paragraph       *rawParagraph   `json:"paragraph"`
	Table           *rawTable       `json:"table"`
	SectionBreak    json.RawMessage `json:"sectionBreak"`
	TableOfContents json.RawMessage `json:"tableOfContents"`
	PageBreak       json.RawMessage `json:"pageBreak"`
	HorizontalRule  json.RawMessage `json:"horizontalRule"`
	FooterContent   *rawNested      `json:"footerContent"`
	HeaderContent   *rawNested      `json:"headerContent"`
}

type rawParagraph struct {
	Elements []rawParagraphElement `json:"elements"`
}

type rawParagraphElement struct {
	TextRun *rawTextRun `json:"textRun"`
}

type rawTextRun struct {
	Content string `json:"content"`
}

type rawTable struct {
	TableRows []rawTableRow `json:"tableRows"`
}

type rawTableRow struct {
	TableCells []rawTableCell `json:"tableCells"`
}

type rawTableCell struct {
	Content []rawElement `json:"content"`
}

type rawNested struct {
	Content []rawElement `json:"content"`
}

// Parse decodes the raw JSON of a documents.get response into a Document.
// Unrecognized keys are ignored; recognized keys with unexpected value types
// surface as a decode error.
func Parse(data []byte) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	doc := &Document{Tabs: parseTabs(raw.Tabs)}
	if raw.Body != nil {
		doc.Body = parseElements(raw.Body.Content)
	}
	return doc, nil
}

func parseTabs(raw []rawTab) []Tab {
	if len(raw) == 0 {
		return nil
	}
	tabs := make([]Tab, 0, len(raw))
	for _, rt := range raw {
		tab := Tab{
			ChildTabs:  parseTabs(rt.ChildTabs),
			NestedTabs: parseTabs(rt.Tabs),
		}
		if rt.TabProperties != nil {
			tab.Title = rt.TabProperties.Title
			tab.ID = rt.TabProperties.TabID
		}
		if rt.DocumentTab != nil {
			tab.HasDocumentTab = true
			if rt.DocumentTab.Body != nil {
				tab.HasBody = true
				tab.Body = parseElements(rt.DocumentTab.Body.Content)
			}
		}
		tabs = append(tabs, tab)
	}
	return tabs
}

// parseElements resolves each raw element into its tagged variant. When a
// node carries more than one recognized key, the first match in this fixed
// priority order wins: paragraph, table, sectionBreak, tableOfContents,
// pageBreak, horizontalRule, footerContent, headerContent.
func parseElements(raw []rawElement) []Element {
	if len(raw) == 0 {
		return nil
	}
	elements := make([]Element, 0, len(raw))
	for _, re := range raw {
		switch {
		case re.Paragraph != nil:
			var text string
			for _, pe := range re.Paragraph.Elements {
				if pe.TextRun != nil {
					text += pe.TextRun.Content
				}
			}
			elements = append(elements, Element{Kind: KindParagraph, Text: text})

		case re.Table != nil:
			rows := make([][]Cell, 0, len(re.Table.TableRows))
			for _, rr := range re.Table.TableRows {
				cells := make([]Cell, 0, len(rr.TableCells))
				for _, rc := range rr.TableCells {
					cells = append(cells, Cell{Content: parseElements(rc.Content)})
				}
				rows = append(rows, cells)
			}
			elements = append(elements, Element{Kind: KindTable, Rows: rows})

		case re.SectionBreak != nil:
			elements = append(elements, Element{Kind: KindSectionBreak})

		case re.TableOfContents != nil:
			elements = append(elements, Element{Kind: KindTableOfContents})

		case re.PageBreak != nil:
			elements = append(elements, Element{Kind: KindPageBreak})

		case re.HorizontalRule != nil:
			elements = append(elements, Element{Kind: KindHorizontalRule})

		case re.FooterContent != nil:
			elements = append(elements, Element{Kind: KindFooter, Content: parseElements(re.FooterContent.Content)})

		case re.HeaderContent != nil:
			elements = append(elements, Element{Kind: KindHeader, Content: parseElements(re.HeaderContent.Content)})

		default:
			elements = append(elements, Element{Kind: KindUnknown})
		}
	}
	return elements
}
