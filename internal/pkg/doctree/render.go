package doctree

import (
	"fmt"
	"strings"
)

// RenderTabs renders a tab list depth-first at the given nesting level.
// Each line of a tab's own content is prefixed with two spaces per level.
// Section-marker lines carry a leading newline as part of the line string;
// callers join the result with "\n".
func RenderTabs(tabs []Tab, level int) []string {
	return renderTabs(tabs, level, "")
}

// RenderTabsFiltered renders only the tab whose ID matches targetID, at any
// depth. Non-matching tabs emit no markers of their own but are still
// descended into, since a descendant may match. An empty result means no tab
// with that ID exists.
func RenderTabsFiltered(tabs []Tab, targetID string) []string {
	return renderTabs(tabs, 0, targetID)
}

func renderTabs(tabs []Tab, level int, targetID string) []string {
	var lines []string
	indent := strings.Repeat("  ", level)

	for i, tab := range tabs {
		title := tab.Title
		if title == "" {
			title = fmt.Sprintf("Tab %d", i+1)
		}
		id := tab.ID
		if id == "" {
			id = "unknown"
		}

		if targetID != "" && id != targetID {
			if len(tab.ChildTabs) > 0 {
				lines = append(lines, renderTabs(tab.ChildTabs, level+1, targetID)...)
			}
			if len(tab.NestedTabs) > 0 {
				lines = append(lines, renderTabs(tab.NestedTabs, level+1, targetID)...)
			}
			continue
		}

		lines = append(lines, fmt.Sprintf("\n%s=== TAB %d: %s (ID: %s) ===", indent, i+1, title, id), "")

		switch {
		case !tab.HasDocumentTab:
			lines = append(lines, indent+"[NO DOCUMENT TAB CONTENT]")
		case !tab.HasBody:
			lines = append(lines, indent+"[NO BODY CONTENT]")
		case len(tab.Body) == 0:
			lines = append(lines, indent+"[EMPTY TAB CONTENT]")
		default:
			for _, line := range RenderElements(tab.Body) {
				lines = append(lines, indent+line)
			}
		}

		if len(tab.ChildTabs) > 0 {
			lines = append(lines, indent+"--- CHILD TABS ---")
			lines = append(lines, renderTabs(tab.ChildTabs, level+1, targetID)...)
			lines = append(lines, indent+"--- END CHILD TABS ---")
		}

		// The alternate nesting relation is walked independently of ChildTabs.
		// A tab present in both renders twice; deduplicating here would guess
		// at API intent.
		if len(tab.NestedTabs) > 0 {
			lines = append(lines, indent+"--- NESTED TABS ---")
			lines = append(lines, renderTabs(tab.NestedTabs, level+1, targetID)...)
			lines = append(lines, indent+"--- END NESTED TABS ---")
		}
	}

	return lines
}

// RenderElements renders a structural-element list to text lines.
// Unknown element kinds produce no output.
func RenderElements(elements []Element) []string {
	var lines []string

	for _, el := range elements {
		switch el.Kind {
		case KindParagraph:
			if strings.TrimSpace(el.Text) != "" {
				lines = append(lines, strings.TrimRight(el.Text, "\n"))
			}

		case KindTable:
			lines = append(lines, "\n--- TABLE ---")
			for _, row := range el.Rows {
				cells := make([]string, 0, len(row))
				hasContent := false
				for _, cell := range row {
					text := strings.TrimSpace(strings.Join(RenderElements(cell.Content), "\n"))
					if text != "" {
						hasContent = true
					}
					cells = append(cells, text)
				}
				// A row renders only if at least one cell has content.
				if hasContent {
					lines = append(lines, strings.Join(cells, " | "))
				}
			}
			lines = append(lines, "--- END TABLE ---")

		case KindSectionBreak:
			lines = append(lines, "\n--- SECTION BREAK ---")

		case KindTableOfContents:
			lines = append(lines, "\n--- TABLE OF CONTENTS ---")

		case KindPageBreak:
			lines = append(lines, "\n--- PAGE BREAK ---")

		case KindHorizontalRule:
			lines = append(lines, "\n--- HORIZONTAL RULE ---")

		case KindFooter:
			lines = append(lines, "\n--- FOOTER ---")
			lines = append(lines, RenderElements(el.Content)...)
			lines = append(lines, "--- END FOOTER ---")

		case KindHeader:
			lines = append(lines, "\n--- HEADER ---")
			lines = append(lines, RenderElements(el.Content)...)
			lines = append(lines, "--- END HEADER ---")
		}
	}

	return lines
}
