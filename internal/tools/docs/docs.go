package docs

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/NoKnow606/google-workspace-mcp/internal/pkg/ptr"
	"github.com/NoKnow606/google-workspace-mcp/internal/services"
	"github.com/NoKnow606/google-workspace-mcp/internal/tools/comments"
)

var serviceIcons = []mcp.Icon{{
	Source:   "https://www.gstatic.com/images/branding/product/1x/docs_2020q4_48dp.png",
	MIMEType: "image/png",
	Sizes:    []string{"48x48"},
}}

// Register registers all Docs tools with the MCP server.
func Register(server *mcp.Server, factory *services.Factory) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_docs",
		Icons:       serviceIcons,
		Description: "Search for Google Docs by name. Matches document titles only, scoped to the Google Docs MIME type.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Search Documents",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr.Bool(true),
		},
	}, createSearchDocsHandler(factory))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_doc_content",
		Icons:       serviceIcons,
		Description: "Get the full text content of a Google Doc (including tabbed documents, tables, and headers/footers) or a Drive-stored Office file such as .docx. Optionally extract a single tab by ID.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Get Document Content",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr.Bool(true),
		},
	}, createGetDocContentHandler(factory))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_docs_in_folder",
		Icons:       serviceIcons,
		Description: "List all Google Docs in a specific Drive folder.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "List Documents in Folder",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr.Bool(true),
		},
	}, createListDocsInFolderHandler(factory))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_doc",
		Icons:       serviceIcons,
		Description: "Create a new Google Doc with an optional initial text content.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Create Document",
			OpenWorldHint: ptr.Bool(true),
		},
	}, createCreateDocHandler(factory))

	// Comment tools (via shared Drive API)
	comments.Register(server, factory, "document", serviceIcons)
}
