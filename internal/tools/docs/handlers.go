package docs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	docspb "google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"

	"github.com/NoKnow606/google-workspace-mcp/internal/middleware"
	"github.com/NoKnow606/google-workspace-mcp/internal/pkg/doctree"
	"github.com/NoKnow606/google-workspace-mcp/internal/pkg/office"
	"github.com/NoKnow606/google-workspace-mcp/internal/pkg/response"
	"github.com/NoKnow606/google-workspace-mcp/internal/services"
)

const docMimeType = "application/vnd.google-apps.document"

// --- search_docs ---

type SearchDocsInput struct {
	UserEmail string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	Query     string `json:"query" jsonschema:"required" jsonschema_description:"Text to match against document names"`
	PageSize  int64  `json:"page_size,omitempty" jsonschema_description:"Maximum number of documents to return (default 10)"`
}

func createSearchDocsHandler(factory *services.Factory) mcp.ToolHandlerFor[SearchDocsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchDocsInput) (*mcp.CallToolResult, any, error) {
		srv, err := factory.Drive(ctx, input.UserEmail)
		if err != nil {
			return nil, nil, middleware.HandleGoogleAPIError(err)
		}

		pageSize := input.PageSize
		if pageSize <= 0 {
			pageSize = 10
		}

		query := fmt.Sprintf("name contains '%s' and mimeType='%s' and trashed=false",
			escapeDriveQuery(input.Query), docMimeType)

		result, err := srv.Files.List().
			Q(query).
			PageSize(pageSize).
			Fields("files(id, name, modifiedTime, webViewLink)").
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Context(ctx).
			Do()
		if err != nil {
			return nil, nil, middleware.HandleGoogleAPIError(err)
		}

		rb := response.New()
		rb.Header("Found %d documents matching %q", len(result.Files), input.Query)
		for _, f := range result.Files {
			rb.Item("%q (ID: %s) Modified: %s Link: %s", f.Name, f.Id, f.ModifiedTime, f.WebViewLink)
		}

		return rb.TextResult(), nil, nil
	}
}

// --- get_doc_content ---

type GetDocContentInput struct {
	UserEmail  string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	DocumentID string `json:"document_id" jsonschema:"required" jsonschema_description:"The Google Docs document ID (or Drive file ID for Office files)"`
	TabID      string `json:"tab_id,omitempty" jsonschema_description:"Extract only the tab with this ID (tabbed Google Docs only)"`
}

type DocContentOutput struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	MimeType   string `json:"mime_type"`
	Content    string `json:"content"`
}

func createGetDocContentHandler(factory *services.Factory) mcp.ToolHandlerFor[GetDocContentInput, DocContentOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetDocContentInput) (*mcp.CallToolResult, DocContentOutput, error) {
		driveSrv, err := factory.Drive(ctx, input.UserEmail)
		if err != nil {
			return nil, DocContentOutput{}, middleware.HandleGoogleAPIError(err)
		}

		// Metadata first: the MIME type decides between the Docs API path and
		// the Drive download path.
		file, err := driveSrv.Files.Get(input.DocumentID).
			Fields("id, name, mimeType, webViewLink").
			SupportsAllDrives(true).
			Context(ctx).
			Do()
		if err != nil {
			return nil, DocContentOutput{}, middleware.HandleGoogleAPIError(err)
		}

		var body string

		if file.MimeType == docMimeType {
			docsSrv, err := factory.Docs(ctx, input.UserEmail)
			if err != nil {
				return nil, DocContentOutput{}, middleware.HandleGoogleAPIError(err)
			}

			doc, err := docsSrv.Documents.Get(input.DocumentID).
				IncludeTabsContent(true).
				Context(ctx).
				Do()
			if err != nil {
				return nil, DocContentOutput{}, middleware.HandleGoogleAPIError(err)
			}

			body, err = renderDocument(doc, input.TabID)
			if err != nil {
				return nil, DocContentOutput{}, err
			}
		} else {
			if input.TabID != "" {
				body = fmt.Sprintf("--- ERROR ---\ntab_id is only supported for Google Docs, not %q.", file.MimeType)
			} else {
				body, err = downloadFileText(ctx, driveSrv, input.DocumentID, file.MimeType)
				if err != nil {
					return nil, DocContentOutput{}, err
				}
			}
		}

		content := fmt.Sprintf("File: %q (ID: %s, Type: %s)\nLink: %s\n\n--- CONTENT ---\n%s",
			file.Name, file.Id, file.MimeType, file.WebViewLink, body)

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: content}},
		}, DocContentOutput{DocumentID: file.Id, Title: file.Name, MimeType: file.MimeType, Content: body}, nil
	}
}

// renderDocument converts a Docs API response into text via the doctree
// package. The typed docs client cannot represent every tab-nesting shape the
// API emits, so the document is round-tripped through its wire form before
// parsing.
func renderDocument(doc *docspb.Document, tabID string) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}
	tree, err := doctree.Parse(data)
	if err != nil {
		return "", fmt.Errorf("parsing document structure: %w", err)
	}

	if len(tree.Tabs) > 0 {
		var lines []string
		if tabID != "" {
			lines = doctree.RenderTabsFiltered(tree.Tabs, tabID)
			if len(lines) == 0 {
				return fmt.Sprintf("--- ERROR ---\nNo tab found with tab_id %q.", tabID), nil
			}
		} else {
			lines = doctree.RenderTabs(tree.Tabs, 0)
		}
		return strings.Join(lines, "\n"), nil
	}

	if tabID != "" {
		return fmt.Sprintf("--- ERROR ---\nThis document has no tabs; tab_id %q cannot be resolved.", tabID), nil
	}
	return strings.Join(doctree.RenderElements(tree.Body), "\n"), nil
}

// --- list_docs_in_folder ---

type ListDocsInFolderInput struct {
	UserEmail string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	FolderID  string `json:"folder_id,omitempty" jsonschema_description:"The Drive folder ID (default: root)"`
	PageSize  int64  `json:"page_size,omitempty" jsonschema_description:"Maximum number of documents to return (default 100)"`
}

func createListDocsInFolderHandler(factory *services.Factory) mcp.ToolHandlerFor[ListDocsInFolderInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListDocsInFolderInput) (*mcp.CallToolResult, any, error) {
		srv, err := factory.Drive(ctx, input.UserEmail)
		if err != nil {
			return nil, nil, middleware.HandleGoogleAPIError(err)
		}

		folderID := input.FolderID
		if folderID == "" {
			folderID = "root"
		}
		pageSize := input.PageSize
		if pageSize <= 0 {
			pageSize = 100
		}

		query := fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false",
			escapeDriveQuery(folderID), docMimeType)

		result, err := srv.Files.List().
			Q(query).
			PageSize(pageSize).
			Fields("files(id, name, modifiedTime, webViewLink)").
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Context(ctx).
			Do()
		if err != nil {
			return nil, nil, middleware.HandleGoogleAPIError(err)
		}

		rb := response.New()
		rb.Header("Found %d Google Docs in folder %q", len(result.Files), folderID)
		for _, f := range result.Files {
			rb.Item("%q (ID: %s) Modified: %s Link: %s", f.Name, f.Id, f.ModifiedTime, f.WebViewLink)
		}

		return rb.TextResult(), nil, nil
	}
}

// --- create_doc ---

type CreateDocInput struct {
	UserEmail string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	Title     string `json:"title" jsonschema:"required" jsonschema_description:"Title for the new document"`
	Content   string `json:"content,omitempty" jsonschema_description:"Initial text content to insert"`
}

func createCreateDocHandler(factory *services.Factory) mcp.ToolHandlerFor[CreateDocInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateDocInput) (*mcp.CallToolResult, any, error) {
		srv, err := factory.Docs(ctx, input.UserEmail)
		if err != nil {
			return nil, nil, middleware.HandleGoogleAPIError(err)
		}

		created, err := srv.Documents.Create(&docspb.Document{Title: input.Title}).Context(ctx).Do()
		if err != nil {
			return nil, nil, middleware.HandleGoogleAPIError(err)
		}

		if input.Content != "" {
			insertReq := &docspb.BatchUpdateDocumentRequest{
				Requests: []*docspb.Request{{
					InsertText: &docspb.InsertTextRequest{
						Text:     input.Content,
						Location: &docspb.Location{Index: 1},
					},
				}},
			}
			if _, err := srv.Documents.BatchUpdate(created.DocumentId, insertReq).Context(ctx).Do(); err != nil {
				return nil, nil, middleware.HandleGoogleAPIError(err)
			}
		}

		rb := response.New()
		rb.Header("Document Created")
		rb.KeyValue("Title", created.Title)
		rb.KeyValue("Document ID", created.DocumentId)
		rb.KeyValue("Link", fmt.Sprintf("https://docs.google.com/document/d/%s/edit", created.DocumentId))

		return rb.TextResult(), nil, nil
	}
}

// downloadFileText fetches a non-native Drive file and converts it to text.
// Office XML formats go through structured extraction; anything else is
// accepted verbatim if it is valid UTF-8.
func downloadFileText(ctx context.Context, srv *drive.Service, fileID, mimeType string) (string, error) {
	resp, err := srv.Files.Get(fileID).
		SupportsAllDrives(true).
		Context(ctx).
		Download()
	if err != nil {
		return "", middleware.HandleGoogleAPIError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, office.MaxFileSize))
	if err != nil {
		return "", fmt.Errorf("reading file content: %w", err)
	}

	if isOfficeType(mimeType) {
		if extracted, err := office.ExtractText(data, mimeType); err == nil {
			return extracted, nil
		}
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	return fmt.Sprintf("[Binary or unsupported text encoding for mimeType '%s' - %d bytes]", mimeType, len(data)), nil
}
