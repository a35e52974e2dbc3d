package notion

import "context"

// INotion mirrors tasks into a Notion database.
type INotion interface {
	CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error)
	UpdatePage(ctx context.Context, req UpdatePageRequest) error
	ArchivePage(ctx context.Context, pageID string) error
}
