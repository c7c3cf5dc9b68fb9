// Package adapters contains glue between platform services and the domain
// ports that consume them.
package adapters

import (
	"context"
	"fmt"

	"ultron_backend/internal/adapters/storage"
	"ultron_backend/internal/email"
	orgrepo "ultron_backend/internal/organizations/repository"
)

// BrochureFetcher retrieves a tenant's brochure document from object storage
// in the shape the workflow engine attaches to email.
type BrochureFetcher struct {
	store *storage.MinIOService
}

func NewBrochureFetcher(store *storage.MinIOService) *BrochureFetcher {
	return &BrochureFetcher{store: store}
}

func (f *BrochureFetcher) FetchBrochure(ctx context.Context, settings orgrepo.Settings) (email.Attachment, error) {
	if f.store == nil {
		return email.Attachment{}, fmt.Errorf("document storage not configured")
	}
	if !settings.HasBrochure() {
		return email.Attachment{}, fmt.Errorf("no brochure configured")
	}

	obj, err := f.store.DownloadObject(ctx, *settings.BrochureBucket, *settings.BrochureFileKey)
	if err != nil {
		return email.Attachment{}, err
	}

	return email.Attachment{
		FileName:    obj.FileName,
		Content:     obj.Content,
		ContentType: obj.ContentType,
	}, nil
}
