package storage

import (
	"context"
	"time"

	"github.com/Velocidex/ttlcache/v2"

	"github.com/unireport/viewer/internal/domain/report"
	"github.com/unireport/viewer/internal/domain/scans"
)

const (
	DefaultListTTL     = 30 * time.Second
	DefaultDocumentTTL = 5 * time.Minute
)

// CachedRepository memoizes listings and downloaded documents for fixed
// windows so repeated navigation does not hammer the object store.
// Hits do not extend the window; errors are never cached.
type CachedRepository struct {
	next scans.Repository

	listings  *ttlcache.Cache
	documents *ttlcache.Cache
}

func NewCachedRepository(next scans.Repository, listTTL, documentTTL time.Duration) *CachedRepository {
	if listTTL <= 0 {
		listTTL = DefaultListTTL
	}
	if documentTTL <= 0 {
		documentTTL = DefaultDocumentTTL
	}

	listings := ttlcache.NewCache()
	_ = listings.SetTTL(listTTL)
	listings.SkipTTLExtensionOnHit(true)

	documents := ttlcache.NewCache()
	_ = documents.SetTTL(documentTTL)
	documents.SkipTTLExtensionOnHit(true)

	return &CachedRepository{
		next:      next,
		listings:  listings,
		documents: documents,
	}
}

func (c *CachedRepository) List(ctx context.Context, username string) ([]scans.ScanFile, error) {
	if hit, err := c.listings.Get(username); err == nil {
		if files, ok := hit.([]scans.ScanFile); ok {
			return files, nil
		}
	}

	files, err := c.next.List(ctx, username)
	if err != nil {
		return nil, err
	}
	_ = c.listings.Set(username, files)
	return files, nil
}

func (c *CachedRepository) Download(ctx context.Context, fileName string) (*report.Document, error) {
	if hit, err := c.documents.Get(fileName); err == nil {
		if doc, ok := hit.(*report.Document); ok {
			return doc, nil
		}
	}

	doc, err := c.next.Download(ctx, fileName)
	if err != nil {
		return nil, err
	}
	_ = c.documents.Set(fileName, doc)
	return doc, nil
}

func (c *CachedRepository) Close() {
	c.listings.Close()
	c.documents.Close()
}

var _ scans.Repository = (*CachedRepository)(nil)
