package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/unireport/viewer/internal/domain/report"
	"github.com/unireport/viewer/internal/domain/scans"
)

// Store reads scan documents from an S3-compatible bucket. The viewer
// never writes: a missing bucket is a deployment error, not something
// to create on the fly.
type Store struct {
	client *minio.Client
	bucket string
}

// New connects to the object store and verifies the bucket exists.
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, scans.Transient("bucket check", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", bucket)
	}

	return &Store{client: cli, bucket: bucket}, nil
}

// List implements scans.Repository. Scan keys carry the username as a
// suffix, so the whole bucket is walked and filtered; the result is
// ordered newest upload first.
func (s *Store) List(ctx context.Context, username string) ([]scans.ScanFile, error) {
	suffix := scans.Suffix(username)

	var files []scans.ScanFile
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, scans.Transient("list objects", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, suffix) {
			continue
		}
		files = append(files, scans.ScanFile{
			FileName:   obj.Key,
			FileID:     strings.Trim(obj.ETag, `"`),
			UploadedAt: obj.LastModified.UnixMilli(),
			SizeBytes:  obj.Size,
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].UploadedAt > files[j].UploadedAt
	})
	return files, nil
}

// Download implements scans.Repository.
func (s *Store) Download(ctx context.Context, fileName string) (*report.Document, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, fileName, minio.GetObjectOptions{})
	if err != nil {
		return nil, scans.Transient("get object", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, scans.ErrNotFound
		}
		return nil, scans.Transient("read object", err)
	}

	return report.ParseDocument(data)
}

// Check reports whether the bucket is reachable. Used by the readiness
// probe.
func (s *Store) Check(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", s.bucket)
	}
	return nil
}

var _ scans.Repository = (*Store)(nil)
