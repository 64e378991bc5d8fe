package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"go.uber.org/zap"
)

// Chat images are never rewritten under the same name.
const imageCacheControl = "public, max-age=31536000, immutable"

// AzureBlobStorage keeps chat images in one container. Blob names are
// "<folder>/<uuid><ext>", so the URL of an upload never changes.
type AzureBlobStorage struct {
	client        *azblob.Client
	containerName string
	logger        *zap.Logger
}

// NewAzureBlobStorage connects to the account and creates the container if
// it does not exist yet.
func NewAzureBlobStorage(connectionString, containerName string, logger *zap.Logger) (*AzureBlobStorage, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	_, err = client.CreateContainer(context.Background(), containerName, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil, fmt.Errorf("failed to create container %s: %w", containerName, err)
	}

	logger.Info("Azure Blob Storage initialized", zap.String("container", containerName))

	return &AzureBlobStorage{
		client:        client,
		containerName: containerName,
		logger:        logger,
	}, nil
}

func (s *AzureBlobStorage) Upload(ctx context.Context, folder, filename, contentType string, data io.Reader) (string, int64, error) {
	blobName := objectName(folder, filename)
	cacheControl := imageCacheControl
	originalName := url.QueryEscape(filename)

	counted := &countingReader{r: data}
	_, err := s.client.UploadStream(ctx, s.containerName, blobName, counted, &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType:  &contentType,
			BlobCacheControl: &cacheControl,
		},
		Metadata: map[string]*string{
			"originalname": &originalName,
		},
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to upload blob %s: %w", blobName, err)
	}

	s.logger.Info("Chat image uploaded",
		zap.String("blob", blobName),
		zap.String("content_type", contentType),
		zap.Int64("size", counted.n),
	)

	return blobName, counted.n, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (s *AzureBlobStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	resp, err := s.client.DownloadStream(ctx, s.containerName, storagePath, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, storagePath)
		}
		return nil, fmt.Errorf("failed to download blob %s: %w", storagePath, err)
	}
	return resp.Body, nil
}

// URL returns the blob URL under the account endpoint.
func (s *AzureBlobStorage) URL(storagePath string) string {
	base := strings.TrimRight(s.client.URL(), "/")
	u, err := url.JoinPath(base, s.containerName, storagePath)
	if err != nil {
		return base + "/" + s.containerName + "/" + storagePath
	}
	return u
}
