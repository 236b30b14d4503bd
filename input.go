package indeploci

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// IsGoogleStoragePath reports whether path names a gs:// object.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// SplitGoogleStoragePath splits gs://bucket/path/to/object into the bucket
// and object names.
func SplitGoogleStoragePath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// OpenInput opens a local file (after ~ expansion) or, when client is non-nil
// and the path starts with gs://, a Google Storage object. Compressed data
// is decompressed transparently.
func OpenInput(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	var raw io.ReadCloser

	if client != nil && IsGoogleStoragePath(path) {
		bucketName, objectName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, err
		}

		rdr, err := client.Bucket(bucketName).Object(objectName).NewReader(ctx)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
		}
		raw = rdr
	} else {
		expanded, err := ExpandHome(path)
		if err != nil {
			return nil, err
		}

		f, err := os.Open(expanded)
		if err != nil {
			return nil, pfx.Err(err)
		}
		raw = f
	}

	out, _, err := MaybeDecompress(raw)
	if err != nil {
		raw.Close()
		return nil, err
	}

	return out, nil
}
