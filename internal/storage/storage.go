// Package storage opens scan inputs and outputs. Plain paths go through an
// afero filesystem; URIs with a scheme (file:///dir/name.txt, mem://bucket/name.txt)
// are opened as gocloud blob buckets. mem:// buckets live for the life of the
// process, so an object written there can be read back by a later scan.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"

	"github.com/gcbaptista/go-textscan/internal/errors"
)

const outputFilePerm = 0644

// Opener resolves paths and URIs to readers and writers.
type Opener struct {
	fs afero.Fs
}

// NewOpener creates an Opener that serves plain paths from fs.
func NewOpener(fs afero.Fs) *Opener {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Opener{fs: fs}
}

// IsURI reports whether p names a blob bucket object rather than a local path.
func IsURI(p string) bool {
	u, err := url.Parse(p)
	if err != nil {
		return false
	}
	// Single-letter schemes are Windows drive letters.
	return len(u.Scheme) > 1 && strings.Contains(p, "://")
}

// OpenInput opens p for reading. Any failure to open is reported as a FileNotFoundError.
func (o *Opener) OpenInput(ctx context.Context, p string) (io.ReadCloser, error) {
	if IsURI(p) {
		return o.openBlobReader(ctx, p)
	}

	f, err := o.fs.Open(p)
	if err != nil {
		return nil, errors.NewFileNotFoundError(p, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.NewFileNotFoundError(p, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, errors.NewFileNotFoundError(p, fmt.Errorf("%s is a directory", p))
	}
	return f, nil
}

// CreateOutput creates or truncates p for writing.
func (o *Opener) CreateOutput(ctx context.Context, p string) (io.WriteCloser, error) {
	if IsURI(p) {
		return o.openBlobWriter(ctx, p)
	}

	f, err := o.fs.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, outputFilePerm)
	if err != nil {
		return nil, errors.NewIOError("create", p, err)
	}
	return f, nil
}

// deriveBucketURIAndKey splits file:///dir/name.txt into file:///dir and name.txt.
func deriveBucketURIAndKey(uri string) (string, string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse URI %s: %w", uri, err)
	}

	key := path.Base(u.Path)
	if key == "" || key == "/" || key == "." {
		return "", "", fmt.Errorf("URI %s does not name an object", uri)
	}
	u.Path = path.Dir(u.Path)

	return u.String(), key, nil
}

// memBuckets holds one memblob bucket per mem:// bucket URI. memblob itself hands
// out a fresh, empty bucket on every open.
var memBuckets = struct {
	sync.Mutex
	byURI map[string]*blob.Bucket
}{byURI: make(map[string]*blob.Bucket)}

func sharedMemBucket(bucketURI string) *blob.Bucket {
	memBuckets.Lock()
	defer memBuckets.Unlock()

	b, ok := memBuckets.byURI[bucketURI]
	if !ok {
		b = memblob.OpenBucket(nil)
		memBuckets.byURI[bucketURI] = b
	}
	return b
}

// openBucket returns the bucket holding uri and the object key inside it. owned is
// false for shared buckets, which must not be closed by the caller.
func (o *Opener) openBucket(ctx context.Context, uri string) (b *blob.Bucket, key string, owned bool, err error) {
	bucketURI, key, err := deriveBucketURIAndKey(uri)
	if err != nil {
		return nil, "", false, err
	}

	if strings.HasPrefix(bucketURI, memblob.Scheme+"://") {
		return sharedMemBucket(bucketURI), key, false, nil
	}

	b, err = blob.OpenBucket(ctx, bucketURI)
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to open bucket %s derived from %s: %w", bucketURI, uri, err)
	}
	return b, key, true, nil
}

func (o *Opener) openBlobReader(ctx context.Context, uri string) (io.ReadCloser, error) {
	b, key, owned, err := o.openBucket(ctx, uri)
	if err != nil {
		return nil, errors.NewFileNotFoundError(uri, err)
	}

	r, err := b.NewReader(ctx, key, nil)
	if err != nil {
		if owned {
			_ = b.Close()
		}
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, errors.NewFileNotFoundError(uri, os.ErrNotExist)
		}
		return nil, errors.NewFileNotFoundError(uri, err)
	}
	br := &bucketReader{Reader: r}
	if owned {
		br.bucket = b
	}
	return br, nil
}

func (o *Opener) openBlobWriter(ctx context.Context, uri string) (io.WriteCloser, error) {
	b, key, owned, err := o.openBucket(ctx, uri)
	if err != nil {
		return nil, errors.NewIOError("create", uri, err)
	}

	w, err := b.NewWriter(ctx, key, &blob.WriterOptions{ContentType: "text/plain; charset=utf-8"})
	if err != nil {
		if owned {
			_ = b.Close()
		}
		return nil, errors.NewIOError("create", uri, err)
	}
	bw := &bucketWriter{Writer: w}
	if owned {
		bw.bucket = b
	}
	return bw, nil
}

// bucketReader closes the bucket, when it owns one, along with the object reader.
type bucketReader struct {
	*blob.Reader
	bucket *blob.Bucket
}

func (r *bucketReader) Close() error {
	return closeWithBucket(r.Reader.Close(), r.bucket)
}

// bucketWriter commits the object on Close, then closes the bucket it owns.
type bucketWriter struct {
	*blob.Writer
	bucket *blob.Bucket
}

func (w *bucketWriter) Close() error {
	return closeWithBucket(w.Writer.Close(), w.bucket)
}

func closeWithBucket(err error, bucket *blob.Bucket) error {
	if bucket == nil {
		return err
	}
	if cerr := bucket.Close(); err == nil {
		err = cerr
	}
	return err
}
