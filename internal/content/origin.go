package content

import (
	"context"
	"errors"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/morikuni/failure"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// Origin is a content store that serves the post index and post bodies.
// Locations are either relative to the origin root or absolute URLs taken
// from an index record.
type Origin interface {
	Kind() string
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// NewOrigin picks an origin implementation from the scheme of raw:
// http(s) URLs, s3://bucket/prefix, or a local directory.
func NewOrigin(ctx context.Context, raw string) (Origin, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, failure.Translate(err, OriginUnavailable, failure.Context{"origin": raw})
	}
	switch u.Scheme {
	case "http", "https":
		return NewHTTPOrigin(u, http.DefaultClient), nil
	case "s3":
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, failure.MarkUnexpected(err)
		}
		return NewS3Origin(s3.NewFromConfig(cfg), u.Host, strings.TrimPrefix(u.Path, "/")), nil
	case "file":
		return NewDirOrigin(u.Path), nil
	default:
		return NewDirOrigin(raw), nil
	}
}

// locationPath maps a location onto a slash-separated path below the
// origin root. Absolute URLs keep only their path so that a mirror of the
// remote store can be served from elsewhere.
func locationPath(location string) string {
	if u, err := url.Parse(location); err == nil && u.IsAbs() {
		location = u.Path
	}
	return strings.TrimPrefix(path.Clean("/"+location), "/")
}

type HTTPOrigin struct {
	base   *url.URL
	client *http.Client
}

func NewHTTPOrigin(base *url.URL, client *http.Client) *HTTPOrigin {
	b := *base
	if !strings.HasSuffix(b.Path, "/") {
		b.Path += "/"
	}
	return &HTTPOrigin{base: &b, client: client}
}

func (o *HTTPOrigin) Kind() string {
	return "http"
}

func (o *HTTPOrigin) Fetch(ctx context.Context, location string) ([]byte, error) {
	ref, err := url.Parse(location)
	if err != nil {
		return nil, failure.Translate(err, OriginUnavailable, failure.Context{"location": location})
	}
	target := o.base.ResolveReference(ref).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, failure.MarkUnexpected(err)
	}
	req.Header.Set("Accept", "text/plain; charset=utf-8")
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, failure.Translate(err, OriginUnavailable, failure.Context{"url": target})
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		code := OriginUnavailable
		if resp.StatusCode == http.StatusNotFound {
			code = NotFound
		}
		return nil, failure.New(code, failure.Context{"url": target, "status": strconv.Itoa(resp.StatusCode)})
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, failure.Translate(err, OriginUnavailable, failure.Context{"url": target})
	}
	return body, nil
}

// DirOrigin serves content from a local directory laid out like the
// remote store.
type DirOrigin struct {
	root string
}

func NewDirOrigin(root string) *DirOrigin {
	return &DirOrigin{root: root}
}

func (o *DirOrigin) Kind() string {
	return "dir"
}

func (o *DirOrigin) Fetch(_ context.Context, location string) ([]byte, error) {
	name := filepath.Join(o.root, filepath.FromSlash(locationPath(location)))
	body, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, failure.Translate(err, NotFound, failure.Context{"path": name})
	}
	if err != nil {
		return nil, failure.Translate(err, OriginUnavailable, failure.Context{"path": name})
	}
	return body, nil
}

type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Origin reads objects below prefix in bucket. s3:// locations name
// their own bucket and key.
type S3Origin struct {
	client s3API
	bucket string
	prefix string
}

func NewS3Origin(client s3API, bucket, prefix string) *S3Origin {
	return &S3Origin{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (o *S3Origin) Kind() string {
	return "s3"
}

func (o *S3Origin) objectOf(location string) (string, string) {
	if u, err := url.Parse(location); err == nil && u.Scheme == "s3" {
		return u.Host, strings.TrimPrefix(u.Path, "/")
	}
	key := locationPath(location)
	if o.prefix != "" {
		key = o.prefix + "/" + key
	}
	return o.bucket, key
}

func (o *S3Origin) Fetch(ctx context.Context, location string) ([]byte, error) {
	bucket, key := o.objectOf(location)
	out, err := o.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		ctxInfo := failure.Context{"bucket": bucket, "key": key}
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, failure.Translate(err, NotFound, ctxInfo)
		}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			ctxInfo["api_error"] = apiErr.ErrorCode()
		}
		return nil, failure.Translate(err, OriginUnavailable, ctxInfo)
	}
	defer out.Body.Close()
	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, failure.Translate(err, OriginUnavailable, failure.Context{"bucket": bucket, "key": key})
	}
	return body, nil
}
