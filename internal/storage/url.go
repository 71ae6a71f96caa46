package storage

import (
	"net/url"
	"path"
	"strings"
)

// Scheme identifies one of the supported transfer backends.
type Scheme int

const (
	SchemeS3 Scheme = iota
	SchemeHTTP
	SchemeFTP
)

func (s Scheme) String() string {
	switch s {
	case SchemeS3:
		return "s3"
	case SchemeHTTP:
		return "http"
	case SchemeFTP:
		return "ftp"
	}
	return "unknown"
}

// Location is the normalized decomposition of a remote resource URL.
// For S3 locations Bucket/Key address the object; for HTTP and FTP
// locations Bucket holds the host and the raw URL is kept for fetching.
type Location struct {
	Scheme Scheme
	Bucket string
	Key    string
	URL    string
}

func (l Location) String() string {
	if l.Scheme == SchemeS3 {
		return "s3://" + l.Bucket + "/" + l.Key
	}
	return l.URL
}

// ParseURL parses a resource URL into a Location. The S3 object key is
// the URL path with at most one leading separator stripped.
func ParseURL(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, &MalformedURLError{URL: raw, Reason: err.Error()}
	}

	switch u.Scheme {
	case "s3":
		if u.Host == "" {
			return Location{}, &MalformedURLError{URL: raw, Reason: "missing bucket name"}
		}
		key := strings.TrimPrefix(u.Path, "/")
		if key == "" {
			return Location{}, &MalformedURLError{URL: raw, Reason: "missing object key"}
		}
		return Location{Scheme: SchemeS3, Bucket: u.Host, Key: key, URL: raw}, nil
	case "http", "https":
		if u.Host == "" {
			return Location{}, &MalformedURLError{URL: raw, Reason: "missing host"}
		}
		return Location{Scheme: SchemeHTTP, Bucket: u.Host, Key: u.Path, URL: raw}, nil
	case "ftp":
		if u.Host == "" {
			return Location{}, &MalformedURLError{URL: raw, Reason: "missing host"}
		}
		return Location{Scheme: SchemeFTP, Bucket: u.Host, Key: u.Path, URL: raw}, nil
	case "":
		return Location{}, &MalformedURLError{URL: raw, Reason: "missing scheme"}
	default:
		return Location{}, &MalformedURLError{URL: raw, Reason: "unsupported scheme " + u.Scheme}
	}
}

// DefaultFileName derives a local file name from the final path component
// of a URL.
func DefaultFileName(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", &MalformedURLError{URL: raw, Reason: err.Error()}
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", &MalformedURLError{URL: raw, Reason: "no file name in URL path"}
	}
	return name, nil
}

// JoinForUpload appends a local file name to a destination prefix URL and
// resolves the result to the upload target's location.
func JoinForUpload(destURL, fileName string) (Location, error) {
	return ParseURL(strings.TrimSuffix(destURL, "/") + "/" + fileName)
}
