package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// publicObjectMarker is the fixed segment public storage URLs carry
// between the API host and the bucket/key pair.
const publicObjectMarker = "/object/public/"

// ParseStorageURL extracts {bucket, path} from a public storage URL of
// the shape https://<host>/storage/v1/object/public/<bucket>/<key...>.
func ParseStorageURL(raw string) (bucket, objectPath string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid storage URL: %w", err)
	}

	idx := strings.Index(u.Path, publicObjectMarker)
	if idx < 0 {
		return "", "", fmt.Errorf("URL does not match the public object shape: %s", raw)
	}

	rest := u.Path[idx+len(publicObjectMarker):]
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("URL is missing bucket or object key: %s", raw)
	}
	return parts[0], parts[1], nil
}
