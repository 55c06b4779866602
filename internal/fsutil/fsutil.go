// Package fsutil qualifies warehouse paths against a distributed
// filesystem context, mirroring how Hadoop resolves unqualified paths
// against fs.defaultFS.
package fsutil

import (
	"fmt"
	"net/url"
	"strings"
)

// Qualifier resolves scheme and authority for unqualified paths.
type Qualifier struct {
	// DefaultFS is the filesystem URI unqualified paths resolve against,
	// e.g. "hdfs://namenode:8020". Empty leaves paths local and unchanged.
	DefaultFS string
}

// Qualify returns path with scheme and authority applied. Paths that
// already carry a scheme are returned unchanged.
func (q *Qualifier) Qualify(path string) (string, error) {
	if hasScheme(path) {
		return path, nil
	}
	if q.DefaultFS == "" {
		return path, nil
	}

	u, err := url.Parse(q.DefaultFS)
	if err != nil {
		return "", fmt.Errorf("invalid default filesystem %q: %w", q.DefaultFS, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("default filesystem %q has no scheme or authority", q.DefaultFS)
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return u.Scheme + "://" + u.Host + path, nil
}

// hasScheme reports whether path already carries a URI scheme.
func hasScheme(path string) bool {
	i := strings.Index(path, "://")
	return i > 0 && !strings.ContainsAny(path[:i], "/ ")
}
