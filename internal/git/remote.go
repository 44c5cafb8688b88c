package git

import (
	"fmt"
	"strings"

	giturls "github.com/whilp/git-urls"
)

// RemoteURL resolves the repository's canonical web URL for commit
// hyperlinks. An explicitly supplied URL always wins over the origin remote.
// SSH-form URLs (git@host:org/repo.git) are rewritten to their HTTPS web
// equivalents; trailing slashes and ".git" suffixes are trimmed.
func (r *Repository) RemoteURL(explicit string) (string, error) {
	url := explicit
	if url == "" {
		remote, err := r.repo.Remote("origin")
		if err != nil {
			return "", fmt.Errorf("resolving origin remote: %w", err)
		}
		urls := remote.Config().URLs
		if len(urls) == 0 {
			return "", fmt.Errorf("origin remote has no URL configured")
		}
		url = urls[0]
		logDebug("[git] RemoteURL: origin is %s", url)
	}

	if isSSHURL(url) {
		https, err := sshToHTTPS(url)
		if err != nil {
			return "", err
		}
		logDebug("[git] RemoteURL: rewrote %s -> %s", url, https)
		url = https
	}

	url = strings.TrimSuffix(url, "/")
	url = strings.TrimSuffix(url, ".git")
	return url, nil
}

// isSSHURL checks if a URL is an SSH URL.
// Detects git@ (SCP-style), ssh://, and git+ssh:// schemes.
func isSSHURL(url string) bool {
	return strings.HasPrefix(url, "git@") ||
		strings.HasPrefix(url, "ssh://") ||
		strings.HasPrefix(url, "git+ssh://")
}

// sshToHTTPS rewrites an SSH-form git URL to the HTTPS web URL browsers can
// open.
func sshToHTTPS(url string) (string, error) {
	u, err := giturls.Parse(url)
	if err != nil {
		return "", fmt.Errorf("parsing remote URL %q: %w", url, err)
	}

	host := u.Hostname()
	if host == "" {
		host = u.Host
	}

	path := strings.Trim(u.Path, "/")
	path = strings.TrimSuffix(path, ".git")
	return "https://" + host + "/" + path, nil
}
