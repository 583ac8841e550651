package common

import (
	"errors"
	"net/url"
	"strings"
)

// ErrShortenedURL is returned when a link destination hides the real
// product URL behind a shortener
var ErrShortenedURL = errors.New("shortened URLs are not allowed; use the full product URL")

// ErrInvalidURL is returned when a link destination is not an absolute http(s) URL
var ErrInvalidURL = errors.New("destination must be an absolute http or https URL")

// Shortener domains are rejected as link destinations. Stats and
// commission attribution break when the stored URL is itself a
// redirect to somewhere else.
var shortenerDomains = []string{
	"bit.ly",
	"tinyurl.com",
	"t.co",
	"goo.gl",
	"amzn.to",
	"naver.me",
}

// ValidateDestinationURL validates the target of an affiliate link.
// The stored URL must be the final product page, not a shortener.
func ValidateDestinationURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}
	if u.Host == "" {
		return ErrInvalidURL
	}

	host := strings.ToLower(u.Hostname())
	for _, domain := range shortenerDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return ErrShortenedURL
		}
	}
	return nil
}
