// Package intake turns free-form pasted text into a list of accepted video links.
package intake

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/net/publicsuffix"
)

// ErrNoValidLinks is returned when no token in the input is an accepted link.
var ErrNoValidLinks = errors.New("please enter valid YouTube URLs")

// DefaultHosts are the registrable domains accepted when none are configured.
var DefaultHosts = []string{"youtube.com", "youtu.be"}

var separator = regexp.MustCompile(`[\n,]`)

// Tokens splits text on newlines and commas and drops blank tokens.
func Tokens(text string) []string {
	return lo.FilterMap(separator.Split(text, -1), func(token string, _ int) (string, bool) {
		token = strings.TrimSpace(token)
		return token, token != ""
	})
}

// Parse returns the tokens of text that are absolute http(s) URLs on one of hosts,
// in input order. Duplicates are kept. An empty hosts list means DefaultHosts.
func Parse(text string, hosts []string) []string {
	if len(hosts) == 0 {
		hosts = DefaultHosts
	}

	accepted := lo.Map(hosts, func(h string, _ int) string {
		return strings.ToLower(strings.TrimSpace(h))
	})

	return lo.Filter(Tokens(text), func(token string, _ int) bool {
		return Accepts(token, accepted)
	})
}

// Validate is Parse that fails with ErrNoValidLinks on an empty result.
func Validate(text string, hosts []string) ([]string, error) {
	links := Parse(text, hosts)
	if len(links) == 0 {
		return nil, ErrNoValidLinks
	}
	return links, nil
}

// Accepts reports whether raw is an absolute http(s) URL whose host, or its
// registrable domain, is one of hosts. hosts must already be lower case.
func Accepts(raw string, hosts []string) bool {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" {
		return false
	}

	if lo.Contains(hosts, host) {
		return true
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return false
	}
	return lo.Contains(hosts, domain)
}
