package ratelimit

import "strings"

// unlimitedPaths are never throttled so probes and scrapers keep working under load.
var unlimitedPaths = map[string]bool{
	"GET /health":  true,
	"GET /metrics": true,
}

// unlimited is returned for exempt endpoints
var unlimited = &EndpointConfig{}

// MatchEndpoint returns the configuration governing method and path, or nil when
// the default limit applies. A configured path covers itself and every path below
// it, so "/assessments" also governs "/assessments/stream". The longest configured
// path wins.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimitedPaths[method+" "+path] {
		return unlimited
	}

	var best *EndpointConfig
	for i := range configs {
		cfg := &configs[i]
		if cfg.Method != method || !coversPath(cfg.Path, path) {
			continue
		}
		if best == nil || len(cfg.Path) > len(best.Path) {
			best = cfg
		}
	}
	return best
}

// coversPath reports whether path equals prefix or sits below it on a segment boundary.
func coversPath(prefix, path string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}
