package inventory

import (
	"context"
	"strings"
)

// FallbackRegion is used when no region is given or configured anywhere.
const FallbackRegion = "us-east-1"

// Source fetches raw instance inventory for a region.
type Source interface {
	// DefaultRegion returns the region the source would use on its own,
	// or "" if it has none. Failures are swallowed.
	DefaultRegion(ctx context.Context) string

	// Fetch returns all instances in the region.
	Fetch(ctx context.Context, region string) (*Inventory, error)
}

// ResolveRegion picks the region to query, in order: the --region flag, the
// config file, the source's own default, then FallbackRegion. The source is
// only consulted when the first two are empty.
func ResolveRegion(ctx context.Context, flagRegion, configRegion string, src Source) string {
	if r := strings.TrimSpace(flagRegion); r != "" {
		return r
	}
	if r := strings.TrimSpace(configRegion); r != "" {
		return r
	}
	if src != nil {
		if r := normalizeRegion(src.DefaultRegion(ctx)); r != "" {
			return r
		}
	}
	return FallbackRegion
}

// normalizeRegion treats the strings the aws CLI prints for "unset" as empty.
func normalizeRegion(r string) string {
	r = strings.TrimSpace(r)
	if r == "None" {
		return ""
	}
	return r
}
