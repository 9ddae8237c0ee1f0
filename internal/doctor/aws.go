package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rileyhilliard/lazyconn/internal/config"
	"github.com/rileyhilliard/lazyconn/internal/inventory"
)

// RegionCheck reports which region lazyconn would query and where it came from.
type RegionCheck struct {
	FlagRegion string
	Config     *config.Config
	Source     inventory.Source
}

func (c *RegionCheck) Name() string     { return "region" }
func (c *RegionCheck) Category() string { return CategoryAWS }

func (c *RegionCheck) Run(ctx context.Context) CheckResult {
	region, origin := c.resolve(ctx)

	if err := config.ValidateRegion(region); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Region %q (from %s) doesn't look like an AWS region", region, origin),
			Suggestion: "Use a region name like us-east-1 or eu-west-2",
		}
	}

	result := CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Using %s (from %s)", region, origin),
	}
	if origin == "fallback" {
		result.Suggestion = "Set a default with: aws configure set region <region>"
	}
	return result
}

func (c *RegionCheck) Fix() error {
	return nil
}

// resolve follows the same precedence as inventory.ResolveRegion but also
// names the winning source.
func (c *RegionCheck) resolve(ctx context.Context) (string, string) {
	if r := strings.TrimSpace(c.FlagRegion); r != "" {
		return r, "--region"
	}
	if r := strings.TrimSpace(c.Config.DefaultRegion()); r != "" {
		return r, "config"
	}
	if c.Source != nil {
		// The aws CLI prints "None" for an unset value.
		if r := strings.TrimSpace(c.Source.DefaultRegion(ctx)); r != "" && r != "None" {
			return r, "aws configuration"
		}
	}
	return inventory.FallbackRegion, "fallback"
}
