package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rileyhilliard/lazyconn/internal/errors"
)

// regionPattern matches AWS region names like us-east-1 or us-gov-west-1.
var regionPattern = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d+$`)

// Validate checks the config for errors and returns structured error messages.
// An empty "contains" is allowed: it matches every instance name.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	if cfg.Region != "" {
		if err := ValidateRegion(cfg.Region); err != nil {
			return err
		}
	}

	if cfg.User != "" {
		if err := validateUser(cfg.User); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Default user is invalid",
				"Set \"user\" to a plain login name like ec2-user")
		}
	}

	for i, rule := range cfg.Match.Name {
		if rule.User == "" {
			continue
		}
		if err := validateUser(rule.User); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("match.name[%d] has an invalid user", i),
				"Users are plain login names like ubuntu or ec2-user")
		}
	}

	return nil
}

// ValidateRegion checks that a region name looks like an AWS region.
func ValidateRegion(region string) error {
	if !regionPattern.MatchString(region) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like an AWS region", region),
			"Use a region name like us-east-1 or eu-west-2")
	}
	return nil
}

// validateUser checks a login name. Surrounding whitespace is ignored since
// users are trimmed before use.
func validateUser(user string) error {
	if strings.ContainsAny(strings.TrimSpace(user), "@ \t\n") {
		return fmt.Errorf("%q must not contain '@' or whitespace", user)
	}
	return nil
}
