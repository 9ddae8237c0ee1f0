package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rileyhilliard/lazyconn/internal/config"
	"github.com/rileyhilliard/lazyconn/internal/errors"
	"github.com/rileyhilliard/lazyconn/internal/inventory"
	"github.com/rileyhilliard/lazyconn/internal/logger"
	"github.com/rileyhilliard/lazyconn/internal/match"
	"github.com/rileyhilliard/lazyconn/internal/ui"
	"github.com/rileyhilliard/lazyconn/pkg/sshutil"
)

// ConnectOptions are the inputs of one connect run.
type ConnectOptions struct {
	Region  string
	User    string
	Pattern *string // nil when --match was not given
}

// Connector opens the ssh session to an instance.
type Connector interface {
	Connect(ctx context.Context, inst inventory.Instance, user string) error
}

// Session holds everything a connect or list run needs.
type Session struct {
	Config    *config.Config
	Source    inventory.Source
	Prompter  ui.Prompter
	Connector Connector
	SSHConfig *sshutil.Config
	Out       io.Writer
	Log       logger.Logger

	// Spinner shows progress while fetching. Only useful on a terminal.
	Spinner bool
}

// LoadInstances resolves the region, fetches the inventory once, and formats it.
func (s *Session) LoadInstances(ctx context.Context, regionFlag string) ([]inventory.Instance, string, error) {
	region := inventory.ResolveRegion(ctx, regionFlag, s.Config.DefaultRegion(), s.Source)
	s.Log.Debug("using region %s", region)

	var spinner *ui.Spinner
	if s.Spinner {
		spinner = ui.NewSpinner("Fetching instances in " + region)
		spinner.Start()
	}

	inv, err := s.Source.Fetch(ctx, region)
	if err != nil {
		if spinner != nil {
			spinner.Fail()
		}
		return nil, region, err
	}
	if spinner != nil {
		spinner.Success()
	}

	instances := inventory.Format(inv)
	s.Log.Debug("%d of %d instances are connectable", len(instances), inv.Count())
	return instances, region, nil
}

// Run fetches instances and connects to one. Without a pattern it returns to
// the menu after every session; with one it stops after the first session.
func (s *Session) Run(ctx context.Context, opts ConnectOptions) error {
	instances, region, err := s.LoadInstances(ctx, opts.Region)
	if err != nil {
		return err
	}
	if len(instances) == 0 {
		return errors.New(errors.ErrInventory,
			fmt.Sprintf("no running instances found in %s!", region),
			"Only instances that are not terminated and have a public IP address are listed. Try another --region.")
	}

	for {
		if err := s.connectOnce(ctx, instances, opts); err != nil {
			return err
		}
		if opts.Pattern != nil {
			return nil
		}
	}
}

func (s *Session) connectOnce(ctx context.Context, instances []inventory.Instance, opts ConnectOptions) error {
	sel := match.Match(instances, opts.Pattern, s.Config)

	inst := sel.Instance
	if inst != nil {
		s.Log.Info("matched %s (%s)", inst.Name, inst.ID)
	} else {
		if opts.Pattern != nil {
			s.Log.Debug("no instance name matches %q", *opts.Pattern)
		}
		fmt.Fprintln(s.Out, ui.RenderInstanceTable(instances))

		choice, err := s.Prompter.SelectInstance(ctx, instances)
		if err != nil {
			return err
		}
		inst = &instances[choice-1]
	}

	user, err := s.resolveUser(ctx, sel.User, opts.User, *inst)
	if err != nil {
		return err
	}

	return s.Connector.Connect(ctx, *inst, user)
}

// resolveUser applies the login user precedence: matched rule, --user flag,
// config default, then a prompt.
func (s *Session) resolveUser(ctx context.Context, ruleUser, flagUser string, inst inventory.Instance) (string, error) {
	for _, u := range []string{ruleUser, flagUser, s.Config.DefaultUser()} {
		if u = strings.TrimSpace(u); u != "" {
			return u, nil
		}
	}
	return s.Prompter.User(ctx, s.userSuggestions(inst))
}

// userSuggestions lists likely login users for inst: the ssh config's User
// for its address first, then every other User in the ssh config, then users
// from match rules.
func (s *Session) userSuggestions(inst inventory.Instance) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(u string) {
		if u != "" && !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}

	add(s.SSHConfig.UserFor(inst.Address))
	for _, u := range s.SSHConfig.Users() {
		add(u)
	}
	for _, r := range s.Config.Rules() {
		add(r.User)
	}
	return out
}
