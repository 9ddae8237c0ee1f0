package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/lazyconn/internal/config"
	"github.com/rileyhilliard/lazyconn/internal/connect"
	"github.com/rileyhilliard/lazyconn/internal/errors"
	"github.com/rileyhilliard/lazyconn/internal/inventory"
	"github.com/rileyhilliard/lazyconn/internal/logger"
	"github.com/rileyhilliard/lazyconn/internal/match"
	"github.com/rileyhilliard/lazyconn/internal/ui"
	"github.com/rileyhilliard/lazyconn/pkg/sshutil"
)

// Inventory sources selectable with --source.
const (
	SourceCLI = "cli"
	SourceSDK = "sdk"
)

// Global flags
var (
	regionFlag  string
	sourceFlag  string
	profileFlag string
	configFlag  string
	verboseFlag bool
	noColorFlag bool
)

// Root command flags
var (
	userFlag  string
	matchFlag string
)

var rootCmd = &cobra.Command{
	Use:   "lazyconn",
	Short: "Lazily connect to any of your AWS EC2 instances",
	Long: `lazyconn lists your EC2 instances that have a public IP address and
connects to one over ssh using the key pair file ~/.ssh/<KeyName>.pem.

Pick an instance from the numbered table, or pass --match to select one by
name. Rules in ~/.ssh/lazyconn.json map name fragments to login users:

  {"match": {"name": [{"contains": "ubuntu", "user": "ubuntu"}]}}

Examples:
  lazyconn
  lazyconn -r eu-west-1 -u ec2-user
  lazyconn -m web-prod`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verboseFlag)
		if noColorFlag || !ui.IsTerminal(os.Stdout) {
			ui.DisableColors()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return s.Run(cmd.Context(), ConnectOptions{
			Region:  regionFlag,
			User:    userFlag,
			Pattern: match.Pattern(matchFlag, cmd.Flags().Changed("match")),
		})
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&regionFlag, "region", "r", "", "AWS region to read instances from")
	pf.StringVar(&sourceFlag, "source", SourceCLI, "where to read instances from: cli (aws command) or sdk (AWS API)")
	pf.StringVar(&profileFlag, "profile", "", "AWS shared config profile (sdk source only)")
	pf.StringVar(&configFlag, "config", "", "config file (default ~/.ssh/lazyconn.json)")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "show debug output")
	pf.BoolVar(&noColorFlag, "no-color", false, "disable colored output")

	rootCmd.Flags().StringVarP(&userFlag, "user", "u", "", "default user to login as")
	rootCmd.Flags().StringVarP(&matchFlag, "match", "m", "", "pattern to match an instance name against, using rules from the config file")
}

// newSession builds a Session from the global flags and the environment.
func newSession(out io.Writer) (*Session, error) {
	log := logger.Default()

	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		log.Debug("no config file, match rules disabled")
	}

	src, err := newSource(sourceFlag, profileFlag)
	if err != nil {
		return nil, err
	}

	sshCfg, err := sshutil.LoadConfig(sshutil.DefaultConfigPath())
	if err != nil {
		log.Debug("ignoring unreadable ssh config: %v", err)
		sshCfg = nil
	}

	interactive := ui.Interactive()
	var prompter ui.Prompter = ui.NewLinePrompter(os.Stdin, out)
	if interactive {
		prompter = ui.NewHuhPrompter()
	}

	env := config.LoadEnv()
	return &Session{
		Config:    cfg,
		Source:    src,
		Prompter:  prompter,
		Connector: connect.New(connect.Options{Container: env.Container}, nil),
		SSHConfig: sshCfg,
		Out:       out,
		Log:       log,
		Spinner:   interactive,
	}, nil
}

func newSource(kind, profile string) (inventory.Source, error) {
	switch kind {
	case SourceCLI:
		if profile != "" {
			return nil, errors.New(errors.ErrConfig,
				"--profile only works with --source sdk",
				"Set AWS_PROFILE for the aws CLI, or add --source sdk.")
		}
		return inventory.NewCLISource(nil), nil
	case SourceSDK:
		return inventory.NewSDKSource(profile), nil
	default:
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown inventory source %q", kind),
			"Use --source cli or --source sdk.")
	}
}

// Execute runs the root command and exits with the resulting status code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	os.Exit(handleError(err, os.Stderr))
}

// handleError prints err and returns the process exit code for it.
func handleError(err error, w io.Writer) int {
	if err == nil {
		return 0
	}

	if stderrors.Is(err, errors.ErrAborted) || stderrors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "exiting...")
		return 1
	}

	if code, ok := errors.GetExitCode(err); ok {
		fmt.Fprintf(w, "error: %v\n", err)
		if code == 0 {
			return 1
		}
		return code
	}

	var lcErr *errors.Error
	if stderrors.As(err, &lcErr) {
		fmt.Fprint(w, lcErr.Error())
		if errors.IsCode(err, errors.ErrInput) {
			fmt.Fprintf(w, "Run '%s --help' for usage.\n", rootCmd.Name())
		}
		return 1
	}

	fmt.Fprintf(w, "error: %v\n", err)
	if isUnknownCommandError(err) {
		fmt.Fprintf(w, "Run '%s --help' for usage.\n", rootCmd.Name())
	}
	return 1
}

// isUnknownCommandError checks if the error is from cobra about an unknown command or flag.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}
