package inventory

import (
	"context"
	"errors"
	"testing"

	lcerrors "github.com/rileyhilliard/lazyconn/internal/errors"
	"github.com/rileyhilliard/lazyconn/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResult struct {
	stdout string
	stderr string
	code   int
	err    error
}

// fakeRunner returns canned results keyed by the first argument.
type fakeRunner struct {
	results map[string]fakeResult
	calls   []Command
}

func (f *fakeRunner) Run(_ context.Context, cmd Command) ([]byte, []byte, int, error) {
	f.calls = append(f.calls, cmd)
	key := ""
	if len(cmd.Args) > 0 {
		key = cmd.Args[0]
	}
	r := f.results[key]
	return []byte(r.stdout), []byte(r.stderr), r.code, r.err
}

func newTestCLISource(r Runner) *CLISource {
	return NewCLISource(r).WithLogger(logger.Noop())
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    Version
		wantErr bool
	}{
		{
			name:   "v2",
			output: "aws-cli/2.15.0 Python/3.11.6 Linux/6.5.0-1014-aws exe/x86_64.ubuntu.22 prompt/off",
			want:   Version{Major: 2, Minor: 15, Patch: 0},
		},
		{
			name:   "v1",
			output: "aws-cli/1.29.62 Python/3.8.10 Linux/5.15.0 botocore/1.31.62",
			want:   Version{Major: 1, Minor: 29, Patch: 62},
		},
		{
			name:   "trailing newline",
			output: "aws-cli/2.0.1\n",
			want:   Version{Major: 2, Minor: 0, Patch: 1},
		},
		{name: "empty", output: "", wantErr: true},
		{name: "no slash", output: "aws-cli 2.1.0", wantErr: true},
		{name: "short number", output: "aws-cli/2.1", wantErr: true},
		{name: "non numeric", output: "aws-cli/2.x.0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.output)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFetchCommand(t *testing.T) {
	tests := []struct {
		name      string
		version   Version
		wantPager bool
	}{
		{name: "v2 disables pager by flag", version: Version{Major: 2, Minor: 15}, wantPager: true},
		{name: "v1 has no pager flag", version: Version{Major: 1, Minor: 29}, wantPager: false},
		{name: "v3 is not v2", version: Version{Major: 3}, wantPager: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := FetchCommand("aws", "eu-west-1", tt.version)

			assert.Equal(t, "aws", cmd.Name)
			assert.Equal(t, []string{"ec2", "describe-instances", "--output", "json", "--region", "eu-west-1"}, cmd.Args[:6])
			if tt.wantPager {
				assert.Equal(t, "--no-cli-pager", cmd.Args[len(cmd.Args)-1])
			} else {
				assert.NotContains(t, cmd.Args, "--no-cli-pager")
			}

			val, ok := cmd.Env["AWS_PAGER"]
			assert.True(t, ok, "AWS_PAGER is overridden for every version")
			assert.Equal(t, "", val)
		})
	}
}

func TestFetchCommand_EnvNotShared(t *testing.T) {
	a := FetchCommand("aws", "us-east-1", Version{Major: 2})
	a.Env["AWS_PAGER"] = "less"

	b := FetchCommand("aws", "us-east-1", Version{Major: 2})
	assert.Equal(t, "", b.Env["AWS_PAGER"])
}

func TestCLISource_DefaultRegion(t *testing.T) {
	tests := []struct {
		name   string
		result fakeResult
		want   string
	}{
		{name: "configured", result: fakeResult{stdout: "eu-west-2\n"}, want: "eu-west-2"},
		{name: "unset prints nothing", result: fakeResult{stdout: "", code: 1}, want: ""},
		{name: "None", result: fakeResult{stdout: "None\n"}, want: ""},
		{name: "runner error is swallowed", result: fakeResult{err: errors.New("aws: not found")}, want: ""},
		{name: "non-zero exit is swallowed", result: fakeResult{stdout: "us-west-1", stderr: "boom", code: 255}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{results: map[string]fakeResult{"configure": tt.result}}
			src := newTestCLISource(r)

			assert.Equal(t, tt.want, src.DefaultRegion(context.Background()))
			require.Len(t, r.calls, 1)
			assert.Equal(t, []string{"configure", "get", "region"}, r.calls[0].Args)
		})
	}
}

func TestCLISource_Version(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		r := &fakeRunner{results: map[string]fakeResult{"--version": {stdout: "aws-cli/2.13.4 Python/3.11.4"}}}
		v, err := newTestCLISource(r).Version(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Version{Major: 2, Minor: 13, Patch: 4}, v)
	})

	t.Run("stderr fallback", func(t *testing.T) {
		r := &fakeRunner{results: map[string]fakeResult{"--version": {stderr: "aws-cli/1.16.0 Python/2.7.16"}}}
		v, err := newTestCLISource(r).Version(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, v.Major)
	})

	t.Run("failure propagates exit code", func(t *testing.T) {
		r := &fakeRunner{results: map[string]fakeResult{"--version": {stderr: "broken install", code: 127}}}
		_, err := newTestCLISource(r).Version(context.Background())
		require.Error(t, err)

		code, ok := lcerrors.GetExitCode(err)
		assert.True(t, ok)
		assert.Equal(t, 127, code)
		assert.Contains(t, err.Error(), "broken install")
	})

	t.Run("garbage output", func(t *testing.T) {
		r := &fakeRunner{results: map[string]fakeResult{"--version": {stdout: "hello"}}}
		_, err := newTestCLISource(r).Version(context.Background())
		require.Error(t, err)
		assert.True(t, lcerrors.IsCode(err, lcerrors.ErrInventory))
	})
}

const sampleInventory = `{"Reservations": [{"Instances": [
  {"InstanceId": "i-1", "State": {"Code": 16}, "PublicIpAddress": "1.1.1.1",
   "PlatformDetails": "Linux/UNIX", "InstanceType": "t3.micro", "KeyName": "k",
   "Tags": [{"Key": "Name", "Value": "web-1"}]}
]}]}`

func TestCLISource_Fetch(t *testing.T) {
	r := &fakeRunner{results: map[string]fakeResult{
		"--version": {stdout: "aws-cli/2.15.0 Python/3.11.6"},
		"ec2":       {stdout: sampleInventory},
	}}

	inv, err := newTestCLISource(r).Fetch(context.Background(), "ap-south-1")
	require.NoError(t, err)
	assert.Equal(t, 1, inv.Count())

	require.Len(t, r.calls, 2)
	fetch := r.calls[1]
	assert.Contains(t, fetch.Args, "ap-south-1")
	assert.Contains(t, fetch.Args, "--no-cli-pager")
	assert.Equal(t, map[string]string{"AWS_PAGER": ""}, fetch.Env)
}

func TestCLISource_FetchFailure(t *testing.T) {
	r := &fakeRunner{results: map[string]fakeResult{
		"--version": {stdout: "aws-cli/1.29.0 Python/3.8"},
		"ec2":       {stderr: "An error occurred (AuthFailure)", code: 254},
	}}

	_, err := newTestCLISource(r).Fetch(context.Background(), "us-east-1")
	require.Error(t, err)

	var exitErr *lcerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 254, exitErr.Code)
	assert.Equal(t, "An error occurred (AuthFailure)", exitErr.Output)
}

func TestCLISource_FetchBadJSON(t *testing.T) {
	r := &fakeRunner{results: map[string]fakeResult{
		"--version": {stdout: "aws-cli/2.15.0"},
		"ec2":       {stdout: "not json"},
	}}

	_, err := newTestCLISource(r).Fetch(context.Background(), "us-east-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Couldn't parse describe-instances output")
}
