package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMatchRule(t *testing.T) {
	tests := []struct {
		name      string
		initial   string
		rule      MatchRule
		wantRules []MatchRule
	}{
		{
			name:      "creates missing file",
			rule:      MatchRule{Contains: "web", User: "alice"},
			wantRules: []MatchRule{{Contains: "web", User: "alice"}},
		},
		{
			name:    "appends after existing rules",
			initial: `{"match": {"name": [{"contains": "db", "user": "postgres"}]}}`,
			rule:    MatchRule{Contains: "web", User: "alice"},
			wantRules: []MatchRule{
				{Contains: "db", User: "postgres"},
				{Contains: "web", User: "alice"},
			},
		},
		{
			name:      "skips duplicate rule",
			initial:   `{"match": {"name": [{"contains": "web", "user": "alice"}]}}`,
			rule:      MatchRule{Contains: "web", User: "alice"},
			wantRules: []MatchRule{{Contains: "web", User: "alice"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", ConfigFileName)
			if tt.initial != "" {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
				require.NoError(t, os.WriteFile(path, []byte(tt.initial), 0644))
			}

			require.NoError(t, AddMatchRule(path, tt.rule))

			cfg, err := Load(path)
			require.NoError(t, err)
			require.NotNil(t, cfg)
			assert.Equal(t, tt.wantRules, cfg.Rules())
		})
	}
}

func TestAddMatchRule_KeepsOtherSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"region": "eu-central-1", "user": "ubuntu"}`), 0644))

	require.NoError(t, AddMatchRule(path, MatchRule{Contains: "bastion", User: "ec2-user"}))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", cfg.Region)
	assert.Equal(t, "ubuntu", cfg.User)
	assert.Len(t, cfg.Rules(), 1)
}

func TestAddMatchRule_InvalidUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	err := AddMatchRule(path, MatchRule{Contains: "web", User: "root@host"})
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing should be written for an invalid rule")
}
