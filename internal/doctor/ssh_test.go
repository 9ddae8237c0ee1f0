package doctor

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func writePEM(t *testing.T, dir, name string, mode os.FileMode) string {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	block, err := ssh.MarshalPrivateKey(priv, "")
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), mode))
	require.NoError(t, os.Chmod(path, mode))
	return path
}

func TestKeyFilesCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("name and category", func(t *testing.T) {
		check := &KeyFilesCheck{}
		assert.Equal(t, "key_files", check.Name())
		assert.Equal(t, CategorySSH, check.Category())
	})

	t.Run("missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nope")
		result := (&KeyFilesCheck{KeyDir: dir}).Run(ctx)

		assert.Equal(t, StatusFail, result.Status)
		assert.Contains(t, result.Message, "does not exist")
	})

	t.Run("no keys", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), []byte("Host *\n"), 0600))

		result := (&KeyFilesCheck{KeyDir: dir}).Run(ctx)

		assert.Equal(t, StatusWarn, result.Status)
		assert.Contains(t, result.Message, "No .pem keys")
	})

	t.Run("keys ok", func(t *testing.T) {
		dir := t.TempDir()
		writePEM(t, dir, "prod.pem", 0600)
		writePEM(t, dir, "dev.pem", 0400)

		result := (&KeyFilesCheck{KeyDir: dir}).Run(ctx)

		assert.Equal(t, StatusPass, result.Status, result.Message)
		assert.Contains(t, result.Message, "2 keys")
	})

	t.Run("loose permissions fixed", func(t *testing.T) {
		dir := t.TempDir()
		writePEM(t, dir, "prod.pem", 0600)
		loose := writePEM(t, dir, "dev.pem", 0644)

		check := &KeyFilesCheck{KeyDir: dir}
		result := check.Run(ctx)

		assert.Equal(t, StatusWarn, result.Status)
		assert.Equal(t, "Insecure permissions on: dev.pem", result.Message)
		assert.True(t, result.Fixable)

		require.NoError(t, check.Fix())

		st, err := os.Stat(loose)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), st.Mode().Perm())
		assert.Equal(t, StatusPass, check.Run(ctx).Status)
	})

	t.Run("unparseable key", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.pem"), []byte("not a key"), 0600))
		require.NoError(t, os.Chmod(filepath.Join(dir, "junk.pem"), 0600))

		result := (&KeyFilesCheck{KeyDir: dir}).Run(ctx)

		assert.Equal(t, StatusWarn, result.Status)
		assert.Contains(t, result.Message, "Not valid private keys: junk.pem")
		assert.False(t, result.Fixable)
	})
}

func TestSSHConfigCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		result := (&SSHConfigCheck{ConfigPath: filepath.Join(t.TempDir(), "config")}).Run(ctx)
		assert.Equal(t, StatusPass, result.Status)
		assert.Contains(t, result.Message, "No ssh config")
	})

	t.Run("parses", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config")
		content := "Host web\n  User ubuntu\n\nHost *\n  User ec2-user\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		result := (&SSHConfigCheck{ConfigPath: path}).Run(ctx)

		assert.Equal(t, StatusPass, result.Status)
		assert.Equal(t, "ssh config parsed (2 users)", result.Message)
	})

	t.Run("unreadable", func(t *testing.T) {
		// A directory stats fine but cannot be read as a file.
		result := (&SSHConfigCheck{ConfigPath: t.TempDir()}).Run(ctx)
		assert.Equal(t, StatusWarn, result.Status)
		assert.Contains(t, result.Message, "Cannot parse")
	})
}
