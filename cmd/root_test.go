package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/compozy/tagdeploy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentArg(t *testing.T) {
	t.Run("Should print usage when the environment is missing", func(t *testing.T) {
		err := environmentArg(rootCmd, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUsage)
		assert.ErrorContains(t, err, usageLine)
	})

	t.Run("Should reject extra arguments", func(t *testing.T) {
		err := environmentArg(rootCmd, []string{"staging", "production"})
		assert.ErrorIs(t, err, domain.ErrUsage)
	})

	t.Run("Should accept a single argument", func(t *testing.T) {
		assert.NoError(t, environmentArg(rootCmd, []string{"staging"}))
	})
}

func TestRootCmd(t *testing.T) {
	t.Run("Should reject an invalid environment before loading config or git", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(t.TempDir()))
		t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
		// an unusable config would fail first if it were loaded
		t.Setenv("TAG_DEPLOY_GIT_BACKEND", "svn")
		rootCmd.SetArgs([]string{"qa"})
		t.Cleanup(func() { rootCmd.SetArgs(nil) })
		err = Execute()
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidEnvironment)
		assert.NotContains(t, err.Error(), "config")
	})

	t.Run("Should fail with usage when no environment is given", func(t *testing.T) {
		rootCmd.SetArgs([]string{})
		t.Cleanup(func() { rootCmd.SetArgs(nil) })
		err := Execute()
		assert.ErrorIs(t, err, domain.ErrUsage)
	})
}

func TestVersionCmd(t *testing.T) {
	t.Run("Should print build information", func(t *testing.T) {
		cmd := newVersionCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{})
		require.NoError(t, cmd.Execute())
		assert.Equal(t, "tag-deploy dev (commit unknown, built unknown)\n", out.String())
	})

	t.Run("Should fall back when a value is blank", func(t *testing.T) {
		assert.Equal(t, "dev", orDefault("  ", "dev"))
		assert.Equal(t, "1.0.0", orDefault(" 1.0.0 ", "dev"))
	})
}
