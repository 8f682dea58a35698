package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Flags(t *testing.T) {
	cmd := newRootCommand()

	user := cmd.PersistentFlags().Lookup("user")
	require.NotNil(t, user)
	assert.Equal(t, "cli_driver", user.DefValue)

	sub, _, err := cmd.Find([]string{"calendar-auth"})
	require.NoError(t, err)
	assert.Equal(t, "calendar-auth", sub.Name())
	assert.NotNil(t, sub.Flags().Lookup("token"))
}

func TestRootCommand_Conversation(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs([]string{"--user", "driver_7"})
	cmd.SetIn(strings.NewReader("Added ₹5,000 to New Phone\n\nhello\n"))
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())

	got := out.String()
	assert.Contains(t, got, "Chatting as driver_7.")
	assert.Equal(t, 2, strings.Count(got, "copilot> "))
}

func TestCalendarAuth_MissingCredentials(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"calendar-auth", "--credentials", filepath.Join(t.TempDir(), "missing.json")})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read credentials")
}
