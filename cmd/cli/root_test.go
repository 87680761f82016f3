package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootFlags_OverrideReplyAuthor(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	require.NoError(t, flags.Set("author-id", "17"))
	require.NoError(t, flags.Set("author-name", "Support Team"))
	require.NoError(t, flags.Set("author-email", "support@example.com"))

	assert.Equal(t, int64(17), viper.GetInt64("REPLY_AUTHOR_ID"))
	assert.Equal(t, "Support Team", viper.GetString("REPLY_AUTHOR_NAME"))
	assert.Equal(t, "support@example.com", viper.GetString("REPLY_AUTHOR_EMAIL"))
}
