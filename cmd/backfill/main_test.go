package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleItemFlagName(t *testing.T) {
	cmd := newRootCmd()

	assert.NotNil(t, cmd.Flags().Lookup("prompt-id"))
	assert.Nil(t, cmd.Flags().Lookup("item-id"))
}

func TestSkipRecentFiltersOnCreation(t *testing.T) {
	flag := newRootCmd().Flags().Lookup("skip-recent")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "created")
}
