package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/topictables/internal/watch"
)

func TestWatchCommandStructure(t *testing.T) {
	assert.NotNil(t, watchCmd)
	assert.Equal(t, "watch", watchCmd.Use)
	assert.NotEmpty(t, watchCmd.Short)
	assert.NotEmpty(t, watchCmd.Long)
	assert.NotNil(t, watchCmd.RunE)

	debounceFlag := watchCmd.Flags().Lookup("debounce")
	require.NotNil(t, debounceFlag)
	assert.Equal(t, watch.DefaultDebounce.String(), debounceFlag.DefValue)
}

func TestRunWatch_StopsWhenContextDone(t *testing.T) {
	resetFlags(t)
	cfgFile = writeFixture(t, "sales.orders", map[string]string{"orders.json": ordersFixture})
	watchDebounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	watchCmd.SetOut(&buf)
	watchCmd.SetContext(ctx)
	defer watchCmd.SetOut(nil)

	// The initial resolution is printed before the canceled context is seen.
	require.NoError(t, runWatch(watchCmd, nil))
	assert.Contains(t, buf.String(), "sales.orders.v1")
	assert.Contains(t, buf.String(), "Total: 1 table(s), 1 from description files, 0 synthesized")
}

func TestRunWatch_MissingDirectory(t *testing.T) {
	resetFlags(t)
	cfgFile = writeFixture(t, "sales.orders", nil)
	tableDescriptionDir = filepath.Join(t.TempDir(), "absent")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	watchCmd.SetContext(ctx)

	err := runWatch(watchCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch directory")
}
