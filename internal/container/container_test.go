package container_test

import (
	"path/filepath"
	"testing"

	"github.com/linksnap/linksnap/internal/client"
	"github.com/linksnap/linksnap/internal/container"
	"github.com/linksnap/linksnap/internal/history/blob"
	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobPackage(t *testing.T) {
	t.Run("selects the memory backend", func(t *testing.T) {
		injector := container.New(&container.Options{History: "memory", TimeoutSeconds: 15})

		b, err := do.Invoke[blob.Store](injector)

		require.NoError(t, err)
		assert.IsType(t, &blob.Memory{}, b)
	})

	t.Run("selects the file backend with an explicit path", func(t *testing.T) {
		injector := container.New(&container.Options{
			History:        "file",
			HistoryFile:    filepath.Join(t.TempDir(), "history.json"),
			TimeoutSeconds: 15,
		})

		b, err := do.Invoke[blob.Store](injector)

		require.NoError(t, err)
		assert.IsType(t, &blob.File{}, b)
	})

	t.Run("rejects an unknown backend", func(t *testing.T) {
		injector := container.New(&container.Options{History: "carrier-pigeon"})

		_, err := do.Invoke[blob.Store](injector)

		assert.Error(t, err)
	})
}

func TestClientPackage(t *testing.T) {
	injector := container.New(&container.Options{
		BaseURL:        "http://localhost:8888",
		History:        "memory",
		TimeoutSeconds: 15,
	})

	cl, err := do.Invoke[*client.Client](injector)

	require.NoError(t, err)
	assert.NotNil(t, cl.History())
}
