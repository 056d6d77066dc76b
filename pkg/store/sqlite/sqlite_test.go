package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/imharvol/cienciathon-2021/pkg/store"
	"github.com/imharvol/cienciathon-2021/pkg/store/sqlite"
	"github.com/imharvol/cienciathon-2021/pkg/store/storetest"

	"github.com/stretchr/testify/require"
)

func TestProvider(t *testing.T) {
	p, err := sqlite.New()
	require.NoError(t, err)

	t.Cleanup(func() { p.Close() })

	require.NoError(t, p.Init(context.Background(), false))

	storetest.Run(t, p)
}

func TestProviderFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "database.db")

	p, err := sqlite.New(sqlite.WithPath(path))
	require.NoError(t, err)

	require.NoError(t, p.Init(ctx, false))
	require.NoError(t, p.AddFile(ctx, store.File{Hash: "f1", Name: "bases.pdf", Uploaded: time.Now()}))
	require.NoError(t, p.Close())

	p, err = sqlite.New(sqlite.WithPath(path))
	require.NoError(t, err)

	t.Cleanup(func() { p.Close() })

	require.NoError(t, p.Init(ctx, false))

	file, err := p.GetFile(ctx, "f1")
	require.NoError(t, err)
	require.Equal(t, "bases.pdf", file.Name)
}
