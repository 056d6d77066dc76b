package mongo_test

import (
	"context"
	"testing"

	"github.com/imharvol/cienciathon-2021/pkg/store/mongo"
	"github.com/imharvol/cienciathon-2021/pkg/store/storetest"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestProvider(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	ctx := context.Background()

	server, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,

		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:8",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp"),
		},
	})

	require.NoError(t, err)

	t.Cleanup(func() { testcontainers.TerminateContainer(server) })

	url, err := server.Endpoint(ctx, "")
	require.NoError(t, err)

	p, err := mongo.New("mongodb://"+url, mongo.WithDatabase("test"))
	require.NoError(t, err)

	t.Cleanup(func() { p.Close() })

	require.NoError(t, p.Init(ctx, false))

	storetest.Run(t, p)
}
