package main

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authkit/authkit-server/internal/model"
	"github.com/authkit/authkit-server/internal/testutil"
)

type stubServer struct {
	addr     string
	startErr error
	stopped  chan struct{}
}

func newStubServer(addr string, startErr error) *stubServer {
	return &stubServer{addr: addr, startErr: startErr, stopped: make(chan struct{})}
}

func (s *stubServer) Start(model.SecurityLayer) error {
	if s.startErr != nil {
		return s.startErr
	}
	<-s.stopped
	return nil
}

func (s *stubServer) Stop(context.Context) error {
	select {
	case <-s.stopped:
	default:
		close(s.stopped)
	}
	return nil
}

func (s *stubServer) Address() string { return s.addr }

type nopLayer struct{}

func (nopLayer) Listen(string, string) (net.Listener, error) { return nil, nil }

func TestRunServers_StartFailureStopsAll(t *testing.T) {
	inUse := errors.New("address already in use")
	healthy := newStubServer(":3333", nil)
	broken := newStubServer(":50051", inUse)

	done := make(chan error, 1)
	go func() {
		done <- runServers(context.Background(), []model.Server{healthy, broken}, nopLayer{}, testutil.MakeNoopLogger())
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, inUse)
		assert.Contains(t, err.Error(), ":50051")
	case <-time.After(2 * time.Second):
		t.Fatal("runServers kept running after a server failed to start")
	}

	select {
	case <-healthy.stopped:
	default:
		t.Fatal("healthy server was not stopped")
	}
}

func TestRunServers_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a := newStubServer(":3333", nil)
	b := newStubServer(":50051", nil)

	done := make(chan error, 1)
	go func() {
		done <- runServers(ctx, []model.Server{a, b}, nopLayer{}, testutil.MakeNoopLogger())
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runServers did not return after cancellation")
	}
}
