package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_SymmetricEdge(t *testing.T) {
	db := newTestDB(t)
	svc := NewGraphService(db, nil)

	alice := seedUser(t, db, "Alice", "alice@x.com")
	bob := seedUser(t, db, "Bob", "bob@x.com")

	connections, err := svc.Connect(alice, bob)
	require.NoError(t, err)
	assert.Equal(t, []string{bob}, connections)

	// The mirrored side must observe the edge too.
	bobConnections, err := svc.connectionIDs(bob)
	require.NoError(t, err)
	assert.Equal(t, []string{alice}, bobConnections)
}

func TestConnect_AlreadyConnected(t *testing.T) {
	db := newTestDB(t)
	svc := NewGraphService(db, nil)

	alice := seedUser(t, db, "Alice", "alice@x.com")
	bob := seedUser(t, db, "Bob", "bob@x.com")

	_, err := svc.Connect(alice, bob)
	require.NoError(t, err)

	_, err = svc.Connect(alice, bob)
	assert.ErrorIs(t, err, ErrAlreadyConnected)
}

func TestConnect_TargetNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewGraphService(db, nil)

	alice := seedUser(t, db, "Alice", "alice@x.com")

	_, err := svc.Connect(alice, "no-such-user")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConnect_SelfRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewGraphService(db, nil)

	alice := seedUser(t, db, "Alice", "alice@x.com")

	_, err := svc.Connect(alice, alice)
	assert.ErrorIs(t, err, ErrSelfConnection)
}

func TestDisconnect_RemovesBothSides(t *testing.T) {
	db := newTestDB(t)
	svc := NewGraphService(db, nil)

	alice := seedUser(t, db, "Alice", "alice@x.com")
	bob := seedUser(t, db, "Bob", "bob@x.com")

	_, err := svc.Connect(alice, bob)
	require.NoError(t, err)

	connections, err := svc.Disconnect(alice, bob)
	require.NoError(t, err)
	assert.Empty(t, connections)

	bobConnections, err := svc.connectionIDs(bob)
	require.NoError(t, err)
	assert.Empty(t, bobConnections)
}

func TestDisconnect_Idempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewGraphService(db, nil)

	alice := seedUser(t, db, "Alice", "alice@x.com")
	bob := seedUser(t, db, "Bob", "bob@x.com")

	// Never connected; disconnect must still succeed.
	connections, err := svc.Disconnect(alice, bob)
	require.NoError(t, err)
	assert.Empty(t, connections)

	// And again.
	connections, err = svc.Disconnect(alice, bob)
	require.NoError(t, err)
	assert.Empty(t, connections)
}

func TestDisconnect_TargetNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewGraphService(db, nil)

	alice := seedUser(t, db, "Alice", "alice@x.com")

	_, err := svc.Disconnect(alice, "no-such-user")
	assert.ErrorIs(t, err, ErrNotFound)
}
