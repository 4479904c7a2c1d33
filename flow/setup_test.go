// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package flow_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/endorsement"
	"github.com/bitmark-inc/itemd/finality"
	"github.com/bitmark-inc/itemd/fixtures"
	"github.com/bitmark-inc/itemd/flow"
	"github.com/bitmark-inc/itemd/notary"
	"github.com/bitmark-inc/itemd/proposal"
	"github.com/bitmark-inc/itemd/ratelimit"
	"github.com/bitmark-inc/itemd/transport"
	"github.com/bitmark-inc/itemd/vault"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// one party attached to the test network
type testNode struct {
	key         *account.PrivateKey
	vault       *vault.Database
	coordinator *finality.Coordinator
	initiator   *flow.Initiator
}

// a network with a notary and a node for every given party
type testNetwork struct {
	network *transport.Network
	nodes   map[string]*testNode
}

func newTestNetwork(t *testing.T, keys ...*account.PrivateKey) *testNetwork {
	network := transport.NewNetwork()

	store, err := notary.NewLevelDBStore(fixtures.DatabaseDirectory(t.Name() + "-notary"))
	require.NoError(t, err, "notary store")
	t.Cleanup(func() { _ = store.Close() })
	notary.Serve(network.Join(fixtures.Notary.Account()), notary.NewService(fixtures.Notary, store))

	n := &testNetwork{
		network: network,
		nodes:   make(map[string]*testNode),
	}
	for _, key := range keys {
		n.nodes[key.Account().String()] = newTestNode(t, network, key)
	}
	return n
}

func newTestNode(t *testing.T, network *transport.Network, key *account.PrivateKey) *testNode {
	self := key.Account()
	notaryAccount := fixtures.Notary.Account()

	v, err := vault.Open(fixtures.DatabaseDirectory(t.Name() + "-" + self.String()))
	require.NoError(t, err, "vault")
	t.Cleanup(func() { _ = v.Close() })

	endpoint := network.Join(self)

	recorder := finality.NewRecorder(self, notaryAccount, v, nil)
	endorser := endorsement.NewEndorser(key, notaryAccount, v, ratelimit.New(0, 0))
	flow.NewResponder(endorser, recorder).Register(endpoint)

	coordinator := finality.NewCoordinator(self, notary.NewRemote(notaryAccount, endpoint), endpoint, recorder, v)
	initiator := flow.NewInitiator(
		self,
		v,
		proposal.NewBuilder(notaryAccount),
		endorsement.NewCollector(key, endpoint),
		coordinator,
	)

	return &testNode{
		key:         key,
		vault:       v,
		coordinator: coordinator,
		initiator:   initiator,
	}
}

func (n *testNetwork) node(key *account.PrivateKey) *testNode {
	return n.nodes[key.Account().String()]
}

func accounts(keys ...*account.PrivateKey) []*account.Account {
	result := make([]*account.Account, len(keys))
	for i, k := range keys {
		result[i] = k.Account()
	}
	return result
}
