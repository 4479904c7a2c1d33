// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/redis/go-redis/v9"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/background"
	"github.com/bitmark-inc/itemd/endorsement"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/finality"
	"github.com/bitmark-inc/itemd/flow"
	"github.com/bitmark-inc/itemd/messagebus"
	"github.com/bitmark-inc/itemd/notary"
	"github.com/bitmark-inc/itemd/proposal"
	"github.com/bitmark-inc/itemd/ratelimit"
	"github.com/bitmark-inc/itemd/schema"
	"github.com/bitmark-inc/itemd/transport/zmqtransport"
	"github.com/bitmark-inc/itemd/vault"
)

const deliveryPollInterval = 100 * time.Millisecond

// Node - one party with all of its components
type Node struct {
	sync.Mutex

	log      *logger.L
	identity *account.PrivateKey
	notary   *account.Account

	bus         messagebus.BroadcastQueue
	vault       *vault.Database
	claims      notary.Store // nil unless this node is the notary
	projector   *schema.Projector
	listener    *zmqtransport.Listener
	coordinator *finality.Coordinator
	initiator   *flow.Initiator

	processes *background.T
}

// New - open the stores and connect the components
//
// nothing runs until Start
func New(cfg *Configuration) (*Node, error) {
	log := logger.New("node")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	log.Info("initialising…")

	identity, err := account.PrivateKeyFromBase58Seed(cfg.IdentitySeed)
	if nil != err {
		log.Criticalf("identity seed error: %s", err)
		return nil, err
	}
	self := identity.Account()
	log.Infof("identity: %s", self)

	notaryAccount := self
	if "" != cfg.Notary.Account {
		notaryAccount, err = account.AccountFromBase58(cfg.Notary.Account)
		if nil != err {
			log.Criticalf("notary account error: %s", err)
			return nil, err
		}
	}
	local := NotaryRemote != cfg.Notary.Mode
	if local && !notaryAccount.Equal(self) {
		log.Critical("a local notary must use the node identity")
		return nil, fault.ErrWrongNotary
	}
	log.Infof("notary: %s  mode: %s", notaryAccount, cfg.Notary.Mode)

	var privateKey []byte
	if "" != cfg.Transport.PrivateKey {
		privateKey, err = zmqtransport.ReadPrivateKey(cfg.Transport.PrivateKey)
		if nil != err {
			log.Criticalf("transport private key error: %s", err)
			return nil, err
		}
	}

	directory, err := newDirectory(cfg.Transport.Parties)
	if nil != err {
		log.Criticalf("party directory error: %s", err)
		return nil, err
	}

	timeout := time.Duration(cfg.Transport.Timeout) * time.Second
	client, err := zmqtransport.NewClient(self, directory, privateKey, timeout)
	if nil != err {
		log.Criticalf("transport client error: %s", err)
		return nil, err
	}

	n := &Node{
		log:      log,
		identity: identity,
		notary:   notaryAccount,
	}

	if err := n.open(cfg, privateKey); nil != err {
		n.close()
		return nil, err
	}

	var authority notary.Authority
	if local {
		service := notary.NewService(identity, n.claims)
		notary.Serve(n.listener, service)
		authority = service
	} else {
		authority = notary.NewRemote(notaryAccount, client)
	}

	recorder := finality.NewRecorder(self, notaryAccount, n.vault, &n.bus)
	limiter := ratelimit.New(cfg.EndorseRate, cfg.EndorseBurst)
	endorser := endorsement.NewEndorser(identity, notaryAccount, n.vault, limiter)
	flow.NewResponder(endorser, recorder).Register(n.listener)

	n.coordinator = finality.NewCoordinator(self, authority, client, recorder, n.vault)
	n.coordinator.SetRetryInterval(time.Duration(cfg.RetryInterval) * time.Second)

	collector := endorsement.NewCollector(identity, client)
	builder := proposal.NewBuilder(notaryAccount)
	n.initiator = flow.NewInitiator(self, n.vault, builder, collector, n.coordinator)

	return n, nil
}

// open the stores and bind the listener
func (n *Node) open(cfg *Configuration, privateKey []byte) error {
	log := n.log
	var err error

	n.vault, err = vault.Open(cfg.VaultDirectory)
	if nil != err {
		log.Criticalf("vault open error: %s", err)
		return err
	}

	switch cfg.Notary.Mode {
	case NotaryLevelDB:
		store, err := notary.NewLevelDBStore(cfg.Notary.Directory)
		if nil != err {
			log.Criticalf("notary open error: %s", err)
			return err
		}
		n.claims = store
	case NotaryRedis:
		n.claims = notary.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     cfg.Notary.Redis.Address,
			Password: cfg.Notary.Redis.Password,
			DB:       cfg.Notary.Redis.Database,
		}))
	}

	n.projector, err = schema.Open(cfg.SchemaDatabase, &n.bus)
	if nil != err {
		log.Criticalf("schema open error: %s", err)
		return err
	}

	timeout := time.Duration(cfg.Transport.Timeout) * time.Second
	n.listener, err = zmqtransport.NewListener(privateKey, cfg.Transport.Listen, timeout)
	if nil != err {
		log.Criticalf("transport listen error: %s", err)
		return err
	}
	return nil
}

// build the party directory from the configuration
func newDirectory(parties []PartyType) (*zmqtransport.Directory, error) {
	directory := zmqtransport.NewDirectory()
	for _, p := range parties {
		party, err := account.AccountFromBase58(p.Account)
		if nil != err {
			return nil, err
		}
		peer := zmqtransport.Peer{
			Address: p.Address,
		}
		if "" != p.PublicKey {
			peer.PublicKey, err = zmqtransport.ReadPublicKey(p.PublicKey)
			if nil != err {
				return nil, err
			}
		}
		directory.Add(party, peer)
	}
	return directory, nil
}

// Identity - the party this node acts for
func (n *Node) Identity() *account.Account {
	return n.identity.Account()
}

// Notary - the configured uniqueness authority
func (n *Node) Notary() *account.Account {
	return n.notary
}

// Initiator - the user operations
func (n *Node) Initiator() *flow.Initiator {
	return n.initiator
}

// Vault - the live item states
func (n *Node) Vault() vault.Vault {
	return n.vault
}

// Projector - the queryable item table
func (n *Node) Projector() *schema.Projector {
	return n.projector
}

// PendingDeliveries - finalised transactions not yet delivered to
// every participant
func (n *Node) PendingDeliveries() int {
	return n.coordinator.Pending()
}

// WaitForDeliveries - give the retries up to timeout to drain; the
// count still pending is returned and stays owed in the vault
func (n *Node) WaitForDeliveries(timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	for {
		pending := n.coordinator.Pending()
		if 0 == pending || time.Now().After(deadline) {
			return pending
		}
		time.Sleep(deliveryPollInterval)
	}
}

// Start - run the listener, delivery retries and projection
func (n *Node) Start() {
	n.Lock()
	defer n.Unlock()

	if nil != n.processes || nil == n.listener {
		return
	}
	n.log.Info("starting…")
	n.processes = background.Start(background.Processes{
		n.listener,
		n.coordinator,
		n.projector,
	}, nil)
}

// Stop - stop the background processes and close the stores
//
// a node cannot be restarted after Stop
func (n *Node) Stop() {
	n.Lock()
	defer n.Unlock()

	if nil != n.processes {
		n.processes.Stop()
		n.processes = nil
	} else if nil != n.listener {
		// the listener only releases its sockets at the end of Run
		background.Start(background.Processes{n.listener}, nil).Stop()
	}
	n.listener = nil
	n.close()
	n.log.Info("stopped")
}

// release whatever is open
func (n *Node) close() {
	if nil != n.projector {
		if err := n.projector.Close(); nil != err {
			n.log.Errorf("schema close error: %s", err)
		}
		n.projector = nil
	}
	if nil != n.claims {
		if err := n.claims.Close(); nil != err {
			n.log.Errorf("notary close error: %s", err)
		}
		n.claims = nil
	}
	if nil != n.vault {
		if err := n.vault.Close(); nil != err {
			n.log.Errorf("vault close error: %s", err)
		}
		n.vault = nil
	}
}
