package mint

import (
	"context"
	"sync"

	"github.com/xssnick/tonutils-go/address"

	depdom "jettonmint/internal/domain/deployment"
	jettondom "jettonmint/internal/domain/jetton"
)

type fakeNetwork struct {
	name    string
	active  bool
	err     error
	checked []string
}

func (n *fakeNetwork) Name() string { return n.name }

func (n *fakeNetwork) AccountActive(_ context.Context, addr *address.Address) (bool, error) {
	n.checked = append(n.checked, addr.String())
	if n.err != nil {
		return false, n.err
	}
	return n.active, nil
}

type fakeRepo struct {
	records map[string]depdom.Record
	err     error
}

func (r *fakeRepo) GetByNetwork(_ context.Context, network string) (depdom.Record, error) {
	if r.err != nil {
		return depdom.Record{}, r.err
	}
	rec, ok := r.records[network]
	if !ok {
		return depdom.Record{}, depdom.ErrNotFound
	}
	return rec, nil
}

type fakeSender struct {
	mu   sync.Mutex
	addr *address.Address
	err  error
	sent []jettondom.OutboundMessage
}

func (s *fakeSender) Address() *address.Address { return s.addr }

func (s *fakeSender) Send(_ context.Context, msg jettondom.OutboundMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.err
}

func testAddress(b byte) *address.Address {
	data := make([]byte, 32)
	data[31] = b
	return address.NewAddress(0, 0, data)
}

func newFakeSender() *fakeSender {
	return &fakeSender{addr: testAddress(0xAA)}
}
