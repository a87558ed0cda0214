package x

import (
	"context"

	"github.com/blocktrust/gavel"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of handlers
// so another authentication system can be plugged in without hard-coding
// one for all extensions.
//
// There is no signature verification at this level. The hosting environment
// establishes who the caller is and exposes the caller addresses through
// the context.
type Authenticator interface {
	// GetAddresses reveals all authenticated addresses. You may want the
	// MainActor helper.
	GetAddresses(gavel.Context) []gavel.Address

	// HasAddress checks if any authenticated address matches this one.
	HasAddress(gavel.Context, gavel.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetAddresses combines all addresses from all Authenticators.
func (m MultiAuth) GetAddresses(ctx gavel.Context) []gavel.Address {
	var res []gavel.Address
	for _, impl := range m.impls {
		add := impl.GetAddresses(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator supports this address.
func (m MultiAuth) HasAddress(ctx gavel.Context, addr gavel.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainActor returns the first authenticated address if any, otherwise nil.
func (m MultiAuth) MainActor(ctx gavel.Context) gavel.Address {
	return MainActor(ctx, m)
}

// MainActor returns the first authenticated address if any, otherwise nil.
func MainActor(ctx gavel.Context, auth Authenticator) gavel.Address {
	actors := auth.GetAddresses(ctx)
	if len(actors) == 0 {
		return nil
	}
	return actors[0]
}

// CtxAuth is an authenticator for the addresses the hosting environment
// stamped into the context. There is no signature verification here, the
// host is trusted to have established the caller identity.
type CtxAuth struct {
	Key interface{}
}

var _ Authenticator = CtxAuth{}

// SetAddresses stores the authenticated addresses of this call in the
// context, overwriting any previous value.
func (a CtxAuth) SetAddresses(ctx gavel.Context, addrs ...gavel.Address) gavel.Context {
	return context.WithValue(ctx, a.Key, addrs)
}

// GetAddresses returns the addresses stamped into the context.
func (a CtxAuth) GetAddresses(ctx gavel.Context) []gavel.Address {
	val, ok := ctx.Value(a.Key).([]gavel.Address)
	if !ok {
		return nil
	}
	return val
}

// HasAddress returns true if the address was stamped into the context.
func (a CtxAuth) HasAddress(ctx gavel.Context, addr gavel.Address) bool {
	for _, signer := range a.GetAddresses(ctx) {
		if signer.Equals(addr) {
			return true
		}
	}
	return false
}

// HasAllAddresses returns true if all elements in required are
// authenticated in the context.
func HasAllAddresses(ctx gavel.Context, auth Authenticator, required []gavel.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}
