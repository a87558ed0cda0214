/*
Package gavel defines the common interfaces that tie the governance
framework together: the key-value storage contracts, the message and
transaction abstractions, handler and decorator plumbing, and the small
value types (addresses, unix timestamps) shared by every extension.

State lives in a KVStore provided by the hosting environment. Extensions
under x/ register message handlers with a Registry and keep their models
in orm buckets layered over the store. The app package provides a router
and decorator chain to wire a complete engine together.
*/
package gavel
