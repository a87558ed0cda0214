/*
Package token implements the fungible token ledger controlled by the
governance layer.

It keeps one wallet per address and a singleton token info record with the
total supply, the receiver credited on supply increases and the burner
debited on supply decreases. Plain transfers between wallets are open to
everybody, supply and receiver changes only happen through governance
execution.
*/
package token
