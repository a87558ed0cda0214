/*
Package govern implements a multi signature governance layer on top of a
token ledger.

A fixed set of owners collectively approves sensitive changes. Any owner
proposes a transaction of one of five kinds (increase supply, decrease
supply, change receiver, add owner, remove owner). Proposing counts as the
first confirmation. Other owners confirm it, and once a strict majority of
the current owner set confirmed and the time lock elapsed, any owner or the
designated executor executes it, which applies the terminal effect on the
ledger or the owner set. Transactions that clearly lack support can instead
be removed.

Executed and removed transactions are terminal. They stay readable for
audit but reject any further mutation.
*/
package govern
