/*
Package errors implements coded errors for the whole framework.

Each root error is created with a unique numeric code via Register. Runtime
errors wrap exactly one root error, which allows classification with the Is
method while keeping a human readable description and a stack trace of the
place the error originated.

Extension packages register their own root errors. Codes below 1000 are
reserved for this package.
*/
package errors
