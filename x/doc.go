/*
Package x contains some standard extension interfaces and helpers shared by
the extension packages.

Extensions are designed to be combined: handlers receive an Authenticator
from the constructor so the authentication system can be swapped without
touching the extension code.
*/
package x
