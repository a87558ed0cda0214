// Package gaveltest provides common helpers for the extension tests.
package gaveltest
