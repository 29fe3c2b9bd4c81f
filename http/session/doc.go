// Package session stores web sessions in cookies or Redis.
//
// A dashboard session only remembers the path a client last navigated to,
// which becomes the "from" location of that client's next navigation.
package session
