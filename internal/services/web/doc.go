// Package web hosts the browser-facing events site.
//
// The server resolves the browser session from the SQLite session store,
// composes the page modules into one root handler and proxies every data
// read and write to the events backend through eventsapi.
package web
