// Package storage declares persistence contracts owned by the web service.
//
// The only web-owned state is the browser session table; events, users,
// enrollments and ratings live in the backend.
package storage
