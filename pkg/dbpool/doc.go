// Package dbpool owns the process wide database connection pool.
//
// A Manager binds the pool at startup (retrying while the database comes
// up), hands out a lazily acquired connection per HTTP request and closes
// the pool on shutdown once checked out connections are back.
package dbpool
