// Package database provides the persistent store connection used by the
// desired-set library and the local download index.
//
// It wraps GORM with two supported drivers: sqlite for the default
// single-machine deployment (the cache host owns its own state file) and
// mysql for shared deployments. Connection pooling and timeouts are only
// relevant for the mysql path.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
package database
