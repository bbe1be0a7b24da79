// Package store provides the settings persistence layer for phonebook.
//
// The package defines the [Store] interface and a BoltDB implementation. Only
// settings live here (remote endpoint, timeout, password file, heading); the
// directory itself is never persisted locally, the remote store is the only
// source of truth for records.
//
// # Singleton Pattern
//
// Use [GetDB] to obtain the shared store instance:
//
//	db, err := store.GetDB()
//	if err != nil {
//	    return err
//	}
//	cfg, err := db.GetConfig()
//
// Tests open isolated databases with [NewBolt].
package store
