// Package entitlement implements the yes/no gate consulted before any
// reconciliation work. It deliberately knows nothing about subscriptions
// or billing: static mode answers from configuration, remote mode asks an
// external endpoint for a boolean.
package entitlement
