// Package platform implements the super-admin console: businesses
// (tenants), subscriptions and packages.
package platform
