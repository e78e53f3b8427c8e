// Package commands defines the coopdesk CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login, logout, whoami   Manage the signed-in session
//   - config                  Show or change saved settings
//   - dashboard               Member home summary
//   - wallet                  Balance, transactions and top-ups
//   - loans, mortgages        Member credit, including termination quotes
//   - charges                 Statutory charges with derived status
//   - mail, activity          Mailbox and personal audit log
//   - properties, plans       Property listings, interest and payment plans
//   - admin                   Tenant back-office (members, loans, bulk uploads,
//     roles, branding, activity)
//   - platform                Super-admin console (businesses, subscriptions,
//     packages)
//
// # Implementation
//
// The root command resolves settings and builds the dependency graph
// (stores, API client, services, printer) before any subcommand runs, so
// handlers share one app context. Every list command accepts the same
// paging and filter flags; --output json prints the raw records instead of
// tables.
package commands
