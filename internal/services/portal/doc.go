// Package portal implements the member-facing screens: dashboard, wallet,
// loans, mortgages, statutory charges, mail, activity, properties and
// payment plans.
//
// The API owns every record. The service adds the few client-side
// derivations the screens show: charge status, early-termination quotes
// and mix-funding breakdowns.
package portal
