// Package auth signs users in and out of the cooperative API.
//
// Login exchanges credentials for a bearer token, stores the token
// encrypted under the user's passphrase and records a non-secret profile
// for the API and tenant pair. Logout always clears the local session, even
// when the server cannot be reached.
package auth
