// Package main runs mockapi, an in-memory stand-in for the cooperative REST
// API used by coopdesk during development, demos and tests.
//
// # HTTP API
//
// Every response is the envelope {success, message, data, pagination,
// errors}. Requests other than login need "Authorization: Bearer <token>".
// Member and admin routes need "X-Tenant-Slug" naming an active business.
//
//	POST   /api/auth/login               {email, password} -> {token, expires_at, user}
//	POST   /api/auth/logout
//	GET    /api/auth/me
//
//	GET    /api/member/wallet
//	GET    /api/member/wallet/transactions
//	POST   /api/member/wallet/fund
//	GET    /api/member/loans             POST /api/member/loans
//	GET    /api/member/loans/{id}
//	GET    /api/member/mortgages
//	GET    /api/member/statutory-charges
//	GET    /api/member/statutory-charges/{id}
//	POST   /api/member/statutory-charges/{id}/pay
//	GET    /api/member/mail?folder=inbox|sent   POST /api/member/mail
//	GET    /api/member/mail/{id}         DELETE /api/member/mail/{id}
//	GET    /api/member/activity-logs
//	GET    /api/member/properties        POST /api/member/eoi
//	GET    /api/member/payment-plans     GET /api/member/payment-plans/{id}
//
//	GET    /api/admin/members            GET/DELETE /api/admin/members/{id}
//	POST   /api/admin/members/{id}/approve|reject
//	GET    /api/admin/loans              GET /api/admin/loans/{id}
//	POST   /api/admin/loans/{id}/approve|reject
//	POST   /api/admin/bulk-upload/{kind} multipart "file" field
//	GET    /api/admin/roles              POST /api/admin/roles
//	POST   /api/admin/roles/assign
//	GET    /api/admin/permissions
//	GET    /api/admin/branding           PUT /api/admin/branding
//	GET    /api/admin/activity-logs
//
//	GET    /api/super-admin/businesses   POST /api/super-admin/businesses
//	GET    /api/super-admin/businesses/{id}
//	POST   /api/super-admin/businesses/{id}/suspend|activate
//	GET    /api/super-admin/subscriptions
//	GET    /api/super-admin/packages
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Seed accounts (password "password"): member@demo.test,
//     admin@demo.test and root@platform.test, on tenant "demo".
//   - Lists accept page, per_page, status and search.
//   - The default listen address is :8080.
package main
